package actions

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
	"fmt"
	"strings"
)

func HandleExecute(ctx handlers.Context, p api.ExecutePayload) (handlers.Result, error) {
	// 1. Вызов боя (валидация внутри, при ошибке состояние не меняется)
	summary, err := ctx.Battle.Execute(ctx.Actor, p.ActionIndex, domain.NewMapPosition(p.X, p.Y))
	if err != nil {
		return handlers.EmptyResult(), err
	}

	// 2. Текст для лога боя
	return handlers.Result{
		Msg:     describeSummary(ctx, summary),
		MsgType: domain.LogTypeCombat,
		Summary: &summary,
	}, nil
}

func describeSummary(ctx handlers.Context, s domain.AppliedEffectsSummary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s применяет %s на %s.", nameOf(ctx, s.Actor), s.Action, s.Target)

	for _, e := range s.Effects {
		if e.NoOp {
			continue
		}
		target := nameOf(ctx, e.Target)
		switch {
		case e.Damage != nil:
			crit := ""
			if e.Damage.Crit {
				crit = " (крит)"
			}
			fmt.Fprintf(&b, " %s получает %d урона%s.", target, e.Damage.Amount, crit)
		case e.Push != nil:
			fmt.Fprintf(&b, " %s отброшен на %s.", target, e.Push.To)
			if e.Push.Collision != nil {
				fmt.Fprintf(&b, " Удар о препятствие: %d урона.", e.Push.Collision.Amount)
			}
		case e.To != nil:
			fmt.Fprintf(&b, " %s перемещается на %s.", nameOf(ctx, s.Actor), *e.To)
		case e.Kind == domain.EffectDamageOverTime:
			fmt.Fprintf(&b, " %s отравлен.", target)
		case e.Amount > 0:
			fmt.Fprintf(&b, " %s: %s %d.", target, e.Kind, e.Amount)
		}
	}

	for _, id := range s.Deaths {
		fmt.Fprintf(&b, " %s погибает.", nameOf(ctx, id))
	}
	return b.String()
}

func nameOf(ctx handlers.Context, id domain.CombatantID) string {
	if c, ok := ctx.Battle.Combatant(id); ok {
		return c.Name
	}
	return id.String()
}

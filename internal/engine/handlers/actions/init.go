package actions

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"fmt"
)

// HandleInit ничего не меняет: инстанс в ответ разошлет снимок боя.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	c, ok := ctx.Battle.Combatant(ctx.Actor)
	if !ok {
		return handlers.EmptyResult(), domain.ErrUnknownCombatant
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s присоединяется к бою.", c.Name),
		MsgType: domain.LogTypeInfo,
	}, nil
}

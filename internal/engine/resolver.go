package engine

import (
	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
	"github.com/zyedidia/generic/mapset"
)

// ActionResolver проверяет и выполняет действия бойцов.
// Единственная точка мутации боя действием.
type ActionResolver struct {
	Grid   *domain.Grid
	Roster *Roster
	Turns  *TurnManager
	Rng    systems.Roller
	Rules  Rules
}

// Execute выполняет action от имени actor по клетке target.
// Проверки (очки действий, дальность, видимость) идут до любой мутации: при ошибке
// состояние не меняется. После списания стоимости действие выполняется до конца.
func (r *ActionResolver) Execute(actor *domain.Combatant, action domain.Action, target domain.MapPosition) (domain.AppliedEffectsSummary, error) {
	resolverLogger := logger.Log.WithFields(logrus.Fields{
		"component": "action_resolver",
		"actor_id":  actor.ID,
		"action":    action.Name,
		"target":    target,
	})

	// 1-3. Стоимость, дальность, видимость
	if err := systems.ValidateAction(r.Grid, actor, action, target); err != nil {
		return domain.AppliedEffectsSummary{}, err
	}

	// 4. Списываем стоимость
	actor.ActionPoints.Drop(action.Cost)

	summary := domain.AppliedEffectsSummary{
		Actor:   actor.ID,
		Action:  action.Name,
		Target:  target,
		Cost:    action.Cost,
		Targets: []domain.CombatantID{},
		Effects: []domain.AppliedEffect{},
	}

	// 5. Клетки поражения
	summary.HitCells = action.Aoe.Compute(target, r.Grid)

	// 6. Цели: живые бойцы на клетках поражения, каждый один раз
	targets := r.resolveTargets(summary.HitCells)
	for _, t := range targets {
		summary.Targets = append(summary.Targets, t.ID)
	}

	// 7. Эффекты в объявленном порядке
	for _, effect := range action.Effects {
		if effect.ActorRelative() {
			var first *domain.Combatant
			if len(targets) > 0 {
				first = targets[0]
			}
			summary.Effects = append(summary.Effects, r.applyActorEffect(effect, actor, first, target))
			continue
		}
		for _, t := range targets {
			summary.Effects = append(summary.Effects, r.applyEffect(effect, actor, t))
		}
	}

	// 8. Зачистка мертвых
	summary.Deaths = r.SweepDead()

	resolverLogger.WithFields(logrus.Fields{
		"cost":      action.Cost,
		"hit_cells": len(summary.HitCells),
		"targets":   summary.Targets,
		"deaths":    summary.Deaths,
	}).Info("Action resolved.")

	return summary, nil
}

func (r *ActionResolver) resolveTargets(cells []domain.MapPosition) []*domain.Combatant {
	seen := mapset.New[domain.CombatantID]()
	var targets []*domain.Combatant
	for _, cell := range cells {
		c, ok := r.Roster.At(cell)
		if !ok || seen.Has(c.ID) {
			continue
		}
		seen.Put(c.ID)
		targets = append(targets, c)
	}
	return targets
}

func (r *ActionResolver) applyEffect(effect domain.ActionEffect, actor, target *domain.Combatant) domain.AppliedEffect {
	applied := domain.AppliedEffect{Kind: effect.Kind, Target: target.ID}

	switch effect.Kind {
	case domain.EffectDamage:
		res := systems.Strike(target, effect, r.Rng)
		applied.Damage = &res

	case domain.EffectDamageOverTime:
		target.ActiveEffects = append(target.ActiveEffects, domain.ActiveEffect{
			SourceID:          actor.ID,
			Amount:            effect.Amount,
			Erode:             effect.Erode,
			RemainingDuration: effect.Duration,
		})
		applied.Amount = effect.Amount

	case domain.EffectHeal:
		applied.Amount = systems.Heal(target, effect.Amount)

	case domain.EffectShield:
		applied.Amount = systems.AddShield(target, effect.Amount)

	case domain.EffectRemoveActionPoints:
		applied.Amount = systems.Drain(&target.ActionPoints.Attribute, effect.Amount)

	case domain.EffectRemoveMovementPoints:
		applied.Amount = systems.Drain(&target.MovementPoints.Attribute, effect.Amount)

	case domain.EffectStealActionPoints:
		applied.Amount, applied.Gained = systems.Steal(&target.ActionPoints.Attribute, &actor.ActionPoints.Attribute, effect.Amount)

	case domain.EffectStealMovementPoints:
		applied.Amount, applied.Gained = systems.Steal(&target.MovementPoints.Attribute, &actor.MovementPoints.Attribute, effect.Amount)

	case domain.EffectPush:
		applied.Push, applied.NoOp = r.push(actor, target, effect.Distance)

	default:
		applied.NoOp = true
	}

	return applied
}

// push двигает цель от исполнителя по оси. Бойцы на пути считаются препятствием.
func (r *ActionResolver) push(actor, target *domain.Combatant, distance int) (*domain.PushResult, bool) {
	res, ok := systems.ResolvePush(r.Grid, r.Roster.OccupiedExcept(target.ID), actor.Position, target.Position, distance)
	if !ok {
		return nil, true
	}

	target.Position = res.To
	if res.Collided && res.BlockedSteps > 0 {
		dmg := systems.ApplyDamage(target, systems.CollisionDamage(r.Rules.PushDamagePerStep, res.BlockedSteps), r.Rules.PushErode)
		res.Collision = &dmg
	}
	return &res, !res.Moved() && res.Collision == nil
}

// applyActorEffect применяет эффекты, действующие на исполнителя. Вызывается один раз за действие.
func (r *ActionResolver) applyActorEffect(effect domain.ActionEffect, actor, first *domain.Combatant, targetCell domain.MapPosition) domain.AppliedEffect {
	applied := domain.AppliedEffect{Kind: effect.Kind}
	if first != nil {
		applied.Target = first.ID
	}
	from := actor.Position

	switch effect.Kind {
	case domain.EffectTeleportSelf:
		// Только на свободную клетку без препятствия
		if _, occupied := r.Roster.At(targetCell); occupied || r.Grid.IsObstacle(targetCell) {
			applied.NoOp = true
			return applied
		}
		actor.Position = targetCell

	case domain.EffectTeleportSwitch:
		other, ok := r.Roster.At(targetCell)
		if !ok || other.ID == actor.ID {
			applied.NoOp = true
			return applied
		}
		applied.Target = other.ID
		actor.Position, other.Position = other.Position, actor.Position

	default:
		applied.NoOp = true
		return applied
	}

	to := actor.Position
	applied.From, applied.To = &from, &to
	return applied
}

// SweepDead помечает мертвыми бойцов с нулевым здоровьем и убирает их из порядка ходов.
func (r *ActionResolver) SweepDead() []domain.CombatantID {
	var deaths []domain.CombatantID
	for _, c := range r.Roster.All() {
		if c.Dead || !c.Health.IsDepleted() {
			continue
		}
		c.Dead = true
		deaths = append(deaths, c.ID)

		logger.Log.WithFields(logrus.Fields{
			"component":    "action_resolver",
			"combatant_id": c.ID,
			"name":         c.Name,
		}).Info("Combatant died.")
	}

	// Все мертвые помечены до удаления из порядка ходов.
	// Если живых команд меньше двух, новый ход не начинается.
	if len(deaths) > 0 && len(r.Roster.TeamsAlive()) < 2 {
		r.Turns.Halt()
	}
	for _, id := range deaths {
		r.Turns.Emit(domain.Event{Type: domain.EventCombatantDied, Combatant: id})
		r.Turns.Remove(id)
	}
	return deaths
}

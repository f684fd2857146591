package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ValidateAction проверяет, может ли actor применить action по клетке target.
// Порядок проверок фиксирован: очки действий, дальность, видимость.
// Ничего не меняет; ошибка - один из domain.ErrInsufficientActionPoints,
// domain.ErrOutOfRange, domain.ErrBlocked.
func ValidateAction(g *domain.Grid, actor *domain.Combatant, action domain.Action, target domain.MapPosition) error {
	validationLogger := logger.Log.WithFields(logrus.Fields{
		"component": "targeting",
		"actor_id":  actor.ID,
		"action":    action.Name,
		"target":    target,
	})

	// 1. Стоимость
	if !actor.ActionPoints.CanDrop(action.Cost) {
		validationLogger.WithFields(logrus.Fields{
			"cost":      action.Cost,
			"available": actor.ActionPoints.Value(),
		}).Debug("Action rejected: not enough action points.")
		return domain.ErrInsufficientActionPoints
	}

	// 2. Дальность и форма
	if !action.Range.CanReach(actor.Position, target) {
		validationLogger.WithField("range", action.Range.Kind).Debug("Action rejected: out of range.")
		return domain.ErrOutOfRange
	}

	// 3. Прямая видимость
	if action.Range.LineOfSight && !HasLineOfSight(g, actor.Position, target) {
		validationLogger.Debug("Action rejected: line of sight blocked.")
		return domain.ErrBlocked
	}

	return nil
}

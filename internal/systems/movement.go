package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// MovementResult - результат вычисления движения
type MovementResult struct {
	Path Path
	From domain.MapPosition
	To   domain.MapPosition
}

// CalculateMove вычисляет перемещение бойца к клетке goal. Не меняет состояние боя!
// Путь обходит препятствия и клетки из occupied, стоимость не должна превышать очки движения.
func CalculateMove(g *domain.Grid, mover *domain.Combatant, goal domain.MapPosition, occupied func(domain.MapPosition) bool) (MovementResult, error) {
	moveLogger := logger.Log.WithFields(logrus.Fields{
		"component": "movement",
		"actor_id":  mover.ID,
		"from":      mover.Position,
		"to":        goal,
	})

	// 1. Поиск пути
	path, ok := ShortestPathAvoiding(g, mover.Position, goal, occupied)
	if !ok {
		moveLogger.Debug("Move rejected: no path.")
		return MovementResult{}, domain.ErrNoPath
	}

	// 2. Хватает ли очков движения
	if !mover.MovementPoints.CanDrop(path.Cost) {
		moveLogger.WithFields(logrus.Fields{
			"cost":      path.Cost,
			"available": mover.MovementPoints.Value(),
		}).Debug("Move rejected: not enough movement points.")
		return MovementResult{}, domain.ErrInsufficientMovementPoints
	}

	return MovementResult{Path: path, From: mover.Position, To: goal}, nil
}

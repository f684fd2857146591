package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// HasLineOfSight проверяет прямую видимость между двумя клетками.
// Идет по supercover-линии (domain.Line), стартовая и конечная клетки не проверяются:
// боец не загораживает обзор сам себе, а цель может стоять у стены.
// Линия симметрична, поэтому HasLineOfSight(a, b) == HasLineOfSight(b, a).
func HasLineOfSight(g *domain.Grid, from, to domain.MapPosition) bool {
	losLogger := logger.Log.WithFields(logrus.Fields{
		"component": "los",
		"start_pos": from,
		"end_pos":   to,
	})

	if from == to {
		losLogger.Debug("Check finished: Points are identical. Result: true")
		return true
	}

	line := domain.Line(from, to)
	for _, cell := range line[1 : len(line)-1] {
		if g.IsObstacle(cell) {
			losLogger.WithField("blocking_point", cell).
				Debug("Check finished: Line is blocked. Result: false")
			return false
		}
	}

	losLogger.Debug("Check finished: No obstructions found. Result: true")
	return true
}

package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// TargetableCells возвращает клетки, по которым actor может применить действие с такой
// дальностью: форма и дистанция из ActionRange, видимость при LineOfSight.
// Для подсветки в клиенте; бой по этим данным ничего не решает.
func TargetableCells(g *domain.Grid, from domain.MapPosition, r domain.ActionRange) []domain.MapPosition {
	hlLogger := logger.Log.WithFields(logrus.Fields{
		"component":    "highlight",
		"observer_pos": from,
		"range":        r.Kind,
	})

	var cells []domain.MapPosition
	for _, cell := range domain.Surrounding(from, r.Min, r.Max, g.Width, g.Height) {
		if g.IsObstacle(cell) || !r.CanReach(from, cell) {
			continue
		}
		if r.LineOfSight && !HasLineOfSight(g, from, cell) {
			continue
		}
		cells = append(cells, cell)
	}

	hlLogger.WithField("cells", len(cells)).Debug("Targetable cells computed.")
	return cells
}

// ReachableCells возвращает клетки, куда боец дойдет за свои очки движения.
// Обход в ширину от позиции бойца с учетом занятых клеток.
func ReachableCells(g *domain.Grid, mover *domain.Combatant, occupied func(domain.MapPosition) bool) []domain.MapPosition {
	budget := int(mover.MovementPoints.Value() - mover.MovementPoints.Min())
	dist := map[domain.MapPosition]int{mover.Position: 0}
	frontier := []domain.MapPosition{mover.Position}

	var cells []domain.MapPosition
	for len(frontier) > 0 {
		current := frontier[0]
		frontier = frontier[1:]
		if dist[current] == budget {
			continue
		}
		for _, n := range g.WalkableNeighbors(current) {
			if _, seen := dist[n.Pos]; seen {
				continue
			}
			if occupied != nil && occupied(n.Pos) {
				continue
			}
			dist[n.Pos] = dist[current] + int(n.Cost)
			cells = append(cells, n.Pos)
			frontier = append(frontier, n.Pos)
		}
	}

	domain.SortPositions(cells)
	return cells
}

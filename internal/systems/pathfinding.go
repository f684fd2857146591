package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"container/heap"

	"github.com/sirupsen/logrus"
)

// Path - найденный путь. Cells включает старт и цель, Cost = len(Cells) - 1.
type Path struct {
	Cells []domain.MapPosition `json:"cells"`
	Cost  uint32               `json:"cost"`
}

// Steps возвращает клетки пути без стартовой.
func (p Path) Steps() []domain.MapPosition {
	if len(p.Cells) <= 1 {
		return nil
	}
	return p.Cells[1:]
}

// ShortestPath ищет путь минимальной стоимости по клеткам без препятствий.
// ok == false, если пути нет.
func ShortestPath(g *domain.Grid, start, goal domain.MapPosition) (Path, bool) {
	return ShortestPathAvoiding(g, start, goal, nil)
}

// ShortestPathAvoiding - A* с манхэттенской эвристикой.
// blocked дополнительно запрещает клетки (например, занятые бойцами); nil - без ограничений.
// Соседи обходятся в порядке Up, Left, Right, Down, при равном f раньше раскрывается
// клетка, добавленная раньше, поэтому путь воспроизводим.
func ShortestPathAvoiding(g *domain.Grid, start, goal domain.MapPosition, blocked func(domain.MapPosition) bool) (Path, bool) {
	pathLogger := logger.Log.WithFields(logrus.Fields{
		"component": "pathfinding",
		"start":     start,
		"goal":      goal,
	})

	// 1. Граничные случаи
	if !g.InBounds(start) || g.IsObstacle(goal) {
		pathLogger.Debug("Path rejected: start out of bounds or goal is an obstacle.")
		return Path{}, false
	}
	if start == goal {
		return Path{Cells: []domain.MapPosition{start}, Cost: 0}, true
	}
	if blocked != nil && blocked(goal) {
		pathLogger.Debug("Path rejected: goal is occupied.")
		return Path{}, false
	}

	// 2. Открытый список и стоимости
	var seq uint64
	open := make(pathQueue, 0, g.Width+g.Height)
	heap.Init(&open)

	gScore := map[domain.MapPosition]uint32{start: 0}
	cameFrom := make(map[domain.MapPosition]domain.MapPosition)
	items := make(map[domain.MapPosition]*pathItem)
	closed := make(map[domain.MapPosition]bool)

	push := func(pos domain.MapPosition, cost uint32) {
		priority := cost + uint32(domain.Distance(pos, goal))
		if item, ok := items[pos]; ok && item.Index >= 0 {
			open.Update(item, priority)
			return
		}
		seq++
		item := &pathItem{Pos: pos, Priority: priority, Seq: seq}
		items[pos] = item
		heap.Push(&open, item)
	}
	push(start, 0)

	// 3. Основной цикл
	for open.Len() > 0 {
		current := heap.Pop(&open).(*pathItem).Pos
		if current == goal {
			path := buildPath(cameFrom, start, goal)
			pathLogger.WithField("cost", path.Cost).Debug("Path found.")
			return path, true
		}
		closed[current] = true

		for _, n := range g.WalkableNeighbors(current) {
			if closed[n.Pos] {
				continue
			}
			if blocked != nil && blocked(n.Pos) {
				continue
			}
			tentative := gScore[current] + n.Cost
			if old, seen := gScore[n.Pos]; seen && tentative >= old {
				continue
			}
			gScore[n.Pos] = tentative
			cameFrom[n.Pos] = current
			push(n.Pos, tentative)
		}
	}

	pathLogger.WithField("expanded", len(closed)).Debug("No path found.")
	return Path{}, false
}

func buildPath(cameFrom map[domain.MapPosition]domain.MapPosition, start, goal domain.MapPosition) Path {
	cells := []domain.MapPosition{goal}
	for current := goal; current != start; {
		current = cameFrom[current]
		cells = append(cells, current)
	}
	// Разворачиваем: от старта к цели
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return Path{Cells: cells, Cost: uint32(len(cells) - 1)}
}

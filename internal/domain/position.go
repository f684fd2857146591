package domain

import "fmt"

// MapPosition - клетка изометрической сетки.
// Значение неизменяемое: эффекты создают новую позицию, а не мутируют старую.
type MapPosition struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func NewMapPosition(x, y int) MapPosition {
	return MapPosition{X: x, Y: y}
}

func (p MapPosition) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Shift возвращает новую позицию со смещением.
func (p MapPosition) Shift(dx, dy int) MapPosition {
	return MapPosition{X: p.X + dx, Y: p.Y + dy}
}

// InBounds проверяет 0 <= x < width, 0 <= y < height.
func (p MapPosition) InBounds(width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// DistanceTo возвращает манхэттенское расстояние.
func (p MapPosition) DistanceTo(other MapPosition) int {
	return Distance(p, other)
}

// Distance - манхэттенское расстояние |ax-bx| + |ay-by|.
func Distance(a, b MapPosition) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// SameLine true, если клетки на одной строке или одном столбце.
func (p MapPosition) SameLine(other MapPosition) bool {
	return p.X == other.X || p.Y == other.Y
}

// SameDiagonal true, если |dx| == |dy|.
func (p MapPosition) SameDiagonal(other MapPosition) bool {
	return abs(p.X-other.X) == abs(p.Y-other.Y)
}

// Direction - одно из четырёх осевых направлений.
type Direction uint8

const (
	DirectionUp Direction = iota
	DirectionLeft
	DirectionRight
	DirectionDown
)

// Directions - фиксированный порядок обхода соседей (Up, Left, Right, Down).
// Поиск пути зависит от этого порядка, менять нельзя.
var Directions = [4]Direction{DirectionUp, DirectionLeft, DirectionRight, DirectionDown}

var directionDeltas = map[Direction][2]int{
	DirectionUp:    {0, 1},
	DirectionLeft:  {-1, 0},
	DirectionRight: {1, 0},
	DirectionDown:  {0, -1},
}

var directionNames = map[Direction]string{
	DirectionUp:    "UP",
	DirectionLeft:  "LEFT",
	DirectionRight: "RIGHT",
	DirectionDown:  "DOWN",
}

// Delta возвращает смещение (dx, dy) одного шага.
func (d Direction) Delta() (int, int) {
	delta := directionDeltas[d]
	return delta[0], delta[1]
}

func (d Direction) String() string {
	if name, ok := directionNames[d]; ok {
		return name
	}
	return "UNKNOWN"
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// DirectionTo возвращает осевое направление к цели.
// ok == false, если клетки совпадают или не лежат на одной оси (диагоналей нет).
func (p MapPosition) DirectionTo(to MapPosition) (Direction, bool) {
	dx, dy := to.X-p.X, to.Y-p.Y
	switch {
	case dx == 0 && dy > 0:
		return DirectionUp, true
	case dx == 0 && dy < 0:
		return DirectionDown, true
	case dy == 0 && dx > 0:
		return DirectionRight, true
	case dy == 0 && dx < 0:
		return DirectionLeft, true
	}
	return 0, false
}

// StraightPath проходит distance шагов в направлении dir, не проверяя препятствия.
// Стартовая клетка в результат не входит.
func (p MapPosition) StraightPath(dir Direction, distance int) []MapPosition {
	if distance <= 0 {
		return nil
	}
	dx, dy := dir.Delta()
	path := make([]MapPosition, 0, distance)
	current := p
	for i := 0; i < distance; i++ {
		current = current.Shift(dx, dy)
		path = append(path, current)
	}
	return path
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

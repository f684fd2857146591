package domain

import (
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// LayerID - логический слой карты.
type LayerID uint8

// Номера слоёв совпадают с порядком слоёв в файле карты.
const (
	LayerGround LayerID = iota
	LayerHighlight
	LayerObstacle
	LayerSpawnTeamA
	LayerSpawnTeamB
)

// Grid хранит занятость клеток по слоям для одной карты.
// Собирается один раз при загрузке карты; бой её только читает.
type Grid struct {
	ID         uint32
	Width      int
	Height     int
	TileWidth  float64
	TileHeight float64

	layers map[LayerID]mapset.Set[MapPosition]
}

func NewGrid(id uint32, width, height int, tileWidth, tileHeight float64) *Grid {
	return &Grid{
		ID:         id,
		Width:      width,
		Height:     height,
		TileWidth:  tileWidth,
		TileHeight: tileHeight,
		layers:     make(map[LayerID]mapset.Set[MapPosition]),
	}
}

// SetTile отмечает клетку слоя как занятую. Клетки вне карты игнорируются.
func (g *Grid) SetTile(layer LayerID, pos MapPosition) {
	if !g.InBounds(pos) {
		return
	}
	set, ok := g.layers[layer]
	if !ok {
		set = mapset.New[MapPosition]()
		g.layers[layer] = set
	}
	set.Put(pos)
}

// ClearTile снимает отметку. Используется только слоем подсветки.
func (g *Grid) ClearTile(layer LayerID, pos MapPosition) {
	if set, ok := g.layers[layer]; ok {
		set.Remove(pos)
	}
}

func (g *Grid) HasTile(layer LayerID, pos MapPosition) bool {
	set, ok := g.layers[layer]
	if !ok {
		return false
	}
	return set.Has(pos)
}

// Tiles возвращает клетки слоя в порядке строк (y, затем x).
func (g *Grid) Tiles(layer LayerID) []MapPosition {
	set, ok := g.layers[layer]
	if !ok {
		return nil
	}
	tiles := make([]MapPosition, 0, set.Size())
	set.Each(func(pos MapPosition) {
		tiles = append(tiles, pos)
	})
	SortPositions(tiles)
	return tiles
}

func (g *Grid) InBounds(pos MapPosition) bool {
	return pos.InBounds(g.Width, g.Height)
}

// IsObstacle: клетка вне карты или занята на слое препятствий.
func (g *Grid) IsObstacle(pos MapPosition) bool {
	if !g.InBounds(pos) {
		return true
	}
	return g.HasTile(LayerObstacle, pos)
}

// Neighbor - соседняя клетка и стоимость перехода в неё.
type Neighbor struct {
	Pos  MapPosition
	Cost uint32
}

// WalkableNeighbors возвращает осевых соседей в порядке Up, Left, Right, Down,
// отфильтрованных по границам карты и препятствиям. Стоимость всегда 1.
func (g *Grid) WalkableNeighbors(pos MapPosition) []Neighbor {
	neighbors := make([]Neighbor, 0, len(Directions))
	for _, dir := range Directions {
		dx, dy := dir.Delta()
		next := pos.Shift(dx, dy)
		if g.IsObstacle(next) {
			continue
		}
		neighbors = append(neighbors, Neighbor{Pos: next, Cost: 1})
	}
	return neighbors
}

// SortPositions сортирует клетки по строкам: y, затем x.
func SortPositions(cells []MapPosition) {
	sort.Slice(cells, func(i, j int) bool {
		if cells[i].Y != cells[j].Y {
			return cells[i].Y < cells[j].Y
		}
		return cells[i].X < cells[j].X
	})
}

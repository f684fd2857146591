package arena

import (
	"arena-server/internal/domain"
	"fmt"
	"math/rand"
)

// Значения по умолчанию для изометрической плитки.
const (
	DefaultTileWidth  = 64
	DefaultTileHeight = 32

	// Попыток на размещение одного укрытия.
	coverAttempts = 20
)

// Rect - прямоугольник клеток (столбы, укрытия).
type Rect struct {
	X, Y, W, H int
}

func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Intersects считает касание краями пересечением, поэтому между
// непересекающимися прямоугольниками всегда остается проход.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.W && r.X+r.W >= other.X &&
		r.Y <= other.Y+other.H && r.Y+r.H >= other.Y
}

// Cells возвращает клетки прямоугольника в порядке строк.
func (r Rect) Cells() []domain.MapPosition {
	cells := make([]domain.MapPosition, 0, r.W*r.H)
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			cells = append(cells, domain.NewMapPosition(x, y))
		}
	}
	return cells
}

// GridBuilder предоставляет fluent API для сборки карты боя.
// Первая ошибка запоминается и возвращается из Build.
type GridBuilder struct {
	id         uint32
	width      int
	height     int
	tileWidth  float64
	tileHeight float64

	layout  []string
	pillars []Rect
	cover   int
	rng     *rand.Rand

	err error
}

// NewGridBuilder создает builder для карты width x height.
func NewGridBuilder(id uint32, width, height int) *GridBuilder {
	return &GridBuilder{
		id:         id,
		width:      width,
		height:     height,
		tileWidth:  DefaultTileWidth,
		tileHeight: DefaultTileHeight,
	}
}

// WithTileSize задает размер плитки. Нулевые значения оставляют умолчания.
func (b *GridBuilder) WithTileSize(w, h float64) *GridBuilder {
	if w > 0 {
		b.tileWidth = w
	}
	if h > 0 {
		b.tileHeight = h
	}
	return b
}

// WithLayout задает карту строками. Размер карты берется из раскладки.
func (b *GridBuilder) WithLayout(rows []string) *GridBuilder {
	if len(rows) == 0 {
		return b
	}
	width := len(rows[0])
	for y, row := range rows {
		if len(row) != width {
			b.fail(fmt.Errorf("layout row %d has width %d, want %d", y, len(row), width))
			return b
		}
	}
	b.layout = rows
	b.width = width
	b.height = len(rows)
	return b
}

// WithPillar добавляет прямоугольное препятствие.
func (b *GridBuilder) WithPillar(r Rect) *GridBuilder {
	if r.W <= 0 || r.H <= 0 {
		b.fail(fmt.Errorf("pillar %+v has empty size", r))
		return b
	}
	b.pillars = append(b.pillars, r)
	return b
}

// WithCover расставляет count случайных укрытий 1x1..2x2.
// Укрытия не касаются друг друга, столбов и стартовых клеток.
func (b *GridBuilder) WithCover(count int, rng *rand.Rand) *GridBuilder {
	b.cover = count
	b.rng = rng
	return b
}

func (b *GridBuilder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// Build собирает и возвращает готовую карту
func (b *GridBuilder) Build() (*domain.Grid, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.width <= 0 || b.height <= 0 {
		return nil, fmt.Errorf("map size %dx%d is empty", b.width, b.height)
	}

	grid := domain.NewGrid(b.id, b.width, b.height, b.tileWidth, b.tileHeight)

	// 1. Земля и раскладка
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			pos := domain.NewMapPosition(x, y)
			grid.SetTile(domain.LayerGround, pos)
			if b.layout == nil {
				continue
			}
			switch ch := b.layout[y][x]; ch {
			case '.':
			case '#':
				grid.SetTile(domain.LayerObstacle, pos)
			case 'A', 'a':
				grid.SetTile(domain.LayerSpawnTeamA, pos)
			case 'B', 'b':
				grid.SetTile(domain.LayerSpawnTeamB, pos)
			default:
				return nil, fmt.Errorf("layout: unknown tile %q at %s", ch, pos)
			}
		}
	}

	// 2. Столбы
	for _, r := range b.pillars {
		for _, pos := range r.Cells() {
			if !grid.InBounds(pos) {
				return nil, fmt.Errorf("pillar %+v leaves the map", r)
			}
			grid.SetTile(domain.LayerObstacle, pos)
		}
	}

	// 3. Случайные укрытия
	if b.cover > 0 && b.rng != nil {
		b.placeCover(grid)
	}

	return grid, nil
}

func (b *GridBuilder) placeCover(grid *domain.Grid) {
	placed := make([]Rect, 0, b.cover+len(b.pillars))
	placed = append(placed, b.pillars...)

	for i := 0; i < b.cover; i++ {
		for attempt := 0; attempt < coverAttempts; attempt++ {
			w := b.randRange(1, 2)
			h := b.randRange(1, 2)
			if w >= b.width-1 || h >= b.height-1 {
				break
			}
			r := Rect{X: b.randRange(1, b.width-w-1), Y: b.randRange(1, b.height-h-1), W: w, H: h}
			if b.coverBlocked(grid, r, placed) {
				continue
			}
			for _, pos := range r.Cells() {
				grid.SetTile(domain.LayerObstacle, pos)
			}
			placed = append(placed, r)
			break
		}
	}
}

func (b *GridBuilder) coverBlocked(grid *domain.Grid, r Rect, placed []Rect) bool {
	for _, other := range placed {
		if r.Intersects(other) {
			return true
		}
	}
	for _, pos := range r.Cells() {
		if grid.IsObstacle(pos) || grid.HasTile(domain.LayerSpawnTeamA, pos) || grid.HasTile(domain.LayerSpawnTeamB, pos) {
			return true
		}
	}
	return false
}

// randRange возвращает значение в [min, max].
func (b *GridBuilder) randRange(min, max int) int {
	if max <= min {
		return min
	}
	return b.rng.Intn(max-min+1) + min
}

package domain

import "math"

// ScreenPoint - точка в пространстве рендера (после изометрической проекции).
type ScreenPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Project переводит клетку в экранные координаты.
//
//	x' = (x - y) * w/2
//	y' = -(x + y) * h/2
func Project(pos MapPosition, tileWidth, tileHeight float64) ScreenPoint {
	return ScreenPoint{
		X: float64(pos.X-pos.Y) * tileWidth / 2,
		Y: -float64(pos.X+pos.Y) * tileHeight / 2,
	}
}

// Unproject - обратное преобразование с округлением до ближайшей клетки.
// ok == false, если клетка вне [0,width) x [0,height).
func Unproject(point ScreenPoint, tileWidth, tileHeight float64, width, height int) (MapPosition, bool) {
	if tileWidth == 0 || tileHeight == 0 {
		return MapPosition{}, false
	}
	halfW := tileWidth / 2
	halfH := tileHeight / 2

	// u = x - y, v = x + y
	u := point.X / halfW
	v := -point.Y / halfH

	fx := math.Round((u + v) / 2)
	fy := math.Round((v - u) / 2)
	if math.IsNaN(fx) || math.IsNaN(fy) || math.IsInf(fx, 0) || math.IsInf(fy, 0) {
		return MapPosition{}, false
	}

	pos := MapPosition{X: int(fx), Y: int(fy)}
	if !pos.InBounds(width, height) {
		return MapPosition{}, false
	}
	return pos, true
}

// Line строит supercover-линию от a до b включительно.
// В линию попадает каждая клетка, которую пересекает отрезок между центрами.
// При точном прохождении через угол делается диагональный шаг, поэтому
// набор клеток Line(a, b) совпадает с набором Line(b, a).
func Line(a, b MapPosition) []MapPosition {
	dx := b.X - a.X
	dy := b.Y - a.Y
	nx, ny := abs(dx), abs(dy)
	signX, signY := sign(dx), sign(dy)

	points := make([]MapPosition, 0, nx+ny+1)
	p := a
	points = append(points, p)

	for ix, iy := 0, 0; ix < nx || iy < ny; {
		decision := (1+2*ix)*ny - (1+2*iy)*nx
		switch {
		case decision == 0:
			p = p.Shift(signX, signY)
			ix++
			iy++
		case decision < 0:
			p = p.Shift(signX, 0)
			ix++
		default:
			p = p.Shift(0, signY)
			iy++
		}
		points = append(points, p)
	}
	return points
}

// Surrounding возвращает клетки в пределах карты, расстояние до которых
// от center лежит в [minDist, maxDist]. Порядок: по строкам (y), затем по x.
// Сканируется только окно (2*maxDist+1)^2 вокруг центра.
func Surrounding(center MapPosition, minDist, maxDist, width, height int) []MapPosition {
	if maxDist < 0 || minDist > maxDist {
		return nil
	}
	if minDist < 0 {
		minDist = 0
	}

	x0, x1 := clampInt(center.X-maxDist, 0, width-1), clampInt(center.X+maxDist, 0, width-1)
	y0, y1 := clampInt(center.Y-maxDist, 0, height-1), clampInt(center.Y+maxDist, 0, height-1)

	var cells []MapPosition
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			pos := MapPosition{X: x, Y: y}
			if !pos.InBounds(width, height) {
				continue
			}
			d := Distance(center, pos)
			if d >= minDist && d <= maxDist {
				cells = append(cells, pos)
			}
		}
	}
	return cells
}

func sign(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package domain

import (
	"encoding/json"
	"fmt"
	"math"
)

// Attribute - ограниченное числовое значение бойца (здоровье, щит, очки действий, очки движения).
// Инвариант min <= value <= max поддерживается каждым методом.
type Attribute struct {
	value uint32
	min   uint32
	max   uint32
}

// NewAttribute создает атрибут, приводя входные данные к инварианту:
// max не ниже min, value зажат в [min, max].
func NewAttribute(value, min, max uint32) Attribute {
	if max < min {
		max = min
	}
	return Attribute{value: clampU32(value, min, max), min: min, max: max}
}

func (a Attribute) Value() uint32 { return a.value }
func (a Attribute) Min() uint32   { return a.min }
func (a Attribute) Max() uint32   { return a.max }

// SetValue выставляет значение, зажатое в [min, max].
func (a *Attribute) SetValue(v uint32) {
	a.value = clampU32(v, a.min, a.max)
}

// SetMin меняет нижнюю границу (не выше max) и поднимает value при необходимости.
func (a *Attribute) SetMin(min uint32) {
	if min > a.max {
		min = a.max
	}
	a.min = min
	if a.value < a.min {
		a.value = a.min
	}
}

// SetMax меняет верхнюю границу (не ниже min) и опускает value при необходимости.
func (a *Attribute) SetMax(max uint32) {
	if max < a.min {
		max = a.min
	}
	a.max = max
	if a.value > a.max {
		a.value = a.max
	}
}

// CanDrop проверяет, хватает ли value - min на amount.
func (a Attribute) CanDrop(amount uint32) bool {
	return a.value-a.min >= amount
}

// Drop уменьшает значение в сторону min.
// Возвращает остаток: ту часть amount, которую не удалось снять.
func (a *Attribute) Drop(amount uint32) uint32 {
	virtual := uint32(0)
	if a.value > amount {
		virtual = a.value - amount
	}
	next := clampU32(virtual, a.min, a.max)
	removed := a.value - next
	a.value = next
	return amount - removed
}

// DropMin опускает значение до min.
func (a *Attribute) DropMin() uint32 {
	return a.Drop(a.value - a.min)
}

// Rise увеличивает значение в сторону max. Возвращает неиспользованный остаток.
func (a *Attribute) Rise(amount uint32) uint32 {
	virtual := uint32(math.MaxUint32)
	if amount <= math.MaxUint32-a.value {
		virtual = a.value + amount
	}
	next := clampU32(virtual, a.min, a.max)
	added := next - a.value
	a.value = next
	return amount - added
}

// RiseMax полностью восстанавливает значение (начало хода).
func (a *Attribute) RiseMax() uint32 {
	return a.Rise(a.max)
}

// AsPercentage возвращает (value-min)/(max-min).
// Для вырожденного атрибута (max == min) возвращает 0.
func (a Attribute) AsPercentage() float32 {
	if a.max == a.min {
		return 0
	}
	return float32(a.value-a.min) / float32(a.max-a.min)
}

func (a Attribute) AsText() string {
	return fmt.Sprintf("%d / %d", a.value, a.max)
}

func (a Attribute) String() string {
	return fmt.Sprintf("%d [%d..%d]", a.value, a.min, a.max)
}

type attributeJSON struct {
	Value uint32 `json:"value"`
	Min   uint32 `json:"min"`
	Max   uint32 `json:"max"`
}

func (a Attribute) MarshalJSON() ([]byte, error) {
	return json.Marshal(attributeJSON{Value: a.value, Min: a.min, Max: a.max})
}

// UnmarshalJSON восстанавливает атрибут из снапшота, применяя инвариант.
func (a *Attribute) UnmarshalJSON(data []byte) error {
	var raw attributeJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = NewAttribute(raw.Value, raw.Min, raw.Max)
	return nil
}

// --- Типизированные атрибуты ---

// Health - здоровье. Единственный атрибут, поддерживающий эрозию.
type Health struct{ Attribute }

// Shield - щит, поглощает урон раньше здоровья.
type Shield struct{ Attribute }

// ActionPoints - очки действий, тратятся на Action.
type ActionPoints struct{ Attribute }

// MovementPoints - очки движения, тратятся на перемещение по пути.
type MovementPoints struct{ Attribute }

// Erode необратимо снижает максимум здоровья на round(amount * factor).
// Максимум не опускается ниже min, value при необходимости зажимается.
func (h *Health) Erode(amount uint32, factor float64) uint32 {
	erosion := roundToU32(float64(amount) * factor)
	newMax := h.min
	if h.max >= erosion && h.max-erosion >= h.min {
		newMax = h.max - erosion
	}
	lost := h.max - newMax
	h.SetMax(newMax)
	return lost
}

// IsDepleted true, когда здоровье опустилось до нуля.
func (h Health) IsDepleted() bool {
	return h.value == 0
}

func clampU32(v, lo, hi uint32) uint32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// roundToU32 округляет неотрицательное значение с насыщением.
// NaN и отрицательные значения дают 0.
func roundToU32(v float64) uint32 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	r := math.Round(v)
	if r >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(r)
}

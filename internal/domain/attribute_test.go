package domain

import (
	"encoding/json"
	"math"
	"testing"
)

func checkInvariant(t *testing.T, a Attribute, step string) {
	t.Helper()
	if a.Min() > a.Value() || a.Value() > a.Max() {
		t.Fatalf("%s: invariant broken: %s", step, a)
	}
}

func TestNewAttribute_Normalizes(t *testing.T) {
	tests := []struct {
		name                        string
		value, min, max             uint32
		wantValue, wantMin, wantMax uint32
	}{
		{"Valid", 5, 0, 10, 5, 0, 10},
		{"Value above max", 15, 0, 10, 10, 0, 10},
		{"Value below min", 1, 3, 10, 3, 3, 10},
		{"Max below min", 5, 8, 2, 8, 8, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAttribute(tt.value, tt.min, tt.max)
			if a.Value() != tt.wantValue || a.Min() != tt.wantMin || a.Max() != tt.wantMax {
				t.Errorf("NewAttribute(%d,%d,%d) = %s", tt.value, tt.min, tt.max, a)
			}
		})
	}
}

func TestAttribute_Drop(t *testing.T) {
	tests := []struct {
		name          string
		attr          Attribute
		amount        uint32
		wantValue     uint32
		wantRemainder uint32
	}{
		{"Partial", NewAttribute(10, 0, 10), 4, 6, 0},
		{"Exact", NewAttribute(10, 0, 10), 10, 0, 0},
		{"Overflow", NewAttribute(10, 0, 10), 15, 0, 5},
		{"Stops at min", NewAttribute(10, 4, 10), 10, 4, 4},
		{"Saturating", NewAttribute(3, 0, 10), math.MaxUint32, 0, math.MaxUint32 - 3},
		{"Zero", NewAttribute(7, 0, 10), 0, 7, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rem := tt.attr.Drop(tt.amount)
			if tt.attr.Value() != tt.wantValue {
				t.Errorf("value = %d, want %d", tt.attr.Value(), tt.wantValue)
			}
			if rem != tt.wantRemainder {
				t.Errorf("remainder = %d, want %d", rem, tt.wantRemainder)
			}
		})
	}
}

func TestAttribute_Rise(t *testing.T) {
	a := NewAttribute(2, 0, 10)
	if rem := a.Rise(5); rem != 0 || a.Value() != 7 {
		t.Errorf("Rise(5): value=%d rem=%d", a.Value(), rem)
	}
	if rem := a.Rise(5); rem != 2 || a.Value() != 10 {
		t.Errorf("Rise(5) overflow: value=%d rem=%d", a.Value(), rem)
	}
	if rem := a.Rise(math.MaxUint32); rem != math.MaxUint32 || a.Value() != 10 {
		t.Errorf("Rise(max) at full: value=%d rem=%d", a.Value(), rem)
	}

	a.Drop(10)
	a.RiseMax()
	if a.Value() != a.Max() {
		t.Errorf("RiseMax: value=%d, want %d", a.Value(), a.Max())
	}
}

func TestAttribute_CanDrop(t *testing.T) {
	a := NewAttribute(6, 1, 10)
	if !a.CanDrop(5) {
		t.Error("CanDrop(5) should be true for value 6 min 1")
	}
	if a.CanDrop(6) {
		t.Error("CanDrop(6) should be false for value 6 min 1")
	}
}

func TestAttribute_RemainderLaw(t *testing.T) {
	amounts := []uint32{0, 1, 3, 7, 10, 25, 1000}
	for _, amount := range amounts {
		a := NewAttribute(7, 2, 12)
		original := a.Value()
		rem := a.Drop(amount)
		a.Rise(amount - rem)
		if a.Value() != original {
			t.Errorf("drop(%d) then rise(%d): value=%d, want %d", amount, amount-rem, a.Value(), original)
		}
	}
}

func TestAttribute_InvariantUnderSequence(t *testing.T) {
	h := Health{NewAttribute(50, 0, 50)}
	ops := []struct {
		name string
		op   func()
	}{
		{"drop 10", func() { h.Drop(10) }},
		{"erode 30 x 0.5", func() { h.Erode(30, 0.5) }},
		{"rise 100", func() { h.Rise(100) }},
		{"erode huge", func() { h.Erode(math.MaxUint32, 10) }},
		{"drop huge", func() { h.Drop(math.MaxUint32) }},
		{"rise max", func() { h.RiseMax() }},
		{"set min 20", func() { h.SetMin(20) }},
		{"set max 5", func() { h.SetMax(5) }},
		{"drop min", func() { h.DropMin() }},
	}
	for _, step := range ops {
		step.op()
		checkInvariant(t, h.Attribute, step.name)
	}
}

func TestHealth_Erode(t *testing.T) {
	h := Health{NewAttribute(100, 0, 100)}

	lost := h.Erode(20, 0.5)
	if lost != 10 || h.Max() != 90 || h.Value() != 90 {
		t.Fatalf("Erode(20, 0.5): lost=%d %s", lost, h)
	}

	// Эрозия накапливается и не растет обратно
	prevMax := h.Max()
	for i := 0; i < 10; i++ {
		h.Erode(15, 0.3)
		if h.Max() > prevMax {
			t.Fatalf("max increased: %d -> %d", prevMax, h.Max())
		}
		prevMax = h.Max()
	}

	h.Erode(math.MaxUint32, 1)
	if h.Max() != h.Min() {
		t.Errorf("max should bottom out at min, got %s", h)
	}
}

func TestHealth_ErodeZeroFactor(t *testing.T) {
	h := Health{NewAttribute(40, 0, 50)}
	if lost := h.Erode(30, 0); lost != 0 || h.Max() != 50 {
		t.Errorf("zero erode factor must not change max, lost=%d %s", lost, h)
	}
}

func TestAttribute_AsPercentage(t *testing.T) {
	if p := NewAttribute(5, 0, 10).AsPercentage(); p != 0.5 {
		t.Errorf("AsPercentage = %v, want 0.5", p)
	}
	if p := NewAttribute(3, 3, 3).AsPercentage(); p != 0 {
		t.Errorf("degenerate AsPercentage = %v, want 0", p)
	}
	if txt := NewAttribute(5, 0, 10).AsText(); txt != "5 / 10" {
		t.Errorf("AsText = %q", txt)
	}
}

func TestAttribute_JSON(t *testing.T) {
	c := Combatant{ID: 1, Team: TeamB, Health: Health{NewAttribute(30, 0, 40)}}
	data, err := json.Marshal(c)
	if err != nil {
		t.Fatal(err)
	}

	var back Combatant
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if back.Team != TeamB || back.ID != 1 {
		t.Errorf("identity after JSON: %v %v", back.ID, back.Team)
	}
	if back.Health.Value() != 30 || back.Health.Max() != 40 {
		t.Errorf("health after JSON: %s", back.Health)
	}

	var a Attribute
	if err := json.Unmarshal([]byte(`{"value":99,"min":0,"max":10}`), &a); err != nil {
		t.Fatal(err)
	}
	if a.Value() != 10 {
		t.Errorf("decoded value must be clamped, got %d", a.Value())
	}
}

package engine

import (
	"arena-server/internal/domain"
	"reflect"
	"testing"
)

func ids(values ...uint32) []domain.CombatantID {
	out := make([]domain.CombatantID, len(values))
	for i, v := range values {
		out[i] = domain.CombatantID(v)
	}
	return out
}

func TestTurnOrder_Wraparound(t *testing.T) {
	for n := 1; n <= 5; n++ {
		values := make([]uint32, n)
		for i := range values {
			values[i] = uint32(i + 1)
		}
		order := NewTurnOrder(ids(values...))

		// Стартуем с середины, чтобы проверить не только index 0
		order.Advance()
		startIndex, startTurn := order.Index(), order.TurnNumber()

		for i := 0; i < n; i++ {
			order.Advance()
		}
		if order.Index() != startIndex {
			t.Errorf("n=%d: index = %d, want %d", n, order.Index(), startIndex)
		}
		if order.TurnNumber() != startTurn+1 {
			t.Errorf("n=%d: turn number = %d, want %d", n, order.TurnNumber(), startTurn+1)
		}
	}
}

func TestTurnOrder_AdvanceReportsTransition(t *testing.T) {
	order := NewTurnOrder(ids(1, 2))
	ended, started, ok := order.Advance()
	if !ok || ended != 1 || started != 2 {
		t.Errorf("Advance() = %v, %v, %v", ended, started, ok)
	}
	if next, _ := order.PeekNext(); next != 1 {
		t.Errorf("PeekNext() = %v, want c1", next)
	}
}

func TestTurnOrder_Dedup(t *testing.T) {
	order := NewTurnOrder(ids(1, 2, 1, 3, 2))
	if !reflect.DeepEqual(order.IDs(), ids(1, 2, 3)) {
		t.Errorf("IDs() = %v", order.IDs())
	}
}

func TestTurnOrder_Remove(t *testing.T) {
	tests := []struct {
		name           string
		advance        int // сколько раз сдвинуть курсор перед удалением
		remove         uint32
		wantCurrent    domain.CombatantID
		wantWasCurrent bool
		wantTurn       int
	}{
		{"Before cursor", 2, 1, 3, false, 1},
		{"After cursor", 1, 4, 2, false, 1},
		{"Current in the middle", 1, 2, 3, true, 1},
		{"Current is first", 0, 1, 2, true, 1},
		{"Current is last", 3, 4, 1, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := NewTurnOrder(ids(1, 2, 3, 4))
			for i := 0; i < tt.advance; i++ {
				order.Advance()
			}

			removed, wasCurrent := order.Remove(domain.CombatantID(tt.remove))
			if !removed || wasCurrent != tt.wantWasCurrent {
				t.Fatalf("Remove() = %v, %v", removed, wasCurrent)
			}
			if cur, _ := order.Current(); cur != tt.wantCurrent {
				t.Errorf("Current() = %v, want %v", cur, tt.wantCurrent)
			}
			if order.TurnNumber() != tt.wantTurn {
				t.Errorf("TurnNumber() = %d, want %d", order.TurnNumber(), tt.wantTurn)
			}
			if order.Contains(domain.CombatantID(tt.remove)) {
				t.Error("removed combatant still in order")
			}
		})
	}
}

// Удаление текущего бойца дает того, кто стоял следующим (по модулю новой длины).
func TestTurnOrder_RemoveCurrentNeverSkips(t *testing.T) {
	for n := 2; n <= 5; n++ {
		for at := 0; at < n; at++ {
			values := make([]uint32, n)
			for i := range values {
				values[i] = uint32(i + 1)
			}
			order := NewTurnOrder(ids(values...))
			for i := 0; i < at; i++ {
				order.Advance()
			}
			before := order.IDs()
			current, _ := order.Current()
			expected := before[(at+1)%n]

			order.Remove(current)
			if got, _ := order.Current(); got != expected {
				t.Errorf("n=%d at=%d: Current() = %v, want %v", n, at, got, expected)
			}
		}
	}
}

func TestTurnOrder_Idle(t *testing.T) {
	order := NewTurnOrder(ids(7))
	if removed, wasCurrent := order.Remove(7); !removed || !wasCurrent {
		t.Errorf("Remove(last) = %v, %v", removed, wasCurrent)
	}
	if !order.IsIdle() {
		t.Error("order must be idle")
	}
	if _, ok := order.Current(); ok {
		t.Error("Current() on idle order")
	}
	if _, _, ok := order.Advance(); ok {
		t.Error("Advance() on idle order")
	}
	if removed, _ := order.Remove(7); removed {
		t.Error("Remove() of unknown id")
	}
}

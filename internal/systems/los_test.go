package systems

import (
	"arena-server/internal/domain"
	"math/rand"
	"testing"
)

func TestHasLineOfSight(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .  (2,1) - стена
	// . # # # .  (1,2), (2,2), (3,2) - стена
	// . . # . .  (2,3) - стена
	// . . . . .
	g := createTestGrid(5, 5, pos(2, 1), pos(1, 2), pos(2, 2), pos(3, 2), pos(2, 3))

	tests := []struct {
		name string
		p1   domain.MapPosition
		p2   domain.MapPosition
		want bool
	}{
		{"Clear horizontal", pos(0, 0), pos(4, 0), true},
		{"Blocked horizontal", pos(0, 2), pos(4, 2), false},
		{"Clear diagonal", pos(0, 0), pos(1, 1), true},
		{"Blocked diagonal", pos(0, 0), pos(4, 4), false}, // через (2,2)
		{"Adjacent wall", pos(2, 0), pos(2, 1), true},     // Стоим рядом со стеной и смотрим на неё
		{"Behind wall", pos(2, 0), pos(2, 4), false},      // Стены (2,1)..(2,3) мешают
		{"Same cell", pos(3, 3), pos(3, 3), true},
		{"Corner graze", pos(0, 1), pos(1, 3), false}, // supercover проходит через (1,2)
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasLineOfSight(g, tt.p1, tt.p2); got != tt.want {
				t.Errorf("HasLineOfSight(%v, %v) = %v, want %v", tt.p1, tt.p2, got, tt.want)
			}
		})
	}
}

func TestHasLineOfSight_Symmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 20; round++ {
		g := createTestGrid(7, 7)
		for i := 0; i < 10; i++ {
			g.SetTile(domain.LayerObstacle, pos(rng.Intn(7), rng.Intn(7)))
		}
		for i := 0; i < 50; i++ {
			a := pos(rng.Intn(7), rng.Intn(7))
			b := pos(rng.Intn(7), rng.Intn(7))
			if HasLineOfSight(g, a, b) != HasLineOfSight(g, b, a) {
				t.Fatalf("asymmetric LOS between %v and %v", a, b)
			}
		}
	}
}

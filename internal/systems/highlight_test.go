package systems

import (
	"arena-server/internal/domain"
	"reflect"
	"testing"
)

func TestTargetableCells(t *testing.T) {
	g := createTestGrid(5, 5, pos(2, 3))
	r := domain.ActionRange{Kind: domain.RangeLine, Min: 1, Max: 2, LineOfSight: true}

	got := TargetableCells(g, pos(2, 2), r)
	// (2,3) - стена, (2,4) за стеной
	want := []domain.MapPosition{pos(2, 0), pos(2, 1), pos(0, 2), pos(1, 2), pos(3, 2), pos(4, 2)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TargetableCells = %v, want %v", got, want)
	}
}

func TestReachableCells(t *testing.T) {
	g := createTestGrid(5, 5, pos(1, 0))
	mover := newCombatant(1, pos(0, 0))
	mover.MovementPoints = domain.MovementPoints{Attribute: domain.NewAttribute(2, 0, 2)}
	occupied := func(p domain.MapPosition) bool { return p == pos(0, 2) }

	got := ReachableCells(g, mover, occupied)
	want := []domain.MapPosition{pos(0, 1), pos(1, 1)}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ReachableCells = %v, want %v", got, want)
	}
}

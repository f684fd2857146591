package arena

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func TestDefaultSkirmish(t *testing.T) {
	bf := Default()
	grid, combatants, err := bf.Build(1)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if grid.Width != 10 || grid.Height != 8 {
		t.Errorf("map size = %dx%d, want 10x8", grid.Width, grid.Height)
	}
	if !grid.IsObstacle(domain.NewMapPosition(4, 1)) {
		t.Error("(4,1) must be an obstacle")
	}
	if len(combatants) != 4 {
		t.Fatalf("combatants = %d, want 4", len(combatants))
	}

	wantPos := []domain.MapPosition{
		domain.NewMapPosition(0, 0),
		domain.NewMapPosition(0, 1),
		domain.NewMapPosition(9, 6),
		domain.NewMapPosition(9, 7),
	}
	for i, c := range combatants {
		if c.Position != wantPos[i] {
			t.Errorf("%s at %s, want %s", c.Name, c.Position, wantPos[i])
		}
	}

	knight := combatants[0]
	if knight.Health.Value() != 120 || knight.Shield.Value() != 0 || knight.Shield.Max() != 60 {
		t.Errorf("knight attributes: health %s shield %s", knight.Health, knight.Shield)
	}
	if len(knight.Actions) != 4 || knight.Actions[2].Name != "Рассечение" {
		t.Errorf("knight actions = %+v", knight.Actions)
	}
	if knight.Actions[2].Aoe.Kind != domain.AoeCross {
		t.Errorf("cleave aoe = %s", knight.Actions[2].Aoe.Kind)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"Unknown field", `
id: x
map: { width: 3, height: 3 }
bogus: 1
warriors: []`},
		{"Too few warriors", `
id: x
map: { width: 3, height: 3 }
warriors:
  - { name: a, team: A, health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }`},
		{"Unknown team", `
id: x
map: { width: 3, height: 3 }
warriors:
  - { name: a, team: C, health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }
  - { name: b, team: B, health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }`},
		{"No map size", `
id: x
map: {}
warriors:
  - { name: a, team: A, health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }
  - { name: b, team: B, health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.yaml))
			if !errors.Is(err, ErrInvalidBattle) {
				t.Errorf("expected ErrInvalidBattle, got %v", err)
			}
		})
	}
}

func TestBuild_ActionsAndPlacement(t *testing.T) {
	src := `
id: duel
map:
  width: 5
  height: 3
  pillars:
    - { x: 2, y: 0, w: 1, h: 2 }
actions:
  strike:
    name: Тяжелый удар
    cost: 5
    range: { kind: around, min: 1, max: 1 }
    effects:
      - { kind: damage, amount: 40 }
warriors:
  - name: Левый
    team: A
    position: { x: 0, y: 1 }
    health: { max: 50, value: 30 }
    actionPoints: { max: 6 }
    movementPoints: { max: 3 }
    actions:
      - strike
      - name: Прыжок
        cost: 1
        range: { kind: line, min: 1, max: 2 }
        effects:
          - { kind: teleport_self }
  - name: Правый
    team: B
    position: { x: 4, y: 1 }
    health: { max: 50 }
    actionPoints: { max: 6 }
    movementPoints: { max: 3 }
    actions: [{ use: arrow }]
`
	bf, err := Parse(strings.NewReader(src))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	grid, cs, err := bf.Build(7)
	if err != nil {
		t.Fatalf("build: %v", err)
	}

	if !grid.IsObstacle(domain.NewMapPosition(2, 1)) || grid.IsObstacle(domain.NewMapPosition(2, 2)) {
		t.Error("pillar cells wrong")
	}

	left := cs[0]
	if left.Health.Value() != 30 || left.Health.Max() != 50 {
		t.Errorf("explicit value ignored: %s", left.Health)
	}
	// Действие файла перекрывает встроенное
	if left.Actions[0].Name != "Тяжелый удар" || left.Actions[0].Cost != 5 {
		t.Errorf("file action must override builtin, got %+v", left.Actions[0])
	}
	if left.Actions[1].Effects[0].Kind != domain.EffectTeleportSelf || left.Actions[1].Range.Kind != domain.RangeLine {
		t.Errorf("inline action = %+v", left.Actions[1])
	}
	if cs[1].Actions[0].Name != Arrow.Name || !cs[1].Actions[0].Range.LineOfSight {
		t.Errorf("builtin arrow = %+v", cs[1].Actions[0])
	}
}

func TestBuild_PlacementErrors(t *testing.T) {
	base := func(pos string) string {
		return `
id: p
map:
  layout:
    - "A#."
    - "..B"
warriors:
  - { name: a, team: A, ` + pos + ` health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }
  - { name: b, team: A, health: {max: 1}, actionPoints: {max: 1}, movementPoints: {max: 1}, actions: [strike] }
`
	}

	t.Run("Obstacle position", func(t *testing.T) {
		bf, err := Parse(strings.NewReader(base("position: {x: 1, y: 0},")))
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := bf.Build(1); !errors.Is(err, ErrInvalidBattle) {
			t.Errorf("expected ErrInvalidBattle, got %v", err)
		}
	})

	t.Run("Spawn exhausted", func(t *testing.T) {
		bf, err := Parse(strings.NewReader(base("")))
		if err != nil {
			t.Fatal(err)
		}
		if _, _, err := bf.Build(1); !errors.Is(err, ErrNoSpawn) {
			t.Errorf("expected ErrNoSpawn, got %v", err)
		}
	})
}

func TestGridBuilder_Cover(t *testing.T) {
	build := func(seed int64) *domain.Grid {
		g, err := NewGridBuilder(1, 12, 10).
			WithLayout(nil).
			WithCover(4, rand.New(rand.NewSource(seed))).
			Build()
		if err != nil {
			t.Fatal(err)
		}
		return g
	}

	a, b := build(99), build(99)
	tilesA, tilesB := a.Tiles(domain.LayerObstacle), b.Tiles(domain.LayerObstacle)
	if len(tilesA) == 0 {
		t.Fatal("no cover placed")
	}
	if len(tilesA) != len(tilesB) {
		t.Fatalf("cover must be deterministic: %d vs %d", len(tilesA), len(tilesB))
	}
	for i := range tilesA {
		if tilesA[i] != tilesB[i] {
			t.Fatalf("cover differs at %d: %s vs %s", i, tilesA[i], tilesB[i])
		}
	}
	for _, pos := range tilesA {
		if pos.X == 0 || pos.Y == 0 || pos.X == 11 || pos.Y == 9 {
			t.Errorf("cover on border: %s", pos)
		}
	}
}

func TestGridBuilder_Errors(t *testing.T) {
	if _, err := NewGridBuilder(1, 3, 3).WithLayout([]string{"...", ".."}).Build(); err == nil {
		t.Error("ragged layout must fail")
	}
	if _, err := NewGridBuilder(1, 3, 3).WithLayout([]string{"..?"}).Build(); err == nil {
		t.Error("unknown tile must fail")
	}
	if _, err := NewGridBuilder(1, 3, 3).WithPillar(Rect{X: 2, Y: 2, W: 2, H: 1}).Build(); err == nil {
		t.Error("pillar outside map must fail")
	}
}

func TestRect_Intersects(t *testing.T) {
	r1 := Rect{0, 0, 10, 10}
	r2 := Rect{5, 5, 10, 10} // Пересекается
	r3 := Rect{20, 20, 5, 5} // Не пересекается

	if !r1.Intersects(r2) {
		t.Error("Rects should intersect")
	}
	if r1.Intersects(r3) {
		t.Error("Rects should NOT intersect")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battle.yaml")
	if err := os.WriteFile(path, defaultSkirmish, 0o644); err != nil {
		t.Fatal(err)
	}
	bf, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if bf.ID != "skirmish" {
		t.Errorf("id = %q", bf.ID)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("missing file must fail")
	}
}

func TestSchemaJSON(t *testing.T) {
	data, err := SchemaJSON()
	if err != nil {
		t.Fatal(err)
	}
	text := string(data)
	for _, want := range []string{`"BattleFile"`, `"warriors"`, `"critChance"`, `"Arena Battle File"`} {
		if !strings.Contains(text, want) {
			t.Errorf("schema missing %s", want)
		}
	}
	if !strings.HasSuffix(text, "\n") {
		t.Error("schema must end with newline")
	}
}

func TestActionDef_ToDomainEffects(t *testing.T) {
	def := ActionDef{
		Name: "Удар",
		Cost: 2,
		Effects: []EffectDef{
			{Kind: "damage", Amount: 10, CritChance: 1},
			{Kind: "damage", Amount: 10, CritChance: 1, CritMult: 3},
			{Kind: "push", Distance: 2},
		},
	}
	action, err := def.ToDomain()
	if err != nil {
		t.Fatal(err)
	}
	if action.Effects[0].CritMult != 1 {
		t.Errorf("unset critMult = %v, want 1", action.Effects[0].CritMult)
	}
	if action.Effects[1].CritMult != 3 {
		t.Errorf("explicit critMult = %v, want 3", action.Effects[1].CritMult)
	}
	if action.Effects[2].Distance != 2 {
		t.Errorf("distance = %d", action.Effects[2].Distance)
	}

	for _, d := range []int{-1, domain.MaxPushDistance + 1} {
		bad := ActionDef{Effects: []EffectDef{{Kind: "push", Distance: d}}}
		if _, err := bad.ToDomain(); err == nil {
			t.Errorf("distance %d must be rejected", d)
		}
	}
}

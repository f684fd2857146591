package arena

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

//go:embed skirmish.yaml
var defaultSkirmish []byte

var (
	ErrInvalidBattle = errors.New("invalid battle file")
	ErrNoSpawn       = errors.New("no free spawn cell")
)

// UnmarshalYAML принимает строку как краткую запись use: <имя>.
func (r *ActionRef) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		r.Use = node.Value
		return nil
	}
	type plain ActionRef
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = ActionRef(p)
	return nil
}

// Parse читает файл боя. Неизвестные поля - ошибка.
func Parse(r io.Reader) (*BattleFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var bf BattleFile
	if err := dec.Decode(&bf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBattle, err)
	}
	if err := bf.Validate(); err != nil {
		return nil, err
	}
	return &bf, nil
}

// Load читает файл боя с диска.
func Load(path string) (*BattleFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bf, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load %q: %w", path, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "arena",
		"battle_id": bf.ID,
		"warriors":  len(bf.Warriors),
		"path":      path,
	}).Info("Battle file loaded.")
	return bf, nil
}

// Default возвращает встроенную стычку 2 на 2.
func Default() *BattleFile {
	bf, err := Parse(bytes.NewReader(defaultSkirmish))
	if err != nil {
		panic("embedded skirmish is broken: " + err.Error())
	}
	return bf
}

// Validate проверяет структуру файла, не собирая карту.
func (bf *BattleFile) Validate() error {
	if bf.ID == "" {
		return fmt.Errorf("%w: id is required", ErrInvalidBattle)
	}
	if len(bf.Map.Layout) == 0 && (bf.Map.Width <= 0 || bf.Map.Height <= 0) {
		return fmt.Errorf("%w: map needs a layout or width/height", ErrInvalidBattle)
	}
	if len(bf.Warriors) < 2 {
		return fmt.Errorf("%w: at least two warriors required", ErrInvalidBattle)
	}
	for i, w := range bf.Warriors {
		if w.Name == "" {
			return fmt.Errorf("%w: warrior %d has no name", ErrInvalidBattle, i)
		}
		if _, ok := domain.ParseTeam(w.Team); !ok {
			return fmt.Errorf("%w: warrior %q has unknown team %q", ErrInvalidBattle, w.Name, w.Team)
		}
		if len(w.Actions) == 0 {
			return fmt.Errorf("%w: warrior %q has no actions", ErrInvalidBattle, w.Name)
		}
	}
	return nil
}

// Build собирает карту и бойцов. seed управляет расстановкой случайных укрытий.
// Порядок бойцов (и порядок ходов) совпадает с порядком в файле.
func (bf *BattleFile) Build(seed int64) (*domain.Grid, []*domain.Combatant, error) {
	// 1. Карта
	builder := NewGridBuilder(1, bf.Map.Width, bf.Map.Height).
		WithTileSize(bf.Map.TileWidth, bf.Map.TileHeight).
		WithLayout(bf.Map.Layout)
	for _, p := range bf.Map.Pillars {
		builder.WithPillar(Rect{X: p.X, Y: p.Y, W: p.W, H: p.H})
	}
	if bf.Map.Cover > 0 {
		builder.WithCover(bf.Map.Cover, rand.New(rand.NewSource(seed)))
	}
	grid, err := builder.Build()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidBattle, err)
	}

	// 2. Бойцы
	occupied := make(map[domain.MapPosition]bool)
	combatants := make([]*domain.Combatant, 0, len(bf.Warriors))
	for _, w := range bf.Warriors {
		c, err := bf.buildWarrior(w)
		if err != nil {
			return nil, nil, err
		}

		pos, err := place(grid, w, c.Team, occupied)
		if err != nil {
			return nil, nil, err
		}
		c.Position = pos
		occupied[pos] = true
		combatants = append(combatants, c)
	}

	return grid, combatants, nil
}

func (bf *BattleFile) buildWarrior(w WarriorDef) (*domain.Combatant, error) {
	team, _ := domain.ParseTeam(w.Team)
	c := &domain.Combatant{
		Name:           w.Name,
		Team:           team,
		Health:         domain.Health{Attribute: w.Health.toAttribute()},
		Shield:         domain.Shield{Attribute: w.Shield.toAttributeDefault(0)},
		ActionPoints:   domain.ActionPoints{Attribute: w.ActionPoints.toAttribute()},
		MovementPoints: domain.MovementPoints{Attribute: w.MovementPoints.toAttribute()},
	}

	for i, ref := range w.Actions {
		def, err := bf.resolveAction(ref)
		if err != nil {
			return nil, fmt.Errorf("%w: warrior %q action %d: %v", ErrInvalidBattle, w.Name, i, err)
		}
		action, err := def.ToDomain()
		if err != nil {
			return nil, fmt.Errorf("%w: warrior %q action %d: %v", ErrInvalidBattle, w.Name, i, err)
		}
		c.Actions = append(c.Actions, action)
	}
	return c, nil
}

// resolveAction: use ищется сначала в файле, потом среди встроенных.
func (bf *BattleFile) resolveAction(ref ActionRef) (ActionDef, error) {
	if ref.Use == "" {
		return ref.ActionDef, nil
	}
	def, ok := bf.Actions[ref.Use]
	if !ok {
		def, ok = BuiltinActions[ref.Use]
	}
	if !ok {
		return ActionDef{}, fmt.Errorf("unknown action %q", ref.Use)
	}
	if def.Name == "" {
		def.Name = ref.Use
	}
	return def, nil
}

// place возвращает явную позицию бойца или первую свободную стартовую клетку его команды.
func place(grid *domain.Grid, w WarriorDef, team domain.Team, occupied map[domain.MapPosition]bool) (domain.MapPosition, error) {
	if w.Position != nil {
		pos := domain.NewMapPosition(w.Position.X, w.Position.Y)
		if grid.IsObstacle(pos) || occupied[pos] {
			return pos, fmt.Errorf("%w: warrior %q cannot stand on %s", ErrInvalidBattle, w.Name, pos)
		}
		return pos, nil
	}
	for _, pos := range grid.Tiles(team.SpawnLayer()) {
		if !occupied[pos] && !grid.IsObstacle(pos) {
			return pos, nil
		}
	}
	return domain.MapPosition{}, fmt.Errorf("%w: team %s for warrior %q", ErrNoSpawn, team, w.Name)
}

func (a AttributeDef) toAttribute() domain.Attribute {
	value := a.Max
	if a.Value != nil {
		value = *a.Value
	}
	return domain.NewAttribute(value, a.Min, a.Max)
}

// toAttributeDefault - как toAttribute, но без явного Value стартует с value.
func (a AttributeDef) toAttributeDefault(value uint32) domain.Attribute {
	if a.Value != nil {
		value = *a.Value
	}
	return domain.NewAttribute(value, a.Min, a.Max)
}

// ToDomain конвертирует описание действия в доменное значение.
func (d ActionDef) ToDomain() (domain.Action, error) {
	action := domain.Action{
		Name:    d.Name,
		IconKey: d.Icon,
		Cost:    d.Cost,
	}

	if d.Range.Kind != "" {
		kind, ok := domain.ParseRangeKind(d.Range.Kind)
		if !ok {
			return action, fmt.Errorf("unknown range kind %q", d.Range.Kind)
		}
		action.Range.Kind = kind
	}
	if d.Range.Min > d.Range.Max {
		return action, fmt.Errorf("range min %d > max %d", d.Range.Min, d.Range.Max)
	}
	action.Range.Min = d.Range.Min
	action.Range.Max = d.Range.Max
	action.Range.LineOfSight = d.Range.LineOfSight

	if d.Aoe.Kind != "" {
		kind, ok := domain.ParseAoeKind(d.Aoe.Kind)
		if !ok {
			return action, fmt.Errorf("unknown aoe kind %q", d.Aoe.Kind)
		}
		action.Aoe.Kind = kind
	}
	if d.Aoe.Min > d.Aoe.Max {
		return action, fmt.Errorf("aoe min %d > max %d", d.Aoe.Min, d.Aoe.Max)
	}
	action.Aoe.Min = d.Aoe.Min
	action.Aoe.Max = d.Aoe.Max

	for _, e := range d.Effects {
		kind, ok := domain.ParseEffectKind(e.Kind)
		if !ok {
			return action, fmt.Errorf("unknown effect kind %q", e.Kind)
		}
		if e.Distance < 0 || e.Distance > domain.MaxPushDistance {
			return action, fmt.Errorf("effect distance %d out of [0, %d]", e.Distance, domain.MaxPushDistance)
		}
		// Не заданный множитель крита означает обычный урон, а не ноль
		critMult := e.CritMult
		if critMult == 0 {
			critMult = 1
		}
		action.Effects = append(action.Effects, domain.ActionEffect{
			Kind:       kind,
			Amount:     e.Amount,
			Erode:      e.Erode,
			CritMult:   critMult,
			CritChance: e.CritChance,
			Duration:   e.Duration,
			Distance:   e.Distance,
		})
	}
	return action, nil
}

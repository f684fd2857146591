package domain

import (
	"fmt"
	"strings"
)

// Action - действие бойца, описанное данными (стоимость, зона поражения, дальность, эффекты).
// Загружается из файла боя и во время боя не меняется.
type Action struct {
	Name    string         `json:"name"`
	IconKey string         `json:"iconKey,omitempty"`
	Cost    uint32         `json:"cost"`
	Aoe     ActionAoe      `json:"aoe"`
	Range   ActionRange    `json:"range"`
	Effects []ActionEffect `json:"effects"`
}

// --- Зона поражения (AOE) ---

type AoeKind uint8

const (
	// AoeCell - только целевая клетка.
	AoeCell AoeKind = iota
	// AoeZone - ромб вокруг цели: Min <= distance <= Max.
	AoeZone
	// AoeCross - крест по строке и столбцу цели: Min <= distance <= Max.
	AoeCross
)

var aoeKindNames = map[AoeKind]string{
	AoeCell:  "cell",
	AoeZone:  "zone",
	AoeCross: "cross",
}

type ActionAoe struct {
	Kind AoeKind `json:"kind"`
	Min  int     `json:"min,omitempty"`
	Max  int     `json:"max,omitempty"`
}

// Compute раскрывает целевую клетку в набор поражаемых клеток.
// Препятствия из набора исключаются.
func (a ActionAoe) Compute(target MapPosition, grid *Grid) []MapPosition {
	var candidates []MapPosition
	switch a.Kind {
	case AoeZone:
		candidates = Surrounding(target, a.Min, a.Max, grid.Width, grid.Height)
	case AoeCross:
		for _, pos := range Surrounding(target, a.Min, a.Max, grid.Width, grid.Height) {
			if pos.SameLine(target) {
				candidates = append(candidates, pos)
			}
		}
	default:
		candidates = []MapPosition{target}
	}

	cells := make([]MapPosition, 0, len(candidates))
	for _, pos := range candidates {
		if !grid.IsObstacle(pos) {
			cells = append(cells, pos)
		}
	}
	return cells
}

// --- Дальность ---

type RangeKind uint8

const (
	RangeAround RangeKind = iota
	RangeLine
	RangeDiagonal
)

var rangeKindNames = map[RangeKind]string{
	RangeAround:   "around",
	RangeLine:     "line",
	RangeDiagonal: "diagonal",
}

type ActionRange struct {
	Kind        RangeKind `json:"kind"`
	Min         int       `json:"min"`
	Max         int       `json:"max"`
	LineOfSight bool      `json:"lineOfSight"`
}

// CanReach проверяет дистанцию и форму дальности.
// Around - только дистанция, Line - та же строка или столбец, Diagonal - |dx| == |dy|.
func (r ActionRange) CanReach(from, to MapPosition) bool {
	d := Distance(from, to)
	if d < r.Min || d > r.Max {
		return false
	}
	switch r.Kind {
	case RangeLine:
		return from.SameLine(to)
	case RangeDiagonal:
		return from.SameDiagonal(to)
	default:
		return true
	}
}

// --- Эффекты ---

type EffectKind uint8

const (
	EffectNothing EffectKind = iota
	EffectDamage
	EffectDamageOverTime
	EffectHeal
	EffectShield
	EffectRemoveActionPoints
	EffectStealActionPoints
	EffectRemoveMovementPoints
	EffectStealMovementPoints
	EffectPush
	EffectTeleportSelf
	EffectTeleportSwitch
)

var effectKindNames = map[EffectKind]string{
	EffectNothing:              "nothing",
	EffectDamage:               "damage",
	EffectDamageOverTime:       "damage_over_time",
	EffectHeal:                 "heal",
	EffectShield:               "shield",
	EffectRemoveActionPoints:   "remove_action_points",
	EffectStealActionPoints:    "steal_action_points",
	EffectRemoveMovementPoints: "remove_movement_points",
	EffectStealMovementPoints:  "steal_movement_points",
	EffectPush:                 "push",
	EffectTeleportSelf:         "teleport_self",
	EffectTeleportSwitch:       "teleport_switch",
}

// ActionEffect - один эффект действия. Используются только поля, нужные его Kind:
//   - Damage: Amount, Erode, CritMult, CritChance
//   - DamageOverTime: Amount, Erode, Duration
//   - Heal, Shield, Remove*/Steal*: Amount
//   - Push: Distance
type ActionEffect struct {
	Kind       EffectKind `json:"kind"`
	Amount     uint32     `json:"amount,omitempty"`
	Erode      float64    `json:"erode,omitempty"`
	CritMult   float64    `json:"critMult,omitempty"`
	CritChance float64    `json:"critChance,omitempty"`
	Duration   uint32     `json:"duration,omitempty"`
	Distance   int        `json:"distance,omitempty"`
}

// ActorRelative true для эффектов, которые действуют на самого исполнителя
// и применяются один раз за действие.
func (e ActionEffect) ActorRelative() bool {
	return e.Kind == EffectTeleportSelf || e.Kind == EffectTeleportSwitch
}

// --- Строковое представление ---

func (k AoeKind) String() string    { return nameOr(aoeKindNames, k) }
func (k RangeKind) String() string  { return nameOr(rangeKindNames, k) }
func (k EffectKind) String() string { return nameOr(effectKindNames, k) }

func (k AoeKind) MarshalText() ([]byte, error)    { return []byte(k.String()), nil }
func (k RangeKind) MarshalText() ([]byte, error)  { return []byte(k.String()), nil }
func (k EffectKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *AoeKind) UnmarshalText(b []byte) error    { return unmarshalName(aoeKindNames, b, k) }
func (k *RangeKind) UnmarshalText(b []byte) error  { return unmarshalName(rangeKindNames, b, k) }
func (k *EffectKind) UnmarshalText(b []byte) error { return unmarshalName(effectKindNames, b, k) }

// ParseAoeKind конвертирует имя из файла боя. ok == false для неизвестного имени.
func ParseAoeKind(s string) (AoeKind, bool) { return parseName(aoeKindNames, s) }

func ParseRangeKind(s string) (RangeKind, bool) { return parseName(rangeKindNames, s) }

func ParseEffectKind(s string) (EffectKind, bool) { return parseName(effectKindNames, s) }

func unmarshalName[K comparable](names map[K]string, b []byte, dst *K) error {
	k, ok := parseName(names, string(b))
	if !ok {
		return fmt.Errorf("unknown kind %q", string(b))
	}
	*dst = k
	return nil
}

func nameOr[K comparable](names map[K]string, k K) string {
	if name, ok := names[k]; ok {
		return name
	}
	return "unknown"
}

func parseName[K comparable](names map[K]string, s string) (K, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range names {
		if name == s {
			return k, true
		}
	}
	var zero K
	return zero, false
}

package arena

// BattleFile - корневой объект файла боя (YAML).
// Описывает карту, бойцов и их действия. Во время боя не меняется.
type BattleFile struct {
	ID   string `yaml:"id" json:"id" jsonschema:"title=Battle ID,description=Identifier used by clients to join the battle,pattern=^[a-z0-9_-]+$,minLength=1,required"`
	Name string `yaml:"name,omitempty" json:"name,omitempty" jsonschema:"description=Human readable title"`

	Map MapDef `yaml:"map" json:"map" jsonschema:"required"`

	// Actions - библиотека именованных действий файла. Бойцы ссылаются на них через use.
	// Имя из файла перекрывает встроенное действие с тем же именем.
	Actions map[string]ActionDef `yaml:"actions,omitempty" json:"actions,omitempty" jsonschema:"description=Named actions referenced by warriors"`

	Warriors []WarriorDef `yaml:"warriors" json:"warriors" jsonschema:"minItems=2,required"`
}

// MapDef - карта боя.
// Если задан Layout, размеры берутся из него:
//
//	'.' земля, '#' препятствие, 'A'/'B' стартовые клетки команд.
type MapDef struct {
	Width      int      `yaml:"width,omitempty" json:"width,omitempty" jsonschema:"minimum=1"`
	Height     int      `yaml:"height,omitempty" json:"height,omitempty" jsonschema:"minimum=1"`
	TileWidth  float64  `yaml:"tileWidth,omitempty" json:"tileWidth,omitempty" jsonschema:"description=Isometric tile width in pixels (default 64)"`
	TileHeight float64  `yaml:"tileHeight,omitempty" json:"tileHeight,omitempty" jsonschema:"description=Isometric tile height in pixels (default 32)"`
	Layout     []string `yaml:"layout,omitempty" json:"layout,omitempty" jsonschema:"description=Rows of the map: . ground / # obstacle / A B spawn cells"`

	Pillars []RectDef `yaml:"pillars,omitempty" json:"pillars,omitempty" jsonschema:"description=Rectangular obstacles"`

	// Cover - сколько случайных укрытий расставить (детерминировано сидом боя).
	Cover int `yaml:"cover,omitempty" json:"cover,omitempty" jsonschema:"minimum=0"`
}

type RectDef struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
	W int `yaml:"w" json:"w" jsonschema:"minimum=1"`
	H int `yaml:"h" json:"h" jsonschema:"minimum=1"`
}

type PosDef struct {
	X int `yaml:"x" json:"x"`
	Y int `yaml:"y" json:"y"`
}

// WarriorDef - боец. Без Position встает на первую свободную стартовую клетку команды.
type WarriorDef struct {
	Name     string  `yaml:"name" json:"name" jsonschema:"minLength=1,required"`
	Team     string  `yaml:"team" json:"team" jsonschema:"enum=A,enum=B,required"`
	Position *PosDef `yaml:"position,omitempty" json:"position,omitempty"`

	Health         AttributeDef `yaml:"health" json:"health" jsonschema:"required"`
	Shield         AttributeDef `yaml:"shield,omitempty" json:"shield,omitempty"`
	ActionPoints   AttributeDef `yaml:"actionPoints" json:"actionPoints" jsonschema:"required"`
	MovementPoints AttributeDef `yaml:"movementPoints" json:"movementPoints" jsonschema:"required"`

	Actions []ActionRef `yaml:"actions" json:"actions" jsonschema:"minItems=1,required"`
}

// AttributeDef - ограниченное значение. Value по умолчанию равен Max.
type AttributeDef struct {
	Value *uint32 `yaml:"value,omitempty" json:"value,omitempty"`
	Min   uint32  `yaml:"min,omitempty" json:"min,omitempty"`
	Max   uint32  `yaml:"max" json:"max"`
}

// ActionRef - элемент списка действий бойца: ссылка на библиотеку (use)
// или действие, описанное прямо на месте. Строка "strike" - краткая запись use: strike.
type ActionRef struct {
	Use       string `yaml:"use,omitempty" json:"use,omitempty" jsonschema:"description=Name of a library or built-in action"`
	ActionDef `yaml:",inline"`
}

type ActionDef struct {
	Name    string      `yaml:"name,omitempty" json:"name,omitempty"`
	Icon    string      `yaml:"icon,omitempty" json:"icon,omitempty"`
	Cost    uint32      `yaml:"cost,omitempty" json:"cost,omitempty"`
	Range   RangeDef    `yaml:"range,omitempty" json:"range,omitempty"`
	Aoe     AoeDef      `yaml:"aoe,omitempty" json:"aoe,omitempty"`
	Effects []EffectDef `yaml:"effects,omitempty" json:"effects,omitempty"`
}

type RangeDef struct {
	Kind        string `yaml:"kind,omitempty" json:"kind,omitempty" jsonschema:"enum=around,enum=line,enum=diagonal"`
	Min         int    `yaml:"min,omitempty" json:"min,omitempty" jsonschema:"minimum=0"`
	Max         int    `yaml:"max,omitempty" json:"max,omitempty" jsonschema:"minimum=0"`
	LineOfSight bool   `yaml:"lineOfSight,omitempty" json:"lineOfSight,omitempty"`
}

type AoeDef struct {
	Kind string `yaml:"kind,omitempty" json:"kind,omitempty" jsonschema:"enum=cell,enum=zone,enum=cross"`
	Min  int    `yaml:"min,omitempty" json:"min,omitempty" jsonschema:"minimum=0"`
	Max  int    `yaml:"max,omitempty" json:"max,omitempty" jsonschema:"minimum=0"`
}

// EffectDef - эффект действия. Какие поля нужны, зависит от Kind.
type EffectDef struct {
	Kind       string  `yaml:"kind" json:"kind" jsonschema:"required,enum=nothing,enum=damage,enum=damage_over_time,enum=heal,enum=shield,enum=remove_action_points,enum=steal_action_points,enum=remove_movement_points,enum=steal_movement_points,enum=push,enum=teleport_self,enum=teleport_switch"`
	Amount     uint32  `yaml:"amount,omitempty" json:"amount,omitempty"`
	Erode      float64 `yaml:"erode,omitempty" json:"erode,omitempty" jsonschema:"minimum=0,maximum=1"`
	CritMult   float64 `yaml:"critMult,omitempty" json:"critMult,omitempty" jsonschema:"minimum=0,description=Crit damage multiplier (default 1)"`
	CritChance float64 `yaml:"critChance,omitempty" json:"critChance,omitempty" jsonschema:"minimum=0,maximum=1"`
	Duration   uint32  `yaml:"duration,omitempty" json:"duration,omitempty"`
	Distance   int     `yaml:"distance,omitempty" json:"distance,omitempty" jsonschema:"minimum=0,maximum=256"`
}

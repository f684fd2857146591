package arena

// Встроенная библиотека действий. Файл боя может ссылаться на них через use
// или перекрыть своим действием с тем же именем.

// --- БЛИЖНИЙ БОЙ ---

var Strike = ActionDef{
	Name:  "Удар",
	Icon:  "strike",
	Cost:  3,
	Range: RangeDef{Kind: "around", Min: 1, Max: 1},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "damage", Amount: 20, Erode: 0.1, CritMult: 1.5, CritChance: 0.1},
	},
}

var Shove = ActionDef{
	Name:  "Толчок",
	Icon:  "shove",
	Cost:  2,
	Range: RangeDef{Kind: "line", Min: 1, Max: 1},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "damage", Amount: 5},
		{Kind: "push", Distance: 2},
	},
}

var Hamstring = ActionDef{
	Name:  "Подрезать сухожилия",
	Icon:  "hamstring",
	Cost:  2,
	Range: RangeDef{Kind: "around", Min: 1, Max: 1},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "damage", Amount: 8},
		{Kind: "remove_movement_points", Amount: 2},
	},
}

// --- ДАЛЬНИЙ БОЙ ---

var Arrow = ActionDef{
	Name:  "Стрела",
	Icon:  "arrow",
	Cost:  3,
	Range: RangeDef{Kind: "line", Min: 2, Max: 6, LineOfSight: true},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "damage", Amount: 15, CritMult: 2, CritChance: 0.15},
	},
}

var Fireball = ActionDef{
	Name:  "Огненный шар",
	Icon:  "fireball",
	Cost:  4,
	Range: RangeDef{Kind: "around", Min: 2, Max: 5, LineOfSight: true},
	Aoe:   AoeDef{Kind: "zone", Min: 0, Max: 1},
	Effects: []EffectDef{
		{Kind: "damage", Amount: 12, Erode: 0.2},
	},
}

var PoisonDart = ActionDef{
	Name:  "Отравленный дротик",
	Icon:  "poison",
	Cost:  2,
	Range: RangeDef{Kind: "diagonal", Min: 1, Max: 4, LineOfSight: true},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "damage_over_time", Amount: 6, Duration: 3},
	},
}

var Sap = ActionDef{
	Name:  "Истощение",
	Icon:  "sap",
	Cost:  2,
	Range: RangeDef{Kind: "around", Min: 1, Max: 3, LineOfSight: true},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "steal_action_points", Amount: 2},
	},
}

var Snare = ActionDef{
	Name:  "Ловушка",
	Icon:  "snare",
	Cost:  2,
	Range: RangeDef{Kind: "around", Min: 1, Max: 4},
	Aoe:   AoeDef{Kind: "cross", Min: 0, Max: 1},
	Effects: []EffectDef{
		{Kind: "steal_movement_points", Amount: 1},
	},
}

// --- ПОДДЕРЖКА ---

var Mend = ActionDef{
	Name:  "Лечение",
	Icon:  "mend",
	Cost:  3,
	Range: RangeDef{Kind: "around", Min: 0, Max: 3},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "heal", Amount: 25},
	},
}

var Barrier = ActionDef{
	Name:  "Барьер",
	Icon:  "barrier",
	Cost:  2,
	Range: RangeDef{Kind: "around", Min: 0, Max: 0},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "shield", Amount: 30},
	},
}

var Blink = ActionDef{
	Name:  "Рывок",
	Icon:  "blink",
	Cost:  2,
	Range: RangeDef{Kind: "around", Min: 1, Max: 4, LineOfSight: true},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "teleport_self"},
	},
}

var Swap = ActionDef{
	Name:  "Подмена",
	Icon:  "swap",
	Cost:  3,
	Range: RangeDef{Kind: "around", Min: 1, Max: 5, LineOfSight: true},
	Aoe:   AoeDef{Kind: "cell"},
	Effects: []EffectDef{
		{Kind: "teleport_switch"},
	},
}

// BuiltinActions - реестр встроенных действий по имени для use.
var BuiltinActions = map[string]ActionDef{
	"strike":    Strike,
	"shove":     Shove,
	"hamstring": Hamstring,
	"arrow":     Arrow,
	"fireball":  Fireball,
	"poison":    PoisonDart,
	"sap":       Sap,
	"snare":     Snare,
	"mend":      Mend,
	"barrier":   Barrier,
	"blink":     Blink,
	"swap":      Swap,
}

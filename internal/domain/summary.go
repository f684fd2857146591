package domain

// DamageResult - что произошло с целью после урона.
type DamageResult struct {
	Amount     uint32 `json:"amount"`     // Урон после крита
	Crit       bool   `json:"crit"`       // Был ли крит
	Absorbed   uint32 `json:"absorbed"`   // Поглощено щитом
	HealthLost uint32 `json:"healthLost"` // Снято со здоровья
	Eroded     uint32 `json:"eroded"`     // Потеря максимума здоровья
}

// PushResult - результат толчка.
type PushResult struct {
	From      MapPosition `json:"from"`
	To        MapPosition `json:"to"`
	Direction Direction   `json:"direction"`
	Collided  bool        `json:"collided"`
	// Шагов после препятствия, которые не удалось пройти. Урон от столкновения считается от них.
	BlockedSteps int `json:"blockedSteps"`
	// Урон от столкновения (если был)
	Collision *DamageResult `json:"collision,omitempty"`
}

// Moved true, если цель сдвинулась хотя бы на клетку.
func (r PushResult) Moved() bool { return r.From != r.To }

// AppliedEffect - применение одного эффекта к одной цели.
// Заполнены только поля, относящиеся к Kind.
type AppliedEffect struct {
	Kind   EffectKind  `json:"kind"`
	Target CombatantID `json:"target,omitempty"`

	Damage *DamageResult `json:"damage,omitempty"`
	Push   *PushResult   `json:"push,omitempty"`

	// Heal / Shield / Remove* - фактически изменено
	Amount uint32 `json:"amount,omitempty"`
	// Steal* - получено исполнителем
	Gained uint32 `json:"gained,omitempty"`

	// Teleport*: позиция исполнителя до и после
	From *MapPosition `json:"from,omitempty"`
	To   *MapPosition `json:"to,omitempty"`

	// Эффект ни на что не повлиял (нет оси для толчка, клетка занята и т.п.)
	NoOp bool `json:"noOp,omitempty"`
}

// AppliedEffectsSummary - отчет о выполненном действии для лога боя и клиента.
type AppliedEffectsSummary struct {
	Actor    CombatantID     `json:"actor"`
	Action   string          `json:"action"`
	Target   MapPosition     `json:"target"`
	Cost     uint32          `json:"cost"`
	HitCells []MapPosition   `json:"hitCells"`
	Targets  []CombatantID   `json:"targets"`
	Effects  []AppliedEffect `json:"effects"`
	Deaths   []CombatantID   `json:"deaths,omitempty"`
}

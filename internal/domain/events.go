package domain

// EventType - событие боя, наблюдаемое снаружи (UI, лог, таймер хода).
type EventType uint8

const (
	EventUnknown EventType = iota
	EventTurnStarted
	EventTurnEnded
	EventCombatantDied
	EventBattleOver
	EventDamageOverTime
)

var eventTypeToString = map[EventType]string{
	EventTurnStarted:    "TURN_STARTED",
	EventTurnEnded:      "TURN_ENDED",
	EventCombatantDied:  "COMBATANT_DIED",
	EventBattleOver:     "BATTLE_OVER",
	EventDamageOverTime: "DAMAGE_OVER_TIME",
}

func (e EventType) String() string {
	if val, ok := eventTypeToString[e]; ok {
		return val
	}
	return "UNKNOWN"
}

func (e EventType) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// Event - уведомление для подписчиков боя.
type Event struct {
	Type       EventType   `json:"type"`
	Combatant  CombatantID `json:"combatant,omitempty"`
	TurnNumber int         `json:"turnNumber"`

	// DAMAGE_OVER_TIME: итог тика
	Damage *DamageResult `json:"damage,omitempty"`
	// BATTLE_OVER: победившая команда, пусто при ничьей
	Winner string `json:"winner,omitempty"`
}

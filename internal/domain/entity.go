package domain

import "fmt"

// Team - сторона боя.
type Team uint8

const (
	TeamA Team = iota
	TeamB
)

var teamNames = map[Team]string{
	TeamA: "A",
	TeamB: "B",
}

func (t Team) String() string { return nameOr(teamNames, t) }

func (t Team) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *Team) UnmarshalText(b []byte) error {
	team, ok := ParseTeam(string(b))
	if !ok {
		return fmt.Errorf("unknown team %q", string(b))
	}
	*t = team
	return nil
}

// ParseTeam принимает "A"/"B" без учета регистра.
func ParseTeam(s string) (Team, bool) {
	switch s {
	case "A", "a":
		return TeamA, true
	case "B", "b":
		return TeamB, true
	}
	return TeamA, false
}

// SpawnLayer возвращает слой карты со стартовыми клетками команды.
func (t Team) SpawnLayer() LayerID {
	if t == TeamB {
		return LayerSpawnTeamB
	}
	return LayerSpawnTeamA
}

// ActiveEffect - отложенный урон (damage over time), тикает в начале хода цели.
type ActiveEffect struct {
	SourceID          CombatantID `json:"sourceId"`
	Amount            uint32      `json:"amount"`
	Erode             float64     `json:"erode"`
	RemainingDuration uint32      `json:"remainingDuration"`
}

// Combatant - боец. Состояние меняется только через движок боя.
type Combatant struct {
	ID   CombatantID `json:"id"`
	Name string      `json:"name"`
	Team Team        `json:"team"`

	Position MapPosition `json:"position"`

	Health         Health         `json:"health"`
	Shield         Shield         `json:"shield"`
	ActionPoints   ActionPoints   `json:"actionPoints"`
	MovementPoints MovementPoints `json:"movementPoints"`

	Actions       []Action       `json:"actions"`
	ActiveEffects []ActiveEffect `json:"activeEffects,omitempty"`

	// Dead выставляется зачисткой после действия; мертвый боец не занимает клетку.
	Dead bool `json:"dead"`
}

// IsAlive - жив и участвует в бою.
func (c *Combatant) IsAlive() bool {
	return !c.Dead && !c.Health.IsDepleted()
}

// Action возвращает действие по индексу.
func (c *Combatant) Action(index int) (Action, bool) {
	if index < 0 || index >= len(c.Actions) {
		return Action{}, false
	}
	return c.Actions[index], true
}

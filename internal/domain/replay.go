package domain

import "encoding/json"

// ReplayAction - одна принятая команда, изменившая бой.
type ReplayAction struct {
	Turn    int             `json:"turn"`    // Номер круга в момент команды
	Actor   CombatantID     `json:"actor"`   // Кто сделал
	Command CommandType     `json:"command"` // Что сделал
	Payload json.RawMessage `json:"payload"` // С какими параметрами
}

// ReplaySession - полная запись боя. Вместе с файлом боя и сидом
// позволяет детерминированно пересчитать бой.
type ReplaySession struct {
	BattleID  string         `json:"battleId"`
	Seed      int64          `json:"seed"` // Зерно генератора критов
	Timestamp int64          `json:"timestamp"`
	Actions   []ReplayAction `json:"actions"`
}

package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// CombatantID - стабильный индекс бойца в арене боя.
// Не переиспользуется после смерти бойца.
type CombatantID uint32

// NilCombatantID - отсутствие бойца (для пустой очереди и т.п.).
const NilCombatantID CombatantID = 0

// String для логов: "c3"
func (id CombatantID) String() string {
	return fmt.Sprintf("c%d", uint32(id))
}

// ParseCombatantID принимает "c3" или "3" (токен клиента).
func ParseCombatantID(s string) (CombatantID, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "c")
	val, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return NilCombatantID, fmt.Errorf("invalid combatant id %q: %w", s, err)
	}
	if val == 0 {
		return NilCombatantID, fmt.Errorf("combatant id must be positive")
	}
	return CombatantID(val), nil
}

// MarshalText сериализует ID как "c3" (ключи JSON-мап и поля токенов).
func (id CombatantID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

func (id *CombatantID) UnmarshalText(data []byte) error {
	parsed, err := ParseCombatantID(string(data))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

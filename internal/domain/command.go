package domain

import "encoding/json"

// InternalCommand - команда для движка боя.
// Использует CommandType вместо string.
type InternalCommand struct {
	Type    CommandType     // Число! Быстро и безопасно.
	Actor   CombatantID     // Кто выполняет
	Payload json.RawMessage // Сырые данные (парсятся хендлером)
}

package engine

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// EventListener получает события боя в порядке их возникновения.
type EventListener func(domain.Event)

// TurnManager ведет TurnOrder и рассылает уведомления "ход начат / ход окончен".
// События, возникшие внутри обработчика, ставятся в очередь и доставляются после
// текущего, поэтому каждый подписчик видит их в одном и том же порядке.
type TurnManager struct {
	order     *TurnOrder
	listeners []EventListener

	pending     []domain.Event
	dispatching bool
	halted      bool
}

func NewTurnManager(ids []domain.CombatantID) *TurnManager {
	return &TurnManager{order: NewTurnOrder(ids)}
}

// Subscribe добавляет подписчика. Подписчики вызываются в порядке подписки.
func (tm *TurnManager) Subscribe(l EventListener) {
	tm.listeners = append(tm.listeners, l)
}

// Halt останавливает смену ходов (бой окончен). Порядок больше не продвигается.
func (tm *TurnManager) Halt() { tm.halted = true }

func (tm *TurnManager) Halted() bool { return tm.halted }

// Start объявляет начало хода текущего бойца (первый ход боя).
func (tm *TurnManager) Start() {
	if tm.halted {
		return
	}
	if current, ok := tm.order.Current(); ok {
		tm.Emit(domain.Event{Type: domain.EventTurnStarted, Combatant: current})
	}
}

// Advance завершает текущий ход и начинает следующий.
func (tm *TurnManager) Advance() {
	if tm.halted {
		return
	}
	ended, started, ok := tm.order.Advance()
	if !ok {
		return
	}
	tm.Emit(domain.Event{Type: domain.EventTurnEnded, Combatant: ended})
	tm.Emit(domain.Event{Type: domain.EventTurnStarted, Combatant: started})
}

// Remove убирает бойца (смерть). Если он ходил, начинается ход нового текущего.
func (tm *TurnManager) Remove(id domain.CombatantID) {
	removed, wasCurrent := tm.order.Remove(id)
	if !removed {
		return
	}

	logger.Log.WithFields(logrus.Fields{
		"component":    "turn_manager",
		"combatant_id": id,
		"was_current":  wasCurrent,
		"remaining":    tm.order.Len(),
	}).Debug("Combatant removed from turn order")

	if wasCurrent && !tm.halted {
		if current, ok := tm.order.Current(); ok {
			tm.Emit(domain.Event{Type: domain.EventTurnStarted, Combatant: current})
		}
	}
}

// Emit ставит событие в очередь и доставляет все накопленные, если доставка еще не идет.
func (tm *TurnManager) Emit(e domain.Event) {
	e.TurnNumber = tm.order.TurnNumber()
	tm.pending = append(tm.pending, e)
	if tm.dispatching {
		return
	}

	tm.dispatching = true
	for len(tm.pending) > 0 {
		next := tm.pending[0]
		tm.pending = tm.pending[1:]
		for _, l := range tm.listeners {
			l(next)
		}
	}
	tm.dispatching = false
}

func (tm *TurnManager) Current() (domain.CombatantID, bool)  { return tm.order.Current() }
func (tm *TurnManager) PeekNext() (domain.CombatantID, bool) { return tm.order.PeekNext() }
func (tm *TurnManager) TurnNumber() int                      { return tm.order.TurnNumber() }
func (tm *TurnManager) Order() []domain.CombatantID          { return tm.order.IDs() }

func (tm *TurnManager) Len() int {
	return tm.order.Len()
}

// DebugDump возвращает снимок очереди для отладки
func (tm *TurnManager) DebugDump() []map[string]interface{} {
	// Инициализируем как пустой слайс, а не nil. Тогда в JSON это будет "[]", а не "null"
	result := make([]map[string]interface{}, 0)

	current, _ := tm.order.Current()
	for idx, id := range tm.order.IDs() {
		result = append(result, map[string]interface{}{
			"id":      id,
			"index":   idx,
			"current": id == current,
		})
	}
	return result
}

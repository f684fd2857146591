package network

import (
	"arena-server/internal/domain"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"sync"
)

// Seat - место подписчика: боец конкретного боя.
type Seat struct {
	BattleID  string
	Combatant domain.CombatantID
}

func (s Seat) String() string {
	return s.BattleID + "/" + s.Combatant.String()
}

// Broadcaster занимается только рассылкой снимков подписчикам
type Broadcaster struct {
	mu sync.RWMutex
	// Мапа: место -> личный канал
	subscribers map[Seat]chan api.ServerResponse
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[Seat]chan api.ServerResponse),
	}
}

// Register создает личный канал для бойца. Старый канал того же места закрывается:
// новое подключение вытесняет прежнее.
func (b *Broadcaster) Register(seat Seat) chan api.ServerResponse {
	b.mu.Lock()
	defer b.mu.Unlock()

	if old, ok := b.subscribers[seat]; ok {
		close(old)
	}

	ch := make(chan api.ServerResponse, 100)
	b.subscribers[seat] = ch
	return ch
}

// Unregister удаляет подписчика, только если ch все еще его текущий канал.
func (b *Broadcaster) Unregister(seat Seat, ch chan api.ServerResponse) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if cur, ok := b.subscribers[seat]; ok && cur == ch {
		close(cur)
		delete(b.subscribers, seat)
	}
}

// SendTo отправляет сообщение конкретному месту (Unicast).
// Переполненный канал не блокирует бой: сообщение отбрасывается.
func (b *Broadcaster) SendTo(seat Seat, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if ch, ok := b.subscribers[seat]; ok {
		select {
		case ch <- msg:
		default:
			logger.Component("hub").WithField("seat", seat.String()).Warn("Subscriber channel full, snapshot dropped.")
		}
	}
}

// Broadcast отправляет всем подписчикам боя battleID.
func (b *Broadcaster) Broadcast(battleID string, msg api.ServerResponse) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for seat, ch := range b.subscribers {
		if seat.BattleID != battleID {
			continue
		}
		select {
		case ch <- msg:
		default:
		}
	}
}

// HasSubscriber проверяет, подключен ли кто-то к месту.
func (b *Broadcaster) HasSubscriber(seat Seat) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.subscribers[seat]
	return ok
}

// SubscriberCount возвращает количество активных подписчиков.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

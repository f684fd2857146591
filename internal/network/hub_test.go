package network

import (
	"arena-server/pkg/api"
	"testing"
)

func TestBroadcaster_SendTo(t *testing.T) {
	b := NewBroadcaster()
	a1 := Seat{BattleID: "b1", Combatant: 1}
	a2 := Seat{BattleID: "b1", Combatant: 2}
	other := Seat{BattleID: "b2", Combatant: 1}

	ch1 := b.Register(a1)
	ch2 := b.Register(a2)
	chOther := b.Register(other)

	b.SendTo(a1, api.ServerResponse{Type: "UPDATE", BattleID: "b1"})
	if len(ch1) != 1 || len(ch2) != 0 {
		t.Fatalf("unicast leaked: ch1=%d ch2=%d", len(ch1), len(ch2))
	}

	b.Broadcast("b1", api.ServerResponse{Type: "UPDATE"})
	if len(ch1) != 2 || len(ch2) != 1 || len(chOther) != 0 {
		t.Errorf("broadcast must stay inside battle: ch1=%d ch2=%d other=%d", len(ch1), len(ch2), len(chOther))
	}

	if b.SubscriberCount() != 3 {
		t.Errorf("SubscriberCount = %d", b.SubscriberCount())
	}
}

func TestBroadcaster_ReRegister(t *testing.T) {
	b := NewBroadcaster()
	seat := Seat{BattleID: "b1", Combatant: 1}

	old := b.Register(seat)
	fresh := b.Register(seat)

	if _, ok := <-old; ok {
		t.Error("old channel must be closed on re-register")
	}

	// Запоздалый Unregister старой сессии не должен снять новую
	b.Unregister(seat, old)
	if !b.HasSubscriber(seat) {
		t.Fatal("stale unregister removed the fresh session")
	}

	b.Unregister(seat, fresh)
	if b.HasSubscriber(seat) {
		t.Error("subscriber must be removed")
	}
	if _, ok := <-fresh; ok {
		t.Error("fresh channel must be closed after unregister")
	}
}

package engine

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func pos(x, y int) domain.MapPosition {
	return domain.NewMapPosition(x, y)
}

func createTestGrid(w, h int, walls ...domain.MapPosition) *domain.Grid {
	g := domain.NewGrid(1, w, h, 64, 32)
	for _, p := range walls {
		g.SetTile(domain.LayerObstacle, p)
	}
	return g
}

// fixedRoll - детерминированный источник бросков для критов
type fixedRoll float64

func (r fixedRoll) Float64() float64 { return float64(r) }

// noCrit - бросок, который никогда не дает крит при шансе < 1
const noCrit = fixedRoll(0.99)

func warrior(name string, team domain.Team, at domain.MapPosition, actions ...domain.Action) *domain.Combatant {
	return &domain.Combatant{
		Name:           name,
		Team:           team,
		Position:       at,
		Health:         domain.Health{Attribute: domain.NewAttribute(100, 0, 100)},
		Shield:         domain.Shield{Attribute: domain.NewAttribute(0, 0, 100)},
		ActionPoints:   domain.ActionPoints{Attribute: domain.NewAttribute(6, 0, 6)},
		MovementPoints: domain.MovementPoints{Attribute: domain.NewAttribute(3, 0, 3)},
		Actions:        actions,
	}
}

func action(name string, cost uint32, rng domain.ActionRange, aoe domain.ActionAoe, effects ...domain.ActionEffect) domain.Action {
	return domain.Action{Name: name, Cost: cost, Range: rng, Aoe: aoe, Effects: effects}
}

func around(min, max int) domain.ActionRange {
	return domain.ActionRange{Kind: domain.RangeAround, Min: min, Max: max}
}

var cell = domain.ActionAoe{Kind: domain.AoeCell}

func damage(amount uint32) domain.ActionEffect {
	return domain.ActionEffect{Kind: domain.EffectDamage, Amount: amount, CritMult: 1}
}

// eventLog собирает события боя для проверок.
type eventLog struct {
	events []domain.Event
}

func (l *eventLog) listen(e domain.Event) { l.events = append(l.events, e) }

func (l *eventLog) types() []domain.EventType {
	out := make([]domain.EventType, len(l.events))
	for i, e := range l.events {
		out[i] = e.Type
	}
	return out
}

func newTestBattle(g *domain.Grid, rng fixedRoll, cs ...*domain.Combatant) (*Battle, *eventLog) {
	b := NewBattle("test", g, cs, rng, DefaultRules())
	log := &eventLog{}
	b.Subscribe(log.listen)
	return b, log
}

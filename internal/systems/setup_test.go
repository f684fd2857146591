package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"os"
	"testing"
)

func TestMain(m *testing.M) {
	// Initialize the global logger before running any tests
	logger.Init()

	// Exit with the result of the tests
	os.Exit(m.Run())
}

// Helper для создания пустой карты со стенами в нужных местах
func createTestGrid(w, h int, walls ...domain.MapPosition) *domain.Grid {
	g := domain.NewGrid(1, w, h, 64, 32)
	for _, pos := range walls {
		g.SetTile(domain.LayerObstacle, pos)
	}
	return g
}

func pos(x, y int) domain.MapPosition {
	return domain.NewMapPosition(x, y)
}

// fixedRoll - детерминированный источник бросков для критов
type fixedRoll float64

func (r fixedRoll) Float64() float64 { return float64(r) }

func newCombatant(id domain.CombatantID, at domain.MapPosition) *domain.Combatant {
	return &domain.Combatant{
		ID:             id,
		Name:           id.String(),
		Position:       at,
		Health:         domain.Health{Attribute: domain.NewAttribute(100, 0, 100)},
		Shield:         domain.Shield{Attribute: domain.NewAttribute(0, 0, 100)},
		ActionPoints:   domain.ActionPoints{Attribute: domain.NewAttribute(6, 0, 6)},
		MovementPoints: domain.MovementPoints{Attribute: domain.NewAttribute(3, 0, 3)},
	}
}

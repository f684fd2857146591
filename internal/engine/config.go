package engine

import (
	"arena-server/internal/domain"
	"time"
)

// Rules - числовые правила боя, не входящие в данные действий.
type Rules struct {
	// PushDamagePerStep - урон за каждую непройденную клетку после столкновения толчка.
	PushDamagePerStep uint32
	// PushErode - коэффициент эрозии для урона от столкновения.
	PushErode float64
}

// DefaultRules возвращает правила по умолчанию.
func DefaultRules() Rules {
	return Rules{
		PushDamagePerStep: domain.PushCollisionDamagePerStep,
		PushErode:         domain.PushCollisionErode,
	}
}

// Config хранит параметры запуска движка
type Config struct {
	// Seed - мастер-зерно. От него зависят броски критов во всех боях.
	// Seed боя N = Seed + N
	Seed int64

	// TurnTimeout - сколько ждать команду от активного бойца, потом ход завершается принудительно.
	TurnTimeout time.Duration

	// ReplayDir - куда писать реплеи и снапшоты. Пусто - не писать.
	ReplayDir string

	Rules Rules
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:        time.Now().UnixNano(),
		TurnTimeout: 60 * time.Second,
		ReplayDir:   "replays",
		Rules:       DefaultRules(),
	}
}

package domain

// Урон при столкновении толчка с препятствием.
const (
	PushCollisionDamagePerStep uint32  = 20
	PushCollisionErode         float64 = 0.25

	// MaxPushDistance - предел дистанции толчка в файле боя.
	MaxPushDistance = 256
)

// Типы сообщений боевого лога
const (
	LogTypeInfo   = "INFO"
	LogTypeCombat = "COMBAT"
	LogTypeTurn   = "TURN"
	LogTypeError  = "ERROR"
)

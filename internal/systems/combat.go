package systems

import (
	"arena-server/internal/domain"
	"arena-server/pkg/logger"
	"math"

	"github.com/sirupsen/logrus"
)

// Roller - источник равномерных бросков в [0, 1). *rand.Rand подходит.
type Roller interface {
	Float64() float64
}

// RollDamage бросает крит. Бросок делается всегда, даже при шансе 0,
// чтобы поток случайных чисел не зависел от параметров действия.
func RollDamage(amount uint32, critMult, critChance float64, rng Roller) (uint32, bool) {
	roll := rng.Float64()
	if roll < critChance {
		return scale(amount, critMult), true
	}
	return amount, false
}

// ApplyDamage применяет урон в фиксированном порядке: щит, затем здоровье,
// затем эрозия от остатка, прошедшего через щит.
func ApplyDamage(target *domain.Combatant, amount uint32, erode float64) domain.DamageResult {
	res := domain.DamageResult{Amount: amount}

	remaining := target.Shield.Drop(amount)
	res.Absorbed = amount - remaining

	hpBefore := target.Health.Value()
	target.Health.Drop(remaining)
	res.HealthLost = hpBefore - target.Health.Value()

	res.Eroded = target.Health.Erode(remaining, erode)

	logger.Log.WithFields(logrus.Fields{
		"component":   "combat_system",
		"target_id":   target.ID,
		"target_name": target.Name,
		"amount":      amount,
		"absorbed":    res.Absorbed,
		"hp_before":   hpBefore,
		"hp_after":    target.Health.Value(),
		"eroded":      res.Eroded,
	}).Debug("Damage applied.")

	return res
}

// Strike - полный эффект Damage: бросок крита и применение урона.
func Strike(target *domain.Combatant, effect domain.ActionEffect, rng Roller) domain.DamageResult {
	amount, crit := RollDamage(effect.Amount, effect.CritMult, effect.CritChance, rng)
	res := ApplyDamage(target, amount, effect.Erode)
	res.Crit = crit
	return res
}

// Heal восстанавливает здоровье. Возвращает фактически добавленное.
func Heal(target *domain.Combatant, amount uint32) uint32 {
	return amount - target.Health.Rise(amount)
}

// AddShield поднимает щит. Возвращает фактически добавленное.
func AddShield(target *domain.Combatant, amount uint32) uint32 {
	return amount - target.Shield.Rise(amount)
}

// Drain снимает очки с атрибута. Возвращает фактически снятое.
func Drain(points *domain.Attribute, amount uint32) uint32 {
	return amount - points.Drop(amount)
}

// Steal снимает очки с цели и отдает исполнителю ровно снятое.
// Возвращает (снято с цели, получено исполнителем).
func Steal(from, to *domain.Attribute, amount uint32) (uint32, uint32) {
	removed := Drain(from, amount)
	gained := removed - to.Rise(removed)
	return removed, gained
}

// ResolvePush вычисляет толчок цели от исполнителя по оси.
// Не меняет состояние: перемещение и урон применяет вызывающий.
// ok == false, если исполнитель и цель не на одной оси (толчок невозможен).
// occupied - клетки, занятые другими живыми бойцами (считаются препятствием).
func ResolvePush(g *domain.Grid, occupied func(domain.MapPosition) bool, actorPos, targetPos domain.MapPosition, distance int) (domain.PushResult, bool) {
	dir, ok := actorPos.DirectionTo(targetPos)
	if !ok {
		return domain.PushResult{}, false
	}

	res := domain.PushResult{From: targetPos, To: targetPos, Direction: dir}
	path := targetPos.StraightPath(dir, distance)
	for i, cell := range path {
		if g.IsObstacle(cell) || (occupied != nil && occupied(cell)) {
			res.Collided = true
			res.BlockedSteps = len(path) - i - 1
			break
		}
		res.To = cell
	}
	return res, true
}

// CollisionDamage - урон толчка за steps непройденных клеток, с насыщением.
func CollisionDamage(perStep uint32, steps int) uint32 {
	if steps <= 0 {
		return 0
	}
	total := uint64(perStep) * uint64(steps)
	if total > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(total)
}

func scale(amount uint32, mult float64) uint32 {
	v := float64(amount) * mult
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	v = math.Round(v)
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

package engine

import "arena-server/internal/domain"

// TurnOrder - порядок ходов: последовательность бойцов и курсор текущего.
// Пустой порядок - состояние Idle.
type TurnOrder struct {
	order      []domain.CombatantID
	index      int
	turnNumber int
}

// NewTurnOrder создает порядок из ids, дубликаты отбрасываются.
// Нумерация кругов начинается с 1.
func NewTurnOrder(ids []domain.CombatantID) *TurnOrder {
	seen := make(map[domain.CombatantID]bool, len(ids))
	order := make([]domain.CombatantID, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		order = append(order, id)
	}
	return &TurnOrder{order: order, turnNumber: 1}
}

func (t *TurnOrder) Len() int        { return len(t.order) }
func (t *TurnOrder) Index() int      { return t.index }
func (t *TurnOrder) TurnNumber() int { return t.turnNumber }
func (t *TurnOrder) IsIdle() bool    { return len(t.order) == 0 }

// IDs возвращает копию порядка.
func (t *TurnOrder) IDs() []domain.CombatantID {
	out := make([]domain.CombatantID, len(t.order))
	copy(out, t.order)
	return out
}

// Current - чей сейчас ход.
func (t *TurnOrder) Current() (domain.CombatantID, bool) {
	if len(t.order) == 0 {
		return domain.NilCombatantID, false
	}
	return t.order[t.index], true
}

// PeekNext - чей ход будет следующим.
func (t *TurnOrder) PeekNext() (domain.CombatantID, bool) {
	if len(t.order) == 0 {
		return domain.NilCombatantID, false
	}
	return t.order[(t.index+1)%len(t.order)], true
}

// Advance передает ход следующему. Номер круга растет, когда курсор возвращается к 0.
// Возвращает (закончивший, начинающий).
func (t *TurnOrder) Advance() (ended, started domain.CombatantID, ok bool) {
	if len(t.order) == 0 {
		return domain.NilCombatantID, domain.NilCombatantID, false
	}
	ended = t.order[t.index]
	t.index = (t.index + 1) % len(t.order)
	if t.index == 0 {
		t.turnNumber++
	}
	return ended, t.order[t.index], true
}

// Remove убирает бойца из порядка.
//   - Удален стоящий раньше курсора: курсор сдвигается на 1 назад и указывает на того же бойца.
//   - Удален текущий: курсор остается на месте и указывает на того, кто сдвинулся на его место.
//     Если текущий был последним, курсор уходит на 0 и начинается новый круг.
//
// wasCurrent true, если удален текущий боец: вызывающий должен начать ход нового текущего.
func (t *TurnOrder) Remove(id domain.CombatantID) (removed, wasCurrent bool) {
	i := -1
	for idx, other := range t.order {
		if other == id {
			i = idx
			break
		}
	}
	if i < 0 {
		return false, false
	}

	wasCurrent = i == t.index
	t.order = append(t.order[:i], t.order[i+1:]...)

	switch {
	case len(t.order) == 0:
		t.index = 0
	case i < t.index:
		t.index--
	case i == t.index && t.index >= len(t.order):
		t.index = 0
		t.turnNumber++
	}
	return true, wasCurrent
}

// Contains проверяет, есть ли боец в порядке.
func (t *TurnOrder) Contains(id domain.CombatantID) bool {
	for _, other := range t.order {
		if other == id {
			return true
		}
	}
	return false
}

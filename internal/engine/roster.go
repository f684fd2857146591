package engine

import "arena-server/internal/domain"

// Roster - арена бойцов боя. ID бойца - его индекс в арене + 1, не переиспользуется.
// Мертвые бойцы остаются в арене с Dead = true и не занимают клеток.
type Roster struct {
	combatants []*domain.Combatant
}

// NewRoster назначает бойцам ID по порядку.
func NewRoster(combatants []*domain.Combatant) *Roster {
	r := &Roster{combatants: make([]*domain.Combatant, 0, len(combatants))}
	for _, c := range combatants {
		r.Add(c)
	}
	return r
}

// Add добавляет бойца и выдает ему ID.
func (r *Roster) Add(c *domain.Combatant) domain.CombatantID {
	r.combatants = append(r.combatants, c)
	c.ID = domain.CombatantID(len(r.combatants))
	return c.ID
}

// Get возвращает бойца по ID (в том числе мертвого).
func (r *Roster) Get(id domain.CombatantID) (*domain.Combatant, bool) {
	idx := int(id) - 1
	if idx < 0 || idx >= len(r.combatants) {
		return nil, false
	}
	return r.combatants[idx], true
}

// At возвращает живого бойца на клетке.
func (r *Roster) At(pos domain.MapPosition) (*domain.Combatant, bool) {
	for _, c := range r.combatants {
		if !c.Dead && c.Position == pos {
			return c, true
		}
	}
	return nil, false
}

// OccupiedExcept - предикат "клетка занята живым бойцом, кроме self".
func (r *Roster) OccupiedExcept(self domain.CombatantID) func(domain.MapPosition) bool {
	return func(pos domain.MapPosition) bool {
		c, ok := r.At(pos)
		return ok && c.ID != self
	}
}

// All возвращает всех бойцов в порядке ID.
func (r *Roster) All() []*domain.Combatant {
	return r.combatants
}

// Living возвращает живых бойцов в порядке ID.
func (r *Roster) Living() []*domain.Combatant {
	living := make([]*domain.Combatant, 0, len(r.combatants))
	for _, c := range r.combatants {
		if !c.Dead {
			living = append(living, c)
		}
	}
	return living
}

// TeamsAlive возвращает команды, у которых есть живые бойцы.
func (r *Roster) TeamsAlive() []domain.Team {
	var teams []domain.Team
	seen := make(map[domain.Team]bool)
	for _, c := range r.Living() {
		if !seen[c.Team] {
			seen[c.Team] = true
			teams = append(teams, c.Team)
		}
	}
	return teams
}

package engine

import (
	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"arena-server/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Battle - агрегат одного боя: карта, бойцы, порядок ходов.
// Не потокобезопасен: все вызовы сериализует владелец (Instance).
type Battle struct {
	ID     string
	Grid   *domain.Grid
	Roster *Roster
	Turns  *TurnManager

	resolver *ActionResolver
	rules    Rules

	over   bool
	winner *domain.Team
}

// NewBattle собирает бой. Порядок ходов - порядок бойцов в combatants.
// Бой не начат, пока не вызван Start.
func NewBattle(id string, grid *domain.Grid, combatants []*domain.Combatant, rng systems.Roller, rules Rules) *Battle {
	roster := NewRoster(combatants)

	order := make([]domain.CombatantID, 0, len(combatants))
	for _, c := range roster.Living() {
		order = append(order, c.ID)
	}
	turns := NewTurnManager(order)

	b := &Battle{
		ID:     id,
		Grid:   grid,
		Roster: roster,
		Turns:  turns,
		rules:  rules,
	}
	b.resolver = &ActionResolver{Grid: grid, Roster: roster, Turns: turns, Rng: rng, Rules: rules}

	// Битва подписывается первой: восстановление очков и тики эффектов
	// происходят до того, как событие увидят остальные.
	turns.Subscribe(b.onEvent)
	return b
}

// Subscribe подписывает на события боя.
func (b *Battle) Subscribe(l EventListener) {
	b.Turns.Subscribe(l)
}

// Start начинает первый ход.
func (b *Battle) Start() {
	b.checkOver()
	if b.over {
		return
	}
	b.Turns.Start()
}

// Combatant возвращает бойца по ID.
func (b *Battle) Combatant(id domain.CombatantID) (*domain.Combatant, bool) {
	return b.Roster.Get(id)
}

// Current возвращает бойца, чей сейчас ход.
func (b *Battle) Current() (*domain.Combatant, bool) {
	id, ok := b.Turns.Current()
	if !ok {
		return nil, false
	}
	return b.Roster.Get(id)
}

// IsOver - бой окончен (жива максимум одна команда).
func (b *Battle) IsOver() bool { return b.over }

// Winner возвращает победившую команду. ok == false, пока бой идет или при ничьей.
func (b *Battle) Winner() (domain.Team, bool) {
	if b.winner == nil {
		return domain.TeamA, false
	}
	return *b.winner, true
}

// actor проверяет, что бой идет и ходит именно id.
func (b *Battle) actor(id domain.CombatantID) (*domain.Combatant, error) {
	if b.over {
		return nil, domain.ErrBattleOver
	}
	c, ok := b.Roster.Get(id)
	if !ok || c.Dead {
		return nil, domain.ErrUnknownCombatant
	}
	if current, _ := b.Turns.Current(); current != id {
		return nil, domain.ErrNotYourTurn
	}
	return c, nil
}

// Execute выполняет действие actionIndex бойца по клетке target.
func (b *Battle) Execute(id domain.CombatantID, actionIndex int, target domain.MapPosition) (domain.AppliedEffectsSummary, error) {
	c, err := b.actor(id)
	if err != nil {
		return domain.AppliedEffectsSummary{}, err
	}
	action, ok := c.Action(actionIndex)
	if !ok {
		return domain.AppliedEffectsSummary{}, domain.ErrUnknownAction
	}

	summary, err := b.resolver.Execute(c, action, target)
	if err != nil {
		return summary, err
	}
	b.checkOver()
	return summary, nil
}

// Move перемещает бойца по кратчайшему пути, списывая очки движения.
func (b *Battle) Move(id domain.CombatantID, to domain.MapPosition) (systems.MovementResult, error) {
	c, err := b.actor(id)
	if err != nil {
		return systems.MovementResult{}, err
	}

	res, err := systems.CalculateMove(b.Grid, c, to, b.Roster.OccupiedExcept(c.ID))
	if err != nil {
		return res, err
	}

	c.MovementPoints.Drop(res.Path.Cost)
	c.Position = res.To

	logger.Log.WithFields(logrus.Fields{
		"component": "battle",
		"battle_id": b.ID,
		"actor_id":  c.ID,
		"from":      res.From,
		"to":        res.To,
		"cost":      res.Path.Cost,
	}).Debug("Combatant moved.")
	return res, nil
}

// EndTurn завершает ход бойца id.
func (b *Battle) EndTurn(id domain.CombatantID) error {
	if _, err := b.actor(id); err != nil {
		return err
	}
	b.Turns.Advance()
	return nil
}

// ForceEndTurn завершает ход текущего бойца без проверок (таймер хода).
func (b *Battle) ForceEndTurn() {
	b.Turns.Advance()
}

// onEvent - реакция боя на собственные события.
func (b *Battle) onEvent(e domain.Event) {
	if e.Type != domain.EventTurnStarted || b.over {
		return
	}
	// Событие могло устареть, если ход уже перешел дальше
	if current, _ := b.Turns.Current(); current != e.Combatant {
		return
	}
	c, ok := b.Roster.Get(e.Combatant)
	if !ok || c.Dead {
		return
	}
	b.startTurn(c)
}

// startTurn восстанавливает очки и тикает отложенный урон.
func (b *Battle) startTurn(c *domain.Combatant) {
	c.ActionPoints.RiseMax()
	c.MovementPoints.RiseMax()

	remaining := c.ActiveEffects[:0]
	for _, effect := range c.ActiveEffects {
		if effect.RemainingDuration > 0 {
			effect.RemainingDuration--
			res := systems.ApplyDamage(c, effect.Amount, effect.Erode)
			b.Turns.Emit(domain.Event{Type: domain.EventDamageOverTime, Combatant: c.ID, Damage: &res})
		}
		if effect.RemainingDuration > 0 {
			remaining = append(remaining, effect)
		}
	}
	c.ActiveEffects = remaining

	if c.Health.IsDepleted() {
		b.resolver.SweepDead()
		b.checkOver()
	}
}

// checkOver завершает бой, если живых команд меньше двух.
func (b *Battle) checkOver() {
	if b.over {
		return
	}
	teams := b.Roster.TeamsAlive()
	if len(teams) > 1 {
		return
	}

	b.over = true
	b.Turns.Halt()
	event := domain.Event{Type: domain.EventBattleOver}
	if len(teams) == 1 {
		winner := teams[0]
		b.winner = &winner
		event.Winner = winner.String()
	}

	logger.Log.WithFields(logrus.Fields{
		"component": "battle",
		"battle_id": b.ID,
		"winner":    event.Winner,
	}).Info("Battle over.")
	b.Turns.Emit(event)
}

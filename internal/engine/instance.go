package engine

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrQueueFull - инстанс не успевает разбирать команды.
var ErrQueueFull = errors.New("command queue full")

// Instance - один запущенный бой. Все изменения боя происходят в горутине Run,
// поэтому Battle не нуждается в блокировках.
type Instance struct {
	ID     string
	Battle *Battle

	// Каналы коммуникации
	CommandChan chan domain.InternalCommand // Команды от игроков
	inspectChan chan func()                 // Чтение состояния снаружи (debug)
	stopped     chan struct{}

	// Ссылка на Service для доступа к Hub и хендлерам
	Service *GameService

	Logs []api.LogEntry // Локальные логи боя, очищаются после рассылки

	Rng    *rand.Rand            // Генератор критов этого боя
	Seed   int64                 // Сид, с которого начался бой
	Replay *domain.ReplaySession // Лента принятых команд

	// IsPlayback - бой пересчитывается из реплея, команды не записываются.
	IsPlayback bool

	turnTimeout time.Duration
	turnChanged bool
	live        bool
	logSeq      int

	lastSummary *domain.AppliedEffectsSummary
}

func NewInstance(battle *Battle, service *GameService, rng *rand.Rand, seed int64, turnTimeout time.Duration) *Instance {
	i := &Instance{
		ID:          battle.ID,
		Battle:      battle,
		CommandChan: make(chan domain.InternalCommand, 100),
		inspectChan: make(chan func()),
		stopped:     make(chan struct{}),
		Service:     service,
		Rng:         rng,
		Seed:        seed,
		Replay: &domain.ReplaySession{
			BattleID:  battle.ID,
			Seed:      seed,
			Timestamp: time.Now().Unix(),
			Actions:   make([]domain.ReplayAction, 0),
		},
		turnTimeout: turnTimeout,
	}
	battle.Subscribe(i.onEvent)
	return i
}

// Start запускает цикл боя в отдельной горутине.
func (i *Instance) Start(ctx context.Context) {
	i.live = true
	go i.Run(ctx)
}

// Run - цикл боя: команды, таймер хода, остановка по ctx.
func (i *Instance) Run(ctx context.Context) {
	defer close(i.stopped)
	log := i.log()
	log.Info("Battle loop started")

	i.Battle.Start()
	i.publishUpdate()

	timer := time.NewTimer(i.timeout())
	defer timer.Stop()
	i.turnChanged = false

	for {
		select {
		case <-ctx.Done():
			log.Info("Battle loop stopped")
			if i.Service != nil && i.Service.Hub != nil {
				i.Service.Hub.Broadcast(i.ID, api.ServerResponse{
					Type:     ResponseError,
					BattleID: i.ID,
					Error:    "battle stopped",
				})
			}
			return

		case cmd := <-i.CommandChan:
			i.executeCommand(cmd)

		case fn := <-i.inspectChan:
			fn()
			continue

		case <-timer.C:
			i.onTurnTimeout()
			i.turnChanged = true
		}

		if i.turnChanged {
			i.turnChanged = false
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(i.timeout())
		}
		i.publishUpdate()
	}
}

// Submit ставит команду в очередь боя, не блокируясь.
func (i *Instance) Submit(cmd domain.InternalCommand) error {
	select {
	case i.CommandChan <- cmd:
		return nil
	default:
		return ErrQueueFull
	}
}

// Inspect выполняет fn над боем в горутине боя (или сразу, если цикл не запущен).
func (i *Instance) Inspect(fn func(b *Battle)) {
	if !i.live {
		fn(i.Battle)
		return
	}
	done := make(chan struct{})
	select {
	case i.inspectChan <- func() { fn(i.Battle); close(done) }:
		<-done
	case <-i.stopped:
		fn(i.Battle)
	}
}

// timeout: без ограничения таймер "спит" практически вечно.
func (i *Instance) timeout() time.Duration {
	if i.turnTimeout <= 0 {
		return 24 * time.Hour
	}
	return i.turnTimeout
}

// onTurnTimeout принудительно завершает ход и пишет это в реплей,
// чтобы пересчет боя совпал с оригиналом.
func (i *Instance) onTurnTimeout() {
	if i.Battle.IsOver() {
		return
	}
	current, ok := i.Battle.Turns.Current()
	if !ok {
		return
	}

	i.log().WithField("actor_id", current).Warn("Turn timed out")
	i.recordAction(domain.InternalCommand{Type: domain.CommandEndTurn, Actor: current})
	i.Battle.ForceEndTurn()
}

// executeCommand выполняет команду в контексте боя.
func (i *Instance) executeCommand(cmd domain.InternalCommand) {
	handler, ok := i.Service.handlers[cmd.Type]
	if !ok {
		i.reject(cmd, domain.ErrUnknownAction)
		return
	}

	ctx := handlers.Context{
		Battle: i.Battle,
		Actor:  cmd.Actor,
	}

	turn := i.Battle.Turns.TurnNumber()
	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		i.reject(cmd, err)
		return
	}

	// Только принятые команды, меняющие бой, попадают в реплей
	if cmd.Type.Mutates() {
		i.recordActionAt(cmd, turn)
	}
	if result.Summary != nil {
		i.lastSummary = result.Summary
	}
	if result.Msg != "" {
		i.AddLog(result.Msg, result.MsgType)
	}
}

// reject сообщает автору команды об ошибке. Состояние боя не менялось.
func (i *Instance) reject(cmd domain.InternalCommand, err error) {
	i.log().WithFields(logrus.Fields{
		"actor_id": cmd.Actor,
		"command":  cmd.Type.String(),
		"error":    err.Error(),
	}).Debug("Command rejected")

	if i.Service == nil || i.Service.Hub == nil {
		return
	}
	seat := i.seat(cmd.Actor)
	if i.Service.Hub.HasSubscriber(seat) {
		i.Service.Hub.SendTo(seat, i.errorResponse(cmd.Actor, err))
	}
}

func (i *Instance) recordAction(cmd domain.InternalCommand) {
	i.recordActionAt(cmd, i.Battle.Turns.TurnNumber())
}

func (i *Instance) recordActionAt(cmd domain.InternalCommand, turn int) {
	if i.IsPlayback {
		return
	}
	i.Replay.Actions = append(i.Replay.Actions, domain.ReplayAction{
		Turn:    turn,
		Actor:   cmd.Actor,
		Command: cmd.Type,
		Payload: cmd.Payload,
	})
}

// Simulate синхронно пересчитывает бой по записанным командам.
// Используется режимом реплея, цикл Run при этом не запускается.
func (i *Instance) Simulate(session *domain.ReplaySession) {
	i.IsPlayback = true
	i.Battle.Start()

	for _, act := range session.Actions {
		i.executeCommand(domain.InternalCommand{
			Type:    act.Command,
			Actor:   act.Actor,
			Payload: act.Payload,
		})
	}

	i.log().WithFields(logrus.Fields{
		"actions": len(session.Actions),
		"turn":    i.Battle.Turns.TurnNumber(),
		"over":    i.Battle.IsOver(),
	}).Info("Replay simulated")
}

// onEvent превращает события боя в записи лога и сбрасывает таймер хода.
func (i *Instance) onEvent(e domain.Event) {
	switch e.Type {
	case domain.EventTurnStarted:
		i.turnChanged = true
		i.AddLog(i.nameOf(e.Combatant)+" начинает ход.", domain.LogTypeTurn)
	case domain.EventDamageOverTime:
		if e.Damage != nil {
			i.AddLog(i.nameOf(e.Combatant)+" теряет "+uitoa(e.Damage.Amount)+" от яда.", domain.LogTypeCombat)
		}
	case domain.EventCombatantDied:
		i.AddLog(i.nameOf(e.Combatant)+" погибает.", domain.LogTypeCombat)
	case domain.EventBattleOver:
		text := "Бой окончен. Ничья."
		if e.Winner != "" {
			text = "Бой окончен. Победила команда " + e.Winner + "."
		}
		i.AddLog(text, domain.LogTypeInfo)
	}
}

func (i *Instance) nameOf(id domain.CombatantID) string {
	if c, ok := i.Battle.Combatant(id); ok {
		return c.Name
	}
	return id.String()
}

func (i *Instance) log() *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "instance",
		"battle_id": i.ID,
	})
}

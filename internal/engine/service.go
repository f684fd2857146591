package engine

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/internal/engine/handlers/actions"
	"arena-server/internal/infrastructure/storage"
	"arena-server/internal/network"
	"arena-server/pkg/api"
	"arena-server/pkg/arena"
	"arena-server/pkg/logger"
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	ErrBattleExists   = errors.New("battle already exists")
	ErrBattleNotFound = errors.New("battle not found")
	ErrUnknownCommand = errors.New("unknown command")
	ErrReplayMismatch = errors.New("replay belongs to another battle")
)

// GameService - реестр запущенных боев и общая инфраструктура (Hub, реплеи, хендлеры).
type GameService struct {
	mu        sync.RWMutex
	Instances map[string]*Instance

	Hub     *network.Broadcaster
	Replays *storage.ReplayService // nil, если реплеи не пишутся

	handlers map[domain.CommandType]handlers.HandlerFunc
	cfg      Config
	created  int64
}

func NewService(cfg Config) *GameService {
	s := &GameService{
		Instances: make(map[string]*Instance),
		Hub:       network.NewBroadcaster(),
		handlers:  make(map[domain.CommandType]handlers.HandlerFunc),
		cfg:       cfg,
	}

	if cfg.ReplayDir != "" {
		replays, err := storage.NewReplayService(cfg.ReplayDir)
		if err != nil {
			logger.Log.WithError(err).Warn("Replays disabled")
		} else {
			s.Replays = replays
		}
	}

	s.registerHandlers()
	return s
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.CommandInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.CommandExecute] = handlers.WithPayload(actions.HandleExecute)
	s.handlers[domain.CommandMove] = handlers.WithPayload(actions.HandleMove)
	s.handlers[domain.CommandEndTurn] = handlers.WithEmptyPayload(actions.HandleEndTurn)
}

// Config возвращает конфиг сервиса.
func (s *GameService) Config() Config { return s.cfg }

// CreateBattle собирает инстанс боя из файла, не запуская его.
// seed управляет и картой (укрытия), и бросками критов.
func (s *GameService) CreateBattle(def *arena.BattleFile, seed int64) (*Instance, error) {
	grid, combatants, err := def.Build(seed)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(seed))
	battle := NewBattle(def.ID, grid, combatants, rng, s.cfg.Rules)
	return NewInstance(battle, s, rng, seed, s.cfg.TurnTimeout), nil
}

// StartBattle создает бой, регистрирует его и запускает цикл.
// Сид боя N = Config.Seed + N.
func (s *GameService) StartBattle(ctx context.Context, def *arena.BattleFile) (*Instance, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.Instances[def.ID]; exists {
		return nil, fmt.Errorf("%w: %s", ErrBattleExists, def.ID)
	}

	seed := s.cfg.Seed + s.created
	inst, err := s.CreateBattle(def, seed)
	if err != nil {
		return nil, err
	}
	s.created++
	s.Instances[def.ID] = inst

	logger.Log.WithFields(logrus.Fields{
		"component":  "service",
		"battle_id":  def.ID,
		"seed":       seed,
		"combatants": len(inst.Battle.Roster.All()),
	}).Info("Battle started")

	inst.Start(ctx)
	return inst, nil
}

// GetInstance возвращает бой по ID.
func (s *GameService) GetInstance(id string) (*Instance, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.Instances[id]
	return inst, ok
}

// Battles возвращает ID всех боев по алфавиту.
func (s *GameService) Battles() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.Instances))
	for id := range s.Instances {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ProcessCommand принимает команду от внешнего мира (WebSocket) и ставит её
// в очередь нужного боя. Права (Token == боец сессии) проверяет транспорт.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) error {
	if err := externalCmd.Validate(); err != nil {
		return err
	}

	cmdType := domain.ParseCommand(externalCmd.Action)
	if cmdType == domain.CommandUnknown {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, externalCmd.Action)
	}

	actor, err := domain.ParseCombatantID(externalCmd.Token)
	if err != nil {
		return err
	}

	inst, ok := s.GetInstance(externalCmd.Battle)
	if !ok {
		return fmt.Errorf("%w: %s", ErrBattleNotFound, externalCmd.Battle)
	}

	return inst.Submit(domain.InternalCommand{
		Type:    cmdType,
		Actor:   actor,
		Payload: externalCmd.Payload,
	})
}

// LoadReplay пересчитывает записанный бой против файла боя.
// Инстанс регистрируется под ID из реплея и доступен через debug-эндпоинты.
func (s *GameService) LoadReplay(path string, def *arena.BattleFile) (*Instance, error) {
	session, err := storage.LoadReplay(path)
	if err != nil {
		return nil, err
	}
	if session.BattleID != def.ID {
		return nil, fmt.Errorf("%w: replay %q, file %q", ErrReplayMismatch, session.BattleID, def.ID)
	}

	inst, err := s.CreateBattle(def, session.Seed)
	if err != nil {
		return nil, err
	}
	inst.Simulate(session)

	s.mu.Lock()
	s.Instances[def.ID] = inst
	s.mu.Unlock()
	return inst, nil
}

// SaveReplays сохраняет реплеи и итоговые снимки всех боев.
func (s *GameService) SaveReplays() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, inst := range s.Instances {
		if _, err := inst.SaveReplay(); err != nil {
			logger.Log.WithError(err).WithField("battle_id", inst.ID).Error("Failed to save replay")
		}
	}
}

// SaveReplay пишет реплей боя и JSON-снимок его состояния.
func (i *Instance) SaveReplay() (string, error) {
	if i.Service == nil || i.Service.Replays == nil || i.IsPlayback {
		return "", nil
	}

	var (
		path string
		err  error
	)
	i.Inspect(func(b *Battle) {
		path, err = i.Service.Replays.Save(i.Replay)
		if err != nil {
			return
		}
		_, err = i.Service.Replays.SaveSnapshot(fmt.Sprintf("snapshot_%s_%d", i.ID, i.Replay.Timestamp), i.BuildState(domain.NilCombatantID))
	})
	return path, err
}

package handlers

import (
	"arena-server/internal/domain"
	"arena-server/internal/systems"
	"encoding/json"
)

// BattleController описывает операции боя, доступные командам.
// engine.Battle неявно реализует этот интерфейс.
type BattleController interface {
	Combatant(id domain.CombatantID) (*domain.Combatant, bool)
	Execute(actor domain.CombatantID, actionIndex int, target domain.MapPosition) (domain.AppliedEffectsSummary, error)
	Move(actor domain.CombatantID, to domain.MapPosition) (systems.MovementResult, error)
	EndTurn(actor domain.CombatantID) error
}

// Context передает хендлеру бой и того, кто выполняет команду.
type Context struct {
	Battle BattleController
	Actor  domain.CombatantID // Тот, кто выполняет команду
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи инстанса напрямую, он возвращает данные.
type Result struct {
	Msg     string                        // Текст лога
	MsgType string                        // Тип лога (INFO, COMBAT, TURN)
	Summary *domain.AppliedEffectsSummary // Итог действия (только EXECUTE)
}

// HandlerFunc - это контракт для любой команды (EXECUTE, MOVE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}

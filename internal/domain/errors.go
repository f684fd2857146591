package domain

import "errors"

// Ошибки валидации действия. Возвращаются до любой мутации состояния.
var (
	ErrInsufficientActionPoints = errors.New("insufficient action points")
	ErrOutOfRange               = errors.New("target out of range")
	ErrBlocked                  = errors.New("line of sight blocked")
)

// Ошибки уровня боя (хост).
var (
	ErrNotYourTurn                = errors.New("not your turn")
	ErrUnknownCombatant           = errors.New("unknown combatant")
	ErrUnknownAction              = errors.New("unknown action")
	ErrNoPath                     = errors.New("no walkable path")
	ErrInsufficientMovementPoints = errors.New("insufficient movement points")
	ErrBattleOver                 = errors.New("battle is over")
)

package domain

import "strings"

// CommandType - внутренний числовой идентификатор команды клиента.
type CommandType uint8

const (
	CommandUnknown CommandType = iota
	CommandInit
	CommandExecute
	CommandMove
	CommandEndTurn
)

// Маппинг для конвертации JSON -> Domain
var commandStringToType = map[string]CommandType{
	"INIT":     CommandInit,
	"EXECUTE":  CommandExecute,
	"MOVE":     CommandMove,
	"END_TURN": CommandEndTurn,
}

// Маппинг для логов Domain -> String
var commandTypeToString = map[CommandType]string{
	CommandInit:    "INIT",
	CommandExecute: "EXECUTE",
	CommandMove:    "MOVE",
	CommandEndTurn: "END_TURN",
}

// ParseCommand конвертирует строку из JSON в CommandType (без учета регистра).
func ParseCommand(s string) CommandType {
	if val, ok := commandStringToType[strings.ToUpper(s)]; ok {
		return val
	}
	return CommandUnknown
}

func (c CommandType) String() string {
	if val, ok := commandTypeToString[c]; ok {
		return val
	}
	return "UNKNOWN"
}

// Mutates true для команд, которые меняют состояние боя и пишутся в реплей.
func (c CommandType) Mutates() bool {
	return c == CommandExecute || c == CommandMove || c == CommandEndTurn
}

package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Он представляет собой полный "снимок" боя.
// Отправляется после каждой принятой команды и смены хода.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// BattleID бой, к которому относится снимок.
	BattleID string `json:"battleId"`

	// TurnNumber номер круга. Увеличивается, когда ход возвращается к первому бойцу.
	TurnNumber int `json:"turnNumber"`

	// ActiveCombatantID ID бойца, чей ход сейчас.
	// КЛИЕНТ ДОЛЖЕН СРАВНИВАТЬ ЭТО ПОЛЕ СО СВОИМ ID. Если они совпадают,
	// значит, можно принимать ввод от игрока.
	ActiveCombatantID string `json:"activeCombatantId,omitempty"`

	// MyCombatantID ID бойца, которым управляет данный клиент.
	MyCombatantID string `json:"myCombatantId,omitempty"`

	// Grid метаданные карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Combatants все бойцы боя, включая мертвых.
	Combatants []CombatantView `json:"combatants,omitempty"`

	// TurnOrder порядок ходов живых бойцов.
	TurnOrder []string `json:"turnOrder,omitempty"`

	// Reachable клетки, куда активный боец может дойти. Только в снимке для него самого.
	Reachable []PosView `json:"reachable,omitempty"`

	// LastAction итог последнего выполненного действия.
	LastAction json.RawMessage `json:"lastAction,omitempty"`

	// Logs срез новых сообщений с прошлой рассылки.
	Logs []LogEntry `json:"logs,omitempty"`

	// Over true, когда бой окончен. Winner пуст при ничьей.
	Over   bool   `json:"over,omitempty"`
	Winner string `json:"winner,omitempty"`

	// Error текст ошибки для Type == "ERROR".
	Error string `json:"error,omitempty"`
}

// GridMeta содержит размеры карты и статичные слои,
// чтобы клиент мог построить изометрическую сетку.
type GridMeta struct {
	Width      int       `json:"w"`
	Height     int       `json:"h"`
	TileWidth  float64   `json:"tileW"`
	TileHeight float64   `json:"tileH"`
	Obstacles  []PosView `json:"obstacles"`
}

type PosView struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// AttributeView это DTO для ограниченного атрибута.
type AttributeView struct {
	Value uint32 `json:"value"`
	Min   uint32 `json:"min"`
	Max   uint32 `json:"max"`
	Text  string `json:"text"`
}

// CombatantView это DTO для бойца.
type CombatantView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Team string `json:"team"`

	Pos PosView `json:"pos"`
	// Screen позиция после изометрической проекции (для рендера).
	Screen struct {
		X float64 `json:"x"`
		Y float64 `json:"y"`
	} `json:"screen"`

	Health         AttributeView `json:"health"`
	Shield         AttributeView `json:"shield"`
	ActionPoints   AttributeView `json:"actionPoints"`
	MovementPoints AttributeView `json:"movementPoints"`

	Actions       []ActionView       `json:"actions"`
	ActiveEffects []ActiveEffectView `json:"activeEffects,omitempty"`

	IsDead bool `json:"isDead"`
}

// ActionView описывает действие бойца для панели действий.
type ActionView struct {
	Index   int    `json:"index"`
	Name    string `json:"name"`
	IconKey string `json:"iconKey,omitempty"`
	Cost    uint32 `json:"cost"`
	Range   string `json:"range"`
	Aoe     string `json:"aoe"`
	// Targets подсветка допустимых целей (только свои действия в свой ход).
	Targets []PosView `json:"targets,omitempty"`
}

type ActiveEffectView struct {
	Amount            uint32 `json:"amount"`
	RemainingDuration uint32 `json:"remainingDuration"`
}

// LogEntry представляет одну запись в логе боя.
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, TURN, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID бойца, от имени которого выполняется действие ("c1" или "1").
	// Обязателен для первого сообщения (логин).
	Token string `json:"token,omitempty"`

	// Battle ID боя. Обязателен для первого сообщения (логин).
	Battle string `json:"battle,omitempty"`

	// Action название команды: INIT, EXECUTE, MOVE, END_TURN.
	Action string `json:"action"`

	// Payload JSON-объект с данными для команды. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// ExecutePayload используется для EXECUTE: номер действия бойца и целевая клетка.
type ExecutePayload struct {
	ActionIndex int `json:"actionIndex"`
	X           int `json:"x"`
	Y           int `json:"y"`
}

// PositionPayload используется для действий, нацеленных на точку на карте (MOVE).
type PositionPayload struct {
	X int `json:"x"`
	Y int `json:"y"`
}

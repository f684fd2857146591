package server

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"encoding/json"
	"net/http"
)

// DebugHandler предоставляет доступ к внутреннему состоянию движка
type DebugHandler struct {
	Service *engine.GameService
}

func NewDebugHandler(s *engine.GameService) *DebugHandler {
	return &DebugHandler{Service: s}
}

// RegisterRoutes регистрирует debug-эндпоинты
func (h *DebugHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/debug/battles", h.handleListBattles)
	mux.HandleFunc("/debug/combatants", h.handleDumpCombatants)
	mux.HandleFunc("/debug/turns", h.handleTurnOrder)
}

// BattleSummary - строка списка боев.
type BattleSummary struct {
	ID         string `json:"id"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Combatants int    `json:"combatants"`
	Alive      int    `json:"alive"`
	TurnNumber int    `json:"turn_number"`
	Over       bool   `json:"over"`
	Playback   bool   `json:"playback"`
	Actions    int    `json:"recorded_actions"`
}

// /debug/battles - список боев
func (h *DebugHandler) handleListBattles(w http.ResponseWriter, r *http.Request) {
	summary := make([]BattleSummary, 0)
	for _, id := range h.Service.Battles() {
		inst, ok := h.Service.GetInstance(id)
		if !ok {
			continue
		}
		inst.Inspect(func(b *engine.Battle) {
			summary = append(summary, BattleSummary{
				ID:         id,
				Width:      b.Grid.Width,
				Height:     b.Grid.Height,
				Combatants: len(b.Roster.All()),
				Alive:      len(b.Roster.Living()),
				TurnNumber: b.Turns.TurnNumber(),
				Over:       b.IsOver(),
				Playback:   inst.IsPlayback,
				Actions:    len(inst.Replay.Actions),
			})
		})
	}
	writeJSON(w, summary)
}

// /debug/combatants?battle=skirmish - полные структуры бойцов (атрибуты, эффекты, действия)
func (h *DebugHandler) handleDumpCombatants(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}

	dump := make([]domain.Combatant, 0)
	inst.Inspect(func(b *engine.Battle) {
		for _, c := range b.Roster.All() {
			dump = append(dump, *c)
		}
	})
	writeJSON(w, dump)
}

// /debug/turns?battle=skirmish - очередь ходов
func (h *DebugHandler) handleTurnOrder(w http.ResponseWriter, r *http.Request) {
	inst, ok := h.instance(w, r)
	if !ok {
		return
	}

	dump := make([]map[string]interface{}, 0)
	inst.Inspect(func(b *engine.Battle) {
		dump = b.Turns.DebugDump()
	})
	writeJSON(w, dump)
}

func (h *DebugHandler) instance(w http.ResponseWriter, r *http.Request) (*engine.Instance, bool) {
	id := r.URL.Query().Get("battle")
	inst, ok := h.Service.GetInstance(id)
	if !ok {
		http.Error(w, "Battle not found", http.StatusNotFound)
		return nil, false
	}
	return inst, true
}

func writeJSON(w http.ResponseWriter, data interface{}) {
	// Разрешаем запросы с любого источника (нужно для локального debug-клиента)
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

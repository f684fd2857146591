package engine

import (
	"arena-server/internal/domain"
	"arena-server/internal/network"
	"arena-server/internal/systems"
	"arena-server/pkg/api"
	"encoding/json"
)

const (
	ResponseUpdate = "UPDATE"
	ResponseError  = "ERROR"
)

func (i *Instance) seat(id domain.CombatantID) network.Seat {
	return network.Seat{BattleID: i.ID, Combatant: id}
}

// publishUpdate рассылает снимок боя всем подключенным бойцам ЭТОГО боя.
func (i *Instance) publishUpdate() {
	if i.Service == nil || i.Service.Hub == nil {
		return
	}
	logs := i.drainLogs()
	for _, c := range i.Battle.Roster.All() {
		seat := i.seat(c.ID)
		if !i.Service.Hub.HasSubscriber(seat) {
			continue
		}
		state := i.BuildState(c.ID)
		state.Logs = logs
		i.Service.Hub.SendTo(seat, *state)
	}
}

// BuildState создает снимок боя для бойца-наблюдателя.
// Бой без тумана войны: наблюдатель влияет только на MyCombatantID.
func (i *Instance) BuildState(observer domain.CombatantID) *api.ServerResponse {
	b := i.Battle

	resp := &api.ServerResponse{
		Type:       ResponseUpdate,
		BattleID:   i.ID,
		TurnNumber: b.Turns.TurnNumber(),
		Grid:       buildGridMeta(b.Grid),
		Over:       b.IsOver(),
	}
	if observer != domain.NilCombatantID {
		resp.MyCombatantID = observer.String()
	}
	if current, ok := b.Turns.Current(); ok && !b.IsOver() {
		resp.ActiveCombatantID = current.String()
	}
	if winner, ok := b.Winner(); ok {
		resp.Winner = winner.String()
	}

	for _, c := range b.Roster.All() {
		view := toCombatantView(c, b.Grid)
		if c.ID == observer && resp.ActiveCombatantID == observer.String() {
			resp.Reachable = i.highlight(c, &view)
		}
		resp.Combatants = append(resp.Combatants, view)
	}
	for _, id := range b.Turns.Order() {
		resp.TurnOrder = append(resp.TurnOrder, id.String())
	}

	if i.lastSummary != nil {
		if raw, err := json.Marshal(i.lastSummary); err == nil {
			resp.LastAction = raw
		}
	}
	return resp
}

// highlight заполняет подсказки для клиента активного бойца:
// цели каждого действия, на которое хватает очков, и клетки для хода.
func (i *Instance) highlight(c *domain.Combatant, view *api.CombatantView) []api.PosView {
	g := i.Battle.Grid
	for idx, a := range c.Actions {
		if !c.ActionPoints.CanDrop(a.Cost) {
			continue
		}
		view.Actions[idx].Targets = toPosViews(systems.TargetableCells(g, c.Position, a.Range))
	}
	return toPosViews(systems.ReachableCells(g, c, i.Battle.Roster.OccupiedExcept(c.ID)))
}

func toPosViews(cells []domain.MapPosition) []api.PosView {
	views := make([]api.PosView, 0, len(cells))
	for _, pos := range cells {
		views = append(views, api.PosView{X: pos.X, Y: pos.Y})
	}
	return views
}

func (i *Instance) errorResponse(observer domain.CombatantID, err error) api.ServerResponse {
	return api.ServerResponse{
		Type:          ResponseError,
		BattleID:      i.ID,
		TurnNumber:    i.Battle.Turns.TurnNumber(),
		MyCombatantID: observer.String(),
		Error:         err.Error(),
	}
}

func buildGridMeta(g *domain.Grid) *api.GridMeta {
	meta := &api.GridMeta{
		Width:      g.Width,
		Height:     g.Height,
		TileWidth:  g.TileWidth,
		TileHeight: g.TileHeight,
		Obstacles:  make([]api.PosView, 0),
	}
	for _, pos := range g.Tiles(domain.LayerObstacle) {
		meta.Obstacles = append(meta.Obstacles, api.PosView{X: pos.X, Y: pos.Y})
	}
	return meta
}

// toCombatantView конвертирует бойца в DTO
func toCombatantView(c *domain.Combatant, g *domain.Grid) api.CombatantView {
	view := api.CombatantView{
		ID:             c.ID.String(),
		Name:           c.Name,
		Team:           c.Team.String(),
		Pos:            api.PosView{X: c.Position.X, Y: c.Position.Y},
		Health:         toAttributeView(c.Health.Attribute),
		Shield:         toAttributeView(c.Shield.Attribute),
		ActionPoints:   toAttributeView(c.ActionPoints.Attribute),
		MovementPoints: toAttributeView(c.MovementPoints.Attribute),
		IsDead:         !c.IsAlive(),
	}

	screen := domain.Project(c.Position, g.TileWidth, g.TileHeight)
	view.Screen.X = screen.X
	view.Screen.Y = screen.Y

	for idx, a := range c.Actions {
		view.Actions = append(view.Actions, api.ActionView{
			Index:   idx,
			Name:    a.Name,
			IconKey: a.IconKey,
			Cost:    a.Cost,
			Range:   a.Range.Kind.String(),
			Aoe:     a.Aoe.Kind.String(),
		})
	}
	for _, e := range c.ActiveEffects {
		view.ActiveEffects = append(view.ActiveEffects, api.ActiveEffectView{
			Amount:            e.Amount,
			RemainingDuration: e.RemainingDuration,
		})
	}
	return view
}

func toAttributeView(a domain.Attribute) api.AttributeView {
	return api.AttributeView{
		Value: a.Value(),
		Min:   a.Min(),
		Max:   a.Max(),
		Text:  a.AsText(),
	}
}

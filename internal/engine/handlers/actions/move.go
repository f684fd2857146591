package actions

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"arena-server/pkg/api"
)

func HandleMove(ctx handlers.Context, p api.PositionPayload) (handlers.Result, error) {
	if _, err := ctx.Battle.Move(ctx.Actor, domain.NewMapPosition(p.X, p.Y)); err != nil {
		return handlers.EmptyResult(), err
	}
	// Перемещение видно по снимку, в лог не пишем
	return handlers.EmptyResult(), nil
}

package actions

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine/handlers"
	"fmt"
)

func HandleEndTurn(ctx handlers.Context) (handlers.Result, error) {
	if err := ctx.Battle.EndTurn(ctx.Actor); err != nil {
		return handlers.EmptyResult(), err
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s завершает ход.", nameOf(ctx, ctx.Actor)),
		MsgType: domain.LogTypeTurn,
	}, nil
}

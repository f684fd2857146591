package handlers

import (
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
)

// ErrInvalidPayload - данные команды не разобраны или не прошли валидацию.
var ErrInvalidPayload = errors.New("invalid payload")

// TypedHandlerFunc - хендлер, который работает с готовой структурой T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер, которому НЕ нужны данные (INIT, END_TURN)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload превращает типизированный хендлер в HandlerFunc.
// Распаковка JSON и вызов api.Validator (если T его реализует) происходят здесь,
// ошибки оборачивают ErrInvalidPayload.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		var payload T

		// 1. Распаковка JSON. Пустой payload - нулевое значение T.
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &payload); err != nil {
				rejectLog(ctx, err).Debug("Payload rejected: malformed JSON.")
				return Result{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
		}

		// 2. Автоматическая валидация
		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				rejectLog(ctx, err).Debug("Payload rejected: validation failed.")
				return Result{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
			}
		}

		// 3. Вызов чистой логики
		return handler(ctx, payload)
	}
}

// WithEmptyPayload - обертка для команд без данных. Входящий JSON игнорируется.
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

func rejectLog(ctx Context, err error) *logrus.Entry {
	return logger.Log.WithFields(logrus.Fields{
		"component": "handlers",
		"actor_id":  ctx.Actor,
		"error":     err.Error(),
	})
}

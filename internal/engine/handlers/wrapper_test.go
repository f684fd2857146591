package handlers

import (
	"arena-server/pkg/api"
	"encoding/json"
	"errors"
	"testing"
)

func TestWithPayload(t *testing.T) {
	var got api.PositionPayload
	called := 0
	h := WithPayload(func(ctx Context, p api.PositionPayload) (Result, error) {
		called++
		got = p
		return Result{Msg: "ok"}, nil
	})

	tests := []struct {
		name       string
		raw        json.RawMessage
		wantErr    bool
		wantCalled int
	}{
		{"Valid", json.RawMessage(`{"x":2,"y":3}`), false, 1},
		{"Empty payload", nil, false, 2},
		{"Malformed", json.RawMessage(`{"x":`), true, 2},
		{"Fails validation", json.RawMessage(`{"x":-1,"y":0}`), true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h(Context{}, tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("error must wrap ErrInvalidPayload, got %v", err)
			}
			if called != tt.wantCalled {
				t.Errorf("handler called %d times, want %d", called, tt.wantCalled)
			}
		})
	}

	if got.X != 0 || got.Y != 0 {
		t.Errorf("last accepted payload = %+v, want zero value", got)
	}
}

func TestWithEmptyPayload(t *testing.T) {
	h := WithEmptyPayload(func(ctx Context) (Result, error) {
		return Result{Msg: "done"}, nil
	})
	res, err := h(Context{}, json.RawMessage(`garbage`))
	if err != nil || res.Msg != "done" {
		t.Errorf("got %+v, %v", res, err)
	}
}

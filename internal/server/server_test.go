package server

import (
	"arena-server/internal/engine"
	"arena-server/pkg/api"
	"arena-server/pkg/arena"
	"arena-server/pkg/logger"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func startServer(t *testing.T) (*httptest.Server, *engine.GameService) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	svc := engine.NewService(engine.Config{Seed: 3, Rules: engine.DefaultRules()})
	if _, err := svc.StartBattle(ctx, arena.Default()); err != nil {
		t.Fatalf("start battle: %v", err)
	}

	ts := httptest.NewServer(New(svc, "0").Handler())
	t.Cleanup(ts.Close)
	return ts, svc
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) api.ServerResponse {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	var msg api.ServerResponse
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read: %v", err)
	}
	return msg
}

func TestWebSocket_LoginAndCommand(t *testing.T) {
	ts, _ := startServer(t)
	conn := dial(t, ts)

	if err := conn.WriteJSON(api.ClientCommand{Token: "c1", Battle: "skirmish", Action: "INIT"}); err != nil {
		t.Fatal(err)
	}
	msg := read(t, conn)
	if msg.Type != engine.ResponseUpdate || msg.MyCombatantID != "c1" || msg.ActiveCombatantID != "c1" {
		t.Fatalf("init snapshot = %+v", msg)
	}

	// Токен и бой подставляет соединение
	if err := conn.WriteJSON(api.ClientCommand{Token: "c3", Action: "END_TURN"}); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for {
		msg = read(t, conn)
		if msg.ActiveCombatantID == "c2" {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("active never switched to c2, last %+v", msg)
		}
	}
}

func TestWebSocket_LoginRejected(t *testing.T) {
	ts, _ := startServer(t)

	tests := []struct {
		name string
		cmd  api.ClientCommand
	}{
		{"Unknown battle", api.ClientCommand{Token: "c1", Battle: "nope", Action: "INIT"}},
		{"Unknown combatant", api.ClientCommand{Token: "c42", Battle: "skirmish", Action: "INIT"}},
		{"Bad token", api.ClientCommand{Token: "knight", Battle: "skirmish", Action: "INIT"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn := dial(t, ts)
			if err := conn.WriteJSON(tt.cmd); err != nil {
				t.Fatal(err)
			}
			msg := read(t, conn)
			if msg.Type != engine.ResponseError || !strings.Contains(msg.Error, errLogin.Error()) {
				t.Errorf("expected login error, got %+v", msg)
			}

			// После ошибки сервер закрывает соединение штатно, а не обрывает его
			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			_, _, err := conn.ReadMessage()
			if !websocket.IsCloseError(err, websocket.CloseNoStatusReceived, websocket.CloseNormalClosure) {
				t.Errorf("expected close frame, got %v", err)
			}
		})
	}
}

func TestDebugEndpoints(t *testing.T) {
	ts, _ := startServer(t)

	get := func(path string, dst any) int {
		resp, err := http.Get(ts.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		defer resp.Body.Close()
		if dst != nil && resp.StatusCode == http.StatusOK {
			if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
				t.Fatalf("decode %s: %v", path, err)
			}
		}
		return resp.StatusCode
	}

	var battles []BattleSummary
	get("/debug/battles", &battles)
	if len(battles) != 1 || battles[0].ID != "skirmish" || battles[0].Combatants != 4 || battles[0].TurnNumber != 1 {
		t.Errorf("battles = %+v", battles)
	}

	var turns []map[string]interface{}
	get("/debug/turns?battle=skirmish", &turns)
	if len(turns) != 4 || turns[0]["current"] != true {
		t.Errorf("turns = %v", turns)
	}

	var combatants []map[string]interface{}
	get("/debug/combatants?battle=skirmish", &combatants)
	if len(combatants) != 4 {
		t.Errorf("combatants = %d", len(combatants))
	}

	if code := get("/debug/turns?battle=missing", nil); code != http.StatusNotFound {
		t.Errorf("missing battle status = %d", code)
	}
	if code := get("/health", nil); code != http.StatusOK {
		t.Errorf("health status = %d", code)
	}
}

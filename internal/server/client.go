package server

import (
	"arena-server/internal/domain"
	"arena-server/internal/engine"
	"arena-server/internal/network"
	"arena-server/pkg/api"
	"arena-server/pkg/logger"
	"arena-server/pkg/utils"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

var errLogin = errors.New("login rejected")

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService.
// Одно соединение управляет одним бойцом одного боя.
type Client struct {
	Game *engine.GameService
	Conn *websocket.Conn
	Send chan api.ServerResponse
	Seat network.Seat

	// SessionID - метка соединения для логов (одно место может переподключаться).
	SessionID string
}

func NewClient(game *engine.GameService, conn *websocket.Conn) *Client {
	return &Client{
		Game:      game,
		Conn:      conn,
		Send:      make(chan api.ServerResponse, 256),
		SessionID: utils.GenerateID(),
	}
}

// login проверяет первое сообщение: бой существует и в нем есть такой боец.
func (c *Client) login(cmd api.ClientCommand) (network.Seat, error) {
	if err := cmd.Validate(); err != nil {
		return network.Seat{}, fmt.Errorf("%w: %v", errLogin, err)
	}
	id, err := domain.ParseCombatantID(cmd.Token)
	if err != nil {
		return network.Seat{}, fmt.Errorf("%w: %v", errLogin, err)
	}

	inst, ok := c.Game.GetInstance(cmd.Battle)
	if !ok {
		return network.Seat{}, fmt.Errorf("%w: %v", errLogin, engine.ErrBattleNotFound)
	}

	var found bool
	inst.Inspect(func(b *engine.Battle) {
		_, found = b.Combatant(id)
	})
	if !found {
		return network.Seat{}, fmt.Errorf("%w: %v", errLogin, domain.ErrUnknownCombatant)
	}
	return network.Seat{BattleID: cmd.Battle, Combatant: id}, nil
}

// readPump читает команды от клиента
func (c *Client) readPump() {
	var updates chan api.ServerResponse
	defer func() {
		if updates == nil {
			// Без подписки Send принадлежит readPump: writePump допишет очередь
			// (ошибку логина), отправит close frame и сам закроет соединение.
			close(c.Send)
			return
		}
		c.Game.Hub.Unregister(c.Seat, updates)
		logger.Log.WithFields(logrus.Fields{
			"seat":    c.Seat.String(),
			"session": c.SessionID,
		}).Info("Client disconnected")
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection")
		}
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		logger.Log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			logger.Log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	// 1. HANDSHAKE (LOGIN)
	var loginCmd api.ClientCommand
	if err := c.Conn.ReadJSON(&loginCmd); err != nil {
		logger.Log.WithError(err).Warn("Handshake failed")
		return
	}

	seat, err := c.login(loginCmd)
	if err != nil {
		logger.Log.WithError(err).Warn("Login rejected")
		c.Send <- api.ServerResponse{Type: engine.ResponseError, BattleID: loginCmd.Battle, Error: err.Error()}
		return
	}
	c.Seat = seat

	logger.Log.WithFields(logrus.Fields{
		"battle_id":    seat.BattleID,
		"combatant_id": seat.Combatant,
		"session":      c.SessionID,
	}).Info("Client logged in")

	// 2. ПОДПИСКА НА ОБНОВЛЕНИЯ
	updates = c.Game.Hub.Register(seat)

	// Пересылка обновлений из Hub в writePump. Канал закрывает Hub.
	go func(in chan api.ServerResponse) {
		for msg := range in {
			c.Send <- msg
		}
		close(c.Send)
	}(updates)

	// 3. INIT (триггер первой отрисовки)
	token := seat.Combatant.String()
	if err := c.Game.ProcessCommand(api.ClientCommand{Action: "INIT", Token: token, Battle: seat.BattleID}); err != nil {
		logger.Log.WithError(err).Warn("INIT rejected")
	}

	// 4. ЦИКЛ ЧТЕНИЯ КОМАНД
	for {
		var cmd api.ClientCommand
		err := c.Conn.ReadJSON(&cmd)
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Log.Errorf("WS Error: %v", err)
			}
			break
		}
		// Соединение говорит только от имени своего бойца
		cmd.Token = token
		cmd.Battle = seat.BattleID
		if err := c.Game.ProcessCommand(cmd); err != nil {
			logger.Log.WithError(err).WithField("seat", seat.String()).Debug("Command not accepted")
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			logger.Log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					logger.Log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				logger.Log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				logger.Log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				logger.Log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}

package ws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/afriday11/phasefinity/internal/service/run"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
	"github.com/afriday11/phasefinity/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Handler struct {
	runSvc *run.Service
}

func NewHandler(runSvc *run.Service) *Handler {
	return &Handler{runSvc: runSvc}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for dev
	},
}

// HandleRunWS attaches a websocket to a run's state feed. Every state change
// is pushed; actions can also be sent over the socket instead of HTTP.
func (h *Handler) HandleRunWS(c *gin.Context) {
	runID := c.Param("runId")
	if runID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid run id"})
		return
	}

	connID, outbound, err := h.runSvc.Subscribe(runID)
	if err != nil {
		if errors.Is(err, appErr.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to subscribe"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.runSvc.Unsubscribe(runID, connID)
		logger.Log.Error("Failed to upgrade websocket", zap.Error(err))
		return
	}

	logger.Log.Info("New WebSocket connection",
		zap.String("runID", runID),
		zap.String("connID", connID),
	)

	client := newClient(conn, h.runSvc, runID, connID, outbound)
	client.run()
}

type client struct {
	conn      *websocket.Conn
	runSvc    *run.Service
	runID     string
	connID    string
	outbound  <-chan run.OutgoingMessage
	done      chan struct{}
	pingEvery time.Duration
}

func newClient(conn *websocket.Conn, runSvc *run.Service, runID, connID string, outbound <-chan run.OutgoingMessage) *client {
	conn.SetReadLimit(1 << 20)
	conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	return &client{
		conn:      conn,
		runSvc:    runSvc,
		runID:     runID,
		connID:    connID,
		outbound:  outbound,
		done:      make(chan struct{}),
		pingEvery: 25 * time.Second,
	}
}

func (c *client) run() {
	go c.writePump()
	c.readPump()
}

func (c *client) readPump() {
	defer func() {
		close(c.done)
		c.runSvc.Unsubscribe(c.runID, c.connID)
		c.conn.Close()
	}()

	for {
		mt, message, err := c.conn.ReadMessage()
		if err != nil {
			logger.Log.Info("WS read error", zap.Error(err), zap.String("runID", c.runID))
			return
		}
		if mt != websocket.TextMessage && mt != websocket.BinaryMessage {
			continue
		}

		var incoming struct {
			Type string          `json:"type"`
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(message, &incoming); err != nil {
			c.safeWrite(run.OutgoingMessage{
				Type: "error",
				Data: gin.H{"message": "invalid payload"},
			})
			continue
		}
		if incoming.Type == "" {
			continue
		}

		if err := c.handleAction(incoming.Type, incoming.Data); err != nil {
			c.safeWrite(run.OutgoingMessage{
				Type: "error",
				Data: gin.H{"message": fmt.Sprintf("action failed: %v", err)},
			})
		}
	}
}

func (c *client) handleAction(action string, data json.RawMessage) error {
	ctx := context.Background()

	switch action {
	case "select":
		var payload struct {
			CardID int `json:"cardId"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		_, err := c.runSvc.SelectCard(c.runID, payload.CardID)
		return err
	case "sort":
		var payload struct {
			By string `json:"by"`
		}
		if err := json.Unmarshal(data, &payload); err != nil {
			return err
		}
		_, err := c.runSvc.SortHand(c.runID, payload.By)
		return err
	case "play":
		_, _, err := c.runSvc.PlayHand(ctx, c.runID)
		return err
	case "discard":
		_, err := c.runSvc.DiscardCards(ctx, c.runID)
		return err
	case "ping":
		c.safeWrite(run.OutgoingMessage{Type: "pong", Data: gin.H{"message": "pong"}})
		return nil
	default:
		return fmt.Errorf("unsupported action")
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(c.pingEvery)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.outbound:
			if !ok {
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				logger.Log.Info("WS write error", zap.Error(err), zap.String("runID", c.runID))
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *client) safeWrite(msg run.OutgoingMessage) {
	if err := c.conn.WriteJSON(msg); err != nil {
		logger.Log.Info("WS write error", zap.Error(err), zap.String("runID", c.runID))
	}
}

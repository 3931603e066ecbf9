package ws

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"jobhub_backend/internal/logger"
	"jobhub_backend/internal/services"
	"jobhub_backend/internal/services/dto"
	"jobhub_backend/pkg/apperrors"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 8 * 1024
)

type IncomingWSMessage struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// OutgoingWSMessage - конверт для всего, что уходит клиенту:
// ack на его запрос либо событие комнаты (new_message).
type OutgoingWSMessage struct {
	Event   string `json:"event"`
	For     string `json:"for,omitempty"`
	Success *bool  `json:"success,omitempty"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
}

func ackOK(event string, data any) OutgoingWSMessage {
	ok := true
	return OutgoingWSMessage{Event: "ack", For: event, Success: &ok, Data: data}
}

func ackFail(event, message string) OutgoingWSMessage {
	ok := false
	return OutgoingWSMessage{Event: "ack", For: event, Success: &ok, Message: message}
}

func newMessageEvent(payload any) OutgoingWSMessage {
	return OutgoingWSMessage{Event: "new_message", Data: payload}
}

type Client struct {
	UserID string
	conn   *websocket.Conn
	send   chan any

	manager     *Manager
	chatService *services.ChatService

	// mu защищает closed: после closeSend канал send закрыт,
	// и любая запись в него обязана быть отсечена здесь.
	mu     sync.RWMutex
	closed bool
}

// closeSend закрывает канал send ровно один раз. Вызывается менеджером
// под его локом; writePump после этого завершается и рвет соединение.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

func (c *Client) readPump() {
	defer func() {
		c.manager.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("ws read error", "user_id", c.UserID, "error", err)
			}
			return
		}

		var msg IncomingWSMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.trySend(ackFail("", "Invalid message format"))
			continue
		}

		c.handleMessage(msg)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// trySend не блокируется и возвращает false, если клиент уже отключен
// или его буфер заполнен. readPump может получить кадр уже после того,
// как менеджер отбросил клиента, поэтому проверка closed обязательна.
func (c *Client) trySend(msg any) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) handleMessage(msg IncomingWSMessage) {
	switch msg.Event {

	case "join_job_room":
		var payload struct {
			JobID string `json:"jobId"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.JobID == "" {
			c.trySend(ackFail(msg.Event, "jobId is required"))
			return
		}
		c.manager.JoinRoom(payload.JobID, c)
		c.trySend(ackOK(msg.Event, map[string]string{"jobId": payload.JobID}))

	case "leave_job_room":
		var payload struct {
			JobID string `json:"jobId"`
		}
		if err := json.Unmarshal(msg.Data, &payload); err != nil || payload.JobID == "" {
			c.trySend(ackFail(msg.Event, "jobId is required"))
			return
		}
		c.manager.LeaveRoom(payload.JobID, c)
		c.trySend(ackOK(msg.Event, map[string]string{"jobId": payload.JobID}))

	case "send_message":
		var req dto.SendMessageRequest
		if err := json.Unmarshal(msg.Data, &req); err != nil {
			c.trySend(ackFail(msg.Event, "Invalid send_message payload"))
			return
		}
		if req.JobID == "" || req.ReceiverID == "" || req.Message == "" {
			c.trySend(ackFail(msg.Event, "jobId, receiverId and message are required"))
			return
		}

		created, err := c.chatService.SendMessage(context.Background(), c.UserID, &req)
		if err != nil {
			c.trySend(ackFail(msg.Event, wsErrorMessage(err)))
			return
		}
		c.trySend(ackOK(msg.Event, created))

	default:
		c.trySend(ackFail(msg.Event, "Unknown event"))
	}
}

// wsErrorMessage отдает клиенту текст AppError, но не внутренние детали.
func wsErrorMessage(err error) string {
	if appErr, ok := apperrors.AsAppError(err); ok && appErr.Code != apperrors.CodeInternalError {
		return appErr.Message
	}
	return "Failed to send message"
}

package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/grovetools/praise/errors"
	"github.com/grovetools/praise/internal/session"
	"github.com/grovetools/praise/pkg/presenter"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = wsPongWait * 9 / 10
	wsMaxMessage = 4096
)

// wsRequest is a client event: {"action":"click","index":K} or {"action":"another"}.
type wsRequest struct {
	Action string `json:"action"`
	Index  *int   `json:"index,omitempty"`
}

// wsMessage is pushed to the client.
type wsMessage struct {
	Type  string              `json:"type"` // "view", "workers", "error"
	View  *presenter.View     `json:"view,omitempty"`
	Error *errors.PraiseError `json:"error,omitempty"`
}

// handleWebSocket streams the session's view and accepts click/another events.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	var id string
	if c, err := r.Cookie(s.opts.CookieName); err == nil {
		id = c.Value
	}
	sess, created := s.store.GetOrCreate(id)

	header := http.Header{}
	if created {
		header.Add("Set-Cookie", s.cookie(sess.ID).String())
	}
	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		// Upgrade has already written the HTTP error.
		s.logger.WithError(err).Debug("WebSocket upgrade failed")
		return
	}
	updates := sess.Subscribe()
	defer sess.Unsubscribe(updates)

	logger := s.logger.WithField("session", sess.ID)
	logger.Debug("WebSocket client connected")

	replies := make(chan wsMessage, 4)
	stop := make(chan struct{})
	done := make(chan struct{})
	go s.readLoop(conn, sess, replies, stop, done)
	defer func() {
		close(stop)
		conn.Close()
		<-done
	}()

	v, err := s.render(sess)
	if err != nil {
		s.writeWS(conn, errorMessage(err))
	} else {
		s.writeWS(conn, wsMessage{Type: "view", View: &v})
	}

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			logger.Debug("WebSocket client disconnected")
			return
		case msg := <-replies:
			if err := s.writeWS(conn, msg); err != nil {
				return
			}
		case u, ok := <-updates:
			if !ok || u.Type == session.UpdateExpired {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "session ended"),
					time.Now().Add(wsWriteWait))
				return
			}
			if err := s.writeWS(conn, s.updateMessage(sess, u)); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readLoop applies client events until the connection fails, then closes done.
func (s *Server) readLoop(conn *websocket.Conn, sess *session.Session, replies chan<- wsMessage, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	reply := func(msg wsMessage) bool {
		select {
		case replies <- msg:
			return true
		case <-stop:
			return false
		}
	}

	conn.SetReadLimit(wsMaxMessage)
	conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.WithError(err).Debug("WebSocket read failed")
			}
			return
		}

		var req wsRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if !reply(errorMessage(errors.Wrap(err, errors.ErrCodeInvalidInput, "malformed message"))) {
				return
			}
			continue
		}

		switch req.Action {
		case "click":
			if req.Index == nil {
				if !reply(errorMessage(errors.New(errors.ErrCodeInvalidInput, "click needs an index"))) {
					return
				}
				continue
			}
			_, err = s.apply(sess, "ws", clickEvent(*req.Index))
		case "another":
			_, err = s.apply(sess, "ws", anotherEvent)
		default:
			err = errors.New(errors.ErrCodeInvalidInput, "unknown action").WithDetail("action", req.Action)
		}
		// Successful events arrive through the session subscription.
		if err != nil && !reply(errorMessage(err)) {
			return
		}
	}
}

func (s *Server) updateMessage(sess *session.Session, u session.Update) wsMessage {
	switch u.Type {
	case session.UpdateView:
		if v, ok := u.Payload.(presenter.View); ok {
			return wsMessage{Type: "view", View: &v}
		}
	case session.UpdateWorkers:
		v, err := s.render(sess)
		if err != nil {
			return errorMessage(err)
		}
		return wsMessage{Type: "workers", View: &v}
	}
	v, err := s.render(sess)
	if err != nil {
		return errorMessage(err)
	}
	return wsMessage{Type: "view", View: &v}
}

func (s *Server) writeWS(conn *websocket.Conn, msg wsMessage) error {
	conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.WithError(err).Debug("WebSocket write failed")
		return err
	}
	return nil
}

func errorMessage(err error) wsMessage {
	praiseErr, ok := errors.As(err)
	if !ok {
		praiseErr = errors.Wrap(err, errors.ErrCodeInternal, "internal error")
	}
	return wsMessage{Type: "error", Error: praiseErr}
}

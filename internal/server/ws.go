package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/paperscout/paperscout/internal/agent"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// planWSRequest is the incoming WebSocket message format.
type planWSRequest struct {
	Query string   `json:"query"`
	Tasks []string `json:"tasks"`
}

// planWSMessage is the outgoing WebSocket message format. Each task
// result is streamed as soon as it completes; a final "done" message
// closes the plan.
type planWSMessage struct {
	Type    string `json:"type"` // "result", "error", or "done"
	Task    string `json:"task,omitempty"`
	Key     string `json:"key,omitempty"`
	Content string `json:"content,omitempty"`
}

// handlePlanWS runs planner tasks over a WebSocket, writing each task's
// output as it finishes so callers see progress on long plans.
func (s *Server) handlePlanWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	for {
		var req planWSRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.logger.Warn("websocket read", zap.Error(err))
			}
			return
		}

		if req.Query == "" {
			s.sendWS(conn, planWSMessage{Type: "error", Content: "query is required"})
			continue
		}

		names := req.Tasks
		if len(names) == 0 {
			for _, t := range agent.AllTasks() {
				names = append(names, t.String())
			}
		}

		for _, name := range names {
			task, err := agent.ParseTask(name)
			if err != nil {
				s.sendWS(conn, planWSMessage{Type: "error", Task: name, Content: err.Error()})
				continue
			}

			key, text, err := s.agent.ExecuteTask(r.Context(), req.Query, task)
			if err != nil {
				s.sendWS(conn, planWSMessage{Type: "error", Task: task.String(), Content: err.Error()})
				continue
			}
			s.sendWS(conn, planWSMessage{Type: "result", Task: task.String(), Key: key, Content: text})
		}

		s.sendWS(conn, planWSMessage{Type: "done"})
	}
}

func (s *Server) sendWS(conn *websocket.Conn, msg planWSMessage) {
	if err := conn.WriteJSON(msg); err != nil {
		s.logger.Warn("websocket write", zap.Error(err))
	}
}

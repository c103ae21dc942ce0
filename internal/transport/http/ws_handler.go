package http

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/app"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/session"
)

// WSHandler drives one practice session over a websocket. The connection's
// read loop is the session's single owner, so runner operations need no
// locking and replies are written inline.
type WSHandler struct {
	service  *app.ExamService
	upgrader websocket.Upgrader
}

func NewWSHandler(service *app.ExamService) *WSHandler {
	return &WSHandler{
		service: service,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type selectPayload struct {
	Letter string `json:"letter"`
}

type goToPayload struct {
	Index int `json:"index"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

type errorPayload struct {
	Message string `json:"message"`
}

type sessionPayload struct {
	SessionID string `json:"sessionId"`
	Questions int    `json:"questions"`
}

type questionPayload struct {
	Index     int      `json:"index"`
	Total     int      `json:"total"`
	Prompt    string   `json:"prompt"`
	Passage   string   `json:"passage,omitempty"`
	ImageRef  string   `json:"imageRef,omitempty"`
	Options   []string `json:"options"`
	Selected  string   `json:"selected,omitempty"`
	Confirmed bool     `json:"confirmed"`
}

type opResult struct {
	Op string `json:"op"`
	OK bool   `json:"ok"`
}

// ServeWS upgrades the request and runs the session protocol: the client sends
// select/confirm/goto/finish messages, the server answers with opResult and
// question state, and finish closes with the graded report. Disconnecting
// before finish abandons the session with no persisted effect.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	candidateID := r.URL.Query().Get("candidateId")
	subjectID := r.URL.Query().Get("subjectId")
	if candidateID == "" || subjectID == "" {
		http.Error(w, "missing candidateId or subjectId", http.StatusBadRequest)
		return
	}
	roleID := r.URL.Query().Get("roleId")
	filter := filterFromQuery(r)

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	runner, err := h.service.StartSession(r.Context(), candidateID, subjectID, roleID, filter)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	finished := false
	defer func() {
		if !finished {
			h.service.Abandon(runner.ID())
		}
	}()

	_ = conn.WriteJSON(outboundMessage[sessionPayload]{Type: "session", Payload: sessionPayload{
		SessionID: runner.ID(),
		Questions: runner.Len(),
	}})
	h.sendQuestion(conn, runner)

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}

		switch inbound.Type {
		case "select":
			var payload selectPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid select payload")
				continue
			}
			ok := runner.SelectOption(payload.Letter)
			_ = conn.WriteJSON(outboundMessage[opResult]{Type: "opResult", Payload: opResult{Op: "select", OK: ok}})
		case "confirm":
			ok := runner.Confirm()
			_ = conn.WriteJSON(outboundMessage[opResult]{Type: "opResult", Payload: opResult{Op: "confirm", OK: ok}})
		case "goto":
			var payload goToPayload
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				h.sendError(conn, "invalid goto payload")
				continue
			}
			ok := runner.GoTo(payload.Index)
			_ = conn.WriteJSON(outboundMessage[opResult]{Type: "opResult", Payload: opResult{Op: "goto", OK: ok}})
			if ok {
				h.sendQuestion(conn, runner)
			}
		case "finish":
			report, err := h.service.FinishSession(r.Context(), runner.ID())
			if err != nil {
				h.sendError(conn, err.Error())
				continue
			}
			finished = true
			_ = conn.WriteJSON(outboundMessage[app.SessionReport]{Type: "report", Payload: report})
			return
		default:
			h.sendError(conn, "unsupported message type")
		}
	}
}

func (h *WSHandler) sendQuestion(conn *websocket.Conn, runner *session.Runner) {
	q, ok := runner.Current()
	if !ok {
		return
	}
	selected, confirmed := runner.Selection()
	_ = conn.WriteJSON(outboundMessage[questionPayload]{Type: "question", Payload: questionPayload{
		Index:     runner.Index(),
		Total:     runner.Len(),
		Prompt:    q.Prompt,
		Passage:   q.Passage,
		ImageRef:  q.ImageRef,
		Options:   q.Options,
		Selected:  selected,
		Confirmed: confirmed,
	}})
}

func (h *WSHandler) sendError(conn *websocket.Conn, message string) {
	_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: message}})
}

// filterFromQuery builds the optional free-practice filter from query params.
// All-empty params mean no filter at all.
func filterFromQuery(r *http.Request) *domain.SessionFilter {
	board := r.URL.Query().Get("board")
	level := r.URL.Query().Get("level")
	year := 0
	if raw := r.URL.Query().Get("year"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			year = parsed
		}
	}
	if board == "" && level == "" && year == 0 {
		return nil
	}
	return &domain.SessionFilter{Board: board, Year: year, EducationLevel: level}
}

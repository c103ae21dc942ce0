package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/app"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/domain"
	"github.com/lucassantos1638-ship-it/o-concurseiro-pro-sub000/internal/infra/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *memory.ProgressStore) {
	t.Helper()
	progressStore := memory.NewProgressStore()
	service := app.NewExamService(
		memory.NewCatalog([]domain.Question{
			{ID: "q1", SubjectID: "math", Options: []string{"1", "2"}, CorrectLetter: "A", EducationLevel: "superior"},
		}),
		progressStore,
		memory.NewProfileStore([]domain.CandidateRecord{
			{Profile: domain.CandidateProfile{ID: "cand-1", DisplayName: "Ana", TrackedRoles: []string{"role-1"}}},
		}),
		memory.NewRoleRegistry(map[string]domain.Role{
			"role-1": {ID: "role-1", EducationLevel: "superior", OpenSeats: 1},
		}),
		memory.NewSessionRegistry(),
		50,
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", NewWSHandler(service).ServeWS)
	mux.HandleFunc("/leaderboard", NewAPIHandler(service).ServeLeaderboard)
	mux.HandleFunc("/placement", NewAPIHandler(service).ServePlacement)
	return httptest.NewServer(mux), progressStore
}

func TestWebSocketSessionFlow(t *testing.T) {
	server, progressStore := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?candidateId=cand-1&subjectId=math&roleId=role-1"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	msgType, _ := readNext(conn, t, "session")
	if msgType != "session" {
		t.Fatalf("expected session, got %s", msgType)
	}
	readNext(conn, t, "question")

	writeMsg(conn, t, map[string]any{"type": "select", "payload": map[string]any{"letter": "A"}})
	readNext(conn, t, "opResult")

	writeMsg(conn, t, map[string]any{"type": "confirm"})
	readNext(conn, t, "opResult")

	writeMsg(conn, t, map[string]any{"type": "finish"})
	_, payload := readNext(conn, t, "report")
	if payload["answered"].(float64) != 1 || payload["correct"].(float64) != 1 {
		t.Fatalf("expected 1 correct answer in report, got %+v", payload)
	}

	progress, _ := progressStore.Load(context.Background(), "cand-1")
	if progress.QuestionsResolved != 1 {
		t.Fatalf("expected persisted progress, got %+v", progress)
	}
}

func TestWebSocketRejectedOpsAreReported(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	u := "ws" + server.URL[len("http"):] + "/ws?candidateId=cand-1&subjectId=math"
	conn, _, err := websocket.DefaultDialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()

	readNext(conn, t, "session")
	readNext(conn, t, "question")

	// Confirming with no selection is rejected, not fatal.
	writeMsg(conn, t, map[string]any{"type": "confirm"})
	_, payload := readNext(conn, t, "opResult")
	if payload["ok"].(bool) {
		t.Fatalf("confirm without selection must be rejected")
	}

	writeMsg(conn, t, map[string]any{"type": "bogus"})
	readNext(conn, t, "error")
}

func TestWebSocketMissingParams(t *testing.T) {
	server, _ := newTestServer(t)
	defer server.Close()

	resp, err := http.Get(server.URL + "/ws?candidateId=cand-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func writeMsg(conn *websocket.Conn, t *testing.T, msg map[string]any) {
	t.Helper()
	if err := conn.WriteJSON(msg); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func readNext(conn *websocket.Conn, t *testing.T, expect string) (string, map[string]any) {
	t.Helper()
	var msg struct {
		Type    string         `json:"type"`
		Payload map[string]any `json:"payload"`
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&msg); err != nil {
		t.Fatalf("read json: %v", err)
	}
	if expect != "" && msg.Type != expect {
		t.Fatalf("expected type %s, got %s", expect, msg.Type)
	}
	return msg.Type, msg.Payload
}

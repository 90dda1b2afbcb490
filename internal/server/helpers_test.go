package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	cws "github.com/coder/websocket"
	"github.com/colsched/colsched/internal/screen"
	"github.com/colsched/colsched/pkg/collegeapi"
	"github.com/colsched/colsched/pkg/logger"
	"github.com/spf13/afero"
)

const testSecret = "test-rpc-secret"

const testFixture = `{
  "groups": [{"groupName": "ИС-11"}, {"groupName": "ИС-12"}, {"groupName": "ПК-21"}],
  "schedules": {
    "ИС-12": [{"lessonDate": "2026-09-01", "weekday": "Вторник", "lessons": [
      {"lessonNumber": 1, "time": "08:30-10:00", "groupParts": {
        "FULL": {"subject": "Математика", "teacher": "Иванов И.И.", "classroom": "101", "building": "А"}
      }}
    ]}]
  }
}`

type testEnv struct {
	screen  *screen.Screen
	server  *Server
	handler http.Handler
	log     *logger.MockLogger
}

// newTestEnv serves a started screen backed by fixture and waits for
// the initial load to settle.
func newTestEnv(t *testing.T, fixture string) *testEnv {
	t.Helper()
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/fixture.json", []byte(fixture), 0o644); err != nil {
		t.Fatal(err)
	}
	scr := screen.New(collegeapi.NewFileSource(fs, "/fixture.json"))
	log := logger.NewMockLogger()
	srv := New(scr, &Config{
		Secret:  testSecret,
		Version: "1.0.0",
		Commit:  "abc123",
		Logger:  log,
	})
	t.Cleanup(func() {
		srv.Close()
		scr.Close()
	})
	scr.Start()
	scr.Wait()
	return &testEnv{screen: scr, server: srv, handler: srv.Handler(), log: log}
}

// rpcCall sends a JSON-RPC request to handler and returns the status
// code and the decoded response.
func rpcCall(t *testing.T, handler http.Handler, method string, params any, authToken string) (int, map[string]any) {
	t.Helper()
	reqBody := map[string]any{
		"jsonrpc": "2.0",
		"method":  method,
		"id":      1,
	}
	if params != nil {
		reqBody["params"] = params
	}
	data, err := json.Marshal(reqBody)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, PathRPC, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	body, _ := io.ReadAll(rr.Result().Body)
	var result map[string]any
	if len(body) > 0 {
		if err := json.Unmarshal(body, &result); err != nil {
			t.Fatalf("unmarshal response: %v (body: %s)", err, string(body))
		}
	}
	return rr.Code, result
}

func resultOf(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	result, ok := resp["result"].(map[string]any)
	if !ok {
		t.Fatalf("expected result object, got %v (error: %v)", resp["result"], resp["error"])
	}
	return result
}

func errorCode(t *testing.T, resp map[string]any) float64 {
	t.Helper()
	errObj, ok := resp["error"].(map[string]any)
	if !ok {
		t.Fatalf("expected error object, got %v", resp)
	}
	return errObj["code"].(float64)
}

func selectedName(result map[string]any) string {
	sel, _ := result["selected"].(map[string]any)
	name, _ := sel["groupName"].(string)
	return name
}

// dialWS connects to the WebSocket endpoint of srvURL.
func dialWS(t *testing.T, ctx context.Context, srvURL, token string) *cws.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srvURL, "http") + PathWebSocket
	conn, _, err := cws.Dial(ctx, wsURL, &cws.DialOptions{
		HTTPHeader: http.Header{"Authorization": []string{"Bearer " + token}},
	})
	if err != nil {
		t.Fatalf("WebSocket dial failed: %v", err)
	}
	t.Cleanup(func() { conn.Close(cws.StatusNormalClosure, "") })
	return conn
}

func wsRequest(t *testing.T, ctx context.Context, conn *cws.Conn, id int, method string, params any) {
	t.Helper()
	req := map[string]any{"jsonrpc": "2.0", "method": method, "id": id}
	if params != nil {
		req["params"] = params
	}
	data, _ := json.Marshal(req)
	if err := conn.Write(ctx, cws.MessageText, data); err != nil {
		t.Fatalf("write %s: %v", method, err)
	}
}

// wsReadUntil reads messages until match accepts one or ctx expires.
func wsReadUntil(t *testing.T, ctx context.Context, conn *cws.Conn, match func(map[string]any) bool) map[string]any {
	t.Helper()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			t.Fatalf("read: %v", err)
		}
		var msg map[string]any
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("unmarshal %s: %v", data, err)
		}
		if match(msg) {
			return msg
		}
	}
}

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

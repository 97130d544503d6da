package controller

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benbeisheim/chessrules/internal/bot"
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/service"
	"github.com/gofiber/fiber/v2"
)

func newTestApp() *fiber.App {
	app := fiber.New()
	gs := service.NewGameService(service.NewGameManager(bot.NewRandomBot(1)))
	RegisterRoutes(app, gs, []string{"http://localhost:5173"})
	return app
}

func do(t *testing.T, app *fiber.App, method, target, player, body string) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if player != "" {
		req.Header.Set(middleware.PlayerIDHeader, player)
	}
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			t.Fatalf("%s %s: %v in %s", method, target, err, raw)
		}
	}
	return resp.StatusCode, out
}

func createGame(t *testing.T, app *fiber.App, body string) string {
	t.Helper()
	status, out := do(t, app, fiber.MethodPost, "/api/game/create", "alice", body)
	if status != fiber.StatusOK {
		t.Fatalf("create: status %d: %v", status, out)
	}
	gameID, ok := out["game_id"].(string)
	if !ok || gameID == "" {
		t.Fatalf("create: no game id in %v", out)
	}
	return gameID
}

func TestGameFlow(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, "")

	status, out := do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "alice", "")
	if status != fiber.StatusOK || out["color"] != "light" {
		t.Fatalf("join: status %d: %v", status, out)
	}
	status, out = do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "bob", "")
	if status != fiber.StatusOK || out["color"] != "dark" {
		t.Fatalf("join: status %d: %v", status, out)
	}

	status, out = do(t, app, fiber.MethodGet, "/api/game/"+gameID+"/moves?square=e2", "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("moves: status %d: %v", status, out)
	}
	destinations, _ := out["destinations"].([]interface{})
	if len(destinations) != 2 || destinations[0] != "e3" || destinations[1] != "e4" {
		t.Fatalf("moves: unexpected destinations %v", out["destinations"])
	}

	status, out = do(t, app, fiber.MethodPost, "/api/game/"+gameID+"/move", "alice", `{"from":"e2","to":"e4"}`)
	if status != fiber.StatusOK || out["notation"] != "e4" {
		t.Fatalf("move: status %d: %v", status, out)
	}

	status, out = do(t, app, fiber.MethodGet, "/api/game/"+gameID, "alice", "")
	if status != fiber.StatusOK {
		t.Fatalf("state: status %d: %v", status, out)
	}
	if history, _ := out["moveHistory"].([]interface{}); len(history) != 1 {
		t.Fatalf("state: unexpected history %v", out["moveHistory"])
	}

	status, out = do(t, app, fiber.MethodPost, "/api/game/"+gameID+"/bot?color=dark", "alice", "")
	if status != fiber.StatusOK || out["notation"] == "" {
		t.Fatalf("bot: status %d: %v", status, out)
	}
}

func TestCreateFromFEN(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, `{"fen":"4k3/8/8/8/8/8/8/4K3 w - - 0 1"}`)

	_, out := do(t, app, fiber.MethodGet, "/api/game/"+gameID, "alice", "")
	if pieces, _ := out["pieces"].([]interface{}); len(pieces) != 2 {
		t.Fatalf("expected 2 pieces but got %v", out["pieces"])
	}

	status, _ := do(t, app, fiber.MethodPost, "/api/game/create", "alice", `{"fen":"garbage"}`)
	if status != fiber.StatusBadRequest {
		t.Fatalf("expected 400 but got %d", status)
	}
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, "")
	do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "alice", "")
	do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "bob", "")

	tests := []struct {
		name   string
		method string
		target string
		player string
		body   string
		want   int
	}{
		{"unknown game", fiber.MethodGet, "/api/game/nope", "alice", "", fiber.StatusNotFound},
		{"bad square", fiber.MethodGet, "/api/game/" + gameID + "/moves?square=e9x", "alice", "", fiber.StatusBadRequest},
		{"empty square", fiber.MethodGet, "/api/game/" + gameID + "/moves?square=e4", "alice", "", fiber.StatusUnprocessableEntity},
		{"other color", fiber.MethodPost, "/api/game/" + gameID + "/move", "alice", `{"from":"e7","to":"e5"}`, fiber.StatusForbidden},
		{"not seated", fiber.MethodPost, "/api/game/" + gameID + "/move", "carol", `{"from":"e2","to":"e4"}`, fiber.StatusForbidden},
		{"illegal", fiber.MethodPost, "/api/game/" + gameID + "/move", "alice", `{"from":"e2","to":"e5"}`, fiber.StatusUnprocessableEntity},
		{"bad body", fiber.MethodPost, "/api/game/" + gameID + "/move", "alice", `{"from":`, fiber.StatusBadRequest},
		{"full", fiber.MethodPost, "/api/game/join/" + gameID, "carol", "", fiber.StatusConflict},
		{"bad color", fiber.MethodPost, "/api/game/" + gameID + "/bot?color=green", "alice", "", fiber.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := do(t, app, tt.method, tt.target, tt.player, tt.body)
			if status != tt.want {
				t.Fatalf("expected %d but got %d: %v", tt.want, status, out)
			}
			if _, ok := out["error"]; !ok {
				t.Fatalf("no error message in %v", out)
			}
		})
	}
}

func TestSeatsSurviveLaterRequests(t *testing.T) {
	app := newTestApp()
	gameID := createGame(t, app, "")

	do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "alice", "")
	do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "bob", "")
	status, out := do(t, app, fiber.MethodPost, "/api/game/join/"+gameID, "carol", "")
	if status != fiber.StatusConflict {
		t.Fatalf("third player joined: status %d: %v", status, out)
	}

	for _, caller := range []string{"zed", "zedol", "mallory-the-long-name"} {
		do(t, app, fiber.MethodGet, "/api/game/"+gameID+"?playerId="+caller, caller, "")
	}
	_, out = do(t, app, fiber.MethodGet, "/api/game/"+gameID, "zed", "")
	players, _ := out["players"].(map[string]interface{})
	light, _ := players["light"].(map[string]interface{})
	dark, _ := players["dark"].(map[string]interface{})
	if light["name"] != "alice" || dark["name"] != "bob" {
		t.Fatalf("seats changed: %v", players)
	}

	status, _ = do(t, app, fiber.MethodPost, "/api/game/"+gameID+"/move", "zed", `{"from":"e2","to":"e4"}`)
	if status != fiber.StatusForbidden {
		t.Fatalf("unseated caller moved: status %d", status)
	}
}

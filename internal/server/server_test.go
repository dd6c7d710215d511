package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benbeisheim/chessrules/internal/config"
	"github.com/benbeisheim/chessrules/internal/middleware"
	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/benbeisheim/chessrules/internal/service"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	cfg := config.Default()
	cfg.MatchmakingIntervalMillis = int(time.Hour / time.Millisecond)
	cfg.ArchivePath = filepath.Join(t.TempDir(), "games.parquet")
	cfg.ArchiveParallel = 1

	gm := service.NewGameManager(cfg)
	t.Cleanup(gm.Close)
	return New(cfg, service.NewGameService(gm))
}

func do(t *testing.T, app *fiber.App, method, path, player, body string) (int, []byte) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if player != "" {
		req.Header.Set(middleware.PlayerIDHeader, player)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func createSeatedGame(t *testing.T, app *fiber.App) string {
	t.Helper()
	status, body := do(t, app, http.MethodPost, "/api/game/create", "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	var created struct {
		GameID string `json:"game_id"`
	}
	require.NoError(t, json.Unmarshal(body, &created))

	status, _ = do(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "alice", "")
	require.Equal(t, fiber.StatusOK, status)
	status, body = do(t, app, http.MethodPost, "/api/game/join/"+created.GameID, "bob", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), `"color":"black"`)
	return created.GameID
}

func TestPlayerIDRequired(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodPost, "/api/game/create", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodPost, "/api/game/create?playerId=alice", "", "")
	assert.Equal(t, fiber.StatusOK, status)
}

func TestMoveFlow(t *testing.T) {
	app := newTestApp(t)
	id := createSeatedGame(t, app)
	base := "/api/game/" + id

	status, body := do(t, app, http.MethodPost, base+"/move", "alice", `{"san":"e4"}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var view model.GameView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, []string{"e4"}, view.MoveHistory)

	status, _ = do(t, app, http.MethodPost, base+"/move", "bob", `{"from":"e7","to":"e5"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, body = do(t, app, http.MethodGet, base+"/transcript", "carol", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"moves":["e4","e5"]}`, string(body))

	status, body = do(t, app, http.MethodGet, base+"/moves/g1", "carol", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"square":"g1","moves":["e2","f3","h3"]}`, string(body))

	status, body = do(t, app, http.MethodGet, base+"/pgn", "carol", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, string(body), "e5")

	status, _ = do(t, app, http.MethodPost, base+"/undo", "bob", "")
	require.Equal(t, fiber.StatusOK, status)
	status, body = do(t, app, http.MethodGet, base, "carol", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, []string{"e4"}, view.MoveHistory)
}

func TestErrorStatuses(t *testing.T) {
	app := newTestApp(t)
	id := createSeatedGame(t, app)
	base := "/api/game/" + id

	cases := []struct {
		name   string
		method string
		path   string
		player string
		body   string
		want   int
	}{
		{"unknown game", http.MethodGet, "/api/game/missing", "alice", "", fiber.StatusNotFound},
		{"game full", http.MethodPost, "/api/game/join/" + id, "carol", "", fiber.StatusConflict},
		{"not your turn", http.MethodPost, base + "/move", "bob", `{"san":"e5"}`, fiber.StatusForbidden},
		{"stranger", http.MethodPost, base + "/move", "carol", `{"san":"e4"}`, fiber.StatusForbidden},
		{"bad notation", http.MethodPost, base + "/move", "alice", `{"san":"xyz"}`, fiber.StatusBadRequest},
		{"bad body", http.MethodPost, base + "/move", "alice", `{`, fiber.StatusBadRequest},
		{"illegal", http.MethodPost, base + "/move", "alice", `{"from":"a1","to":"a5"}`, fiber.StatusUnprocessableEntity},
		{"nothing to undo", http.MethodPost, base + "/undo", "alice", "", fiber.StatusUnprocessableEntity},
		{"bad square", http.MethodGet, base + "/moves/k9", "alice", "", fiber.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := do(t, app, tc.method, tc.path, tc.player, tc.body)
			assert.Equal(t, tc.want, status, string(body))
		})
	}
}

func TestMatchmakingAndArchive(t *testing.T) {
	app := newTestApp(t)
	createSeatedGame(t, app)

	status, body := do(t, app, http.MethodPost, "/api/game/matchmaking/join", "dave", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"queued"}`, string(body))

	status, _ = do(t, app, http.MethodPost, "/api/game/matchmaking/join", "dave", "")
	assert.Equal(t, fiber.StatusConflict, status)

	status, body = do(t, app, http.MethodPost, "/api/archive", "alice", "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	assert.JSONEq(t, `{"archived":1}`, string(body))
}

func TestSeatsSurviveLaterRequests(t *testing.T) {
	app := newTestApp(t)
	id := createSeatedGame(t, app)

	for _, player := range []string{"zzzzzzzz", "q", "mallory-with-a-long-id"} {
		status, _ := do(t, app, http.MethodGet, "/api/game/"+id, player, "")
		require.Equal(t, fiber.StatusOK, status)
	}

	status, body := do(t, app, http.MethodGet, "/api/game/"+id, "carol", "")
	require.Equal(t, fiber.StatusOK, status)
	var view model.GameView
	require.NoError(t, json.Unmarshal(body, &view))
	assert.Equal(t, "alice", view.Players.White.ID)
	assert.Equal(t, "bob", view.Players.Black.ID)

	status, _ = do(t, app, http.MethodPost, "/api/game/"+id+"/move", "q", `{"san":"e4"}`)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestWebsocketRoutesRequireUpgrade(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, http.MethodGet, "/ws/game/abc", "", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = do(t, app, http.MethodGet, "/ws/game/abc", "alice", "")
	assert.Equal(t, fiber.StatusUpgradeRequired, status)

	status, _ = do(t, app, http.MethodGet, "/ws/matchmaking", "alice", "")
	assert.Equal(t, fiber.StatusUpgradeRequired, status)
}

func TestCORSPreflight(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/game/create", nil)
	req.Header.Set(fiber.HeaderOrigin, config.Default().AllowOrigins)
	req.Header.Set(fiber.HeaderAccessControlRequestMethod, http.MethodPost)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, config.Default().AllowOrigins, resp.Header.Get(fiber.HeaderAccessControlAllowOrigin))
}

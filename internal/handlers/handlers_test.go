package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"battleships/internal/database"
	"battleships/internal/game"
	"battleships/internal/middleware"
	"battleships/internal/models"
	"battleships/internal/reminder"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAdminKey = "test-admin-key"

func setupRouter(t *testing.T) (*gin.Engine, *database.Database) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "api.db")
	db, err := database.NewDatabase(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	service := game.NewService(db)
	sweeper := reminder.NewSweeper(service, reminder.LogNotifier{}, time.Hour, 72*time.Hour)

	r := gin.New()
	h := &Handlers{
		Users:    NewUserHandler(service),
		Games:    NewGameHandler(service),
		Admin:    NewAdminHandler(sweeper, db),
		AdminKey: testAdminKey,
	}
	h.Register(r)
	return r, db
}

func performJSONRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func as(email string) map[string]string {
	return map[string]string{middleware.IdentityHeader: email}
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("failed to decode %s: %v", rec.Body.String(), err)
	}
	return v
}

func registerUser(t *testing.T, r *gin.Engine, name string) map[string]string {
	t.Helper()
	headers := as(name + "@example.com")
	rec := performJSONRequest(r, http.MethodPost, "/api/users", models.RegisterUserRequest{UserName: name}, headers)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", name, rec.Code, rec.Body.String())
	}
	return headers
}

func TestRegisterUser(t *testing.T) {
	r, _ := setupRouter(t)

	rec := performJSONRequest(r, http.MethodPost, "/api/users", models.RegisterUserRequest{UserName: "alice"}, as("alice@example.com"))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if msg := decode[models.StringMessage](t, rec); msg.Message != "User alice created!" {
		t.Fatalf("unexpected message %q", msg.Message)
	}

	cases := []struct {
		name    string
		body    interface{}
		headers map[string]string
		want    int
	}{
		{"anonymous", models.RegisterUserRequest{UserName: "bob"}, nil, http.StatusUnauthorized},
		{"badIdentity", models.RegisterUserRequest{UserName: "bob"}, as("bob"), http.StatusUnauthorized},
		{"missingName", map[string]string{}, as("bob@example.com"), http.StatusBadRequest},
		{"badChars", models.RegisterUserRequest{UserName: "bob!!"}, as("bob@example.com"), http.StatusBadRequest},
		{"sameEmail", models.RegisterUserRequest{UserName: "alice2"}, as("alice@example.com"), http.StatusConflict},
		{"sameName", models.RegisterUserRequest{UserName: "alice"}, as("other@example.com"), http.StatusConflict},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performJSONRequest(r, http.MethodPost, "/api/users", tc.body, tc.headers)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestGameFlow(t *testing.T) {
	r, db := setupRouter(t)
	alice := registerUser(t, r, "alice")
	bob := registerUser(t, r, "bob")

	rules := map[string]interface{}{"rules": map[string]int{"ship_2": 1, "ship_3": 0, "ship_4": 0, "ship_5": 0}}
	rec := performJSONRequest(r, http.MethodPost, "/api/games", rules, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := decode[models.GameInfo](t, rec)
	if created.PlayerTwo != nil || created.Rules.Width != 10 || created.Rules.Ship2 != 1 || created.Rules.Ship3 != 0 {
		t.Fatalf("unexpected game: %+v", created)
	}
	base := "/api/games/" + created.URLSafeKey

	rec = performJSONRequest(r, http.MethodGet, "/api/games", nil, nil)
	if list := decode[models.GameList](t, rec); len(list.Games) != 1 || list.Games[0].URLSafeKey != created.URLSafeKey {
		t.Fatalf("expected the open game to be listed, got %s", rec.Body.String())
	}

	if rec := performJSONRequest(r, http.MethodPost, base+"/join", nil, alice); rec.Code != http.StatusConflict {
		t.Fatalf("self join: expected 409, got %d", rec.Code)
	}
	rec = performJSONRequest(r, http.MethodPost, base+"/join", nil, bob)
	if rec.Code != http.StatusOK {
		t.Fatalf("join: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if joined := decode[models.GameInfo](t, rec); joined.PlayerTwo == nil || *joined.PlayerTwo != "bob" {
		t.Fatalf("unexpected joined game: %+v", joined)
	}

	ships := models.ShipPlacementRequest{Ships: []models.ShipPlacement{{Position: models.Position{X: 3, Y: 3}, Length: 2}}}
	offBoard := models.ShipPlacementRequest{Ships: []models.ShipPlacement{{Position: models.Position{X: 10, Y: 3}, Length: 2}}}
	if rec := performJSONRequest(r, http.MethodPost, base+"/ships", offBoard, alice); rec.Code != http.StatusBadRequest {
		t.Fatalf("out of bounds placement: expected 400, got %d", rec.Code)
	}
	rec = performJSONRequest(r, http.MethodPost, base+"/ships", ships, alice)
	if msg := decode[models.StringMessage](t, rec); rec.Code != http.StatusOK ||
		msg.Message != "Your ship placement has been set. Waiting for opponent to place ships." {
		t.Fatalf("first placement: %d %s", rec.Code, rec.Body.String())
	}
	if rec := performJSONRequest(r, http.MethodPost, base+"/ships", ships, alice); rec.Code != http.StatusConflict {
		t.Fatalf("second placement: expected 409, got %d", rec.Code)
	}
	rec = performJSONRequest(r, http.MethodPost, base+"/ships", ships, bob)
	if msg := decode[models.StringMessage](t, rec); msg.Message != "Your ship placement has been set. Game is ready to begin" {
		t.Fatalf("ready message: %s", rec.Body.String())
	}

	guesses := []struct {
		who  map[string]string
		x, y int
		code int
		msg  string
	}{
		{bob, 1, 1, http.StatusForbidden, "It is not your turn."},
		{alice, 11, 1, http.StatusBadRequest, "Coordinates out of bounds."},
		{alice, 3, 3, http.StatusOK, "Hit! 1 ship remaining."},
		{alice, 4, 3, http.StatusForbidden, "It is not your turn."},
		{bob, 1, 1, http.StatusOK, "Miss. 1 ship remaining."},
		{alice, 4, 3, http.StatusOK, "Ship sunk! You have won!"},
		{bob, 3, 3, http.StatusForbidden, "Game is not in play."},
	}
	for i, g := range guesses {
		rec := performJSONRequest(r, http.MethodPost, base+"/guess", models.GuessRequest{X: g.x, Y: g.y}, g.who)
		if rec.Code != g.code {
			t.Fatalf("guess %d: expected %d, got %d: %s", i, g.code, rec.Code, rec.Body.String())
		}
		if msg := decode[models.StringMessage](t, rec); msg.Message != g.msg {
			t.Fatalf("guess %d: expected %q, got %q", i, g.msg, msg.Message)
		}
	}

	rec = performJSONRequest(r, http.MethodGet, base+"/history", nil, nil)
	history := decode[models.GameHistory](t, rec)
	if len(history.Guesses) != 3 || history.Guesses[2].Result != "Ship sunk!" || history.Guesses[2].Position != (models.Position{X: 4, Y: 3}) {
		t.Fatalf("unexpected history: %s", rec.Body.String())
	}

	rec = performJSONRequest(r, http.MethodGet, "/api/rankings?limit=5", nil, nil)
	rankings := decode[models.RankingList](t, rec)
	if len(rankings.Rankings) != 2 || rankings.Rankings[0].Player != "alice" || rankings.Rankings[1].GamesPlayed != 1 {
		t.Fatalf("unexpected rankings: %s", rec.Body.String())
	}

	if rec := performJSONRequest(r, http.MethodPost, base+"/cancel", nil, bob); rec.Code != http.StatusForbidden {
		t.Fatalf("cancel completed game: expected 403, got %d", rec.Code)
	}

	user, err := db.GetUserByEmail(t.Context(), "alice@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if user.GamesWon != 1 {
		t.Fatalf("expected alice to have one win, got %d", user.GamesWon)
	}
}

func TestActiveGamesAndCancel(t *testing.T) {
	r, _ := setupRouter(t)
	alice := registerUser(t, r, "alice")

	rec := performJSONRequest(r, http.MethodPost, "/api/games", nil, alice)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create without body: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	key := decode[models.GameInfo](t, rec).URLSafeKey

	rec = performJSONRequest(r, http.MethodGet, "/api/games/active", nil, alice)
	if active := decode[models.GameList](t, rec); len(active.Games) != 1 {
		t.Fatalf("expected one active game, got %s", rec.Body.String())
	}
	if rec := performJSONRequest(r, http.MethodGet, "/api/games/active", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous active games: expected 401, got %d", rec.Code)
	}

	rec = performJSONRequest(r, http.MethodPost, "/api/games/"+key+"/cancel", nil, alice)
	if info := decode[models.GameInfo](t, rec); info.GameState != models.StateGameCancelled {
		t.Fatalf("expected cancelled game, got %s", rec.Body.String())
	}
	if rec := performJSONRequest(r, http.MethodPost, "/api/games/"+key+"/cancel", nil, alice); rec.Code != http.StatusForbidden {
		t.Fatalf("second cancel: expected 403, got %d", rec.Code)
	}

	rec = performJSONRequest(r, http.MethodGet, "/api/games/active", nil, alice)
	if active := decode[models.GameList](t, rec); len(active.Games) != 0 {
		t.Fatalf("cancelled game must not be active, got %s", rec.Body.String())
	}

	rec = performJSONRequest(r, http.MethodGet, "/api/games?state=game_cancelled", nil, nil)
	if list := decode[models.GameList](t, rec); len(list.Games) != 1 {
		t.Fatalf("expected the cancelled game in the state filter, got %s", rec.Body.String())
	}
}

func TestBadRequests(t *testing.T) {
	r, _ := setupRouter(t)

	cases := []struct {
		name   string
		method string
		path   string
		want   int
	}{
		{"invalidKey", http.MethodGet, "/api/games/not-a-key", http.StatusNotFound},
		{"missingGame", http.MethodGet, "/api/games/" + game.NewKey(), http.StatusNotFound},
		{"missingHistory", http.MethodGet, "/api/games/" + game.NewKey() + "/history", http.StatusNotFound},
		{"badState", http.MethodGet, "/api/games?state=FINISHED", http.StatusBadRequest},
		{"badLimit", http.MethodGet, "/api/rankings?limit=-1", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := performJSONRequest(r, tc.method, tc.path, nil, nil)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestAdminAndHealth(t *testing.T) {
	r, _ := setupRouter(t)

	if rec := performJSONRequest(r, http.MethodGet, "/api/health", nil, nil); rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	if rec := performJSONRequest(r, http.MethodPost, "/api/admin/sweep", nil, nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("sweep without key: expected 401, got %d", rec.Code)
	}
	rec := performJSONRequest(r, http.MethodPost, "/api/admin/sweep", nil, map[string]string{"X-Admin-Key": testAdminKey})
	if rec.Code != http.StatusOK {
		t.Fatalf("sweep: expected 200, got %d", rec.Code)
	}
	if report := decode[reminder.Report](t, rec); report.Checked != 0 {
		t.Fatalf("expected empty sweep, got %+v", report)
	}
}

func TestStatusFor(t *testing.T) {
	cases := map[game.Kind]int{
		game.KindValidation:    http.StatusBadRequest,
		game.KindConflict:      http.StatusConflict,
		game.KindUnauthorized:  http.StatusUnauthorized,
		game.KindAuthorization: http.StatusForbidden,
		game.KindState:         http.StatusForbidden,
		game.KindNotFound:      http.StatusNotFound,
		game.KindInternal:      http.StatusInternalServerError,
	}
	for kind, want := range cases {
		if got := statusFor(kind); got != want {
			t.Fatalf("%s: expected %d, got %d", kind, want, got)
		}
	}
}

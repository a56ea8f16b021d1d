package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"battleships/internal/game"
	"battleships/internal/middleware"
	"battleships/internal/models"
	"battleships/internal/validation"
)

type GameHandler struct {
	service *game.Service
}

func NewGameHandler(service *game.Service) *GameHandler {
	return &GameHandler{service: service}
}

// CreateGame godoc
// @Summary Create a new game
// @Description Hosts a game with optional board rules; omitted fields take the defaults (10x10, one 2-ship, two 3-ships, one 4-ship, one 5-ship)
// @Tags games
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Caller email"
// @Param game body models.NewGameRequest false "Optional board rules"
// @Success 201 {object} models.GameInfo
// @Failure 400 {object} map[string]string "Invalid board rules"
// @Failure 401 {object} map[string]string "Caller not registered"
// @Router /api/games [post]
func (h *GameHandler) CreateGame(c *gin.Context) {
	var req models.NewGameRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c, "Invalid request data")
		return
	}

	info, err := h.service.CreateGame(c.Request.Context(), middleware.IdentityFrom(c), req.Rules)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, info)
}

// ListGames godoc
// @Summary List games by state
// @Description Most recently updated first
// @Tags games
// @Produce json
// @Param state query string false "Game state filter (default: WAITING_FOR_OPPONENT)" Enums(WAITING_FOR_OPPONENT, PREPARING_BOARD, PLAYER_ONE_TURN, PLAYER_TWO_TURN, GAME_COMPLETE, GAME_CANCELLED)
// @Param limit query int false "Maximum number of games to return (default: 10, max: 100)"
// @Success 200 {object} models.GameList
// @Failure 400 {object} map[string]string "Invalid state or limit"
// @Router /api/games [get]
func (h *GameHandler) ListGames(c *gin.Context) {
	state := models.StateWaitingForOpponent
	if raw := c.Query("state"); raw != "" {
		parsed, err := models.ParseGameState(raw)
		if err != nil {
			badRequest(c, err.Error())
			return
		}
		state = parsed
	}
	limit, err := validation.ParseLimit(c.Query("limit"), game.DefaultLimit, game.MaxLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	games, err := h.service.ListGames(c.Request.Context(), state, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GameList{Games: games})
}

// ActiveGames godoc
// @Summary List the caller's unfinished games
// @Tags games
// @Produce json
// @Param X-User-Email header string true "Caller email"
// @Success 200 {object} models.GameList
// @Failure 401 {object} map[string]string "Caller not registered"
// @Router /api/games/active [get]
func (h *GameHandler) ActiveGames(c *gin.Context) {
	games, err := h.service.ActiveGames(c.Request.Context(), middleware.IdentityFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GameList{Games: games})
}

// GetGame godoc
// @Summary Get a game
// @Tags games
// @Produce json
// @Param key path string true "Game key"
// @Success 200 {object} models.GameInfo
// @Failure 404 {object} map[string]string "Invalid key or game not found"
// @Router /api/games/{key} [get]
func (h *GameHandler) GetGame(c *gin.Context) {
	info, err := h.service.GetGame(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// JoinGame godoc
// @Summary Join a waiting game as player two
// @Tags games
// @Produce json
// @Param X-User-Email header string true "Caller email"
// @Param key path string true "Game key"
// @Success 200 {object} models.GameInfo
// @Failure 403 {object} map[string]string "Game is not accepting players"
// @Failure 404 {object} map[string]string "Game not found"
// @Failure 409 {object} map[string]string "Cannot join own game"
// @Router /api/games/{key}/join [post]
func (h *GameHandler) JoinGame(c *gin.Context) {
	info, err := h.service.JoinGame(c.Request.Context(), middleware.IdentityFrom(c), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// CancelGame godoc
// @Summary Cancel a game
// @Description Either player may cancel a game that has not been completed
// @Tags games
// @Produce json
// @Param X-User-Email header string true "Caller email"
// @Param key path string true "Game key"
// @Success 200 {object} models.GameInfo
// @Failure 403 {object} map[string]string "Not a player, or game already complete or cancelled"
// @Failure 404 {object} map[string]string "Game not found"
// @Router /api/games/{key}/cancel [post]
func (h *GameHandler) CancelGame(c *gin.Context) {
	info, err := h.service.CancelGame(c.Request.Context(), middleware.IdentityFrom(c), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

// PlaceShips godoc
// @Summary Submit the caller's ship placement
// @Description Each ship is anchored at its top-left cell and extends right, or down when vertical. Counts per length must match the game rules exactly.
// @Tags games
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Caller email"
// @Param key path string true "Game key"
// @Param ships body models.ShipPlacementRequest true "Fleet placement"
// @Success 200 {object} models.StringMessage
// @Failure 400 {object} map[string]string "Invalid length, out of bounds, wrong count or overlap"
// @Failure 403 {object} map[string]string "Not a player or not accepting placements"
// @Failure 409 {object} map[string]string "Ships already placed"
// @Router /api/games/{key}/ships [post]
func (h *GameHandler) PlaceShips(c *gin.Context) {
	var req models.ShipPlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "ships are required")
		return
	}

	msg, err := h.service.PlaceShips(c.Request.Context(), middleware.IdentityFrom(c), c.Param("key"), req.Ships)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StringMessage{Message: msg})
}

// SubmitGuess godoc
// @Summary Fire at the opponent's board
// @Tags games
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Caller email"
// @Param key path string true "Game key"
// @Param guess body models.GuessRequest true "1-indexed coordinates"
// @Success 200 {object} models.StringMessage
// @Failure 400 {object} map[string]string "Coordinates out of bounds"
// @Failure 403 {object} map[string]string "Not your turn, not a player or game not in play"
// @Failure 409 {object} map[string]string "Game changed concurrently"
// @Router /api/games/{key}/guess [post]
func (h *GameHandler) SubmitGuess(c *gin.Context) {
	var req models.GuessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "x and y are required")
		return
	}

	msg, err := h.service.SubmitGuess(c.Request.Context(), middleware.IdentityFrom(c), c.Param("key"), req.X, req.Y)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.StringMessage{Message: msg})
}

// GameHistory godoc
// @Summary Get every guess of a game
// @Tags games
// @Produce json
// @Param key path string true "Game key"
// @Success 200 {object} models.GameHistory
// @Failure 404 {object} map[string]string "Invalid key or game not found"
// @Router /api/games/{key}/history [get]
func (h *GameHandler) GameHistory(c *gin.Context) {
	guesses, err := h.service.GameHistory(c.Request.Context(), c.Param("key"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.GameHistory{Guesses: guesses})
}

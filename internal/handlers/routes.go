package handlers

import (
	"github.com/gin-gonic/gin"

	"battleships/internal/middleware"
)

// Handlers groups everything mounted under /api
type Handlers struct {
	Users    *UserHandler
	Games    *GameHandler
	Admin    *AdminHandler
	AdminKey string
}

// Register mounts the API routes on r
func (h *Handlers) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.Use(middleware.Identity())
	{
		api.GET("/health", h.Admin.Health)

		api.POST("/users", h.Users.Register)
		api.GET("/rankings", h.Users.Rankings)

		api.POST("/games", h.Games.CreateGame)
		api.GET("/games", h.Games.ListGames)
		api.GET("/games/active", h.Games.ActiveGames)
		api.GET("/games/:key", h.Games.GetGame)
		api.POST("/games/:key/join", h.Games.JoinGame)
		api.POST("/games/:key/cancel", h.Games.CancelGame)
		api.POST("/games/:key/ships", h.Games.PlaceShips)
		api.POST("/games/:key/guess", h.Games.SubmitGuess)
		api.GET("/games/:key/history", h.Games.GameHistory)
	}

	admin := api.Group("/admin")
	admin.Use(middleware.AdminKeyMiddleware(h.AdminKey))
	{
		admin.POST("/sweep", h.Admin.Sweep)
	}
}

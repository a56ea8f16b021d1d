package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"battleships/internal/game"
	"battleships/internal/middleware"
	"battleships/internal/models"
	"battleships/internal/validation"
)

type UserHandler struct {
	service *game.Service
}

func NewUserHandler(service *game.Service) *UserHandler {
	return &UserHandler{service: service}
}

// Register godoc
// @Summary Register a user name
// @Description Claims a unique user name for the email supplied by the gateway in X-User-Email. Each email can register once.
// @Tags users
// @Accept json
// @Produce json
// @Param X-User-Email header string true "Caller email, set by the authenticating gateway"
// @Param user body models.RegisterUserRequest true "User name (3-20 letters, digits, _ or -)"
// @Success 201 {object} models.StringMessage
// @Failure 400 {object} map[string]string "Invalid user name"
// @Failure 401 {object} map[string]string "Missing identity"
// @Failure 409 {object} map[string]string "Email already registered or name taken"
// @Router /api/users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req models.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "user_name is required and must be 3-20 characters")
		return
	}

	user, err := h.service.RegisterUser(c.Request.Context(), middleware.IdentityFrom(c), req.UserName)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, models.StringMessage{Message: fmt.Sprintf("User %s created!", user.Name)})
}

// Rankings godoc
// @Summary Get player rankings
// @Description Users ordered by win ratio, then by games played, then by name
// @Tags users
// @Produce json
// @Param limit query int false "Maximum number of rankings to return (default: 10, max: 100)"
// @Success 200 {object} models.RankingList
// @Failure 400 {object} map[string]string "Invalid limit"
// @Router /api/rankings [get]
func (h *UserHandler) Rankings(c *gin.Context) {
	limit, err := validation.ParseLimit(c.Query("limit"), game.DefaultLimit, game.MaxLimit)
	if err != nil {
		badRequest(c, err.Error())
		return
	}

	rankings, err := h.service.Rankings(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.RankingList{Rankings: rankings})
}

package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/afriday11/phasefinity/internal/service"
	"github.com/afriday11/phasefinity/internal/ws"
	appErr "github.com/afriday11/phasefinity/pkg/errors"
	"github.com/afriday11/phasefinity/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	services *service.Container
}

func RegisterRoutes(r *gin.Engine, services *service.Container) {
	handler := &Handler{services: services}
	wsHandler := ws.NewHandler(services.Run)

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{"message": "pong"})
	})

	v1 := r.Group("/phasefinity/v1")
	{
		runGroup := v1.Group("/runs")
		{
			runGroup.POST("", handler.CreateRun)
			runGroup.GET("/:id", handler.GetRun)
			runGroup.DELETE("/:id", handler.DeleteRun)

			runGroup.POST("/:id/select", handler.SelectCard)
			runGroup.POST("/:id/sort", handler.SortHand)
			runGroup.POST("/:id/play", handler.PlayHand)
			runGroup.POST("/:id/discard", handler.DiscardCards)

			runGroup.POST("/:id/powerups/choose", handler.ChoosePowerup)
			runGroup.POST("/:id/powerups/skip", handler.SkipPowerup)

			runGroup.GET("/:id/shop", handler.RunShop)
			runGroup.POST("/:id/shop/buy", handler.BuyJoker)
			runGroup.DELETE("/:id/jokers/:jokerId", handler.RemoveJoker)

			runGroup.GET("/:id/hands", handler.RunHands)
		}

		v1.GET("/shop/catalog", handler.ShopCatalog)
		v1.GET("/history/runs", handler.ListRuns)
	}

	r.GET("/ws/run/:runId", wsHandler.HandleRunWS)
}

type createRunBody struct {
	Seed int64 `json:"seed"`
}

type selectCardBody struct {
	CardID int `json:"cardId" binding:"required"`
}

type sortHandBody struct {
	By string `json:"by" binding:"required,oneof=rank suit"`
}

type jokerBody struct {
	JokerID int `json:"jokerId" binding:"required"`
}

func (h *Handler) CreateRun(c *gin.Context) {
	var body createRunBody
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&body); err != nil {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
	}

	state, err := h.services.Run.CreateRun(c.Request.Context(), body.Seed)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, state)
}

func (h *Handler) GetRun(c *gin.Context) {
	state, err := h.services.Run.State(c.Param("id"))
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) DeleteRun(c *gin.Context) {
	if err := h.services.Run.DeleteRun(c.Request.Context(), c.Param("id")); err != nil {
		h.handleRunError(c, err)
		return
	}
	response.SuccessWithMsg(c, gin.H{"status": "abandoned"}, "")
}

func (h *Handler) SelectCard(c *gin.Context) {
	var body selectCardBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.services.Run.SelectCard(c.Param("id"), body.CardID)
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) SortHand(c *gin.Context) {
	var body sortHandBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.services.Run.SortHand(c.Param("id"), body.By)
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) PlayHand(c *gin.Context) {
	state, result, err := h.services.Run.PlayHand(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, gin.H{
		"state": state,
		"hand":  result.Calc,
	})
}

func (h *Handler) DiscardCards(c *gin.Context) {
	state, err := h.services.Run.DiscardCards(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) ChoosePowerup(c *gin.Context) {
	var body jokerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.services.Run.ChoosePowerup(c.Request.Context(), c.Param("id"), body.JokerID)
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) SkipPowerup(c *gin.Context) {
	state, err := h.services.Run.SkipPowerup(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) RunShop(c *gin.Context) {
	jokers, err := h.services.Run.AvailableJokers(c.Param("id"))
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, gin.H{"jokers": jokers})
}

func (h *Handler) BuyJoker(c *gin.Context) {
	var body jokerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	state, err := h.services.Run.BuyJoker(c.Request.Context(), c.Param("id"), body.JokerID)
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) RemoveJoker(c *gin.Context) {
	jokerID, err := strconv.Atoi(c.Param("jokerId"))
	if err != nil || jokerID <= 0 {
		response.Error(c, http.StatusBadRequest, "invalid joker id")
		return
	}

	state, err := h.services.Run.RemoveJoker(c.Param("id"), jokerID)
	if err != nil {
		h.handleRunError(c, err)
		return
	}
	response.Success(c, state)
}

func (h *Handler) RunHands(c *gin.Context) {
	runID := c.Param("id")
	if _, err := h.services.History.GetRun(c.Request.Context(), runID); err != nil {
		h.handleRunError(c, err)
		return
	}

	hands, err := h.services.History.RunHands(c.Request.Context(), runID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(c, gin.H{"hands": hands})
}

func (h *Handler) ShopCatalog(c *gin.Context) {
	response.Success(c, gin.H{"jokers": h.services.Shop.Catalog()})
}

func (h *Handler) ListRuns(c *gin.Context) {
	page, err := parsePositiveIntQuery(c, "page", 1)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}
	size, err := parsePositiveIntQuery(c, "size", 20)
	if err != nil {
		response.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.services.History.ListRuns(c.Request.Context(), page, size)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.Success(c, gin.H{
		"items": result.Items,
		"total": result.Total,
		"page":  page,
		"size":  size,
	})
}

func (h *Handler) handleRunError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, appErr.ErrRunNotFound),
		errors.Is(err, appErr.ErrJokerNotFound):
		status = http.StatusNotFound
	case errors.Is(err, appErr.ErrGameOver),
		errors.Is(err, appErr.ErrPowerupPending),
		errors.Is(err, appErr.ErrNoPowerupPending),
		errors.Is(err, appErr.ErrJokerAlreadyEquipped),
		errors.Is(err, appErr.ErrJokerCapacity):
		status = http.StatusConflict
	case errors.Is(err, appErr.ErrNoCardsSelected),
		errors.Is(err, appErr.ErrCardNotInHand),
		errors.Is(err, appErr.ErrSelectionLimit),
		errors.Is(err, appErr.ErrPowerupNotOffered),
		errors.Is(err, appErr.ErrNoTurnsRemaining),
		errors.Is(err, appErr.ErrNoDiscardsRemaining),
		errors.Is(err, appErr.ErrInsufficientCoins):
		status = http.StatusBadRequest
	}
	response.Error(c, status, err.Error())
}

func parsePositiveIntQuery(c *gin.Context, key string, defaultVal int) (int, error) {
	val := c.Query(key)
	if val == "" {
		return defaultVal, nil
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return 0, errors.New("invalid " + key)
	}
	return parsed, nil
}

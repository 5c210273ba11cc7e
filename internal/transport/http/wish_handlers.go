package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/vovakirdan/wishwall-server/internal/core"
	"github.com/vovakirdan/wishwall-server/internal/proto"
)

// WishHandlers provides HTTP handlers for the wish REST endpoints.
type WishHandlers struct {
	service *core.Service
	log     *zerolog.Logger
}

// NewWishHandlers creates a new wish handlers instance.
func NewWishHandlers(service *core.Service, logger *zerolog.Logger) *WishHandlers {
	return &WishHandlers{
		service: service,
		log:     logger,
	}
}

// AddWishRequest represents the wish creation request body.
type AddWishRequest struct {
	Name     string `json:"name" binding:"required,max=64"`
	Message  string `json:"message" binding:"required,max=1000"`
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// DeleteWishRequest represents the wish deletion request body.
type DeleteWishRequest struct {
	Password string `json:"password" binding:"required"`
}

// ErrorResponse represents an error response body.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse represents a plain confirmation response body.
type MessageResponse struct {
	Message string `json:"message"`
}

// ListWishes handles wish listing.
// GET /api/wishes
func (h *WishHandlers) ListWishes(c *gin.Context) {
	views, err := h.service.ListWishes(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	wishes := make([]proto.Wish, 0, len(views))
	for _, v := range views {
		wishes = append(wishes, proto.WishFromView(v))
	}
	c.JSON(http.StatusOK, wishes)
}

// AddWish handles wish creation.
// POST /api/wishes
func (h *WishHandlers) AddWish(c *gin.Context) {
	var req AddWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid add wish request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	view, err := h.service.AddWish(c.Request.Context(), req.Name, req.Message, req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to add wish")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, proto.WishFromView(view))
}

// DeleteWish handles wish deletion.
// DELETE /api/wishes/:id
func (h *WishHandlers) DeleteWish(c *gin.Context) {
	var req DeleteWishRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Debug().Err(err).Msg("invalid delete wish request")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body"})
		return
	}

	id := c.Param("id")
	switch err := h.service.DeleteWish(c.Request.Context(), id, req.Password); {
	case err == nil:
		c.JSON(http.StatusOK, MessageResponse{Message: "wish deleted"})
	case errors.Is(err, core.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "wish not found"})
	case errors.Is(err, core.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "invalid password"})
	default:
		h.log.Error().Err(err).Str("wish_id", id).Msg("failed to delete wish")
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

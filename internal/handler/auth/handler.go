package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalrec/health-api/internal/handler"
	"github.com/vitalrec/health-api/internal/middleware"
	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/service/auth"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.POST("/auth/logout", h.Logout)
}

func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	if err := h.svc.Register(c.Request.Context(), &req); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse("registration successful"))
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid credentials"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	tokens, err := h.svc.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(tokens))
}

func (h *Handler) Logout(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("logged out successfully"))
}

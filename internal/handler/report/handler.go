package report

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalrec/health-api/internal/handler"
	"github.com/vitalrec/health-api/internal/service/report"
)

type Handler struct {
	svc *report.Service
}

func NewHandler(svc *report.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/reports/:uid/download", h.Download)
}

// Download serves the emergency report PDF. The route is deliberately
// unauthenticated: first responders scan a QR code and need the report
// without credentials. Knowledge of the UID is the access token.
func (h *Handler) Download(c *gin.Context) {
	uid := c.Param("uid")

	pdf, err := h.svc.GeneratePDF(c.Request.Context(), uid)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=emergency_report_%s.pdf", uid))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

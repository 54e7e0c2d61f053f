package patient

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vitalrec/health-api/internal/handler"
	"github.com/vitalrec/health-api/internal/middleware"
	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/service/dashboard"
	"github.com/vitalrec/health-api/internal/service/medication"
	"github.com/vitalrec/health-api/internal/service/patient"
	"github.com/vitalrec/health-api/internal/service/report"
)

type Handler struct {
	patientSvc    *patient.Service
	dashboardSvc  *dashboard.Service
	medicationSvc *medication.Service
	reportSvc     *report.Service
}

func NewHandler(
	patientSvc *patient.Service,
	dashboardSvc *dashboard.Service,
	medicationSvc *medication.Service,
	reportSvc *report.Service,
) *Handler {
	return &Handler{
		patientSvc:    patientSvc,
		dashboardSvc:  dashboardSvc,
		medicationSvc: medicationSvc,
		reportSvc:     reportSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patient")
	{
		patients.GET("/dashboard", h.Dashboard)
		patients.GET("/medications/due", h.DueMedications)
		patients.GET("/profile", h.GetProfile)
		patients.PUT("/profile", h.UpdateProfile)
		patients.POST("/records/search", h.SearchRecords)
		patients.GET("/qr", h.QRCode)
	}
}

func (h *Handler) Dashboard(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	uid, err := h.patientSvc.ResolveUID(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	view := h.dashboardSvc.Build(c.Request.Context(), uid, time.Now())
	c.JSON(http.StatusOK, handler.NewSuccessResponse(view))
}

func (h *Handler) DueMedications(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	uid, err := h.patientSvc.ResolveUID(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	due, err := h.medicationSvc.ListDue(c.Request.Context(), uid, time.Now())
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(due))
}

func (h *Handler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	profile, err := h.patientSvc.GetProfile(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	var req model.UpdatePatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.patientSvc.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(profile))
}

type searchRecordsRequest struct {
	PatientUID string `json:"patient_uid" binding:"required"`
}

func (h *Handler) SearchRecords(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	var req searchRecordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	records, err := h.patientSvc.SearchRecords(c.Request.Context(), userID, req.PatientUID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(records))
}

// QRCode returns a PNG encoding the caller's emergency report URL. Only the
// caller's own UID is ever encoded.
func (h *Handler) QRCode(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	uid, err := h.patientSvc.ResolveUID(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	png, err := h.reportSvc.QRCode(uid)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.Data(http.StatusOK, "image/png", png)
}

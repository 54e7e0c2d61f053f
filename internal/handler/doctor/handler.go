package doctor

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vitalrec/health-api/internal/handler"
	"github.com/vitalrec/health-api/internal/middleware"
	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/service/doctor"
)

type Handler struct {
	svc *doctor.Service
}

func NewHandler(svc *doctor.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctor")
	{
		doctors.GET("/patients/:uid", h.LookupPatient)
		doctors.POST("/patients", h.RegisterPatient)
		doctors.PUT("/patients/:uid", h.UpdatePatient)
		doctors.POST("/records", h.AddMedicalRecord)
	}
}

func (h *Handler) LookupPatient(c *gin.Context) {
	overview, err := h.svc.LookupPatient(c.Request.Context(), c.Param("uid"))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(overview))
}

func (h *Handler) RegisterPatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.svc.RegisterPatient(c.Request.Context(), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(patient))
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	var req model.RegisterPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	patient, err := h.svc.UpdatePatient(c.Request.Context(), c.Param("uid"), &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(patient))
}

func (h *Handler) AddMedicalRecord(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	var req model.CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	profile, err := h.svc.GetByUserID(c.Request.Context(), userID)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	record, err := h.svc.AddMedicalRecord(c.Request.Context(), profile.ID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(record))
}

package appointment

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vitalrec/health-api/internal/handler"
	"github.com/vitalrec/health-api/internal/middleware"
	"github.com/vitalrec/health-api/internal/model"
	"github.com/vitalrec/health-api/internal/service/appointment"
	"github.com/vitalrec/health-api/internal/service/patient"
)

type Handler struct {
	svc        *appointment.Service
	patientSvc *patient.Service
}

func NewHandler(svc *appointment.Service, patientSvc *patient.Service) *Handler {
	return &Handler{
		svc:        svc,
		patientSvc: patientSvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.POST("", h.Create)
		appointments.POST("/:id/cancel", h.Cancel)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	appointments, err := h.svc.ListForUser(c.Request.Context(), userID, middleware.Role(c))
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(appointments))
}

// Create books an appointment. Patients always book for themselves against
// the doctor named in the request; doctors book for the patient UID in the
// request.
func (h *Handler) Create(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		return
	}

	var (
		patientUID   string
		doctorUserID uuid.UUID
		err          error
	)

	switch middleware.Role(c) {
	case model.RolePatient:
		patientUID, err = h.patientSvc.ResolveUID(c.Request.Context(), userID)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
		doctorUserID, err = h.svc.ParseDoctorUser(&req)
		if err != nil {
			handler.RespondError(c, err)
			return
		}
	case model.RoleDoctor:
		if req.PatientUID == "" {
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse("patient_uid is required"))
			return
		}
		patientUID = req.PatientUID
		doctorUserID = userID
	default:
		c.JSON(http.StatusForbidden, handler.NewErrorResponse("access denied"))
		return
	}

	apt, err := h.svc.Create(c.Request.Context(), patientUID, doctorUserID, &req)
	if err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, handler.NewSuccessResponse(apt))
}

func (h *Handler) Cancel(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("invalid token"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid appointment ID"))
		return
	}

	if err := h.svc.Cancel(c.Request.Context(), id, userID, middleware.Role(c)); err != nil {
		handler.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse("appointment cancelled"))
}

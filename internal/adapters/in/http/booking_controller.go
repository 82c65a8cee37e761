package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/healthchat-backend/internal/core/domain"
	"github.com/suchimauz/healthchat-backend/internal/core/json_types"
	"github.com/suchimauz/healthchat-backend/internal/core/ports/in"
)

type BookingController struct {
	bookingUseCase in.BookingUseCase
	authUseCase    in.AuthUseCase
}

func NewBookingController(bookingUseCase in.BookingUseCase, authUseCase in.AuthUseCase) *BookingController {
	return &BookingController{
		bookingUseCase: bookingUseCase,
		authUseCase:    authUseCase,
	}
}

func (c *BookingController) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api/v1")
	{
		api.GET("/doctors", c.doctors)
		api.GET("/doctors/:doctorId/dates", c.candidateDates)
		api.GET("/doctors/:doctorId/slots", c.timeSlots)

		appointments := api.Group("/appointments")
		appointments.Use(requireAuth(c.authUseCase))
		{
			appointments.POST("", c.bookAppointment)
			appointments.GET("", c.userAppointments)
		}
	}
}

func (c *BookingController) doctors(ctx *gin.Context) {
	doctors, err := c.bookingUseCase.Doctors(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load doctors. Please try again later."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"doctors": doctors})
}

func (c *BookingController) candidateDates(ctx *gin.Context) {
	doctorID := ctx.Param("doctorId")

	// Точка отсчета задается только в отладочных целях,
	// по умолчанию даты считаются от текущего дня
	var referenceDate time.Time
	if raw := ctx.Query("referenceDate"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid reference date format"})
			return
		}
		referenceDate = parsed
	}

	dates, debug, err := c.bookingUseCase.CandidateDates(ctx.Request.Context(), doctorID, referenceDate)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load available dates. Please try again later."})
		return
	}

	response := gin.H{
		"doctorId": doctorID,
		"dates":    dates,
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debug
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *BookingController) timeSlots(ctx *gin.Context) {
	doctorID := ctx.Param("doctorId")

	date, err := json_types.ParseDate(ctx.Query("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	slots, err := c.bookingUseCase.TimeSlots(ctx.Request.Context(), doctorID, date)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load time slots. Please try again later."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"doctorId": doctorID,
		"date":     date,
		"slots":    slots,
	})
}

type BookAppointmentRequest struct {
	DoctorID  string `json:"doctorId" binding:"required"`
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"startTime" binding:"required"`
	EndTime   string `json:"endTime" binding:"required"`
	Notes     string `json:"notes"`
}

func (c *BookingController) bookAppointment(ctx *gin.Context) {
	var req BookAppointmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := json_types.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format"})
		return
	}

	startTime, err := json_types.ParseTimeOfDay(req.StartTime)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start time format"})
		return
	}

	endTime, err := json_types.ParseTimeOfDay(req.EndTime)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end time format"})
		return
	}

	user := currentUser(ctx)

	appointment, err := c.bookingUseCase.BookAppointment(ctx.Request.Context(), in.BookAppointmentRequest{
		PatientID: user.UID,
		DoctorID:  req.DoctorID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Notes:     req.Notes,
	})
	if err != nil {
		if errors.Is(err, domain.ErrSlotUnavailable) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "This time slot is not available. Please choose another one."})
			return
		}
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to book appointment. Please try again."})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{"appointment": appointment})
}

func (c *BookingController) userAppointments(ctx *gin.Context) {
	user := currentUser(ctx)

	appointments, err := c.bookingUseCase.UserAppointments(ctx.Request.Context(), user.UID)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load appointments. Please try again later."})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"appointments": appointments})
}

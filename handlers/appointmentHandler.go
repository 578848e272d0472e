package handlers

import (
	"SanteSenegal/models"
	"SanteSenegal/services"
	"SanteSenegal/utils"
	"context"
	"time"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	service *services.AppointmentService
}

func NewAppointmentHandler(service *services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{service: service}
}

type reserveSlotRequest struct {
	PatientID        int64                   `json:"patient_id"`
	ConsultationType models.ConsultationType `json:"consultation_type"`
	Motif            string                  `json:"motif"`
	UrgencyLevel     models.UrgencyLevel     `json:"urgency_level"`
}

func (h *AppointmentHandler) ReserveSlot(c *gin.Context) {
	slotID, ok := paramID(c, "slot_id")
	if !ok {
		return
	}
	var req reserveSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateReservation(req.PatientID, req.ConsultationType); err != nil {
		respondError(c, err)
		return
	}
	appointment, err := h.service.ReserveSlot(c, slotID, req.PatientID, req.ConsultationType, req.Motif, req.UrgencyLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) ReleaseSlot(c *gin.Context) {
	slotID, ok := paramID(c, "slot_id")
	if !ok {
		return
	}
	if err := h.service.ReleaseSlot(c, slotID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"message": "Slot released"})
}

func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var appointment models.Appointment
	if err := c.ShouldBindJSON(&appointment); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateAppointment(appointment); err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.Create(c, &appointment); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, appointment)
}

func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	id, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}
	appointment, err := h.service.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) ConfirmAppointment(c *gin.Context) {
	h.transition(c, h.service.Confirm)
}

func (h *AppointmentHandler) StartAppointment(c *gin.Context) {
	h.transition(c, h.service.Start)
}

func (h *AppointmentHandler) CompleteAppointment(c *gin.Context) {
	h.transition(c, h.service.Complete)
}

func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	h.transition(c, h.service.Cancel)
}

func (h *AppointmentHandler) transition(c *gin.Context, apply func(ctx context.Context, id int64) (*models.Appointment, error)) {
	id, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}
	appointment, err := apply(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

type rescheduleRequest struct {
	DateTime time.Time `json:"date_time"`
}

func (h *AppointmentHandler) RescheduleAppointment(c *gin.Context) {
	id, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}
	var req rescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.DateTime.IsZero() {
		c.JSON(400, gin.H{"error": "date_time is required"})
		return
	}
	appointment, err := h.service.Reschedule(c, id, req.DateTime)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

type updateScheduleRequest struct {
	DateTime        time.Time `json:"date_time"`
	DurationMinutes int       `json:"duration_minutes"`
}

func (h *AppointmentHandler) UpdateAppointmentSchedule(c *gin.Context) {
	id, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}
	var req updateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if req.DateTime.IsZero() {
		c.JSON(400, gin.H{"error": "date_time is required"})
		return
	}
	appointment, err := h.service.UpdateSchedule(c, id, req.DateTime, req.DurationMinutes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

type updateAppointmentRequest struct {
	Motif            string                  `json:"motif"`
	ConsultationType models.ConsultationType `json:"consultation_type"`
	UrgencyLevel     models.UrgencyLevel     `json:"urgency_level"`
}

func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	id, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}
	var req updateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	appointment, err := h.service.Update(c, id, req.Motif, req.ConsultationType, req.UrgencyLevel)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointment)
}

func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	id, ok := paramID(c, "appointment_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Appointment deleted"})
}

func (h *AppointmentHandler) GetPatientAppointments(c *gin.Context) {
	id, ok := paramID(c, "patient_id")
	if !ok {
		return
	}
	var (
		appointments []models.Appointment
		err          error
	)
	if c.Query("upcoming") == "true" {
		appointments, err = h.service.ListUpcomingByPatient(c, id)
	} else {
		appointments, err = h.service.ListByPatient(c, id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetDoctorAppointments(c *gin.Context) {
	id, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	var (
		appointments []models.Appointment
		err          error
	)
	if c.Query("upcoming") == "true" {
		appointments, err = h.service.ListUpcomingByDoctor(c, id)
	} else {
		appointments, err = h.service.ListByDoctor(c, id)
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetAppointmentsByStatus(c *gin.Context) {
	status := models.AppointmentStatus(c.Param("status"))
	appointments, err := h.service.ListByStatus(c, status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetUrgentAppointments(c *gin.Context) {
	appointments, err := h.service.ListUrgent(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetAppointmentsForDay(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		date = utils.Today()
	}
	appointments, err := h.service.ListForDay(c, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) GetOverdueAppointments(c *gin.Context) {
	appointments, err := h.service.ListOverdue(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, appointments)
}

func (h *AppointmentHandler) CheckDoctorAvailable(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	raw := c.Query("date_time")
	dateTime, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid date_time, expected RFC3339"})
		return
	}
	consultationType := models.ConsultationType(c.Query("consultation_type"))
	available, err := h.service.IsDoctorAvailable(c, doctorID, dateTime, consultationType)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"doctor_id": doctorID, "available": available})
}

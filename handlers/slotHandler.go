package handlers

import (
	"SanteSenegal/repositories"
	"SanteSenegal/services"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	service *services.SlotService
}

func NewSlotHandler(service *services.SlotService) *SlotHandler {
	return &SlotHandler{service: service}
}

type generateSlotsRequest struct {
	DoctorID   int64 `json:"doctor_id"`
	HospitalID int64 `json:"hospital_id"`
}

func (h *SlotHandler) GenerateMonthlySlots(c *gin.Context) {
	var req generateSlotsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	created, err := h.service.GenerateMonthly(c, req.DoctorID, req.HospitalID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"created": created})
}

func (h *SlotHandler) slotFilter(c *gin.Context) (repositories.SlotFilter, bool) {
	doctorID, ok := queryID(c, "doctor_id")
	if !ok {
		return repositories.SlotFilter{}, false
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return repositories.SlotFilter{}, false
	}
	hospitalID, ok := queryID(c, "hospital_id")
	if !ok {
		return repositories.SlotFilter{}, false
	}
	return repositories.SlotFilter{
		DoctorID:   doctorID,
		ServiceID:  serviceID,
		HospitalID: hospitalID,
		Date:       c.Query("date"),
		StartDate:  c.Query("start"),
		EndDate:    c.Query("end"),
	}, true
}

func (h *SlotHandler) GetAvailableSlots(c *gin.Context) {
	filter, ok := h.slotFilter(c)
	if !ok {
		return
	}
	slots, err := h.service.AvailableSlots(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, slots)
}

func (h *SlotHandler) CountAvailableSlots(c *gin.Context) {
	filter, ok := h.slotFilter(c)
	if !ok {
		return
	}
	count, err := h.service.CountAvailable(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"count": count})
}

func (h *SlotHandler) CheckSlotFree(c *gin.Context) {
	id, ok := paramID(c, "slot_id")
	if !ok {
		return
	}
	free, err := h.service.IsSlotFree(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"slot_id": id, "free": free})
}

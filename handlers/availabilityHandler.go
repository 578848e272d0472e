package handlers

import (
	"SanteSenegal/models"
	"SanteSenegal/repositories"
	"SanteSenegal/services"
	"SanteSenegal/utils"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	service *services.AvailabilityService
}

func NewAvailabilityHandler(service *services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: service}
}

type generateWindowsRequest struct {
	DoctorID   int64                `json:"doctor_id"`
	ServiceID  int64                `json:"service_id"`
	HospitalID int64                `json:"hospital_id"`
	StartDate  string               `json:"start_date"`
	EndDate    string               `json:"end_date"`
	Slices     []services.TimeSlice `json:"slices"`
}

func (h *AvailabilityHandler) GenerateWindows(c *gin.Context) {
	var req generateWindowsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if len(req.Slices) == 0 {
		c.JSON(400, gin.H{"error": "at least one time slice is required"})
		return
	}
	windows, err := h.service.GenerateWindows(c, req.DoctorID, req.ServiceID, req.HospitalID,
		req.StartDate, req.EndDate, req.Slices)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, gin.H{"generated": len(windows), "windows": windows})
}

func (h *AvailabilityHandler) CreateWindow(c *gin.Context) {
	var window models.AvailabilityWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateWindow(window); err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.CreateWindow(c, &window); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, window)
}

func (h *AvailabilityHandler) GetWindowByID(c *gin.Context) {
	id, ok := paramID(c, "window_id")
	if !ok {
		return
	}
	window, err := h.service.GetWindow(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, window)
}

func (h *AvailabilityHandler) UpdateWindow(c *gin.Context) {
	id, ok := paramID(c, "window_id")
	if !ok {
		return
	}
	var window models.AvailabilityWindow
	if err := c.ShouldBindJSON(&window); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.UpdateWindow(c, id, &window)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, updated)
}

func (h *AvailabilityHandler) DeleteWindow(c *gin.Context) {
	id, ok := paramID(c, "window_id")
	if !ok {
		return
	}
	if err := h.service.DeleteWindow(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Window deleted"})
}

type changeStatusRequest struct {
	Status models.WindowStatus `json:"status"`
	Reason string              `json:"reason"`
}

func (h *AvailabilityHandler) ChangeWindowStatus(c *gin.Context) {
	id, ok := paramID(c, "window_id")
	if !ok {
		return
	}
	var req changeStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	window, err := h.service.ChangeStatus(c, id, req.Status, req.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, window)
}

func (h *AvailabilityHandler) SearchWindows(c *gin.Context) {
	doctorID, ok := queryID(c, "doctor_id")
	if !ok {
		return
	}
	serviceID, ok := queryID(c, "service_id")
	if !ok {
		return
	}
	hospitalID, ok := queryID(c, "hospital_id")
	if !ok {
		return
	}
	filter := repositories.WindowFilter{
		DoctorID:   doctorID,
		ServiceID:  serviceID,
		HospitalID: hospitalID,
		StartDate:  c.Query("start"),
		EndDate:    c.Query("end"),
		Status:     models.WindowStatus(c.Query("status")),
	}
	windows, err := h.service.Search(c, filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, windows)
}

func (h *AvailabilityHandler) GetDoctorPlanning(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(400, gin.H{"error": "start and end query parameters are required"})
		return
	}
	planning, err := h.service.DoctorPlanning(c, doctorID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, planning)
}

func (h *AvailabilityHandler) GetDoctorStatistics(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(400, gin.H{"error": "start and end query parameters are required"})
		return
	}
	stats, err := h.service.Statistics(c, doctorID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, stats)
}

func (h *AvailabilityHandler) CheckCoherence(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	start := c.Query("start")
	end := c.Query("end")
	if start == "" || end == "" {
		c.JSON(400, gin.H{"error": "start and end query parameters are required"})
		return
	}
	problems, err := h.service.CheckCoherence(c, doctorID, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"doctor_id": doctorID, "coherent": len(problems) == 0, "problems": problems})
}

func (h *AvailabilityHandler) CheckDoctorAvailability(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	date := c.Query("date")
	start := c.Query("start")
	end := c.Query("end")
	if date == "" {
		c.JSON(400, gin.H{"error": "date query parameter is required"})
		return
	}

	if start == "" || end == "" {
		available, err := h.service.HasAvailability(c, doctorID, date)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(200, gin.H{"doctor_id": doctorID, "date": date, "available": available})
		return
	}

	available, err := h.service.IsDoctorAvailableAt(c, doctorID, date, start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"doctor_id": doctorID, "date": date, "available": available})
}

func (h *AvailabilityHandler) MarkHolidayUnavailability(c *gin.Context) {
	marked, err := h.service.MarkHolidayUnavailability(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"marked": marked})
}

package handlers

import (
	"SanteSenegal/models"
	"SanteSenegal/services"
	"SanteSenegal/utils"

	"github.com/gin-gonic/gin"
)

type AbsenceHandler struct {
	service *services.AbsenceService
}

func NewAbsenceHandler(service *services.AbsenceService) *AbsenceHandler {
	return &AbsenceHandler{service: service}
}

func (h *AbsenceHandler) CreateAbsence(c *gin.Context) {
	var absence models.Absence
	if err := c.ShouldBindJSON(&absence); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateAbsence(absence); err != nil {
		respondError(c, err)
		return
	}
	if err := h.service.Create(c, &absence); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, absence)
}

func (h *AbsenceHandler) GetAbsenceByID(c *gin.Context) {
	id, ok := paramID(c, "absence_id")
	if !ok {
		return
	}
	absence, err := h.service.GetByID(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, absence)
}

func (h *AbsenceHandler) UpdateAbsence(c *gin.Context) {
	id, ok := paramID(c, "absence_id")
	if !ok {
		return
	}
	var absence models.Absence
	if err := c.ShouldBindJSON(&absence); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	updated, err := h.service.Update(c, id, &absence)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, updated)
}

func (h *AbsenceHandler) DeleteAbsence(c *gin.Context) {
	id, ok := paramID(c, "absence_id")
	if !ok {
		return
	}
	if err := h.service.Delete(c, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(204, gin.H{"message": "Absence deleted"})
}

func (h *AbsenceHandler) GetDoctorAbsences(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	absences, err := h.service.ListForDoctor(c, doctorID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, absences)
}

func (h *AbsenceHandler) CheckDoctorAbsent(c *gin.Context) {
	doctorID, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	date := c.Query("date")
	if date == "" {
		c.JSON(400, gin.H{"error": "date query parameter is required"})
		return
	}
	absent, err := h.service.IsAbsent(c, doctorID, date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, gin.H{"doctor_id": doctorID, "date": date, "absent": absent})
}

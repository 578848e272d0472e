package handlers

import (
	"SanteSenegal/models"
	"SanteSenegal/services"

	"github.com/gin-gonic/gin"
)

type DirectoryHandler struct {
	service *services.DirectoryService
}

func NewDirectoryHandler(service *services.DirectoryService) *DirectoryHandler {
	return &DirectoryHandler{service: service}
}

type createDoctorRequest struct {
	models.User
	Specialty     string `json:"specialty"`
	LicenseNumber string `json:"license_number"`
	Title         string `json:"title"`
}

func (h *DirectoryHandler) CreateDoctor(c *gin.Context) {
	var req createDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	profile := models.DoctorProfile{
		Specialty:     req.Specialty,
		LicenseNumber: req.LicenseNumber,
		Title:         req.Title,
	}
	if err := h.service.CreateDoctor(c, &req.User, &profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, profile)
}

func (h *DirectoryHandler) GetDoctorByID(c *gin.Context) {
	id, ok := paramID(c, "doctor_id")
	if !ok {
		return
	}
	doctor, err := h.service.GetDoctor(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, doctor)
}

func (h *DirectoryHandler) GetAllDoctors(c *gin.Context) {
	doctors, err := h.service.ListDoctors(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, doctors)
}

type createPatientRequest struct {
	models.User
	DateOfBirth string `json:"date_of_birth"`
	Sex         string `json:"sex"`
	Address     string `json:"address"`
	BloodGroup  string `json:"blood_group"`
}

func (h *DirectoryHandler) CreatePatient(c *gin.Context) {
	var req createPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	profile := models.PatientProfile{
		DateOfBirth: req.DateOfBirth,
		Sex:         req.Sex,
		Address:     req.Address,
		BloodGroup:  req.BloodGroup,
	}
	if err := h.service.CreatePatient(c, &req.User, &profile); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(201, profile)
}

func (h *DirectoryHandler) GetPatientByID(c *gin.Context) {
	id, ok := paramID(c, "patient_id")
	if !ok {
		return
	}
	patient, err := h.service.GetPatient(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, patient)
}

func (h *DirectoryHandler) GetAllHospitals(c *gin.Context) {
	hospitals, err := h.service.ListHospitals(c)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, hospitals)
}

func (h *DirectoryHandler) GetHospitalByID(c *gin.Context) {
	id, ok := paramID(c, "hospital_id")
	if !ok {
		return
	}
	hospital, err := h.service.GetHospital(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, hospital)
}

func (h *DirectoryHandler) GetHospitalServices(c *gin.Context) {
	id, ok := paramID(c, "hospital_id")
	if !ok {
		return
	}
	servicesList, err := h.service.ListServices(c, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, servicesList)
}

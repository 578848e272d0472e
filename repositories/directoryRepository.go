package repositories

import (
	"SanteSenegal/database"
	"SanteSenegal/models"
	"SanteSenegal/utils"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// DirectoryRepository resolves people and places by ID. Every cross-entity
// reference in the scheduling core goes through an explicit lookup here
// instead of an ORM relationship graph.
type DirectoryRepository struct{}

func NewDirectoryRepository() *DirectoryRepository {
	return &DirectoryRepository{}
}

func (r *DirectoryRepository) GetDoctor(ctx context.Context, id int64) (*models.DoctorProfile, error) {
	var doctor models.DoctorProfile
	err := database.DB.WithContext(ctx).
		Preload("User").
		First(&doctor, "user_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("doctor %d", id)
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *DirectoryRepository) GetPatient(ctx context.Context, id int64) (*models.PatientProfile, error) {
	var patient models.PatientProfile
	err := database.DB.WithContext(ctx).
		Preload("User").
		First(&patient, "user_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("patient %d", id)
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *DirectoryRepository) GetHospital(ctx context.Context, id int64) (*models.Hospital, error) {
	var hospital models.Hospital
	err := database.DB.WithContext(ctx).First(&hospital, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("hospital %d", id)
		}
		return nil, fmt.Errorf("failed to get hospital: %w", err)
	}
	return &hospital, nil
}

func (r *DirectoryRepository) GetService(ctx context.Context, id int64) (*models.Service, error) {
	var service models.Service
	err := database.DB.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NotFoundf("service %d", id)
		}
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}

// CreateDoctor inserts the identity record and its doctor extension in one
// transaction.
func (r *DirectoryRepository) CreateDoctor(ctx context.Context, user *models.User, profile *models.DoctorProfile) error {
	user.Role = models.RoleDoctor
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create doctor user: %w", err)
		}
		profile.UserID = user.ID
		profile.User = *user
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create doctor profile: %w", err)
		}
		return nil
	})
}

// CreatePatient inserts the identity record and its patient extension in one
// transaction.
func (r *DirectoryRepository) CreatePatient(ctx context.Context, user *models.User, profile *models.PatientProfile) error {
	user.Role = models.RolePatient
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return fmt.Errorf("failed to create patient user: %w", err)
		}
		profile.UserID = user.ID
		profile.User = *user
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create patient profile: %w", err)
		}
		return nil
	})
}

func (r *DirectoryRepository) ListDoctors(ctx context.Context) ([]models.DoctorProfile, error) {
	var doctors []models.DoctorProfile
	err := database.DB.WithContext(ctx).Preload("User").Order("user_id").Find(&doctors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *DirectoryRepository) ListHospitals(ctx context.Context) ([]models.Hospital, error) {
	var hospitals []models.Hospital
	err := database.DB.WithContext(ctx).Order("id").Find(&hospitals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list hospitals: %w", err)
	}
	return hospitals, nil
}

func (r *DirectoryRepository) ListServices(ctx context.Context, hospitalID int64) ([]models.Service, error) {
	var services []models.Service
	err := database.DB.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("id").Find(&services).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

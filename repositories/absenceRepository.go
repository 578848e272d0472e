package repositories

import (
	"SanteSenegal/database"
	"SanteSenegal/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type AbsenceRepository struct{}

func NewAbsenceRepository() *AbsenceRepository {
	return &AbsenceRepository{}
}

func (r *AbsenceRepository) Create(ctx context.Context, absence *models.Absence) error {
	if err := database.DB.WithContext(ctx).Create(absence).Error; err != nil {
		return fmt.Errorf("failed to create absence: %w", err)
	}
	return nil
}

func (r *AbsenceRepository) Save(ctx context.Context, absence *models.Absence) error {
	if err := database.DB.WithContext(ctx).Save(absence).Error; err != nil {
		return fmt.Errorf("failed to save absence: %w", err)
	}
	return nil
}

func (r *AbsenceRepository) Delete(ctx context.Context, id int64) error {
	err := database.DB.WithContext(ctx).Delete(&models.Absence{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete absence: %w", err)
	}
	return nil
}

// FindByID returns the absence or nil when it does not exist.
func (r *AbsenceRepository) FindByID(ctx context.Context, id int64) (*models.Absence, error) {
	var absence models.Absence
	err := database.DB.WithContext(ctx).First(&absence, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find absence: %w", err)
	}
	return &absence, nil
}

// ExistsCovering reports whether the doctor has an absence interval
// containing the date.
func (r *AbsenceRepository) ExistsCovering(ctx context.Context, doctorID int64, date string) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Absence{}).
		Where("doctor_id = ? AND start_date <= ? AND end_date >= ?", doctorID, date, date).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check absence: %w", err)
	}
	return count > 0, nil
}

// FindForDoctorBetween returns the doctor's absences intersecting the
// inclusive date range.
func (r *AbsenceRepository) FindForDoctorBetween(ctx context.Context, doctorID int64, start, end string) ([]models.Absence, error) {
	var absences []models.Absence
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ? AND end_date >= ? AND start_date <= ?", doctorID, start, end).
		Order("start_date").
		Find(&absences).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find absences: %w", err)
	}
	return absences, nil
}

package repositories

import (
	"SanteSenegal/database"
	"SanteSenegal/models"
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// WindowFilter narrows availability window searches. Nil/empty fields are
// ignored.
type WindowFilter struct {
	DoctorID   *int64
	ServiceID  *int64
	HospitalID *int64
	StartDate  string
	EndDate    string
	Status     models.WindowStatus
}

type AvailabilityRepository struct{}

func NewAvailabilityRepository() *AvailabilityRepository {
	return &AvailabilityRepository{}
}

func (r *AvailabilityRepository) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	if err := database.DB.WithContext(ctx).Create(window).Error; err != nil {
		return fmt.Errorf("failed to create availability window: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) Save(ctx context.Context, window *models.AvailabilityWindow) error {
	if err := database.DB.WithContext(ctx).Save(window).Error; err != nil {
		return fmt.Errorf("failed to save availability window: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) SaveAll(ctx context.Context, windows []models.AvailabilityWindow) error {
	if len(windows) == 0 {
		return nil
	}
	if err := database.DB.WithContext(ctx).Save(&windows).Error; err != nil {
		return fmt.Errorf("failed to save availability windows: %w", err)
	}
	return nil
}

func (r *AvailabilityRepository) Delete(ctx context.Context, id int64) error {
	err := database.DB.WithContext(ctx).Delete(&models.AvailabilityWindow{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete availability window: %w", err)
	}
	return nil
}

// FindByID returns the window or nil when it does not exist.
func (r *AvailabilityRepository) FindByID(ctx context.Context, id int64) (*models.AvailabilityWindow, error) {
	var window models.AvailabilityWindow
	err := database.DB.WithContext(ctx).First(&window, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find availability window: %w", err)
	}
	return &window, nil
}

func (r *AvailabilityRepository) FindByDoctor(ctx context.Context, doctorID int64) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date, start_time").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find availability windows: %w", err)
	}
	return windows, nil
}

// FindConflicting returns non-UNAVAILABLE windows for the doctor and date
// overlapping [start, end) under the half-open interval test.
func (r *AvailabilityRepository) FindConflicting(ctx context.Context, doctorID int64, date, start, end string) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND status <> ? AND start_time < ? AND end_time > ?",
			doctorID, date, models.WindowUnavailable, end, start).
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find conflicting windows: %w", err)
	}
	return windows, nil
}

func (r *AvailabilityRepository) FindByDoctorBetween(ctx context.Context, doctorID int64, start, end string) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ?", doctorID, start, end).
		Order("date, start_time").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find availability windows: %w", err)
	}
	return windows, nil
}

func (r *AvailabilityRepository) FindByDoctorBetweenAndStatus(ctx context.Context, doctorID int64, start, end string, status models.WindowStatus) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ? AND date >= ? AND date <= ? AND status = ?", doctorID, start, end, status).
		Order("date, start_time").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find availability windows: %w", err)
	}
	return windows, nil
}

func (r *AvailabilityRepository) FindByDoctorDateAndStatus(ctx context.Context, doctorID int64, date string, status models.WindowStatus) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ? AND date = ? AND status = ?", doctorID, date, status).
		Order("start_time").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find availability windows: %w", err)
	}
	return windows, nil
}

func (r *AvailabilityRepository) FindByDateAndStatus(ctx context.Context, date string, status models.WindowStatus) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	err := database.DB.WithContext(ctx).
		Where("date = ? AND status = ?", date, status).
		Order("doctor_id, start_time").
		Find(&windows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find availability windows: %w", err)
	}
	return windows, nil
}

// ExistsCoveringAvailable reports whether an AVAILABLE window fully covers
// [start, end] for the doctor on the date.
func (r *AvailabilityRepository) ExistsCoveringAvailable(ctx context.Context, doctorID int64, date, start, end string) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.AvailabilityWindow{}).
		Where("doctor_id = ? AND date = ? AND status = ? AND start_time <= ? AND end_time >= ?",
			doctorID, date, models.WindowAvailable, start, end).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check availability: %w", err)
	}
	return count > 0, nil
}

// Search applies the filter criteria that are set.
func (r *AvailabilityRepository) Search(ctx context.Context, filter WindowFilter) ([]models.AvailabilityWindow, error) {
	query := database.DB.WithContext(ctx).Model(&models.AvailabilityWindow{})
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.HospitalID != nil {
		query = query.Where("hospital_id = ?", *filter.HospitalID)
	}
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	var windows []models.AvailabilityWindow
	if err := query.Order("date, start_time").Find(&windows).Error; err != nil {
		return nil, fmt.Errorf("failed to search availability windows: %w", err)
	}
	return windows, nil
}

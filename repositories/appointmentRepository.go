package repositories

import (
	"SanteSenegal/database"
	"SanteSenegal/models"
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

type AppointmentRepository struct{}

func NewAppointmentRepository() *AppointmentRepository {
	return &AppointmentRepository{}
}

func (r *AppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if err := database.DB.WithContext(ctx).Create(appointment).Error; err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) Save(ctx context.Context, appointment *models.Appointment) error {
	if err := database.DB.WithContext(ctx).Save(appointment).Error; err != nil {
		return fmt.Errorf("failed to save appointment: %w", err)
	}
	return nil
}

func (r *AppointmentRepository) Delete(ctx context.Context, id int64) error {
	err := database.DB.WithContext(ctx).Delete(&models.Appointment{}, "id = ?", id).Error
	if err != nil {
		return fmt.Errorf("failed to delete appointment: %w", err)
	}
	return nil
}

// FindByID returns the appointment or nil when it does not exist.
func (r *AppointmentRepository) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	var appointment models.Appointment
	err := database.DB.WithContext(ctx).First(&appointment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find appointment: %w", err)
	}
	return &appointment, nil
}

// FindBetween returns appointments scheduled in [from, to).
func (r *AppointmentRepository) FindBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("date_time >= ? AND date_time < ?", from, to).
		Order("date_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date_time desc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments by patient: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date_time desc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments by doctor: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByService(ctx context.Context, serviceID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("service_id = ?", serviceID).
		Order("date_time desc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments by service: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByHospital(ctx context.Context, hospitalID int64) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("hospital_id = ?", hospitalID).
		Order("date_time desc").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments by hospital: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("status = ?", status).
		Order("date_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments by status: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) FindByUrgency(ctx context.Context, levels []models.UrgencyLevel) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("urgency_level IN ?", levels).
		Order("date_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find appointments by urgency: %w", err)
	}
	return appointments, nil
}

// FindUpcomingByPatient returns the patient's future appointments that are
// still active, soonest first.
func (r *AppointmentRepository) FindUpcomingByPatient(ctx context.Context, patientID int64, now time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("patient_id = ? AND date_time > ? AND status IN ?",
			patientID, now, []models.AppointmentStatus{models.AppointmentScheduled, models.AppointmentConfirmed}).
		Order("date_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming appointments: %w", err)
	}
	return appointments, nil
}

// FindUpcomingByDoctor returns the doctor's future appointments that are
// still active, soonest first.
func (r *AppointmentRepository) FindUpcomingByDoctor(ctx context.Context, doctorID int64, now time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("doctor_id = ? AND date_time > ? AND status IN ?",
			doctorID, now, []models.AppointmentStatus{models.AppointmentScheduled, models.AppointmentConfirmed}).
		Order("date_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find upcoming appointments: %w", err)
	}
	return appointments, nil
}

// FindOverdue returns appointments whose scheduled time has passed without
// the visit starting.
func (r *AppointmentRepository) FindOverdue(ctx context.Context, now time.Time) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := database.DB.WithContext(ctx).
		Where("date_time < ? AND status IN ?",
			now, []models.AppointmentStatus{models.AppointmentScheduled, models.AppointmentConfirmed}).
		Order("date_time").
		Find(&appointments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find overdue appointments: %w", err)
	}
	return appointments, nil
}

func (r *AppointmentRepository) CountByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) (int64, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Appointment{}).
		Where("doctor_id = ? AND date_time >= ? AND date_time < ?", doctorID, from, to).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}

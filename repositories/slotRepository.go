package repositories

import (
	"SanteSenegal/cache"
	"SanteSenegal/database"
	"SanteSenegal/models"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	slotCacheExpiry  = 10 * time.Minute
	slotCachePattern = "slots_cache*"
)

// SlotFilter narrows slot searches. Nil/empty fields are ignored.
type SlotFilter struct {
	DoctorID   *int64
	ServiceID  *int64
	HospitalID *int64
	Date       string
	StartDate  string
	EndDate    string
}

type SlotRepository struct {
	cache *cache.Cache
}

func NewSlotRepository(cache *cache.Cache) *SlotRepository {
	return &SlotRepository{cache: cache}
}

func (r *SlotRepository) Exists(ctx context.Context, doctorID int64, date, startTime string) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).Model(&models.Slot{}).
		Where("doctor_id = ? AND date = ? AND start_time = ?", doctorID, date, startTime).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check slot existence: %w", err)
	}
	return count > 0, nil
}

func (r *SlotRepository) Create(ctx context.Context, slot *models.Slot) error {
	if err := database.DB.WithContext(ctx).Create(slot).Error; err != nil {
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return r.invalidate(ctx)
}

// FindByID returns the slot or nil when it does not exist.
func (r *SlotRepository) FindByID(ctx context.Context, id int64) (*models.Slot, error) {
	var slot models.Slot
	err := database.DB.WithContext(ctx).First(&slot, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find slot: %w", err)
	}
	return &slot, nil
}

// Reserve claims a free slot for an appointment and stretches its end time.
// The update is conditional on reserved being false, so a concurrent claim
// of the same slot sees zero rows affected and returns false.
func (r *SlotRepository) Reserve(ctx context.Context, slotID, appointmentID int64, endTime string) (bool, error) {
	result := database.DB.WithContext(ctx).Model(&models.Slot{}).
		Where("id = ? AND reserved = ?", slotID, false).
		Updates(map[string]interface{}{
			"reserved":       true,
			"appointment_id": appointmentID,
			"end_time":       endTime,
		})
	if result.Error != nil {
		return false, fmt.Errorf("failed to reserve slot: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return false, nil
	}
	return true, r.invalidate(ctx)
}

// Release frees a slot and restores its end time to the given value.
func (r *SlotRepository) Release(ctx context.Context, slotID int64, endTime string) error {
	err := database.DB.WithContext(ctx).Model(&models.Slot{}).
		Where("id = ?", slotID).
		Updates(map[string]interface{}{
			"reserved":       false,
			"appointment_id": nil,
			"end_time":       endTime,
		}).Error
	if err != nil {
		return fmt.Errorf("failed to release slot: %w", err)
	}
	return r.invalidate(ctx)
}

// FindMatchingFree returns the free slot at exactly (doctor, date, start),
// or nil when none exists.
func (r *SlotRepository) FindMatchingFree(ctx context.Context, doctorID int64, date, startTime string) (*models.Slot, error) {
	var slot models.Slot
	err := database.DB.WithContext(ctx).
		First(&slot, "doctor_id = ? AND date = ? AND start_time = ? AND reserved = ?",
			doctorID, date, startTime, false).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find free slot: %w", err)
	}
	return &slot, nil
}

// FindByAppointment returns the slot holding the appointment, or nil.
func (r *SlotRepository) FindByAppointment(ctx context.Context, appointmentID int64) (*models.Slot, error) {
	var slot models.Slot
	err := database.DB.WithContext(ctx).
		First(&slot, "appointment_id = ?", appointmentID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find slot by appointment: %w", err)
	}
	return &slot, nil
}

// FindAvailable returns free slots matching the filter, ordered by date then
// start time. This is the patient-facing search, so results are cached.
func (r *SlotRepository) FindAvailable(ctx context.Context, filter SlotFilter) ([]models.Slot, error) {
	cacheKey := r.filterCacheKey(filter)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		var slots []models.Slot
		if err := json.Unmarshal([]byte(cached), &slots); err == nil {
			return slots, nil
		}
		log.Printf("Failed to unmarshal cached slots: %v", err)
	} else if err != redis.Nil {
		log.Printf("Failed to get slots from cache: %v", err)
	}

	query := r.applyFilter(database.DB.WithContext(ctx).Model(&models.Slot{}), filter).
		Where("reserved = ?", false)

	var slots []models.Slot
	if err := query.Order("date, start_time").Find(&slots).Error; err != nil {
		return nil, fmt.Errorf("failed to find available slots: %w", err)
	}

	if data, err := json.Marshal(slots); err == nil {
		if err := r.cache.Set(ctx, cacheKey, data, slotCacheExpiry); err != nil {
			log.Printf("Failed to set slots in cache: %v", err)
		}
	}
	return slots, nil
}

// CountAvailable counts free slots matching the filter.
func (r *SlotRepository) CountAvailable(ctx context.Context, filter SlotFilter) (int64, error) {
	var count int64
	query := r.applyFilter(database.DB.WithContext(ctx).Model(&models.Slot{}), filter).
		Where("reserved = ?", false)
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count available slots: %w", err)
	}
	return count, nil
}

func (r *SlotRepository) applyFilter(query *gorm.DB, filter SlotFilter) *gorm.DB {
	if filter.DoctorID != nil {
		query = query.Where("doctor_id = ?", *filter.DoctorID)
	}
	if filter.ServiceID != nil {
		query = query.Where("service_id = ?", *filter.ServiceID)
	}
	if filter.HospitalID != nil {
		query = query.Where("hospital_id = ?", *filter.HospitalID)
	}
	if filter.Date != "" {
		query = query.Where("date = ?", filter.Date)
	}
	if filter.StartDate != "" {
		query = query.Where("date >= ?", filter.StartDate)
	}
	if filter.EndDate != "" {
		query = query.Where("date <= ?", filter.EndDate)
	}
	return query
}

func (r *SlotRepository) invalidate(ctx context.Context) error {
	if err := r.cache.DeleteAll(ctx, slotCachePattern); err != nil {
		return fmt.Errorf("failed to invalidate slot cache: %w", err)
	}
	return nil
}

func (r *SlotRepository) filterCacheKey(filter SlotFilter) string {
	key := "slots_cache"
	if filter.DoctorID != nil {
		key += fmt.Sprintf(":d%d", *filter.DoctorID)
	}
	if filter.ServiceID != nil {
		key += fmt.Sprintf(":s%d", *filter.ServiceID)
	}
	if filter.HospitalID != nil {
		key += fmt.Sprintf(":h%d", *filter.HospitalID)
	}
	if filter.Date != "" {
		key += ":" + filter.Date
	}
	if filter.StartDate != "" || filter.EndDate != "" {
		key += fmt.Sprintf(":%s_%s", filter.StartDate, filter.EndDate)
	}
	return key
}

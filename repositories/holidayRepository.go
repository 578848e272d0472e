package repositories

import (
	"SanteSenegal/cache"
	"SanteSenegal/database"
	"SanteSenegal/models"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

const (
	holidayCacheExpiry  = 24 * time.Hour
	holidayCachePattern = "holiday_cache*"
)

type HolidayRepository struct {
	cache *cache.Cache
}

func NewHolidayRepository(cache *cache.Cache) *HolidayRepository {
	return &HolidayRepository{cache: cache}
}

// ExistsOnDate reports whether an availability-affecting holiday exists on
// the date. Hot path for every availability decision, so results are cached.
func (r *HolidayRepository) ExistsOnDate(ctx context.Context, date string) (bool, error) {
	cacheKey := r.dateCacheKey(date)
	cached, err := r.cache.Get(ctx, cacheKey)
	if err == nil {
		return cached == "1", nil
	} else if err != redis.Nil {
		log.Printf("Failed to get holiday flag from cache: %v", err)
	}

	var count int64
	err = database.DB.WithContext(ctx).Model(&models.Holiday{}).
		Where("date = ? AND affects_availability = ?", date, true).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check holiday: %w", err)
	}

	value := "0"
	if count > 0 {
		value = "1"
	}
	if err := r.cache.Set(ctx, cacheKey, value, holidayCacheExpiry); err != nil {
		log.Printf("Failed to set holiday flag in cache: %v", err)
	}
	return count > 0, nil
}

// FindBetween returns availability-affecting holidays in the inclusive range.
func (r *HolidayRepository) FindBetween(ctx context.Context, start, end string) ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := database.DB.WithContext(ctx).
		Where("date >= ? AND date <= ? AND affects_availability = ?", start, end, true).
		Order("date").
		Find(&holidays).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find holidays: %w", err)
	}
	return holidays, nil
}

// FindByDateAndSource returns the holiday for (date, source), or nil when
// absent. The pair is the deduplication key for sync.
func (r *HolidayRepository) FindByDateAndSource(ctx context.Context, date, source string) (*models.Holiday, error) {
	var holiday models.Holiday
	err := database.DB.WithContext(ctx).
		First(&holiday, "date = ? AND source = ?", date, source).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}
	return &holiday, nil
}

func (r *HolidayRepository) Create(ctx context.Context, holiday *models.Holiday) error {
	if err := database.DB.WithContext(ctx).Create(holiday).Error; err != nil {
		return fmt.Errorf("failed to create holiday: %w", err)
	}
	return r.invalidate(ctx)
}

// DeleteBySourceAndYear removes every holiday of one source within a year.
// Used by sync to replace externally sourced data wholesale.
func (r *HolidayRepository) DeleteBySourceAndYear(ctx context.Context, source string, year int) error {
	start := fmt.Sprintf("%d-01-01", year)
	end := fmt.Sprintf("%d-12-31", year)
	err := database.DB.WithContext(ctx).
		Where("source = ? AND date >= ? AND date <= ?", source, start, end).
		Delete(&models.Holiday{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete holidays: %w", err)
	}
	return r.invalidate(ctx)
}

func (r *HolidayRepository) invalidate(ctx context.Context) error {
	if err := r.cache.DeleteAll(ctx, holidayCachePattern); err != nil {
		return fmt.Errorf("failed to invalidate holiday cache: %w", err)
	}
	return nil
}

func (r *HolidayRepository) dateCacheKey(date string) string {
	return fmt.Sprintf("holiday_cache:%s", date)
}

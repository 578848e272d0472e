package services

import (
	"SanteSenegal/models"
	"SanteSenegal/repositories"
	"SanteSenegal/utils"
	"context"
	"time"
)

// SlotService subdivides availability windows into fixed-duration bookable
// slots and answers slot searches.
type SlotService struct {
	slots     SlotStore
	windows   WindowStore
	absences  AbsenceStore
	directory Directory
	calendar  HolidayCalendar
}

func NewSlotService(slots SlotStore, windows WindowStore, absences AbsenceStore, directory Directory, calendar HolidayCalendar) *SlotService {
	return &SlotService{
		slots:     slots,
		windows:   windows,
		absences:  absences,
		directory: directory,
		calendar:  calendar,
	}
}

// GenerateMonthly creates slots for the doctor's available windows from
// today to one month ahead, stepping in fixed increments inside each
// window. Holidays, weekends and declared absences are skipped, and slots
// that already exist are left untouched, so the operation is idempotent.
func (s *SlotService) GenerateMonthly(ctx context.Context, doctorID, hospitalID int64) (int, error) {
	if _, err := s.directory.GetDoctor(ctx, doctorID); err != nil {
		return 0, err
	}
	if _, err := s.directory.GetHospital(ctx, hospitalID); err != nil {
		return 0, err
	}

	now := time.Now()
	start := utils.FormatDate(now)
	end := utils.FormatDate(now.AddDate(0, 1, 0))

	windows, err := s.windows.FindByDoctorBetweenAndStatus(ctx, doctorID, start, end, models.WindowAvailable)
	if err != nil {
		return 0, err
	}

	created := 0
	skippedDates := make(map[string]bool)
	for _, window := range windows {
		if window.HospitalID != hospitalID {
			continue
		}
		skip, checked := skippedDates[window.Date]
		if !checked {
			skip, err = s.shouldSkipDate(ctx, doctorID, window.Date)
			if err != nil {
				return created, err
			}
			skippedDates[window.Date] = skip
		}
		if skip {
			continue
		}

		n, err := s.subdivide(ctx, &window)
		if err != nil {
			return created, err
		}
		created += n
	}
	return created, nil
}

// subdivide walks the window in fixed steps, creating each slot that fits
// entirely inside the window and does not already exist.
func (s *SlotService) subdivide(ctx context.Context, window *models.AvailabilityWindow) (int, error) {
	startMin, err := utils.ParseClock(window.StartTime)
	if err != nil {
		return 0, err
	}
	endMin, err := utils.ParseClock(window.EndTime)
	if err != nil {
		return 0, err
	}

	created := 0
	for cursor := startMin; cursor+models.DefaultSlotMinutes <= endMin; cursor += models.DefaultSlotMinutes {
		slotStart := utils.FormatClock(cursor)
		exists, err := s.slots.Exists(ctx, window.DoctorID, window.Date, slotStart)
		if err != nil {
			return created, err
		}
		if exists {
			continue
		}
		slot := &models.Slot{
			DoctorID:   window.DoctorID,
			ServiceID:  window.ServiceID,
			HospitalID: window.HospitalID,
			Date:       window.Date,
			StartTime:  slotStart,
			EndTime:    utils.FormatClock(cursor + models.DefaultSlotMinutes),
			Reserved:   false,
		}
		if err := s.slots.Create(ctx, slot); err != nil {
			return created, err
		}
		created++
	}
	return created, nil
}

func (s *SlotService) shouldSkipDate(ctx context.Context, doctorID int64, date string) (bool, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return false, err
	}
	if utils.IsWeekend(day) {
		return true, nil
	}
	holiday, err := s.calendar.IsHoliday(ctx, date)
	if err != nil {
		return false, err
	}
	if holiday {
		return true, nil
	}
	return s.absences.ExistsCovering(ctx, doctorID, date)
}

// AvailableSlots returns free slots matching the filter.
func (s *SlotService) AvailableSlots(ctx context.Context, filter repositories.SlotFilter) ([]models.Slot, error) {
	return s.slots.FindAvailable(ctx, filter)
}

// CountAvailable counts free slots matching the filter.
func (s *SlotService) CountAvailable(ctx context.Context, filter repositories.SlotFilter) (int64, error) {
	return s.slots.CountAvailable(ctx, filter)
}

// IsSlotFree reports whether the slot exists and is unreserved. Missing
// slots count as not free.
func (s *SlotService) IsSlotFree(ctx context.Context, slotID int64) (bool, error) {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		return false, err
	}
	if slot == nil {
		return false, nil
	}
	return !slot.Reserved, nil
}

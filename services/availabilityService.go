package services

import (
	"SanteSenegal/models"
	"SanteSenegal/repositories"
	"SanteSenegal/utils"
	"context"
	"fmt"
	"time"
)

// TimeSlice is one working range of a day, used by batch generation.
type TimeSlice struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// PlanningStatistics summarizes a doctor's windows over a date range.
type PlanningStatistics struct {
	DoctorID     int64 `json:"doctor_id"`
	TotalWindows int   `json:"total_windows"`
	Available    int   `json:"available"`
	Busy         int   `json:"busy"`
	Unavailable  int   `json:"unavailable"`
	TotalMinutes int   `json:"total_minutes"`
}

// frenchWeekdays names the day a window falls on, keyed by time.Weekday.
var frenchWeekdays = [...]string{
	"DIMANCHE", "LUNDI", "MARDI", "MERCREDI", "JEUDI", "VENDREDI", "SAMEDI",
}

// AvailabilityService manages doctors' availability windows: batch
// generation over working days, interactive creation with conflict
// detection, and propagation of holidays and absences into the planning.
type AvailabilityService struct {
	windows   WindowStore
	absences  AbsenceStore
	directory Directory
	calendar  HolidayCalendar
}

func NewAvailabilityService(windows WindowStore, absences AbsenceStore, directory Directory, calendar HolidayCalendar) *AvailabilityService {
	return &AvailabilityService{
		windows:   windows,
		absences:  absences,
		directory: directory,
		calendar:  calendar,
	}
}

// GenerateWindows creates availability windows for every working day in the
// inclusive date range, one per time slice. Weekends, holidays and declared
// absences are skipped. Unlike CreateWindow this path performs no overlap
// check: it is meant to fill an empty planning, and duplicates against an
// existing planning are surfaced later by CheckCoherence.
func (s *AvailabilityService) GenerateWindows(ctx context.Context, doctorID, serviceID, hospitalID int64, startDate, endDate string, slices []TimeSlice) ([]models.AvailabilityWindow, error) {
	if _, err := s.directory.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	if err := s.checkActiveDestination(ctx, serviceID, hospitalID); err != nil {
		return nil, err
	}
	start, err := utils.ParseDate(startDate)
	if err != nil {
		return nil, err
	}
	end, err := utils.ParseDate(endDate)
	if err != nil {
		return nil, err
	}
	if start.After(end) {
		return nil, utils.Validationf("start date %s is after end date %s", startDate, endDate)
	}
	for _, slice := range slices {
		if err := validateTimeRange(slice.StartTime, slice.EndTime); err != nil {
			return nil, err
		}
	}

	var generated []models.AvailabilityWindow
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := utils.FormatDate(day)
		workable, err := s.isWorkableDay(ctx, doctorID, day, date)
		if err != nil {
			return nil, err
		}
		if !workable {
			continue
		}
		for _, slice := range slices {
			generated = append(generated, models.AvailabilityWindow{
				DoctorID:   doctorID,
				ServiceID:  serviceID,
				HospitalID: hospitalID,
				Date:       date,
				Weekday:    frenchWeekdays[day.Weekday()],
				StartTime:  slice.StartTime,
				EndTime:    slice.EndTime,
				Status:     models.WindowAvailable,
				Recurrence: models.RecurrenceNone,
			})
		}
	}

	if err := s.windows.SaveAll(ctx, generated); err != nil {
		return nil, err
	}
	return generated, nil
}

// CreateWindow creates one window interactively. The destination service
// and hospital must be active and the window must not overlap an existing
// non-unavailable window of the same doctor and date.
func (s *AvailabilityService) CreateWindow(ctx context.Context, window *models.AvailabilityWindow) error {
	if _, err := s.directory.GetDoctor(ctx, window.DoctorID); err != nil {
		return err
	}
	if err := s.checkActiveDestination(ctx, window.ServiceID, window.HospitalID); err != nil {
		return err
	}
	if err := validateTimeRange(window.StartTime, window.EndTime); err != nil {
		return err
	}
	day, err := utils.ParseDate(window.Date)
	if err != nil {
		return err
	}

	conflicting, err := s.windows.FindConflicting(ctx, window.DoctorID, window.Date, window.StartTime, window.EndTime)
	if err != nil {
		return err
	}
	if len(conflicting) > 0 {
		return utils.Conflictf("window %s-%s on %s overlaps an existing window",
			window.StartTime, window.EndTime, window.Date)
	}

	window.Weekday = frenchWeekdays[day.Weekday()]
	if window.Status == "" {
		window.Status = models.WindowAvailable
	}
	if window.Recurrence == "" {
		window.Recurrence = models.RecurrenceNone
	}
	return s.windows.Create(ctx, window)
}

// UpdateWindow updates the time range and status of an existing window,
// re-running the overlap check against the other windows of the day.
func (s *AvailabilityService) UpdateWindow(ctx context.Context, id int64, updated *models.AvailabilityWindow) (*models.AvailabilityWindow, error) {
	existing, err := s.windows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFoundf("availability window %d", id)
	}
	if err := validateTimeRange(updated.StartTime, updated.EndTime); err != nil {
		return nil, err
	}

	conflicting, err := s.windows.FindConflicting(ctx, existing.DoctorID, existing.Date, updated.StartTime, updated.EndTime)
	if err != nil {
		return nil, err
	}
	for _, other := range conflicting {
		if other.ID != existing.ID {
			return nil, utils.Conflictf("window %s-%s on %s overlaps an existing window",
				updated.StartTime, updated.EndTime, existing.Date)
		}
	}

	existing.StartTime = updated.StartTime
	existing.EndTime = updated.EndTime
	if updated.Status != "" {
		existing.Status = updated.Status
	}
	existing.UnavailabilityReason = updated.UnavailabilityReason
	if err := s.windows.Save(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *AvailabilityService) DeleteWindow(ctx context.Context, id int64) error {
	existing, err := s.windows.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NotFoundf("availability window %d", id)
	}
	return s.windows.Delete(ctx, id)
}

func (s *AvailabilityService) GetWindow(ctx context.Context, id int64) (*models.AvailabilityWindow, error) {
	window, err := s.windows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, utils.NotFoundf("availability window %d", id)
	}
	return window, nil
}

// ChangeStatus moves a window to the given status, recording a reason when
// it becomes unavailable.
func (s *AvailabilityService) ChangeStatus(ctx context.Context, id int64, status models.WindowStatus, reason string) (*models.AvailabilityWindow, error) {
	window, err := s.windows.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, utils.NotFoundf("availability window %d", id)
	}
	window.Status = status
	if status == models.WindowUnavailable {
		window.UnavailabilityReason = reason
	} else {
		window.UnavailabilityReason = ""
	}
	if err := s.windows.Save(ctx, window); err != nil {
		return nil, err
	}
	return window, nil
}

// MarkAbsencePeriod turns every window of the doctor inside the absence
// interval unavailable, recording the absence reason.
func (s *AvailabilityService) MarkAbsencePeriod(ctx context.Context, absence *models.Absence) (int, error) {
	windows, err := s.windows.FindByDoctorBetween(ctx, absence.DoctorID, absence.StartDate, absence.EndDate)
	if err != nil {
		return 0, err
	}
	marked := 0
	for i := range windows {
		if windows[i].Status == models.WindowUnavailable {
			continue
		}
		windows[i].Status = models.WindowUnavailable
		windows[i].UnavailabilityReason = fmt.Sprintf("Absence: %s", absence.Reason)
		if err := s.windows.Save(ctx, &windows[i]); err != nil {
			return marked, err
		}
		marked++
	}
	return marked, nil
}

// MarkHolidayUnavailability turns windows falling on holidays unavailable,
// scanning from tomorrow up to three months ahead.
func (s *AvailabilityService) MarkHolidayUnavailability(ctx context.Context) (int, error) {
	now := time.Now()
	start := utils.FormatDate(now.AddDate(0, 0, 1))
	end := utils.FormatDate(now.AddDate(0, 3, 0))

	holidays, err := s.calendar.HolidaysBetween(ctx, start, end)
	if err != nil {
		return 0, err
	}

	marked := 0
	for _, holiday := range holidays {
		for _, status := range []models.WindowStatus{models.WindowAvailable, models.WindowBusy} {
			windows, err := s.windows.FindByDateAndStatus(ctx, holiday.Date, status)
			if err != nil {
				return marked, err
			}
			for i := range windows {
				windows[i].Status = models.WindowUnavailable
				windows[i].UnavailabilityReason = fmt.Sprintf("Jour férié: %s", holiday.Name)
				if err := s.windows.Save(ctx, &windows[i]); err != nil {
					return marked, err
				}
				marked++
			}
		}
	}
	return marked, nil
}

// HasConflict reports whether [start, end) overlaps an existing
// non-unavailable window of the doctor on the date.
func (s *AvailabilityService) HasConflict(ctx context.Context, doctorID int64, date, start, end string) (bool, error) {
	conflicting, err := s.windows.FindConflicting(ctx, doctorID, date, start, end)
	if err != nil {
		return false, err
	}
	return len(conflicting) > 0, nil
}

// CheckCoherence scans a doctor's planning over the date range and reports
// every inconsistency it finds as a human-readable problem.
func (s *AvailabilityService) CheckCoherence(ctx context.Context, doctorID int64, startDate, endDate string) ([]string, error) {
	windows, err := s.windows.FindByDoctorBetween(ctx, doctorID, startDate, endDate)
	if err != nil {
		return nil, err
	}

	var problems []string
	byDate := make(map[string][]models.AvailabilityWindow)
	for _, w := range windows {
		if w.StartTime >= w.EndTime {
			problems = append(problems, fmt.Sprintf(
				"window %d on %s has start %s not before end %s", w.ID, w.Date, w.StartTime, w.EndTime))
		}
		byDate[w.Date] = append(byDate[w.Date], w)
	}

	for date, dayWindows := range byDate {
		for i := 0; i < len(dayWindows); i++ {
			for j := i + 1; j < len(dayWindows); j++ {
				a, b := dayWindows[i], dayWindows[j]
				if a.Status == models.WindowUnavailable || b.Status == models.WindowUnavailable {
					continue
				}
				if a.StartTime < b.EndTime && a.EndTime > b.StartTime {
					problems = append(problems, fmt.Sprintf(
						"windows %d and %d overlap on %s", a.ID, b.ID, date))
				}
			}
		}

		holiday, err := s.calendar.IsHoliday(ctx, date)
		if err != nil {
			return nil, err
		}
		absent, err := s.absences.ExistsCovering(ctx, doctorID, date)
		if err != nil {
			return nil, err
		}
		for _, w := range dayWindows {
			if w.Status == models.WindowUnavailable {
				continue
			}
			if holiday {
				problems = append(problems, fmt.Sprintf(
					"window %d on %s is open on a holiday", w.ID, date))
			}
			if absent {
				problems = append(problems, fmt.Sprintf(
					"window %d on %s is open during a declared absence", w.ID, date))
			}
		}
	}
	return problems, nil
}

// IsDoctorAvailableAt reports whether the doctor can take an appointment
// from start to end: not a holiday, not absent, and fully covered by an
// available window.
func (s *AvailabilityService) IsDoctorAvailableAt(ctx context.Context, doctorID int64, date, start, end string) (bool, error) {
	holiday, err := s.calendar.IsHoliday(ctx, date)
	if err != nil {
		return false, err
	}
	if holiday {
		return false, nil
	}
	absent, err := s.absences.ExistsCovering(ctx, doctorID, date)
	if err != nil {
		return false, err
	}
	if absent {
		return false, nil
	}
	return s.windows.ExistsCoveringAvailable(ctx, doctorID, date, start, end)
}

// HasAvailability reports whether the doctor has at least one available
// window on the date.
func (s *AvailabilityService) HasAvailability(ctx context.Context, doctorID int64, date string) (bool, error) {
	windows, err := s.windows.FindByDoctorDateAndStatus(ctx, doctorID, date, models.WindowAvailable)
	if err != nil {
		return false, err
	}
	return len(windows) > 0, nil
}

// Search returns windows matching the filter.
func (s *AvailabilityService) Search(ctx context.Context, filter repositories.WindowFilter) ([]models.AvailabilityWindow, error) {
	return s.windows.Search(ctx, filter)
}

// DoctorPlanning returns the doctor's windows over the date range grouped
// by date.
func (s *AvailabilityService) DoctorPlanning(ctx context.Context, doctorID int64, startDate, endDate string) (map[string][]models.AvailabilityWindow, error) {
	if _, err := s.directory.GetDoctor(ctx, doctorID); err != nil {
		return nil, err
	}
	windows, err := s.windows.FindByDoctorBetween(ctx, doctorID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	planning := make(map[string][]models.AvailabilityWindow)
	for _, w := range windows {
		planning[w.Date] = append(planning[w.Date], w)
	}
	return planning, nil
}

// Statistics aggregates window counts and open minutes for the doctor over
// the date range.
func (s *AvailabilityService) Statistics(ctx context.Context, doctorID int64, startDate, endDate string) (*PlanningStatistics, error) {
	windows, err := s.windows.FindByDoctorBetween(ctx, doctorID, startDate, endDate)
	if err != nil {
		return nil, err
	}
	stats := &PlanningStatistics{DoctorID: doctorID}
	for _, w := range windows {
		stats.TotalWindows++
		switch w.Status {
		case models.WindowAvailable:
			stats.Available++
			start, err := utils.ParseClock(w.StartTime)
			if err != nil {
				continue
			}
			end, err := utils.ParseClock(w.EndTime)
			if err != nil {
				continue
			}
			stats.TotalMinutes += end - start
		case models.WindowBusy:
			stats.Busy++
		case models.WindowUnavailable:
			stats.Unavailable++
		}
	}
	return stats, nil
}

// isWorkableDay reports whether windows may be generated on the day:
// weekends, holidays and declared absences are not workable.
func (s *AvailabilityService) isWorkableDay(ctx context.Context, doctorID int64, day time.Time, date string) (bool, error) {
	if utils.IsWeekend(day) {
		return false, nil
	}
	holiday, err := s.calendar.IsHoliday(ctx, date)
	if err != nil {
		return false, err
	}
	if holiday {
		return false, nil
	}
	absent, err := s.absences.ExistsCovering(ctx, doctorID, date)
	if err != nil {
		return false, err
	}
	return !absent, nil
}

// checkActiveDestination verifies the target service and hospital exist and
// are active.
func (s *AvailabilityService) checkActiveDestination(ctx context.Context, serviceID, hospitalID int64) error {
	service, err := s.directory.GetService(ctx, serviceID)
	if err != nil {
		return err
	}
	if service.Status != models.ServiceActive {
		return utils.IllegalStatef("service %d is not active", serviceID)
	}
	hospital, err := s.directory.GetHospital(ctx, hospitalID)
	if err != nil {
		return err
	}
	if hospital.Status != models.HospitalActive {
		return utils.IllegalStatef("hospital %d is not active", hospitalID)
	}
	return nil
}

func validateTimeRange(start, end string) error {
	startMin, err := utils.ParseClock(start)
	if err != nil {
		return err
	}
	endMin, err := utils.ParseClock(end)
	if err != nil {
		return err
	}
	if startMin >= endMin {
		return utils.Validationf("start time %s must be before end time %s", start, end)
	}
	return nil
}

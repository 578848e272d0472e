package services

import (
	"SanteSenegal/models"
	"SanteSenegal/utils"
	"context"
	"log"
	"time"
)

// AbsenceService manages doctor-declared unavailability intervals.
type AbsenceService struct {
	absences  AbsenceStore
	directory Directory
	planning  AbsenceMarker
}

func NewAbsenceService(absences AbsenceStore, directory Directory, planning AbsenceMarker) *AbsenceService {
	return &AbsenceService{absences: absences, directory: directory, planning: planning}
}

// Create records an absence after checking the doctor exists and the
// interval is well formed, then turns the doctor's windows inside the
// interval unavailable.
func (s *AbsenceService) Create(ctx context.Context, absence *models.Absence) error {
	if _, err := s.directory.GetDoctor(ctx, absence.DoctorID); err != nil {
		return err
	}
	if err := validateAbsenceInterval(absence.StartDate, absence.EndDate); err != nil {
		return err
	}
	if err := s.absences.Create(ctx, absence); err != nil {
		return err
	}

	marked, err := s.planning.MarkAbsencePeriod(ctx, absence)
	if err != nil {
		return err
	}
	log.Printf("Marked %d windows unavailable for absence %d of doctor %d", marked, absence.ID, absence.DoctorID)
	return nil
}

// Update replaces the stored absence fields with the given ones.
func (s *AbsenceService) Update(ctx context.Context, id int64, updated *models.Absence) (*models.Absence, error) {
	existing, err := s.absences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, utils.NotFoundf("absence %d", id)
	}
	if err := validateAbsenceInterval(updated.StartDate, updated.EndDate); err != nil {
		return nil, err
	}

	existing.StartDate = updated.StartDate
	existing.EndDate = updated.EndDate
	existing.Reason = updated.Reason
	existing.Comment = updated.Comment
	if err := s.absences.Save(ctx, existing); err != nil {
		return nil, err
	}
	if _, err := s.planning.MarkAbsencePeriod(ctx, existing); err != nil {
		return nil, err
	}
	return existing, nil
}

func (s *AbsenceService) Delete(ctx context.Context, id int64) error {
	existing, err := s.absences.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return utils.NotFoundf("absence %d", id)
	}
	return s.absences.Delete(ctx, id)
}

func (s *AbsenceService) GetByID(ctx context.Context, id int64) (*models.Absence, error) {
	absence, err := s.absences.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if absence == nil {
		return nil, utils.NotFoundf("absence %d", id)
	}
	return absence, nil
}

// IsAbsent reports whether the doctor has a declared absence covering the
// date.
func (s *AbsenceService) IsAbsent(ctx context.Context, doctorID int64, date string) (bool, error) {
	return s.absences.ExistsCovering(ctx, doctorID, date)
}

// ListForDoctor returns the doctor's absences within a year either side of
// today.
func (s *AbsenceService) ListForDoctor(ctx context.Context, doctorID int64) ([]models.Absence, error) {
	now := time.Now()
	start := utils.FormatDate(now.AddDate(-1, 0, 0))
	end := utils.FormatDate(now.AddDate(1, 0, 0))
	return s.absences.FindForDoctorBetween(ctx, doctorID, start, end)
}

func validateAbsenceInterval(start, end string) error {
	if _, err := utils.ParseDate(start); err != nil {
		return err
	}
	if _, err := utils.ParseDate(end); err != nil {
		return err
	}
	if start > end {
		return utils.Validationf("start date %s is after end date %s", start, end)
	}
	return nil
}

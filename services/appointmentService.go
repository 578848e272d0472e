package services

import (
	"SanteSenegal/models"
	"SanteSenegal/utils"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

const (
	slotLockTTL        = 10 * time.Second
	slotLockRetries    = 3
	slotLockRetryDelay = 2 * time.Second
)

// AppointmentService allocates slots to patients and drives the appointment
// lifecycle. Slot claims go through a distributed lock plus a conditional
// update, so two concurrent bookings of the same slot cannot both succeed.
type AppointmentService struct {
	appointments AppointmentStore
	slots        SlotStore
	directory    Directory
	availability AvailabilityChecker
	locker       Locker
	notifier     Notifier
}

func NewAppointmentService(appointments AppointmentStore, slots SlotStore, directory Directory, availability AvailabilityChecker, locker Locker, notifier Notifier) *AppointmentService {
	return &AppointmentService{
		appointments: appointments,
		slots:        slots,
		directory:    directory,
		availability: availability,
		locker:       locker,
		notifier:     notifier,
	}
}

// ReserveSlot books a free slot for the patient. The slot's end time is
// stretched to cover the planned duration of the consultation type; the
// original end is not kept, release restores the default duration instead.
func (s *AppointmentService) ReserveSlot(ctx context.Context, slotID, patientID int64, consultationType models.ConsultationType, motif string, urgency models.UrgencyLevel) (*models.Appointment, error) {
	lockValue, err := s.lockSlot(ctx, slotID)
	if err != nil {
		return nil, err
	}
	defer s.unlockSlot(ctx, slotID, lockValue)

	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, utils.NotFoundf("slot %d", slotID)
	}
	if slot.Reserved {
		return nil, utils.Conflictf("slot %d is already reserved", slotID)
	}
	if _, err := s.directory.GetPatient(ctx, patientID); err != nil {
		return nil, err
	}

	dateTime, err := combineDateTime(slot.Date, slot.StartTime)
	if err != nil {
		return nil, err
	}
	duration := models.DurationFor(consultationType)
	endTime, err := utils.AddMinutes(slot.StartTime, duration)
	if err != nil {
		return nil, err
	}
	if urgency == "" {
		urgency = models.UrgencyNormal
	}

	appointment := &models.Appointment{
		PatientID:        patientID,
		DoctorID:         slot.DoctorID,
		ServiceID:        slot.ServiceID,
		HospitalID:       slot.HospitalID,
		DateTime:         dateTime,
		PlannedDuration:  duration,
		ConsultationType: consultationType,
		Motif:            motif,
		UrgencyLevel:     urgency,
		Status:           models.AppointmentScheduled,
		BookingMode:      models.BookingOnline,
	}
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return nil, err
	}

	reserved, err := s.slots.Reserve(ctx, slot.ID, appointment.ID, endTime)
	if err != nil {
		return nil, err
	}
	if !reserved {
		if delErr := s.appointments.Delete(ctx, appointment.ID); delErr != nil {
			log.Printf("Failed to delete appointment %d after lost slot race: %v", appointment.ID, delErr)
		}
		return nil, utils.Conflictf("slot %d was reserved concurrently", slotID)
	}
	return appointment, nil
}

// ReleaseSlot frees a slot, cancelling its linked appointment if still
// active, and resets the slot end to the default duration.
func (s *AppointmentService) ReleaseSlot(ctx context.Context, slotID int64) error {
	slot, err := s.slots.FindByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		return utils.NotFoundf("slot %d", slotID)
	}

	if slot.AppointmentID != nil {
		appointment, err := s.appointments.FindByID(ctx, *slot.AppointmentID)
		if err != nil {
			return err
		}
		if appointment != nil && !appointment.Status.IsTerminal() {
			appointment.Status = models.AppointmentCancelled
			if err := s.appointments.Save(ctx, appointment); err != nil {
				return err
			}
		}
	}

	endTime, err := utils.AddMinutes(slot.StartTime, models.DefaultSlotMinutes)
	if err != nil {
		return err
	}
	return s.slots.Release(ctx, slot.ID, endTime)
}

// Create books an appointment at the requested date and time by matching an
// unreserved slot at exactly that start. The slot keeps its own end time.
func (s *AppointmentService) Create(ctx context.Context, appointment *models.Appointment) error {
	if _, err := s.directory.GetPatient(ctx, appointment.PatientID); err != nil {
		return err
	}
	if _, err := s.directory.GetDoctor(ctx, appointment.DoctorID); err != nil {
		return err
	}

	date := utils.FormatDate(appointment.DateTime)
	start := appointment.DateTime.Format(utils.ClockLayout)
	slot, err := s.slots.FindMatchingFree(ctx, appointment.DoctorID, date, start)
	if err != nil {
		return err
	}
	if slot == nil {
		return utils.IllegalStatef("no free slot for doctor %d at %s %s", appointment.DoctorID, date, start)
	}

	if appointment.PlannedDuration == 0 {
		appointment.PlannedDuration = models.DurationFor(appointment.ConsultationType)
	}
	if appointment.UrgencyLevel == "" {
		appointment.UrgencyLevel = models.UrgencyNormal
	}
	appointment.ServiceID = slot.ServiceID
	appointment.HospitalID = slot.HospitalID
	appointment.Status = models.AppointmentScheduled
	if err := s.appointments.Create(ctx, appointment); err != nil {
		return err
	}

	reserved, err := s.slots.Reserve(ctx, slot.ID, appointment.ID, slot.EndTime)
	if err != nil {
		return err
	}
	if !reserved {
		if delErr := s.appointments.Delete(ctx, appointment.ID); delErr != nil {
			log.Printf("Failed to delete appointment %d after lost slot race: %v", appointment.ID, delErr)
		}
		return utils.Conflictf("slot at %s %s was reserved concurrently", date, start)
	}
	return nil
}

// Confirm moves a scheduled appointment to confirmed.
func (s *AppointmentService) Confirm(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.transition(ctx, id, models.AppointmentConfirmed, models.AppointmentScheduled)
}

// Start moves a scheduled or confirmed appointment to in progress.
func (s *AppointmentService) Start(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.transition(ctx, id, models.AppointmentInProgress, models.AppointmentScheduled, models.AppointmentConfirmed)
}

// Complete finishes an in-progress appointment and frees its slot.
func (s *AppointmentService) Complete(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment, err := s.transition(ctx, id, models.AppointmentCompleted, models.AppointmentInProgress)
	if err != nil {
		return nil, err
	}
	if err := s.freeSlot(ctx, appointment.ID); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Cancel cancels a scheduled or confirmed appointment and frees its slot.
func (s *AppointmentService) Cancel(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment, err := s.transition(ctx, id, models.AppointmentCancelled, models.AppointmentScheduled, models.AppointmentConfirmed)
	if err != nil {
		return nil, err
	}
	if err := s.freeSlot(ctx, appointment.ID); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Reschedule moves a non-terminal appointment to a new date and time,
// freeing the old slot and claiming a free slot at the new start.
func (s *AppointmentService) Reschedule(ctx context.Context, id int64, newDateTime time.Time) (*models.Appointment, error) {
	appointment, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, utils.IllegalStatef("appointment %d is %s and cannot be rescheduled", id, appointment.Status)
	}

	date := utils.FormatDate(newDateTime)
	start := newDateTime.Format(utils.ClockLayout)
	newSlot, err := s.slots.FindMatchingFree(ctx, appointment.DoctorID, date, start)
	if err != nil {
		return nil, err
	}
	if newSlot == nil {
		return nil, utils.IllegalStatef("no free slot for doctor %d at %s %s", appointment.DoctorID, date, start)
	}

	if err := s.freeSlot(ctx, appointment.ID); err != nil {
		return nil, err
	}
	endTime, err := utils.AddMinutes(start, appointment.PlannedDuration)
	if err != nil {
		return nil, err
	}
	reserved, err := s.slots.Reserve(ctx, newSlot.ID, appointment.ID, endTime)
	if err != nil {
		return nil, err
	}
	if !reserved {
		return nil, utils.Conflictf("slot at %s %s was reserved concurrently", date, start)
	}

	appointment.DateTime = newDateTime
	appointment.Status = models.AppointmentPostponed
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// UpdateSchedule moves a non-terminal appointment to a new date, time and
// duration after checking the doctor's availability over the new range.
// Unlike Reschedule it does not touch slots; it is meant for front-desk
// corrections of appointments booked outside the slot flow.
func (s *AppointmentService) UpdateSchedule(ctx context.Context, id int64, newDateTime time.Time, durationMinutes int) (*models.Appointment, error) {
	appointment, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, utils.IllegalStatef("appointment %d is %s and cannot be moved", id, appointment.Status)
	}
	if durationMinutes <= 0 {
		durationMinutes = appointment.PlannedDuration
	}

	date := utils.FormatDate(newDateTime)
	start := newDateTime.Format(utils.ClockLayout)
	end, err := utils.AddMinutes(start, durationMinutes)
	if err != nil {
		return nil, err
	}
	available, err := s.availability.IsDoctorAvailableAt(ctx, appointment.DoctorID, date, start, end)
	if err != nil {
		return nil, err
	}
	if !available {
		return nil, utils.IllegalStatef("doctor %d is not available at %s %s", appointment.DoctorID, date, start)
	}

	appointment.DateTime = newDateTime
	appointment.PlannedDuration = durationMinutes
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// Update changes the descriptive fields of a non-terminal appointment.
func (s *AppointmentService) Update(ctx context.Context, id int64, motif string, consultationType models.ConsultationType, urgency models.UrgencyLevel) (*models.Appointment, error) {
	appointment, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment.Status.IsTerminal() {
		return nil, utils.IllegalStatef("appointment %d is %s and cannot be updated", id, appointment.Status)
	}

	if motif != "" {
		appointment.Motif = motif
	}
	if consultationType != "" {
		appointment.ConsultationType = consultationType
		appointment.PlannedDuration = models.DurationFor(consultationType)
	}
	if urgency != "" {
		appointment.UrgencyLevel = urgency
	}
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// IsDoctorAvailable combines the planning check with slot state: the doctor
// must be available over the consultation duration and a free slot must
// exist at the requested start.
func (s *AppointmentService) IsDoctorAvailable(ctx context.Context, doctorID int64, dateTime time.Time, consultationType models.ConsultationType) (bool, error) {
	date := utils.FormatDate(dateTime)
	start := dateTime.Format(utils.ClockLayout)
	end, err := utils.AddMinutes(start, models.DurationFor(consultationType))
	if err != nil {
		return false, err
	}

	available, err := s.availability.IsDoctorAvailableAt(ctx, doctorID, date, start, end)
	if err != nil {
		return false, err
	}
	if !available {
		return false, nil
	}
	slot, err := s.slots.FindMatchingFree(ctx, doctorID, date, start)
	if err != nil {
		return false, err
	}
	return slot != nil, nil
}

// SendReminders notifies patients whose active appointments fall exactly one
// or seven days ahead. A failure for one appointment is logged and does not
// stop the rest.
func (s *AppointmentService) SendReminders(ctx context.Context) (int, error) {
	now := time.Now()
	sent := 0
	for _, daysAhead := range []int{1, 7} {
		day := now.AddDate(0, 0, daysAhead)
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		to := from.AddDate(0, 0, 1)

		appointments, err := s.appointments.FindBetween(ctx, from, to)
		if err != nil {
			return sent, err
		}
		for _, appointment := range appointments {
			if appointment.Status != models.AppointmentScheduled && appointment.Status != models.AppointmentConfirmed {
				continue
			}
			if err := s.remind(ctx, &appointment, daysAhead); err != nil {
				log.Printf("Failed to send reminder for appointment %d: %v", appointment.ID, err)
				continue
			}
			sent++
		}
	}
	return sent, nil
}

func (s *AppointmentService) remind(ctx context.Context, appointment *models.Appointment, daysAhead int) error {
	patient, err := s.directory.GetPatient(ctx, appointment.PatientID)
	if err != nil {
		return err
	}
	subject := "Rappel de rendez-vous"
	body := fmt.Sprintf(
		"Bonjour %s %s,\n\nVotre rendez-vous est prévu le %s (dans %d jour(s)).\n\nMerci de confirmer votre présence.",
		patient.User.FirstName, patient.User.LastName,
		appointment.DateTime.Format("02/01/2006 à 15:04"), daysAhead)
	return s.notifier.Send(patient.User.Email, subject, body)
}

func (s *AppointmentService) GetByID(ctx context.Context, id int64) (*models.Appointment, error) {
	return s.getExisting(ctx, id)
}

func (s *AppointmentService) ListByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	return s.appointments.FindByPatient(ctx, patientID)
}

func (s *AppointmentService) ListByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	return s.appointments.FindByDoctor(ctx, doctorID)
}

func (s *AppointmentService) ListByService(ctx context.Context, serviceID int64) ([]models.Appointment, error) {
	return s.appointments.FindByService(ctx, serviceID)
}

func (s *AppointmentService) ListByHospital(ctx context.Context, hospitalID int64) ([]models.Appointment, error) {
	return s.appointments.FindByHospital(ctx, hospitalID)
}

func (s *AppointmentService) ListByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	return s.appointments.FindByStatus(ctx, status)
}

// ListUrgent returns appointments flagged urgent or very urgent.
func (s *AppointmentService) ListUrgent(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.FindByUrgency(ctx, []models.UrgencyLevel{models.UrgencyUrgent, models.UrgencyVeryUrgent})
}

// ListForDay returns the appointments of one calendar date.
func (s *AppointmentService) ListForDay(ctx context.Context, date string) ([]models.Appointment, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, err
	}
	return s.appointments.FindBetween(ctx, day, day.AddDate(0, 0, 1))
}

func (s *AppointmentService) ListUpcomingByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	return s.appointments.FindUpcomingByPatient(ctx, patientID, time.Now())
}

func (s *AppointmentService) ListUpcomingByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	return s.appointments.FindUpcomingByDoctor(ctx, doctorID, time.Now())
}

// ListOverdue returns active appointments whose scheduled time has passed.
func (s *AppointmentService) ListOverdue(ctx context.Context) ([]models.Appointment, error) {
	return s.appointments.FindOverdue(ctx, time.Now())
}

// CountForDoctorBetween counts a doctor's appointments in [from, to).
func (s *AppointmentService) CountForDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) (int64, error) {
	return s.appointments.CountByDoctorBetween(ctx, doctorID, from, to)
}

// Delete removes an appointment outright, freeing its slot first.
func (s *AppointmentService) Delete(ctx context.Context, id int64) error {
	if _, err := s.getExisting(ctx, id); err != nil {
		return err
	}
	if err := s.freeSlot(ctx, id); err != nil {
		return err
	}
	return s.appointments.Delete(ctx, id)
}

// transition applies a guarded status change.
func (s *AppointmentService) transition(ctx context.Context, id int64, target models.AppointmentStatus, allowedFrom ...models.AppointmentStatus) (*models.Appointment, error) {
	appointment, err := s.getExisting(ctx, id)
	if err != nil {
		return nil, err
	}
	allowed := false
	for _, from := range allowedFrom {
		if appointment.Status == from {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, utils.IllegalStatef("appointment %d cannot go from %s to %s", id, appointment.Status, target)
	}
	appointment.Status = target
	if err := s.appointments.Save(ctx, appointment); err != nil {
		return nil, err
	}
	return appointment, nil
}

// freeSlot releases the slot linked to the appointment, if any, restoring
// the default slot duration.
func (s *AppointmentService) freeSlot(ctx context.Context, appointmentID int64) error {
	slot, err := s.slots.FindByAppointment(ctx, appointmentID)
	if err != nil {
		return err
	}
	if slot == nil {
		return nil
	}
	endTime, err := utils.AddMinutes(slot.StartTime, models.DefaultSlotMinutes)
	if err != nil {
		return err
	}
	return s.slots.Release(ctx, slot.ID, endTime)
}

func (s *AppointmentService) getExisting(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment, err := s.appointments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, utils.NotFoundf("appointment %d", id)
	}
	return appointment, nil
}

// lockSlot acquires the distributed lock for a slot, retrying a few times
// before giving up.
func (s *AppointmentService) lockSlot(ctx context.Context, slotID int64) (string, error) {
	key := fmt.Sprintf("slot_lock:%d", slotID)
	value := uuid.New().String()
	for attempt := 0; attempt < slotLockRetries; attempt++ {
		acquired, err := s.locker.Acquire(ctx, key, value, slotLockTTL)
		if err != nil {
			return "", fmt.Errorf("failed to acquire slot lock: %w", err)
		}
		if acquired {
			return value, nil
		}
		time.Sleep(slotLockRetryDelay)
	}
	return "", utils.Conflictf("slot %d is locked by another booking", slotID)
}

func (s *AppointmentService) unlockSlot(ctx context.Context, slotID int64, value string) {
	key := fmt.Sprintf("slot_lock:%d", slotID)
	if err := s.locker.Release(ctx, key, value); err != nil {
		log.Printf("Failed to release slot lock %s: %v", key, err)
	}
}

// combineDateTime joins a calendar date and a clock time into one instant.
func combineDateTime(date, clock string) (time.Time, error) {
	t, err := time.ParseInLocation(utils.DateLayout+" "+utils.ClockLayout, date+" "+clock, time.Local)
	if err != nil {
		return time.Time{}, utils.Validationf("invalid date/time %s %s", date, clock)
	}
	return t, nil
}

package services

import (
	"SanteSenegal/models"
	"SanteSenegal/repositories"
	"context"
	"time"
)

// The scheduling services depend on these small interfaces instead of the
// concrete repositories, so tests can substitute in-memory fakes. The
// repositories package satisfies all of them.

type Directory interface {
	GetDoctor(ctx context.Context, id int64) (*models.DoctorProfile, error)
	GetPatient(ctx context.Context, id int64) (*models.PatientProfile, error)
	GetHospital(ctx context.Context, id int64) (*models.Hospital, error)
	GetService(ctx context.Context, id int64) (*models.Service, error)
}

type DirectoryAdmin interface {
	Directory
	CreateDoctor(ctx context.Context, user *models.User, profile *models.DoctorProfile) error
	CreatePatient(ctx context.Context, user *models.User, profile *models.PatientProfile) error
	ListDoctors(ctx context.Context) ([]models.DoctorProfile, error)
	ListHospitals(ctx context.Context) ([]models.Hospital, error)
	ListServices(ctx context.Context, hospitalID int64) ([]models.Service, error)
}

type HolidayStore interface {
	ExistsOnDate(ctx context.Context, date string) (bool, error)
	FindBetween(ctx context.Context, start, end string) ([]models.Holiday, error)
	FindByDateAndSource(ctx context.Context, date, source string) (*models.Holiday, error)
	Create(ctx context.Context, holiday *models.Holiday) error
	DeleteBySourceAndYear(ctx context.Context, source string, year int) error
}

type AbsenceStore interface {
	Create(ctx context.Context, absence *models.Absence) error
	Save(ctx context.Context, absence *models.Absence) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Absence, error)
	ExistsCovering(ctx context.Context, doctorID int64, date string) (bool, error)
	FindForDoctorBetween(ctx context.Context, doctorID int64, start, end string) ([]models.Absence, error)
}

type WindowStore interface {
	Create(ctx context.Context, window *models.AvailabilityWindow) error
	Save(ctx context.Context, window *models.AvailabilityWindow) error
	SaveAll(ctx context.Context, windows []models.AvailabilityWindow) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.AvailabilityWindow, error)
	FindByDoctor(ctx context.Context, doctorID int64) ([]models.AvailabilityWindow, error)
	FindConflicting(ctx context.Context, doctorID int64, date, start, end string) ([]models.AvailabilityWindow, error)
	FindByDoctorBetween(ctx context.Context, doctorID int64, start, end string) ([]models.AvailabilityWindow, error)
	FindByDoctorBetweenAndStatus(ctx context.Context, doctorID int64, start, end string, status models.WindowStatus) ([]models.AvailabilityWindow, error)
	FindByDoctorDateAndStatus(ctx context.Context, doctorID int64, date string, status models.WindowStatus) ([]models.AvailabilityWindow, error)
	FindByDateAndStatus(ctx context.Context, date string, status models.WindowStatus) ([]models.AvailabilityWindow, error)
	ExistsCoveringAvailable(ctx context.Context, doctorID int64, date, start, end string) (bool, error)
	Search(ctx context.Context, filter repositories.WindowFilter) ([]models.AvailabilityWindow, error)
}

type SlotStore interface {
	Exists(ctx context.Context, doctorID int64, date, startTime string) (bool, error)
	Create(ctx context.Context, slot *models.Slot) error
	FindByID(ctx context.Context, id int64) (*models.Slot, error)
	Reserve(ctx context.Context, slotID, appointmentID int64, endTime string) (bool, error)
	Release(ctx context.Context, slotID int64, endTime string) error
	FindMatchingFree(ctx context.Context, doctorID int64, date, startTime string) (*models.Slot, error)
	FindByAppointment(ctx context.Context, appointmentID int64) (*models.Slot, error)
	FindAvailable(ctx context.Context, filter repositories.SlotFilter) ([]models.Slot, error)
	CountAvailable(ctx context.Context, filter repositories.SlotFilter) (int64, error)
}

type AppointmentStore interface {
	Create(ctx context.Context, appointment *models.Appointment) error
	Save(ctx context.Context, appointment *models.Appointment) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*models.Appointment, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error)
	FindByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error)
	FindByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error)
	FindByService(ctx context.Context, serviceID int64) ([]models.Appointment, error)
	FindByHospital(ctx context.Context, hospitalID int64) ([]models.Appointment, error)
	FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error)
	FindByUrgency(ctx context.Context, levels []models.UrgencyLevel) ([]models.Appointment, error)
	FindUpcomingByPatient(ctx context.Context, patientID int64, now time.Time) ([]models.Appointment, error)
	FindUpcomingByDoctor(ctx context.Context, doctorID int64, now time.Time) ([]models.Appointment, error)
	FindOverdue(ctx context.Context, now time.Time) ([]models.Appointment, error)
	CountByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) (int64, error)
}

// HolidayCalendar answers holiday questions for availability decisions.
type HolidayCalendar interface {
	IsHoliday(ctx context.Context, date string) (bool, error)
	HolidaysBetween(ctx context.Context, start, end string) ([]models.Holiday, error)
}

// AvailabilityChecker answers whether a doctor can take an appointment in a
// given time range.
type AvailabilityChecker interface {
	IsDoctorAvailableAt(ctx context.Context, doctorID int64, date, start, end string) (bool, error)
}

// AbsenceMarker propagates a declared absence into the doctor's planning.
type AbsenceMarker interface {
	MarkAbsencePeriod(ctx context.Context, absence *models.Absence) (int, error)
}

// Locker is a distributed lock over a shared key space.
type Locker interface {
	Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key, value string) error
}

// Notifier delivers a message to a recipient address.
type Notifier interface {
	Send(to, subject, body string) error
}

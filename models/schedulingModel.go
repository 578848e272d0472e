package models

import (
	"time"
)

// DefaultSlotMinutes is the fixed subdivision step for bookable slots.
const DefaultSlotMinutes = 30

type HolidayType string

const (
	HolidayNational       HolidayType = "NATIONAL"
	HolidayRegional       HolidayType = "REGIONAL"
	HolidayReligious      HolidayType = "RELIGIOUS"
	HolidayAdministrative HolidayType = "ADMINISTRATIVE"
)

// Holiday is a calendar date, sourced from the external provider or the
// static fallback list, that can suppress availability generation.
// Deduplicated by (date, source).
type Holiday struct {
	ID                  int64       `gorm:"primaryKey;column:id" json:"id"`
	Date                string      `gorm:"column:date;not null;index;uniqueIndex:idx_holiday_date_source" json:"date"`
	Name                string      `gorm:"column:name;size:200;not null" json:"name"`
	Description         string      `gorm:"column:description;type:text" json:"description"`
	Type                HolidayType `gorm:"column:type;size:20;not null" json:"type"`
	Region              string      `gorm:"column:region;size:100" json:"region"`
	Recurrent           bool        `gorm:"column:recurrent" json:"recurrent"`
	AffectsAvailability bool        `gorm:"column:affects_availability" json:"affects_availability"`
	Source              string      `gorm:"column:source;size:100;uniqueIndex:idx_holiday_date_source" json:"source"`
	ExternalID          string      `gorm:"column:external_id;size:100" json:"external_id"`
	CreatedAt           time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time   `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

type AbsenceReason string

const (
	AbsenceAnnualLeave AbsenceReason = "CONGE_ANNUEL"
	AbsenceSickness    AbsenceReason = "MALADIE"
	AbsenceTraining    AbsenceReason = "FORMATION"
	AbsenceMission     AbsenceReason = "MISSION"
	AbsenceOther       AbsenceReason = "AUTRE"
)

// Absence is a doctor-declared unavailability interval, distinct from
// holiday-driven unavailability. Invariant: StartDate <= EndDate.
type Absence struct {
	ID        int64         `gorm:"primaryKey;column:id" json:"id"`
	DoctorID  int64         `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	StartDate string        `gorm:"column:start_date;not null" json:"start_date"`
	EndDate   string        `gorm:"column:end_date;not null" json:"end_date"`
	Reason    AbsenceReason `gorm:"column:reason;size:30;not null" json:"reason"`
	Comment   string        `gorm:"column:comment;type:text" json:"comment"`
	CreatedAt time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Absence) TableName() string {
	return "absences"
}

type WindowStatus string

const (
	WindowAvailable   WindowStatus = "AVAILABLE"
	WindowBusy        WindowStatus = "BUSY"
	WindowUnavailable WindowStatus = "UNAVAILABLE"
)

type Recurrence string

const (
	RecurrenceNone    Recurrence = "NONE"
	RecurrenceWeekly  Recurrence = "WEEKLY"
	RecurrenceMonthly Recurrence = "MONTHLY"
)

// AvailabilityWindow is a doctor's declared open time range on a given
// date, before subdivision into slots. For one doctor and date, windows
// must not overlap (enforced on the interactive creation path).
type AvailabilityWindow struct {
	ID                   int64        `gorm:"primaryKey;column:id" json:"id"`
	DoctorID             int64        `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	ServiceID            int64        `gorm:"column:service_id;not null;index" json:"service_id"`
	HospitalID           int64        `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Date                 string       `gorm:"column:date;not null;index" json:"date"`
	Weekday              string       `gorm:"column:weekday;size:10" json:"weekday"`
	StartTime            string       `gorm:"column:start_time;size:5;not null" json:"start_time"`
	EndTime              string       `gorm:"column:end_time;size:5;not null" json:"end_time"`
	Status               WindowStatus `gorm:"column:status;size:20;not null" json:"status"`
	UnavailabilityReason string       `gorm:"column:unavailability_reason;type:text" json:"unavailability_reason"`
	Recurrence           Recurrence   `gorm:"column:recurrence;size:20" json:"recurrence"`
	RecurrenceEndDate    string       `gorm:"column:recurrence_end_date" json:"recurrence_end_date"`
	CreatedAt            time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (AvailabilityWindow) TableName() string {
	return "availability_windows"
}

// Slot is a concrete, fixed-duration bookable time unit derived from an
// availability window. Invariant: Reserved is true iff AppointmentID is
// non-nil. The unique index makes generation idempotent.
type Slot struct {
	ID            int64     `gorm:"primaryKey;column:id" json:"id"`
	DoctorID      int64     `gorm:"column:doctor_id;not null;index;uniqueIndex:idx_slot_doctor_date_start" json:"doctor_id"`
	ServiceID     int64     `gorm:"column:service_id;not null;index" json:"service_id"`
	HospitalID    int64     `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	Date          string    `gorm:"column:date;not null;index;uniqueIndex:idx_slot_doctor_date_start" json:"date"`
	StartTime     string    `gorm:"column:start_time;size:5;not null;uniqueIndex:idx_slot_doctor_date_start" json:"start_time"`
	EndTime       string    `gorm:"column:end_time;size:5;not null" json:"end_time"`
	Reserved      bool      `gorm:"column:reserved;not null" json:"reserved"`
	AppointmentID *int64    `gorm:"column:appointment_id;index" json:"appointment_id"`
	CreatedAt     time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Slot) TableName() string {
	return "slots"
}

type ConsultationType string

const (
	ConsultationGeneral    ConsultationType = "CONSULTATION_GENERALE"
	ConsultationSpecialist ConsultationType = "CONSULTATION_SPECIALISTE"
	ConsultationEmergency  ConsultationType = "CONSULTATION_URGENCE"
	ConsultationFollowUp   ConsultationType = "CONSULTATION_SUIVI"
	ConsultationFirst      ConsultationType = "CONSULTATION_PREMIERE"
)

// consultationDurations maps each consultation type to its planned
// duration in minutes.
var consultationDurations = map[ConsultationType]int{
	ConsultationGeneral:    30,
	ConsultationSpecialist: 45,
	ConsultationEmergency:  20,
	ConsultationFollowUp:   25,
	ConsultationFirst:      30,
}

// DurationFor returns the planned duration for a consultation type.
// Unknown types get the default slot duration.
func DurationFor(t ConsultationType) int {
	if d, ok := consultationDurations[t]; ok {
		return d
	}
	return DefaultSlotMinutes
}

type AppointmentStatus string

const (
	AppointmentScheduled  AppointmentStatus = "PROGRAMME"
	AppointmentConfirmed  AppointmentStatus = "CONFIRME"
	AppointmentInProgress AppointmentStatus = "EN_COURS"
	AppointmentCompleted  AppointmentStatus = "TERMINE"
	AppointmentCancelled  AppointmentStatus = "ANNULE"
	AppointmentPostponed  AppointmentStatus = "REPORTE"
)

// IsTerminal reports whether no further transitions are allowed.
func (s AppointmentStatus) IsTerminal() bool {
	return s == AppointmentCompleted || s == AppointmentCancelled
}

type UrgencyLevel string

const (
	UrgencyNormal     UrgencyLevel = "NORMALE"
	UrgencyUrgent     UrgencyLevel = "URGENT"
	UrgencyVeryUrgent UrgencyLevel = "TRES_URGENT"
)

type BookingMode string

const (
	BookingOnline    BookingMode = "EN_LIGNE"
	BookingPhone     BookingMode = "TELEPHONE"
	BookingFrontDesk BookingMode = "SECRETARIAT"
)

// Appointment is a patient's booking against a specific slot, with its
// own lifecycle status.
type Appointment struct {
	ID               int64             `gorm:"primaryKey;column:id" json:"id"`
	PatientID        int64             `gorm:"column:patient_id;not null;index" json:"patient_id"`
	DoctorID         int64             `gorm:"column:doctor_id;not null;index" json:"doctor_id"`
	ServiceID        int64             `gorm:"column:service_id;not null;index" json:"service_id"`
	HospitalID       int64             `gorm:"column:hospital_id;not null;index" json:"hospital_id"`
	DateTime         time.Time         `gorm:"column:date_time;not null;index" json:"date_time"`
	PlannedDuration  int               `gorm:"column:planned_duration" json:"planned_duration"`
	ConsultationType ConsultationType  `gorm:"column:consultation_type;size:100" json:"consultation_type"`
	Motif            string            `gorm:"column:motif;type:text" json:"motif"`
	UrgencyLevel     UrgencyLevel      `gorm:"column:urgency_level;size:20" json:"urgency_level"`
	Status           AppointmentStatus `gorm:"column:status;size:20;not null;index" json:"status"`
	BookingMode      BookingMode       `gorm:"column:booking_mode;size:30" json:"booking_mode"`
	CreatedAt        time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time         `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (Appointment) TableName() string {
	return "appointments"
}

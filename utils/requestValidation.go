package utils

import (
	"SanteSenegal/models"
	"log"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

// ValidateWindow validates an availability window payload using ozzo-validation.
func ValidateWindow(window models.AvailabilityWindow) error {
	err := validation.ValidateStruct(&window,
		validation.Field(&window.DoctorID, validation.Required),
		validation.Field(&window.ServiceID, validation.Required),
		validation.Field(&window.HospitalID, validation.Required),
		validation.Field(&window.Date, validation.Required, validation.Date(DateLayout)),
		validation.Field(&window.StartTime, validation.Required, validation.Date(ClockLayout)),
		validation.Field(&window.EndTime, validation.Required, validation.Date(ClockLayout)),
		validation.Field(&window.Status, validation.In(
			models.WindowAvailable, models.WindowBusy, models.WindowUnavailable)),
		validation.Field(&window.Recurrence, validation.In(
			models.RecurrenceNone, models.RecurrenceWeekly, models.RecurrenceMonthly)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return Validationf("%v", err)
	}
	return nil
}

// ValidateAbsence validates an absence payload.
func ValidateAbsence(absence models.Absence) error {
	err := validation.ValidateStruct(&absence,
		validation.Field(&absence.DoctorID, validation.Required),
		validation.Field(&absence.StartDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&absence.EndDate, validation.Required, validation.Date(DateLayout)),
		validation.Field(&absence.Reason, validation.Required, validation.In(
			models.AbsenceAnnualLeave, models.AbsenceSickness, models.AbsenceTraining,
			models.AbsenceMission, models.AbsenceOther)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return Validationf("%v", err)
	}
	return nil
}

// ValidateAppointment validates an appointment creation payload.
func ValidateAppointment(appointment models.Appointment) error {
	err := validation.ValidateStruct(&appointment,
		validation.Field(&appointment.PatientID, validation.Required),
		validation.Field(&appointment.DoctorID, validation.Required),
		validation.Field(&appointment.DateTime, validation.Required),
		validation.Field(&appointment.ConsultationType, validation.Required, validation.In(
			models.ConsultationGeneral, models.ConsultationSpecialist,
			models.ConsultationEmergency, models.ConsultationFollowUp,
			models.ConsultationFirst)),
		validation.Field(&appointment.UrgencyLevel, validation.In(
			models.UrgencyNormal, models.UrgencyUrgent, models.UrgencyVeryUrgent)),
		validation.Field(&appointment.BookingMode, validation.In(
			models.BookingOnline, models.BookingPhone, models.BookingFrontDesk)),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return Validationf("%v", err)
	}
	return nil
}

// ValidateReservation validates a slot reservation payload.
func ValidateReservation(patientID int64, consultationType models.ConsultationType) error {
	err := validation.Errors{
		"patient_id": validation.Validate(patientID, validation.Required),
		"consultation_type": validation.Validate(consultationType, validation.Required, validation.In(
			models.ConsultationGeneral, models.ConsultationSpecialist,
			models.ConsultationEmergency, models.ConsultationFollowUp,
			models.ConsultationFirst)),
	}.Filter()
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return Validationf("%v", err)
	}
	return nil
}

// ValidateUser validates the shared identity fields of a user payload.
func ValidateUser(user models.User) error {
	err := validation.ValidateStruct(&user,
		validation.Field(&user.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&user.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&user.Email, validation.Required, is.Email),
	)
	if err != nil {
		log.Printf("Validation error: %v\n", err)
		return Validationf("%v", err)
	}
	return nil
}

package controllers

import (
	"SanteSenegal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupSchedulingRoutes registers the planning and booking routes.
func SetupSchedulingRoutes(router *gin.Engine,
	directoryHandler *handlers.DirectoryHandler,
	calendarHandler *handlers.CalendarHandler,
	absenceHandler *handlers.AbsenceHandler,
	availabilityHandler *handlers.AvailabilityHandler,
	slotHandler *handlers.SlotHandler,
	appointmentHandler *handlers.AppointmentHandler) {

	router.POST("/doctors", directoryHandler.CreateDoctor)
	router.GET("/doctors", directoryHandler.GetAllDoctors)
	router.GET("/doctors/:doctor_id", directoryHandler.GetDoctorByID)
	router.POST("/patients", directoryHandler.CreatePatient)
	router.GET("/patients/:patient_id", directoryHandler.GetPatientByID)
	router.GET("/hospitals", directoryHandler.GetAllHospitals)
	router.GET("/hospitals/:hospital_id", directoryHandler.GetHospitalByID)
	router.GET("/hospitals/:hospital_id/services", directoryHandler.GetHospitalServices)

	router.GET("/holidays", calendarHandler.GetHolidaysBetween)
	router.GET("/holidays/check", calendarHandler.CheckHoliday)
	router.GET("/holidays/connectivity", calendarHandler.TestConnectivity)
	router.GET("/holidays/:year/:month", calendarHandler.GetHolidaysForMonth)
	router.POST("/holidays/sync/:year", calendarHandler.SyncYear)

	router.POST("/absences", absenceHandler.CreateAbsence)
	router.GET("/absences/:absence_id", absenceHandler.GetAbsenceByID)
	router.PUT("/absences/:absence_id", absenceHandler.UpdateAbsence)
	router.DELETE("/absences/:absence_id", absenceHandler.DeleteAbsence)
	router.GET("/doctors/:doctor_id/absences", absenceHandler.GetDoctorAbsences)
	router.GET("/doctors/:doctor_id/absent", absenceHandler.CheckDoctorAbsent)

	router.POST("/windows/generate", availabilityHandler.GenerateWindows)
	router.POST("/windows", availabilityHandler.CreateWindow)
	router.GET("/windows", availabilityHandler.SearchWindows)
	router.GET("/windows/:window_id", availabilityHandler.GetWindowByID)
	router.PUT("/windows/:window_id", availabilityHandler.UpdateWindow)
	router.DELETE("/windows/:window_id", availabilityHandler.DeleteWindow)
	router.PUT("/windows/:window_id/status", availabilityHandler.ChangeWindowStatus)
	router.POST("/windows/mark_holidays", availabilityHandler.MarkHolidayUnavailability)
	router.GET("/doctors/:doctor_id/planning", availabilityHandler.GetDoctorPlanning)
	router.GET("/doctors/:doctor_id/planning/statistics", availabilityHandler.GetDoctorStatistics)
	router.GET("/doctors/:doctor_id/planning/coherence", availabilityHandler.CheckCoherence)
	router.GET("/doctors/:doctor_id/availability", availabilityHandler.CheckDoctorAvailability)

	router.POST("/slots/generate", slotHandler.GenerateMonthlySlots)
	router.GET("/slots/available", slotHandler.GetAvailableSlots)
	router.GET("/slots/available/count", slotHandler.CountAvailableSlots)
	router.GET("/slots/:slot_id/free", slotHandler.CheckSlotFree)
	router.POST("/slots/:slot_id/reserve", appointmentHandler.ReserveSlot)
	router.POST("/slots/:slot_id/release", appointmentHandler.ReleaseSlot)

	router.POST("/appointments", appointmentHandler.CreateAppointment)
	router.GET("/appointments/:appointment_id", appointmentHandler.GetAppointmentByID)
	router.PUT("/appointments/:appointment_id", appointmentHandler.UpdateAppointment)
	router.DELETE("/appointments/:appointment_id", appointmentHandler.DeleteAppointment)
	router.POST("/appointments/:appointment_id/confirm", appointmentHandler.ConfirmAppointment)
	router.POST("/appointments/:appointment_id/start", appointmentHandler.StartAppointment)
	router.POST("/appointments/:appointment_id/complete", appointmentHandler.CompleteAppointment)
	router.POST("/appointments/:appointment_id/cancel", appointmentHandler.CancelAppointment)
	router.POST("/appointments/:appointment_id/reschedule", appointmentHandler.RescheduleAppointment)
	router.PUT("/appointments/:appointment_id/schedule", appointmentHandler.UpdateAppointmentSchedule)
	router.GET("/appointments/status/:status", appointmentHandler.GetAppointmentsByStatus)
	router.GET("/appointments/urgent", appointmentHandler.GetUrgentAppointments)
	router.GET("/appointments/day", appointmentHandler.GetAppointmentsForDay)
	router.GET("/appointments/overdue", appointmentHandler.GetOverdueAppointments)
	router.GET("/patients/:patient_id/appointments", appointmentHandler.GetPatientAppointments)
	router.GET("/doctors/:doctor_id/appointments", appointmentHandler.GetDoctorAppointments)
	router.GET("/doctors/:doctor_id/bookable", appointmentHandler.CheckDoctorAvailable)
}

package services

import (
	"SanteSenegal/models"
	"SanteSenegal/repositories"
	"SanteSenegal/utils"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSlotFixture() (*SlotService, *fakeSlotStore, *fakeWindowStore, *fakeAbsenceStore, *fakeCalendar) {
	slots := newFakeSlotStore()
	windows := newFakeWindowStore()
	absences := newFakeAbsenceStore()
	directory := newFakeDirectory()
	calendar := newFakeCalendar()
	directory.addDoctor(1)
	directory.addHospital(1, models.HospitalActive)
	svc := NewSlotService(slots, windows, absences, directory, calendar)
	return svc, slots, windows, absences, calendar
}

// nextWorkday returns the first weekday at least two days ahead, inside the
// one-month generation horizon.
func nextWorkday() string {
	day := time.Now().AddDate(0, 0, 2)
	for utils.IsWeekend(day) {
		day = day.AddDate(0, 0, 1)
	}
	return utils.FormatDate(day)
}

func TestGenerateMonthlySubdividesWindows(t *testing.T) {
	svc, slots, windows, _, _ := newSlotFixture()
	ctx := context.Background()
	date := nextWorkday()

	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: date, StartTime: "09:00", EndTime: "13:00", Status: models.WindowAvailable,
	}))

	created, err := svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 8, created)

	doctorID := int64(1)
	available, err := slots.FindAvailable(ctx, repositories.SlotFilter{DoctorID: &doctorID, Date: date})
	require.NoError(t, err)
	require.Len(t, available, 8)
	assert.Equal(t, "09:00", available[0].StartTime)
	assert.Equal(t, "09:30", available[0].EndTime)
	assert.Equal(t, "12:30", available[7].StartTime)
	assert.Equal(t, "13:00", available[7].EndTime)
}

func TestGenerateMonthlyIsIdempotent(t *testing.T) {
	svc, _, windows, _, _ := newSlotFixture()
	ctx := context.Background()

	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: nextWorkday(), StartTime: "09:00", EndTime: "11:00", Status: models.WindowAvailable,
	}))

	created, err := svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, created)

	created, err = svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestGenerateMonthlyDropsPartialStep(t *testing.T) {
	svc, _, windows, _, _ := newSlotFixture()
	ctx := context.Background()

	// 09:00-10:15 holds two full steps; the trailing 15 minutes are dropped.
	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: nextWorkday(), StartTime: "09:00", EndTime: "10:15", Status: models.WindowAvailable,
	}))

	created, err := svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, created)
}

func TestGenerateMonthlySkipsHolidaysAndAbsences(t *testing.T) {
	svc, _, windows, absences, calendar := newSlotFixture()
	ctx := context.Background()
	date := nextWorkday()

	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: date, StartTime: "09:00", EndTime: "12:00", Status: models.WindowAvailable,
	}))
	calendar.addHoliday(date, "Tabaski")

	created, err := svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)

	delete(calendar.holidays, date)
	require.NoError(t, absences.Create(ctx, &models.Absence{
		DoctorID: 1, StartDate: date, EndDate: date, Reason: models.AbsenceAnnualLeave,
	}))

	created, err = svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestGenerateMonthlyIgnoresOtherHospitals(t *testing.T) {
	svc, _, windows, _, _ := newSlotFixture()
	ctx := context.Background()

	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 9,
		Date: nextWorkday(), StartTime: "09:00", EndTime: "12:00", Status: models.WindowAvailable,
	}))

	created, err := svc.GenerateMonthly(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, created)
}

func TestIsSlotFree(t *testing.T) {
	svc, slots, _, _, _ := newSlotFixture()
	ctx := context.Background()

	slot := slots.addSlot(1, "2026-09-07", "09:00", "09:30")

	free, err := svc.IsSlotFree(ctx, slot.ID)
	require.NoError(t, err)
	assert.True(t, free)

	appointmentID := int64(5)
	_, err = slots.Reserve(ctx, slot.ID, appointmentID, "09:30")
	require.NoError(t, err)

	free, err = svc.IsSlotFree(ctx, slot.ID)
	require.NoError(t, err)
	assert.False(t, free)

	// Missing slots are reported as not free, not as errors.
	free, err = svc.IsSlotFree(ctx, 999)
	require.NoError(t, err)
	assert.False(t, free)
}

package services

import (
	"SanteSenegal/models"
	"SanteSenegal/utils"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAbsenceFixture() (*AbsenceService, *fakeAbsenceStore, *fakeWindowStore) {
	absences := newFakeAbsenceStore()
	directory := newFakeDirectory()
	directory.addDoctor(1)
	windows := newFakeWindowStore()
	planning := NewAvailabilityService(windows, absences, directory, newFakeCalendar())
	return NewAbsenceService(absences, directory, planning), absences, windows
}

func TestCreateAbsence(t *testing.T) {
	svc, _, _ := newAbsenceFixture()
	ctx := context.Background()

	absence := &models.Absence{
		DoctorID: 1, StartDate: "2026-09-07", EndDate: "2026-09-11",
		Reason: models.AbsenceAnnualLeave,
	}
	require.NoError(t, svc.Create(ctx, absence))
	assert.NotZero(t, absence.ID)
}

func TestCreateAbsenceMarksPlanning(t *testing.T) {
	svc, _, windows := newAbsenceFixture()
	ctx := context.Background()

	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: "2026-09-08", StartTime: "09:00", EndTime: "12:00", Status: models.WindowAvailable,
	}))
	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: "2026-09-14", StartTime: "09:00", EndTime: "12:00", Status: models.WindowAvailable,
	}))

	require.NoError(t, svc.Create(ctx, &models.Absence{
		DoctorID: 1, StartDate: "2026-09-07", EndDate: "2026-09-11",
		Reason: models.AbsenceAnnualLeave,
	}))

	// The window inside the interval flips, the one after stays bookable.
	all := windows.all()
	assert.Equal(t, models.WindowUnavailable, all[0].Status)
	assert.Equal(t, "Absence: CONGE_ANNUEL", all[0].UnavailabilityReason)
	assert.Equal(t, models.WindowAvailable, all[1].Status)
}

func TestCreateAbsenceUnknownDoctor(t *testing.T) {
	svc, _, _ := newAbsenceFixture()

	err := svc.Create(context.Background(), &models.Absence{
		DoctorID: 99, StartDate: "2026-09-07", EndDate: "2026-09-11",
		Reason: models.AbsenceSickness,
	})
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}

func TestCreateAbsenceInvertedInterval(t *testing.T) {
	svc, _, _ := newAbsenceFixture()

	err := svc.Create(context.Background(), &models.Absence{
		DoctorID: 1, StartDate: "2026-09-11", EndDate: "2026-09-07",
		Reason: models.AbsenceMission,
	})
	require.Error(t, err)
	assert.True(t, utils.IsValidation(err))
}

func TestIsAbsentCoversInterval(t *testing.T) {
	svc, absences, _ := newAbsenceFixture()
	ctx := context.Background()

	require.NoError(t, absences.Create(ctx, &models.Absence{
		DoctorID: 1, StartDate: "2026-09-07", EndDate: "2026-09-11",
		Reason: models.AbsenceTraining,
	}))

	for date, want := range map[string]bool{
		"2026-09-06": false,
		"2026-09-07": true,
		"2026-09-09": true,
		"2026-09-11": true,
		"2026-09-12": false,
	} {
		absent, err := svc.IsAbsent(ctx, 1, date)
		require.NoError(t, err)
		assert.Equal(t, want, absent, date)
	}
}

func TestDeleteAbsenceNotFound(t *testing.T) {
	svc, _, _ := newAbsenceFixture()

	err := svc.Delete(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, utils.IsNotFound(err))
}

func TestUpdateAbsence(t *testing.T) {
	svc, absences, _ := newAbsenceFixture()
	ctx := context.Background()

	original := &models.Absence{
		DoctorID: 1, StartDate: "2026-09-07", EndDate: "2026-09-11",
		Reason: models.AbsenceAnnualLeave,
	}
	require.NoError(t, absences.Create(ctx, original))

	updated, err := svc.Update(ctx, original.ID, &models.Absence{
		StartDate: "2026-09-08", EndDate: "2026-09-10",
		Reason: models.AbsenceSickness, Comment: "prolongation",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-09-08", updated.StartDate)
	assert.Equal(t, models.AbsenceSickness, updated.Reason)
	assert.Equal(t, "prolongation", updated.Comment)
}

func TestUpdateAbsenceMarksExtendedInterval(t *testing.T) {
	svc, absences, windows := newAbsenceFixture()
	ctx := context.Background()

	original := &models.Absence{
		DoctorID: 1, StartDate: "2026-09-07", EndDate: "2026-09-08",
		Reason: models.AbsenceMission,
	}
	require.NoError(t, absences.Create(ctx, original))

	require.NoError(t, windows.Create(ctx, &models.AvailabilityWindow{
		DoctorID: 1, ServiceID: 1, HospitalID: 1,
		Date: "2026-09-10", StartTime: "09:00", EndTime: "12:00", Status: models.WindowAvailable,
	}))

	_, err := svc.Update(ctx, original.ID, &models.Absence{
		StartDate: "2026-09-07", EndDate: "2026-09-11",
		Reason: models.AbsenceMission,
	})
	require.NoError(t, err)

	all := windows.all()
	assert.Equal(t, models.WindowUnavailable, all[0].Status)
	assert.Equal(t, "Absence: MISSION", all[0].UnavailabilityReason)
}

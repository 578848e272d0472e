package services

import (
	"SanteSenegal/models"
	"SanteSenegal/repositories"
	"SanteSenegal/utils"
	"context"
	"fmt"
	"sort"
	"time"
)

// In-memory fakes for the store interfaces. They mirror the SQL predicates
// of the real repositories closely enough for the service logic under test.

type fakeDirectory struct {
	doctors   map[int64]*models.DoctorProfile
	patients  map[int64]*models.PatientProfile
	hospitals map[int64]*models.Hospital
	services  map[int64]*models.Service
}

func newFakeDirectory() *fakeDirectory {
	return &fakeDirectory{
		doctors:   make(map[int64]*models.DoctorProfile),
		patients:  make(map[int64]*models.PatientProfile),
		hospitals: make(map[int64]*models.Hospital),
		services:  make(map[int64]*models.Service),
	}
}

func (f *fakeDirectory) addDoctor(id int64) {
	f.doctors[id] = &models.DoctorProfile{
		UserID: id,
		User:   models.User{ID: id, Role: models.RoleDoctor, FirstName: "Awa", LastName: "Ndiaye", Email: fmt.Sprintf("doctor%d@example.sn", id)},
	}
}

func (f *fakeDirectory) addPatient(id int64) {
	f.patients[id] = &models.PatientProfile{
		UserID: id,
		User:   models.User{ID: id, Role: models.RolePatient, FirstName: "Moussa", LastName: "Diop", Email: fmt.Sprintf("patient%d@example.sn", id)},
	}
}

func (f *fakeDirectory) addHospital(id int64, status models.HospitalStatus) {
	f.hospitals[id] = &models.Hospital{ID: id, Name: "Hopital Test", Status: status}
}

func (f *fakeDirectory) addService(id int64, status models.ServiceStatus) {
	f.services[id] = &models.Service{ID: id, HospitalID: 1, Name: "Service Test", Status: status}
}

func (f *fakeDirectory) GetDoctor(ctx context.Context, id int64) (*models.DoctorProfile, error) {
	if d, ok := f.doctors[id]; ok {
		return d, nil
	}
	return nil, utils.NotFoundf("doctor %d", id)
}

func (f *fakeDirectory) GetPatient(ctx context.Context, id int64) (*models.PatientProfile, error) {
	if p, ok := f.patients[id]; ok {
		return p, nil
	}
	return nil, utils.NotFoundf("patient %d", id)
}

func (f *fakeDirectory) GetHospital(ctx context.Context, id int64) (*models.Hospital, error) {
	if h, ok := f.hospitals[id]; ok {
		return h, nil
	}
	return nil, utils.NotFoundf("hospital %d", id)
}

func (f *fakeDirectory) GetService(ctx context.Context, id int64) (*models.Service, error) {
	if s, ok := f.services[id]; ok {
		return s, nil
	}
	return nil, utils.NotFoundf("service %d", id)
}

type fakeCalendar struct {
	holidays map[string]models.Holiday
}

func newFakeCalendar() *fakeCalendar {
	return &fakeCalendar{holidays: make(map[string]models.Holiday)}
}

func (f *fakeCalendar) addHoliday(date, name string) {
	f.holidays[date] = models.Holiday{Date: date, Name: name, AffectsAvailability: true}
}

func (f *fakeCalendar) IsHoliday(ctx context.Context, date string) (bool, error) {
	_, ok := f.holidays[date]
	return ok, nil
}

func (f *fakeCalendar) HolidaysBetween(ctx context.Context, start, end string) ([]models.Holiday, error) {
	var out []models.Holiday
	for date, h := range f.holidays {
		if date >= start && date <= end {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type fakeAbsenceStore struct {
	absences map[int64]*models.Absence
	nextID   int64
}

func newFakeAbsenceStore() *fakeAbsenceStore {
	return &fakeAbsenceStore{absences: make(map[int64]*models.Absence), nextID: 1}
}

func (f *fakeAbsenceStore) Create(ctx context.Context, absence *models.Absence) error {
	absence.ID = f.nextID
	f.nextID++
	copied := *absence
	f.absences[absence.ID] = &copied
	return nil
}

func (f *fakeAbsenceStore) Save(ctx context.Context, absence *models.Absence) error {
	copied := *absence
	f.absences[absence.ID] = &copied
	return nil
}

func (f *fakeAbsenceStore) Delete(ctx context.Context, id int64) error {
	delete(f.absences, id)
	return nil
}

func (f *fakeAbsenceStore) FindByID(ctx context.Context, id int64) (*models.Absence, error) {
	if a, ok := f.absences[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAbsenceStore) ExistsCovering(ctx context.Context, doctorID int64, date string) (bool, error) {
	for _, a := range f.absences {
		if a.DoctorID == doctorID && a.StartDate <= date && a.EndDate >= date {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAbsenceStore) FindForDoctorBetween(ctx context.Context, doctorID int64, start, end string) ([]models.Absence, error) {
	var out []models.Absence
	for _, a := range f.absences {
		if a.DoctorID == doctorID && a.EndDate >= start && a.StartDate <= end {
			out = append(out, *a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate < out[j].StartDate })
	return out, nil
}

type fakeWindowStore struct {
	windows map[int64]*models.AvailabilityWindow
	nextID  int64
}

func newFakeWindowStore() *fakeWindowStore {
	return &fakeWindowStore{windows: make(map[int64]*models.AvailabilityWindow), nextID: 1}
}

func (f *fakeWindowStore) Create(ctx context.Context, window *models.AvailabilityWindow) error {
	window.ID = f.nextID
	f.nextID++
	copied := *window
	f.windows[window.ID] = &copied
	return nil
}

func (f *fakeWindowStore) Save(ctx context.Context, window *models.AvailabilityWindow) error {
	if window.ID == 0 {
		return f.Create(ctx, window)
	}
	copied := *window
	f.windows[window.ID] = &copied
	return nil
}

func (f *fakeWindowStore) SaveAll(ctx context.Context, windows []models.AvailabilityWindow) error {
	for i := range windows {
		if err := f.Save(ctx, &windows[i]); err != nil {
			return err
		}
	}
	return nil
}

func (f *fakeWindowStore) Delete(ctx context.Context, id int64) error {
	delete(f.windows, id)
	return nil
}

func (f *fakeWindowStore) FindByID(ctx context.Context, id int64) (*models.AvailabilityWindow, error) {
	if w, ok := f.windows[id]; ok {
		copied := *w
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeWindowStore) all() []models.AvailabilityWindow {
	var out []models.AvailabilityWindow
	for _, w := range f.windows {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out
}

func (f *fakeWindowStore) FindByDoctor(ctx context.Context, doctorID int64) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowStore) FindConflicting(ctx context.Context, doctorID int64, date, start, end string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if w.DoctorID == doctorID && w.Date == date && w.Status != models.WindowUnavailable &&
			w.StartTime < end && w.EndTime > start {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowStore) FindByDoctorBetween(ctx context.Context, doctorID int64, start, end string) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if w.DoctorID == doctorID && w.Date >= start && w.Date <= end {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowStore) FindByDoctorBetweenAndStatus(ctx context.Context, doctorID int64, start, end string, status models.WindowStatus) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if w.DoctorID == doctorID && w.Date >= start && w.Date <= end && w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowStore) FindByDoctorDateAndStatus(ctx context.Context, doctorID int64, date string, status models.WindowStatus) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if w.DoctorID == doctorID && w.Date == date && w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowStore) FindByDateAndStatus(ctx context.Context, date string, status models.WindowStatus) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if w.Date == date && w.Status == status {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeWindowStore) ExistsCoveringAvailable(ctx context.Context, doctorID int64, date, start, end string) (bool, error) {
	for _, w := range f.all() {
		if w.DoctorID == doctorID && w.Date == date && w.Status == models.WindowAvailable &&
			w.StartTime <= start && w.EndTime >= end {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeWindowStore) Search(ctx context.Context, filter repositories.WindowFilter) ([]models.AvailabilityWindow, error) {
	var out []models.AvailabilityWindow
	for _, w := range f.all() {
		if filter.DoctorID != nil && w.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.ServiceID != nil && w.ServiceID != *filter.ServiceID {
			continue
		}
		if filter.HospitalID != nil && w.HospitalID != *filter.HospitalID {
			continue
		}
		if filter.StartDate != "" && w.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && w.Date > filter.EndDate {
			continue
		}
		if filter.Status != "" && w.Status != filter.Status {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}

type fakeSlotStore struct {
	slots       map[int64]*models.Slot
	nextID      int64
	reserveFail bool
}

func newFakeSlotStore() *fakeSlotStore {
	return &fakeSlotStore{slots: make(map[int64]*models.Slot), nextID: 1}
}

func (f *fakeSlotStore) addSlot(doctorID int64, date, start, end string) *models.Slot {
	slot := &models.Slot{
		ID: f.nextID, DoctorID: doctorID, ServiceID: 1, HospitalID: 1,
		Date: date, StartTime: start, EndTime: end,
	}
	f.nextID++
	f.slots[slot.ID] = slot
	return slot
}

func (f *fakeSlotStore) Exists(ctx context.Context, doctorID int64, date, startTime string) (bool, error) {
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Date == date && s.StartTime == startTime {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeSlotStore) Create(ctx context.Context, slot *models.Slot) error {
	slot.ID = f.nextID
	f.nextID++
	copied := *slot
	f.slots[slot.ID] = &copied
	return nil
}

func (f *fakeSlotStore) FindByID(ctx context.Context, id int64) (*models.Slot, error) {
	if s, ok := f.slots[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeSlotStore) Reserve(ctx context.Context, slotID, appointmentID int64, endTime string) (bool, error) {
	if f.reserveFail {
		return false, nil
	}
	s, ok := f.slots[slotID]
	if !ok || s.Reserved {
		return false, nil
	}
	s.Reserved = true
	s.AppointmentID = &appointmentID
	s.EndTime = endTime
	return true, nil
}

func (f *fakeSlotStore) Release(ctx context.Context, slotID int64, endTime string) error {
	if s, ok := f.slots[slotID]; ok {
		s.Reserved = false
		s.AppointmentID = nil
		s.EndTime = endTime
	}
	return nil
}

func (f *fakeSlotStore) FindMatchingFree(ctx context.Context, doctorID int64, date, startTime string) (*models.Slot, error) {
	for _, s := range f.slots {
		if s.DoctorID == doctorID && s.Date == date && s.StartTime == startTime && !s.Reserved {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) FindByAppointment(ctx context.Context, appointmentID int64) (*models.Slot, error) {
	for _, s := range f.slots {
		if s.AppointmentID != nil && *s.AppointmentID == appointmentID {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotStore) FindAvailable(ctx context.Context, filter repositories.SlotFilter) ([]models.Slot, error) {
	var out []models.Slot
	for _, s := range f.slots {
		if s.Reserved {
			continue
		}
		if filter.DoctorID != nil && s.DoctorID != *filter.DoctorID {
			continue
		}
		if filter.Date != "" && s.Date != filter.Date {
			continue
		}
		if filter.StartDate != "" && s.Date < filter.StartDate {
			continue
		}
		if filter.EndDate != "" && s.Date > filter.EndDate {
			continue
		}
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].StartTime < out[j].StartTime
	})
	return out, nil
}

func (f *fakeSlotStore) CountAvailable(ctx context.Context, filter repositories.SlotFilter) (int64, error) {
	slots, err := f.FindAvailable(ctx, filter)
	return int64(len(slots)), err
}

type fakeAppointmentStore struct {
	appointments map[int64]*models.Appointment
	nextID       int64
}

func newFakeAppointmentStore() *fakeAppointmentStore {
	return &fakeAppointmentStore{appointments: make(map[int64]*models.Appointment), nextID: 1}
}

func (f *fakeAppointmentStore) Create(ctx context.Context, appointment *models.Appointment) error {
	appointment.ID = f.nextID
	f.nextID++
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeAppointmentStore) Save(ctx context.Context, appointment *models.Appointment) error {
	copied := *appointment
	f.appointments[appointment.ID] = &copied
	return nil
}

func (f *fakeAppointmentStore) Delete(ctx context.Context, id int64) error {
	delete(f.appointments, id)
	return nil
}

func (f *fakeAppointmentStore) FindByID(ctx context.Context, id int64) (*models.Appointment, error) {
	if a, ok := f.appointments[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeAppointmentStore) all() []models.Appointment {
	var out []models.Appointment
	for _, a := range f.appointments {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DateTime.Before(out[j].DateTime) })
	return out
}

func (f *fakeAppointmentStore) FindBetween(ctx context.Context, from, to time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if !a.DateTime.Before(from) && a.DateTime.Before(to) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindByPatient(ctx context.Context, patientID int64) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindByDoctor(ctx context.Context, doctorID int64) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.DoctorID == doctorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindByService(ctx context.Context, serviceID int64) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.ServiceID == serviceID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindByHospital(ctx context.Context, hospitalID int64) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.HospitalID == hospitalID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindByStatus(ctx context.Context, status models.AppointmentStatus) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.Status == status {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindByUrgency(ctx context.Context, levels []models.UrgencyLevel) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		for _, l := range levels {
			if a.UrgencyLevel == l {
				out = append(out, a)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindUpcomingByPatient(ctx context.Context, patientID int64, now time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.PatientID == patientID && a.DateTime.After(now) && isActive(a.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindUpcomingByDoctor(ctx context.Context, doctorID int64, now time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.DoctorID == doctorID && a.DateTime.After(now) && isActive(a.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) FindOverdue(ctx context.Context, now time.Time) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range f.all() {
		if a.DateTime.Before(now) && isActive(a.Status) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeAppointmentStore) CountByDoctorBetween(ctx context.Context, doctorID int64, from, to time.Time) (int64, error) {
	var count int64
	for _, a := range f.all() {
		if a.DoctorID == doctorID && !a.DateTime.Before(from) && a.DateTime.Before(to) {
			count++
		}
	}
	return count, nil
}

func isActive(s models.AppointmentStatus) bool {
	return s == models.AppointmentScheduled || s == models.AppointmentConfirmed
}

type fakeLocker struct {
	denyAcquire bool
	acquired    []string
	released    []string
}

func (f *fakeLocker) Acquire(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	if f.denyAcquire {
		return false, nil
	}
	f.acquired = append(f.acquired, key)
	return true, nil
}

func (f *fakeLocker) Release(ctx context.Context, key, value string) error {
	f.released = append(f.released, key)
	return nil
}

type fakeNotifier struct {
	sent    []string
	failFor string
}

func (f *fakeNotifier) Send(to, subject, body string) error {
	if f.failFor != "" && to == f.failFor {
		return fmt.Errorf("delivery failed for %s", to)
	}
	f.sent = append(f.sent, to)
	return nil
}

var (
	_ Directory        = (*fakeDirectory)(nil)
	_ HolidayCalendar  = (*fakeCalendar)(nil)
	_ AbsenceStore     = (*fakeAbsenceStore)(nil)
	_ WindowStore      = (*fakeWindowStore)(nil)
	_ SlotStore        = (*fakeSlotStore)(nil)
	_ AppointmentStore = (*fakeAppointmentStore)(nil)
	_ Locker           = (*fakeLocker)(nil)
	_ Notifier         = (*fakeNotifier)(nil)
)

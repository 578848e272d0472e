package services

import (
	"SanteSenegal/models"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHolidayStore struct {
	holidays map[string]*models.Holiday
	nextID   int64
}

func newFakeHolidayStore() *fakeHolidayStore {
	return &fakeHolidayStore{holidays: make(map[string]*models.Holiday), nextID: 1}
}

func holidayKey(date, source string) string {
	return date + "|" + source
}

func (f *fakeHolidayStore) ExistsOnDate(ctx context.Context, date string) (bool, error) {
	for _, h := range f.holidays {
		if h.Date == date && h.AffectsAvailability {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeHolidayStore) FindBetween(ctx context.Context, start, end string) ([]models.Holiday, error) {
	var out []models.Holiday
	for _, h := range f.holidays {
		if h.Date >= start && h.Date <= end && h.AffectsAvailability {
			out = append(out, *h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeHolidayStore) FindByDateAndSource(ctx context.Context, date, source string) (*models.Holiday, error) {
	if h, ok := f.holidays[holidayKey(date, source)]; ok {
		copied := *h
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeHolidayStore) Create(ctx context.Context, holiday *models.Holiday) error {
	holiday.ID = f.nextID
	f.nextID++
	copied := *holiday
	f.holidays[holidayKey(holiday.Date, holiday.Source)] = &copied
	return nil
}

func (f *fakeHolidayStore) DeleteBySourceAndYear(ctx context.Context, source string, year int) error {
	start := fmt.Sprintf("%d-01-01", year)
	end := fmt.Sprintf("%d-12-31", year)
	for key, h := range f.holidays {
		if h.Source == source && h.Date >= start && h.Date <= end {
			delete(f.holidays, key)
		}
	}
	return nil
}

var _ HolidayStore = (*fakeHolidayStore)(nil)

func TestSyncYearImportsProviderHolidays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/PublicHolidays/2026/SN", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[
			{"date":"2026-01-01","localName":"Jour de l'An","name":"New Year's Day","countryCode":"SN","global":true},
			{"date":"2026-03-20","localName":"Korité","name":"End of Ramadan","countryCode":"SN","global":true},
			{"date":"2026-04-04","localName":"Fête de l'Indépendance","name":"Independence Day","countryCode":"SN","global":true}
		]`)
	}))
	defer server.Close()

	store := newFakeHolidayStore()
	svc := NewCalendarService(store, server.URL, "SN")

	require.NoError(t, svc.SyncYear(context.Background(), 2026))
	assert.Len(t, store.holidays, 3)

	korite, err := store.FindByDateAndSource(context.Background(), "2026-03-20", "date-nager")
	require.NoError(t, err)
	require.NotNil(t, korite)
	assert.Equal(t, models.HolidayReligious, korite.Type)
	assert.True(t, korite.AffectsAvailability)
	assert.Equal(t, "SN_2026-03-20", korite.ExternalID)

	independence, err := store.FindByDateAndSource(context.Background(), "2026-04-04", "date-nager")
	require.NoError(t, err)
	require.NotNil(t, independence)
	assert.Equal(t, models.HolidayNational, independence.Type)
}

func TestSyncYearReplacesPreviousImport(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		if calls == 1 {
			fmt.Fprint(w, `[{"date":"2026-01-01","localName":"Jour de l'An","name":"New Year's Day","countryCode":"SN","global":true}]`)
			return
		}
		fmt.Fprint(w, `[{"date":"2026-05-01","localName":"Fête du Travail","name":"Labour Day","countryCode":"SN","global":true}]`)
	}))
	defer server.Close()

	store := newFakeHolidayStore()
	svc := NewCalendarService(store, server.URL, "SN")
	ctx := context.Background()

	require.NoError(t, svc.SyncYear(ctx, 2026))
	require.NoError(t, svc.SyncYear(ctx, 2026))

	// The second sync wiped the first import before inserting.
	assert.Len(t, store.holidays, 1)
	replaced, err := store.FindByDateAndSource(ctx, "2026-05-01", "date-nager")
	require.NoError(t, err)
	assert.NotNil(t, replaced)
}

func TestSyncYearSeedsFallbackOnProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	store := newFakeHolidayStore()
	svc := NewCalendarService(store, server.URL, "SN")
	ctx := context.Background()

	require.NoError(t, svc.SyncYear(ctx, 2026))
	assert.Len(t, store.holidays, 6)

	newYear, err := store.FindByDateAndSource(ctx, "2026-01-01", "defaut")
	require.NoError(t, err)
	require.NotNil(t, newYear)
	assert.Equal(t, "Jour de l'An", newYear.Name)
	assert.True(t, newYear.AffectsAvailability)

	christmas, err := store.FindByDateAndSource(ctx, "2026-12-25", "defaut")
	require.NoError(t, err)
	require.NotNil(t, christmas)
	assert.Equal(t, models.HolidayReligious, christmas.Type)
}

func TestSyncYearSeedsFallbackOnEmptyPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	store := newFakeHolidayStore()
	svc := NewCalendarService(store, server.URL, "SN")

	require.NoError(t, svc.SyncYear(context.Background(), 2026))
	assert.Len(t, store.holidays, 6)
}

func TestHolidaysForMonth(t *testing.T) {
	store := newFakeHolidayStore()
	svc := NewCalendarService(store, "http://localhost", "SN")
	ctx := context.Background()

	require.NoError(t, store.Create(ctx, &models.Holiday{
		Date: "2026-04-04", Name: "Fête de l'Indépendance", Source: "defaut", AffectsAvailability: true,
	}))
	require.NoError(t, store.Create(ctx, &models.Holiday{
		Date: "2026-05-01", Name: "Fête du Travail", Source: "defaut", AffectsAvailability: true,
	}))

	april, err := svc.HolidaysForMonth(ctx, 2026, 4)
	require.NoError(t, err)
	require.Len(t, april, 1)
	assert.Equal(t, "2026-04-04", april[0].Date)
}

func TestClassifyHoliday(t *testing.T) {
	tests := []struct {
		name string
		want models.HolidayType
	}{
		{"Korité", models.HolidayReligious},
		{"Tabaski", models.HolidayReligious},
		{"Grand Magal de Touba", models.HolidayReligious},
		{"Lundi de Pâques", models.HolidayReligious},
		{"Noël", models.HolidayReligious},
		{"Fête régionale de Casamance", models.HolidayRegional},
		{"Fête locale de Saint-Louis", models.HolidayRegional},
		{"Fête de l'Indépendance", models.HolidayNational},
		{"Jour de l'An", models.HolidayNational},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, classifyHoliday(tt.name), tt.name)
	}
}

func TestConnectivityProbe(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/CountryInfo/SN", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"commonName":"Senegal"}`)
	}))
	defer server.Close()

	svc := NewCalendarService(newFakeHolidayStore(), server.URL, "SN")
	assert.NoError(t, svc.TestConnectivity(context.Background()))

	broken := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer broken.Close()

	svc = NewCalendarService(newFakeHolidayStore(), broken.URL, "SN")
	assert.Error(t, svc.TestConnectivity(context.Background()))
}

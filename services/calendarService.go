package services

import (
	"SanteSenegal/models"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"strings"
	"time"
)

const (
	// sourceDateNager tags holidays imported from the date.nager.at API.
	sourceDateNager = "date-nager"
	// sourceDefault tags the static fallback list used when the API is
	// unreachable or returns nothing.
	sourceDefault = "defaut"
)

// nagerHoliday mirrors one entry of the date.nager.at public holiday payload.
type nagerHoliday struct {
	Date        string   `json:"date"`
	LocalName   string   `json:"localName"`
	Name        string   `json:"name"`
	CountryCode string   `json:"countryCode"`
	Global      bool     `json:"global"`
	Types       []string `json:"types"`
}

// CalendarService keeps the holiday table in sync with the external
// provider and answers holiday lookups for the availability engine.
type CalendarService struct {
	holidays    HolidayStore
	client      *http.Client
	baseURL     string
	countryCode string
}

func NewCalendarService(holidays HolidayStore, baseURL, countryCode string) *CalendarService {
	return &CalendarService{
		holidays: holidays,
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{Timeout: 5 * time.Second}).DialContext,
			},
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		countryCode: countryCode,
	}
}

// IsHoliday reports whether the date is an availability-affecting holiday.
func (s *CalendarService) IsHoliday(ctx context.Context, date string) (bool, error) {
	return s.holidays.ExistsOnDate(ctx, date)
}

// HolidaysBetween returns availability-affecting holidays in the inclusive
// date range.
func (s *CalendarService) HolidaysBetween(ctx context.Context, start, end string) ([]models.Holiday, error) {
	return s.holidays.FindBetween(ctx, start, end)
}

// HolidaysForMonth returns the availability-affecting holidays of one
// calendar month.
func (s *CalendarService) HolidaysForMonth(ctx context.Context, year int, month time.Month) ([]models.Holiday, error) {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return s.holidays.FindBetween(ctx, first.Format("2006-01-02"), last.Format("2006-01-02"))
}

// SyncCurrentAndNext refreshes holidays for the current and the next year.
// Failures are logged, never propagated: a stale calendar must not block
// startup or scheduling.
func (s *CalendarService) SyncCurrentAndNext(ctx context.Context) {
	year := time.Now().Year()
	for _, y := range []int{year, year + 1} {
		if err := s.SyncYear(ctx, y); err != nil {
			log.Printf("Holiday sync failed for %d: %v", y, err)
		}
	}
}

// SyncYear replaces the provider-sourced holidays of one year with a fresh
// fetch. When the provider fails or returns nothing, the static national
// list is seeded instead so availability decisions never run against an
// empty calendar.
func (s *CalendarService) SyncYear(ctx context.Context, year int) error {
	fetched, err := s.fetchYear(ctx, year)
	if err != nil || len(fetched) == 0 {
		if err != nil {
			log.Printf("Failed to fetch holidays for %d: %v", year, err)
		}
		return s.seedFallback(ctx, year)
	}

	if err := s.holidays.DeleteBySourceAndYear(ctx, sourceDateNager, year); err != nil {
		return err
	}

	for _, nh := range fetched {
		existing, err := s.holidays.FindByDateAndSource(ctx, nh.Date, sourceDateNager)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		holiday := &models.Holiday{
			Date:                nh.Date,
			Name:                nh.LocalName,
			Description:         nh.Name,
			Type:                classifyHoliday(nh.LocalName),
			Recurrent:           nh.Global,
			AffectsAvailability: true,
			Source:              sourceDateNager,
			ExternalID:          fmt.Sprintf("%s_%s", nh.CountryCode, nh.Date),
		}
		if err := s.holidays.Create(ctx, holiday); err != nil {
			return err
		}
	}
	log.Printf("Synced %d holidays for %d from %s", len(fetched), year, sourceDateNager)
	return nil
}

// TestConnectivity probes the provider with a country info request.
func (s *CalendarService) TestConnectivity(ctx context.Context) error {
	url := fmt.Sprintf("%s/CountryInfo/%s", s.baseURL, s.countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build connectivity request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("holiday provider unreachable: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("holiday provider returned status %d", resp.StatusCode)
	}
	return nil
}

func (s *CalendarService) fetchYear(ctx context.Context, year int) ([]nagerHoliday, error) {
	url := fmt.Sprintf("%s/PublicHolidays/%d/%s", s.baseURL, year, s.countryCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build holiday request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday provider returned status %d", resp.StatusCode)
	}

	var holidays []nagerHoliday
	if err := json.NewDecoder(resp.Body).Decode(&holidays); err != nil {
		return nil, fmt.Errorf("failed to decode holiday payload: %w", err)
	}
	return holidays, nil
}

// seedFallback inserts the static national holiday list for the year,
// skipping dates already present for the fallback source.
func (s *CalendarService) seedFallback(ctx context.Context, year int) error {
	type staticHoliday struct {
		month time.Month
		day   int
		name  string
		typ   models.HolidayType
	}
	statics := []staticHoliday{
		{time.January, 1, "Jour de l'An", models.HolidayNational},
		{time.April, 4, "Fête de l'Indépendance", models.HolidayNational},
		{time.May, 1, "Fête du Travail", models.HolidayNational},
		{time.August, 15, "Assomption", models.HolidayReligious},
		{time.November, 1, "Toussaint", models.HolidayReligious},
		{time.December, 25, "Noël", models.HolidayReligious},
	}

	for _, sh := range statics {
		date := time.Date(year, sh.month, sh.day, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		existing, err := s.holidays.FindByDateAndSource(ctx, date, sourceDefault)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		holiday := &models.Holiday{
			Date:                date,
			Name:                sh.name,
			Type:                sh.typ,
			Recurrent:           true,
			AffectsAvailability: true,
			Source:              sourceDefault,
		}
		if err := s.holidays.Create(ctx, holiday); err != nil {
			return err
		}
	}
	log.Printf("Seeded fallback holidays for %d", year)
	return nil
}

// classifyHoliday guesses a holiday type from its local name.
func classifyHoliday(name string) models.HolidayType {
	lower := strings.ToLower(name)
	religious := []string{
		"korité", "tabaski", "magal", "maouloud", "tamkharit",
		"pâques", "ascension", "pentecôte", "assomption", "toussaint", "noël",
	}
	for _, kw := range religious {
		if strings.Contains(lower, kw) {
			return models.HolidayReligious
		}
	}
	for _, kw := range []string{"régional", "regional", "local"} {
		if strings.Contains(lower, kw) {
			return models.HolidayRegional
		}
	}
	return models.HolidayNational
}

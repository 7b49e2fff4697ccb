package holidays

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNagerClientPublicHolidays(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v3/PublicHolidays/2026/RS", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"date":"2026-01-01","localName":"Нова година","name":"New Year's Day","countryCode":"RS"},{"date":"2026-01-07","localName":"Божић","name":"Orthodox Christmas Day"}]`))
	}))
	defer server.Close()

	client := NewNagerClient(server.URL+"/api/v3/", time.Second)
	holidays, err := client.PublicHolidays(context.Background(), 2026, "rs")
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "2026-01-07", holidays[1].Date)
	assert.Equal(t, "Orthodox Christmas Day", holidays[1].Name)
}

func TestNagerClientUpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	_, err := NewNagerClient(server.URL, time.Second).PublicHolidays(context.Background(), 2026, "RS")
	var upstream *UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusServiceUnavailable, upstream.StatusCode)
}

func TestNagerClientRejectsMalformedDates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"date":"01.01.2026"}]`))
	}))
	defer server.Close()

	_, err := NewNagerClient(server.URL, time.Second).PublicHolidays(context.Background(), 2026, "RS")
	require.Error(t, err)
}

func TestStatutoryCalendar2026(t *testing.T) {
	calendar := NewStatutoryCalendar(time.UTC)
	holidays, err := calendar.PublicHolidays(context.Background(), 2026, "RS")
	require.NoError(t, err)

	dates := make([]string, len(holidays))
	for i, h := range holidays {
		dates[i] = h.Date
	}
	// Orthodox Easter falls on 2026-04-12; 2026-02-15 is a Sunday so the
	// statehood holiday extends to Tuesday.
	assert.Equal(t, []string{
		"2026-01-01", "2026-01-02", "2026-01-07",
		"2026-02-15", "2026-02-16", "2026-02-17",
		"2026-04-10", "2026-04-11", "2026-04-12", "2026-04-13",
		"2026-05-01", "2026-05-02", "2026-11-11",
	}, dates)

	assert.True(t, calendar.IsHoliday(time.Date(2026, 4, 13, 9, 0, 0, 0, time.UTC)))
	assert.False(t, calendar.IsHoliday(time.Date(2026, 4, 14, 9, 0, 0, 0, time.UTC)))
}

func TestStatutoryCalendarOnlyKnowsSerbia(t *testing.T) {
	_, err := NewStatutoryCalendar(nil).PublicHolidays(context.Background(), 2026, "HR")
	require.Error(t, err)
}

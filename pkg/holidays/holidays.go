// Package holidays provides sources of public non-working days.
package holidays

import (
	"context"
	"fmt"
)

// PublicHoliday is a single public non-working day.
type PublicHoliday struct {
	Date      string `json:"date"`
	LocalName string `json:"localName"`
	Name      string `json:"name"`
}

// Source resolves the public holidays of a country for a calendar year.
type Source interface {
	Name() string
	PublicHolidays(ctx context.Context, year int, country string) ([]PublicHoliday, error)
}

// UpstreamError reports a non-success response from a remote source.
type UpstreamError struct {
	Source     string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s responded with status %d", e.Source, e.StatusCode)
}

package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/internal/models"
	"github.com/fon-raspored/raspored-api/pkg/attendance"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
)

type stubProfileProvider struct {
	profile *dto.StudentProfileResponse
	err     error
	calls   int
}

func (s *stubProfileProvider) Get(context.Context, string) (*dto.StudentProfileResponse, bool, error) {
	s.calls++
	return s.profile, false, s.err
}

func newReportFixture() (*ReportService, *stubProfileProvider) {
	provider := &stubProfileProvider{profile: &dto.StudentProfileResponse{
		StudentProfile: models.StudentProfile{ID: "user-1", Username: "marko m", FirstName: "Marko", LastName: "Marković", IndexNumber: strPtr("2022/0042")},
		SubjectStats: []attendance.SubjectStat{
			{SubjectID: "alg", SubjectTitle: "Algoritmi", Held: 18, Presence: 16, Absence: 2, AttendancePercentage: 88.8888},
			{SubjectID: "eco", SubjectTitle: "Ekonomija", Held: 9, Presence: 0, Absence: 9},
		},
	}}
	svc := NewReportService(provider, belgrade, nil)
	svc.now = func() time.Time { return time.Date(2026, 4, 20, 23, 30, 0, 0, time.UTC) }
	return svc, provider
}

func TestReportServiceExportCSV(t *testing.T) {
	svc, _ := newReportFixture()

	file, err := svc.Export(context.Background(), "user-1", "")
	require.NoError(t, err)
	assert.Equal(t, "prisustvo_marko_m_2026-04-21.csv", file.Filename)
	assert.Equal(t, "text/csv; charset=utf-8", file.ContentType)

	body := string(bytes.TrimPrefix(file.Body, []byte("\ufeff")))
	lines := strings.Split(strings.TrimSpace(body), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Predmet,Održano,Prisustvo,Odsustvo,Prisustvo (%)", lines[0])
	assert.Equal(t, "Algoritmi,18,16,2,88.9", lines[1])
	assert.Equal(t, "Ekonomija,9,0,9,0.0", lines[2])
}

func TestReportServiceExportBinaryFormats(t *testing.T) {
	svc, _ := newReportFixture()

	pdf, err := svc.Export(context.Background(), "user-1", "PDF")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf.Body, []byte("%PDF")))
	assert.Equal(t, "application/pdf", pdf.ContentType)

	xlsx, err := svc.Export(context.Background(), "user-1", "xlsx")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(xlsx.Body, []byte("PK")))
	assert.True(t, strings.HasSuffix(xlsx.Filename, ".xlsx"))
}

func TestReportServiceExportRejections(t *testing.T) {
	svc, provider := newReportFixture()

	_, err := svc.Export(context.Background(), "user-1", "docx")
	assert.True(t, errors.Is(err, appErrors.ErrValidation))
	assert.Equal(t, 0, provider.calls)

	provider.err = appErrors.Clone(appErrors.ErrNotFound, "student not found")
	_, err = svc.Export(context.Background(), "user-1", "csv")
	assert.True(t, errors.Is(err, appErrors.ErrNotFound))
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "student", sanitizeFilename(""))
	assert.Equal(t, "a-b-c", sanitizeFilename("a/b\\c"))
	assert.Len(t, sanitizeFilename(strings.Repeat("x", 100)), 64)
}

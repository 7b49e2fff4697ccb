package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/fon-raspored/raspored-api/internal/dto"
	"github.com/fon-raspored/raspored-api/pkg/attendance"
	appErrors "github.com/fon-raspored/raspored-api/pkg/errors"
	"github.com/fon-raspored/raspored-api/pkg/export"
)

var reportHeaders = []string{"Predmet", "Održano", "Prisustvo", "Odsustvo", "Prisustvo (%)"}

type profileProvider interface {
	Get(ctx context.Context, userID string) (*dto.StudentProfileResponse, bool, error)
}

// ReportFile is a rendered attendance report ready for download.
type ReportFile struct {
	Filename    string
	ContentType string
	Body        []byte
}

// ReportService renders a student's subject statistics into documents.
type ReportService struct {
	profiles profileProvider
	logger   *zap.Logger
	location *time.Location
	now      func() time.Time
}

// NewReportService constructs a ReportService.
func NewReportService(profiles profileProvider, location *time.Location, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if location == nil {
		location = time.UTC
	}
	return &ReportService{profiles: profiles, logger: logger, location: location, now: time.Now}
}

// Export renders the attendance report of a student as csv, pdf or xlsx.
func (s *ReportService) Export(ctx context.Context, userID, format string) (*ReportFile, error) {
	f, ok := export.ParseFormat(format)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be one of csv, pdf, xlsx")
	}
	renderer, err := export.NewRenderer(f)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported export format")
	}

	profile, _, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	body, err := renderer.Render(buildReportDataset(profile))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}
	s.logger.Info("attendance report exported", zap.String("user_id", userID), zap.String("format", string(f)), zap.Int("bytes", len(body)))

	return &ReportFile{
		Filename:    s.filename(profile.Username, renderer.Extension()),
		ContentType: renderer.ContentType(),
		Body:        body,
	}, nil
}

func (s *ReportService) filename(username, ext string) string {
	day := s.now().In(s.location).Format(attendance.DateLayout)
	return fmt.Sprintf("prisustvo_%s_%s.%s", sanitizeFilename(username), day, ext)
}

func buildReportDataset(profile *dto.StudentProfileResponse) export.Dataset {
	title := strings.TrimSpace(profile.FirstName + " " + profile.LastName)
	if profile.IndexNumber != nil && *profile.IndexNumber != "" {
		title += " (" + *profile.IndexNumber + ")"
	}
	rows := make([][]string, 0, len(profile.SubjectStats))
	for _, stat := range profile.SubjectStats {
		rows = append(rows, []string{
			stat.SubjectTitle,
			strconv.Itoa(stat.Held),
			strconv.Itoa(stat.Presence),
			strconv.Itoa(stat.Absence),
			decimal.NewFromFloat(stat.AttendancePercentage).StringFixed(1),
		})
	}
	return export.Dataset{
		Title:   "Evidencija prisustva - " + title,
		Headers: reportHeaders,
		Rows:    rows,
	}
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "student"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 64 {
		return result[:64]
	}
	return result
}

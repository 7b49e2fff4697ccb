package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func checkIns(termID string, n int) []AttendanceRecord {
	records := make([]AttendanceRecord, n)
	for i := range records {
		records[i] = AttendanceRecord{StudentID: "student-1", TermID: termID}
	}
	return records
}

func TestAggregateAttendanceMergesTermsOfSameSubject(t *testing.T) {
	// Mondays 2026-02-16..04-20: 10, Thursdays: 9 minus the 04-09 holiday.
	terms := []TermDefinition{
		{ID: "lecture", SubjectID: "alg", SubjectTitle: "Algorithms", Weekday: Monday, Type: "PREDAVANJE"},
		{ID: "exercise", SubjectID: "alg", SubjectTitle: "Algorithms", Weekday: Thursday, Type: "VEZBE"},
	}
	records := append(checkIns("lecture", 9), checkIns("exercise", 7)...)

	stats := AggregateAttendance(terms, records, NewHolidaySet("2026-04-09"), day(2026, 2, 16), day(2026, 4, 20))

	require.Len(t, stats, 1)
	stat := stats[0]
	assert.Equal(t, "alg", stat.SubjectID)
	assert.Equal(t, "Algorithms", stat.SubjectTitle)
	assert.Equal(t, 18, stat.Held)
	assert.Equal(t, 16, stat.Presence)
	assert.Equal(t, 2, stat.Absence)
	assert.InDelta(t, 88.888, stat.AttendancePercentage, 0.01)
}

func TestAggregateAttendanceUnknownWeekdayContributesNothing(t *testing.T) {
	terms := []TermDefinition{
		{ID: "t1", SubjectID: "db", SubjectTitle: "Databases", Weekday: Wednesday},
		{ID: "t2", SubjectID: "db", SubjectTitle: "Databases", Weekday: "SOMEDAY"},
	}
	stats := AggregateAttendance(terms, checkIns("t2", 1), nil, day(2026, 2, 16), day(2026, 3, 9))

	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Held)
	assert.Equal(t, 1, stats[0].Presence)
}

func TestAggregateAttendanceEmitsSubjectsWithoutCheckIns(t *testing.T) {
	terms := []TermDefinition{
		{ID: "t1", SubjectID: "math", SubjectTitle: "Mathematics", Weekday: Tuesday},
		{ID: "t2", SubjectID: "eco", SubjectTitle: "Economics", Weekday: Friday},
		{ID: "t3", SubjectID: "math", SubjectTitle: "Mathematics", Weekday: Friday},
	}
	stats := AggregateAttendance(terms, checkIns("unrelated", 4), nil, day(2026, 2, 16), day(2026, 3, 9))

	require.Len(t, stats, 2)
	assert.Equal(t, "math", stats[0].SubjectID)
	assert.Equal(t, "eco", stats[1].SubjectID)
	for _, stat := range stats {
		assert.Equal(t, 0, stat.Presence)
		assert.Equal(t, stat.Held, stat.Absence)
	}
}

func TestAggregateAttendanceSurfacesNegativeAbsence(t *testing.T) {
	terms := []TermDefinition{{ID: "t1", SubjectID: "os", SubjectTitle: "Operating Systems", Weekday: Wednesday}}
	stats := AggregateAttendance(terms, checkIns("t1", 5), nil, day(2026, 2, 16), day(2026, 3, 9))

	require.Len(t, stats, 1)
	assert.Equal(t, 3, stats[0].Held)
	assert.Equal(t, -2, stats[0].Absence)
	assert.InDelta(t, 166.666, stats[0].AttendancePercentage, 0.01)
}

func TestAggregateAttendanceZeroHeldGivesZeroPercentage(t *testing.T) {
	terms := []TermDefinition{{ID: "t1", SubjectID: "pe", SubjectTitle: "Sport", Weekday: Sunday}}
	stats := AggregateAttendance(terms, checkIns("t1", 1), nil, day(2026, 2, 16), day(2026, 2, 20))

	require.Len(t, stats, 1)
	assert.Equal(t, 0, stats[0].Held)
	assert.Equal(t, float64(0), stats[0].AttendancePercentage)
}

func TestAggregateAttendanceEmptyInputs(t *testing.T) {
	stats := AggregateAttendance(nil, nil, nil, day(2026, 2, 16), day(2026, 3, 9))
	assert.NotNil(t, stats)
	assert.Empty(t, stats)
}

func TestAggregateAttendanceInvariants(t *testing.T) {
	labels := []WeekdayLabel{Monday, Tuesday, Wednesday, Thursday, Friday, "BAD"}
	subjects := []string{"s1", "s2", "s3"}

	var terms []TermDefinition
	var records []AttendanceRecord
	for i := 0; i < 12; i++ {
		id := string(rune('a' + i))
		terms = append(terms, TermDefinition{
			ID:           id,
			SubjectID:    subjects[i%len(subjects)],
			SubjectTitle: "title-" + subjects[i%len(subjects)],
			Weekday:      labels[i%len(labels)],
		})
		records = append(records, checkIns(id, i%4)...)
	}
	original := append([]TermDefinition(nil), terms...)

	stats := AggregateAttendance(terms, records, NewHolidaySet("2026-03-02", "2026-03-03"), day(2026, 2, 16), day(2026, 5, 1))

	assert.Equal(t, original, terms)
	require.Len(t, stats, len(subjects))
	seen := map[string]bool{}
	for _, stat := range stats {
		assert.False(t, seen[stat.SubjectID])
		seen[stat.SubjectID] = true
		assert.Equal(t, stat.Held-stat.Presence, stat.Absence)
		if stat.Held == 0 {
			assert.Equal(t, float64(0), stat.AttendancePercentage)
		} else {
			assert.InDelta(t, float64(stat.Presence)/float64(stat.Held)*100, stat.AttendancePercentage, 1e-9)
		}
	}

	again := AggregateAttendance(terms, records, NewHolidaySet("2026-03-02", "2026-03-03"), day(2026, 2, 16), day(2026, 5, 1))
	assert.Equal(t, stats, again)
}

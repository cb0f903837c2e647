package profile

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/studyhub/backend/internal/models"
)

// RecentExamLimit caps the recent exams shown on the profile.
const RecentExamLimit = 10

// Lists is the slice of the user data service the profile reads.
type Lists interface {
	Bookmarks(ctx context.Context, userID string) []string
	Notes(ctx context.Context, userID, query string) []models.Note
	Todos(ctx context.Context, userID string, filter models.TodoFilter) models.TodoListResponse
	ExamHistory(ctx context.Context, userID string) []models.ExamRecord
	RegisteredCourses(ctx context.Context, userID string) []string
}

type Service struct {
	lists        Lists
	subjectCount func() int
}

// NewService builds the profile summary over lists. subjectCount reports how
// many exam subjects exist.
func NewService(lists Lists, subjectCount func() int) *Service {
	if subjectCount == nil {
		subjectCount = func() int { return 0 }
	}
	return &Service{lists: lists, subjectCount: subjectCount}
}

func (s *Service) Stats(ctx context.Context, userID string) models.ProfileStats {
	todos := s.lists.Todos(ctx, userID, models.TodoFilterAll)
	history := s.lists.ExamHistory(ctx, userID)

	stats := models.ProfileStats{
		UserID:            userID,
		Bookmarks:         len(s.lists.Bookmarks(ctx, userID)),
		Notes:             len(s.lists.Notes(ctx, userID, "")),
		TodosActive:       todos.Active,
		TodosCompleted:    todos.Completed,
		RegisteredCourses: s.lists.RegisteredCourses(ctx, userID),
		ExamAttempts:      len(history),
		SubjectStats:      map[string]models.SubjectStat{},
	}

	perfect := 0
	totalPct := 0
	timeBySubject := map[string]int{}
	for _, rec := range history {
		totalPct += rec.Percentage
		stats.TotalStudySeconds += rec.TimeSpent
		if rec.Percentage > stats.BestPercentage {
			stats.BestPercentage = rec.Percentage
		}
		if rec.Total > 0 && rec.Score == rec.Total {
			perfect++
		}

		st := stats.SubjectStats[rec.Subject]
		st.Attempts++
		st.Answered += rec.Total
		st.Correct += rec.Score
		if rec.Percentage > st.BestPercentage {
			st.BestPercentage = rec.Percentage
		}
		stats.SubjectStats[rec.Subject] = st
		timeBySubject[rec.Subject] += rec.TimeSpent
	}
	if len(history) > 0 {
		stats.AveragePercentage = math.Round(float64(totalPct) / float64(len(history)))
	}
	for subject, st := range stats.SubjectStats {
		if st.Answered > 0 {
			st.Accuracy = math.Round(float64(st.Correct)/float64(st.Answered)*1000) / 10
		}
		st.AverageTimeSecond = math.Round(float64(timeBySubject[subject])/float64(st.Attempts)*10) / 10
		stats.SubjectStats[subject] = st
	}

	stats.TotalStudyTime = FormatStudyTime(stats.TotalStudySeconds)
	stats.RecentExams = recent(history, RecentExamLimit)

	stats.Achievements = []models.Achievement{}
	for _, key := range CheckAchievements(&stats, perfect, s.subjectCount()) {
		def := Achievements[key]
		stats.Achievements = append(stats.Achievements, models.Achievement{Key: key, Name: def.Name, Description: def.Description})
	}
	return stats
}

// recent returns up to n records, newest first. RFC3339 dates in UTC sort
// lexically.
func recent(history []models.ExamRecord, n int) []models.ExamRecord {
	out := append([]models.ExamRecord{}, history...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// FormatStudyTime renders seconds the way the profile card does.
func FormatStudyTime(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%d วินาที", seconds)
	}
	m := seconds / 60
	if m < 60 {
		return fmt.Sprintf("%d นาที", m)
	}
	return fmt.Sprintf("%d ชั่วโมง %d นาที", m/60, m%60)
}

package userdata

import (
	"context"
	"slices"

	"github.com/studyhub/backend/internal/models"
)

// ── Exam History ─────────────────────────────────────────

// ExamHistory returns finished quizzes in the order they were recorded.
func (s *Service) ExamHistory(ctx context.Context, userID string) []models.ExamRecord {
	return s.history.Load(ctx, userID)
}

// AppendExamResult assigns an id and date when missing and appends rec.
func (s *Service) AppendExamResult(ctx context.Context, userID string, rec models.ExamRecord) (models.ExamRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = s.newID()
	}
	if rec.Date == "" {
		rec.Date = s.timestamp()
	}
	records, err := s.history.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return rec, err
	}
	records = append(records, rec)
	if err := s.history.Save(ctx, userID, records); err != nil {
		return rec, err
	}
	return rec, nil
}

// ── Course Registration ──────────────────────────────────

func (s *Service) RegisteredCourses(ctx context.Context, userID string) []string {
	return s.courses.Load(ctx, userID)
}

// RegisterCourse records courseID. Registered is true only when the id was
// not on the list before.
func (s *Service) RegisterCourse(ctx context.Context, userID, courseID string) (models.CourseRegistrationResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	courses, err := s.courses.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return models.CourseRegistrationResponse{}, err
	}
	if slices.Contains(courses, courseID) {
		return models.CourseRegistrationResponse{CourseID: courseID, Registered: false, Courses: courses}, nil
	}
	courses = append(courses, courseID)
	s.courses.Save(ctx, userID, courses)
	return models.CourseRegistrationResponse{CourseID: courseID, Registered: true, Courses: courses}, nil
}

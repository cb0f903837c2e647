package userdata

import (
	"context"
	"errors"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/studyhub/backend/internal/models"
)

var (
	ErrNotFound        = errors.New("item not found")
	ErrEmptyText       = errors.New("text must not be empty")
	ErrInvalidColor    = errors.New("color is not in the note palette")
	ErrInvalidPriority = errors.New("unknown priority")
)

// Service owns the signed-in user's lists. Every mutation is a
// read-modify-write of one list, serialized within the process.
type Service struct {
	mu sync.Mutex

	bookmarks *List[string]
	notes     *List[models.Note]
	todos     *List[models.Todo]
	history   *List[models.ExamRecord]
	courses   *List[string]

	now   func() time.Time
	newID func() string
}

type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithIDs(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService wires every list to store. mirror may be nil.
func NewService(store Store, mirror Mirror, opts ...Option) *Service {
	s := &Service{
		bookmarks: NewList[string](store, mirror, KeyBookmarks),
		notes:     NewList[models.Note](store, mirror, KeyNotes),
		todos:     NewList[models.Todo](store, mirror, KeyTodos),
		history:   NewList[models.ExamRecord](store, mirror, KeyExamHistory),
		courses:   NewList[string](store, mirror, KeyRegisteredCourses),
		now:       time.Now,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) timestamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

// ── Bookmarks ────────────────────────────────────────────

func (s *Service) Bookmarks(ctx context.Context, userID string) []string {
	return s.bookmarks.Load(ctx, userID)
}

// ToggleBookmark adds id when absent and removes it when present.
func (s *Service) ToggleBookmark(ctx context.Context, userID, id string) (models.BookmarkToggleResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.bookmarks.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return models.BookmarkToggleResponse{}, err
	}
	bookmarked := !slices.Contains(list, id)
	if bookmarked {
		list = append(list, id)
	} else {
		list = slices.DeleteFunc(list, func(b string) bool { return b == id })
	}
	s.bookmarks.Save(ctx, userID, list)
	return models.BookmarkToggleResponse{ID: id, Bookmarked: bookmarked, Bookmarks: list}, nil
}

func (s *Service) AddBookmark(ctx context.Context, userID, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.bookmarks.LoadForUpdate(ctx, userID, nil)
	if err != nil || slices.Contains(list, id) {
		return list, err
	}
	list = append(list, id)
	s.bookmarks.Save(ctx, userID, list)
	return list, nil
}

func (s *Service) RemoveBookmark(ctx context.Context, userID, id string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list, err := s.bookmarks.LoadForUpdate(ctx, userID, nil)
	if err != nil || !slices.Contains(list, id) {
		return list, err
	}
	list = slices.DeleteFunc(list, func(b string) bool { return b == id })
	s.bookmarks.Save(ctx, userID, list)
	return list, nil
}

func (s *Service) IsBookmarked(ctx context.Context, userID, id string) bool {
	return slices.Contains(s.bookmarks.Load(ctx, userID), id)
}

// ── Notes ────────────────────────────────────────────────

// Notes returns the user's notes, newest first, matching query against
// title and content case-insensitively.
func (s *Service) Notes(ctx context.Context, userID, query string) []models.Note {
	notes := s.notes.Load(ctx, userID)
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return notes
	}
	out := []models.Note{}
	for _, n := range notes {
		if strings.Contains(strings.ToLower(n.Title), q) || strings.Contains(strings.ToLower(n.Content), q) {
			out = append(out, n)
		}
	}
	return out
}

func (s *Service) CreateNote(ctx context.Context, userID string, req models.CreateNoteRequest) (models.Note, error) {
	color := req.Color
	if color == "" {
		color = models.NoteColors[len(models.NoteColors)-1]
	}
	if !slices.Contains(models.NoteColors, color) {
		return models.Note{}, ErrInvalidColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	ts := s.timestamp()
	note := models.Note{
		ID:        s.newID(),
		Title:     req.Title,
		Content:   req.Content,
		Color:     color,
		CreatedAt: ts,
		UpdatedAt: ts,
	}
	if strings.TrimSpace(note.Title) == "" {
		note.Title = models.DefaultNoteTitle
	}

	notes, err := s.notes.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return models.Note{}, err
	}
	notes = append([]models.Note{note}, notes...)
	s.notes.Save(ctx, userID, notes)
	return note, nil
}

// UpdateNote merges the non-nil fields of patch and bumps UpdatedAt.
func (s *Service) UpdateNote(ctx context.Context, userID, id string, patch models.NotePatch) (models.Note, error) {
	if patch.Color != nil && !slices.Contains(models.NoteColors, *patch.Color) {
		return models.Note{}, ErrInvalidColor
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.notes.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return models.Note{}, err
	}
	i := slices.IndexFunc(notes, func(n models.Note) bool { return n.ID == id })
	if i < 0 {
		return models.Note{}, ErrNotFound
	}
	if patch.Title != nil {
		notes[i].Title = *patch.Title
	}
	if patch.Content != nil {
		notes[i].Content = *patch.Content
	}
	if patch.Color != nil {
		notes[i].Color = *patch.Color
	}
	notes[i].UpdatedAt = s.timestamp()
	s.notes.Save(ctx, userID, notes)
	return notes[i], nil
}

func (s *Service) DeleteNote(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes, err := s.notes.LoadForUpdate(ctx, userID, nil)
	if err != nil {
		return err
	}
	n := len(notes)
	notes = slices.DeleteFunc(notes, func(note models.Note) bool { return note.ID == id })
	if len(notes) == n {
		return ErrNotFound
	}
	s.notes.Save(ctx, userID, notes)
	return nil
}

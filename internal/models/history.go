package models

// ── User List Types ──────────────────────────────────────

type Priority string

const (
	PriorityHigh   Priority = "สูง"
	PriorityMedium Priority = "ปานกลาง"
	PriorityLow    Priority = "ต่ำ"
)

var ValidPriorities = map[Priority]bool{
	PriorityHigh:   true,
	PriorityMedium: true,
	PriorityLow:    true,
}

// NoteColors is the quick-notes palette. The last entry is the default.
var NoteColors = []string{"#FEFCE8", "#FEF3C7", "#DBEAFE", "#D1FAE5", "#FCE7F3", "#EDE9FE", "#FFF"}

// DefaultNoteTitle is used when a note is created without a title.
const DefaultNoteTitle = "บันทึกใหม่"

type Note struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Color     string `json:"color"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

type Todo struct {
	ID        string   `json:"id"`
	Text      string   `json:"text"`
	Completed bool     `json:"completed"`
	Priority  Priority `json:"priority"`
	DueDate   *string  `json:"dueDate,omitempty"`
	CreatedAt string   `json:"createdAt"`
}

type TodoFilter string

const (
	TodoFilterAll       TodoFilter = "all"
	TodoFilterActive    TodoFilter = "active"
	TodoFilterCompleted TodoFilter = "completed"
)

// ── Request Types ────────────────────────────────────────

type CreateNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Color   string `json:"color" validate:"omitempty,hexcolor"`
}

// NotePatch carries the fields of a note update; nil fields are left unchanged.
type NotePatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Color   *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
}

type CreateTodoRequest struct {
	Text     string   `json:"text" validate:"required"`
	Priority Priority `json:"priority" validate:"omitempty,oneof=สูง ปานกลาง ต่ำ"`
	DueDate  *string  `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type TodoPatch struct {
	Text *string `json:"text,omitempty"`
}

// ── Response Types ────────────────────────────────────────

type BookmarkToggleResponse struct {
	ID         string   `json:"id"`
	Bookmarked bool     `json:"bookmarked"`
	Bookmarks  []string `json:"bookmarks"`
}

type TodoListResponse struct {
	Todos     []Todo `json:"todos"`
	Total     int    `json:"total"`
	Active    int    `json:"active"`
	Completed int    `json:"completed"`
}

type CourseRegistrationResponse struct {
	CourseID   string   `json:"course_id"`
	Registered bool     `json:"registered"`
	Courses    []string `json:"courses"`
}

// ── Profile Statistics ────────────────────────────────────

type ProfileStats struct {
	UserID            string                 `json:"user_id"`
	Bookmarks         int                    `json:"bookmarks"`
	Notes             int                    `json:"notes"`
	TodosActive       int                    `json:"todos_active"`
	TodosCompleted    int                    `json:"todos_completed"`
	RegisteredCourses []string               `json:"registered_courses"`
	ExamAttempts      int                    `json:"exam_attempts"`
	AveragePercentage float64                `json:"average_percentage"`
	BestPercentage    int                    `json:"best_percentage"`
	TotalStudySeconds int                    `json:"total_study_seconds"`
	TotalStudyTime    string                 `json:"total_study_time"`
	SubjectStats      map[string]SubjectStat `json:"subject_stats"`
	RecentExams       []ExamRecord           `json:"recent_exams"`
	Achievements      []Achievement          `json:"achievements"`
}

// Achievement is a milestone unlocked by the user's activity.
type Achievement struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SubjectStat struct {
	Attempts          int     `json:"attempts"`
	Answered          int     `json:"answered"`
	Correct           int     `json:"correct"`
	Accuracy          float64 `json:"accuracy"`
	BestPercentage    int     `json:"best_percentage"`
	AverageTimeSecond float64 `json:"avg_time_seconds"`
}

package profile

import "github.com/studyhub/backend/internal/models"

// AchievementDef defines a single achievement.
type AchievementDef struct {
	Name        string
	Description string
}

// Achievements maps achievement keys to their definitions.
var Achievements = map[string]AchievementDef{
	"first_exam":      {Name: "ก้าวแรก", Description: "ทำแบบทดสอบครั้งแรก"},
	"exams_10":        {Name: "ขยันสอบ", Description: "ทำแบบทดสอบครบ 10 ครั้ง"},
	"exams_50":        {Name: "นักสู้สนามสอบ", Description: "ทำแบบทดสอบครบ 50 ครั้ง"},
	"perfect_1":       {Name: "ไร้ที่ติ", Description: "ได้คะแนนเต็มครั้งแรก"},
	"perfect_10":      {Name: "สมบูรณ์แบบ", Description: "ได้คะแนนเต็ม 10 ครั้ง"},
	"all_subjects":    {Name: "รอบรู้", Description: "ทำแบบทดสอบครบทุกวิชา"},
	"study_1h":        {Name: "ตั้งใจเรียน", Description: "ใช้เวลาทำแบบทดสอบรวม 1 ชั่วโมง"},
	"study_10h":       {Name: "นักเรียนตัวยง", Description: "ใช้เวลาทำแบบทดสอบรวม 10 ชั่วโมง"},
	"bookmarks_10":    {Name: "นักสะสม", Description: "บันทึกเนื้อหาที่ชอบ 10 รายการ"},
	"notes_5":         {Name: "จดไม่หยุด", Description: "สร้างโน้ต 5 รายการ"},
	"todos_done_10":   {Name: "ทำจริง", Description: "ทำรายการสิ่งที่ต้องทำเสร็จ 10 รายการ"},
	"course_enrolled": {Name: "พร้อมเรียนรู้", Description: "ลงทะเบียนคอร์สแรก"},
}

// CheckAchievements returns the keys the stats qualify for, in a stable
// order. subjectCount is the number of subjects in the question bank.
func CheckAchievements(stats *models.ProfileStats, perfectExams, subjectCount int) []string {
	var earned []string

	// Exam milestones
	if stats.ExamAttempts >= 1 {
		earned = append(earned, "first_exam")
	}
	if stats.ExamAttempts >= 10 {
		earned = append(earned, "exams_10")
	}
	if stats.ExamAttempts >= 50 {
		earned = append(earned, "exams_50")
	}

	// Perfect score milestones
	if perfectExams >= 1 {
		earned = append(earned, "perfect_1")
	}
	if perfectExams >= 10 {
		earned = append(earned, "perfect_10")
	}

	if subjectCount > 0 && coveredSubjects(stats) >= subjectCount {
		earned = append(earned, "all_subjects")
	}

	// Study time milestones
	if stats.TotalStudySeconds >= 3600 {
		earned = append(earned, "study_1h")
	}
	if stats.TotalStudySeconds >= 36000 {
		earned = append(earned, "study_10h")
	}

	// Tool usage
	if stats.Bookmarks >= 10 {
		earned = append(earned, "bookmarks_10")
	}
	if stats.Notes >= 5 {
		earned = append(earned, "notes_5")
	}
	if stats.TodosCompleted >= 10 {
		earned = append(earned, "todos_done_10")
	}
	if len(stats.RegisteredCourses) > 0 {
		earned = append(earned, "course_enrolled")
	}

	return earned
}

// random quizzes are recorded under their own label and do not count
// toward subject coverage
func coveredSubjects(stats *models.ProfileStats) int {
	n := 0
	for subject := range stats.SubjectStats {
		if subject != models.RandomSubjectLabel {
			n++
		}
	}
	return n
}

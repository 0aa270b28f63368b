package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Role string

const (
	RoleInstructor Role = "Instructor"
	RoleStudent    Role = "Student"
)

func (r Role) Valid() bool {
	return r == RoleInstructor || r == RoleStudent
}

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"not null"`
	Role      Role      `json:"role" gorm:"type:varchar(20);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// Course with a NULL instructor_id is a catalog course: browsable by
// everyone, owned by nobody.
type Course struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Title        string    `json:"title" gorm:"not null"`
	Description  string    `json:"description" gorm:"type:text"`
	InstructorID *uint     `json:"instructor_id,omitempty" gorm:"index"`
	CreatedAt    time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Relations
	Instructor *User `json:"instructor,omitempty" gorm:"foreignKey:InstructorID"`
}

// OwnedBy reports whether userID is the course's instructor.
func (c *Course) OwnedBy(userID uint) bool {
	return c.InstructorID != nil && *c.InstructorID == userID
}

// ========== MONGODB MODELS ==========

type Question struct {
	ID            primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Text          string             `json:"text" bson:"text"`
	Options       []string           `json:"options" bson:"options"`
	CorrectOption int                `json:"correct_option" bson:"correct_option"`
}

// Lecture - Position is monotonic within a course and assigned on
// insert; it is the sole ordering key for sequential unlock.
type Lecture struct {
	ID        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	CourseID  uint               `json:"course_id" bson:"course_id"`
	Title     string             `json:"title" bson:"title"`
	Content   string             `json:"content" bson:"content"`
	Questions []Question         `json:"questions" bson:"questions"`
	Position  int                `json:"position" bson:"position"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

type ScoreEntry struct {
	LectureID primitive.ObjectID `json:"lecture_id" bson:"lecture_id"`
	Score     int                `json:"score" bson:"score"`
	Passed    bool               `json:"passed" bson:"passed"`
}

// Progress - one document per (student, course), guarded by a unique
// compound index. Created lazily on first completion or quiz submission,
// never deleted. Scores is append-only: every attempt accumulates.
type Progress struct {
	ID                primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	StudentID         uint                 `json:"student_id" bson:"student_id"`
	CourseID          uint                 `json:"course_id" bson:"course_id"`
	CompletedLectures []primitive.ObjectID `json:"completed_lectures" bson:"completed_lectures"`
	Scores            []ScoreEntry         `json:"scores" bson:"scores"`
	CreatedAt         time.Time            `json:"created_at" bson:"created_at"`
}

// Completed reports whether lectureID is in the completed set. Safe on
// a nil receiver so callers can pass a missing progress record through.
func (p *Progress) Completed(lectureID primitive.ObjectID) bool {
	if p == nil {
		return false
	}
	for _, id := range p.CompletedLectures {
		if id == lectureID {
			return true
		}
	}
	return false
}

// ========== RESPONSE DTOs ==========

// QuestionView is the student-facing shape of a question. The correct
// option is stripped here, on the server, not by the client.
type QuestionView struct {
	ID      primitive.ObjectID `json:"id"`
	Text    string             `json:"text"`
	Options []string           `json:"options"`
}

// LectureView - lecture content with quiz answers hidden.
type LectureView struct {
	ID        primitive.ObjectID `json:"id"`
	CourseID  uint               `json:"course_id"`
	Title     string             `json:"title"`
	Content   string             `json:"content"`
	Questions []QuestionView     `json:"questions"`
	Position  int                `json:"position"`
	CreatedAt time.Time          `json:"created_at"`
}

// View strips correct options from the lecture's questions.
func (l *Lecture) View() *LectureView {
	questions := make([]QuestionView, 0, len(l.Questions))
	for _, q := range l.Questions {
		questions = append(questions, QuestionView{
			ID:      q.ID,
			Text:    q.Text,
			Options: q.Options,
		})
	}
	return &LectureView{
		ID:        l.ID,
		CourseID:  l.CourseID,
		Title:     l.Title,
		Content:   l.Content,
		Questions: questions,
		Position:  l.Position,
		CreatedAt: l.CreatedAt,
	}
}

// QuizResult - outcome of a single quiz attempt. Does not reveal which
// answers were wrong.
type QuizResult struct {
	Score        int  `json:"score"`
	Passed       bool `json:"passed"`
	CorrectCount int  `json:"correctCount"`
	Total        int  `json:"total"`
}

// CourseProgress - completion ratio for a student in a course.
type CourseProgress struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
	Percent   int `json:"percent"`
}

// CourseDetail - course with its lecture count.
type CourseDetail struct {
	Course
	LectureCount int `json:"lecture_count"`
}

// RegisterInput - registration payload. Course fields are required when
// the role is Instructor: registering an instructor also creates their
// course.
type RegisterInput struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	Password          string `json:"password"`
	Role              Role   `json:"role"`
	CourseTitle       string `json:"courseTitle"`
	CourseDescription string `json:"courseDescription"`
}

// AuthResult - token plus the authenticated user; Course is set only
// when instructor registration created one.
type AuthResult struct {
	Token  string  `json:"token"`
	User   *User   `json:"user"`
	Course *Course `json:"course,omitempty"`
}

// LectureInput - instructor payload for creating or updating a lecture.
type LectureInput struct {
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Questions []Question `json:"questions"`
}

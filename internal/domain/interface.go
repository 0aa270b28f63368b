package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uint) (*User, error)
}

type CourseRepository interface {
	Create(ctx context.Context, course *Course) error
	GetAll(ctx context.Context) ([]Course, error)
	GetCatalog(ctx context.Context) ([]Course, error)
	GetByID(ctx context.Context, id uint) (*Course, error)
	GetByInstructorID(ctx context.Context, instructorID uint) (*Course, error)
	Delete(ctx context.Context, id uint) error
}

type LectureRepository interface { // MongoDB
	Create(ctx context.Context, lecture *Lecture) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*Lecture, error)
	GetByCourseID(ctx context.Context, courseID uint) ([]Lecture, error)
	CountByCourseID(ctx context.Context, courseID uint) (int64, error)
	Update(ctx context.Context, lecture *Lecture) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	DeleteByCourseID(ctx context.Context, courseID uint) error
}

type ProgressRepository interface { // MongoDB
	// Get returns (nil, nil) when no progress record exists yet.
	Get(ctx context.Context, studentID, courseID uint) (*Progress, error)
	AddCompletedLecture(ctx context.Context, studentID, courseID uint, lectureID primitive.ObjectID) error
	AppendScore(ctx context.Context, studentID, courseID uint, entry ScoreEntry) error
	RemoveLectureRefs(ctx context.Context, courseID uint, lectureID primitive.ObjectID) error
}

type AuthUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

type CourseUsecase interface {
	CreateCourse(ctx context.Context, instructorID uint, title, description string) (*Course, error)
	GetAllCourses(ctx context.Context) ([]Course, error)
	GetCatalog(ctx context.Context) ([]Course, error)
	GetMyCourse(ctx context.Context, instructorID uint) (*CourseDetail, error)
	GetCourseDetail(ctx context.Context, courseID uint) (*CourseDetail, error)
	DeleteCourse(ctx context.Context, instructorID, courseID uint) error
}

type LectureUsecase interface {
	AddLecture(ctx context.Context, instructorID, courseID uint, input LectureInput) (*Lecture, error)
	UpdateLecture(ctx context.Context, instructorID, courseID uint, lectureID primitive.ObjectID, input LectureInput) (*Lecture, error)
	DeleteLecture(ctx context.Context, instructorID, courseID uint, lectureID primitive.ObjectID) error
	// ListLectures reports owner=true when the requester is the course's
	// instructor; only then may the caller serialize correct options.
	ListLectures(ctx context.Context, userID uint, role Role, courseID uint) (lectures []Lecture, owner bool, err error)
	GetLectureContent(ctx context.Context, userID uint, role Role, lectureID primitive.ObjectID) (*LectureView, error)
	CompleteLecture(ctx context.Context, studentID uint, lectureID primitive.ObjectID) error
	SubmitQuiz(ctx context.Context, studentID uint, lectureID primitive.ObjectID, answers []any) (*QuizResult, error)
}

type ProgressUsecase interface {
	GetCourseProgress(ctx context.Context, studentID, courseID uint) (*CourseProgress, error)
}

package usecase

import (
	"context"
	"fmt"
	"math"

	"learnloop-backend/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Quiz attempts pass at 70 or above. Fixed, not configurable.
const passThreshold = 70

type lectureUsecase struct {
	courseRepo   domain.CourseRepository
	lectureRepo  domain.LectureRepository
	progressRepo domain.ProgressRepository
}

func NewLectureUsecase(cr domain.CourseRepository, lr domain.LectureRepository, pr domain.ProgressRepository) domain.LectureUsecase {
	return &lectureUsecase{
		courseRepo:   cr,
		lectureRepo:  lr,
		progressRepo: pr,
	}
}

// ========== AUTHORING ==========

func (uc *lectureUsecase) AddLecture(ctx context.Context, instructorID, courseID uint, input domain.LectureInput) (*domain.Lecture, error) {
	if err := uc.checkOwnership(ctx, instructorID, courseID); err != nil {
		return nil, err
	}

	questions, err := normalizeQuestions(input.Questions)
	if err != nil {
		return nil, err
	}
	if input.Title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}

	lecture := &domain.Lecture{
		CourseID:  courseID,
		Title:     input.Title,
		Content:   input.Content,
		Questions: questions,
	}
	if err := uc.lectureRepo.Create(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

func (uc *lectureUsecase) UpdateLecture(ctx context.Context, instructorID, courseID uint, lectureID primitive.ObjectID, input domain.LectureInput) (*domain.Lecture, error) {
	if err := uc.checkOwnership(ctx, instructorID, courseID); err != nil {
		return nil, err
	}

	lecture, err := uc.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}
	if lecture.CourseID != courseID {
		return nil, domain.ErrNotFound
	}

	if input.Title != "" {
		lecture.Title = input.Title
	}
	if input.Content != "" {
		lecture.Content = input.Content
	}
	if input.Questions != nil {
		questions, err := normalizeQuestions(input.Questions)
		if err != nil {
			return nil, err
		}
		lecture.Questions = questions
	}

	if err := uc.lectureRepo.Update(ctx, lecture); err != nil {
		return nil, err
	}
	return lecture, nil
}

// DeleteLecture also pulls the lecture out of every progress record in
// the course, so stale references never inflate completion counts.
func (uc *lectureUsecase) DeleteLecture(ctx context.Context, instructorID, courseID uint, lectureID primitive.ObjectID) error {
	if err := uc.checkOwnership(ctx, instructorID, courseID); err != nil {
		return err
	}

	lecture, err := uc.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return err
	}
	if lecture.CourseID != courseID {
		return domain.ErrNotFound
	}

	if err := uc.lectureRepo.Delete(ctx, lectureID); err != nil {
		return err
	}
	return uc.progressRepo.RemoveLectureRefs(ctx, courseID, lectureID)
}

func (uc *lectureUsecase) checkOwnership(ctx context.Context, instructorID, courseID uint) error {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !course.OwnedBy(instructorID) {
		return fmt.Errorf("not your course: %w", domain.ErrForbidden)
	}
	return nil
}

// normalizeQuestions drops empty option strings, then validates each
// question: at least two options, correct option in range.
func normalizeQuestions(questions []domain.Question) ([]domain.Question, error) {
	cleaned := make([]domain.Question, 0, len(questions))
	for _, q := range questions {
		if q.Text == "" {
			return nil, fmt.Errorf("question text is required: %w", domain.ErrInvalidInput)
		}

		options := make([]string, 0, len(q.Options))
		for _, opt := range q.Options {
			if opt != "" {
				options = append(options, opt)
			}
		}
		if len(options) < 2 {
			return nil, fmt.Errorf("question needs at least two options: %w", domain.ErrInvalidInput)
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(options) {
			return nil, fmt.Errorf("correct option out of range: %w", domain.ErrInvalidInput)
		}

		if q.ID.IsZero() {
			q.ID = primitive.NewObjectID()
		}
		q.Options = options
		cleaned = append(cleaned, q)
	}
	return cleaned, nil
}

// ========== READING ==========

func (uc *lectureUsecase) ListLectures(ctx context.Context, userID uint, role domain.Role, courseID uint) ([]domain.Lecture, bool, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, false, err
	}

	lectures, err := uc.lectureRepo.GetByCourseID(ctx, courseID)
	if err != nil {
		return nil, false, err
	}

	owner := role == domain.RoleInstructor && course.OwnedBy(userID)
	return lectures, owner, nil
}

// GetLectureContent returns the lecture with quiz answers hidden.
// Students go through the sequential-unlock gate first; instructors
// read freely since they author the material.
func (uc *lectureUsecase) GetLectureContent(ctx context.Context, userID uint, role domain.Role, lectureID primitive.ObjectID) (*domain.LectureView, error) {
	lecture, err := uc.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	if role == domain.RoleStudent {
		if err := uc.checkAccess(ctx, userID, lecture); err != nil {
			return nil, err
		}
	}

	return lecture.View(), nil
}

// checkAccess is the sequential-unlock gate. Read-only: the first
// lecture of a course is always open; any later lecture requires the
// immediately preceding one to be completed.
func (uc *lectureUsecase) checkAccess(ctx context.Context, studentID uint, lecture *domain.Lecture) error {
	lectures, err := uc.lectureRepo.GetByCourseID(ctx, lecture.CourseID)
	if err != nil {
		return err
	}

	idx := -1
	for i, l := range lectures {
		if l.ID == lecture.ID {
			idx = i
			break
		}
	}
	if idx <= 0 {
		return nil // first lecture always open
	}

	progress, err := uc.progressRepo.Get(ctx, studentID, lecture.CourseID)
	if err != nil {
		return err
	}
	if !progress.Completed(lectures[idx-1].ID) {
		return fmt.Errorf("complete previous lecture first: %w", domain.ErrForbidden)
	}
	return nil
}

// ========== PROGRESS WRITES ==========

// CompleteLecture idempotently marks the lecture completed. Repeats are
// no-ops, never errors.
func (uc *lectureUsecase) CompleteLecture(ctx context.Context, studentID uint, lectureID primitive.ObjectID) error {
	lecture, err := uc.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return err
	}
	return uc.progressRepo.AddCompletedLecture(ctx, studentID, lecture.CourseID, lectureID)
}

// SubmitQuiz grades the submitted answers against the lecture's
// questions and appends the attempt to the student's progress record.
func (uc *lectureUsecase) SubmitQuiz(ctx context.Context, studentID uint, lectureID primitive.ObjectID, answers []any) (*domain.QuizResult, error) {
	lecture, err := uc.lectureRepo.GetByID(ctx, lectureID)
	if err != nil {
		return nil, err
	}

	result := gradeQuiz(lecture.Questions, answers)

	entry := domain.ScoreEntry{
		LectureID: lectureID,
		Score:     result.Score,
		Passed:    result.Passed,
	}
	if err := uc.progressRepo.AppendScore(ctx, studentID, lecture.CourseID, entry); err != nil {
		return nil, err
	}
	return result, nil
}

// gradeQuiz scores answers positionally against the questions. An
// answer counts only when it is an integral number equal to the
// question's correct option; anything else (absent, null, wrong type,
// out of range) is simply incorrect.
func gradeQuiz(questions []domain.Question, answers []any) *domain.QuizResult {
	correctCount := 0
	for i, q := range questions {
		if i >= len(answers) {
			continue
		}
		n, ok := answers[i].(float64) // JSON numbers decode as float64
		if ok && n == math.Trunc(n) && int(n) == q.CorrectOption {
			correctCount++
		}
	}

	total := len(questions)
	score := 0
	if total > 0 {
		score = int(math.Round(float64(correctCount) / float64(total) * 100))
	}

	return &domain.QuizResult{
		Score:        score,
		Passed:       score >= passThreshold,
		CorrectCount: correctCount,
		Total:        total,
	}
}

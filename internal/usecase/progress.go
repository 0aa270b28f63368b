package usecase

import (
	"context"
	"math"

	"learnloop-backend/internal/domain"
)

type progressUsecase struct {
	courseRepo   domain.CourseRepository
	lectureRepo  domain.LectureRepository
	progressRepo domain.ProgressRepository
}

func NewProgressUsecase(cr domain.CourseRepository, lr domain.LectureRepository, pr domain.ProgressRepository) domain.ProgressUsecase {
	return &progressUsecase{
		courseRepo:   cr,
		lectureRepo:  lr,
		progressRepo: pr,
	}
}

// GetCourseProgress computes the student's completion ratio. A missing
// progress record means zero completed, not an error.
func (uc *progressUsecase) GetCourseProgress(ctx context.Context, studentID, courseID uint) (*domain.CourseProgress, error) {
	if _, err := uc.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, err
	}

	total, err := uc.lectureRepo.CountByCourseID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := uc.progressRepo.Get(ctx, studentID, courseID)
	if err != nil {
		return nil, err
	}

	completed := 0
	if progress != nil {
		completed = len(progress.CompletedLectures)
	}

	percent := 0
	if total > 0 {
		percent = int(math.Round(float64(completed) / float64(total) * 100))
	}

	return &domain.CourseProgress{
		Completed: completed,
		Total:     int(total),
		Percent:   percent,
	}, nil
}

package usecase_test

import (
	"context"
	"testing"

	"learnloop-backend/internal/domain"
	"learnloop-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newProgressUsecase() (domain.ProgressUsecase, *MockCourseRepo, *MockLectureRepo, *MockProgressRepo) {
	courseRepo := new(MockCourseRepo)
	lectureRepo := new(MockLectureRepo)
	progressRepo := new(MockProgressRepo)
	uc := usecase.NewProgressUsecase(courseRepo, lectureRepo, progressRepo)
	return uc, courseRepo, lectureRepo, progressRepo
}

func completedSet(n int) []primitive.ObjectID {
	ids := make([]primitive.ObjectID, n)
	for i := range ids {
		ids[i] = primitive.NewObjectID()
	}
	return ids
}

func TestGetCourseProgress(t *testing.T) {
	ctx := context.Background()
	studentID := uint(42)
	courseID := uint(1)
	course := &domain.Course{ID: courseID, Title: "Course"}

	run := func(t *testing.T, total int64, completed int, hasRecord bool) *domain.CourseProgress {
		uc, courseRepo, lectureRepo, progressRepo := newProgressUsecase()
		courseRepo.On("GetByID", mock.Anything, courseID).Return(course, nil)
		lectureRepo.On("CountByCourseID", mock.Anything, courseID).Return(total, nil)
		if hasRecord {
			progressRepo.On("Get", mock.Anything, studentID, courseID).Return(&domain.Progress{
				StudentID:         studentID,
				CourseID:          courseID,
				CompletedLectures: completedSet(completed),
			}, nil)
		} else {
			progressRepo.On("Get", mock.Anything, studentID, courseID).Return(nil, nil)
		}

		progress, err := uc.GetCourseProgress(ctx, studentID, courseID)
		assert.NoError(t, err)
		return progress
	}

	t.Run("Three Of Five", func(t *testing.T) {
		progress := run(t, 5, 3, true)
		assert.Equal(t, 3, progress.Completed)
		assert.Equal(t, 5, progress.Total)
		assert.Equal(t, 60, progress.Percent)
	})

	t.Run("Rounding", func(t *testing.T) {
		assert.Equal(t, 33, run(t, 3, 1, true).Percent)
		assert.Equal(t, 67, run(t, 3, 2, true).Percent)
		assert.Equal(t, 17, run(t, 6, 1, true).Percent)
	})

	t.Run("No Lectures", func(t *testing.T) {
		progress := run(t, 0, 0, false)
		assert.Equal(t, 0, progress.Total)
		assert.Equal(t, 0, progress.Percent)
	})

	t.Run("No Progress Record", func(t *testing.T) {
		progress := run(t, 4, 0, false)
		assert.Equal(t, 0, progress.Completed)
		assert.Equal(t, 4, progress.Total)
		assert.Equal(t, 0, progress.Percent)
	})

	t.Run("Course Not Found", func(t *testing.T) {
		uc, courseRepo, _, _ := newProgressUsecase()
		courseRepo.On("GetByID", mock.Anything, uint(99)).Return(nil, domain.ErrNotFound)

		_, err := uc.GetCourseProgress(ctx, studentID, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

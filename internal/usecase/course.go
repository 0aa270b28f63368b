package usecase

import (
	"context"
	"fmt"

	"learnloop-backend/internal/domain"
)

type courseUsecase struct {
	courseRepo  domain.CourseRepository
	lectureRepo domain.LectureRepository
}

func NewCourseUsecase(cr domain.CourseRepository, lr domain.LectureRepository) domain.CourseUsecase {
	return &courseUsecase{courseRepo: cr, lectureRepo: lr}
}

// CreateCourse enforces one course per instructor at the application
// layer; there is no store-level constraint behind it.
func (uc *courseUsecase) CreateCourse(ctx context.Context, instructorID uint, title, description string) (*domain.Course, error) {
	if title == "" {
		return nil, fmt.Errorf("title is required: %w", domain.ErrInvalidInput)
	}

	if existing, err := uc.courseRepo.GetByInstructorID(ctx, instructorID); err == nil && existing != nil {
		return nil, fmt.Errorf("instructor already has a course: %w", domain.ErrConflict)
	}

	course := &domain.Course{
		Title:        title,
		Description:  description,
		InstructorID: &instructorID,
	}
	if err := uc.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (uc *courseUsecase) GetAllCourses(ctx context.Context) ([]domain.Course, error) {
	return uc.courseRepo.GetAll(ctx)
}

func (uc *courseUsecase) GetCatalog(ctx context.Context) ([]domain.Course, error) {
	return uc.courseRepo.GetCatalog(ctx)
}

func (uc *courseUsecase) GetMyCourse(ctx context.Context, instructorID uint) (*domain.CourseDetail, error) {
	course, err := uc.courseRepo.GetByInstructorID(ctx, instructorID)
	if err != nil {
		return nil, fmt.Errorf("no course assigned to this instructor: %w", domain.ErrNotFound)
	}
	return uc.withLectureCount(ctx, course)
}

func (uc *courseUsecase) GetCourseDetail(ctx context.Context, courseID uint) (*domain.CourseDetail, error) {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}
	return uc.withLectureCount(ctx, course)
}

func (uc *courseUsecase) withLectureCount(ctx context.Context, course *domain.Course) (*domain.CourseDetail, error) {
	count, err := uc.lectureRepo.CountByCourseID(ctx, course.ID)
	if err != nil {
		return nil, err
	}
	return &domain.CourseDetail{Course: *course, LectureCount: int(count)}, nil
}

// DeleteCourse removes the course and all its lectures. Progress
// records of enrolled students are intentionally left behind.
func (uc *courseUsecase) DeleteCourse(ctx context.Context, instructorID, courseID uint) error {
	course, err := uc.courseRepo.GetByID(ctx, courseID)
	if err != nil {
		return err
	}
	if !course.OwnedBy(instructorID) {
		return fmt.Errorf("you can only delete your own course: %w", domain.ErrForbidden)
	}

	if err := uc.lectureRepo.DeleteByCourseID(ctx, courseID); err != nil {
		return err
	}
	return uc.courseRepo.Delete(ctx, courseID)
}

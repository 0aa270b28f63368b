package usecase

import (
	"context"
	"fmt"

	"learnloop-backend/internal/domain"
	"learnloop-backend/pkg/utils"
)

type authUsecase struct {
	userRepo   domain.UserRepository
	courseRepo domain.CourseRepository
}

func NewAuthUsecase(ur domain.UserRepository, cr domain.CourseRepository) domain.AuthUsecase {
	return &authUsecase{userRepo: ur, courseRepo: cr}
}

// Register creates the user and, for instructors, their course in the
// same call. The email uniqueness check is left to the database index;
// the repository surfaces it as a conflict.
func (uc *authUsecase) Register(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error) {
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Role == "" {
		return nil, fmt.Errorf("missing fields: %w", domain.ErrInvalidInput)
	}
	if !input.Role.Valid() {
		return nil, fmt.Errorf("invalid role: %w", domain.ErrInvalidInput)
	}
	if input.Role == domain.RoleInstructor && (input.CourseTitle == "" || input.CourseDescription == "") {
		return nil, fmt.Errorf("course title and description required: %w", domain.ErrInvalidInput)
	}

	hashed, err := utils.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Role:     input.Role,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	var course *domain.Course
	if input.Role == domain.RoleInstructor {
		course = &domain.Course{
			Title:        input.CourseTitle,
			Description:  input.CourseDescription,
			InstructorID: &user.ID,
		}
		if err := uc.courseRepo.Create(ctx, course); err != nil {
			return nil, err
		}
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{Token: token, User: user, Course: course}, nil
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("missing fields: %w", domain.ErrInvalidInput)
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(password, user.Password) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := utils.GenerateJWT(user.ID, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &domain.AuthResult{Token: token, User: user}, nil
}

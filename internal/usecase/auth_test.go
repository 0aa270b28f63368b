package usecase_test

import (
	"context"
	"testing"

	"learnloop-backend/internal/domain"
	"learnloop-backend/internal/usecase"
	"learnloop-backend/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	user.ID = 1
	return args.Error(0)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*domain.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Student", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		courseRepo := new(MockCourseRepo)
		uc := usecase.NewAuthUsecase(userRepo, courseRepo)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		result, err := uc.Register(ctx, domain.RegisterInput{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "password123",
			Role:     domain.RoleStudent,
		})
		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Nil(t, result.Course)
		// Stored password is hashed, never the plaintext.
		assert.NotEqual(t, "password123", result.User.Password)
		courseRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Instructor Gets A Course", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		courseRepo := new(MockCourseRepo)
		uc := usecase.NewAuthUsecase(userRepo, courseRepo)
		userRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		courseRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

		result, err := uc.Register(ctx, domain.RegisterInput{
			Name:              "Grace",
			Email:             "grace@example.com",
			Password:          "password123",
			Role:              domain.RoleInstructor,
			CourseTitle:       "Compilers",
			CourseDescription: "From scratch",
		})
		assert.NoError(t, err)
		assert.NotNil(t, result.Course)
		assert.Equal(t, "Compilers", result.Course.Title)
		assert.Equal(t, result.User.ID, *result.Course.InstructorID)
	})

	t.Run("Instructor Without Course Fields", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), new(MockCourseRepo))

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name:     "Grace",
			Email:    "grace@example.com",
			Password: "password123",
			Role:     domain.RoleInstructor,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Invalid Role", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), new(MockCourseRepo))

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name:     "Eve",
			Email:    "eve@example.com",
			Password: "password123",
			Role:     "Admin",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		uc := usecase.NewAuthUsecase(new(MockUserRepo), new(MockCourseRepo))

		_, err := uc.Register(ctx, domain.RegisterInput{Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCourseRepo))
		userRepo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrConflict)

		_, err := uc.Register(ctx, domain.RegisterInput{
			Name:     "Ada",
			Email:    "ada@example.com",
			Password: "password123",
			Role:     domain.RoleStudent,
		})
		assert.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	hashed, _ := utils.HashPassword("password123")
	user := &domain.User{ID: 1, Email: "ada@example.com", Password: hashed, Role: domain.RoleStudent}

	t.Run("Valid Credentials", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCourseRepo))
		userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		result, err := uc.Login(ctx, "ada@example.com", "password123")
		assert.NoError(t, err)
		assert.NotEmpty(t, result.Token)

		claims, err := utils.ValidateJWT(result.Token)
		assert.NoError(t, err)
		assert.Equal(t, uint(1), claims.UserID)
		assert.Equal(t, string(domain.RoleStudent), claims.Role)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCourseRepo))
		userRepo.On("GetByEmail", mock.Anything, "ada@example.com").Return(user, nil)

		_, err := uc.Login(ctx, "ada@example.com", "wrong")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		userRepo := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(userRepo, new(MockCourseRepo))
		userRepo.On("GetByEmail", mock.Anything, "nobody@example.com").Return(nil, domain.ErrNotFound)

		_, err := uc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

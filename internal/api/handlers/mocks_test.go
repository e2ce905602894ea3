package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/isdelr/medapi/internal/models"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock implementation of services.UserServiceProvider
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) ListUsers(ctx context.Context, skip, limit int) ([]models.User, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, input models.UserCreate) (models.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (models.User, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserService) DeleteUser(ctx context.Context, id string) (models.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.User), args.Error(1)
}

// MockLabResultService is a mock implementation of services.LabResultServiceProvider
type MockLabResultService struct {
	mock.Mock
}

func (m *MockLabResultService) ListLabResults(ctx context.Context, skip, limit int) ([]models.LabResult, error) {
	args := m.Called(ctx, skip, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.LabResult), args.Error(1)
}

func (m *MockLabResultService) ListUserLabResults(ctx context.Context, userID string, skip, limit int) (models.LabResultList, error) {
	args := m.Called(ctx, userID, skip, limit)
	return args.Get(0).(models.LabResultList), args.Error(1)
}

func (m *MockLabResultService) GetLabResultByID(ctx context.Context, id string) (models.LabResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.LabResult), args.Error(1)
}

func (m *MockLabResultService) CreateLabResult(ctx context.Context, input models.LabResultCreate) (models.LabResult, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(models.LabResult), args.Error(1)
}

func (m *MockLabResultService) UpdateLabResult(ctx context.Context, id string, update models.LabResultUpdate) (models.LabResult, error) {
	args := m.Called(ctx, id, update)
	return args.Get(0).(models.LabResult), args.Error(1)
}

func (m *MockLabResultService) DeleteLabResult(ctx context.Context, id string) (models.LabResult, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.LabResult), args.Error(1)
}

// setupTestRouter mounts the handlers on the same paths the real router uses.
func setupTestRouter(users *MockUserService, results *MockLabResultService) http.Handler {
	r := chi.NewRouter()

	uh := NewUserHandler(users)
	r.Route("/users", func(r chi.Router) {
		r.Get("/", uh.GetAll)
		r.Post("/", uh.Create)
		r.Get("/{id}", uh.Get)
		r.Put("/{id}", uh.Update)
		r.Delete("/{id}", uh.Delete)
	})

	rh := NewLabResultHandler(results)
	r.Route("/results", func(r chi.Router) {
		r.Get("/", rh.GetAll)
		r.Post("/", rh.Create)
		r.Get("/user/{userID}", rh.GetByUser)
		r.Get("/{id}", rh.Get)
		r.Put("/{id}", rh.Update)
		r.Delete("/{id}", rh.Delete)
	})

	return r
}

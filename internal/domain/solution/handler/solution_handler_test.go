package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studyshare/internal/domain/solution/model"
	"studyshare/internal/domain/solution/repository"
	"studyshare/internal/domain/solution/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSolutionService is a mock of SolutionService
type MockSolutionService struct {
	mock.Mock
}

func (m *MockSolutionService) List(filter repository.SolutionFilter) ([]model.SolutionWithDetails, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.SolutionWithDetails), args.Error(1)
}

func (m *MockSolutionService) ListFeatured() ([]model.SolutionWithDetails, error) {
	args := m.Called()
	return args.Get(0).([]model.SolutionWithDetails), args.Error(1)
}

func (m *MockSolutionService) Get(id string) (*model.SolutionWithDetails, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SolutionWithDetails), args.Error(1)
}

func (m *MockSolutionService) Create(subject string, input service.CreateSolutionInput) (*model.Solution, error) {
	args := m.Called(subject, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Solution), args.Error(1)
}

func (m *MockSolutionService) Update(subject, id string, input service.UpdateSolutionInput) (*model.Solution, error) {
	args := m.Called(subject, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Solution), args.Error(1)
}

func (m *MockSolutionService) Approve(subject, id string) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockSolutionService) IncrementView(subject, id string) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func postJSON(t *testing.T, handle gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/solutions", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handle(c)
	return w
}

func TestCreateSolutionValidation(t *testing.T) {
	t.Run("Unknown difficulty rejected before service", func(t *testing.T) {
		mockService := new(MockSolutionService)
		h := NewSolutionHandler(mockService, nil)

		w := postJSON(t, h.CreateSolution, `{"title":"t","content":"c","difficulty":"expert"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Known difficulty passes binding", func(t *testing.T) {
		mockService := new(MockSolutionService)
		h := NewSolutionHandler(mockService, nil)

		mockService.On("Create", "", mock.AnythingOfType("service.CreateSolutionInput")).
			Return(&model.Solution{}, nil)

		w := postJSON(t, h.CreateSolution, `{"title":"t","content":"c","difficulty":"`+model.DifficultyBeginner+`"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("Omitted difficulty allowed", func(t *testing.T) {
		mockService := new(MockSolutionService)
		h := NewSolutionHandler(mockService, nil)

		mockService.On("Create", "", mock.AnythingOfType("service.CreateSolutionInput")).
			Return(&model.Solution{}, nil)

		w := postJSON(t, h.CreateSolution, `{"title":"t","content":"c"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"studyshare/internal/domain/document/model"
	"studyshare/internal/domain/document/repository"
	"studyshare/internal/domain/document/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockDocumentService is a mock of DocumentService
type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) List(filter repository.DocumentFilter) ([]model.Document, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) ListFeatured() ([]model.Document, error) {
	args := m.Called()
	return args.Get(0).([]model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(id string) (*model.DocumentWithDetails, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.DocumentWithDetails), args.Error(1)
}

func (m *MockDocumentService) Create(subject string, input service.CreateDocumentInput) (*model.Document, error) {
	args := m.Called(subject, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Approve(subject, id string) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func (m *MockDocumentService) RecordDownload(subject, id string) error {
	args := m.Called(subject, id)
	return args.Error(0)
}

func postJSON(t *testing.T, handle gin.HandlerFunc, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/documents", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	handle(c)
	return w
}

func TestCreateDocumentValidation(t *testing.T) {
	t.Run("Unknown document type rejected before service", func(t *testing.T) {
		mockService := new(MockDocumentService)
		h := NewDocumentHandler(mockService, nil)

		w := postJSON(t, h.CreateDocument, `{"title":"t","documentType":"mixtape"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Missing document type rejected", func(t *testing.T) {
		mockService := new(MockDocumentService)
		h := NewDocumentHandler(mockService, nil)

		w := postJSON(t, h.CreateDocument, `{"title":"t"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Known document type passes binding", func(t *testing.T) {
		mockService := new(MockDocumentService)
		h := NewDocumentHandler(mockService, nil)

		mockService.On("Create", "", mock.AnythingOfType("service.CreateDocumentInput")).
			Return(&model.Document{}, nil)

		w := postJSON(t, h.CreateDocument, `{"title":"t","documentType":"lab_report"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

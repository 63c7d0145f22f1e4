package service

import (
	"testing"

	"studyshare/internal/domain/solution/model"
	"studyshare/internal/domain/solution/repository"
	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	userModel "studyshare/internal/domain/user/model"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/errs"
	baseModel "studyshare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockSolutionRepository is a mock of SolutionRepository
type MockSolutionRepository struct {
	mock.Mock
}

func (m *MockSolutionRepository) List(filter repository.SolutionFilter) ([]model.Solution, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Solution), args.Error(1)
}

func (m *MockSolutionRepository) ListFeatured(limit int) ([]model.Solution, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.Solution), args.Error(1)
}

func (m *MockSolutionRepository) GetByID(id string) (*model.Solution, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Solution), args.Error(1)
}

func (m *MockSolutionRepository) Create(solution *model.Solution) error {
	args := m.Called(solution)
	return args.Error(0)
}

func (m *MockSolutionRepository) UpdateFields(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockSolutionRepository) Approve(id, approverID string) error {
	args := m.Called(id, approverID)
	return args.Error(0)
}

func (m *MockSolutionRepository) IncrementViewCount(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockSolutionRepository) FindAuthor(id string) (*userModel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockSolutionRepository) FindCategory(id string) (*taxonomyModel.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomyModel.Category), args.Error(1)
}

func (m *MockSolutionRepository) FindTags(ids []string) ([]taxonomyModel.Tag, error) {
	args := m.Called(ids)
	return args.Get(0).([]taxonomyModel.Tag), args.Error(1)
}

// stubResolver resolves every non-empty subject to a fixed user
type stubResolver struct {
	userID string
}

func (r *stubResolver) Resolve(subject string) (*identity.Identity, error) {
	if subject == "" {
		return nil, errs.ErrUnauthenticated
	}
	return &identity.Identity{UserID: r.userID, AuthSubject: subject, Role: "student"}, nil
}

func newSolution(id, authorID string) *model.Solution {
	return &model.Solution{
		BaseModel: baseModel.BaseModel{ID: id},
		Title:     "Two pointers walkthrough",
		AuthorID:  authorID,
	}
}

func TestListFeaturedSolutions(t *testing.T) {
	t.Run("Featured rows carry author and category", func(t *testing.T) {
		mockRepo := new(MockSolutionRepository)
		service := NewSolutionService(mockRepo, nil, nil, &stubResolver{userID: "user-1"}, nil)

		featured := *newSolution("sol-1", "author-1")
		featured.CategoryID = "cat-1"
		mockRepo.On("ListFeatured", 6).Return([]model.Solution{featured}, nil)
		mockRepo.On("FindAuthor", "author-1").Return(&userModel.User{Name: "Grace"}, nil)
		mockRepo.On("FindCategory", "cat-1").Return(&taxonomyModel.Category{Name: "Algorithms"}, nil)

		items, err := service.ListFeatured()

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Grace", items[0].Author.Name)
		assert.Equal(t, "Algorithms", items[0].Category.Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateSolution(t *testing.T) {
	t.Run("Author moves solution to another category with new tags", func(t *testing.T) {
		mockRepo := new(MockSolutionRepository)
		service := NewSolutionService(mockRepo, nil, nil, &stubResolver{userID: "author-1"}, nil)
		categoryID := "cat-2"
		tagIDs := []string{"t-1"}

		mockRepo.On("GetByID", "sol-1").Return(newSolution("sol-1", "author-1"), nil)
		mockRepo.On("UpdateFields", "sol-1", map[string]interface{}{
			"category_id": categoryID,
			"tag_ids":     tagIDs,
		}).Return(nil)

		_, err := service.Update("auth0|author", "sol-1", UpdateSolutionInput{CategoryID: &categoryID, TagIDs: &tagIDs})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Stranger rejected", func(t *testing.T) {
		mockRepo := new(MockSolutionRepository)
		service := NewSolutionService(mockRepo, nil, nil, &stubResolver{userID: "other-1"}, nil)
		title := "hijack"

		mockRepo.On("GetByID", "sol-1").Return(newSolution("sol-1", "author-1"), nil)

		_, err := service.Update("auth0|other", "sol-1", UpdateSolutionInput{Title: &title})

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	})
}

package service

import (
	"testing"

	"studyshare/internal/domain/taxonomy/model"
	"studyshare/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockTaxonomyRepository is a mock of TaxonomyRepository
type MockTaxonomyRepository struct {
	mock.Mock
}

func (m *MockTaxonomyRepository) ListActiveCategories() ([]model.Category, error) {
	args := m.Called()
	return args.Get(0).([]model.Category), args.Error(1)
}

func (m *MockTaxonomyRepository) CreateCategory(category *model.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) ListTags() ([]model.Tag, error) {
	args := m.Called()
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTaxonomyRepository) ListPopularTags(limit int) ([]model.Tag, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTaxonomyRepository) CreateTag(tag *model.Tag) error {
	args := m.Called(tag)
	return args.Error(0)
}

func (m *MockTaxonomyRepository) IncrementTagUsage(tagIDs []string) error {
	args := m.Called(tagIDs)
	return args.Error(0)
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Computer Science":      "computer-science",
		"  Data Structures  ":   "data-structures",
		"C++ & Go!":             "c-go",
		"Machine Learning 101":  "machine-learning-101",
		"---":                   "",
		"Déjà Vu":               "déjà-vu",
		"multiple   spaces   x": "multiple-spaces-x",
	}
	for input, want := range cases {
		assert.Equal(t, want, slugify(input), "slugify(%q)", input)
	}
}

func TestCreateCategory(t *testing.T) {
	t.Run("Slug derived from name when absent", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("CreateCategory", mock.AnythingOfType("*model.Category")).Return(nil)

		category, err := service.CreateCategory("Computer Science", "", "CS stuff", "#336699", "cpu")

		assert.NoError(t, err)
		assert.Equal(t, "computer-science", category.Slug)
		assert.True(t, category.IsActive)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Caller supplied slug kept as is", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("CreateCategory", mock.AnythingOfType("*model.Category")).Return(nil)

		category, err := service.CreateCategory("Computer Science", "cs", "", "", "")

		assert.NoError(t, err)
		assert.Equal(t, "cs", category.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Name without slug material rejected", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		category, err := service.CreateCategory("!!!", "", "", "", "")

		assert.Nil(t, category)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "CreateCategory", mock.Anything)
	})
}

func TestCreateTag(t *testing.T) {
	t.Run("Caller supplied slug kept as is", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("CreateTag", mock.AnythingOfType("*model.Tag")).Return(nil)

		tag, err := service.CreateTag("Dynamic Programming", "dp", "", "#aa3377")

		assert.NoError(t, err)
		assert.Equal(t, "dp", tag.Slug)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Slug derived from name when absent", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("CreateTag", mock.AnythingOfType("*model.Tag")).Return(nil)

		tag, err := service.CreateTag("Dynamic Programming", "", "", "")

		assert.NoError(t, err)
		assert.Equal(t, "dynamic-programming", tag.Slug)
		mockRepo.AssertExpectations(t)
	})
}

func TestListPopularTags(t *testing.T) {
	t.Run("Default limit applied when absent", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("ListPopularTags", 20).Return([]model.Tag{}, nil)

		_, err := service.ListPopularTags(-1)

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit zero limit passed through", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("ListPopularTags", 0).Return([]model.Tag{}, nil)

		tags, err := service.ListPopularTags(0)

		assert.NoError(t, err)
		assert.Empty(t, tags)
		mockRepo.AssertExpectations(t)
	})
}

func TestRecordTagUsage(t *testing.T) {
	t.Run("Usage increment delegated to repository", func(t *testing.T) {
		mockRepo := new(MockTaxonomyRepository)
		service := NewTaxonomyService(mockRepo)

		mockRepo.On("IncrementTagUsage", []string{"t-1", "t-2"}).Return(nil)

		assert.NoError(t, service.RecordTagUsage([]string{"t-1", "t-2"}))
		mockRepo.AssertExpectations(t)
	})
}

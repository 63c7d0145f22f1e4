package service

import (
	"testing"

	interactionModel "studyshare/internal/domain/interaction/model"
	interactionRepo "studyshare/internal/domain/interaction/repository"
	taxonomyModel "studyshare/internal/domain/taxonomy/model"
	"studyshare/internal/domain/tutorial/model"
	"studyshare/internal/domain/tutorial/repository"
	userModel "studyshare/internal/domain/user/model"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/errs"
	baseModel "studyshare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockTutorialRepository is a mock of TutorialRepository
type MockTutorialRepository struct {
	mock.Mock
}

func (m *MockTutorialRepository) List(filter repository.TutorialFilter) ([]model.Tutorial, error) {
	args := m.Called(filter)
	return args.Get(0).([]model.Tutorial), args.Error(1)
}

func (m *MockTutorialRepository) ListFeatured(limit int) ([]model.Tutorial, error) {
	args := m.Called(limit)
	return args.Get(0).([]model.Tutorial), args.Error(1)
}

func (m *MockTutorialRepository) GetByID(id string) (*model.Tutorial, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tutorial), args.Error(1)
}

func (m *MockTutorialRepository) Create(tutorial *model.Tutorial) error {
	args := m.Called(tutorial)
	return args.Error(0)
}

func (m *MockTutorialRepository) UpdateFields(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockTutorialRepository) Approve(id, approverID string) error {
	args := m.Called(id, approverID)
	return args.Error(0)
}

func (m *MockTutorialRepository) IncrementViewCount(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockTutorialRepository) FindAuthor(id string) (*userModel.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*userModel.User), args.Error(1)
}

func (m *MockTutorialRepository) FindCategory(id string) (*taxonomyModel.Category, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*taxonomyModel.Category), args.Error(1)
}

func (m *MockTutorialRepository) FindTags(ids []string) ([]taxonomyModel.Tag, error) {
	args := m.Called(ids)
	return args.Get(0).([]taxonomyModel.Tag), args.Error(1)
}

// notificationRecorder 只记录发出的通知，其余接口方法不会被调用
type notificationRecorder struct {
	interactionRepo.InteractionRepository
	sent []*interactionModel.Notification
}

func (r *notificationRecorder) CreateNotification(n *interactionModel.Notification) error {
	r.sent = append(r.sent, n)
	return nil
}

// roleResolver resolves every non-empty subject to a fixed user and role
type roleResolver struct {
	userID string
	role   string
}

func (r *roleResolver) Resolve(subject string) (*identity.Identity, error) {
	if subject == "" {
		return nil, errs.ErrUnauthenticated
	}
	return &identity.Identity{UserID: r.userID, AuthSubject: subject, Role: r.role}, nil
}

func newTutorial(id, authorID string) *model.Tutorial {
	return &model.Tutorial{
		BaseModel: baseModel.BaseModel{ID: id},
		Title:     "Intro to Graphs",
		AuthorID:  authorID,
	}
}

func TestApproveTutorial(t *testing.T) {
	t.Run("Moderator approval notifies author", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		notifier := &notificationRecorder{}
		service := NewTutorialService(mockRepo, nil, notifier, &roleResolver{userID: "mod-1", role: "instructor"}, nil)

		mockRepo.On("GetByID", "tut-1").Return(newTutorial("tut-1", "author-1"), nil)
		mockRepo.On("Approve", "tut-1", "mod-1").Return(nil)

		err := service.Approve("auth0|mod", "tut-1")

		assert.NoError(t, err)
		assert.Len(t, notifier.sent, 1)
		assert.Equal(t, "author-1", notifier.sent[0].UserID)
		assert.Equal(t, interactionModel.NotificationTypeApproval, notifier.sent[0].Type)
		assert.Equal(t, "tut-1", notifier.sent[0].RelatedID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Student cannot approve", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "user-1", role: "student"}, nil)

		err := service.Approve("auth0|user", "tut-1")

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "Approve", mock.Anything, mock.Anything)
	})

	t.Run("Missing tutorial", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "mod-1", role: "admin"}, nil)

		mockRepo.On("GetByID", "nope").Return(nil, gorm.ErrRecordNotFound)

		err := service.Approve("auth0|mod", "nope")

		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}

func TestUpdateTutorial(t *testing.T) {
	t.Run("Author updates own fields", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "author-1", role: "student"}, nil)
		title := "Graphs, revisited"

		mockRepo.On("GetByID", "tut-1").Return(newTutorial("tut-1", "author-1"), nil)
		mockRepo.On("UpdateFields", "tut-1", map[string]interface{}{"title": title}).Return(nil)

		_, err := service.Update("auth0|author", "tut-1", UpdateTutorialInput{Title: &title})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Author moves tutorial to another category with new tags", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "author-1", role: "student"}, nil)
		categoryID := "cat-2"
		tagIDs := []string{"t-1", "t-2"}

		mockRepo.On("GetByID", "tut-1").Return(newTutorial("tut-1", "author-1"), nil)
		mockRepo.On("UpdateFields", "tut-1", map[string]interface{}{
			"category_id": categoryID,
			"tag_ids":     tagIDs,
		}).Return(nil)

		_, err := service.Update("auth0|author", "tut-1", UpdateTutorialInput{CategoryID: &categoryID, TagIDs: &tagIDs})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Author cannot set featured flag", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "author-1", role: "student"}, nil)
		featured := true

		mockRepo.On("GetByID", "tut-1").Return(newTutorial("tut-1", "author-1"), nil)

		_, err := service.Update("auth0|author", "tut-1", UpdateTutorialInput{IsFeatured: &featured})

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
	})

	t.Run("Moderator sets featured flag", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "mod-1", role: "admin"}, nil)
		featured := true

		mockRepo.On("GetByID", "tut-1").Return(newTutorial("tut-1", "author-1"), nil)
		mockRepo.On("UpdateFields", "tut-1", map[string]interface{}{"is_featured": true}).Return(nil)

		_, err := service.Update("auth0|mod", "tut-1", UpdateTutorialInput{IsFeatured: &featured})

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Stranger rejected", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "other-1", role: "student"}, nil)
		title := "hijack"

		mockRepo.On("GetByID", "tut-1").Return(newTutorial("tut-1", "author-1"), nil)

		_, err := service.Update("auth0|other", "tut-1", UpdateTutorialInput{Title: &title})

		assert.ErrorIs(t, err, errs.ErrPermissionDenied)
	})
}

func TestListFeaturedTutorials(t *testing.T) {
	t.Run("Featured rows carry author and category", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "user-1", role: "student"}, nil)

		featured := *newTutorial("tut-1", "author-1")
		featured.CategoryID = "cat-1"
		mockRepo.On("ListFeatured", 6).Return([]model.Tutorial{featured}, nil)
		mockRepo.On("FindAuthor", "author-1").Return(&userModel.User{Name: "Ada"}, nil)
		mockRepo.On("FindCategory", "cat-1").Return(&taxonomyModel.Category{Name: "Algorithms"}, nil)

		items, err := service.ListFeatured()

		assert.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, "Ada", items[0].Author.Name)
		assert.Equal(t, "Algorithms", items[0].Category.Name)
		mockRepo.AssertExpectations(t)
	})
}

func TestGetTutorial(t *testing.T) {
	t.Run("Missing tutorial returns nil without error", func(t *testing.T) {
		mockRepo := new(MockTutorialRepository)
		service := NewTutorialService(mockRepo, nil, &notificationRecorder{}, &roleResolver{userID: "user-1", role: "student"}, nil)

		mockRepo.On("GetByID", "nope").Return(nil, gorm.ErrRecordNotFound)

		details, err := service.Get("nope")

		assert.NoError(t, err)
		assert.Nil(t, details)
	})
}

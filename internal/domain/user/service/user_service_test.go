package service

import (
	"testing"
	"time"

	"studyshare/internal/domain/user/model"
	"studyshare/pkg/errs"
	baseModel "studyshare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

// MockUserRepository is a mock of UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpsertByAuthSubject(user *model.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByAuthSubject(subject string) (*model.User, error) {
	args := m.Called(subject)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id string) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) UpdateFields(id string, updates map[string]interface{}) error {
	args := m.Called(id, updates)
	return args.Error(0)
}

func (m *MockUserRepository) GetDocumentStats(authorID string) (int64, int64, error) {
	args := m.Called(authorID)
	return args.Get(0).(int64), args.Get(1).(int64), args.Error(2)
}

func createTestUser(id, subject string) *model.User {
	return &model.User{
		BaseModel:   baseModel.BaseModel{ID: id},
		AuthSubject: subject,
		Name:        "Test User",
		Email:       "test@example.com",
		Role:        model.RoleStudent,
		JoinedAt:    time.Now(),
	}
}

func TestResolve(t *testing.T) {
	t.Run("Resolve known subject", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := createTestUser("user-1", "google|abc")

		mockRepo.On("GetByAuthSubject", "google|abc").Return(user, nil)

		id, err := service.Resolve("google|abc")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", id.UserID)
		assert.Equal(t, model.RoleStudent, id.Role)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty subject is unauthenticated", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		id, err := service.Resolve("")

		assert.Nil(t, id)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})

	t.Run("Unknown subject is user not found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByAuthSubject", "google|nobody").Return(nil, gorm.ErrRecordNotFound)

		id, err := service.Resolve("google|nobody")

		assert.Nil(t, id)
		assert.ErrorIs(t, err, errs.ErrUserNotFound)
		mockRepo.AssertExpectations(t)
	})
}

func TestSyncIdentity(t *testing.T) {
	t.Run("First sync creates user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := createTestUser("user-1", "google|abc")

		mockRepo.On("UpsertByAuthSubject", mock.AnythingOfType("*model.User")).Return(nil)
		mockRepo.On("GetByAuthSubject", "google|abc").Return(user, nil)

		result, err := service.SyncIdentity("google|abc", "Test User", "test@example.com", "")

		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Repeated sync is idempotent", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := createTestUser("user-1", "google|abc")

		mockRepo.On("UpsertByAuthSubject", mock.AnythingOfType("*model.User")).Return(nil).Twice()
		mockRepo.On("GetByAuthSubject", "google|abc").Return(user, nil).Twice()

		first, err := service.SyncIdentity("google|abc", "Test User", "test@example.com", "")
		assert.NoError(t, err)
		second, err := service.SyncIdentity("google|abc", "Test User", "test@example.com", "")
		assert.NoError(t, err)

		assert.Equal(t, first.ID, second.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty subject rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		result, err := service.SyncIdentity("", "Name", "mail", "")

		assert.Nil(t, result)
		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
	})
}

func TestGetByAuthSubject(t *testing.T) {
	t.Run("Missing user returns nil without error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByAuthSubject", "google|nobody").Return(nil, gorm.ErrRecordNotFound)

		result, err := service.GetByAuthSubject("google|nobody")

		assert.NoError(t, err)
		assert.Nil(t, result)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Empty subject returns nil", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		result, err := service.GetByAuthSubject("")

		assert.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestGetProfile(t *testing.T) {
	t.Run("Profile includes document stats", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := createTestUser("user-1", "google|abc")

		mockRepo.On("GetByID", "user-1").Return(user, nil)
		mockRepo.On("GetDocumentStats", "user-1").Return(int64(3), int64(42), nil)

		profile, err := service.GetProfile("user-1")

		assert.NoError(t, err)
		assert.Equal(t, int64(3), profile.DocumentsCount)
		assert.Equal(t, int64(42), profile.TotalDownloads)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Missing user returns nil without error", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)

		mockRepo.On("GetByID", "missing").Return(nil, gorm.ErrRecordNotFound)

		profile, err := service.GetProfile("missing")

		assert.NoError(t, err)
		assert.Nil(t, profile)
		mockRepo.AssertExpectations(t)
	})
}

func TestUpdateProfile(t *testing.T) {
	t.Run("Only provided fields updated", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := createTestUser("user-1", "google|abc")
		newBio := "Hello"

		mockRepo.On("GetByAuthSubject", "google|abc").Return(user, nil)
		mockRepo.On("UpdateFields", "user-1", map[string]interface{}{"bio": newBio}).Return(nil)
		mockRepo.On("GetByID", "user-1").Return(user, nil)

		result, err := service.UpdateProfile("google|abc", ProfileUpdate{Bio: &newBio})

		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.ID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("No fields skips write", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		service := NewUserService(mockRepo)
		user := createTestUser("user-1", "google|abc")

		mockRepo.On("GetByAuthSubject", "google|abc").Return(user, nil)
		mockRepo.On("GetByID", "user-1").Return(user, nil)

		result, err := service.UpdateProfile("google|abc", ProfileUpdate{})

		assert.NoError(t, err)
		assert.Equal(t, "user-1", result.ID)
		mockRepo.AssertNotCalled(t, "UpdateFields", mock.Anything, mock.Anything)
		mockRepo.AssertExpectations(t)
	})
}

package service

import (
	"testing"

	"studyshare/internal/domain/interaction/model"
	"studyshare/internal/pkg/identity"
	"studyshare/pkg/errs"
	baseModel "studyshare/pkg/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockInteractionRepository is a mock of InteractionRepository
type MockInteractionRepository struct {
	mock.Mock
}

func (m *MockInteractionRepository) ToggleInteraction(userID string, contentType model.ContentType, contentID string, interactionType model.InteractionType) (bool, error) {
	args := m.Called(userID, contentType, contentID, interactionType)
	return args.Bool(0), args.Error(1)
}

func (m *MockInteractionRepository) CreateInteraction(i *model.Interaction) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockInteractionRepository) CountInteractions(contentType model.ContentType, contentID string, interactionType model.InteractionType) (int64, error) {
	args := m.Called(contentType, contentID, interactionType)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInteractionRepository) RebuildLikeCount(contentType model.ContentType, contentID string) error {
	args := m.Called(contentType, contentID)
	return args.Error(0)
}

func (m *MockInteractionRepository) CreateComment(comment *model.Comment) error {
	args := m.Called(comment)
	return args.Error(0)
}

func (m *MockInteractionRepository) GetCommentByID(id string) (*model.Comment, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Comment), args.Error(1)
}

func (m *MockInteractionRepository) ListTopLevelComments(contentType model.ContentType, contentID string) ([]model.Comment, error) {
	args := m.Called(contentType, contentID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockInteractionRepository) ListReplies(parentID string) ([]model.Comment, error) {
	args := m.Called(parentID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockInteractionRepository) UpsertRating(rating *model.Rating) error {
	args := m.Called(rating)
	return args.Error(0)
}

func (m *MockInteractionRepository) CreateNotification(n *model.Notification) error {
	args := m.Called(n)
	return args.Error(0)
}

func (m *MockInteractionRepository) ListNotifications(userID string, unreadOnly bool, offset, limit int) ([]model.Notification, int64, error) {
	args := m.Called(userID, unreadOnly, offset, limit)
	return args.Get(0).([]model.Notification), args.Get(1).(int64), args.Error(2)
}

func (m *MockInteractionRepository) MarkNotificationRead(id, userID string) error {
	args := m.Called(id, userID)
	return args.Error(0)
}

// stubResolver resolves a fixed subject to a fixed user
type stubResolver struct {
	userID string
}

func (r *stubResolver) Resolve(subject string) (*identity.Identity, error) {
	if subject == "" {
		return nil, errs.ErrUnauthenticated
	}
	return &identity.Identity{UserID: r.userID, AuthSubject: subject, Role: "student"}, nil
}

func newComment(id, authorID string, contentType model.ContentType, contentID string, parentID *string) *model.Comment {
	return &model.Comment{
		BaseModel:   baseModel.BaseModel{ID: id},
		AuthorID:    authorID,
		ContentType: contentType,
		ContentID:   contentID,
		ParentID:    parentID,
	}
}

func TestToggleLike(t *testing.T) {
	t.Run("Like then unlike flips state", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		mockRepo.On("ToggleInteraction", "user-1", model.ContentTypeSolution, "sol-1", model.InteractionLike).
			Return(true, nil).Once()
		mockRepo.On("ToggleInteraction", "user-1", model.ContentTypeSolution, "sol-1", model.InteractionLike).
			Return(false, nil).Once()

		liked, err := service.ToggleLike("google|abc", model.ContentTypeSolution, "sol-1")
		assert.NoError(t, err)
		assert.True(t, liked)

		liked, err = service.ToggleLike("google|abc", model.ContentTypeSolution, "sol-1")
		assert.NoError(t, err)
		assert.False(t, liked)

		mockRepo.AssertExpectations(t)
	})

	t.Run("Anonymous caller rejected", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		_, err := service.ToggleLike("", model.ContentTypeSolution, "sol-1")

		assert.ErrorIs(t, err, errs.ErrUnauthenticated)
		mockRepo.AssertNotCalled(t, "ToggleInteraction", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Unknown content type rejected", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		_, err := service.ToggleLike("google|abc", model.ContentType("playlist"), "x")

		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func TestToggleBookmark(t *testing.T) {
	t.Run("Bookmark targets tutorials", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		mockRepo.On("ToggleInteraction", "user-1", model.ContentTypeTutorial, "tut-1", model.InteractionBookmark).
			Return(true, nil)

		bookmarked, err := service.ToggleBookmark("google|abc", "tut-1")

		assert.NoError(t, err)
		assert.True(t, bookmarked)
		mockRepo.AssertExpectations(t)
	})
}

func TestListComments(t *testing.T) {
	t.Run("Threads carry one level of replies", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		top := []model.Comment{
			*newComment("c-2", "user-2", model.ContentTypeSolution, "sol-1", nil),
			*newComment("c-1", "user-1", model.ContentTypeSolution, "sol-1", nil),
		}
		mockRepo.On("ListTopLevelComments", model.ContentTypeSolution, "sol-1").Return(top, nil)
		mockRepo.On("ListReplies", "c-2").Return([]model.Comment{
			*newComment("c-3", "user-1", model.ContentTypeSolution, "sol-1", strPtr("c-2")),
		}, nil)
		mockRepo.On("ListReplies", "c-1").Return([]model.Comment{}, nil)

		threads, err := service.ListComments(model.ContentTypeSolution, "sol-1")

		assert.NoError(t, err)
		assert.Len(t, threads, 2)
		assert.Equal(t, "c-2", threads[0].ID)
		assert.Len(t, threads[0].Replies, 1)
		assert.Empty(t, threads[1].Replies)
		mockRepo.AssertExpectations(t)
	})
}

func TestCreateComment(t *testing.T) {
	t.Run("Top level comment created approved", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Return(nil)

		comment, err := service.CreateComment("google|abc", model.ContentTypeTutorial, "tut-1", "Nice!", nil)

		assert.NoError(t, err)
		assert.True(t, comment.IsApproved)
		assert.Nil(t, comment.ParentID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Reply notifies parent author", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})
		parent := newComment("c-1", "user-2", model.ContentTypeTutorial, "tut-1", nil)

		mockRepo.On("GetCommentByID", "c-1").Return(parent, nil)
		mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Return(nil)
		mockRepo.On("CreateNotification", mock.AnythingOfType("*model.Notification")).Return(nil)

		comment, err := service.CreateComment("google|abc", model.ContentTypeTutorial, "tut-1", "Agreed", strPtr("c-1"))

		assert.NoError(t, err)
		assert.Equal(t, "c-1", *comment.ParentID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Reply to reply attaches to root comment", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})
		root := newComment("c-1", "user-2", model.ContentTypeTutorial, "tut-1", nil)
		reply := newComment("c-2", "user-3", model.ContentTypeTutorial, "tut-1", strPtr("c-1"))

		mockRepo.On("GetCommentByID", "c-2").Return(reply, nil)
		mockRepo.On("GetCommentByID", "c-1").Return(root, nil)
		mockRepo.On("CreateComment", mock.AnythingOfType("*model.Comment")).Return(nil)
		mockRepo.On("CreateNotification", mock.AnythingOfType("*model.Notification")).Return(nil)

		comment, err := service.CreateComment("google|abc", model.ContentTypeTutorial, "tut-1", "Me too", strPtr("c-2"))

		assert.NoError(t, err)
		assert.Equal(t, "c-1", *comment.ParentID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Parent on different content rejected", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})
		parent := newComment("c-1", "user-2", model.ContentTypeSolution, "sol-9", nil)

		mockRepo.On("GetCommentByID", "c-1").Return(parent, nil)

		_, err := service.CreateComment("google|abc", model.ContentTypeTutorial, "tut-1", "?", strPtr("c-1"))

		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
		mockRepo.AssertNotCalled(t, "CreateComment", mock.Anything)
	})
}

func TestRateContent(t *testing.T) {
	t.Run("Valid rating upserted", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		mockRepo.On("UpsertRating", mock.AnythingOfType("*model.Rating")).Return(nil)

		err := service.RateContent("google|abc", model.ContentTypeTutorial, "tut-1", 5, "great")

		assert.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Stars out of range rejected", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		assert.ErrorIs(t, service.RateContent("google|abc", model.ContentTypeSolution, "sol-1", 0, ""), errs.ErrInvalidArgument)
		assert.ErrorIs(t, service.RateContent("google|abc", model.ContentTypeSolution, "sol-1", 6, ""), errs.ErrInvalidArgument)
	})

	t.Run("Only solutions and tutorials ratable", func(t *testing.T) {
		mockRepo := new(MockInteractionRepository)
		service := NewInteractionService(mockRepo, &stubResolver{userID: "user-1"})

		err := service.RateContent("google|abc", model.ContentTypeAssignment, "doc-1", 4, "")

		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	})
}

func strPtr(s string) *string {
	return &s
}

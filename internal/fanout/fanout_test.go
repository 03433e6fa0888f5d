package fanout

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"recipehub/internal/model"
)

// MockStore is a mock implementation of Store.
type MockStore struct {
	mock.Mock
	nextID uint
}

func (m *MockStore) FollowersOf(ctx context.Context, userID int) ([]int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockStore) SaversOf(ctx context.Context, recipeID int) ([]int, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockStore) OwnerOf(ctx context.Context, recipeID int) (int, error) {
	args := m.Called(ctx, recipeID)
	return args.Int(0), args.Error(1)
}

func (m *MockStore) UsernameOf(ctx context.Context, userID int) (string, error) {
	args := m.Called(ctx, userID)
	return args.String(0), args.Error(1)
}

func (m *MockStore) CreateNotification(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	if args.Error(0) == nil {
		m.nextID++
		n.ID = m.nextID
	}
	return args.Error(0)
}

// MockPublisher is a mock implementation of Publisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, n model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func newEngine() *Engine {
	return NewEngine(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestEngine_OnRecipeCreated(t *testing.T) {
	tests := []struct {
		name      string
		followers []int
		setupMock func(*MockStore)
		wantCount int
		wantErr   bool
	}{
		{
			name:      "one notification per follower",
			followers: []int{2, 3},
			setupMock: func(m *MockStore) {
				m.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
					return n.OriginUserID == 1 && n.Message == "alice added a new recipe: Soup"
				})).Return(nil).Twice()
			},
			wantCount: 2,
		},
		{
			name:      "no followers",
			followers: []int{},
			setupMock: func(*MockStore) {},
			wantCount: 0,
		},
		{
			name:      "insert failure aborts",
			followers: []int{2, 3},
			setupMock: func(m *MockStore) {
				m.On("CreateNotification", mock.Anything, mock.Anything).Return(errors.New("disk full")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := new(MockStore)
			st.On("UsernameOf", mock.Anything, 1).Return("alice", nil)
			st.On("FollowersOf", mock.Anything, 1).Return(tt.followers, nil)
			tt.setupMock(st)

			created, err := newEngine().OnRecipeCreated(context.Background(), st, 1, "Soup")

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, created)
			} else {
				require.NoError(t, err)
				assert.Len(t, created, tt.wantCount)
				for i, n := range created {
					assert.Equal(t, tt.followers[i], n.UserID)
				}
			}
			st.AssertExpectations(t)
		})
	}
}

func TestEngine_OnRecipeEdited_AttributesCurrentOwner(t *testing.T) {
	st := new(MockStore)
	st.On("SaversOf", mock.Anything, 10).Return([]int{4, 5}, nil)
	st.On("OwnerOf", mock.Anything, 10).Return(7, nil)
	st.On("UsernameOf", mock.Anything, 7).Return("carol", nil)
	st.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.OriginUserID == 7 && n.Message == "carol edited a recipe you saved: Stew"
	})).Return(nil).Twice()

	created, err := newEngine().OnRecipeEdited(context.Background(), st, 10, "Stew")

	require.NoError(t, err)
	require.Len(t, created, 2)
	assert.Equal(t, 4, created[0].UserID)
	assert.Equal(t, 5, created[1].UserID)
	st.AssertExpectations(t)
}

func TestEngine_OnRecipeEdited_NoSavers(t *testing.T) {
	st := new(MockStore)
	st.On("SaversOf", mock.Anything, 10).Return([]int{}, nil)

	created, err := newEngine().OnRecipeEdited(context.Background(), st, 10, "Stew")

	require.NoError(t, err)
	assert.Empty(t, created)
	st.AssertNotCalled(t, "OwnerOf", mock.Anything, mock.Anything)
}

func TestEngine_OnFollowed(t *testing.T) {
	st := new(MockStore)
	st.On("UsernameOf", mock.Anything, 2).Return("bob", nil)
	st.On("CreateNotification", mock.Anything, mock.MatchedBy(func(n *model.Notification) bool {
		return n.UserID == 1 && n.OriginUserID == 2 && n.Message == "bob started following you"
	})).Return(nil).Once()

	created, err := newEngine().OnFollowed(context.Background(), st, 2, 1)

	require.NoError(t, err)
	assert.Len(t, created, 1)
	st.AssertExpectations(t)
}

func TestEngine_PublishSwallowsErrors(t *testing.T) {
	pub := new(MockPublisher)
	notes := []model.Notification{{ID: 1, UserID: 2}, {ID: 2, UserID: 3}}
	pub.On("Publish", mock.Anything, notes[0]).Return(errors.New("gone")).Once()
	pub.On("Publish", mock.Anything, notes[1]).Return(nil).Once()

	newEngine().Publish(context.Background(), pub, notes)

	pub.AssertExpectations(t)
}

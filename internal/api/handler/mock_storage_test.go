package handler_test

import (
	"github.com/stretchr/testify/mock"

	"cotillion/backend/internal/models"
)

type MockStorage struct {
	mock.Mock
}

// mockUserNamed matches the *models.User argument by display name.
func mockUserNamed(name string) interface{} {
	return mock.MatchedBy(func(u *models.User) bool { return u.Name == name })
}

// setUserID simulates the BeforeCreate uuid hook on the mocked insert.
func setUserID(id string) func(mock.Arguments) {
	return func(args mock.Arguments) {
		args.Get(0).(*models.User).ID = id
	}
}

func (m *MockStorage) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetUserByName(name string) (*models.User, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) GetMemberByID(id string) (*models.Member, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Member), args.Error(1)
}

func (m *MockStorage) ListMembers() ([]models.Member, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Member), args.Error(1)
}

func (m *MockStorage) CreateAsk(fromID, toID, message string) (*models.Ask, error) {
	args := m.Called(fromID, toID, message)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ask), args.Error(1)
}

func (m *MockStorage) GetAskByID(id string) (*models.Ask, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ask), args.Error(1)
}

func (m *MockStorage) ListAsksForUser(userID string) ([]models.Ask, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ask), args.Error(1)
}

func (m *MockStorage) ListAsksByStatus(status models.AskStatus) ([]models.Ask, error) {
	args := m.Called(status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Ask), args.Error(1)
}

func (m *MockStorage) AcceptAsk(askID, actorID string) error {
	args := m.Called(askID, actorID)
	return args.Error(0)
}

func (m *MockStorage) DeclineAsk(askID, actorID string) error {
	args := m.Called(askID, actorID)
	return args.Error(0)
}

func (m *MockStorage) CancelAsk(askID, actorID string) error {
	args := m.Called(askID, actorID)
	return args.Error(0)
}

func (m *MockStorage) Unpair(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

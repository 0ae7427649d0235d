package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"cotillion/backend/internal/models"
)

// Storage is the persistence contract the handlers and the admin CLI
// depend on. Pairing invariants are enforced here, inside transactions,
// not by the callers.
type Storage interface {
	CreateUser(user *models.User) error
	GetUserByID(id string) (*models.User, error)
	GetUserByName(name string) (*models.User, error)
	GetMemberByID(id string) (*models.Member, error)
	ListMembers() ([]models.Member, error)

	CreateAsk(fromID, toID, message string) (*models.Ask, error)
	GetAskByID(id string) (*models.Ask, error)
	ListAsksForUser(userID string) ([]models.Ask, error)
	ListAsksByStatus(status models.AskStatus) ([]models.Ask, error)
	AcceptAsk(askID, actorID string) error
	DeclineAsk(askID, actorID string) error
	CancelAsk(askID, actorID string) error

	Unpair(userID string) error
}

// Service implements Storage on PostgreSQL (gorm) plus Redis for
// session state.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// domainErr reports whether err is one of the domain sentinels, which
// must never be retried.
func domainErr(err error) bool {
	for _, sentinel := range []error{
		models.ErrNameTaken,
		models.ErrNoSuchUser,
		models.ErrWrongCode,
		models.ErrWrongDirection,
		models.ErrAlreadyPaired,
		models.ErrAskNotFound,
		models.ErrNotPending,
		models.ErrForbidden,
	} {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}

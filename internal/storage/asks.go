package storage

import (
	"errors"
	"log"
	"sort"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"cotillion/backend/internal/config"
	"cotillion/backend/internal/models"
)

// CreateAsk validates and inserts a pending ask from fromID to toID.
// The direction and not-yet-paired checks run inside one transaction
// holding row locks on both users, so they stay atomic with respect to
// concurrent creation and acceptance.
func (s *Service) CreateAsk(fromID, toID, message string) (*models.Ask, error) {
	ask := &models.Ask{
		FromUserID: fromID,
		ToUserID:   toID,
		Status:     models.AskPending,
		Message:    models.TruncateMessage(message),
	}

	err := s.withRetry(func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			from, to, err := lockEndpoints(tx, fromID, toID)
			if err != nil {
				return err
			}
			if from == nil || to == nil ||
				from.Gender != models.GenderGirl || to.Gender != models.GenderGuy {
				return models.ErrWrongDirection
			}
			paired, err := anyPaired(tx, fromID, toID)
			if err != nil {
				return err
			}
			if paired {
				return models.ErrAlreadyPaired
			}
			return tx.Create(ask).Error
		})
	})
	if err != nil {
		return nil, err
	}
	return ask, nil
}

// GetAskByID looks an ask up by id.
func (s *Service) GetAskByID(id string) (*models.Ask, error) {
	var ask models.Ask
	err := s.DB.First(&ask, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrAskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ask, nil
}

// ListAsksForUser returns every ask where the user is an endpoint,
// oldest first.
func (s *Service) ListAsksForUser(userID string) ([]models.Ask, error) {
	asks := make([]models.Ask, 0)
	err := s.DB.Where("from_user_id = ? OR to_user_id = ?", userID, userID).
		Order("created_at asc").
		Find(&asks).Error
	if err != nil {
		log.Printf("ERROR: Failed to list asks for user %s: %v", userID, err)
		return nil, err
	}
	return asks, nil
}

// ListAsksByStatus returns every ask in the given state, oldest first.
func (s *Service) ListAsksByStatus(status models.AskStatus) ([]models.Ask, error) {
	asks := make([]models.Ask, 0)
	err := s.DB.Where("status = ?", status).Order("created_at asc").Find(&asks).Error
	if err != nil {
		return nil, err
	}
	return asks, nil
}

// AcceptAsk commits a pairing. Only the recipient may accept, the ask
// must still be pending, and both endpoints must still be unpaired —
// re-validated here under row locks because other asks may have
// resolved since creation. On success the pairing row is inserted, the
// ask is marked accepted, and every other pending ask touching either
// endpoint is superseded, all in one transaction.
func (s *Service) AcceptAsk(askID, actorID string) error {
	return s.withRetry(func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			ask, err := lockAsk(tx, askID)
			if err != nil {
				return err
			}
			if ask.ToUserID != actorID {
				return models.ErrForbidden
			}
			if ask.Status != models.AskPending {
				return models.ErrNotPending
			}

			if _, _, err := lockEndpoints(tx, ask.FromUserID, ask.ToUserID); err != nil {
				return err
			}
			paired, err := anyPaired(tx, ask.FromUserID, ask.ToUserID)
			if err != nil {
				return err
			}
			if paired {
				return models.ErrAlreadyPaired
			}

			pairing := models.Pairing{
				GirlID: ask.FromUserID,
				GuyID:  ask.ToUserID,
				AskID:  ask.ID,
			}
			if err := tx.Create(&pairing).Error; err != nil {
				return err
			}
			if err := tx.Model(ask).Update("status", models.AskAccepted).Error; err != nil {
				return err
			}

			// Foreclose every other pending ask touching either endpoint
			// so the directory's Available/Taken view stays consistent.
			ids := []string{ask.FromUserID, ask.ToUserID}
			return tx.Model(&models.Ask{}).
				Where("status = ? AND id <> ?", models.AskPending, ask.ID).
				Where("from_user_id IN ? OR to_user_id IN ?", ids, ids).
				Update("status", models.AskSuperseded).Error
		})
	})
}

// DeclineAsk lets the recipient turn a pending ask down.
func (s *Service) DeclineAsk(askID, actorID string) error {
	return s.resolveAsk(askID, actorID, false, models.AskDeclined)
}

// CancelAsk lets the sender withdraw a pending ask.
func (s *Service) CancelAsk(askID, actorID string) error {
	return s.resolveAsk(askID, actorID, true, models.AskCanceled)
}

// resolveAsk moves a pending ask to a terminal state. actorIsSender
// selects which endpoint is authorized to perform the transition.
func (s *Service) resolveAsk(askID, actorID string, actorIsSender bool, status models.AskStatus) error {
	return s.withRetry(func() error {
		return s.DB.Transaction(func(tx *gorm.DB) error {
			ask, err := lockAsk(tx, askID)
			if err != nil {
				return err
			}
			authorized := ask.ToUserID
			if actorIsSender {
				authorized = ask.FromUserID
			}
			if authorized != actorID {
				return models.ErrForbidden
			}
			if ask.Status != models.AskPending {
				return models.ErrNotPending
			}
			return tx.Model(ask).Update("status", status).Error
		})
	})
}

// Unpair removes the pairing a user is part of, if any. Admin-only
// escape hatch; the accepted ask keeps its status as history.
func (s *Service) Unpair(userID string) error {
	return s.DB.Where("girl_id = ? OR guy_id = ?", userID, userID).
		Delete(&models.Pairing{}).Error
}

// lockAsk loads an ask under FOR UPDATE.
func lockAsk(tx *gorm.DB, askID string) (*models.Ask, error) {
	var ask models.Ask
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&ask, "id = ?", askID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrAskNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ask, nil
}

// lockEndpoints loads both user rows under FOR UPDATE, in sorted id
// order so concurrent transactions never deadlock on each other.
func lockEndpoints(tx *gorm.DB, aID, bID string) (a, b *models.User, err error) {
	ids := []string{aID, bID}
	sort.Strings(ids)

	var users []models.User
	err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id IN ?", ids).
		Order("id").
		Find(&users).Error
	if err != nil {
		return nil, nil, err
	}
	for i := range users {
		switch users[i].ID {
		case aID:
			a = &users[i]
		case bID:
			b = &users[i]
		}
	}
	return a, b, nil
}

// anyPaired reports whether either user already appears in a pairing.
func anyPaired(tx *gorm.DB, aID, bID string) (bool, error) {
	var count int64
	err := tx.Model(&models.Pairing{}).
		Where("girl_id IN ? OR guy_id IN ?", []string{aID, bID}, []string{aID, bID}).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// withRetry reruns fn a bounded number of times on transient storage
// errors. Domain errors are surfaced immediately.
func (s *Service) withRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= config.AcceptMaxRetries; attempt++ {
		err = fn()
		if err == nil || domainErr(err) {
			return err
		}
		log.Printf("WARN: storage transaction failed (attempt %d/%d): %v",
			attempt, config.AcceptMaxRetries, err)
	}
	return err
}

package storage

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"cotillion/backend/internal/models"
)

// CreateUser inserts a new user. The unique index on name resolves
// concurrent signups with the same name to exactly one success; the
// loser gets ErrNameTaken.
func (s *Service) CreateUser(user *models.User) error {
	if err := s.DB.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return models.ErrNameTaken
		}
		log.Printf("ERROR: Failed to create user %q: %v", user.Name, err)
		return err
	}
	return nil
}

// GetUserByID looks a user up by id.
func (s *Service) GetUserByID(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNoSuchUser
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByName looks a user up by display name.
func (s *Service) GetUserByName(name string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "name = ?", name).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrNoSuchUser
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetMemberByID returns the directory view of one user, with the
// partner fields resolved against current pairings.
func (s *Service) GetMemberByID(id string) (*models.Member, error) {
	user, err := s.GetUserByID(id)
	if err != nil {
		return nil, err
	}

	member := models.Member{
		ID:     user.ID,
		Name:   user.Name,
		Gender: user.Gender,
	}

	var pairing models.Pairing
	err = s.DB.Where("girl_id = ? OR guy_id = ?", id, id).First(&pairing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &member, nil
	}
	if err != nil {
		return nil, err
	}

	partnerID := pairing.GuyID
	if partnerID == id {
		partnerID = pairing.GirlID
	}
	partner, err := s.GetUserByID(partnerID)
	if err != nil {
		return nil, err
	}
	member.PartnerID = &partner.ID
	member.PartnerName = &partner.Name
	return &member, nil
}

// ListMembers returns every user with derived pairing state. Produced
// fresh on every call: pairing state changes between requests.
func (s *Service) ListMembers() ([]models.Member, error) {
	var users []models.User
	if err := s.DB.Order("created_at asc").Find(&users).Error; err != nil {
		log.Printf("ERROR: Failed to list users: %v", err)
		return nil, err
	}

	var pairings []models.Pairing
	if err := s.DB.Find(&pairings).Error; err != nil {
		log.Printf("ERROR: Failed to list pairings: %v", err)
		return nil, err
	}

	idToName := make(map[string]string, len(users))
	for _, u := range users {
		idToName[u.ID] = u.Name
	}
	partnerOf := make(map[string]string, 2*len(pairings))
	for _, p := range pairings {
		partnerOf[p.GirlID] = p.GuyID
		partnerOf[p.GuyID] = p.GirlID
	}

	members := make([]models.Member, 0, len(users))
	for _, u := range users {
		m := models.Member{
			ID:     u.ID,
			Name:   u.Name,
			Gender: u.Gender,
		}
		if partnerID, ok := partnerOf[u.ID]; ok {
			name := idToName[partnerID]
			m.PartnerID = &partnerID
			m.PartnerName = &name
		}
		members = append(members, m)
	}
	return members, nil
}

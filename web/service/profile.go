// Package service holds the business logic of the Atelier API: profile
// bootstrap, the product creation/deletion sequences, the photo gallery
// and the site counters. Services own the gorm queries; controllers only
// translate HTTP.
package service

import (
	"github.com/atelier-moveis/atelier-backend/database"
	"github.com/atelier-moveis/atelier-backend/database/model"

	"gorm.io/gorm"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetRole returns the stored role of the profile with the given id.
func (s *ProfileService) GetRole(id string) (string, error) {
	var profile model.Profile
	err := s.db.Model(&model.Profile{}).
		Select("role").
		Where("id = ?", id).
		First(&profile).
		Error
	if err != nil {
		return "", err
	}
	return profile.Role, nil
}

// Create inserts the profile row written during registration.
func (s *ProfileService) Create(id, cpf, telefone string) error {
	profile := &model.Profile{
		Id:       id,
		Role:     model.RoleCliente,
		CPF:      cpf,
		Telefone: telefone,
	}
	return s.db.Create(profile).Error
}

// Ensure returns the profile for id, lazily creating it with role
// "cliente" when absent. This is the only self-heal point for missing
// profiles.
func (s *ProfileService) Ensure(id string) (*model.Profile, error) {
	profile := &model.Profile{}
	err := s.db.Where("id = ?", id).First(profile).Error
	if err == nil {
		return profile, nil
	}
	if !database.IsNotFound(err) {
		return nil, err
	}

	profile = &model.Profile{Id: id, Role: model.RoleCliente}
	if err := s.db.Create(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// ListClients returns every non-admin profile.
func (s *ProfileService) ListClients() ([]model.Profile, error) {
	var profiles []model.Profile
	err := s.db.Where("role <> ?", model.RoleAdmin).Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

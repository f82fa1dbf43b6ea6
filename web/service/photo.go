package service

import (
	"context"
	"path"

	"github.com/atelier-moveis/atelier-backend/database/model"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/objstore"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PhotoService struct {
	db    *gorm.DB
	store objstore.Store
}

func NewPhotoService(db *gorm.DB, store objstore.Store) *PhotoService {
	return &PhotoService{db: db, store: store}
}

func (s *PhotoService) List() ([]model.Photo, error) {
	var photos []model.Photo
	if err := s.db.Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

// Create uploads the file and inserts the gallery row, returning the
// public URL. A row-insert failure leaves the blob unreferenced (no
// rollback; the sweep job reclaims it).
func (s *PhotoService) Create(ctx context.Context, file UploadFile) (string, error) {
	key := uuid.New().String() + path.Ext(file.Name)
	url, err := s.store.Upload(ctx, key, file.ContentType, file.Data)
	if err != nil {
		return "", err
	}

	photo := &model.Photo{URL: url}
	if err := s.db.Create(photo).Error; err != nil {
		return "", err
	}
	return url, nil
}

// UpdateDescription sets the description of the photo with the given id.
func (s *PhotoService) UpdateDescription(id uint, description string) error {
	return s.db.Model(&model.Photo{}).
		Where("id = ?", id).
		Update("description", description).
		Error
}

// Delete removes the photo row and its blob. Returns
// gorm.ErrRecordNotFound when no row matches; the blob deletion itself is
// best-effort.
func (s *PhotoService) Delete(ctx context.Context, id uint) error {
	var photo model.Photo
	if err := s.db.First(&photo, id).Error; err != nil {
		return err
	}

	if key := objstore.KeyFromURL(photo.URL); key != "" {
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warning("delete blob", key, "failed:", err)
		}
	}

	return s.db.Delete(&model.Photo{}, id).Error
}

package service

import (
	"context"
	"fmt"
	"path"

	"github.com/atelier-moveis/atelier-backend/database/model"
	"github.com/atelier-moveis/atelier-backend/logger"
	"github.com/atelier-moveis/atelier-backend/objstore"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UploadFile carries one multipart file part, fully buffered. The ingress
// layer caps each part at 5 MiB before it reaches the service.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

type ProductService struct {
	db    *gorm.DB
	store objstore.Store
}

func NewProductService(db *gorm.DB, store objstore.Store) *ProductService {
	return &ProductService{db: db, store: store}
}

// List returns every product with its images nested in display order.
func (s *ProductService) List() ([]model.Product, error) {
	var products []model.Product
	err := s.db.
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_index ASC")
		}).
		Order("created_at DESC").
		Find(&products).
		Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create runs the product creation sequence: insert the row, upload each
// file in order, then batch-insert the image rows with their original
// indexes. There is no rollback: blobs uploaded before a failure stay in
// the bucket unreferenced, and a failed batch insert leaves the product
// row without images. The sweep job reclaims such blobs later.
func (s *ProductService) Create(ctx context.Context, title, description string, files []UploadFile) error {
	product := &model.Product{
		Title:       title,
		Description: description,
	}
	if err := s.db.Create(product).Error; err != nil {
		return err
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		key := blobKey(product.Id, file.Name)
		url, err := s.store.Upload(ctx, key, file.ContentType, file.Data)
		if err != nil {
			return err
		}
		urls = append(urls, url)
	}

	images := make([]model.ProductImage, 0, len(urls))
	for i, url := range urls {
		images = append(images, model.ProductImage{
			ProductId:  product.Id,
			URL:        url,
			OrderIndex: i,
		})
	}
	return s.db.Create(&images).Error
}

// Delete removes a product: best-effort blob deletion for each image,
// then the row itself (the image rows go with it via cascade). Blob
// failures are logged and ignored.
func (s *ProductService) Delete(ctx context.Context, id uint) error {
	var images []model.ProductImage
	err := s.db.Model(&model.ProductImage{}).
		Select("url").
		Where("product_id = ?", id).
		Find(&images).
		Error
	if err != nil {
		return err
	}

	for _, image := range images {
		key := objstore.KeyFromURL(image.URL)
		if key == "" {
			continue
		}
		if err := s.store.Delete(ctx, key); err != nil {
			logger.Warning("delete blob", key, "failed:", err)
		}
	}

	return s.db.Delete(&model.Product{}, id).Error
}

// blobKey builds a collision-resistant storage key, foldered by product
// id so deletion can recover the key from the public URL.
func blobKey(productId uint, filename string) string {
	return fmt.Sprintf("%d/%s%s", productId, uuid.New().String(), path.Ext(filename))
}

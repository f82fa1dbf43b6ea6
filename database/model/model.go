// Package model defines the persisted entities of the Atelier catalog:
// profiles, products with ordered images, gallery photos and visit counters.
package model

import "time"

const (
	RoleCliente = "cliente"
	RoleAdmin   = "admin"
)

// Profile is the application-level record for an identity-provider user.
// Its id mirrors the provider's opaque user id.
type Profile struct {
	Id       string `json:"id" gorm:"primaryKey;size:64"`
	Role     string `json:"role" gorm:"not null;default:cliente"`
	CPF      string `json:"cpf" gorm:"column:cpf"`
	Telefone string `json:"telefone"`
}

type Product struct {
	Id          uint           `json:"id" gorm:"primaryKey;autoIncrement"`
	Title       string         `json:"title" gorm:"not null"`
	Description string         `json:"description" gorm:"not null"`
	CreatedAt   time.Time      `json:"created_at"`
	Images      []ProductImage `json:"images" gorm:"foreignKey:ProductId;references:Id;constraint:OnDelete:CASCADE"`
}

// ProductImage is one uploaded image of a product. OrderIndex is 0-based
// and contiguous per product; it defines display order.
type ProductImage struct {
	Id         uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	ProductId  uint   `json:"product_id" gorm:"index;not null"`
	URL        string `json:"url" gorm:"not null"`
	OrderIndex int    `json:"order_index" gorm:"not null;default:0"`
}

// Photo is a standalone gallery image, not linked to any product.
type Photo struct {
	Id          uint   `json:"id" gorm:"primaryKey;autoIncrement"`
	URL         string `json:"url" gorm:"not null"`
	Description string `json:"description"`
}

// Stats is a singleton row (id = 1) of best-effort site counters.
// It is only ever mutated through atomic in-place increments.
type Stats struct {
	Id              uint  `json:"id" gorm:"primaryKey"`
	Visits          int64 `json:"visits" gorm:"default:0"`
	ImageClicks     int64 `json:"image_clicks" gorm:"default:0"`
	OrcamentoClicks int64 `json:"orcamento_clicks" gorm:"default:0"`
}

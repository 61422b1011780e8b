package store

import (
	"time"

	"github.com/Muditha98/LaptopInsights/internal/product"
)

// ProductRecord maps a catalog entry to the products table
type ProductRecord struct {
	ProductID  string    `gorm:"column:product_id;primaryKey"`
	Brand      string    `gorm:"column:brand;not null"`
	Model      string    `gorm:"column:model;not null"`
	ProductURL string    `gorm:"column:product_url;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the gorm default
func (ProductRecord) TableName() string {
	return "products"
}

// PriceHistoryRecord maps one observation to the price_history table
type PriceHistoryRecord struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	ProductID    string    `gorm:"column:product_id;not null;index:idx_price_history_product_time,priority:1"`
	Price        *float64  `gorm:"column:price"`
	Currency     string    `gorm:"column:currency;not null;default:USD"`
	Availability string    `gorm:"column:availability;not null;default:Unknown"`
	PromoText    *string   `gorm:"column:promo_text"`
	ScrapedAt    time.Time `gorm:"column:scraped_at;not null;index:idx_price_history_product_time,priority:2,sort:desc"`
}

// TableName overrides the gorm default
func (PriceHistoryRecord) TableName() string {
	return "price_history"
}

func toProductRecord(p product.Product) ProductRecord {
	return ProductRecord{
		ProductID:  p.ProductID,
		Brand:      string(p.Brand),
		Model:      p.Model,
		ProductURL: p.URL,
	}
}

func (r ProductRecord) toProduct() product.Product {
	return product.Product{
		ProductID: r.ProductID,
		Brand:     product.Brand(r.Brand),
		Model:     r.Model,
		URL:       r.ProductURL,
	}
}

func toHistoryRecord(obs product.Observation) PriceHistoryRecord {
	return PriceHistoryRecord{
		ProductID:    obs.ProductID,
		Price:        obs.Price,
		Currency:     obs.Currency,
		Availability: string(obs.Availability),
		PromoText:    obs.Promo,
		ScrapedAt:    obs.ObservedAt,
	}
}

func (r PriceHistoryRecord) toObservation() product.Observation {
	return product.Observation{
		ProductID:    r.ProductID,
		Price:        r.Price,
		Currency:     r.Currency,
		Availability: product.Availability(r.Availability),
		Promo:        r.PromoText,
		ObservedAt:   r.ScrapedAt,
	}
}

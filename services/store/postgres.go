package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Muditha98/LaptopInsights/internal/product"
	"github.com/Muditha98/LaptopInsights/logger"
	apperrors "github.com/Muditha98/LaptopInsights/pkg/errors"
)

// Config holds database connection settings
type Config struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// PostgresStore implements Store on PostgreSQL via gorm
type PostgresStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewPostgresStore opens a connection, configures the pool and migrates
// the schema
func NewPostgresStore(cfg Config) (*PostgresStore, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, apperrors.NewStorage("", "failed to open database", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, apperrors.NewStorage("", "failed to access connection pool", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, apperrors.NewStorage("", "failed to ping database", err)
	}

	if err := db.AutoMigrate(&ProductRecord{}, &PriceHistoryRecord{}); err != nil {
		return nil, apperrors.NewStorage("", "failed to migrate schema", err)
	}

	log := logger.ForStore()
	log.Info().Str("host", cfg.Host).Str("db", cfg.DBName).Msg("Database connection established")

	return &PostgresStore{db: db, log: log}, nil
}

// UpsertProduct inserts a catalog entry or updates its display fields
func (s *PostgresStore) UpsertProduct(p product.Product) error {
	record := toProductRecord(p)

	var existing ProductRecord
	err := s.db.First(&existing, "product_id = ?", p.ProductID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.db.Create(&record).Error; err != nil {
			return apperrors.NewStorage(p.ProductID, "failed to insert product", err)
		}
		s.log.Info().Str("product_id", p.ProductID).Msg("Inserted product")
	case err != nil:
		return apperrors.NewStorage(p.ProductID, "failed to query product", err)
	default:
		updates := map[string]interface{}{
			"brand":       record.Brand,
			"model":       record.Model,
			"product_url": record.ProductURL,
		}
		if err := s.db.Model(&ProductRecord{}).Where("product_id = ?", p.ProductID).Updates(updates).Error; err != nil {
			return apperrors.NewStorage(p.ProductID, "failed to update product", err)
		}
	}
	return nil
}

// AllProducts returns every catalog entry ordered by brand then model
func (s *PostgresStore) AllProducts() ([]product.Product, error) {
	var records []ProductRecord
	if err := s.db.Order("brand, model").Find(&records).Error; err != nil {
		return nil, apperrors.NewStorage("", "failed to list products", err)
	}

	products := make([]product.Product, 0, len(records))
	for _, r := range records {
		products = append(products, r.toProduct())
	}
	return products, nil
}

// AppendObservation records one scrape result
func (s *PostgresStore) AppendObservation(obs product.Observation) error {
	record := toHistoryRecord(obs)
	if record.ScrapedAt.IsZero() {
		record.ScrapedAt = time.Now()
	}
	if err := s.db.Create(&record).Error; err != nil {
		return apperrors.NewStorage(obs.ProductID, "failed to append observation", err)
	}
	return nil
}

// LatestObservation returns the most recent observation for a product,
// or nil when none exists
func (s *PostgresStore) LatestObservation(productID string) (*product.Observation, error) {
	var record PriceHistoryRecord
	err := s.db.Where("product_id = ?", productID).
		Order("scraped_at DESC").
		First(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.NewStorage(productID, "failed to query latest observation", err)
	}

	obs := record.toObservation()
	return &obs, nil
}

// History returns observations newest first, bounded by limit
func (s *PostgresStore) History(productID string, limit int) ([]product.Observation, error) {
	var records []PriceHistoryRecord
	if err := s.db.Where("product_id = ?", productID).
		Order("scraped_at DESC").
		Limit(limit).
		Find(&records).Error; err != nil {
		return nil, apperrors.NewStorage(productID, "failed to query history", err)
	}

	history := make([]product.Observation, 0, len(records))
	for _, r := range records {
		history = append(history, r.toObservation())
	}
	return history, nil
}

// Statistics summarizes non-null prices for a product. Count reflects
// only priced observations; null-price records are excluded entirely.
func (s *PostgresStore) Statistics(productID string) (*product.Statistics, error) {
	var row struct {
		MinPrice *float64
		MaxPrice *float64
		AvgPrice *float64
		Count    int64
	}
	err := s.db.Model(&PriceHistoryRecord{}).
		Select("MIN(price) as min_price, MAX(price) as max_price, AVG(price) as avg_price, COUNT(*) as count").
		Where("product_id = ? AND price IS NOT NULL", productID).
		Scan(&row).Error
	if err != nil {
		return nil, apperrors.NewStorage(productID, "failed to query statistics", err)
	}

	if row.Count == 0 {
		return nil, nil
	}

	return &product.Statistics{
		ProductID: productID,
		MinPrice:  row.MinPrice,
		MaxPrice:  row.MaxPrice,
		AvgPrice:  row.AvgPrice,
		Count:     row.Count,
	}, nil
}

// Ping verifies the database connection is alive
func (s *PostgresStore) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying connection pool
func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Package gormstore persists portfolios in MySQL or PostgreSQL through gorm.
package gormstore

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"portfolioquotes/internal/portfolio"
)

// Store implements portfolio.Repository.
type Store struct {
	db *gorm.DB
}

// Open connects with the named driver ("mysql" or "postgres") and migrates
// the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	s := New(db)
	if err := s.Migrate(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&PortfolioModel{}, &HoldingModel{}); err != nil {
		return fmt.Errorf("migrate portfolio tables: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *Store) CreatePortfolio(ctx context.Context, p portfolio.Portfolio) error {
	if err := s.db.WithContext(ctx).Create(FromPortfolioDomain(p)).Error; err != nil {
		return fmt.Errorf("insert portfolio %s: %w", p.ID, err)
	}
	return nil
}

func (s *Store) GetPortfolio(ctx context.Context, id string) (portfolio.Portfolio, error) {
	var model PortfolioModel
	if err := s.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return portfolio.Portfolio{}, fmt.Errorf("portfolio %s: %w", id, portfolio.ErrNotFound)
		}
		return portfolio.Portfolio{}, fmt.Errorf("select portfolio %s: %w", id, err)
	}
	return model.ToDomain(), nil
}

func (s *Store) ListPortfolios(ctx context.Context) ([]portfolio.Portfolio, error) {
	var models []PortfolioModel
	if err := s.db.WithContext(ctx).Order("created_at, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("select portfolios: %w", err)
	}
	out := make([]portfolio.Portfolio, len(models))
	for i := range models {
		out[i] = models[i].ToDomain()
	}
	return out, nil
}

func (s *Store) DeletePortfolio(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&PortfolioModel{}, "id = ?", id)
		if res.Error != nil {
			return fmt.Errorf("delete portfolio %s: %w", id, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("portfolio %s: %w", id, portfolio.ErrNotFound)
		}
		if err := tx.Delete(&HoldingModel{}, "portfolio_id = ?", id).Error; err != nil {
			return fmt.Errorf("delete holdings of %s: %w", id, err)
		}
		return nil
	})
}

func (s *Store) SaveHolding(ctx context.Context, h portfolio.Holding) error {
	if _, err := s.GetPortfolio(ctx, h.PortfolioID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Save(FromHoldingDomain(h)).Error; err != nil {
		return fmt.Errorf("save holding %s: %w", h.ID, err)
	}
	return nil
}

func (s *Store) DeleteHolding(ctx context.Context, portfolioID, holdingID string) error {
	res := s.db.WithContext(ctx).Delete(&HoldingModel{}, "id = ? AND portfolio_id = ?", holdingID, portfolioID)
	if res.Error != nil {
		return fmt.Errorf("delete holding %s: %w", holdingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("holding %s: %w", holdingID, portfolio.ErrNotFound)
	}
	return nil
}

func (s *Store) ListHoldings(ctx context.Context, portfolioID string) ([]portfolio.Holding, error) {
	if _, err := s.GetPortfolio(ctx, portfolioID); err != nil {
		return nil, err
	}
	var models []HoldingModel
	if err := s.db.WithContext(ctx).Where("portfolio_id = ?", portfolioID).Order("symbol, id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("select holdings of %s: %w", portfolioID, err)
	}
	out := make([]portfolio.Holding, len(models))
	for i := range models {
		h, err := models[i].ToDomain()
		if err != nil {
			return nil, fmt.Errorf("decode holdings of %s: %w", portfolioID, err)
		}
		out[i] = h
	}
	return out, nil
}

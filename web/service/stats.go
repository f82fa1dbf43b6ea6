package service

import (
	"github.com/atelier-moveis/atelier-backend/database/model"

	"gorm.io/gorm"
)

// StatsService bumps the singleton counters row. Increments are atomic
// in-place updates so concurrent requests never read-modify-write.
type StatsService struct {
	db *gorm.DB
}

func NewStatsService(db *gorm.DB) *StatsService {
	return &StatsService{db: db}
}

func (s *StatsService) increment(column string) error {
	return s.db.Model(&model.Stats{}).
		Where("id = ?", 1).
		UpdateColumn(column, gorm.Expr(column+" + ?", 1)).
		Error
}

func (s *StatsService) IncrementVisits() error {
	return s.increment("visits")
}

func (s *StatsService) IncrementImageClicks() error {
	return s.increment("image_clicks")
}

func (s *StatsService) IncrementOrcamentoClicks() error {
	return s.increment("orcamento_clicks")
}

func (s *StatsService) Get() (*model.Stats, error) {
	stats := &model.Stats{}
	if err := s.db.Where("id = ?", 1).First(stats).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

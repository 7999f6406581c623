package infrastructure

import (
	"fmt"

	"github.com/yourusername/tg-vidbot/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLiteRequestRepository implements RequestRepository using SQLite
type SQLiteRequestRepository struct {
	db *gorm.DB
}

// NewSQLiteRequestRepository creates a new SQLite repository
func NewSQLiteRequestRepository(dbPath string) (*SQLiteRequestRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.Request{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteRequestRepository{db: db}, nil
}

// Create creates a new request record
func (r *SQLiteRequestRepository) Create(request *domain.Request) error {
	return r.db.Create(request).Error
}

// Update updates an existing request record
func (r *SQLiteRequestRepository) Update(request *domain.Request) error {
	return r.db.Save(request).Error
}

// FindByID finds a request by ID
func (r *SQLiteRequestRepository) FindByID(id string) (*domain.Request, error) {
	var request domain.Request
	err := r.db.First(&request, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// FindRecent finds the most recent requests, newest first
func (r *SQLiteRequestRepository) FindRecent(limit int) ([]*domain.Request, error) {
	var requests []*domain.Request
	err := r.db.Order("created_at DESC").Limit(limit).Find(&requests).Error
	return requests, err
}

// FindByStatus finds requests by status, newest first
func (r *SQLiteRequestRepository) FindByStatus(status domain.RequestStatus, limit int) ([]*domain.Request, error) {
	var requests []*domain.Request
	err := r.db.Where("status = ?", status).
		Order("created_at DESC").
		Limit(limit).
		Find(&requests).Error
	return requests, err
}

// CountByStatus returns the number of requests by status
func (r *SQLiteRequestRepository) CountByStatus(status domain.RequestStatus) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Request{}).Where("status = ?", status).Count(&count).Error
	return count, err
}

// GetStats returns request statistics
func (r *SQLiteRequestRepository) GetStats() (*domain.RequestStats, error) {
	stats := &domain.RequestStats{}

	if err := r.db.Model(&domain.Request{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	counts := []struct {
		status domain.RequestStatus
		target *int64
	}{
		{domain.RequestPending, &stats.Pending},
		{domain.RequestCompleted, &stats.Completed},
		{domain.RequestRejected, &stats.Rejected},
		{domain.RequestFailed, &stats.Failed},
	}
	for _, c := range counts {
		count, err := r.CountByStatus(c.status)
		if err != nil {
			return nil, err
		}
		*c.target = count
	}

	return stats, nil
}

// Close closes the database connection
func (r *SQLiteRequestRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"quitemap/internal/models"

	"gorm.io/gorm"
)

// RegistrationRepository manages pending registrations awaiting Telegram
// confirmation.
type RegistrationRepository interface {
	Create(ctx context.Context, reg *models.PendingRegistration) error
	GetByTelegramHandle(ctx context.Context, handle string) (*models.PendingRegistration, error)
	GetByUsername(ctx context.Context, username string) (*models.PendingRegistration, error)
	Delete(ctx context.Context, id uint) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type registrationRepository struct {
	db *gorm.DB
}

// NewRegistrationRepository creates a new pending registration repository.
func NewRegistrationRepository(db *gorm.DB) RegistrationRepository {
	return &registrationRepository{db: db}
}

func (r *registrationRepository) Create(ctx context.Context, reg *models.PendingRegistration) error {
	if err := r.db.WithContext(ctx).Create(reg).Error; err != nil {
		return fmt.Errorf("failed to create pending registration: %w", err)
	}
	return nil
}

func (r *registrationRepository) GetByTelegramHandle(ctx context.Context, handle string) (*models.PendingRegistration, error) {
	var reg models.PendingRegistration
	err := r.db.WithContext(ctx).Where("telegram_handle = ?", handle).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending registration: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepository) GetByUsername(ctx context.Context, username string) (*models.PendingRegistration, error) {
	var reg models.PendingRegistration
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&reg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pending registration by username: %w", err)
	}
	return &reg, nil
}

func (r *registrationRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.PendingRegistration{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete pending registration: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteExpired removes pending registrations whose confirmation window has
// passed. Returns the number of rows removed.
func (r *registrationRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&models.PendingRegistration{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired registrations: %w", result.Error)
	}
	return result.RowsAffected, nil
}

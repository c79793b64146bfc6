package webhooks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trade-journal/database"
	models "trade-journal/database/models_pkg"
)

// Repository handles database operations for outbound webhook configuration
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new webhooks repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a webhook
func (r *Repository) Create(webhook *models.Webhook) error {
	if webhook.ID == "" {
		webhook.ID = uuid.NewString()
	}
	if err := r.db.Create(webhook).Error; err != nil {
		return database.WrapStorageError("webhooks.Create", err)
	}
	return nil
}

// List retrieves all webhooks for a user
func (r *Repository) List(userID string) ([]models.Webhook, error) {
	var hooks []models.Webhook
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&hooks).Error

	if err != nil {
		return nil, database.WrapStorageError("webhooks.List", err)
	}
	return hooks, nil
}

// ListEnabled retrieves the user's enabled webhooks, used on the event
// delivery path.
func (r *Repository) ListEnabled(userID string) ([]models.Webhook, error) {
	var hooks []models.Webhook
	err := r.db.
		Where("user_id = ? AND enabled = ?", userID, true).
		Find(&hooks).Error

	if err != nil {
		return nil, database.WrapStorageError("webhooks.ListEnabled", err)
	}
	return hooks, nil
}

// Update applies the given column updates to one webhook
func (r *Repository) Update(id, userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Webhook{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)

	if result.Error != nil {
		return database.WrapStorageError("webhooks.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("webhook", id)
	}
	return nil
}

// Delete removes one webhook
func (r *Repository) Delete(id, userID string) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Webhook{})

	if result.Error != nil {
		return database.WrapStorageError("webhooks.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("webhook", id)
	}
	return nil
}

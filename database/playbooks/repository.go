package playbooks

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trade-journal/database"
	models "trade-journal/database/models_pkg"
)

// Repository handles database operations for playbooks
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new playbooks repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a playbook
func (r *Repository) Create(playbook *models.Playbook) error {
	if playbook.ID == "" {
		playbook.ID = uuid.NewString()
	}
	if err := r.db.Create(playbook).Error; err != nil {
		return database.WrapStorageError("playbooks.Create", err)
	}
	return nil
}

// GetByID retrieves one playbook owned by the given user
func (r *Repository) GetByID(id, userID string) (*models.Playbook, error) {
	var playbook models.Playbook
	err := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&playbook).Error

	if err == gorm.ErrRecordNotFound {
		return nil, database.NewNotFoundError("playbook", id)
	}
	if err != nil {
		return nil, database.WrapStorageError("playbooks.GetByID", err)
	}
	return &playbook, nil
}

// List retrieves all playbooks for a user, newest first
func (r *Repository) List(userID string) ([]models.Playbook, error) {
	var playbooks []models.Playbook
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&playbooks).Error

	if err != nil {
		return nil, database.WrapStorageError("playbooks.List", err)
	}
	return playbooks, nil
}

// Update applies the given column updates to one playbook
func (r *Repository) Update(id, userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Playbook{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)

	if result.Error != nil {
		return database.WrapStorageError("playbooks.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("playbook", id)
	}
	return nil
}

// Delete removes one playbook
func (r *Repository) Delete(id, userID string) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Playbook{})

	if result.Error != nil {
		return database.WrapStorageError("playbooks.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("playbook", id)
	}
	return nil
}

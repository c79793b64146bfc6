package trades

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trade-journal/database"
	models "trade-journal/database/models_pkg"
)

// Repository handles database operations for trade records. All queries are
// scoped by user_id.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new trades repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a trade. Symbols are stored upper-cased so grouping queries
// never split a symbol across casings.
func (r *Repository) Create(trade *models.Trade) error {
	if trade.ID == "" {
		trade.ID = uuid.NewString()
	}
	trade.Symbol = strings.ToUpper(trade.Symbol)
	if trade.CreatedAt.IsZero() {
		trade.CreatedAt = time.Now()
	}

	if err := r.db.Create(trade).Error; err != nil {
		return database.WrapStorageError("trades.Create", err)
	}
	return nil
}

// BatchCreate inserts multiple trades in one transaction, used by the CSV
// import path. The caller recomputes account stats once afterwards.
func (r *Repository) BatchCreate(trades []*models.Trade) error {
	if len(trades) == 0 {
		return nil
	}
	for _, trade := range trades {
		if trade.ID == "" {
			trade.ID = uuid.NewString()
		}
		trade.Symbol = strings.ToUpper(trade.Symbol)
		if trade.CreatedAt.IsZero() {
			trade.CreatedAt = time.Now()
		}
	}

	if err := r.db.CreateInBatches(trades, 100).Error; err != nil {
		return database.WrapStorageError("trades.BatchCreate", err)
	}
	return nil
}

// GetByID retrieves one trade owned by the given user
func (r *Repository) GetByID(id, userID string) (*models.Trade, error) {
	var trade models.Trade
	err := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&trade).Error

	if err == gorm.ErrRecordNotFound {
		return nil, database.NewNotFoundError("trade", id)
	}
	if err != nil {
		return nil, database.WrapStorageError("trades.GetByID", err)
	}
	return &trade, nil
}

// ListByAccount retrieves every trade for one account, newest first. Stats
// recomputation always reads the full ledger; per-account volumes are small
// enough that no pagination is applied here.
func (r *Repository) ListByAccount(accountID, userID string) ([]models.Trade, error) {
	var trades []models.Trade
	err := r.db.
		Where("account_id = ? AND user_id = ?", accountID, userID).
		Order("created_at DESC").
		Find(&trades).Error

	if err != nil {
		return nil, database.WrapStorageError("trades.ListByAccount", err)
	}
	return trades, nil
}

// Update applies the given column updates to one trade
func (r *Repository) Update(id, userID string, updates map[string]interface{}) error {
	if symbol, ok := updates["symbol"].(string); ok {
		updates["symbol"] = strings.ToUpper(symbol)
	}
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Trade{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)

	if result.Error != nil {
		return database.WrapStorageError("trades.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("trade", id)
	}
	return nil
}

// Delete removes one trade
func (r *Repository) Delete(id, userID string) error {
	result := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Trade{})

	if result.Error != nil {
		return database.WrapStorageError("trades.Delete", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("trade", id)
	}
	return nil
}

// ClearPlaybook detaches all of a user's trades from a playbook before the
// playbook is deleted.
func (r *Repository) ClearPlaybook(playbookID, userID string) error {
	err := r.db.Model(&models.Trade{}).
		Where("playbook_id = ? AND user_id = ?", playbookID, userID).
		Update("playbook_id", nil).Error

	if err != nil {
		return database.WrapStorageError("trades.ClearPlaybook", err)
	}
	return nil
}

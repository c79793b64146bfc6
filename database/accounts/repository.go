package accounts

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"trade-journal/database"
	models "trade-journal/database/models_pkg"
)

// Repository handles database operations for accounts. Every method takes the
// requesting user's id and scopes the query with it; the tenant filter is
// never optional.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new accounts repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new account. The current balance starts at the starting
// balance and all derived performance fields start at zero.
func (r *Repository) Create(account *models.Account) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.CurrentBalance = account.StartingBalance
	account.ManualAdjustments = 0
	account.TotalPnL = 0
	account.TotalTrades = 0
	account.WinRate = 0

	if err := r.db.Create(account).Error; err != nil {
		return database.WrapStorageError("accounts.Create", err)
	}
	return nil
}

// GetByID retrieves one account owned by the given user
func (r *Repository) GetByID(id, userID string) (*models.Account, error) {
	var account models.Account
	err := r.db.
		Where("id = ? AND user_id = ?", id, userID).
		First(&account).Error

	if err == gorm.ErrRecordNotFound {
		return nil, database.NewNotFoundError("account", id)
	}
	if err != nil {
		return nil, database.WrapStorageError("accounts.GetByID", err)
	}
	return &account, nil
}

// List retrieves all accounts for a user, newest first
func (r *Repository) List(userID string) ([]models.Account, error) {
	var accounts []models.Account
	err := r.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&accounts).Error

	if err != nil {
		return nil, database.WrapStorageError("accounts.List", err)
	}
	return accounts, nil
}

// GetActive retrieves the user's currently active account, or nil when no
// account is marked active.
func (r *Repository) GetActive(userID string) (*models.Account, error) {
	var account models.Account
	err := r.db.
		Where("user_id = ? AND is_active = ?", userID, true).
		First(&account).Error

	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, database.WrapStorageError("accounts.GetActive", err)
	}
	return &account, nil
}

// Update applies the given column updates to one account. The starting
// balance is immutable after creation and is stripped from the update set.
func (r *Repository) Update(id, userID string, updates map[string]interface{}) error {
	delete(updates, "starting_balance")
	if len(updates) == 0 {
		return nil
	}
	updates["updated_at"] = time.Now()

	result := r.db.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(updates)

	if result.Error != nil {
		return database.WrapStorageError("accounts.Update", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("account", id)
	}
	return nil
}

// UpdateStats writes the derived summary and drawdown columns. Callers pass
// exactly the fields they recomputed; nothing else on the row is touched.
func (r *Repository) UpdateStats(id, userID string, stats map[string]interface{}) error {
	stats["updated_at"] = time.Now()

	result := r.db.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(stats)

	if result.Error != nil {
		return database.WrapStorageError("accounts.UpdateStats", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("account", id)
	}
	return nil
}

// ApplyAdjustment adds a signed delta (deposit positive, withdrawal negative)
// to the manual adjustments accumulator.
func (r *Repository) ApplyAdjustment(id, userID string, delta float64) error {
	result := r.db.Model(&models.Account{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"manual_adjustments": gorm.Expr("manual_adjustments + ?", delta),
			"updated_at":         time.Now(),
		})

	if result.Error != nil {
		return database.WrapStorageError("accounts.ApplyAdjustment", result.Error)
	}
	if result.RowsAffected == 0 {
		return database.NewNotFoundError("account", id)
	}
	return nil
}

// SetActive marks one account as the user's active account. Deactivation and
// activation run in a single transaction so there is no window where zero or
// multiple accounts are active.
func (r *Repository) SetActive(id, userID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Account{}).
			Where("user_id = ?", userID).
			Update("is_active", false).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Account{}).
			Where("id = ? AND user_id = ?", id, userID).
			Updates(map[string]interface{}{"is_active": true, "updated_at": time.Now()})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.NewNotFoundError("account", id)
		}
		return nil
	})

	if err != nil {
		if database.IsNotFound(err) {
			return err
		}
		return database.WrapStorageError("accounts.SetActive", err)
	}
	return nil
}

// Delete removes an account and its entire trade ledger in one transaction.
func (r *Repository) Delete(id, userID string) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("account_id = ? AND user_id = ?", id, userID).
			Delete(&models.Trade{}).Error; err != nil {
			return err
		}

		result := tx.
			Where("id = ? AND user_id = ?", id, userID).
			Delete(&models.Account{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return database.NewNotFoundError("account", id)
		}
		return nil
	})

	if err != nil {
		if database.IsNotFound(err) {
			return err
		}
		return database.WrapStorageError("accounts.Delete", err)
	}
	return nil
}

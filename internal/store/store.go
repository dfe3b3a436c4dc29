// Package store implements the persistence contract of the backend on
// gorm. It is the only writer; all bulk mutations run inside a single
// database transaction so that they apply completely or not at all.
package store

import (
	"github.com/google/uuid"
	"github.com/ledgerlight/backend/internal/models"
	"gorm.io/gorm"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// GetAll returns all transactions, sorted by date descending so that the
// newest transactions come first.
func (s *Store) GetAll() ([]models.Transaction, error) {
	var transactions []models.Transaction

	err := s.db.Order("date(date) DESC, datetime(created_at) DESC").Find(&transactions).Error
	if err != nil {
		return nil, err
	}

	return transactions, nil
}

// GetOne returns the transaction with the given ID.
func (s *Store) GetOne(id uuid.UUID) (models.Transaction, error) {
	var transaction models.Transaction

	err := s.db.First(&transaction, "id = ?", id).Error
	if err != nil {
		return models.Transaction{}, err
	}

	return transaction, nil
}

// SaveAll persists a batch of new transactions in one database
// transaction.
func (s *Store) SaveAll(transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for i := range transactions {
			if err := tx.Create(&transactions[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// UpdateOne updates the given fields of a single transaction.
func (s *Store) UpdateOne(id uuid.UUID, fields map[string]any) error {
	result := s.db.Model(&models.Transaction{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.ErrResourceNotFound
	}

	return nil
}

// UpdateCategory sets the category on all listed transactions as one
// logical update.
func (s *Store) UpdateCategory(ids []uuid.UUID, category string) error {
	if len(ids) == 0 {
		return nil
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.Transaction{}).Where("id IN ?", ids).Update("category", category).Error
	})
}

// DeleteOne removes a single transaction.
func (s *Store) DeleteOne(id uuid.UUID) error {
	result := s.db.Unscoped().Delete(&models.Transaction{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return models.ErrResourceNotFound
	}

	return nil
}

// ClearAll removes all transactions.
func (s *Store) ClearAll() error {
	return s.db.Unscoped().Where("true").Delete(&models.Transaction{}).Error
}

// GetCategories returns the stored taxonomy in load order.
func (s *Store) GetCategories() ([]models.Category, error) {
	var categories []models.Category

	err := s.db.Order("position").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// SaveCategories replaces the stored taxonomy. The loader emits
// categories in pre-order and consumers rely on that ordering, so the
// replacement keeps list order intact.
func (s *Store) SaveCategories(categories []models.Category) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("true").Delete(&models.Category{}).Error
		if err != nil {
			return err
		}

		for i := range categories {
			categories[i].Position = uint(i)

			if err := tx.Create(&categories[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// GetRules returns all renaming rules in application order.
func (s *Store) GetRules() ([]models.RenameRule, error) {
	var rules []models.RenameRule

	err := s.db.Order("position").Find(&rules).Error
	if err != nil {
		return nil, err
	}

	return rules, nil
}

// SaveRules replaces the whole rule list, renumbering positions to match
// list order. The rule store is read-modify-write as a whole, there is no
// partial-rule API.
func (s *Store) SaveRules(rules []models.RenameRule) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Unscoped().Where("true").Delete(&models.RenameRule{}).Error
		if err != nil {
			return err
		}

		for i := range rules {
			rules[i].Position = uint(i)

			if err := tx.Create(&rules[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

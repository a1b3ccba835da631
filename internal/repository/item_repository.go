package repository

import (
	"github.com/HugoJF/boxbox/internal/helpers"
	"github.com/HugoJF/boxbox/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"strings"
)

type ItemFilter struct {
	BoxID  string
	Search string
	Cursor *helpers.Cursor
	// Limit caps the number of rows returned, zero means no limit.
	Limit int
}

type ItemRepository interface {
	GenericRepository[models.Item]
	FindItems(filter ItemFilter) ([]models.Item, error)
	CreateInBox(item *models.Item) error
	UpdateAndMove(item *models.Item) error
	DeleteFromBox(item *models.Item) error
}

type ItemRepositoryImpl[T models.Item] struct {
	GenericRepository[models.Item]
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &ItemRepositoryImpl[models.Item]{
		GenericRepository: NewGenericRepository[models.Item](db),
		db:                db,
	}
}

// FindItems returns items ordered by (created_at DESC, id DESC). With a
// cursor only rows strictly after it in that order are returned.
func (r *ItemRepositoryImpl[T]) FindItems(filter ItemFilter) ([]models.Item, error) {
	var items []models.Item
	query := r.db.Order("created_at DESC").Order("id DESC")
	if filter.BoxID != "" {
		query = query.Where("box_id = ?", filter.BoxID)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := likePattern(search)
		query = query.Where(searchClause, pattern, pattern)
	}
	if filter.Cursor != nil {
		query = query.Where(
			"(created_at < ? OR (created_at = ? AND id < ?))",
			filter.Cursor.CreatedAt, filter.Cursor.CreatedAt, filter.Cursor.ID,
		)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// CreateInBox inserts the item and bumps the owning box's item count in one
// transaction. gorm.ErrRecordNotFound is returned when the box is missing.
func (r *ItemRepositoryImpl[T]) CreateInBox(item *models.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := boxExists(tx, item.BoxID); err != nil {
			return err
		}
		if err := tx.Create(item).Error; err != nil {
			return err
		}
		return adjustItemCount(tx, item.BoxID, 1)
	})
}

// UpdateAndMove saves the item and, when its box changed, moves one unit of
// item count from the box the row is currently in to the new one. The
// current box is read under a row lock inside the transaction.
func (r *ItemRepositoryImpl[T]) UpdateAndMove(item *models.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		stored, err := lockItem(tx, item.ID)
		if err != nil {
			return err
		}
		moved := item.BoxID != stored.BoxID
		if moved {
			if err := boxExists(tx, item.BoxID); err != nil {
				return err
			}
		}
		if err := tx.Save(item).Error; err != nil {
			return err
		}
		if !moved {
			return nil
		}
		if err := adjustItemCount(tx, stored.BoxID, -1); err != nil {
			return err
		}
		return adjustItemCount(tx, item.BoxID, 1)
	})
}

// DeleteFromBox removes the item and decrements the box it is stored in at
// delete time, which may differ from item.BoxID after a concurrent move.
func (r *ItemRepositoryImpl[T]) DeleteFromBox(item *models.Item) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		stored, err := lockItem(tx, item.ID)
		if err != nil {
			return err
		}
		result := tx.Delete(&models.Item{}, "id = ?", item.ID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return adjustItemCount(tx, stored.BoxID, -1)
	})
}

func lockItem(tx *gorm.DB, id string) (*models.Item, error) {
	var stored models.Item
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Select("id", "box_id").
		First(&stored, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func boxExists(tx *gorm.DB, boxID string) error {
	var count int64
	if err := tx.Model(&models.Box{}).Where("id = ?", boxID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

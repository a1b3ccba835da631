package repository

import (
	"github.com/HugoJF/boxbox/internal/models"
	"gorm.io/gorm"
	"strings"
)

type BoxRepository interface {
	GenericRepository[models.Box]
	Search(search string) ([]models.Box, error)
	FindWithItems(id string) (*models.Box, error)
	UpdateDetails(box *models.Box) error
	RecountItems() (int, error)
}

type BoxRepositoryImpl[T models.Box] struct {
	GenericRepository[models.Box]
	db *gorm.DB
}

func NewBoxRepository(db *gorm.DB) BoxRepository {
	return &BoxRepositoryImpl[models.Box]{
		GenericRepository: NewGenericRepository[models.Box](db),
		db:                db,
	}
}

// Search lists boxes newest first. A blank search returns every box,
// otherwise name and description are matched case-insensitively.
func (r *BoxRepositoryImpl[T]) Search(search string) ([]models.Box, error) {
	var boxes []models.Box
	query := r.db.Order("created_at DESC")
	if search = strings.TrimSpace(search); search != "" {
		pattern := likePattern(search)
		query = query.Where(searchClause, pattern, pattern)
	}
	if err := query.Find(&boxes).Error; err != nil {
		return nil, err
	}
	return boxes, nil
}

// UpdateDetails writes the user-editable columns only. item_count belongs to
// the item transactions and the reconciler.
func (r *BoxRepositoryImpl[T]) UpdateDetails(box *models.Box) error {
	return r.db.Model(box).
		Select("name", "description", "color", "updated_at").
		Updates(box).Error
}

func (r *BoxRepositoryImpl[T]) FindWithItems(id string) (*models.Box, error) {
	var box models.Box
	err := r.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at DESC, id DESC")
		}).
		First(&box, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &box, nil
}

// RecountItems rewrites item_count for every box whose stored count differs
// from the number of items referencing it and returns how many were fixed.
func (r *BoxRepositoryImpl[T]) RecountItems() (int, error) {
	var corrected int
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var drifted []struct {
			ID     string
			Actual int
		}
		err := tx.Raw(`
			SELECT b.id AS id, COUNT(i.id) AS actual
			FROM boxes b
			LEFT JOIN items i ON i.box_id = b.id
			GROUP BY b.id, b.item_count
			HAVING COUNT(i.id) <> b.item_count`).Scan(&drifted).Error
		if err != nil {
			return err
		}
		for _, box := range drifted {
			err = tx.Model(&models.Box{}).
				Where("id = ?", box.ID).
				UpdateColumn("item_count", box.Actual).Error
			if err != nil {
				return err
			}
		}
		corrected = len(drifted)
		return nil
	})
	return corrected, err
}

func adjustItemCount(tx *gorm.DB, boxID string, delta int) error {
	return tx.Model(&models.Box{}).
		Where("id = ?", boxID).
		UpdateColumn("item_count", gorm.Expr("item_count + ?", delta)).Error
}

const searchClause = `(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern matches search as a literal substring.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

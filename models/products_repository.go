package models

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrProductNotFound is returned when a product lookup matches no row.
var ErrProductNotFound = errors.New("product not found")

// ErrConstraint is returned when the store rejects a write because of an
// integrity constraint (NOT NULL, unique, or foreign key).
var ErrConstraint = errors.New("constraint violation")

// ProductSort is an optional caller-chosen sort key for listings. Column
// must come from SortableColumns.
type ProductSort struct {
	Column string
	Desc   bool
}

// SortableColumns maps the JSON field names accepted in the sortBy query
// parameter to their database columns.
var SortableColumns = map[string]string{
	"id":          "id",
	"productName": "product_name",
	"price":       "price",
	"description": "description",
	"slug":        "slug",
	"categoryID":  "category_id",
}

// UpdatableColumns maps JSON field names accepted in an update body to their
// database columns. The primary key is deliberately absent.
var UpdatableColumns = map[string]string{
	"productName": "product_name",
	"price":       "price",
	"description": "description",
	"slug":        "slug",
	"categoryID":  "category_id",
}

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

func (r *ProductsRepository) Create(p *Product) error {
	if err := r.db.Create(p).Error; err != nil {
		return classify(err)
	}
	return nil
}

// CreateBatch inserts all products in a single multi-row statement. The
// batch is all-or-nothing: one bad row fails the whole insert.
func (r *ProductsRepository) CreateBatch(products []Product) ([]Product, error) {
	if err := r.db.Create(&products).Error; err != nil {
		return nil, classify(err)
	}
	return products, nil
}

// SlugExists reports whether any product already carries the given slug.
func (r *ProductsRepository) SlugExists(slug string) (bool, error) {
	var n int64
	if err := r.db.Model(&Product{}).Where("slug = ?", slug).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ProductsRepository) GetBySlug(slug string) (*Product, error) {
	var product Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

// List returns one page of products joined with their category name, plus
// the total row count. The explicit sort key, when present, takes precedence
// over the fixed price-ascending ordering; price is always kept as the final
// tie-break.
func (r *ProductsRepository) List(offset, limit int, sort *ProductSort) ([]ProductRow, int64, error) {
	var total int64
	if err := r.db.Model(&Product{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := r.db.Model(&Product{}).
		Select("product.*, category.cat_name").
		Joins("LEFT JOIN category ON category.cat_id = product.category_id")

	if sort != nil {
		dir := "ASC"
		if sort.Desc {
			dir = "DESC"
		}
		query = query.Order(sort.Column + " " + dir)
	}
	query = query.Order("price ASC")

	var rows []ProductRow
	if err := query.Offset(offset).Limit(limit).Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update applies the given column values to the product with the given id
// and returns the number of rows affected. Zero rows means the product does
// not exist; there is no separate existence check.
func (r *ProductsRepository) Update(id uint, fields map[string]any) (int64, error) {
	res := r.db.Model(&Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

// Delete removes the product with the given id and returns the number of
// rows affected.
func (r *ProductsRepository) Delete(id uint) (int64, error) {
	res := r.db.Delete(&Product{}, "id = ?", id)
	if res.Error != nil {
		return 0, classify(res.Error)
	}
	return res.RowsAffected, nil
}

// classify maps driver-level integrity violations (pq error class 23) onto
// ErrConstraint so handlers can tell them apart from connectivity failures.
func classify(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Class() == "23" {
		return fmt.Errorf("%w: %s", ErrConstraint, pqErr.Message)
	}
	return err
}

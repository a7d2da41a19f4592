package models

// Product is a catalog entry. The slug is derived from the product name at
// creation time and is unique across the table; callers never supply it.
type Product struct {
	ID          uint   `json:"id" gorm:"primaryKey;autoIncrement;not null"`
	Name        string `json:"productName" gorm:"column:product_name;not null"`
	Price       int    `json:"price" gorm:"not null"`
	Description string `json:"description" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex"`
	CategoryID  uint   `json:"categoryID" gorm:"column:category_id;not null"`
}

func (p *Product) TableName() string {
	return "product"
}

// ProductRow is one row of the joined product listing: the product columns
// plus the owning category's name.
type ProductRow struct {
	ID           uint   `json:"id"`
	Name         string `json:"productName" gorm:"column:product_name"`
	Price        int    `json:"price"`
	Description  string `json:"description"`
	Slug         string `json:"slug"`
	CategoryID   uint   `json:"categoryID" gorm:"column:category_id"`
	CategoryName string `json:"catName" gorm:"column:cat_name"`
}

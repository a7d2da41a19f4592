package models

// Category groups products. Once created a category is never updated or
// deleted; it only accumulates products.
type Category struct {
	ID          uint      `json:"catID" gorm:"column:cat_id;primaryKey;autoIncrement;not null"`
	Name        string    `json:"catName" gorm:"column:cat_name;not null"`
	Description string    `json:"catDesc" gorm:"column:cat_desc;not null"`
	Products    []Product `json:"-" gorm:"foreignKey:CategoryID"`
}

func (c *Category) TableName() string {
	return "category"
}

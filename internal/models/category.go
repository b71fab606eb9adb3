package models

type Category struct {
	BaseModel

	Name        string `gorm:"uniqueIndex;size:50;not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`

	// Relationships
	Recipes []Recipe `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
}

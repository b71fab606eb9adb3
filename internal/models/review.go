package models

type Review struct {
	BaseModel

	UserID   uint   `gorm:"not null;index" json:"user_id"`
	RecipeID uint   `gorm:"not null;index" json:"recipe_id"`
	Rating   int    `gorm:"not null" json:"rating"`
	Comment  string `gorm:"type:text;not null" json:"comment"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

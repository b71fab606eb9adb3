package models

type Recipe struct {
	BaseModel

	UserID           uint   `gorm:"not null;index" json:"user_id"`
	CategoryID       *uint  `gorm:"index" json:"category_id"`
	Title            string `gorm:"uniqueIndex;size:100;not null" json:"title"`
	Description      string `gorm:"type:text;not null" json:"description"`
	Ingredients      string `gorm:"type:text;not null" json:"ingredients"`
	PreparationSteps string `gorm:"type:text;not null" json:"preparation_steps"`
	CookingTime      int    `gorm:"not null" json:"cooking_time"`
	ServingSize      int    `gorm:"not null" json:"serving_size"`

	// Relationships
	User     User      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Category *Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:Cascade,OnDelete:SET NULL" json:"-"`
	Reviews  []Review  `gorm:"foreignKey:RecipeID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

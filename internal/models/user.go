package models

type User struct {
	BaseModel

	Email        string `gorm:"uniqueIndex;size:254;not null" json:"email"`
	FirstName    string `gorm:"size:30;not null" json:"first_name"`
	LastName     string `gorm:"size:30;not null" json:"last_name"`
	PhoneNumber  string `gorm:"uniqueIndex;size:15;not null" json:"phone_number"`
	PasswordHash string `gorm:"not null" json:"-"`
	IsActive     bool   `gorm:"default:true" json:"is_active"`
	IsStaff      bool   `gorm:"default:false" json:"is_staff"`
	IsSuperuser  bool   `gorm:"default:false" json:"is_superuser"`

	// Relationships
	Recipes []Recipe `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Reviews []Review `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}

package models

import "time"

// BaseModel holds the primary key and timestamp pair shared by every table.
// Rows are hard deleted: category removal must null out recipe links and
// recipe removal must take its reviews with it, so soft-delete markers would
// leave phantom rows behind the rating aggregate.
type BaseModel struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

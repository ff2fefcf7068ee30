package models

import "time"

type BaseModel struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PublishableModel carries the publication flag shared by categories,
// locations and posts. The column has no database default because gorm
// would replace an explicit false with it on insert.
type PublishableModel struct {
	IsPublished bool `json:"is_published" gorm:"not null"`
}

const DisplayNameThreshold = 20

func truncateDisplay(in string) string {
	runes := []rune(in)
	if len(runes) > DisplayNameThreshold {
		return string(runes[:DisplayNameThreshold])
	}
	return in
}

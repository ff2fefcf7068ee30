package models

import (
	"time"
)

type Post struct {
	BaseModel
	PublishableModel

	Title    string    `json:"title" gorm:"size:256;not null"`
	Text     string    `json:"text" gorm:"not null"`
	PubDate  time.Time `json:"pub_date" gorm:"index;not null"`
	Image    *string   `json:"image"`
	Language string    `json:"language"`

	AuthorID   uint      `json:"author_id" gorm:"index;not null"`
	Author     Account   `json:"author" gorm:"constraint:OnDelete:CASCADE"`
	LocationID *uint     `json:"location_id"`
	Location   *Location `json:"location" gorm:"constraint:OnDelete:SET NULL"`
	CategoryID *uint     `json:"category_id"`
	Category   *Category `json:"category" gorm:"constraint:OnDelete:SET NULL"`

	CommentCount int64 `json:"comment_count" gorm:"-"`
}

func (v Post) String() string {
	return truncateDisplay(v.Title)
}

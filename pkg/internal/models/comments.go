package models

type Comment struct {
	BaseModel

	Text     string  `json:"text" gorm:"not null"`
	PostID   uint    `json:"post_id" gorm:"index;not null"`
	Post     *Post   `json:"post,omitempty" gorm:"constraint:OnDelete:CASCADE"`
	AuthorID uint    `json:"author_id" gorm:"index;not null"`
	Author   Account `json:"author" gorm:"constraint:OnDelete:CASCADE"`
}

func (v Comment) String() string {
	return truncateDisplay(v.Text)
}

package models

type Category struct {
	BaseModel
	PublishableModel

	Title       string `json:"title" gorm:"size:256;not null"`
	Description string `json:"description" gorm:"not null"`
	Slug        string `json:"slug" gorm:"uniqueIndex;size:64;not null"`
}

func (v Category) String() string {
	return truncateDisplay(v.Title)
}

type Location struct {
	BaseModel
	PublishableModel

	Name string `json:"name" gorm:"size:256;not null"`
}

func (v Location) String() string {
	return truncateDisplay(v.Name)
}

package models

type Genre struct {
	ID   int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"not null;size:35"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null;size:50"`
}

func (Genre) TableName() string {
	return "genres"
}

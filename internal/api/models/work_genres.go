package models

// explicit join model so the table keeps its own id
type WorkGenre struct {
	ID      int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	WorkID  int64 `json:"work_id" gorm:"index;not null"`
	GenreID int64 `json:"genre_id" gorm:"index;not null"`
}

func (WorkGenre) TableName() string {
	return "work_genres"
}

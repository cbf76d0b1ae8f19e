package models

import "time"

type Review struct {
	ID int64 `json:"id" gorm:"primaryKey;autoIncrement"`

	// The composite unique index is the uniqueness guard: at most one
	// review per (work, author), enforced by the database even under
	// concurrent inserts.
	WorkID   int64  `json:"work_id" gorm:"not null;index;uniqueIndex:ux_reviews_work_author"`
	AuthorID string `json:"author_id" gorm:"type:uuid;not null;index;uniqueIndex:ux_reviews_work_author"`

	Score     int       `json:"score" gorm:"not null;check:score >= 1 AND score <= 10"`
	Text      string    `json:"text" gorm:"not null;type:text"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;index"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	Author User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE;"`
	Work   Work `json:"work,omitempty" gorm:"foreignKey:WorkID;constraint:OnDelete:CASCADE;"`
}

func (Review) TableName() string {
	return "reviews"
}

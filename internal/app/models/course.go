package models

import "time"

// Course represents a course registered through the course form.
// Names are unique at the store level.
type Course struct {
	ID          int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" db:"name" gorm:"not null;uniqueIndex:ix_courses_name"`
	Description string    `json:"description" db:"description" gorm:"type:varchar(250);not null"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at" gorm:"not null;autoCreateTime"`
}

// TableName pins the GORM table name
func (Course) TableName() string {
	return "courses"
}

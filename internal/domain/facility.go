package domain

import "time"

type Facility struct {
	ID          int64     `gorm:"column:id;primaryKey" json:"id"`
	Name        string    `gorm:"column:name;uniqueIndex;size:50" json:"name"`
	Location    string    `gorm:"column:location;size:100" json:"location"`
	Capacity    int       `gorm:"column:capacity" json:"capacity"`
	Description string    `gorm:"column:description;size:200" json:"description,omitempty"`
	IsActive    bool      `gorm:"column:is_active;default:true" json:"is_active"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (Facility) TableName() string { return "facilities" }

package models

import "github.com/google/uuid"

// Group is a named list of member names. Members carry no identity beyond
// name equality; they are stored in the order the owner added them.
type Group struct {
	BaseModel
	Name        string    `json:"name" gorm:"type:varchar(255);not null"`
	Members     []string  `json:"members" gorm:"serializer:json;not null"`
	CreatedByID uuid.UUID `json:"createdByID" gorm:"type:uuid;not null;index"`
	CreatedBy   User      `json:"-" gorm:"foreignKey:CreatedByID;references:ID"`
	Expenses    []Expense `json:"-" gorm:"foreignKey:GroupID"`
}

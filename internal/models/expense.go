package models

import "github.com/google/uuid"

// Expense is a single payment by one group member, divided equally among
// SplitBetween. The payer is removed from SplitBetween before the record
// is persisted, so a stored expense never lists the payer as owing
// themselves. Expenses are immutable once created.
type Expense struct {
	BaseModel
	GroupID      uuid.UUID `json:"groupID" gorm:"type:uuid;not null;index"`
	Description  string    `json:"description" gorm:"type:text;not null"`
	Amount       float64   `json:"amount" gorm:"not null"`
	PaidBy       string    `json:"paidBy" gorm:"type:varchar(100);not null;index"`
	SplitBetween []string  `json:"splitBetween" gorm:"serializer:json;not null"`
	ReceiptRef   *string   `json:"receiptRef,omitempty" gorm:"type:text"`
	Group        Group     `json:"-" gorm:"foreignKey:GroupID;references:ID"`
}

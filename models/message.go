package models

import "time"

// Message represents a direct message between two identities
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"not null;index" json:"sender_id"`
	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Text        string    `gorm:"type:text;not null" json:"content"`
	CreatedAt   time.Time `json:"timestamp"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}

package models

import "time"

// Ticket is a courier support ticket answered by the admin console.
type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	RefNo     string    `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	Subject   string    `gorm:"size:120;not null" json:"subject"`
	Date      time.Time `json:"date"`
	IsOpen    bool      `gorm:"not null;default:true" json:"is_open"`
	IsClose   bool      `gorm:"not null;default:false" json:"is_close"`
	CourierID uint      `gorm:"not null;index" json:"courier_id"`
	AdminID   *uint     `json:"admin_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []TicketMessage `gorm:"foreignKey:TicketID" json:"messages,omitempty"`
}

func (Ticket) TableName() string {
	return "tickets"
}

type TicketMessage struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CourierText string    `gorm:"size:500" json:"courier_text"`
	AdminText   string    `gorm:"size:500" json:"admin_text"`
	TicketID    uint      `gorm:"not null;index" json:"ticket_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TicketMessage) TableName() string {
	return "ticket_messages"
}

package repository

import (
	"time"

	"gogett/internal/domain"
	"gogett/internal/models"
	"gogett/pkg/refcode"

	"gorm.io/gorm"
)

type TicketRepository struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{db: db}
}

// Create opens a ticket with its first message atomically.
func (r *TicketRepository) Create(courierID uint, subject, text string) (*models.Ticket, error) {
	t := models.Ticket{
		Subject:   subject,
		Date:      time.Now(),
		IsOpen:    true,
		CourierID: courierID,
	}
	err := r.db.Transaction(func(tx *gorm.DB) error {
		ref, err := refcode.Next(tx, domain.RefPrefixTicket)
		if err != nil {
			return err
		}
		t.RefNo = ref
		if err := tx.Create(&t).Error; err != nil {
			return err
		}
		if text == "" {
			return nil
		}
		msg := models.TicketMessage{CourierText: text, TicketID: t.ID}
		return tx.Create(&msg).Error
	})
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) GetByID(courierID, ticketID uint) (*models.Ticket, error) {
	var t models.Ticket
	err := r.db.Preload("Messages").
		Where("id = ? AND courier_id = ?", ticketID, courierID).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TicketRepository) ListByCourier(courierID uint) ([]models.Ticket, error) {
	var ts []models.Ticket
	err := r.db.Where("courier_id = ?", courierID).Order("id DESC").Find(&ts).Error
	return ts, err
}

func (r *TicketRepository) AddMessage(courierID, ticketID uint, text string) error {
	var t models.Ticket
	if err := r.db.Where("id = ? AND courier_id = ?", ticketID, courierID).First(&t).Error; err != nil {
		return err
	}
	return r.db.Create(&models.TicketMessage{CourierText: text, TicketID: t.ID}).Error
}

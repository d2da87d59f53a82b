package models

import "time"

// Review is a rating the courier leaves about a customer or a seller after a
// delivery. The link rows below pin down which side it targets.
type Review struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Rate      int       `gorm:"not null" json:"rate"`
	Review    string    `gorm:"size:500" json:"review"`
	OrderID   *uint     `gorm:"index" json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

type CustomerReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;index" json:"review_id"`
	CourierID uint      `gorm:"not null;index" json:"courier_id"`
	CusID     uint      `gorm:"not null;index" json:"cus_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (CustomerReview) TableName() string {
	return "customer_reviews"
}

type SellerReview struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ReviewID  uint      `gorm:"not null;index" json:"review_id"`
	CourierID uint      `gorm:"not null;index" json:"courier_id"`
	SellerID  uint      `gorm:"not null;index" json:"seller_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SellerReview) TableName() string {
	return "seller_reviews"
}

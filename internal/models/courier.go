package models

import (
	"time"
)

// Courier is the delivery-boy account. Login is phone + OTP, so there is no
// password column; the current code is kept hashed until verified.
type Courier struct {
	ID           uint       `gorm:"primaryKey" json:"id"`
	PublicID     string     `gorm:"uniqueIndex;size:50;not null" json:"public_id"`
	ContactNo    string     `gorm:"uniqueIndex;size:15;not null" json:"contact_no"`
	IsConfirm    bool       `gorm:"not null;default:false" json:"is_confirm"`
	ConfirmDate  *time.Time `json:"confirm_date"`
	IsLoggedIn   bool       `gorm:"not null;default:false" json:"is_logged_in"`
	IsInactive   bool       `gorm:"not null;default:false" json:"is_inactive"`
	OtpHash      string     `gorm:"size:255" json:"-"`
	OtpExpiresAt *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Profile *CourierProfile `gorm:"foreignKey:CourierID" json:"profile,omitempty"`
	Vehicle *CourierVehicle `gorm:"foreignKey:CourierID" json:"vehicle,omitempty"`
	Bank    *CourierBank    `gorm:"foreignKey:CourierID" json:"bank,omitempty"`
}

func (Courier) TableName() string {
	return "couriers"
}

type CourierProfile struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RefNo         string    `gorm:"uniqueIndex;size:20;not null" json:"ref_no"`
	NIC           string    `gorm:"uniqueIndex;size:12" json:"nic"`
	FirstName     string    `gorm:"size:50;not null" json:"first_name"`
	LastName      string    `gorm:"size:50;not null" json:"last_name"`
	Email         string    `gorm:"uniqueIndex;size:120;not null" json:"email"`
	StreetAddress string    `gorm:"size:120" json:"street_address"`
	CityAddress   string    `gorm:"size:30" json:"city_address"`
	Postcode      int       `json:"postcode"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	CourierID     uint      `gorm:"uniqueIndex;not null" json:"courier_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (CourierProfile) TableName() string {
	return "courier_profiles"
}

type CourierVehicle struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Type      string    `gorm:"size:8;not null" json:"type"`
	RegNo     string    `gorm:"uniqueIndex;size:10;not null" json:"reg_no"`
	Note      string    `gorm:"size:100" json:"note"`
	CourierID uint      `gorm:"not null;index" json:"courier_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CourierVehicle) TableName() string {
	return "courier_vehicles"
}

type CourierBank struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	BankName  string    `gorm:"size:20;not null" json:"bank_name"`
	Branch    string    `gorm:"size:30;not null" json:"branch"`
	AccNo     string    `gorm:"uniqueIndex;size:12;not null" json:"acc_no"`
	AccHolder string    `gorm:"size:75;not null" json:"acc_holder"`
	CourierID uint      `gorm:"not null;index" json:"courier_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CourierBank) TableName() string {
	return "courier_banks"
}

// BlacklistedToken invalidates an access token before its natural expiry
// (logout). Expired rows are prunable.
type BlacklistedToken struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Token     string    `gorm:"uniqueIndex;size:500;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

func (BlacklistedToken) TableName() string {
	return "blacklisted_tokens"
}

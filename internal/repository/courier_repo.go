package repository

import (
	"errors"
	"time"

	"gogett/internal/domain"
	"gogett/internal/models"
	"gogett/pkg/refcode"

	"gorm.io/gorm"
)

type CourierRepository struct {
	db *gorm.DB
}

func NewCourierRepository(db *gorm.DB) *CourierRepository {
	return &CourierRepository{db: db}
}

func (r *CourierRepository) GetByID(id uint) (*models.Courier, error) {
	var c models.Courier
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourierRepository) GetByContactNo(contactNo string) (*models.Courier, error) {
	var c models.Courier
	if err := r.db.Where("contact_no = ?", contactNo).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourierRepository) GetByPublicID(publicID string) (*models.Courier, error) {
	var c models.Courier
	if err := r.db.Where("public_id = ?", publicID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CourierRepository) Create(c *models.Courier) error {
	return r.db.Create(c).Error
}

func (r *CourierRepository) Save(c *models.Courier) error {
	return r.db.Save(c).Error
}

func (r *CourierRepository) GetProfile(courierID uint) (*models.CourierProfile, error) {
	var p models.CourierProfile
	if err := r.db.Where("courier_id = ?", courierID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

// SaveProfile creates the profile with a fresh DP reference on first save and
// updates it afterwards.
func (r *CourierRepository) SaveProfile(courierID uint, p *models.CourierProfile) error {
	existing, err := r.GetProfile(courierID)
	if err == gorm.ErrRecordNotFound {
		return r.db.Transaction(func(tx *gorm.DB) error {
			ref, err := refcode.Next(tx, domain.RefPrefixProfile)
			if err != nil {
				return err
			}
			p.RefNo = ref
			p.CourierID = courierID
			return tx.Create(p).Error
		})
	}
	if err != nil {
		return err
	}
	existing.NIC = p.NIC
	existing.FirstName = p.FirstName
	existing.LastName = p.LastName
	existing.Email = p.Email
	existing.StreetAddress = p.StreetAddress
	existing.CityAddress = p.CityAddress
	existing.Postcode = p.Postcode
	existing.Latitude = p.Latitude
	existing.Longitude = p.Longitude
	*p = *existing
	return r.db.Save(existing).Error
}

func (r *CourierRepository) GetVehicle(courierID uint) (*models.CourierVehicle, error) {
	var v models.CourierVehicle
	if err := r.db.Where("courier_id = ?", courierID).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

// ErrVehicleRegTaken is returned when a registration number is already
// recorded against another courier's vehicle.
var ErrVehicleRegTaken = errors.New("vehicle registration already taken")

// SaveVehicle upserts by registration number, matching the mobile client's
// "register or edit my vehicle" screen. The row must belong to the calling
// courier; a registration held by someone else is a conflict, not an edit.
func (r *CourierRepository) SaveVehicle(courierID uint, v *models.CourierVehicle) (created bool, err error) {
	var existing models.CourierVehicle
	err = r.db.Where("reg_no = ?", v.RegNo).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		v.CourierID = courierID
		return true, r.db.Create(v).Error
	}
	if err != nil {
		return false, err
	}
	if existing.CourierID != courierID {
		return false, ErrVehicleRegTaken
	}
	existing.Type = v.Type
	existing.Note = v.Note
	*v = existing
	return false, r.db.Save(&existing).Error
}

func (r *CourierRepository) GetBank(courierID uint) (*models.CourierBank, error) {
	var b models.CourierBank
	if err := r.db.Where("courier_id = ?", courierID).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CourierRepository) CreateBank(b *models.CourierBank) error {
	return r.db.Create(b).Error
}

func (r *CourierRepository) UpdateBank(courierID uint, b *models.CourierBank) error {
	existing, err := r.GetBank(courierID)
	if err != nil {
		return err
	}
	existing.BankName = b.BankName
	existing.Branch = b.Branch
	existing.AccNo = b.AccNo
	existing.AccHolder = b.AccHolder
	*b = *existing
	return r.db.Save(existing).Error
}

func (r *CourierRepository) DeleteBank(courierID uint) error {
	return r.db.Where("courier_id = ?", courierID).Delete(&models.CourierBank{}).Error
}

type BlacklistRepository struct {
	db *gorm.DB
}

func NewBlacklistRepository(db *gorm.DB) *BlacklistRepository {
	return &BlacklistRepository{db: db}
}

func (r *BlacklistRepository) Add(token string, expiresAt time.Time) error {
	return r.db.Create(&models.BlacklistedToken{Token: token, ExpiresAt: expiresAt}).Error
}

func (r *BlacklistRepository) IsBlacklisted(token string) bool {
	var n int64
	r.db.Model(&models.BlacklistedToken{}).Where("token = ?", token).Count(&n)
	return n > 0
}

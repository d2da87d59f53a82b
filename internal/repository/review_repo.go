package repository

import (
	"gogett/internal/models"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// CreateCustomerReview stores the review and its courier-to-customer link in one
// transaction.
func (r *ReviewRepository) CreateCustomerReview(courierID, cusID uint, rev *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rev).Error; err != nil {
			return err
		}
		link := models.CustomerReview{ReviewID: rev.ID, CourierID: courierID, CusID: cusID}
		return tx.Create(&link).Error
	})
}

func (r *ReviewRepository) CreateSellerReview(courierID, sellerID uint, rev *models.Review) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(rev).Error; err != nil {
			return err
		}
		link := models.SellerReview{ReviewID: rev.ID, CourierID: courierID, SellerID: sellerID}
		return tx.Create(&link).Error
	})
}

// ReviewRow is the list projection for either review direction.
type ReviewRow struct {
	Rate    int    `json:"rate"`
	Review  string `json:"review"`
	OrderID *uint  `json:"order_id"`
}

func (r *ReviewRepository) ListCustomerReviews(courierID uint) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := r.db.Model(&models.Review{}).
		Select("reviews.rate, reviews.review, reviews.order_id").
		Joins("JOIN customer_reviews ON customer_reviews.review_id = reviews.id").
		Where("customer_reviews.courier_id = ?", courierID).
		Limit(50).
		Scan(&rows).Error
	return rows, err
}

func (r *ReviewRepository) ListSellerReviews(courierID uint) ([]ReviewRow, error) {
	var rows []ReviewRow
	err := r.db.Model(&models.Review{}).
		Select("reviews.rate, reviews.review, reviews.order_id").
		Joins("JOIN seller_reviews ON seller_reviews.review_id = reviews.id").
		Where("seller_reviews.courier_id = ?", courierID).
		Limit(50).
		Scan(&rows).Error
	return rows, err
}

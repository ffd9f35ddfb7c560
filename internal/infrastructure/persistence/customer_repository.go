package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shopops/backend/internal/domain/shop"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
)

// LocalCustomerDirectory implements shop.CustomerDirectory on the local
// database. It owns accumulation: callers submit per-order hints and the
// directory increments order counts and merges contact details itself.
type LocalCustomerDirectory struct {
	db *gorm.DB
}

var _ shop.CustomerDirectory = (*LocalCustomerDirectory)(nil)

// NewLocalCustomerDirectory creates a new LocalCustomerDirectory
func NewLocalCustomerDirectory(db *gorm.DB) *LocalCustomerDirectory {
	return &LocalCustomerDirectory{db: db}
}

// List returns all directory customers.
func (d *LocalCustomerDirectory) List(ctx context.Context) ([]shop.Customer, error) {
	var customerModels []models.CustomerModel
	if err := d.db.WithContext(ctx).Order("created_at").Find(&customerModels).Error; err != nil {
		return nil, err
	}
	customers := make([]shop.Customer, len(customerModels))
	for i, model := range customerModels {
		customers[i] = model.ToDomain()
	}
	return customers, nil
}

// Upsert merges one order's customer hint into the directory inside a single
// transaction. An existing customer (matched by trimmed phone) gets
// orderCount+1, totalSpent += total and the latest non-empty contact details;
// an unknown phone is inserted with orderCount 1.
func (d *LocalCustomerDirectory) Upsert(ctx context.Context, upsert shop.CustomerUpsert) error {
	phone := shop.NormalizePhone(upsert.Phone)
	if !shop.ValidPhone(phone) {
		return fmt.Errorf("persistence: invalid customer phone %q", upsert.Phone)
	}

	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model models.CustomerModel
		err := tx.First(&model, "phone = ?", phone).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			model = models.CustomerModel{
				Phone:      phone,
				Name:       upsert.Name,
				Email:      upsert.Email,
				Address:    upsert.Address,
				Avatar:     upsert.Avatar,
				OrderCount: 1,
				TotalSpent: upsert.Total,
			}
			return tx.Create(&model).Error

		case err != nil:
			return err
		}

		model.OrderCount++
		model.TotalSpent = model.TotalSpent.Add(upsert.Total)
		if upsert.Name != "" {
			model.Name = upsert.Name
		}
		if upsert.Email != "" {
			model.Email = upsert.Email
		}
		if upsert.Address != "" {
			model.Address = upsert.Address
		}
		if upsert.Avatar != "" {
			model.Avatar = upsert.Avatar
		}
		return tx.Save(&model).Error
	})
}

package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopops/backend/internal/domain/shop"
)

// SettingModel persists one settings-store key/value pair. Values are stored
// as JSON-encoded strings, matching the remote store's wire contract.
type SettingModel struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// TableName returns the table name for SettingModel
func (SettingModel) TableName() string {
	return "settings"
}

// TrackingModel persists one courier tracking annotation keyed by order id.
type TrackingModel struct {
	OrderID      string `gorm:"primaryKey;size:64"`
	TrackingCode string `gorm:"size:64"`
	Provider     string `gorm:"size:32"`
	Status       string `gorm:"size:64"`
	UpdatedAt    time.Time
}

// TableName returns the table name for TrackingModel
func (TrackingModel) TableName() string {
	return "tracking_annotations"
}

// ToDomain converts TrackingModel to a domain annotation
func (m *TrackingModel) ToDomain() shop.TrackingAnnotation {
	return shop.TrackingAnnotation{
		OrderID:             m.OrderID,
		CourierTrackingCode: m.TrackingCode,
		CourierProvider:     m.Provider,
		CourierStatus:       m.Status,
	}
}

// FromDomain populates TrackingModel from a domain annotation
func (m *TrackingModel) FromDomain(a shop.TrackingAnnotation) {
	m.OrderID = a.OrderID
	m.TrackingCode = a.CourierTrackingCode
	m.Provider = a.CourierProvider
	m.Status = a.CourierStatus
}

// CustomerModel persists one directory customer, identified by phone.
// OrderCount and TotalSpent are accumulated server-side on every upsert.
type CustomerModel struct {
	Phone      string          `gorm:"primaryKey;size:32"`
	Name       string          `gorm:"size:128"`
	Email      string          `gorm:"size:128"`
	Address    string          `gorm:"size:512"`
	Avatar     string          `gorm:"size:512"`
	OrderCount int             `gorm:"not null;default:0"`
	TotalSpent decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName returns the table name for CustomerModel
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts CustomerModel to a domain customer
func (m *CustomerModel) ToDomain() shop.Customer {
	return shop.Customer{
		Name:       m.Name,
		Phone:      m.Phone,
		Email:      m.Email,
		Address:    m.Address,
		Avatar:     m.Avatar,
		OrderCount: m.OrderCount,
		TotalSpent: m.TotalSpent,
	}
}

// ExpenseModel persists one business expense.
type ExpenseModel struct {
	ID        string          `gorm:"primaryKey;size:64"`
	Title     string          `gorm:"size:256;not null"`
	Category  string          `gorm:"size:64"`
	Amount    decimal.Decimal `gorm:"type:numeric(20,6);not null;default:0"`
	Timestamp int64           `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName returns the table name for ExpenseModel
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToDomain converts ExpenseModel to a domain expense
func (m *ExpenseModel) ToDomain() shop.Expense {
	return shop.Expense{
		ID:        m.ID,
		Title:     m.Title,
		Category:  m.Category,
		Amount:    m.Amount,
		Timestamp: m.Timestamp,
	}
}

// FromDomain populates ExpenseModel from a domain expense
func (m *ExpenseModel) FromDomain(e shop.Expense) {
	m.ID = e.ID
	m.Title = e.Title
	m.Category = e.Category
	m.Amount = e.Amount
	m.Timestamp = e.Timestamp
}

package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopops/backend/internal/domain/shop"
	"github.com/shopops/backend/internal/infrastructure/persistence/models"
)

// LocalExpenseStore implements shop.ExpenseSource on the local database.
type LocalExpenseStore struct {
	db *gorm.DB
}

var _ shop.ExpenseSource = (*LocalExpenseStore)(nil)

// NewLocalExpenseStore creates a new LocalExpenseStore
func NewLocalExpenseStore(db *gorm.DB) *LocalExpenseStore {
	return &LocalExpenseStore{db: db}
}

// List returns all expenses, newest first.
func (s *LocalExpenseStore) List(ctx context.Context) ([]shop.Expense, error) {
	var expenseModels []models.ExpenseModel
	if err := s.db.WithContext(ctx).Order("timestamp desc").Find(&expenseModels).Error; err != nil {
		return nil, err
	}
	expenses := make([]shop.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = model.ToDomain()
	}
	return expenses, nil
}

// Save persists an expense, assigning an id when the caller left it empty.
func (s *LocalExpenseStore) Save(ctx context.Context, expense shop.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.NewString()
	}
	var model models.ExpenseModel
	model.FromDomain(expense)
	return s.db.WithContext(ctx).Save(&model).Error
}

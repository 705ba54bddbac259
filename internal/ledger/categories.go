package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
)

// Categories returns a copy of the expense category list.
func (l *Ledger) Categories() []model.ExpenseCategory {
	return slices.Clone(l.categories)
}

// Category returns the category with the given id.
func (l *Ledger) Category(id string) (model.ExpenseCategory, bool) {
	idx := l.categoryIndex(id)
	if idx < 0 {
		return model.ExpenseCategory{}, false
	}
	return l.categories[idx], true
}

// AddCategory stores c under a fresh id.
func (l *Ledger) AddCategory(ctx context.Context, c model.ExpenseCategory) (model.ExpenseCategory, error) {
	if err := c.Validate(); err != nil {
		return model.ExpenseCategory{}, err
	}

	c.ID = l.ids.NewID()
	l.categories = append(l.categories, c)
	l.gateway.SaveExpenseCategories(ctx, l.categories)
	return c, nil
}

// EditCategory replaces the category whose id matches c.ID.
func (l *Ledger) EditCategory(ctx context.Context, c model.ExpenseCategory) error {
	idx := l.categoryIndex(c.ID)
	if idx < 0 {
		return fmt.Errorf("expense category %q: %w", c.ID, common.ErrNotFound)
	}
	if err := c.Validate(); err != nil {
		return err
	}

	l.categories[idx] = c
	l.gateway.SaveExpenseCategories(ctx, l.categories)
	return nil
}

// DeleteCategory removes a category. The last remaining category cannot be
// removed. Expenses that used it keep the dangling id.
func (l *Ledger) DeleteCategory(ctx context.Context, id string) error {
	idx := l.categoryIndex(id)
	if idx < 0 {
		return fmt.Errorf("expense category %q: %w", id, common.ErrNotFound)
	}
	if len(l.categories) <= 1 {
		return common.ErrLastCategory
	}

	l.categories = slices.Delete(l.categories, idx, idx+1)
	l.gateway.SaveExpenseCategories(ctx, l.categories)
	return nil
}

func (l *Ledger) categoryIndex(id string) int {
	return slices.IndexFunc(l.categories, func(c model.ExpenseCategory) bool {
		return c.ID == id
	})
}

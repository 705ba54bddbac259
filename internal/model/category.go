package model

import (
	"fmt"
	"strings"

	"github.com/Veraticus/remis/internal/common"
)

// ExpenseCategory groups expense transactions.
type ExpenseCategory struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Validate checks the user-editable fields of a category.
func (c ExpenseCategory) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name cannot be empty", common.ErrInvalidInput)
	}
	if !IsHexColor(c.Color) {
		return fmt.Errorf("%w: category color %q must look like #rrggbb", common.ErrInvalidInput, c.Color)
	}
	return nil
}

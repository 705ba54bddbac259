package model

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/Veraticus/remis/internal/common"
)

func TestTransactionRecord_Validate(t *testing.T) {
	valid := TransactionRecord{
		ID:       "t1",
		DriverID: "1",
		Date:     NewDate(2024, time.January, 15),
		Amount:   5000,
		Type:     TypeIncome,
	}

	tests := []struct {
		name    string
		mutate  func(r *TransactionRecord)
		wantErr bool
	}{
		{name: "valid income", mutate: func(*TransactionRecord) {}},
		{name: "zero amount", mutate: func(r *TransactionRecord) { r.Amount = 0 }},
		{name: "valid expense", mutate: func(r *TransactionRecord) {
			r.Type = TypeExpense
			r.CategoryID = "fuel"
		}},
		{name: "expense without category", mutate: func(r *TransactionRecord) { r.Type = TypeExpense }, wantErr: true},
		{name: "negative amount", mutate: func(r *TransactionRecord) { r.Amount = -1 }, wantErr: true},
		{name: "NaN amount", mutate: func(r *TransactionRecord) { r.Amount = math.NaN() }, wantErr: true},
		{name: "missing driver", mutate: func(r *TransactionRecord) { r.DriverID = "" }, wantErr: true},
		{name: "missing date", mutate: func(r *TransactionRecord) { r.Date = Date{} }, wantErr: true},
		{name: "unknown type", mutate: func(r *TransactionRecord) { r.Type = "refund" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, common.ErrInvalidInput) {
				t.Errorf("Validate() error %v does not wrap ErrInvalidInput", err)
			}
		})
	}
}

func TestIncomeRecord_AsTransaction(t *testing.T) {
	legacy := IncomeRecord{ID: "1718000000000", DriverID: "1", Date: NewDate(2024, time.June, 10), Amount: 15000, Notes: "aeropuerto"}
	got := legacy.AsTransaction()

	want := TransactionRecord{ID: legacy.ID, DriverID: "1", Date: legacy.Date, Amount: 15000, Type: TypeIncome, Notes: "aeropuerto"}
	if got != want {
		t.Errorf("AsTransaction() = %+v, want %+v", got, want)
	}
}

func TestDriverAndCategory_Validate(t *testing.T) {
	for _, d := range DefaultDrivers() {
		if err := d.Validate(); err != nil {
			t.Errorf("default driver %q invalid: %v", d.ID, err)
		}
	}
	for _, c := range DefaultExpenseCategories() {
		if err := c.Validate(); err != nil {
			t.Errorf("default category %q invalid: %v", c.ID, err)
		}
	}

	bad := []error{
		Driver{Name: "", VehicleType: VehicleTaxi, VehicleColor: "#000000"}.Validate(),
		Driver{Name: "Ana", VehicleType: "bus", VehicleColor: "#000000"}.Validate(),
		Driver{Name: "Ana", VehicleType: VehicleRemise, VehicleColor: "red"}.Validate(),
		ExpenseCategory{Name: "Seguro", Color: "#12345"}.Validate(),
		ExpenseCategory{Name: " ", Color: "#123456"}.Validate(),
	}
	for i, err := range bad {
		if !errors.Is(err, common.ErrInvalidInput) {
			t.Errorf("case %d: error = %v, want ErrInvalidInput", i, err)
		}
	}
}

func TestValidateWorkDays(t *testing.T) {
	if err := ValidateWorkDays(DefaultWorkDays()); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}

	days := DefaultWorkDays()
	if days[0].IsWorkDay {
		t.Error("Sunday must be off by default")
	}
	for _, d := range days[1:] {
		if !d.IsWorkDay {
			t.Errorf("weekday %d must be on by default", d.DayOfWeek)
		}
	}

	dup := DefaultWorkDays()
	dup[6].DayOfWeek = 5
	if err := ValidateWorkDays(dup); err == nil {
		t.Error("expected error for repeated weekday")
	}
	if err := ValidateWorkDays(days[:6]); err == nil {
		t.Error("expected error for six entries")
	}
	outOfRange := DefaultWorkDays()
	outOfRange[3].DayOfWeek = 7
	if err := ValidateWorkDays(outOfRange); err == nil {
		t.Error("expected error for weekday 7")
	}
}

package model

// DefaultDriverID is the driver id older stores used for every record.
const DefaultDriverID = "1"

// DefaultDrivers is the driver collection of a fresh store.
func DefaultDrivers() []Driver {
	return []Driver{
		{
			ID:           DefaultDriverID,
			Name:         "Conductor principal",
			VehicleType:  VehicleTaxi,
			VehicleColor: DefaultVehicleColor,
			Active:       true,
		},
	}
}

// DefaultExpenseCategories is the category collection of a fresh store.
func DefaultExpenseCategories() []ExpenseCategory {
	return []ExpenseCategory{
		{ID: "fuel", Name: "Combustible", Color: "#f44336"},
		{ID: "maintenance", Name: "Mantenimiento", Color: "#ff9800"},
		{ID: "tolls", Name: "Peajes y estacionamiento", Color: "#9c27b0"},
		{ID: "other", Name: "Otros", Color: "#607d8b"},
	}
}

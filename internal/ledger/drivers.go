package ledger

import (
	"context"
	"fmt"
	"slices"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/model"
)

// Drivers returns a copy of the driver list.
func (l *Ledger) Drivers() []model.Driver {
	return slices.Clone(l.drivers)
}

// ActiveDrivers returns the drivers that can take new transactions.
func (l *Ledger) ActiveDrivers() []model.Driver {
	var out []model.Driver
	for _, d := range l.drivers {
		if d.Active {
			out = append(out, d)
		}
	}
	return out
}

// Driver returns the driver with the given id.
func (l *Ledger) Driver(id string) (model.Driver, bool) {
	idx := l.driverIndex(id)
	if idx < 0 {
		return model.Driver{}, false
	}
	return l.drivers[idx], true
}

// AddDriver stores d under a fresh id. An empty vehicle color gets the
// default one.
func (l *Ledger) AddDriver(ctx context.Context, d model.Driver) (model.Driver, error) {
	if d.VehicleColor == "" {
		d.VehicleColor = model.DefaultVehicleColor
	}
	if err := d.Validate(); err != nil {
		return model.Driver{}, err
	}

	d.ID = l.ids.NewID()
	l.drivers = append(l.drivers, d)
	l.gateway.SaveDrivers(ctx, l.drivers)
	return d, nil
}

// EditDriver replaces the driver whose id matches d.ID.
func (l *Ledger) EditDriver(ctx context.Context, d model.Driver) error {
	idx := l.driverIndex(d.ID)
	if idx < 0 {
		return fmt.Errorf("driver %q: %w", d.ID, common.ErrNotFound)
	}
	if err := d.Validate(); err != nil {
		return err
	}

	l.drivers[idx] = d
	l.gateway.SaveDrivers(ctx, l.drivers)
	return nil
}

// DeleteDriver removes a driver. The last remaining driver cannot be
// removed. The driver's transactions are kept.
func (l *Ledger) DeleteDriver(ctx context.Context, id string) error {
	idx := l.driverIndex(id)
	if idx < 0 {
		return fmt.Errorf("driver %q: %w", id, common.ErrNotFound)
	}
	if len(l.drivers) <= 1 {
		return common.ErrLastDriver
	}

	l.drivers = slices.Delete(l.drivers, idx, idx+1)
	l.gateway.SaveDrivers(ctx, l.drivers)
	return nil
}

func (l *Ledger) driverIndex(id string) int {
	return slices.IndexFunc(l.drivers, func(d model.Driver) bool {
		return d.ID == id
	})
}

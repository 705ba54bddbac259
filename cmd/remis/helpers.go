package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/viper"

	"github.com/Veraticus/remis/internal/common"
	"github.com/Veraticus/remis/internal/config"
	"github.com/Veraticus/remis/internal/ledger"
	"github.com/Veraticus/remis/internal/model"
	"github.com/Veraticus/remis/internal/persistence"
	"github.com/Veraticus/remis/internal/service"
	"github.com/Veraticus/remis/internal/storage"
)

// appFs is where backup files are read and written.
var appFs = afero.NewOsFs()

var envKeyReplacer = strings.NewReplacer(".", "_")

// app is everything a command needs once configuration is loaded.
type app struct {
	settings *config.Settings
	store    service.KeyValueStore
	gateway  *persistence.Gateway
	ledger   *ledger.Ledger
}

// openApp opens the configured store and loads the ledger from it.
func openApp(ctx context.Context) (*app, error) {
	settings, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, common.NewUserError("invalid configuration", err)
	}

	store, err := initStorage(ctx, settings)
	if err != nil {
		return nil, err
	}

	gateway := persistence.NewGateway(store)
	return &app{
		settings: settings,
		store:    store,
		gateway:  gateway,
		ledger:   ledger.Open(ctx, gateway),
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// initStorage opens the store for the configured backend and migrates it.
func initStorage(ctx context.Context, settings *config.Settings) (service.KeyValueStore, error) {
	var opts []storage.Option
	if settings.QuotaBytes > 0 {
		opts = append(opts, storage.WithQuota(settings.QuotaBytes))
	}

	if settings.Backend == config.BackendMemory {
		return storage.NewMemoryStore(opts...), nil
	}

	store, err := storage.NewSQLiteStore(settings.DatabasePath, opts...)
	if err != nil {
		return nil, err
	}

	if err := store.Migrate(ctx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// parseMonth reads YYYY-MM; an empty string means the current month.
func parseMonth(s string) (int, time.Month, error) {
	if s == "" {
		today := model.Today()
		return today.Year(), today.Month(), nil
	}
	t, err := time.Parse("2006-01", strings.TrimSpace(s))
	if err != nil {
		return 0, 0, common.NewUserError(fmt.Sprintf("invalid month %q, want YYYY-MM", s), common.ErrInvalidInput)
	}
	return t.Year(), t.Month(), nil
}

// parseDay reads YYYY-MM-DD; an empty string means today.
func parseDay(s string) (model.Date, error) {
	if s == "" {
		return model.Today(), nil
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, common.NewUserError(err.Error(), common.ErrInvalidInput)
	}
	return d, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "sunday": time.Sunday, "do": time.Sunday, "domingo": time.Sunday,
	"mon": time.Monday, "monday": time.Monday, "lu": time.Monday, "lunes": time.Monday,
	"tue": time.Tuesday, "tuesday": time.Tuesday, "ma": time.Tuesday, "martes": time.Tuesday,
	"wed": time.Wednesday, "wednesday": time.Wednesday, "mi": time.Wednesday, "miercoles": time.Wednesday, "miércoles": time.Wednesday,
	"thu": time.Thursday, "thursday": time.Thursday, "ju": time.Thursday, "jueves": time.Thursday,
	"fri": time.Friday, "friday": time.Friday, "vi": time.Friday, "viernes": time.Friday,
	"sat": time.Saturday, "saturday": time.Saturday, "sa": time.Saturday, "sá": time.Saturday, "sabado": time.Saturday, "sábado": time.Saturday,
}

// parseWeekday accepts 0-6 (Sunday first) or an English or Spanish name.
func parseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) == 1 && s[0] >= '0' && s[0] <= '6' {
		return time.Weekday(s[0] - '0'), nil
	}
	if wd, ok := weekdayNames[s]; ok {
		return wd, nil
	}
	return 0, common.NewUserError(fmt.Sprintf("unknown weekday %q", s), common.ErrInvalidInput)
}

// parseOnOff reads on/off style booleans.
func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "true", "si", "sí", "1":
		return true, nil
	case "off", "no", "false", "0":
		return false, nil
	default:
		return false, common.NewUserError(fmt.Sprintf("expected on or off, got %q", s), common.ErrInvalidInput)
	}
}

// userFacing turns domain errors into messages for the terminal.
func userFacing(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrLastDriver):
		return common.NewUserError("cannot delete the only driver", err)
	case errors.Is(err, common.ErrLastCategory):
		return common.NewUserError("cannot delete the only expense category", err)
	case errors.Is(err, common.ErrInactiveDriver):
		return common.NewUserError("driver is inactive; reactivate it with 'remis drivers edit --active'", err)
	case errors.Is(err, common.ErrNotFound), errors.Is(err, common.ErrInvalidInput):
		return common.NewUserError("rejected", err)
	default:
		return err
	}
}

func driverName(l *ledger.Ledger, id string) string {
	if d, ok := l.Driver(id); ok {
		return d.Name
	}
	return id
}

func categoryName(l *ledger.Ledger, id string) string {
	if id == "" {
		return ""
	}
	if c, ok := l.Category(id); ok {
		return c.Name
	}
	return id
}

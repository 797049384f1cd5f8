// Package session runs the interactive ledger: first-run setup followed by
// the main menu loop.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Veraticus/orderplace/internal/catalog"
	"github.com/Veraticus/orderplace/internal/cli"
	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/recorder"
	"github.com/Veraticus/orderplace/internal/report"
	"github.com/Veraticus/orderplace/internal/service"
)

// Store is the persistence the session needs.
type Store interface {
	service.ConfigStore
	service.CatalogStore
	service.RecordStore
	HasConfig(ctx context.Context) (bool, error)
	EnsureSequences(ctx context.Context) error
}

// Options configures a Controller.
type Options struct {
	Clock     service.Clock
	Logger    *slog.Logger
	ExportDir string
}

// Controller owns the menu loop and dispatches to the ledger components.
type Controller struct {
	store    Store
	console  service.Console
	logger   *slog.Logger
	catalog  *catalog.Manager
	recorder *recorder.Recorder
	reporter *report.Reporter
}

// New wires the ledger components around store and console.
func New(store Store, console service.Console, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	exportDir := opts.ExportDir
	if exportDir == "" {
		exportDir = "."
	}

	return &Controller{
		store:    store,
		console:  console,
		logger:   logger,
		catalog:  catalog.NewManager(store, logger),
		recorder: recorder.New(store, console, opts.Clock, logger),
		reporter: report.New(store, console, opts.Clock, exportDir, logger),
	}
}

// Setup runs first-time setup when no configuration exists, then makes sure
// the catalog and records documents exist.
func (c *Controller) Setup(ctx context.Context) error {
	ok, err := c.store.HasConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to check configuration: %w", err)
	}

	if !ok {
		cfg, err := c.collectConfig(ctx)
		if err != nil {
			return err
		}
		if err := c.store.SaveConfig(ctx, cfg); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}
		c.console.Success("Setup completed")
	}

	if err := c.store.EnsureSequences(ctx); err != nil {
		return fmt.Errorf("failed to create data files: %w", err)
	}
	return nil
}

func (c *Controller) collectConfig(ctx context.Context) (model.ShopConfig, error) {
	c.console.Print(cli.FormatTitle("FIRST TIME SETUP"))

	name, err := c.console.Ask(ctx, "Enter shop name")
	if err != nil {
		return model.ShopConfig{}, err
	}
	currency, err := c.console.Ask(ctx, "Enter currency (₹, $, PKR etc)")
	if err != nil {
		return model.ShopConfig{}, err
	}

	for {
		year, err := c.console.AskInt(ctx, "Enter shop start year")
		if err == nil {
			return model.ShopConfig{ShopName: name, Currency: currency, StartYear: year}, nil
		}
		if !errors.Is(err, common.ErrValidation) {
			return model.ShopConfig{}, err
		}
		c.console.Fail(common.UserMessage(err))
	}
}

// Run performs setup, prints the banner and loops over the main menu until
// the user exits or input ends. Only setup and configuration failures are
// returned; operation errors are reported and the menu is shown again.
func (c *Controller) Run(ctx context.Context) error {
	if err := c.Setup(ctx); err != nil {
		if isEndOfInput(err) {
			return nil
		}
		return err
	}

	cfg, err := c.store.LoadConfig(ctx)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	c.console.Print("\n" + cli.FormatTitle(fmt.Sprintf("=== %s ===", cfg.ShopName)))
	c.console.Print(fmt.Sprintf("Shop started in %d", cfg.StartYear))

	for {
		choice, err := c.console.Menu(ctx, "", []string{"Add New Record", "View Records", "Add Item", "Exit"})
		if err != nil {
			if isEndOfInput(err) {
				return nil
			}
			return err
		}

		switch choice {
		case "1":
			_, err = c.recorder.AddRecord(ctx, cfg.Currency)
		case "2":
			err = c.reporter.ViewRecords(ctx, cfg.Currency)
		case "3":
			err = c.catalog.PromptAndAdd(ctx, c.console)
		case "4":
			c.console.Print("Goodbye 👋")
			return nil
		default:
			err = common.ErrInvalidOption
		}

		if err != nil {
			if isEndOfInput(err) {
				return nil
			}
			c.report(choice, err)
		}
	}
}

func (c *Controller) report(choice string, err error) {
	c.console.Fail(common.UserMessage(err))

	switch {
	case errors.Is(err, common.ErrIO), errors.Is(err, common.ErrParse):
		common.LogWarn(c.logger, err, "operation failed", common.Fields{"choice": choice})
	default:
		common.LogDebug(c.logger, "operation aborted", common.Fields{"choice": choice, "reason": err.Error()})
	}
}

func isEndOfInput(err error) bool {
	return errors.Is(err, cli.ErrInputClosed) ||
		errors.Is(err, cli.ErrInputCancelled) ||
		errors.Is(err, context.Canceled)
}

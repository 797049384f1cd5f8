package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/orderplace/internal/common"
	"github.com/Veraticus/orderplace/internal/model"
	"github.com/Veraticus/orderplace/internal/service"
)

// Post-filter actions, numbered as in the action menu.
const (
	actionTotal       = "1"
	actionExportText  = "2"
	actionNothing     = "3"
	actionExportSheet = "4"
)

// Reporter lets the user browse, total and export records.
type Reporter struct {
	store   service.RecordStore
	console service.Console
	clock   service.Clock
	logger  *slog.Logger
	text    Exporter
	sheet   Exporter
}

// New creates a reporter that writes exports to exportDir. A nil clock
// uses time.Now.
func New(store service.RecordStore, console service.Console, clock service.Clock, exportDir string, logger *slog.Logger) *Reporter {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Reporter{
		store:   store,
		console: console,
		clock:   clock,
		logger:  logger,
		text:    TextExporter{Dir: exportDir},
		sheet:   SpreadsheetExporter{Dir: exportDir},
	}
}

// ViewRecords asks for a filter window, shows the matching records and runs
// the chosen follow-up action.
func (r *Reporter) ViewRecords(ctx context.Context, currency string) error {
	records, err := r.store.LoadRecords(ctx)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	if len(records) == 0 {
		return common.ErrNoRecords
	}

	choice, err := r.console.Menu(ctx, "", []string{"Day", "Week", "Month", "Year", "Back"})
	if err != nil {
		return err
	}
	mode, ok := ParseMode(choice)
	if !ok {
		return nil
	}

	bound, err := r.console.AskInt(ctx, fmt.Sprintf("Number of %s (max %d)", mode.Unit(), mode.Cap()))
	if err != nil {
		return err
	}
	window, err := NewWindow(mode, bound)
	if err != nil {
		return err
	}

	now := r.clock()
	matched, err := window.Apply(records, now)
	if err != nil {
		return err
	}
	if len(matched) == 0 {
		return common.ErrNoMatch
	}

	for _, rec := range matched {
		r.console.Print("\n" + FormatRecord(rec, currency))
	}

	action, err := r.console.Menu(ctx, "What do you want to do?", []string{
		"Total Money",
		"Save to Text File",
		"Nothing",
		"Save to Spreadsheet",
	})
	if err != nil {
		return err
	}

	switch action {
	case actionTotal:
		r.console.Print(fmt.Sprintf("TOTAL: %s%s", currency, model.FormatMoney(Total(matched))))
	case actionExportText:
		return r.export(ctx, r.text, matched, currency, now)
	case actionExportSheet:
		return r.export(ctx, r.sheet, matched, currency, now)
	case actionNothing:
	}
	return nil
}

func (r *Reporter) export(ctx context.Context, exporter Exporter, matched []model.Transaction, currency string, at time.Time) error {
	progress := r.console.StartProgress(len(matched), "Exporting records")

	path, err := exporter.Export(ctx, matched, currency, at, progress)
	if err != nil {
		return fmt.Errorf("failed to export records: %w", err)
	}

	common.LogDebug(r.logger, "records exported", common.Fields{
		"path":    path,
		"records": len(matched),
	})
	r.console.Success("Saved as " + path)
	return nil
}

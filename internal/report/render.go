package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/Veraticus/orderplace/internal/cli"
	"github.com/Veraticus/orderplace/internal/model"
)

const (
	viewRule   = "----------------"
	exportRule = "-----------------"
)

// FormatRecord renders a record for the terminal.
func FormatRecord(rec model.Transaction, currency string) string {
	rows := make([][]string, 0, len(rec.Items))
	for _, it := range rec.Items {
		rows = append(rows, []string{it.Item, strconv.Itoa(it.Qty), currency + model.FormatMoney(it.Total)})
	}

	var b strings.Builder
	b.WriteString(viewRule + "\n")
	fmt.Fprintf(&b, "Date: %s Time: %s\n", rec.Date, rec.Time)
	b.WriteString(cli.RenderTable([]string{"Item", "Qty", "Total"}, rows))
	b.WriteString("\n")
	b.WriteString(cli.BoldStyle.Render(fmt.Sprintf("Grand Total: %s%s", currency, model.FormatMoney(rec.GrandTotal))))
	b.WriteString("\n" + viewRule)
	return b.String()
}

// WriteText writes records in the plain-text export format.
func WriteText(w io.Writer, records []model.Transaction, currency string) error {
	for _, rec := range records {
		if err := writeTextRecord(w, rec, currency); err != nil {
			return err
		}
	}
	return nil
}

func writeTextRecord(w io.Writer, rec model.Transaction, currency string) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", rec.Date, rec.Time)
	for _, it := range rec.Items {
		fmt.Fprintf(&b, "%s x%d = %s%s\n", it.Item, it.Qty, currency, model.FormatMoney(it.Total))
	}
	fmt.Fprintf(&b, "Grand Total: %s%s\n", currency, model.FormatMoney(rec.GrandTotal))
	b.WriteString(exportRule + "\n")

	_, err := io.WriteString(w, b.String())
	return err
}

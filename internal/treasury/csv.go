package treasury

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
)

var ledgerHeader = []string{
	"period",
	"inflow",
	"outflow",
	"exceptional",
	"net_flow",
	"running_balance",
	"reported_balance",
	"credit_drawn",
	"breach",
}

func WriteLedgerCSV(path string, ledger []LedgerEntry) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := WriteLedger(f, ledger); err != nil {
		return err
	}
	return f.Close()
}

// WriteLedger writes the ledger as CSV with amounts rounded to cents.
func WriteLedger(out io.Writer, ledger []LedgerEntry) error {
	w := csv.NewWriter(out)
	if err := w.Write(ledgerHeader); err != nil {
		return err
	}
	for _, r := range ledger {
		row := []string{
			strconv.Itoa(r.Period),
			Money(r.Inflow),
			Money(r.Outflow),
			Money(r.Exceptional),
			Money(r.NetFlow),
			Money(r.RunningBalance),
			Money(r.ReportedBalance),
			Money(r.CreditDrawn),
			strconv.FormatBool(r.Breach),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// Money formats an amount with exactly two decimals, rounding half away from zero.
func Money(x float64) string {
	return decimal.NewFromFloat(x).StringFixed(2)
}

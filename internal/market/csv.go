package market

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"macro-sim/internal/model"
)

// WriteTraceCSV writes one row per step, creating parent directories.
func WriteTraceCSV(path string, rows []model.TraceRow) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{
		"step",
		"price",
		"demand",
		"supply",
		"excess_demand",
		"next_price",
		"condition",
	}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, r := range rows {
		row := []string{
			strconv.Itoa(r.Step),
			fmtFloat(r.Price),
			fmtFloat(r.Demand),
			fmtFloat(r.Supply),
			fmtFloat(r.ExcessDemand),
			fmtFloat(r.NextPrice),
			string(r.Condition),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func fmtFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 6, 64)
}

package equilibrium

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
)

// WriteScheduleCSV writes the sampled schedules, one row per rate.
func WriteScheduleCSV(path string, res Result) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"r", "savings", "investment", "gap", "equilibrium"}); err != nil {
		return err
	}
	for i, r := range res.Rates {
		row := []string{
			strconv.FormatFloat(r, 'f', 6, 64),
			strconv.FormatFloat(res.Savings[i], 'f', 6, 64),
			strconv.FormatFloat(res.Investment[i], 'f', 6, 64),
			strconv.FormatFloat(res.Savings[i]-res.Investment[i], 'f', 6, 64),
			strconv.FormatBool(res.Found && i == res.Index),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

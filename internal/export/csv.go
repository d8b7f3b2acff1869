package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/simaogato/wealthflow-planner/internal/domain"
)

// AccountHistory is one account's snapshots, in the order they were recorded.
type AccountHistory struct {
	Name      string
	Snapshots []domain.Snapshot
}

// WriteHistoryCSV writes every snapshot as an account,date,amount row.
// Accounts appear in the given order; snapshots on the same date are all kept.
func WriteHistoryCSV(out io.Writer, histories []AccountHistory) error {
	w := csv.NewWriter(out)

	if err := w.Write([]string{"account", "date", "amount"}); err != nil {
		return err
	}
	for _, h := range histories {
		for _, s := range h.Snapshots {
			row := []string{
				h.Name,
				s.Date.String(),
				fmtAmount(s.Amount),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}

	w.Flush()
	return w.Error()
}

func fmtAmount(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}

package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/halver/timesheet/internal/timefmt"
)

// DetailedCSV renders the comma-separated dialect: RFC3339 timestamps, an
// empty field for a missing stop time, and userName/note always quoted.
// Rows come out in the order they were supplied.
//
// encoding/csv only quotes fields when it has to, so the lines are built by
// hand to honor the always-quoted contract for the free-text fields.
func DetailedCSV(rows []Row) []byte {
	var b strings.Builder
	b.WriteString("id,projectId,userId,userName,startedAt,stoppedAt,note\n")

	for _, r := range rows {
		stopped := ""
		if r.StoppedAt != nil {
			stopped = r.StoppedAt.Format(time.RFC3339)
		}
		fmt.Fprintf(&b, "%s,%s,%d,%s,%s,%s,%s\n",
			r.ID, r.ProjectID, r.UserID,
			quote(r.userName()),
			r.StartedAt.Format(time.RFC3339),
			stopped,
			quote(r.note()),
		)
	}

	return []byte(b.String())
}

// quote wraps s in double quotes, doubling any embedded quotes.
func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// SimpleCSV renders the semicolon-separated dialect with a derived duration
// column. Running entries are measured against now. The output starts with a
// byte order mark so spreadsheet tools detect the encoding.
func SimpleCSV(rows []Row, now time.Time) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("\ufeff")

	w := csv.NewWriter(&buf)
	w.Comma = ';'

	if err := w.Write([]string{"userName", "startedAt", "stoppedAt", "duration", "note"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range rows {
		stopped := ""
		if r.StoppedAt != nil {
			stopped = r.StoppedAt.Format(displayStamp)
		}
		record := []string{
			r.userName(),
			r.StartedAt.Format(displayStamp),
			stopped,
			timefmt.Clock(r.elapsed(now)),
			r.note(),
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("write csv record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

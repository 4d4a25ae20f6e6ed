// Package csvio reads and writes the task history in the fixed CSV layout
// other Furtherance-style trackers exchange.
package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/unobserved-io/furt/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

var header = []string{"Name", "Project", "Tags", "Rate", "Start Time", "Stop Time", "Total Seconds"}

// Export writes the header row plus one row per task. Times are local,
// seconds are whole integers.
func Export(w io.Writer, tasks []models.Task) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range tasks {
		task := &tasks[i]
		row := []string{
			task.Name,
			task.Project,
			task.Tags,
			strconv.FormatFloat(task.Rate, 'f', -1, 64),
			task.StartTime.Local().Format(timeLayout),
			task.StopTime.Local().Format(timeLayout),
			strconv.Itoa(task.SecondsTotal()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// Import parses a previously exported file. A wrong header or column count
// rejects the whole file as invalid; a bad row rejects the file too, so an
// import never half-applies.
func Import(r io.Reader) ([]models.Task, error) {
	cr := csv.NewReader(r)
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV file: %w", err)
	}
	if len(records) == 0 || !sameHeader(records[0]) {
		return nil, fmt.Errorf("invalid CSV file: unexpected header")
	}

	tasks := make([]models.Task, 0, len(records)-1)
	for i, record := range records[1:] {
		task, err := parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("invalid CSV file: row %d: %w", i+2, err)
		}
		tasks = append(tasks, *task)
	}
	return tasks, nil
}

func sameHeader(record []string) bool {
	if len(record) != len(header) {
		return false
	}
	for i := range header {
		if record[i] != header[i] {
			return false
		}
	}
	return true
}

func parseRow(record []string) (*models.Task, error) {
	if len(record) != len(header) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(header), len(record))
	}
	rate, err := strconv.ParseFloat(record[3], 64)
	if err != nil {
		return nil, fmt.Errorf("bad rate %q", record[3])
	}
	start, err := time.ParseInLocation(timeLayout, record[4], time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad start time %q", record[4])
	}
	stop, err := time.ParseInLocation(timeLayout, record[5], time.Local)
	if err != nil {
		return nil, fmt.Errorf("bad stop time %q", record[5])
	}
	return models.NewTask(record[0], record[2], record[1], rate, start, stop)
}

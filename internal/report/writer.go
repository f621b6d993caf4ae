package report

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gruntwork-io/treehook/internal/errors"
)

const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// Formats returns the supported report file formats.
func Formats() []string {
	return []string{FormatCSV, FormatJSON}
}

// JSONRun represents a run in JSON format.
type JSONRun struct {
	Started time.Time `json:"Started"`
	Ended   time.Time `json:"Ended"`
	Reason  *string   `json:"Reason,omitempty"`
	Cause   *string   `json:"Cause,omitempty"`
	Name    string    `json:"Name"`
	Result  string    `json:"Result"`
	Files   int       `json:"Files"`
}

// FormatFromPath picks the report format from the file extension, defaulting to CSV.
func FormatFromPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return FormatJSON
	}

	return FormatCSV
}

// WriteToFile writes the report to path in the given format. An empty format is derived from
// the file extension.
func (r *Report) WriteToFile(path, format string) (err error) {
	if format == "" {
		format = FormatFromPath(path)
	}

	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return errors.New(err)
	}

	file, err := os.Create(path)
	if err != nil {
		return errors.New(err)
	}

	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = errors.New(closeErr)
		}
	}()

	switch format {
	case FormatCSV:
		return r.WriteCSV(file)
	case FormatJSON:
		return r.WriteJSON(file)
	default:
		return errors.New(UnsupportedFormatError{Format: format})
	}
}

// WriteCSV writes the report to w as CSV with a header row.
func (r *Report) WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)

	if err := csvWriter.Write([]string{"Name", "Started", "Ended", "Result", "Reason", "Cause", "Files"}); err != nil {
		return errors.New(err)
	}

	for _, run := range r.Runs() {
		record := []string{
			run.Name,
			formatTime(run.Started),
			formatTime(run.Ended),
			string(run.Result),
			"",
			"",
			strconv.Itoa(run.Files),
		}

		if run.Reason != nil {
			record[4] = string(*run.Reason)
		}

		if run.Cause != nil {
			record[5] = *run.Cause
		}

		if err := csvWriter.Write(record); err != nil {
			return errors.New(err)
		}
	}

	csvWriter.Flush()

	return errors.New(csvWriter.Error())
}

// WriteJSON writes the report to w as an indented JSON array.
func (r *Report) WriteJSON(w io.Writer) error {
	runs := r.Runs()
	jsonRuns := make([]JSONRun, 0, len(runs))

	for _, run := range runs {
		jsonRun := JSONRun{
			Name:    run.Name,
			Started: run.Started,
			Ended:   run.Ended,
			Result:  string(run.Result),
			Cause:   run.Cause,
			Files:   run.Files,
		}

		if run.Reason != nil {
			reason := string(*run.Reason)
			jsonRun.Reason = &reason
		}

		jsonRuns = append(jsonRuns, jsonRun)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	return errors.New(encoder.Encode(jsonRuns))
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format(time.RFC3339)
}

// Package export renders the active and deleted lists as JSON, CSV or PDF.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/MihkelHunter/mkTasks/internal/todo"
)

var ErrUnknownFormat = errors.New("unknown export format")

// ContentType returns the MIME type for format.
func ContentType(format string) string {
	switch strings.ToLower(format) {
	case "csv":
		return "text/csv"
	case "pdf":
		return "application/pdf"
	default:
		return "application/json"
	}
}

// Export renders both lists in format. The JSON form uses the persisted keys
// and task shape.
func Export(format string, tasks, deleted []todo.Task) ([]byte, error) {
	switch strings.ToLower(format) {
	case "json":
		return exportJSON(tasks, deleted)
	case "csv":
		return exportCSV(tasks, deleted)
	case "pdf":
		return exportPDF(tasks, deleted)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func exportJSON(tasks, deleted []todo.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []todo.Task{}
	}
	if deleted == nil {
		deleted = []todo.Task{}
	}
	return json.MarshalIndent(map[string][]todo.Task{
		todo.KeyTasks:   tasks,
		todo.KeyDeleted: deleted,
	}, "", "  ")
}

func exportCSV(tasks, deleted []todo.Task) ([]byte, error) {
	var b bytes.Buffer
	w := csv.NewWriter(&b)
	_ = w.Write([]string{"list", "text", "completed"})
	for _, t := range tasks {
		_ = w.Write([]string{todo.KeyTasks, t.Text, strconv.FormatBool(t.Completed)})
	}
	for _, t := range deleted {
		_ = w.Write([]string{todo.KeyDeleted, t.Text, strconv.FormatBool(t.Completed)})
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func exportPDF(tasks, deleted []todo.Task) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "To-Do List")
	pdf.Ln(12)

	section := func(title string, list []todo.Task) {
		pdf.SetFont("Arial", "B", 12)
		pdf.Cell(40, 8, fmt.Sprintf("%s (%d)", title, len(list)))
		pdf.Ln(9)
		pdf.SetFont("Arial", "", 10)
		for _, t := range list {
			mark := "[ ]"
			if t.Completed {
				mark = "[x]"
			}
			pdf.MultiCell(0, 6, mark+" "+tr(t.Text), "0", "L", false)
		}
		pdf.Ln(4)
	}
	section("Tasks", tasks)
	section("Deleted", deleted)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

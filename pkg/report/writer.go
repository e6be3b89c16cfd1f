package report

import (
	"fmt"

	"github.com/user/pocketshow/pkg/ports"
)

// Writer persists formatted reports through storage.
type Writer struct {
	formatter Formatter
	storage   ports.Storage
}

// NewWriter creates a Writer with the given Formatter.
func NewWriter(formatter Formatter, storage ports.Storage) *Writer {
	return &Writer{
		formatter: formatter,
		storage:   storage,
	}
}

// Write formats the report and writes it to the specified storage path.
func (w *Writer) Write(path string, rep *Report) error {
	content := w.formatter.Format(rep)

	f, err := w.storage.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()

	if _, err := f.Write([]byte(content)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

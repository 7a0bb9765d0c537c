// Package export writes a display list snapshot as JSON. The snapshot is
// an output artifact: tada never reads it back.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/Makepad-fr/tada/internal/render"
)

// Snapshot is the exported document.
type Snapshot struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Summary     render.Summary `json:"summary"`
	Attachments string         `json:"attachments_preview"`
	Items       []render.Item  `json:"items"`
}

func New(items []render.Item, preview string, now time.Time) Snapshot {
	if items == nil {
		items = []render.Item{}
	}
	return Snapshot{
		GeneratedAt: now,
		Summary:     render.Summarize(items),
		Attachments: preview,
		Items:       items,
	}
}

// Encode writes s as indented JSON.
func Encode(w io.Writer, s Snapshot) error {
	b, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("json marshal: %w", err)
	}
	b = append(b, '\n')
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// WriteFile writes s to path, creating parent directories.
func WriteFile(path string, s Snapshot) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := Encode(f, s); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Envelope wraps an exported table with run identification so reports from
// the same invocation can be correlated.
type Envelope struct {
	RunID       string      `json:"run_id"`
	GeneratedAt time.Time   `json:"generated_at"`
	Report      string      `json:"report"`
	Data        interface{} `json:"data"`
}

// NewRunID returns the identifier shared by all reports of one invocation.
func NewRunID() string {
	return uuid.New().String()
}

// ExportJSON writes one report as indented JSON, creating the output folder
// if needed.
func ExportJSON(filename, runID, name string, data interface{}) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("create report folder: %w", err)
	}

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer file.Close()

	enc := json.NewEncoder(file)
	enc.SetIndent("", "  ")
	if err := enc.Encode(Envelope{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Report:      name,
		Data:        data,
	}); err != nil {
		return fmt.Errorf("write report JSON: %w", err)
	}
	return nil
}

// TimestampedFilename builds a collision-free report path under baseDir.
func TimestampedFilename(baseDir, name string) string {
	t := time.Now().Format("20060102_150405")
	return filepath.Join(baseDir, fmt.Sprintf("%s_%s.json", name, t))
}

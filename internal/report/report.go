package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/ilastik/publish-conda-stack/internal/conda"
	"github.com/ilastik/publish-conda-stack/internal/paths"
)

// Timestamp layout used throughout the report.
const timeLayout = "2006-01-02T15:04:05"

// One package identity in the report.
type Package struct {
	Name        string `yaml:"name"`
	Version     string `yaml:"version"`
	BuildString string `yaml:"build-string"`
}

// One recipe's entry in the found/built/skipped lists.
type Entry struct {
	Recipe        string    `yaml:"recipe"`
	Packages      []Package `yaml:"packages,omitempty"`
	BuildDuration string    `yaml:"build-duration,omitempty"`
}

// One recipe's entry in the errors list.
type ErrorEntry struct {
	Recipe string `yaml:"recipe"`
	Error  string `yaml:"error"`
}

// Invocation arguments recorded in the report. The token is scrubbed by the
// caller before it gets here.
type Args struct {
	SpecsPath string   `yaml:"specs-path"`
	Recipes   []string `yaml:"recipes,omitempty"`
	StartFrom string   `yaml:"start-from,omitempty"`
	Labels    []string `yaml:"labels,omitempty"`
	Token     string   `yaml:"token,omitempty"`
}

// The cumulative run report.
type Summary struct {
	Version     string       `yaml:"version"`
	RunID       string       `yaml:"run-id"`
	Args        Args         `yaml:"args"`
	StartTime   string       `yaml:"start_time"`
	LastUpdated string       `yaml:"last_updated"`
	EndTime     string       `yaml:"end_time,omitempty"`
	Duration    string       `yaml:"duration,omitempty"`
	Found       []Entry      `yaml:"found"`
	Built       []Entry      `yaml:"built"`
	Skipped     []Entry      `yaml:"skipped"`
	Errors      []ErrorEntry `yaml:"errors"`
}

// Accumulates outcomes and rewrites the report file after every change.
type Writer struct {
	path    string
	summary Summary
	started time.Time
	now     func() time.Time
}

// Creates a report writer. Nothing is written until the first outcome is
// recorded.
func NewWriter(path, version string, args Args) *Writer {
	w := &Writer{
		path: path,
		now:  time.Now,
	}
	w.started = w.now()
	w.summary = Summary{
		Version:   version,
		RunID:     uuid.NewString(),
		Args:      args,
		StartTime: w.started.Format(timeLayout),
	}
	return w
}

// Path of the report file.
func (w *Writer) Path() string {
	return w.path
}

// Records a recipe whose packages were all already published.
func (w *Writer) AddFound(recipe string, pkgs []conda.PackageIdentity) error {
	w.summary.Found = append(w.summary.Found, entry(recipe, pkgs, 0))
	return w.Flush()
}

// Records a built-and-uploaded recipe.
func (w *Writer) AddBuilt(recipe string, pkgs []conda.PackageIdentity, buildDuration time.Duration) error {
	w.summary.Built = append(w.summary.Built, entry(recipe, pkgs, buildDuration))
	return w.Flush()
}

// Records a recipe skipped by the platform filter.
func (w *Writer) AddSkipped(recipe string) error {
	w.summary.Skipped = append(w.summary.Skipped, Entry{Recipe: recipe})
	return w.Flush()
}

// Records a failed recipe.
func (w *Writer) AddError(recipe string, err error) error {
	w.summary.Errors = append(w.summary.Errors, ErrorEntry{Recipe: recipe, Error: err.Error()})
	return w.Flush()
}

// Stamps the end time and duration and writes the final report.
func (w *Writer) Finish() error {
	end := w.now()
	w.summary.EndTime = end.Format(timeLayout)
	w.summary.Duration = end.Sub(w.started).Round(time.Second).String()
	return w.Flush()
}

// Rewrites the report file with the current state.
func (w *Writer) Flush() error {
	w.summary.LastUpdated = w.now().Format(timeLayout)

	raw, err := yaml.Marshal(w.summary)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	if err := os.WriteFile(w.path, raw, paths.DefaultFileMode); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// YAML rendering of the current report, for the end-of-run summary.
func (w *Writer) Render() (string, error) {
	raw, err := yaml.Marshal(w.summary)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}
	return string(raw), nil
}

func entry(recipe string, pkgs []conda.PackageIdentity, buildDuration time.Duration) Entry {
	e := Entry{Recipe: recipe}
	for _, p := range pkgs {
		e.Packages = append(e.Packages, Package{
			Name:        p.Name,
			Version:     p.Version,
			BuildString: p.BuildString,
		})
	}
	if buildDuration > 0 {
		e.BuildDuration = buildDuration.Round(time.Second).String()
	}
	return e
}

// Default report filename for a run started at the given time.
func DefaultFilename(start time.Time) string {
	return start.Format("20060102-150405") + "_build_out.yaml"
}

// Resolves the --logfile argument to a report path.
//
// An existing directory gets the default filename inside it; any other
// non-empty value is the file itself; empty means the default filename in
// the current directory.
func ResolvePath(logfile string, start time.Time) (string, error) {
	name := logfile
	if name == "" {
		name = DefaultFilename(start)
	} else if info, err := os.Stat(logfile); err == nil && info.IsDir() {
		name = filepath.Join(logfile, DefaultFilename(start))
	}
	return filepath.Abs(name)
}

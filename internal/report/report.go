// Package report writes run summaries as JSON, JUnit XML and a static HTML page.
package report

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/themizzi/menucheck/internal/runner"
)

// ErrUnknownReporter is returned for a reporter name that is not supported
var ErrUnknownReporter = errors.New("unknown reporter")

// Output file names inside the output directory
const (
	JSONFile  = "test-results.json"
	JUnitFile = "test-results.xml"
	HTMLFile  = "index.html"
)

type writer func(path string, s *runner.Summary) error

var writers = map[string]struct {
	file  string
	write writer
}{
	"json":  {JSONFile, WriteJSON},
	"junit": {JUnitFile, WriteJUnit},
	"html":  {HTMLFile, WriteHTML},
}

// Validate checks reporter names before a run starts
func Validate(reporters []string) error {
	for _, name := range reporters {
		if _, ok := writers[name]; !ok {
			return fmt.Errorf("%w: %q", ErrUnknownReporter, name)
		}
	}
	return nil
}

// Write renders the summary with every named reporter into dir
func Write(s *runner.Summary, dir string, reporters []string) error {
	if err := Validate(reporters); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	for _, name := range reporters {
		w := writers[name]
		path := filepath.Join(dir, w.file)
		if err := w.write(path, s); err != nil {
			return fmt.Errorf("failed to write %s report: %w", name, err)
		}
		log.Printf("report: wrote %s", path)
	}
	return nil
}

func seconds(s *runner.Summary) float64 {
	return s.Duration.Seconds()
}

package pipeline

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNoSamples reports a sample list that contains no sample identifiers.
var ErrNoSamples = errors.New("sample list contains no samples")

// LoadSamples reads the sample identifiers from path, one per line. Blank
// lines and lines starting with '#' are skipped. A missing file or an
// empty list is an error: a pipeline with no samples has nothing to run.
//
// The job scripts apply the same filtering when they map an array task ID
// back to a line of the file, so the list loaded here and the list seen on
// the compute node always agree.
func LoadSamples(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening sample list: %w", err)
	}
	defer f.Close()

	var samples []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		samples = append(samples, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading sample list %s: %w", path, err)
	}
	if len(samples) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSamples)
	}
	return samples, nil
}

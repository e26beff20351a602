// Package dataset loads benchmark files of solved positions: one case
// per line, a move sequence and its exact score separated by
// whitespace. These files drive regression benchmarks of the search.
package dataset

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Case is one benchmark position with its known exact score for the
// side to move.
type Case struct {
	Moves string
	Score int
}

// Load reads the cases in path. Files ending in .zst or .gz are
// decompressed transparently.
func Load(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".zst") {
		zr, err := zstd.NewReader(f, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		reader = zr
	} else if strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer gr.Close()
		reader = gr
	}

	return Read(reader)
}

// Read parses benchmark lines from r. Blank lines and lines starting
// with '#' are skipped; anything else must be a move string and an
// integer score.
func Read(r io.Reader) ([]Case, error) {
	var cases []Case
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("line %d: want moves and score, got %q", lineNum, line)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("line %d: bad score %q: %w", lineNum, fields[1], err)
		}
		cases = append(cases, Case{Moves: fields[0], Score: score})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cases, nil
}

// LoadDir loads every regular file in dir in name order and returns
// the concatenated cases.
func LoadDir(dir string) ([]Case, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var cases []Case
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		fileCases, err := Load(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", e.Name(), err)
		}
		cases = append(cases, fileCases...)
		loaded++
	}
	if loaded == 0 {
		return nil, fmt.Errorf("no dataset files in %s", dir)
	}
	return cases, nil
}

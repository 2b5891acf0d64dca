package export

import (
	"bufio"
	"errors"
	"fmt"
	"hash/fnv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gofrs/flock"

	"github.com/amishk599/jobscrapper/internal/model"
)

// Header is the first line of every export.
const Header = "Position, Company, Condition, URL"

// Write writes jobs in the export format: the header line, then one
// comma-joined line per job. Fields are not quoted, so a comma inside a field
// shifts the columns of that line.
func Write(w io.Writer, jobs []model.Job) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, j := range jobs {
		line := strings.Join([]string{j.Position, j.Company, j.Condition, j.Link}, ",")
		if _, err := fmt.Fprintln(bw, line); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
	}
	return bw.Flush()
}

// FileName returns the export file name for keyword.
func FileName(keyword string) string {
	return keyword + ".csv"
}

// ErrInvalidKeyword is returned for keywords that cannot name a file inside
// the export directory.
var ErrInvalidKeyword = errors.New("keyword cannot be used as a file name")

// WriteCSV writes jobs to {dir}/{keyword}.csv, replacing any existing file,
// and returns the path written. Keywords containing path separators are
// rejected. Concurrent writers of the same file, in this or another process,
// are serialized through a lock file in the system temp directory.
func WriteCSV(dir, keyword string, jobs []model.Job) (string, error) {
	if keyword == "" || keyword == "." || keyword == ".." || strings.ContainsAny(keyword, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKeyword, keyword)
	}
	path := filepath.Join(dir, FileName(keyword))

	lock := flock.New(lockPath(path))
	if err := lock.Lock(); err != nil {
		return "", fmt.Errorf("locking export file: %w", err)
	}
	defer lock.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}

	if err := Write(f, jobs); err != nil {
		f.Close()
		return "", fmt.Errorf("exporting %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing export file: %w", err)
	}
	return path, nil
}

// lockPath maps an export path to a lock file under os.TempDir, so the export
// directory only ever holds the CSV files.
func lockPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	h := fnv.New64a()
	h.Write([]byte(path))
	return filepath.Join(os.TempDir(), fmt.Sprintf("jobscrapper-%x.lock", h.Sum64()))
}

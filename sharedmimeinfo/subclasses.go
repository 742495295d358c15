package sharedmimeinfo

import (
	"bufio"
	"errors"
	"fmt"
	"github.com/MatthiasKunnen/xdg-open/basedir"
	"github.com/MatthiasKunnen/xdg-open/mimetype"
	"io"
	"os"
	"slices"
	"strings"
)

const (
	mimeTextPlain = "text/plain"
	mimeOctet     = "application/octet-stream"
)

type MalformedSubclassError struct {
	FileIndex int
	LineIndex int
}

func (e MalformedSubclassError) Error() string {
	return fmt.Sprintf(
		"malformed subclass line at %d",
		e.LineIndex,
	)
}

// Hierarchy maps a MIME type to its direct parents, highest priority first.
type Hierarchy struct {
	dict map[string][]string
}

// LoadFromOs loads every mime/subclasses file in XDG_DATA_HOME and XDG_DATA_DIRS.
// Files in XDG_DATA_HOME take precedence.
func LoadFromOs() (*Hierarchy, error) {
	paths, err := basedir.FindDataFiles("mime/subclasses")
	if err != nil {
		return nil, fmt.Errorf("failed to find subclasses files: %w", err)
	}

	var files []*os.File
	var readers []io.Reader
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()

	for _, fPath := range paths {
		f, err := os.Open(fPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
			continue
		case err != nil:
			return nil, fmt.Errorf("failed to load subclasses file at %s: %w", fPath, err)
		default:
			files = append(files, f)
			readers = append(readers, f)
		}
	}

	hierarchy, err := LoadFromReaders(readers)
	if err == nil {
		return hierarchy, nil
	}
	var x MalformedSubclassError
	if errors.As(err, &x) && x.FileIndex >= 0 && x.FileIndex < len(files) {
		return nil, fmt.Errorf(
			"failed to load subclass file %s: %w",
			files[x.FileIndex].Name(),
			err,
		)
	}

	return nil, err
}

// LoadFromReaders loads the hierarchy from the given [io.Reader] slice.
// Order is important as earlier readers have higher precedence.
// Empty lines are skipped.
func LoadFromReaders(readers []io.Reader) (*Hierarchy, error) {
	h := &Hierarchy{
		dict: make(map[string][]string),
	}

	for fileIndex, f := range readers {
		scanner := bufio.NewScanner(f)
		lineIndex := 0
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				lineIndex++
				continue
			}

			specific, broad, found := strings.Cut(line, " ")
			if !found {
				return nil, MalformedSubclassError{
					FileIndex: fileIndex,
					LineIndex: lineIndex,
				}
			}

			if broadList, ok := h.dict[specific]; ok {
				if !slices.Contains(broadList, broad) {
					h.dict[specific] = append(broadList, broad)
				}
			} else {
				h.dict[specific] = []string{broad}
			}
			lineIndex++
		}

		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}

	return h, nil
}

// Broader returns every type mime is a subclass of, in priority order.
// The order is determined by a depth first, pre-order (NLR), search. text/plain is appended for
// text types and application/octet-stream for everything that is not an inode type.
// For example, text/x-python returns application/x-executable, text/plain,
// application/octet-stream.
// Entries that do not parse as MIME types are skipped.
func (h *Hierarchy) Broader(mime mimetype.MimeType) []mimetype.MimeType {
	essences := h.broaderDfs(mime.Essence())
	result := make([]mimetype.MimeType, 0, len(essences))
	for _, essence := range essences {
		parsed, err := mimetype.Parse(essence)
		if err != nil {
			continue
		}

		result = append(result, parsed)
	}

	return result
}

func (h *Hierarchy) broaderDfs(mime string) []string {
	visited := make(map[string]struct{})
	toVisit := slices.Clone(h.dict[mime])
	result := make([]string, 0, len(toVisit))

	for len(toVisit) > 0 {
		broad := toVisit[0]
		if _, ok := visited[broad]; ok {
			toVisit = toVisit[1:]
			continue
		}

		visited[broad] = struct{}{}
		result = append(result, broad)
		broader := h.dict[broad]
		switch len(broader) {
		case 0:
			toVisit = toVisit[1:]
		case 1:
			toVisit[0] = broader[0]
		default:
			toVisit = append(slices.Clone(broader), toVisit[1:]...)
		}
	}

	if _, ok := visited[mimeTextPlain]; !ok && mime != mimeTextPlain {
		if strings.HasPrefix(mime, "text/") || slices.ContainsFunc(result, isText) {
			result = append(result, mimeTextPlain)
		}
	}
	if _, ok := visited[mimeOctet]; !ok && mime != mimeOctet {
		if !strings.HasPrefix(mime, "inode/") || slices.ContainsFunc(result, isNotInode) {
			result = append(result, mimeOctet)
		}
	}

	return result
}

func isText(mime string) bool {
	return strings.HasPrefix(mime, "text/")
}

func isNotInode(mime string) bool {
	return !strings.HasPrefix(mime, "inode/")
}

package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNotAccepted is returned for files whose name matches no accept pattern.
	ErrNotAccepted = errors.New("file type not accepted")
	// ErrTooLarge is returned for files over the configured size limit.
	ErrTooLarge = errors.New("file too large")
	// ErrNotText is returned for files that are not valid UTF-8.
	ErrNotText = errors.New("file is not UTF-8 text")
)

// File is one uploaded file.
type File struct {
	Name string
	Data []byte
}

// Filter decides which uploads are accepted.
type Filter struct {
	// Accept holds glob patterns matched against the base file name,
	// case-insensitively. Empty accepts everything.
	Accept []string
	// MaxBytes caps each file. Zero means no limit.
	MaxBytes int64
}

// Allowed reports whether name matches an accept pattern.
func (f Filter) Allowed(name string) bool {
	if len(f.Accept) == 0 {
		return true
	}
	base := strings.ToLower(filepath.Base(filepath.ToSlash(name)))
	for _, pattern := range f.Accept {
		if matched, err := doublestar.Match(strings.ToLower(pattern), base); err == nil && matched {
			return true
		}
	}
	return false
}

// Check validates a file's name and size before it is read.
func (f Filter) Check(name string, size int64) error {
	if !f.Allowed(name) {
		return fmt.Errorf("%s: %w (accepted: %s)", name, ErrNotAccepted, strings.Join(f.Accept, ", "))
	}
	if f.MaxBytes > 0 && size > f.MaxBytes {
		return fmt.Errorf("%s: %w (%d bytes, limit %d)", name, ErrTooLarge, size, f.MaxBytes)
	}
	return nil
}

// read copies r into a File, enforcing the size limit even when the
// declared size was wrong.
func (f Filter) read(name string, r io.Reader) (File, error) {
	if f.MaxBytes > 0 {
		r = io.LimitReader(r, f.MaxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("reading %s: %w", name, err)
	}
	if f.MaxBytes > 0 && int64(len(data)) > f.MaxBytes {
		return File{}, fmt.Errorf("%s: %w (limit %d)", name, ErrTooLarge, f.MaxBytes)
	}
	return File{Name: name, Data: data}, nil
}

// FromMultipart reads the uploaded files of a multipart form in order.
func FromMultipart(headers []*multipart.FileHeader, f Filter) ([]File, error) {
	files := make([]File, 0, len(headers))
	for _, h := range headers {
		if err := f.Check(h.Filename, h.Size); err != nil {
			return nil, err
		}
		src, err := h.Open()
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", h.Filename, err)
		}
		file, err := f.read(h.Filename, src)
		src.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// ReadFiles reads local files in order.
func ReadFiles(paths []string, f Filter) ([]File, error) {
	files := make([]File, 0, len(paths))
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		if err := f.Check(path, info.Size()); err != nil {
			return nil, err
		}
		src, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		file, err := f.read(filepath.Base(path), src)
		src.Close()
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
	return files, nil
}

// Combine joins the files' text into the supplementary content for a
// prompt. Each file's text is followed by a blank line.
func Combine(files []File) (string, error) {
	var b strings.Builder
	for _, f := range files {
		if !utf8.Valid(f.Data) {
			return "", fmt.Errorf("%s: %w", f.Name, ErrNotText)
		}
		b.Write(f.Data)
		b.WriteString("\n\n")
	}
	return b.String(), nil
}

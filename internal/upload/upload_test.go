package upload

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

var defaultFilter = Filter{Accept: []string{"*.txt", "*.py"}, MaxBytes: 1 << 20}

func TestCombine(t *testing.T) {
	got, err := Combine([]File{{Name: "a.txt", Data: []byte("a")}, {Name: "b.txt", Data: []byte("b")}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "a\n\nb\n\n" {
		t.Errorf("got %q, want %q", got, "a\n\nb\n\n")
	}
}

func TestCombineEmpty(t *testing.T) {
	got, err := Combine(nil)
	if err != nil || got != "" {
		t.Errorf("expected empty content, got %q (%v)", got, err)
	}
}

func TestCombineRejectsBinary(t *testing.T) {
	_, err := Combine([]File{{Name: "img.txt", Data: []byte{0xff, 0xfe, 0x00}}})
	if !errors.Is(err, ErrNotText) {
		t.Errorf("expected ErrNotText, got %v", err)
	}
}

func TestFilterAllowed(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"notes.txt", true},
		{"script.py", true},
		{"NOTES.TXT", true},
		{"dir/sub/main.py", true},
		{"image.png", false},
		{"notes.txt.exe", false},
		{"README", false},
	}
	for _, tt := range tests {
		if got := defaultFilter.Allowed(tt.name); got != tt.want {
			t.Errorf("Allowed(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
	if !(Filter{}).Allowed("anything.bin") {
		t.Error("an empty accept list should allow everything")
	}
}

func TestFilterCheck(t *testing.T) {
	f := Filter{Accept: []string{"*.txt"}, MaxBytes: 4}
	if err := f.Check("a.txt", 4); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := f.Check("a.txt", 5); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
	if err := f.Check("a.md", 1); !errors.Is(err, ErrNotAccepted) {
		t.Errorf("expected ErrNotAccepted, got %v", err)
	}
}

func multipartFiles(t *testing.T, files map[string]string, order []string) []*multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for _, name := range order {
		part, err := w.CreateFormFile("files", name)
		if err != nil {
			t.Fatal(err)
		}
		part.Write([]byte(files[name]))
	}
	w.Close()

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatal(err)
	}
	return req.MultipartForm.File["files"]
}

func TestFromMultipart(t *testing.T) {
	headers := multipartFiles(t, map[string]string{"a.txt": "a", "b.py": "b"}, []string{"a.txt", "b.py"})

	files, err := FromMultipart(headers, defaultFilter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content, err := Combine(files)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "a\n\nb\n\n" {
		t.Errorf("got %q", content)
	}
}

func TestFromMultipartRejects(t *testing.T) {
	headers := multipartFiles(t, map[string]string{"a.txt": "a", "c.pdf": "%PDF"}, []string{"a.txt", "c.pdf"})
	if _, err := FromMultipart(headers, defaultFilter); !errors.Is(err, ErrNotAccepted) {
		t.Errorf("expected ErrNotAccepted, got %v", err)
	}

	headers = multipartFiles(t, map[string]string{"big.txt": "0123456789"}, []string{"big.txt"})
	if _, err := FromMultipart(headers, Filter{MaxBytes: 5}); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestReadFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.py")
	os.WriteFile(a, []byte("first"), 0o644)
	os.WriteFile(b, []byte("second"), 0o644)

	files, err := ReadFiles([]string{a, b}, defaultFilter)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(files) != 2 || files[0].Name != "a.txt" || string(files[1].Data) != "second" {
		t.Errorf("unexpected files: %+v", files)
	}

	if _, err := ReadFiles([]string{filepath.Join(dir, "missing.txt")}, defaultFilter); err == nil {
		t.Error("expected error for a missing file")
	}
}

package markdown

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	r := New()
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"paragraph", "Hello everyone.", "<p>Hello everyone.</p>"},
		{"emphasis", "This is **important**.", "<strong>important</strong>"},
		{"list", "- light\n- water", "<li>light</li>"},
		{"table", "| a | b |\n|---|---|\n| 1 | 2 |", "<table>"},
		{"code", "```go\nfmt.Println(1)\n```", "<pre"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Render(tt.src)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("expected %q in %q", tt.want, got)
			}
		})
	}
}

func TestRenderOmitsRawHTML(t *testing.T) {
	got, err := New().Render("Hi <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML should be omitted, got %q", got)
	}
}

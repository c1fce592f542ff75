package slideshow

import (
	"strings"

	"golang.org/x/net/html"
)

// CountSlides counts the elements carrying the "slide" class, the same set
// the slideshow script pages through. Counting stops at the end of input
// or the first tokenizer error.
func CountSlides(markup string) int {
	z := html.NewTokenizer(strings.NewReader(markup))
	count := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return count
		case html.StartTagToken, html.SelfClosingTagToken:
			if hasSlideClass(z) {
				count++
			}
		}
	}
}

func hasSlideClass(z *html.Tokenizer) bool {
	for {
		key, val, more := z.TagAttr()
		if string(key) == "class" {
			for _, c := range strings.Fields(string(val)) {
				if c == "slide" {
					return true
				}
			}
		}
		if !more {
			return false
		}
	}
}

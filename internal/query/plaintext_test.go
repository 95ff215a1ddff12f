package query

import (
	"strings"
	"testing"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty placeholder", "<p><br></p>", ""},
		{"plain string", "just text", "just text"},
		{"adjacent blocks", "<p>one</p><p>two</p>", "one two"},
		{"inline markup", "<p>Atomic <b>Hab</b>its</p>", "Atomic Habits"},
		{"partly bold word", "<p><b>Atom</b>ic Habits</p>", "Atomic Habits"},
		{"nested inline", "<p><span><em>in</em>line</span> <a href=\"#\">link</a>ed</p>", "inline linked"},
		{"line break", "one<br>two", "one two"},
		{"table cells", "<table><tr><td>a</td><td>b</td></tr></table>", "a b"},
		{"headings", "<h1>Title</h1><div>body</div>", "Title body"},
		{"entities", "<p>Fish &amp; chips&nbsp;today</p>", "Fish & chips today"},
		{"list", "<ul><li>milk</li><li>eggs</li></ul>", "milk eggs"},
		{"script dropped", "<p>a</p><script>alert(1)</script><p>b</p>", "a b"},
		{"image", `<p>see <img src="data:image/png;base64,AAAA"/> here</p>`, "see here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.in); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPreview(t *testing.T) {
	short := "<p>short note</p>"
	if got := Preview(short); got != "short note" {
		t.Errorf("Preview() = %q", got)
	}

	long := "<p>" + strings.Repeat("é", 130) + "</p>"
	got := Preview(long)
	if !strings.HasSuffix(got, "...") {
		t.Errorf("Preview() = %q, want trailing ...", got)
	}
	if n := len([]rune(strings.TrimSuffix(got, "..."))); n != previewLength {
		t.Errorf("Preview() kept %d runes, want %d", n, previewLength)
	}
}

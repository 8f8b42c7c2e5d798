package security

import (
	"html"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSanitizer_Clean(t *testing.T) {
	sanitizer := NewTextSanitizer()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "empty", input: "", want: ""},
		{name: "plain text untouched", input: "Printer on floor 2 is jammed", want: "Printer on floor 2 is jammed"},
		{name: "script removed", input: `Hello<script>alert("x")</script>`, want: "Hello"},
		{name: "tags stripped keep text", input: "<b>urgent</b> fix", want: "urgent fix"},
		{name: "event attributes dropped", input: `<img src="x" onerror="alert(1)">broken`, want: "broken"},
		{name: "ampersand preserved", input: "Tom & Jerry", want: "Tom & Jerry"},
		{name: "whitespace trimmed", input: "  note  ", want: "note"},
		{name: "entity encoded script removed", input: "&lt;script&gt;alert(1)&lt;/script&gt;", want: ""},
		{name: "entity encoded tags stripped", input: "see &lt;b&gt;this&lt;/b&gt;", want: "see this"},
		{name: "double encoded tags stripped", input: "&amp;lt;b&amp;gt;bold&amp;lt;/b&amp;gt;", want: "bold"},
		{name: "numeric entities decoded then stripped", input: "&#60;img src=x onerror=alert(1)&#62;ok", want: "ok"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizer.Clean(tt.input))
		})
	}
}

func TestTextSanitizer_NeverEmitsTags(t *testing.T) {
	sanitizer := NewTextSanitizer()
	payload := "<script>alert(1)</script>"
	for depth := 0; depth < 12; depth++ {
		out := sanitizer.Clean(payload)
		assert.NotContains(t, out, "<script", "depth %d", depth)
		assert.NotContains(t, out, "<", "depth %d", depth)
		assert.Equal(t, out, sanitizer.Clean(out), "depth %d", depth)
		payload = html.EscapeString(payload)
	}
}

func TestTextSanitizer_Idempotent(t *testing.T) {
	sanitizer := NewTextSanitizer()
	once := sanitizer.Clean(`<p>status <em>update</em></p>`)
	assert.Equal(t, once, sanitizer.Clean(once))
}

package sanitize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text unchanged", "Buy milk", "Buy milk"},
		{"empty", "", ""},
		{"trims whitespace", "  Buy milk \n", "Buy milk"},
		{"strips inline tags", "<b>Buy</b> <i>milk</i>", "Buy milk"},
		{"drops script content", "<script>alert(1)</script>Buy milk", "Buy milk"},
		{"strips attributes with element", `<a href="javascript:alert(1)">click</a>`, "click"},
		{"keeps ampersand readable", "Tom & Jerry", "Tom & Jerry"},
		{"keeps apostrophe readable", "Don't forget", "Don't forget"},
		{"keeps comparison", "a < b", "a < b"},
		{"decoded entities cannot form tags", "&lt;script&gt;alert(1)&lt;/script&gt;ok", "ok"},
		{"decodes entities once", "a &amp;lt; b", "a &lt; b"},
		{"literal entity text survives", "write &amp;amp; in HTML", "write &amp; in HTML"},
		{"only markup", "<br/><hr>", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Text(tt.in))
		})
	}
}

func TestEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user@example.com", Email("  User@Example.COM "))
	assert.Equal(t, "user@example.com", Email("<b>user@example.com</b>"))
}

package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"\x1b[31mred\x1b[0m", "red"},
		{"\x1b]0;pwn\x07hi", "hi"},
		{"a\tb", "a b"},
		{"line\r\nnext", "line\nnext"},
		{"bell\a", "bell"},
		{"<b>tags</b>", "<b>tags</b>"},
		{"naïve 日本", "naïve 日本"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PlainText(tt.in), "%q", tt.in)
	}
}

package fs

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandHomePath(t *testing.T) {
	HOME := os.Getenv("HOME")
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"~", HOME},
		{"~/", HOME + "/"},
		{"~/.scarab", HOME + "/.scarab"},
		{"~username", "~username"},
		{"/opt/~/x", "/opt/~/x"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, ExpandHomePath(c.in))
	}
}

func TestExpandHomePathTo(t *testing.T) {
	assert.Equal(t, "/home/other/.scarab", ExpandHomePathTo("~/.scarab", "/home/other"))
}

package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByteSize(t *testing.T) {
	cases := []struct {
		in   string
		want ByteSize
	}{
		{"512", 512},
		{"10K", 10000},
		{"10KiB", 10240},
		{"10M", 10000000},
		{"1GB", 1000000000},
	}
	for _, c := range cases {
		var b ByteSize
		assert.NoError(t, b.UnmarshalFlag(c.in))
		assert.EqualValues(t, c.want, b)
	}
}

func TestByteSizeInvalid(t *testing.T) {
	var b ByteSize
	assert.Error(t, b.UnmarshalFlag("ten"))
}

func TestVersion(t *testing.T) {
	v, err := NewVersion("1.2.3")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, v.Major)
	assert.EqualValues(t, 2, v.Minor)
	assert.EqualValues(t, 3, v.Patch)
	assert.True(t, v.IsSet)
	assert.Equal(t, "1.2.3", v.String())
}

func TestVersionInvalid(t *testing.T) {
	_, err := NewVersion("not a version")
	assert.Error(t, err)
}

func TestVersionUnset(t *testing.T) {
	v, err := NewVersion("1.2.3")
	assert.NoError(t, err)
	v.Unset()
	assert.False(t, v.IsSet)
	assert.Equal(t, "0.0.0", v.String())
}

package helpers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hello World", "hello-world"},
		{"  Leading & trailing!  ", "leading-trailing"},
		{"Go 1.22 Release Notes", "go-1-22-release-notes"},
		{"ALL CAPS", "all-caps"},
		{"---", ""},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "input %q", tc.in)
	}
}

package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLinkNext(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "empty", header: "", want: ""},
		{
			name:   "next and last",
			header: `<https://api.github.com/repos/o/r/tags?page=2>; rel="next", <https://api.github.com/repos/o/r/tags?page=5>; rel="last"`,
			want:   "https://api.github.com/repos/o/r/tags?page=2",
		},
		{
			name:   "last page",
			header: `<https://api.github.com/repos/o/r/tags?page=1>; rel="first", <https://api.github.com/repos/o/r/tags?page=4>; rel="prev"`,
			want:   "",
		},
		{name: "malformed", header: `https://api.github.com; rel="next"`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, parseLinkNext(tt.header))
		})
	}
}

package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rinjani Summit Trek", "rinjani-summit-trek"},
		{"  Bali -- Beach & Surf  ", "bali-beach-surf"},
		{"UPPER case 123", "upper-case-123"},
		{"---", ""},
		{"étoile", "toile"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, GenerateSlug(c.in), "input %q", c.in)
	}
}

func TestParseBoolLoose(t *testing.T) {
	for _, s := range []string{"1", "true", "T", "yes", "Y", "on"} {
		v, ok := ParseBoolLoose(s)
		assert.True(t, ok, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"0", "false", "F", "no", "N", "off"} {
		v, ok := ParseBoolLoose(s)
		assert.True(t, ok, s)
		assert.False(t, v, s)
	}
	for _, s := range []string{"", "maybe", "2"} {
		_, ok := ParseBoolLoose(s)
		assert.False(t, ok, s)
	}
}

func TestBuildPagination(t *testing.T) {
	p := Paging{Page: 2, PerPage: 10}

	got := BuildPagination(35, p)
	assert.Equal(t, 4, got.TotalPages)
	assert.True(t, got.HasNext)
	assert.True(t, got.HasPrev)

	got = BuildPagination(0, Paging{Page: 1, PerPage: 10})
	assert.Equal(t, 0, got.TotalPages)
	assert.False(t, got.HasNext)
	assert.False(t, got.HasPrev)

	// exact page boundary
	got = BuildPagination(20, Paging{Page: 2, PerPage: 10})
	assert.Equal(t, 2, got.TotalPages)
	assert.False(t, got.HasNext)
}

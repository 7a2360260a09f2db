package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeTag(t *testing.T) {
	cases := map[string]string{
		"Breakfast": "breakfast",
		" VEGAN ":   "vegan",
		"quick":     "quick",
		"   ":       "",
		"":          "",
	}
	for input, want := range cases {
		assert.Equal(t, want, NormalizeTag(input), "input %q", input)
	}
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("   "))

	got := OptionalString("  two cups  ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "two cups", *got)
	}
}

func TestOptionalInt(t *testing.T) {
	assert.Nil(t, OptionalInt(0))

	got := OptionalInt(4)
	if assert.NotNil(t, got) {
		assert.Equal(t, 4, *got)
	}
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 30, CoerceInt("30"))
	assert.Equal(t, 30, CoerceInt(" 30 "))
	assert.Equal(t, 0, CoerceInt(""))
	assert.Equal(t, 0, CoerceInt("abc"))
	assert.Equal(t, -1, CoerceInt("-1"))
}

func TestSplitTags(t *testing.T) {
	assert.Nil(t, SplitTags(""))
	assert.Nil(t, SplitTags("   "))
	assert.Equal(t, []string{"Breakfast", " quick"}, SplitTags("Breakfast, quick"))
}

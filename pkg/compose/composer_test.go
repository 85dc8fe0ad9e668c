package compose_test

import (
	"testing"

	"github.com/aretw0/dwellkeys/pkg/compose"
	"github.com/aretw0/dwellkeys/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(c *compose.Composer, codes ...domain.TargetID) {
	for _, code := range codes {
		c.Press(code)
	}
}

func TestComposer_Typing(t *testing.T) {
	c := compose.New(compose.Spanish)
	press(c, "h", "o", "l", "a")

	assert.Equal(t, compose.State{Text: "hola", Word: "hola"}, c.State())

	press(c, compose.CodeSpace, "ntilde", "o")
	assert.Equal(t, "hola ño", c.State().Text)
	assert.Equal(t, "ño", c.Word())
}

func TestComposer_UnknownCode(t *testing.T) {
	c := compose.New(compose.Spanish)
	assert.False(t, c.Press("nope"))
	assert.True(t, c.Press("a"))
}

func TestComposer_Modifiers(t *testing.T) {
	t.Run("Shift is one-shot", func(t *testing.T) {
		c := compose.New(compose.Spanish)
		press(c, compose.CodeShiftLeft, "c", "a")
		assert.Equal(t, "Ca", c.State().Text)
		assert.False(t, c.State().Shift)
	})

	t.Run("Shift toggles off", func(t *testing.T) {
		c := compose.New(compose.Spanish)
		press(c, compose.CodeShiftLeft, compose.CodeShiftRight, "a")
		assert.Equal(t, "a", c.State().Text)
	})

	t.Run("Caps persists", func(t *testing.T) {
		c := compose.New(compose.Spanish)
		press(c, compose.CodeCaps, "a", "a-acute", "digit1")
		assert.Equal(t, "AÁ!", c.State().Text)
		assert.True(t, c.State().Caps)

		press(c, compose.CodeCaps, "a")
		assert.Equal(t, "AÁ!a", c.State().Text)
	})

	t.Run("Keys without a shifted form", func(t *testing.T) {
		c := compose.New(compose.Spanish)
		press(c, compose.CodeShiftLeft, "quest-open")
		assert.Equal(t, "¿", c.State().Text)
		assert.False(t, c.State().Shift, "shift is consumed anyway")
	})
}

func TestComposer_Backspace(t *testing.T) {
	c := compose.New(compose.Spanish)
	press(c, compose.CodeBackspace)
	assert.Equal(t, compose.State{}, c.State(), "no-op on empty text")

	press(c, "c", "a", "m", "i", "o", "n", compose.CodeSpace)
	require.Equal(t, "", c.Word())

	press(c, compose.CodeBackspace)
	assert.Equal(t, "camion", c.Word(), "the word before the space is restored")

	press(c, compose.CodeBackspace, compose.CodeBackspace)
	assert.Equal(t, "cami", c.State().Text)
	assert.Equal(t, "cami", c.Word())

	press(c, "o-acute")
	press(c, compose.CodeBackspace)
	assert.Equal(t, "cami", c.State().Text, "multi-byte runes are removed whole")

	press(c, compose.CodeEnter, "x", compose.CodeBackspace, compose.CodeBackspace)
	assert.Equal(t, "cami", c.Word())
}

func TestComposer_Tab(t *testing.T) {
	c := compose.New(compose.Spanish)
	press(c, "s", "i", compose.CodeTab)

	assert.Equal(t, "si    ", c.State().Text)
	assert.Equal(t, "si", c.Word())
}

func TestComposer_Accept(t *testing.T) {
	c := compose.New(compose.Spanish)
	press(c, "h", "o", "l", compose.CodeSpace, "c", "a")

	c.Accept("casa")
	assert.Equal(t, compose.State{Text: "hol casa "}, c.State())

	c.Accept("que")
	assert.Equal(t, "hol casa que ", c.State().Text, "accepting with no word in progress appends")
}

func TestComposer_Clear(t *testing.T) {
	c := compose.New(compose.Spanish)
	press(c, compose.CodeCaps, "a", "b")
	c.Clear()

	assert.Equal(t, compose.State{Caps: true}, c.State())
}

func TestLayout(t *testing.T) {
	keys := compose.Spanish.Keys()
	seen := make(map[domain.TargetID]bool, len(keys))
	for _, k := range keys {
		assert.False(t, seen[k.Code], "duplicate code %s", k.Code)
		seen[k.Code] = true
	}

	k, ok := compose.Spanish.Lookup("ntilde")
	require.True(t, ok)
	assert.Equal(t, "ñ", k.Char)
	assert.Equal(t, "Ñ", k.ShiftChar)

	_, ok = compose.Spanish.Lookup("missing")
	assert.False(t, ok)
}

package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringMatchesSuffix(t *testing.T) {
	v, rest, ok := String("x")(NewInput("exd5x"))
	require.True(t, ok)
	assert.Equal(t, "x", v)
	assert.Equal(t, "exd5", rest.Rest())

	_, rest, ok = String("X")(NewInput("exd5x"))
	assert.False(t, ok)
	assert.Equal(t, "exd5x", rest.Rest())

	_, _, ok = String("long")(NewInput("ng"))
	assert.False(t, ok)
}

func TestDigit(t *testing.T) {
	d, rest, ok := Digit()(NewInput("e4"))
	require.True(t, ok)
	assert.Equal(t, 4, d)
	assert.Equal(t, "e", rest.Rest())

	_, _, ok = Digit()(NewInput("e"))
	assert.False(t, ok)
	_, _, ok = Digit()(NewInput(""))
	assert.False(t, ok)
}

func TestRefineDoesNotConsumeOnRejection(t *testing.T) {
	nonZero := Refine(Digit(), func(d int) (int, bool) { return d, d != 0 })

	_, rest, ok := nonZero(NewInput("a0"))
	assert.False(t, ok)
	assert.Equal(t, "a0", rest.Rest())

	v, rest, ok := nonZero(NewInput("a7"))
	require.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, "a", rest.Rest())
}

func TestOptionalAlwaysSucceeds(t *testing.T) {
	p := Optional(String("x"))

	v, rest, ok := p(NewInput("ax"))
	require.True(t, ok)
	require.NotNil(t, v)
	assert.Equal(t, "a", rest.Rest())

	v, rest, ok = p(NewInput("ab"))
	require.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "ab", rest.Rest())
}

func TestSeqRunsFromTheBack(t *testing.T) {
	p := Seq(Digit(), Constant("e", 4))

	v, rest, ok := p(NewInput("Ne5"))
	require.True(t, ok)
	assert.Equal(t, 5, v.First)
	assert.Equal(t, 4, v.Second)
	assert.Equal(t, "N", rest.Rest())

	_, rest, ok = p(NewInput("Nd5"))
	assert.False(t, ok)
	assert.Equal(t, "Nd5", rest.Rest(), "failed sequence must not consume")
}

func TestLeftRight(t *testing.T) {
	l, _, ok := Left(Digit(), String("a"))(NewInput("a1"))
	require.True(t, ok)
	assert.Equal(t, 1, l)

	r, _, ok := Right(Digit(), String("a"))(NewInput("a1"))
	require.True(t, ok)
	assert.Equal(t, "a", r)
}

func TestAltOrderMatters(t *testing.T) {
	long := Alt(Constant("O-O-O", 2), Constant("O-O", 1))
	short := Alt(Constant("O-O", 1), Constant("O-O-O", 2))

	v, ok := long.Parse("O-O-O")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = short.Parse("O-O-O")
	assert.False(t, ok, "the shorter token leaves input behind")

	v, ok = long.Parse("O-O")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestParseRequiresFullInput(t *testing.T) {
	_, ok := Digit().Parse("12")
	assert.False(t, ok)

	v, ok := Digit().Parse("2")
	require.True(t, ok)
	assert.Equal(t, 2, v)

	_, ok = End().Parse("")
	assert.True(t, ok)
}

// Package parse is a tiny parser combinator toolkit that consumes its input
// from the back. Notation such as "Nbxd7" is read destination first, which
// keeps the optional parts (capture mark, disambiguation, piece letter) at
// the front where a backward parser reaches them last.
package parse

// Input is a cursor over text that is consumed from the end towards the start.
type Input struct {
	text string
	end  int
}

func NewInput(text string) Input {
	return Input{text: text, end: len(text)}
}

// Rest is the part of the text not yet consumed.
func (in Input) Rest() string {
	return in.text[:in.end]
}

func (in Input) Empty() bool {
	return in.end == 0
}

// Parser reports the parsed value, the remaining input and whether it matched.
// A parser that fails returns its input untouched.
type Parser[T any] func(in Input) (T, Input, bool)

// Parse runs p over text and only succeeds when the whole text is consumed.
func (p Parser[T]) Parse(text string) (T, bool) {
	v, rest, ok := p(NewInput(text))
	if !ok || !rest.Empty() {
		var zero T
		return zero, false
	}
	return v, true
}

// Pair holds the results of Seq. First is the result of the parser that ran
// first, i.e. the one nearer the end of the text.
type Pair[A, B any] struct {
	First  A
	Second B
}

// String matches s exactly at the end of the remaining input.
func String(s string) Parser[string] {
	return func(in Input) (string, Input, bool) {
		if len(s) > in.end || in.text[in.end-len(s):in.end] != s {
			return "", in, false
		}
		return s, Input{text: in.text, end: in.end - len(s)}, true
	}
}

// Digit matches a single decimal digit at the end of the remaining input.
func Digit() Parser[int] {
	return func(in Input) (int, Input, bool) {
		if in.end == 0 {
			return 0, in, false
		}
		c := in.text[in.end-1]
		if c < '0' || c > '9' {
			return 0, in, false
		}
		return int(c - '0'), Input{text: in.text, end: in.end - 1}, true
	}
}

// Constant matches s and yields v.
func Constant[T any](s string, v T) Parser[T] {
	return Map(String(s), func(string) T { return v })
}

// End matches only when nothing is left to consume.
func End() Parser[struct{}] {
	return func(in Input) (struct{}, Input, bool) {
		return struct{}{}, in, in.Empty()
	}
}

func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (B, Input, bool) {
		a, rest, ok := p(in)
		if !ok {
			var zero B
			return zero, in, false
		}
		return f(a), rest, true
	}
}

// Refine transforms a successful result into an optional one. It does not
// consume any further input and is not a sequencing operator: use Seq to run
// one parser after another. When f rejects the value the whole parser fails
// and the input is left untouched.
func Refine[A, B any](p Parser[A], f func(A) (B, bool)) Parser[B] {
	return func(in Input) (B, Input, bool) {
		var zero B
		a, rest, ok := p(in)
		if !ok {
			return zero, in, false
		}
		b, ok := f(a)
		if !ok {
			return zero, in, false
		}
		return b, rest, true
	}
}

// Optional always succeeds. The result is nil when p did not match.
func Optional[T any](p Parser[T]) Parser[*T] {
	return func(in Input) (*T, Input, bool) {
		v, rest, ok := p(in)
		if !ok {
			return nil, in, true
		}
		return &v, rest, true
	}
}

// Seq runs a and then b on what a left over. Both must match.
func Seq[A, B any](a Parser[A], b Parser[B]) Parser[Pair[A, B]] {
	return func(in Input) (Pair[A, B], Input, bool) {
		va, rest, ok := a(in)
		if !ok {
			return Pair[A, B]{}, in, false
		}
		vb, rest, ok := b(rest)
		if !ok {
			return Pair[A, B]{}, in, false
		}
		return Pair[A, B]{First: va, Second: vb}, rest, true
	}
}

// Left sequences a and b and keeps the result of a.
func Left[A, B any](a Parser[A], b Parser[B]) Parser[A] {
	return Map(Seq(a, b), func(p Pair[A, B]) A { return p.First })
}

// Right sequences a and b and keeps the result of b.
func Right[A, B any](a Parser[A], b Parser[B]) Parser[B] {
	return Map(Seq(a, b), func(p Pair[A, B]) B { return p.Second })
}

// Alt tries each parser on the same input and returns the first match.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) (T, Input, bool) {
		for _, p := range ps {
			if v, rest, ok := p(in); ok {
				return v, rest, true
			}
		}
		var zero T
		return zero, in, false
	}
}

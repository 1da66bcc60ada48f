package wikistore

import "math"

// MinScore is the lowest score a policy can return.
//
// Policies return MinScore for input they cannot score (a zero divisor, a
// missing field). It is an ordinary value, not an error: a MinScore record
// only appears in a best-of result when nothing scores higher.
const MinScore = -math.MaxFloat64

// Policy scores records for best-of queries. Higher scores win.
//
// Evaluate should be a pure function of the record.
type Policy[R any] interface {
	Evaluate(record R) float64
}

// ScoreFunc adapts an ordinary function to the [Policy] interface.
type ScoreFunc[R any] func(record R) float64

// Evaluate calls f(record).
func (f ScoreFunc[R]) Evaluate(record R) float64 {
	return f(record)
}

// Ratio returns a policy scoring num(record) / den(record).
//
// A zero denominator scores [MinScore], as does a [MinScore] numerator or
// denominator.
//
// Example:
//
//	// attack per point of cost
//	efficient := wikistore.Ratio(attack, cost)
func Ratio[R any](num, den ScoreFunc[R]) ScoreFunc[R] {
	return func(record R) float64 {
		n := num(record)
		d := den(record)
		if d == 0 || n == MinScore || d == MinScore {
			return MinScore
		}
		return n / d
	}
}

// Term is one weighted component of a [Weighted] policy.
type Term[R any] struct {
	Score  ScoreFunc[R]
	Weight float64
}

// Weighted returns a policy scoring the weighted sum of its terms.
//
// If any term scores [MinScore] the whole record scores MinScore. With no
// terms every record scores 0.
func Weighted[R any](terms ...Term[R]) ScoreFunc[R] {
	return func(record R) float64 {
		total := 0.0
		for _, t := range terms {
			s := t.Score(record)
			if s == MinScore {
				return MinScore
			}
			total += t.Weight * s
		}
		return total
	}
}

// Negate turns a higher-is-better policy into a lower-is-better one.
//
// [MinScore] stays MinScore so unscorable records never start winning.
func Negate[R any](p Policy[R]) ScoreFunc[R] {
	return func(record R) float64 {
		s := p.Evaluate(record)
		if s == MinScore {
			return MinScore
		}
		return -s
	}
}

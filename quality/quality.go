// Package quality converts Solexa-scaled base quality values into error
// probabilities and combines them across the bases of one read.
package quality

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/BenLubar/memoize"
)

// Integral qualities in [MinTabulated, MaxTabulated] are looked up in a
// precomputed table; all other values are computed directly.
const (
	MinTabulated = -64
	MaxTabulated = 127
)

// One table per range, built on first use and shared afterwards.
var memoizedErrorProbTable = memoize.Memoize(errorProbTable)

func errorProbTable(lo, hi int) []float64 {
	out := make([]float64, hi-lo+1)
	for q := lo; q <= hi; q++ {
		out[q-lo] = SolexaToErrorProb(float64(q))
	}

	return out
}

// SolexaToPhred converts a quality on the Solexa log-odds scale to the Phred
// log-probability scale. The scales converge for large s, and the Phred value
// approaches zero from above as s becomes very negative.
func SolexaToPhred(s float64) float64 {
	return 10.0 * math.Log10(1.0+math.Pow(10.0, s/10.0))
}

// PhredToErrorProb converts a Phred quality to the probability that the base
// call is wrong. Q10 is 0.1, Q30 is 0.001, Q40 is 0.0001.
func PhredToErrorProb(p float64) float64 {
	return math.Pow(10.0, -p/10.0)
}

// SolexaToErrorProb chains SolexaToPhred and PhredToErrorProb.
func SolexaToErrorProb(s float64) float64 {
	return PhredToErrorProb(SolexaToPhred(s))
}

// Combine returns the probability that at least one of the bases described by
// the Solexa qualities in quals was miscalled: 1 - Π(1 - err_i). An empty
// slice yields exactly 0.
func Combine(quals []float64) float64 {
	var table []float64

	prod := 1.0
	for _, sq := range quals {
		var errProb float64
		if sq >= MinTabulated && sq <= MaxTabulated && sq == math.Trunc(sq) {
			if table == nil {
				table = memoizedErrorProbTable.(func(int, int) []float64)(MinTabulated, MaxTabulated)
			}
			errProb = table[int(sq)-MinTabulated]
		} else {
			errProb = SolexaToErrorProb(sq)
		}
		prod *= 1.0 - errProb
	}

	return 1.0 - prod
}

// TokenError reports a quality token that is not a number.
type TokenError struct {
	Token string
	Err   error
}

func (e *TokenError) Error() string {
	return fmt.Sprintf("malformed quality token %q: %v", e.Token, e.Err)
}

func (e *TokenError) Unwrap() error {
	return e.Err
}

var errHexFloat = errors.New("hexadecimal floats are not accepted")

// Parse splits a whitespace separated quality string into its values. Tokens
// are decimal floats, optionally with underscores between digits (1_0); hex
// floats and anything else that does not parse yield a *TokenError. Values
// outside the float64 range saturate rather than fail.
func Parse(s string) ([]float64, error) {
	tokens := strings.Fields(s)
	quals := make([]float64, 0, len(tokens))

	for _, token := range tokens {
		if strings.ContainsAny(token, "xX") {
			return nil, &TokenError{Token: token, Err: errHexFloat}
		}

		v, err := strconv.ParseFloat(stripDigitSeparators(token), 64)
		if errors.Is(err, strconv.ErrRange) {
			// v is ±Inf or ±0, which the transforms handle
			err = nil
		}
		if err != nil {
			return nil, &TokenError{Token: token, Err: err}
		}
		quals = append(quals, v)
	}

	return quals, nil
}

// CombineString parses a quality string and combines it. See Combine.
func CombineString(s string) (float64, error) {
	quals, err := Parse(s)
	if err != nil {
		return 0, err
	}

	return Combine(quals), nil
}

// stripDigitSeparators drops underscores that sit between two digits. A token
// with any other underscore is returned unchanged so that parsing rejects it.
func stripDigitSeparators(token string) string {
	if !strings.Contains(token, "_") {
		return token
	}

	for i := 0; i < len(token); i++ {
		if token[i] != '_' {
			continue
		}
		if i == 0 || i == len(token)-1 || !isDigit(token[i-1]) || !isDigit(token[i+1]) {
			return token
		}
	}

	return strings.ReplaceAll(token, "_", "")
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

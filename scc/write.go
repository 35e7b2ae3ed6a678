package scc

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// FormatScore renders v with the shortest decimal form that round-trips to
// the same float64. Integral values keep a trailing ".0" so that 0 and 1 are
// printed as 0.0 and 1.0.
func FormatScore(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if strings.ContainsAny(s, ".eIN") {
		return s
	}

	return s + ".0"
}

// Write emits "{tag}\t{scc}\n" for each score, in the order given.
func Write(w io.Writer, scores []Score) error {
	for _, s := range scores {
		if _, err := fmt.Fprintf(w, "%s\t%s\n", s.Tag, FormatScore(s.SCC)); err != nil {
			return err
		}
	}

	return nil
}

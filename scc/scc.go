// Package scc computes the Sequence Certainty Coefficient of each distinct tag
// in an observation stream: the probability that at least one base of at
// least one observed occurrence of the tag was miscalled.
//
// Note that the coefficient rises toward 1 as a tag is observed more often,
// because every additional occurrence is another chance for an error. It is
// meant to be read alongside observed and predicted counts, not on its own.
package scc

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/carbocation/tagrecount/quality"
)

const (
	// Delim separates the fields of an observation record
	Delim = "\t"

	// MinFields is the number of leading fields an observation must carry
	MinFields = 3
)

// Record is one observation of a tag.
type Record struct {
	ObservedCount string
	Tag           string
	Quality       string
}

// ParseRecord splits one line of input. Lines that are empty or carry fewer
// than MinFields tab-delimited fields are rejected with ok == false; fields
// beyond the third are ignored.
func ParseRecord(line string) (rec Record, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return rec, false
	}

	parts := strings.SplitN(line, Delim, MinFields+1)
	if len(parts) < MinFields {
		return rec, false
	}

	return Record{
		ObservedCount: parts[0],
		Tag:           parts[1],
		Quality:       parts[2],
	}, true
}

// Score is the coefficient for one tag.
type Score struct {
	Tag         string
	SCC         float64
	Occurrences int
}

type tally struct {
	// Running Π(1 - q_i) over the occurrences seen so far
	prodOfComplements float64
	occurrences       int
}

// Accumulator folds observations into per-tag running products. Because the
// combination is associative and commutative, only one float per tag is
// retained rather than every quality string. The zero value is not usable;
// call NewAccumulator.
type Accumulator struct {
	tags map[string]*tally
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{tags: make(map[string]*tally)}
}

// Add folds one observation into its tag's tally. A malformed quality token
// is returned as a *quality.TokenError and leaves the tally unchanged.
func (a *Accumulator) Add(rec Record) error {
	q, err := quality.CombineString(rec.Quality)
	if err != nil {
		return err
	}

	t, exists := a.tags[rec.Tag]
	if !exists {
		t = &tally{prodOfComplements: 1.0}
		a.tags[rec.Tag] = t
	}

	t.prodOfComplements *= 1.0 - q
	t.occurrences++

	return nil
}

// Len is the number of distinct tags seen.
func (a *Accumulator) Len() int {
	return len(a.tags)
}

// Scores returns one Score per distinct tag in ascending byte order of tag.
func (a *Accumulator) Scores() []Score {
	out := make([]Score, 0, len(a.tags))
	for tag, t := range a.tags {
		out = append(out, Score{
			Tag:         tag,
			SCC:         1.0 - t.prodOfComplements,
			Occurrences: t.occurrences,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Tag < out[j].Tag
	})

	return out
}

// Read consumes r to its end, one observation per line. Short lines are
// skipped. A malformed quality token stops the read with an error naming the
// 1-based line; read failures are returned as-is.
func Read(r io.Reader) (*Accumulator, error) {
	acc := NewAccumulator()
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, pfx.Err(fmt.Errorf("line %d: %w", lineNo, err))
		}

		// The final line need not end in a newline
		if rec, ok := ParseRecord(line); ok {
			if addErr := acc.Add(rec); addErr != nil {
				return nil, fmt.Errorf("line %d (tag %s): %w", lineNo, rec.Tag, addErr)
			}
		}

		if err == io.EOF {
			break
		}
	}

	return acc, nil
}

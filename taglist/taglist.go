// Package taglist summarises a tag file as its tag count, its total number of
// bases and the sorted list of distinct tags.
package taglist

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/carbocation/pfx"
	"github.com/montanaflynn/stats"
)

// List is the result of scanning a tag file.
type List struct {
	// NumTags counts every line that carried a tag, duplicates included
	NumTags    int
	TotalBases int

	tags    map[string]struct{}
	lengths []float64
}

// Read scans r. The tag is the first whitespace-delimited field of each line;
// lines without any field are skipped.
func Read(r io.Reader) (*List, error) {
	out := &List{tags: make(map[string]struct{})}
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, pfx.Err(fmt.Errorf("line %d: %w", lineNo, err))
		}

		if fields := strings.Fields(line); len(fields) > 0 {
			tag := fields[0]
			tagLen := utf8.RuneCountInString(tag)

			out.NumTags++
			out.TotalBases += tagLen
			out.tags[tag] = struct{}{}
			out.lengths = append(out.lengths, float64(tagLen))
		}

		if err == io.EOF {
			break
		}
	}

	return out, nil
}

// Tags returns the distinct tags in ascending order.
func (l *List) Tags() []string {
	out := make([]string, 0, len(l.tags))
	for tag := range l.tags {
		out = append(out, tag)
	}
	sort.Strings(out)

	return out
}

// Write emits "{num_tags}\t{total_bases}" followed by one distinct tag per
// line.
func (l *List) Write(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%d\t%d\n", l.NumTags, l.TotalBases); err != nil {
		return err
	}

	for _, tag := range l.Tags() {
		if _, err := fmt.Fprintln(w, tag); err != nil {
			return err
		}
	}

	return nil
}

// LengthStats describes the distribution of tag lengths, counting duplicates.
type LengthStats struct {
	Mean   float64
	Median float64
	Max    float64
}

// LengthStats returns an error when no tags were read.
func (l *List) LengthStats() (LengthStats, error) {
	var out LengthStats
	var err error

	data := stats.LoadRawData(l.lengths)
	if out.Mean, err = stats.Mean(data); err != nil {
		return out, err
	}
	if out.Median, err = stats.Median(data); err != nil {
		return out, err
	}
	if out.Max, err = stats.Max(data); err != nil {
		return out, err
	}

	return out, nil
}

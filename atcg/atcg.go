// Package atcg rewrites numerically encoded tags (0123) as nucleotides (ACGT).
package atcg

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/carbocation/pfx"
)

var numericToBase = strings.NewReplacer("0", "A", "1", "C", "2", "G", "3", "T")

// Decode translates 0, 1, 2 and 3 to A, C, G and T. Other characters pass
// through unchanged.
func Decode(numeric string) string {
	return numericToBase.Replace(numeric)
}

// ConvertLine splits line into its first whitespace-delimited field and the
// remainder, and decodes the first field. ok is false when the line does not
// have both parts.
func ConvertLine(line string) (tag, rest string, ok bool) {
	line = strings.TrimLeftFunc(strings.TrimSuffix(line, "\n"), unicode.IsSpace)

	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return "", "", false
	}

	rest = strings.TrimLeftFunc(line[i:], unicode.IsSpace)
	if rest == "" {
		return "", "", false
	}

	return Decode(line[:i]), rest, true
}

// Convert copies r to w one line at a time, decoding the first column and
// joining it to the remainder with a tab. Lines without a second column are
// dropped.
func Convert(w io.Writer, r io.Reader) error {
	br := bufio.NewReader(r)

	for lineNo := 1; ; lineNo++ {
		line, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return pfx.Err(fmt.Errorf("line %d: %w", lineNo, err))
		}

		if tag, rest, ok := ConvertLine(line); ok {
			if _, werr := fmt.Fprintf(w, "%s\t%s\n", tag, rest); werr != nil {
				return werr
			}
		}

		if err == io.EOF {
			return nil
		}
	}
}

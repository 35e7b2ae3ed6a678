// scc computes the Sequence Certainty Coefficient of every distinct tag in a
// tab-delimited observation file (observed count, tag, Solexa qualities) and
// prints "tag<TAB>scc" lines sorted by tag.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"github.com/carbocation/tagrecount"
	_ "github.com/carbocation/tagrecount/compileinfoprint"
	"github.com/carbocation/tagrecount/scc"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

func main() {
	var inputFile string
	var summary, anonymous bool
	flag.StringVar(&inputFile, "file", "", "Path to the observation file (local, ~/..., gs://bucket/object, or - for stdin). May be gzip, bzip2, xz or zip compressed. May also be given as the first positional argument.")
	flag.BoolVar(&summary, "summary", false, "Log a summary and histogram of the coefficients to stderr.")
	flag.BoolVar(&anonymous, "anonymous", false, "Read gs:// inputs without credentials (public buckets only).")
	flag.Parse()

	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}

	if inputFile == "" {
		fmt.Fprintln(os.Stderr, `Computes the Sequence Certainty Coefficient (SCC) of each tag.
  Input lines are: observed_count<TAB>tag<TAB>space-delimited Solexa qualities.
  Lines with fewer than 3 fields are skipped. Output is tag<TAB>scc, sorted by tag.`)
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()

	var err error
	client, err = tagrecount.MaybeNewStorageClient(ctx, anonymous, inputFile)
	if err != nil {
		log.Fatalln(err)
	}

	var summaryOut io.Writer
	if summary {
		summaryOut = os.Stderr
	}

	if err := run(ctx, inputFile, STDOUT, summaryOut); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}

	if err := STDOUT.Flush(); err != nil {
		log.Fatalln(err)
	}
}

// run writes the coefficients for inputFile to w, and a summary to summaryOut
// if it is not nil.
func run(ctx context.Context, inputFile string, w io.Writer, summaryOut io.Writer) error {
	in, err := tagrecount.OpenInput(ctx, inputFile, client)
	if err != nil {
		return err
	}
	defer in.Close()

	acc, err := scc.Read(in)
	if err != nil {
		return fmt.Errorf("%s: %w", inputFile, err)
	}

	scores := acc.Scores()
	if err := scc.Write(w, scores); err != nil {
		return pfx.Err(err)
	}

	if summaryOut != nil {
		if err := scc.Summarize(scores).Fprint(summaryOut); err != nil {
			return pfx.Err(err)
		}
	}

	return nil
}

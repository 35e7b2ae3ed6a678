// numeric2atcg rewrites a numerically encoded first column (0123) as
// nucleotides (ACGT), emitting "tag<TAB>rest" for every line that has at
// least two columns.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"

	"cloud.google.com/go/storage"
	"github.com/carbocation/tagrecount"
	"github.com/carbocation/tagrecount/atcg"
	_ "github.com/carbocation/tagrecount/compileinfoprint"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

// Safe for concurrent use by multiple goroutines
var client *storage.Client

func main() {
	var inputFile string
	var anonymous bool
	flag.StringVar(&inputFile, "file", tagrecount.StdinPath, "Path to the numerically encoded tag file (local, ~/..., gs://bucket/object, or - for stdin).")
	flag.BoolVar(&anonymous, "anonymous", false, "Read gs:// inputs without credentials (public buckets only).")
	flag.Parse()

	ctx := context.Background()

	var err error
	client, err = tagrecount.MaybeNewStorageClient(ctx, anonymous, inputFile)
	if err != nil {
		log.Fatalln(err)
	}

	if err := run(ctx, inputFile, STDOUT); err != nil {
		STDOUT.Flush()
		log.Fatalln(err)
	}

	if err := STDOUT.Flush(); err != nil {
		// Downstream consumers such as head may close the pipe early
		log.Println(err)
	}
}

func run(ctx context.Context, inputFile string, w io.Writer) error {
	in, err := tagrecount.OpenInput(ctx, inputFile, client)
	if err != nil {
		return err
	}
	defer in.Close()

	return atcg.Convert(w, in)
}

// taglist prints the number of tags and total bases in a tag file, followed
// by every distinct tag in sorted order.
package main

import (
	"bufio"
	"context"
	"flag"
	"io"
	"log"
	"os"

	"github.com/carbocation/pfx"
	"github.com/carbocation/tagrecount"
	_ "github.com/carbocation/tagrecount/compileinfoprint"
	"github.com/carbocation/tagrecount/taglist"
)

var (
	STDOUT = bufio.NewWriterSize(os.Stdout, 4096)
)

func main() {
	var inputFile string
	var anonymous bool
	flag.StringVar(&inputFile, "file", "", "Path to a file whose first whitespace-delimited column is a tag (local, ~/..., gs://bucket/object, or - for stdin). May also be given as the first positional argument.")
	flag.BoolVar(&anonymous, "anonymous", false, "Read gs:// inputs without credentials (public buckets only).")
	flag.Parse()

	if inputFile == "" && flag.NArg() > 0 {
		inputFile = flag.Arg(0)
	}

	if inputFile == "" {
		flag.PrintDefaults()
		os.Exit(1)
	}

	ctx := context.Background()
	client, err := tagrecount.MaybeNewStorageClient(ctx, anonymous, inputFile)
	if err != nil {
		log.Fatalln(err)
	}

	in, err := tagrecount.OpenInput(ctx, inputFile, client)
	if err != nil {
		log.Fatalln(err)
	}
	defer in.Close()

	if err := run(in, STDOUT); err != nil {
		log.Fatalln(err)
	}

	if err := STDOUT.Flush(); err != nil {
		log.Fatalln(err)
	}
}

func run(r io.Reader, w io.Writer) error {
	l, err := taglist.Read(r)
	if err != nil {
		return err
	}

	if ls, err := l.LengthStats(); err == nil {
		log.Printf("Tag length mean %.2f, median %.0f, max %.0f\n", ls.Mean, ls.Median, ls.Max)
	}

	if err := l.Write(w); err != nil {
		return pfx.Err(err)
	}

	return nil
}

package tagrecount

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
)

// StdinPath is the input path that selects standard input.
const StdinPath = "-"

// ErrInputNotFound is returned (wrapped) when the requested input does not
// exist or cannot be opened for reading.
var ErrInputNotFound = errors.New("input not found")

// Input is an opened, transparently decompressed input stream.
type Input struct {
	io.Reader
	Path     string
	DataType DataType

	closers []func() error
}

// Close releases the decompressor and then the underlying source.
func (in *Input) Close() error {
	var err error
	for _, c := range in.closers {
		if cerr := c(); cerr != nil && err == nil {
			err = cerr
		}
	}
	in.closers = nil

	return err
}

// OpenInput opens path for reading. Paths beginning with gs:// are read from
// Google Storage with client, which may be nil for purely local use. The
// special path "-" reads from stdin. Compressed inputs are decompressed on
// the fly.
func OpenInput(ctx context.Context, path string, client *storage.Client) (*Input, error) {
	src, err := openSource(ctx, path, client)
	if err != nil {
		return nil, err
	}

	r, dt, err := MaybeDecompress(src)
	if err != nil {
		src.Close()
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	if dt != DataTypeNoCompression {
		log.Printf("Decompressing %s as %s\n", path, dt)
	}

	return &Input{
		Reader:   r,
		Path:     path,
		DataType: dt,
		closers:  []func() error{r.Close, src.Close},
	}, nil
}

func openSource(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if path == StdinPath {
		return io.NopCloser(os.Stdin), nil
	}

	if strings.HasPrefix(path, "gs://") {
		return openGoogleStorage(ctx, path, client)
	}

	f, err := os.Open(ExpandHome(path))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}

	fstat, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", ErrInputNotFound, err)
	}
	if fstat.IsDir() {
		f.Close()
		return nil, fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
	}

	return f, nil
}

func openGoogleStorage(ctx context.Context, path string, client *storage.Client) (io.ReadCloser, error) {
	if client == nil {
		return nil, pfx.Err(fmt.Errorf("%s: no google storage client was configured", path))
	}

	bucketName, objectName, err := SplitGoogleStoragePath(path)
	if err != nil {
		return nil, err
	}

	rdr, err := client.Bucket(bucketName).Object(objectName).NewReader(ctx)
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
	} else if err != nil {
		return nil, pfx.Err(fmt.Errorf("%s: %w", path, err))
	}

	return rdr, nil
}

// SplitGoogleStoragePath splits gs://bucket/path/to/object into its bucket
// and object names.
func SplitGoogleStoragePath(path string) (bucket, object string, err error) {
	pathParts := strings.SplitN(strings.TrimPrefix(path, "gs://"), "/", 2)
	if len(pathParts) != 2 || pathParts[0] == "" || pathParts[1] == "" {
		return "", "", fmt.Errorf("Tried to split your google storage path into a bucket and an object, but got %d parts: %v", len(pathParts), pathParts)
	}

	return pathParts[0], pathParts[1], nil
}

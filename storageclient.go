package tagrecount

import (
	"context"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/carbocation/pfx"
	"google.golang.org/api/option"
)

// MaybeNewStorageClient returns a Google Storage client if any of paths is a
// gs:// path, and nil otherwise. Anonymous clients can only read public
// buckets; all others use Application Default Credentials.
func MaybeNewStorageClient(ctx context.Context, anonymous bool, paths ...string) (*storage.Client, error) {
	needed := false
	for _, path := range paths {
		if strings.HasPrefix(path, "gs://") {
			needed = true
			break
		}
	}
	if !needed {
		return nil, nil
	}

	var opts []option.ClientOption
	if anonymous {
		opts = append(opts, option.WithoutAuthentication())
	}

	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, pfx.Err(err)
	}

	return client, nil
}

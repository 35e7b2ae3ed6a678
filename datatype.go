package tagrecount

import (
	"bufio"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"fmt"
	"io"

	"github.com/krolaw/zipstream"
	"github.com/xi2/xz"
)

type DataType byte

const (
	DataTypeInvalid DataType = iota
	DataTypeNoCompression
	DataTypeGzip
	DataTypeZip
	DataTypeXZ
	DataTypeZ
	DataTypeBZip2
)

func (d DataType) String() string {
	switch d {
	case DataTypeNoCompression:
		return "uncompressed"
	case DataTypeGzip:
		return "gzip"
	case DataTypeZip:
		return "zip"
	case DataTypeXZ:
		return "xz"
	case DataTypeZ:
		return "unix compress"
	case DataTypeBZip2:
		return "bzip2"
	}

	return "invalid"
}

// Byte code signatures from https://stackoverflow.com/a/19127748/199475
var byteCodeSigs = []struct {
	DataType
	sig []byte
}{
	{DataTypeGzip, []byte{0x1f, 0x8b, 0x08}},
	{DataTypeZip, []byte{0x50, 0x4b, 0x03, 0x04}},
	{DataTypeXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{DataTypeZ, []byte{0x1f, 0x9d}},
	{DataTypeBZip2, []byte{0x42, 0x5a, 0x68}},
}

// DetectDataType inspects the leading bytes of br without consuming them. A
// stream that is shorter than every signature (including an empty one) is
// treated as uncompressed.
func DetectDataType(br *bufio.Reader) (DataType, error) {
	head, err := br.Peek(6)
	if err != nil && err != io.EOF {
		return DataTypeInvalid, err
	}

	for _, candidate := range byteCodeSigs {
		if bytes.HasPrefix(head, candidate.sig) {
			return candidate.DataType, nil
		}
	}

	return DataTypeNoCompression, nil
}

// MaybeDecompress wraps r with a decompressor chosen from its magic bytes.
// Closing the returned reader releases the decompressor only; the caller
// still owns r.
func MaybeDecompress(r io.Reader) (io.ReadCloser, DataType, error) {
	br := bufio.NewReaderSize(r, 64*1024)

	dt, err := DetectDataType(br)
	if err != nil {
		return nil, dt, err
	}

	switch dt {
	case DataTypeGzip:
		gz, err := gzip.NewReader(br)
		if err != nil {
			return nil, dt, err
		}
		return gz, dt, nil
	case DataTypeZip:
		zr := zipstream.NewReader(br)
		// Only the first member of an archive is read.
		if _, err := zr.Next(); err != nil {
			return nil, dt, fmt.Errorf("zip: %w", err)
		}
		return io.NopCloser(zr), dt, nil
	case DataTypeBZip2:
		return io.NopCloser(bzip2.NewReader(br)), dt, nil
	case DataTypeXZ:
		reader, err := xz.NewReader(br, 0)
		if err != nil {
			return nil, dt, err
		}
		return io.NopCloser(reader), dt, nil
	case DataTypeZ:
		return nil, dt, fmt.Errorf("%s (.Z) input is not supported; recompress with gzip", dt)
	}

	return io.NopCloser(br), dt, nil
}

package kv

import (
	"fmt"

	"github.com/DataDog/zstd"
)

// orders are written once per preprocessing run and read at every engine start
const compressionLevel = zstd.BestCompression

func compress(bb []byte) ([]byte, error) {
	bbCompressed, err := zstd.CompressLevel(nil, bb, compressionLevel)
	if err != nil {
		return nil, fmt.Errorf("zstd compress: %w", err)
	}
	return bbCompressed, nil
}

func decompress(bbCompressed []byte) ([]byte, error) {
	bb, err := zstd.Decompress(nil, bbCompressed)
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	return bb, nil
}

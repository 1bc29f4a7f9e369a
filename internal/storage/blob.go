package storage

import "io"

// BlobStore holds uploaded binary payloads (currently tongue images).
type BlobStore interface {
	Put(key string, r io.Reader) (string, error) // returns canonical key
	Get(key string) (io.ReadCloser, error)
}

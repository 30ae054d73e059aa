// Package util provides common utility functions.
package util

//go:generate go tool errtrace -w .

// Must panics if e is not nil.
func Must(e error) {
	if e != nil {
		panic(e)
	}
}

// Byteseq represents a generic UTF-8 byte string.
type Byteseq interface {
	~string | ~[]byte
}

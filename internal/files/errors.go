package files

import (
	"errors"
	"fmt"
)

var (
	ErrMetadataNotRetrieved = errors.New("metadata not retrieved")
	ErrObjectNotFound       = errors.New("object not found")
	ErrObjectNotStored      = errors.New("object not stored")
)

func ErrorMetadataNotRetrieved(uri string, cause error) error {
	return fmt.Errorf("%w: uri=%s cause=%v", ErrMetadataNotRetrieved, uri, cause)
}

func ErrorObjectNotFound(uri string) error {
	return fmt.Errorf("%w: uri=%s", ErrObjectNotFound, uri)
}

func ErrorObjectNotStored(uri string, cause error) error {
	return fmt.Errorf("%w: uri=%s cause=%v", ErrObjectNotStored, uri, cause)
}

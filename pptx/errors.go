package pptx

import "errors"

var (
	// ErrFileNotFound reports an Open of a path that does not exist.
	ErrFileNotFound = errors.New("file not found")
	// ErrFormat reports a file that is not a readable presentation package.
	ErrFormat = errors.New("invalid presentation package")
	// ErrIO reports a failure reading or writing the package bytes.
	ErrIO = errors.New("presentation i/o failed")
)

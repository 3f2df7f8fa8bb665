package model

import "errors"

var (
	// ErrNoCell is returned when no cell covers the requested line.
	ErrNoCell = errors.New("no cell at line")
	// ErrNoScene is returned when no scene is declared at or before the requested line.
	ErrNoScene = errors.New("no scene at line")
	// ErrLineOutOfRange is returned for line numbers outside the file.
	ErrLineOutOfRange = errors.New("line out of range")
)

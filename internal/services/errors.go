package services

import "errors"

// Sentinel errors returned by the dashboard service. The HTTP layer
// maps these onto API errors.
var (
	ErrNoDataset         = errors.New("no dataset loaded")
	ErrEmptyUpload       = errors.New("upload is empty")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrMalformedUpload   = errors.New("upload is not a readable table")
)

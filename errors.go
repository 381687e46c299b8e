package docchat

import "errors"

var (
	// ErrProcessingFailed is returned when a document cannot be loaded,
	// extracted, or chunked. It covers unsupported file types, corrupt
	// files, and any unexpected failure during ingestion.
	ErrProcessingFailed = errors.New("docchat: document processing failed")

	// ErrUnsupportedFormat is returned for file extensions other than
	// pdf and docx.
	ErrUnsupportedFormat = errors.New("docchat: unsupported document format")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("docchat: invalid configuration")
)

package predictor

import "errors"

var (
	ErrUnknownFeature    = errors.New("unknown feature")
	ErrDimensionMismatch = errors.New("dimension mismatch")
	ErrInvalidArtifact   = errors.New("invalid model artifact")
)

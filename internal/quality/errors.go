package quality

import "errors"

var (
	ErrMissingColumn   = errors.New("missing column")
	ErrMissingDate     = errors.New("missing sampling date")
	ErrInvalidDate     = errors.New("invalid sampling date")
	ErrNoNumericColumn = errors.New("no numeric column available")
	ErrNotNumeric      = errors.New("non-numeric value")
	ErrNoData          = errors.New("no data to plot")
	ErrUnknownChart    = errors.New("unknown chart kind")
	ErrNoProbeStore    = errors.New("no probe store configured")
)

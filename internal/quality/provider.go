package quality

import (
	"context"
	"time"
)

// Fetcher abstracts the upstream measurement source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Record, error)
}

// Renderer turns a Table into an encoded image for one chart kind.
type Renderer interface {
	Kind() ChartKind
	Render(t *Table) ([]byte, error)
}

// ProbeStore is the contract the probe history store must satisfy.
type ProbeStore interface {
	SaveProbe(result ProbeResult)
	LatestProbe() (ProbeResult, error)
	ProbeRange(from, to time.Time) ([]ProbeResult, error)
}

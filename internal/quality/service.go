package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/Austin-SALVATORE/data-visual-water-quality/internal/logger"
)

// Service runs the fetch -> normalize -> render pipeline. It holds no data
// between calls: every request goes back to the upstream API.
type Service struct {
	fetcher   Fetcher
	renderers map[ChartKind]Renderer
	probes    ProbeStore
	log       logger.Logger
}

// NewService creates a new Service. probes may be nil when probing is off.
func NewService(fetcher Fetcher, renderers []Renderer, probes ProbeStore, log logger.Logger) *Service {
	byKind := make(map[ChartKind]Renderer, len(renderers))
	for _, r := range renderers {
		byKind[r.Kind()] = r
	}
	return &Service{
		fetcher:   fetcher,
		renderers: byKind,
		probes:    probes,
		log:       log.WithField("component", "pipeline"),
	}
}

// Table fetches a fresh batch of records and normalizes it.
func (s *Service) Table(ctx context.Context) (*Table, error) {
	records, err := s.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch measurements: %w", err)
	}

	t, err := Normalize(records)
	if err != nil {
		return nil, fmt.Errorf("normalize measurements: %w", err)
	}

	s.log.Debugf("normalized %d records into %d columns", t.Len(), len(t.Columns()))
	return t, nil
}

// Render produces the chart of the given kind from freshly fetched data.
func (s *Service) Render(ctx context.Context, kind ChartKind) ([]byte, error) {
	r, ok := s.renderers[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownChart, kind)
	}

	t, err := s.Table(ctx)
	if err != nil {
		return nil, err
	}

	img, err := r.Render(t)
	if err != nil {
		return nil, fmt.Errorf("render %s chart: %w", kind, err)
	}

	s.log.Infof("rendered %s chart (%d bytes) from %d records", kind, len(img), t.Len())
	return img, nil
}

// Probe runs one fetch+normalize round and reports how it went.
func (s *Service) Probe(ctx context.Context) ProbeResult {
	start := time.Now()
	result := ProbeResult{Timestamp: start.UTC()}

	t, err := s.Table(ctx)
	result.Latency = time.Since(start)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	result.OK = true
	result.Records = t.Len()
	result.Columns = len(t.Columns())
	return result
}

// ProbeAndStore probes the upstream and appends the result to the history.
func (s *Service) ProbeAndStore(ctx context.Context) error {
	if s.probes == nil {
		return ErrNoProbeStore
	}

	result := s.Probe(ctx)
	if !result.OK {
		s.log.Warnf("upstream probe failed after %s: %s", result.Latency, result.Error)
	} else {
		s.log.Debugf("upstream probe ok: %d records in %s", result.Records, result.Latency)
	}

	s.probes.SaveProbe(result)
	return nil
}

// LatestProbe delegates to the underlying store.
func (s *Service) LatestProbe() (ProbeResult, error) {
	if s.probes == nil {
		return ProbeResult{}, ErrNoProbeStore
	}
	return s.probes.LatestProbe()
}

// ProbeHistory delegates to the underlying store.
func (s *Service) ProbeHistory(from, to time.Time) ([]ProbeResult, error) {
	if s.probes == nil {
		return nil, ErrNoProbeStore
	}
	return s.probes.ProbeRange(from, to)
}

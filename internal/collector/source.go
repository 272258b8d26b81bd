package collector

import (
	"context"
	"math/rand"
	"time"

	"StockSandbox/internal/model"
	"StockSandbox/internal/synth"
)

// Source produces the raw points of a series ending on the calendar day of at.
type Source interface {
	FetchSeries(ctx context.Context, req model.SeriesRequest, at time.Time) ([]model.PricePoint, error)
	Name() string
}

// Clock is implemented by sources that own the notion of "now", including its
// time zone. The Collector stamps results with it.
type Clock interface {
	Now() time.Time
}

// SyntheticSource generates points with a synth.Engine. Every call draws from
// its own random source, so one SyntheticSource can serve concurrent callers.
type SyntheticSource struct {
	Engine *synth.Engine
	seed   int64
}

// NewSyntheticSource creates a source. A zero seed means a time-based seed per call.
func NewSyntheticSource(engine *synth.Engine, seed int64) *SyntheticSource {
	return &SyntheticSource{Engine: engine, seed: seed}
}

// Seeded returns a copy that always uses the given seed.
func (s *SyntheticSource) Seeded(seed int64) *SyntheticSource {
	return &SyntheticSource{Engine: s.Engine, seed: seed}
}

func (s *SyntheticSource) Name() string { return "synthetic" }

// Now is the engine's current instant in its configured location.
func (s *SyntheticSource) Now() time.Time { return s.Engine.Now() }

func (s *SyntheticSource) FetchSeries(ctx context.Context, req model.SeriesRequest, at time.Time) ([]model.PricePoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seed := s.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return s.Engine.GenerateAt(req, rand.New(rand.NewSource(seed)), at)
}

// StaticSource returns controllable fixed points for development and testing.
type StaticSource struct {
	Points []model.PricePoint
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) FetchSeries(_ context.Context, _ model.SeriesRequest, _ time.Time) ([]model.PricePoint, error) {
	out := make([]model.PricePoint, len(s.Points))
	copy(out, s.Points)
	return out, nil
}

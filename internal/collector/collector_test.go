package collector

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"StockSandbox/internal/calculator"
	"StockSandbox/internal/model"
	"StockSandbox/internal/notifier"
	"StockSandbox/internal/strategy"
	"StockSandbox/internal/synth"
)

func testEngine() *synth.Engine {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	return synth.NewEngine(synth.WithClock(func() time.Time { return now }))
}

func TestCollect_Synthetic(t *testing.T) {
	c := NewCollector(NewSyntheticSource(testEngine(), 99), zerolog.Nop())
	res, err := c.Collect(context.Background(), model.SeriesRequest{Symbol: " msft ", Window: model.WindowMonth})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Symbol != "MSFT" {
		t.Errorf("Symbol = %q, want MSFT", res.Symbol)
	}
	if res.Source != "synthetic" {
		t.Errorf("Source = %q, want synthetic", res.Source)
	}
	if len(res.Points) != 31 || len(res.Rolling) != 31 {
		t.Fatalf("got %d points and %d averages, want 31", len(res.Points), len(res.Rolling))
	}
	if res.Stats.LastPrice != res.Points[30].Price {
		t.Errorf("LastPrice = %v, want %v", res.Stats.LastPrice, res.Points[30].Price)
	}
	if res.Stats.SMA30 == nil || *res.Stats.SMA30 != *res.Rolling[30].SMA30 {
		t.Error("stats SMA30 should match the final rolling SMA30")
	}
}

func TestCollect_SeededIsRepeatable(t *testing.T) {
	src := NewSyntheticSource(testEngine(), 0).Seeded(5)
	c := NewCollector(src, zerolog.Nop())
	req := model.SeriesRequest{Symbol: "AAPL", Window: model.WindowThreeMonths}
	a, err := c.Collect(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := c.Collect(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(a.Points, b.Points) {
		t.Error("expected identical points for a fixed seed")
	}
}

func TestCollect_Static(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	src := &StaticSource{Points: []model.PricePoint{
		{Date: day, Price: 100, Volume: 1_500_000},
		{Date: day.AddDate(0, 0, 1), Price: 110, Volume: 2_000_000},
		{Date: day.AddDate(0, 0, 2), Price: 90, Volume: 3_000_000},
	}}
	res, err := NewCollector(src, zerolog.Nop()).Collect(context.Background(), model.SeriesRequest{Symbol: "TSLA", Window: model.WindowWeek})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stats.MinPrice != 90 || res.Stats.MaxPrice != 110 || res.Stats.LastVolume != 3_000_000 {
		t.Errorf("unexpected stats: %+v", res.Stats)
	}
	res.Points[0].Price = 1
	if src.Points[0].Price != 100 {
		t.Error("static source points were mutated through the result")
	}
}

func TestCollect_Errors(t *testing.T) {
	c := NewCollector(&StaticSource{}, zerolog.Nop())
	tests := []struct {
		name string
		req  model.SeriesRequest
		want error
	}{
		{"blank symbol", model.SeriesRequest{Window: model.WindowWeek}, synth.ErrInvalidSymbol},
		{"bad window", model.SeriesRequest{Symbol: "AAPL", Window: "5years"}, model.ErrInvalidWindow},
		{"empty series", model.SeriesRequest{Symbol: "AAPL", Window: model.WindowWeek}, calculator.ErrEmptySeries},
	}
	for _, tt := range tests {
		res, err := c.Collect(context.Background(), tt.req)
		if !errors.Is(err, tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, err, tt.want)
		}
		if res != nil {
			t.Errorf("%s: expected nil result", tt.name)
		}
	}
}

func TestCollect_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := NewCollector(NewSyntheticSource(testEngine(), 1), zerolog.Nop())
	if _, err := c.Collect(ctx, model.SeriesRequest{Symbol: "AAPL", Window: model.WindowWeek}); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestCollect_GeneratedAtFollowsEngineLocation(t *testing.T) {
	// 12:00 UTC is already the next day at UTC+14.
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	engine := synth.NewEngine(
		synth.WithClock(func() time.Time { return now }),
		synth.WithLocation(time.FixedZone("UTC+14", 14*60*60)),
	)
	c := NewCollector(NewSyntheticSource(engine, 5), zerolog.Nop())
	res, err := c.Collect(context.Background(), model.SeriesRequest{Symbol: "AAPL", Window: model.WindowWeek})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	last := res.Points[len(res.Points)-1].Date.Format(model.DateLayout)
	if last != "2026-10-20" {
		t.Errorf("last point = %s, want 2026-10-20", last)
	}
	if got := res.GeneratedAt.Format(model.DateLayout); got != last {
		t.Errorf("GeneratedAt day = %s, want %s", got, last)
	}
	if !res.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want instant %v", res.GeneratedAt, now)
	}
	header := strings.SplitN(notifier.FormatSummary(res, strategy.Classify(res.Stats)), "\n", 2)[0]
	if !strings.HasSuffix(header, last) {
		t.Errorf("header %q does not end with %s", header, last)
	}
}

func TestCollect_StaticSourceUsesWallClock(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCollector(&StaticSource{Points: []model.PricePoint{{Date: day, Price: 10, Volume: 1}}}, zerolog.Nop())
	before := time.Now()
	res, err := c.Collect(context.Background(), model.SeriesRequest{Symbol: "X", Window: model.WindowWeek})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.GeneratedAt.Before(before) {
		t.Errorf("GeneratedAt = %v, want at or after %v", res.GeneratedAt, before)
	}
}

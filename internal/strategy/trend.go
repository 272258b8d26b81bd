package strategy

import (
	"fmt"

	"StockSandbox/internal/model"
)

// Classify derives the trend chip from series statistics.
func Classify(stats model.SeriesStats) model.TrendSignal {
	sig := model.TrendSignal{
		Direction: direction(stats),
		Alignment: alignment(stats),
	}
	sig.Commentary = commentary(sig, stats)
	return sig
}

// Flat windows count as up.
func direction(stats model.SeriesStats) model.Direction {
	if stats.ChangeAbsolute >= 0 {
		return model.DirectionUp
	}
	return model.DirectionDown
}

func alignment(stats model.SeriesStats) model.Alignment {
	if stats.SMA10 == nil || stats.SMA30 == nil {
		return model.AlignmentUnknown
	}
	last, short, long := stats.LastPrice, *stats.SMA10, *stats.SMA30
	switch {
	case last > short && short > long:
		return model.AlignmentBullish
	case last < short && short < long:
		return model.AlignmentBearish
	default:
		return model.AlignmentMixed
	}
}

func commentary(sig model.TrendSignal, stats model.SeriesStats) string {
	move := "up"
	if sig.Direction == model.DirectionDown {
		move = "down"
	}
	switch sig.Alignment {
	case model.AlignmentBullish:
		return fmt.Sprintf("%s %.2f%%, price above SMA10 above SMA30", move, stats.ChangePercent)
	case model.AlignmentBearish:
		return fmt.Sprintf("%s %.2f%%, price below SMA10 below SMA30", move, stats.ChangePercent)
	case model.AlignmentMixed:
		return fmt.Sprintf("%s %.2f%%, averages crossing", move, stats.ChangePercent)
	default:
		return fmt.Sprintf("%s %.2f%%, not enough history for SMA30", move, stats.ChangePercent)
	}
}

package model

import (
	"encoding/json"
	"time"
)

// DateLayout is the calendar-day format used for point dates.
const DateLayout = "2006-01-02"

// PricePoint is one day of a generated series.
type PricePoint struct {
	Date   time.Time
	Price  float64
	Volume int64
}

type pricePointJSON struct {
	Date   string  `json:"date"`
	Price  float64 `json:"price"`
	Volume int64   `json:"volume"`
}

// MarshalJSON renders Date as a calendar day.
func (p PricePoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(pricePointJSON{
		Date:   p.Date.Format(DateLayout),
		Price:  p.Price,
		Volume: p.Volume,
	})
}

// UnmarshalJSON parses the calendar-day form written by MarshalJSON.
func (p *PricePoint) UnmarshalJSON(data []byte) error {
	var raw pricePointJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d, err := time.Parse(DateLayout, raw.Date)
	if err != nil {
		return err
	}
	p.Date = d
	p.Price = raw.Price
	p.Volume = raw.Volume
	return nil
}

// SeriesRequest asks for a series over a window.
type SeriesRequest struct {
	Symbol string `json:"symbol"`
	Window Window `json:"window"`
}

// SeriesStats summarizes a series. SMA10 and SMA30 are nil when the series is
// shorter than their period.
type SeriesStats struct {
	LastPrice      float64  `json:"lastPrice"`
	ChangeAbsolute float64  `json:"changeAbsolute"`
	ChangePercent  float64  `json:"changePercent"`
	MinPrice       float64  `json:"minPrice"`
	MaxPrice       float64  `json:"maxPrice"`
	LastVolume     int64    `json:"lastVolume"`
	SMA10          *float64 `json:"sma10"`
	SMA30          *float64 `json:"sma30"`
}

// RollingAverage holds the trailing averages at one point of a series.
type RollingAverage struct {
	SMA10 *float64 `json:"sma10"`
	SMA30 *float64 `json:"sma30"`
}

// SeriesResult is the full payload handed to a presentation layer.
type SeriesResult struct {
	Symbol      string           `json:"symbol"`
	Window      Window           `json:"window"`
	Source      string           `json:"source"`
	GeneratedAt time.Time        `json:"generatedAt"`
	Points      []PricePoint     `json:"points"`
	Stats       SeriesStats      `json:"stats"`
	Rolling     []RollingAverage `json:"rolling"`
}

package model

// Direction is the sign of the change over the whole window.
type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// Alignment describes how the last price sits against its moving averages.
type Alignment string

const (
	AlignmentBullish Alignment = "BULLISH"
	AlignmentBearish Alignment = "BEARISH"
	AlignmentMixed   Alignment = "MIXED"
	AlignmentUnknown Alignment = "UNKNOWN"
)

// TrendSignal is the trend summary shown next to the price card.
type TrendSignal struct {
	Direction  Direction `json:"direction"`
	Alignment  Alignment `json:"alignment"`
	Commentary string    `json:"commentary"`
}

// ExampleSymbol is a suggested ticker.
type ExampleSymbol struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// ExampleSymbols are offered to users who have not typed a ticker yet.
var ExampleSymbols = []ExampleSymbol{
	{Name: "Apple", Symbol: "AAPL"},
	{Name: "Microsoft", Symbol: "MSFT"},
	{Name: "Google", Symbol: "GOOGL"},
	{Name: "Amazon", Symbol: "AMZN"},
	{Name: "Tesla", Symbol: "TSLA"},
	{Name: "Meta", Symbol: "META"},
}

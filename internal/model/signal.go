package model

// SignalLabel is the trading-signal category derived from the RSI pair.
type SignalLabel string

const (
	SignalBuy      SignalLabel = "Buy"
	SignalSell     SignalLabel = "Sell"
	SignalNeutral  SignalLabel = "Neutral"
	SignalConflict SignalLabel = "Conflict"
)

// Card palette, consumed only by the rendering layer.
const (
	ColorGreen  = "#2ecc71"
	ColorRed    = "#e74c3c"
	ColorYellow = "#fff7cc"
	ColorGray   = "#95a5a6"
)

// Signal is the classified outcome for one candidate. Conflict is set only
// when the daily and weekly RSI disagree across the 40/60 bands.
type Signal struct {
	Label    SignalLabel
	Color    string
	Weight   int
	Conflict bool
}

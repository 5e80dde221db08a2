package strategy

import "VolRadar/internal/model"

// Classify maps a (daily RSI, weekly RSI) pair to a trading signal. The rules
// are evaluated in priority order and the first match wins:
//
//  1. daily > 60 and weekly in [40,60]      -> Conflict
//  2. weekly > 60 and daily in [40,60]      -> Conflict
//  3. daily > 60 and weekly > 60            -> Buy
//  4. daily < 40 and weekly < 40            -> Sell
//  5. both in [40,60]                       -> Neutral
//  6. anything else                         -> Neutral
//
// Rule 6 also catches strong disagreements (e.g. daily > 60, weekly < 40);
// those stay Neutral rather than Conflict.
func Classify(dailyRSI, weeklyRSI float64) model.Signal {
	between := func(x float64) bool { return x >= 40 && x <= 60 }

	switch {
	case dailyRSI > 60 && between(weeklyRSI):
		return conflictSignal()
	case weeklyRSI > 60 && between(dailyRSI):
		return conflictSignal()
	case dailyRSI > 60 && weeklyRSI > 60:
		return model.Signal{Label: model.SignalBuy, Color: model.ColorGreen, Weight: 700}
	case dailyRSI < 40 && weeklyRSI < 40:
		return model.Signal{Label: model.SignalSell, Color: model.ColorRed, Weight: 700}
	case between(dailyRSI) && between(weeklyRSI):
		return neutralSignal()
	default:
		return neutralSignal()
	}
}

func conflictSignal() model.Signal {
	return model.Signal{Label: model.SignalConflict, Color: model.ColorGray, Weight: 600, Conflict: true}
}

func neutralSignal() model.Signal {
	return model.Signal{Label: model.SignalNeutral, Color: model.ColorYellow, Weight: 400}
}

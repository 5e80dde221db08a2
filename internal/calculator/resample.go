package calculator

import "VolRadar/internal/model"

// ResampleWeeklyLast reduces daily bars to one bar per calendar week (ISO
// week, Monday through Sunday), keeping the last observation of each week.
// Input must be in chronological order.
func ResampleWeeklyLast(daily []model.OHLCV) []model.OHLCV {
	if len(daily) == 0 {
		return nil
	}
	var weekly []model.OHLCV
	cur := daily[0]
	for _, d := range daily[1:] {
		cy, cw := cur.Time.ISOWeek()
		dy, dw := d.Time.ISOWeek()
		if dy*100+dw != cy*100+cw {
			weekly = append(weekly, cur)
		}
		cur = d
	}
	return append(weekly, cur)
}

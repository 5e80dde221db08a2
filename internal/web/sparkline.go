package web

import (
	"fmt"
	"strings"
)

// sparklineSVG renders a compact inline line chart of the given values,
// scaled to the min/max of the window. A flat series draws a mid-height line.
func sparklineSVG(values []float64, width, height int) string {
	if len(values) < 2 {
		return fmt.Sprintf(`<svg width="%d" height="%d"></svg>`, width, height)
	}

	minV, maxV := values[0], values[0]
	for _, v := range values[1:] {
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	ys := make([]float64, len(values))
	for i, v := range values {
		if maxV == minV {
			ys[i] = float64(height) / 2
		} else {
			ys[i] = float64(height) - ((v-minV)/(maxV-minV)*float64(height-6)) - 3
		}
	}

	step := float64(width-4) / float64(len(values)-1)
	var path strings.Builder
	for i, y := range ys {
		x := 2 + step*float64(i)
		if i == 0 {
			fmt.Fprintf(&path, "M %.2f %.2f", x, y)
		} else {
			fmt.Fprintf(&path, " L %.2f %.2f", x, y)
		}
	}
	area := fmt.Sprintf("%s L %d %d L 2 %d Z", path.String(), width-2, height-2, height-2)

	return fmt.Sprintf(
		`<svg width="%d" height="%d" viewBox="0 0 %d %d" xmlns="http://www.w3.org/2000/svg">`+
			`<path d="%s" fill="rgba(43,138,235,0.08)"></path>`+
			`<path d="%s" fill="none" stroke="#0F172A" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"></path>`+
			`</svg>`,
		width, height, width, height, area, path.String())
}

package web

import (
	"fmt"
	"html"
	"strings"
	"time"

	"VolRadar/internal/model"
)

const pageCSS = `
:root{--text:#0F172A;--muted:#6B7280;--shadow:rgba(2,6,23,0.06)}
body{font-family:Inter,system-ui,-apple-system,Segoe UI,Roboto,Arial;margin:0;padding:0}
.container{max-width:1200px;margin:0 auto;padding:0 18px 28px}
.grid{display:grid;gap:18px;grid-template-columns:repeat(1,minmax(0,1fr))}
@media(min-width:700px){.grid{grid-template-columns:repeat(2,minmax(0,1fr))}}
@media(min-width:1100px){.grid{grid-template-columns:repeat(3,minmax(0,1fr))}}
.card{display:flex;background:#fff;border-radius:12px;overflow:hidden;box-shadow:0 10px 18px var(--shadow);min-height:120px}
.left-bar{width:10px;flex:0 0 10px}
.card-body{padding:14px 16px;display:flex;flex-direction:column;gap:10px;flex:1}
.ticker{font-weight:800;font-size:15px;color:var(--text)}
.company{font-size:12px;color:var(--muted);margin-top:2px}
.rsi-row{display:flex;align-items:center;gap:18px}
.rsi{min-width:84px}
.rsi-label{font-size:12px;color:#6b7280}
.rsi-value{font-weight:800;font-size:15px;margin-top:4px;color:#064E3B}
.signal{margin-top:8px;font-size:13px;color:var(--muted);display:inline-block}
.spark{flex:1}
.notice{text-align:center;margin:60px 0;color:var(--muted);font-size:16px}
`

func renderHeader(b *strings.Builder) {
	b.WriteString(`<div style="text-align:center;margin:26px 0 12px 0;">`)
	b.WriteString(`<h1 style="font-size:40px;font-weight:800;margin:0;color:#0F172A;">Least-Volatile NIFTY50 &mdash; Daily &amp; Weekly RSI</h1>`)
	b.WriteString(`<div style="height:12px"></div>`)
	fmt.Fprintf(b, `<a href="/?refresh=%d" style="text-decoration:none;">`, time.Now().Unix())
	b.WriteString(`<button style="background:#fff;border:1px solid #E6EEF8;padding:8px 14px;border-radius:999px;cursor:pointer;">&#128260; Refresh</button></a></div>`)
}

func renderCard(b *strings.Builder, c model.RankedCandidate) {
	spark := c.Closes
	if len(spark) > 30 {
		spark = spark[len(spark)-30:]
	}

	fmt.Fprintf(b, `<article class="card" aria-label="%s">`, html.EscapeString(c.Ticker))
	fmt.Fprintf(b, `<div class="left-bar" style="background:%s;"></div>`, c.Signal.Color)
	b.WriteString(`<div class="card-body">`)

	b.WriteString(`<div style="display:flex;justify-content:space-between;align-items:flex-start;"><div>`)
	fmt.Fprintf(b, `<div class="ticker">%s</div>`, html.EscapeString(c.Ticker))
	if c.Company != "" {
		fmt.Fprintf(b, `<div class="company">%s</div>`, html.EscapeString(c.Company))
	}
	b.WriteString(`</div>`)
	if c.Signal.Conflict {
		b.WriteString(`<div style="opacity:0.6;font-weight:800;">&#10006;</div>`)
	}
	b.WriteString(`</div>`)

	b.WriteString(`<div class="rsi-row">`)
	fmt.Fprintf(b, `<div class="rsi"><div class="rsi-label">Daily</div><div class="rsi-value">%.2f</div></div>`, c.DailyRSI)
	fmt.Fprintf(b, `<div class="rsi"><div class="rsi-label">Weekly</div><div class="rsi-value">%.2f</div></div>`, c.WeeklyRSI)
	fmt.Fprintf(b, `<div class="spark">%s</div>`, sparklineSVG(spark, 180, 36))
	b.WriteString(`</div>`)

	fmt.Fprintf(b, `<div class="signal" style="font-weight:%d;">%s</div>`, c.Signal.Weight, c.Signal.Label)
	b.WriteString(`</div></article>`)
}

// renderPage builds the full card-grid page for the ranked candidates.
func renderPage(candidates []model.RankedCandidate) string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>VolRadar</title>`)
	b.WriteString(`<style>` + pageCSS + `</style></head><body><div class="container">`)
	renderHeader(&b)
	b.WriteString(`<div class="grid">`)
	for _, c := range candidates {
		renderCard(&b, c)
	}
	b.WriteString(`</div></div></body></html>`)
	return b.String()
}

// renderNoData builds the retryable empty-result page.
func renderNoData() string {
	var b strings.Builder
	b.WriteString(`<!DOCTYPE html><html><head><meta charset="utf-8"><title>VolRadar</title>`)
	b.WriteString(`<style>` + pageCSS + `</style></head><body><div class="container">`)
	renderHeader(&b)
	b.WriteString(`<div class="notice">No tickers available &mdash; possibly a provider rate-limit or missing history. Try Refresh in a moment.</div>`)
	b.WriteString(`</div></body></html>`)
	return b.String()
}

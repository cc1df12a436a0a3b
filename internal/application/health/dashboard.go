package health

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// RenderDashboardHTML returns the status page served at GET /.
func RenderDashboardHTML(h CollectResult) string {
	headline := "All Systems Operational"
	headlineClass := "ok"
	if h.Status != "ok" {
		headline = "System Issues Detected"
		headlineClass = "err"
	}

	names := make([]string, 0, len(h.Dependencies))
	for name := range h.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	var deps strings.Builder
	for _, name := range names {
		d := h.Dependencies[name]
		cls := "err"
		if d.Status == "connected" {
			cls = "ok"
		}
		ping := "?"
		if p, ok := d.PingMs.(*int64); ok && p != nil {
			ping = fmt.Sprint(*p)
		}
		fmt.Fprintf(&deps, `<div class="pill %s"><b>%s</b> %s · %s ms</div>`,
			cls, html.EscapeString(name), html.EscapeString(d.Status), ping)
	}

	game := `<p class="muted">Engine not attached.</p>`
	if g := h.Game; g != nil {
		game = fmt.Sprintf(`<div class="grid">
      <div><span>Wallet</span><strong>$%s</strong></div>
      <div><span>Per second</span><strong>$%s</strong></div>
      <div><span>Multiplier</span><strong>%.2fx</strong></div>
      <div><span>Clicks</span><strong>%d</strong></div>
      <div><span>Assets owned</span><strong>%d</strong></div>
    </div>`, html.EscapeString(g.Wallet), html.EscapeString(g.CPS), g.PrestigeMultiplier, g.ManualActions, g.AssetsOwned)
	}

	lastReq := "-"
	if m, ok := h.Traffic.LastRequest.(map[string]interface{}); ok {
		method, _ := m["method"].(string)
		path, _ := m["path"].(string)
		lastReq = html.EscapeString(method + " " + path)
	}

	return `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Empire Builder · Engine Status</title>
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <style>
    body { background: #0f172a; color: #e2e8f0; font-family: system-ui, sans-serif; margin: 0; padding: 40px; }
    h1.ok { color: #4ade80; } h1.err { color: #f87171; }
    .pill { display: inline-block; padding: 6px 12px; border-radius: 999px; margin: 4px; }
    .pill.ok { background: #14532d; } .pill.err { background: #7f1d1d; }
    .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(140px, 1fr)); gap: 12px; }
    .grid div { background: #1e293b; padding: 12px; border-radius: 8px; }
    .grid span { display: block; font-size: 12px; opacity: 0.6; }
    .muted { opacity: 0.6; }
  </style>
</head>
<body>
  <h1 class="` + headlineClass + `">` + headline + `</h1>
  <section>` + deps.String() + `</section>
  <h2>Game</h2>
  ` + game + `
  <h2>Traffic</h2>
  <div class="grid">
    <div><span>Requests</span><strong>` + fmt.Sprint(h.Traffic.TotalRequests) + `</strong></div>
    <div><span>Failed</span><strong>` + fmt.Sprint(h.Traffic.FailedCount) + `</strong></div>
    <div><span>Success rate</span><strong>` + h.Traffic.SuccessRate + `%</strong></div>
    <div><span>Avg response</span><strong>` + fmt.Sprint(h.Traffic.AvgResponseTime) + ` ms</strong></div>
    <div><span>Uptime</span><strong>` + fmt.Sprint(h.Runtime.UptimeSeconds) + ` s</strong></div>
    <div><span>Goroutines</span><strong>` + fmt.Sprint(h.Runtime.Goroutines) + `</strong></div>
  </div>
  <p class="muted">Last inbound: ` + lastReq + ` · <a href="/health/errors" style="color:inherit">error log</a></p>
</body>
</html>`
}

package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"

	"genoscope/app"
)

// chartTemplate renders a self-contained HTML document around plotly.js.
// The payload is embedded as JSON so the file keeps working offline apart
// from the CDN script tag.
var chartTemplate = template.Must(template.New("chart").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.32.0.min.js"></script>
<style>body { font-family: sans-serif; margin: 24px; } #chart { width: 100%; height: 680px; }</style>
</head>
<body>
<h2>{{.Title}}</h2>
<div id="chart"></div>
<script>
const payload = {{.PayloadJSON}};
const kind = {{.Kind}};
const names = payload.points.map(p => p.short_name);
const negLogP = payload.points.map(p => p.neg_log10_p);
const counts = payload.points.map(p => p.intersection_size);
const hover = payload.points.map(p =>
	p.name + "<br>p = " + p.p_value.toExponential(2) + "<br>" + p.source + "<br>" + p.genes);

let trace;
if (kind === "bar") {
	trace = {
		type: "bar",
		orientation: "h",
		x: negLogP,
		y: names,
		text: hover,
		hoverinfo: "text",
		marker: { color: counts, colorscale: "Viridis", colorbar: { title: "Count" } }
	};
} else {
	trace = {
		type: "scatter",
		mode: "markers",
		x: counts,
		y: names,
		text: hover,
		hoverinfo: "text",
		marker: {
			size: payload.points.map(p => p.bubble_size),
			color: negLogP,
			colorscale: "Viridis",
			colorbar: { title: "-log10(P)" }
		}
	};
}

Plotly.newPlot("chart", [trace], {
	title: payload.title,
	xaxis: { title: kind === "bar" ? "-log10(P-value)" : "Gene Count", showgrid: true, gridcolor: "lightgrey" },
	yaxis: { automargin: true, showgrid: true, gridcolor: "lightgrey" },
	plot_bgcolor: "white"
}, { responsive: true });
</script>
</body>
</html>
`))

// RenderChartHTML renders the chart payload as an interactive HTML page.
// kind is "dot" (bubble chart) or "bar".
func RenderChartHTML(chart *app.ChartData, kind string) ([]byte, error) {
	if kind != "dot" && kind != "bar" {
		return nil, fmt.Errorf("unsupported chart type %q", kind)
	}

	payload, err := json.Marshal(chart)
	if err != nil {
		return nil, fmt.Errorf("failed to encode chart payload: %w", err)
	}

	var buf bytes.Buffer
	err = chartTemplate.Execute(&buf, struct {
		Title       string
		Kind        string
		PayloadJSON template.JS
	}{
		Title:       chart.Title,
		Kind:        kind,
		PayloadJSON: template.JS(payload),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

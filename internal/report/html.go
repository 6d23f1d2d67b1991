// internal/report/html.go
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/CodeMeister99/QML-Compare/internal/api"
	"github.com/CodeMeister99/QML-Compare/internal/compare"
)

// HTMLReportData is the view model of the HTML report.
type HTMLReportData struct {
	Title      string
	Generated  string
	Facts      []string
	Notes      string
	Verdict    string
	Classical  string
	Quantum    string
	Metrics    []metricRow
	BarsNote   string
	Confusions []htmlConfusion
	ROCSVG     template.HTML
	PRSVG      template.HTML
	MetricsSVG template.HTML
	ROCHelp    string
	PRHelp     string
	CurveAreas []htmlArea
	RunJSON    template.JS
}

type htmlConfusion struct {
	Side     string
	Name     string
	Headers  []string
	Rows     []htmlConfusionRow
	PerClass []api.ClassReport
	Timings  string
}

type htmlConfusionRow struct {
	Label string
	Cells []htmlCell
}

type htmlCell struct {
	Value int
	Style template.CSS
}

type htmlArea struct {
	Label     string
	Classical string
	Quantum   string
}

// GenerateHTML renders a standalone HTML report with inline SVG charts and the
// run embedded as JSON.
func GenerateHTML(run *compare.Run) (string, error) {
	if run == nil || run.Result == nil {
		return "", errors.New("no comparison result to report")
	}
	payload, err := json.Marshal(run)
	if err != nil {
		return "", err
	}

	view := HTMLReportData{
		Title:     fmt.Sprintf("QML Compare: %s vs %s", run.ClassicalName(), run.QuantumName()),
		Generated: run.StartedAt.Format(time.RFC1123),
		Facts:     datasetFacts(run),
		Notes:     runNotes(run),
		Verdict:   run.Verdict,
		Classical: run.ClassicalName(),
		Quantum:   run.QuantumName(),
		Metrics:   metricRows(run.Result),
		BarsNote:  compare.BarsNote,
		ROCHelp:   ROCHelp,
		PRHelp:    PRHelp,
		RunJSON:   template.JS(payload),
	}
	for _, quantum := range []bool{false, true} {
		if c, ok := buildConfusion(run, quantum); ok {
			view.Confusions = append(view.Confusions, c)
		}
	}
	charts := []struct {
		dst  *template.HTML
		draw func(io.Writer, Format) error
	}{
		{&view.ROCSVG, func(w io.Writer, f Format) error { return CurveChart(w, run, true, f) }},
		{&view.PRSVG, func(w io.Writer, f Format) error { return CurveChart(w, run, false, f) }},
		{&view.MetricsSVG, func(w io.Writer, f Format) error { return MetricsChart(w, run, f) }},
	}
	for _, c := range charts {
		svg, err := chartSVG(c.draw)
		if err != nil {
			return "", err
		}
		*c.dst = svg
	}
	c, q := run.Curves.Classical, run.Curves.Quantum
	if !c.Empty() || !q.Empty() {
		view.CurveAreas = []htmlArea{
			{Label: "ROC area", Classical: curveArea(c.Empty(), c.ROCAUC), Quantum: curveArea(q.Empty(), q.ROCAUC)},
			{Label: "PR area", Classical: curveArea(c.Empty(), c.PRAUC), Quantum: curveArea(q.Empty(), q.PRAUC)},
		}
	}

	var buf bytes.Buffer
	if err := htmlReportTemplate.Execute(&buf, view); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// chartSVG renders a chart for inline use; a chart without data yields "".
func chartSVG(draw func(io.Writer, Format) error) (template.HTML, error) {
	svg, err := RenderSVG(draw)
	if errors.Is(err, ErrNoChartData) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return template.HTML(svg), nil
}

func buildConfusion(run *compare.Run, quantum bool) (htmlConfusion, bool) {
	d := sideDetails(run, quantum)
	if d == nil {
		return htmlConfusion{}, false
	}
	out := htmlConfusion{Side: "Classical", Name: run.ClassicalName(), PerClass: d.PerClass, Timings: Timings(d.Timings)}
	if quantum {
		out.Side, out.Name = "Quantum", run.QuantumName()
	}
	classes := run.Result.Summary.Classes
	top := matrixMax(d.Confusion)
	if len(d.Confusion) > 0 {
		for j := range d.Confusion[0] {
			out.Headers = append(out.Headers, classLabel(classes, j))
		}
	}
	for i, row := range d.Confusion {
		r := htmlConfusionRow{Label: classLabel(classes, i)}
		for _, v := range row {
			style := fmt.Sprintf("background-color: rgba(59, 130, 246, %.2f)", Shade(v, top))
			r.Cells = append(r.Cells, htmlCell{Value: v, Style: template.CSS(style)})
		}
		out.Rows = append(out.Rows, r)
	}
	return out, true
}

var htmlFuncs = template.FuncMap{
	"metric": func(m api.Metric) string { return FormatMetric(m.Float()) },
}

var htmlReportTemplate = template.Must(template.New("compare-report").Funcs(htmlFuncs).Parse(htmlReportTemplateHTML))

const htmlReportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --quantum: #A855F7;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --success: #10B981;
      --border: #E2E8F0;
    }
    body {
      margin: 0;
      font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif;
      background-color: var(--light);
      color: var(--text);
    }
    header {
      background-color: var(--primary);
      color: var(--light);
      padding: 1rem 2rem;
    }
    header h1 { margin: 0; font-size: 1.4rem; }
    header .generated { color: #CBD5E1; font-size: 0.85rem; }
    main { max-width: 960px; margin: 0 auto; padding: 1.5rem; }
    .card {
      background: var(--background);
      border: 1px solid var(--border);
      border-radius: 16px;
      padding: 1.25rem 1.5rem;
      margin-bottom: 1.25rem;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
    }
    .card h2 { margin-top: 0; font-size: 1.15rem; }
    .verdict { border-color: var(--success); text-align: center; }
    .facts { list-style: none; padding: 0; margin: 0; display: flex; flex-wrap: wrap; gap: 0.5rem 1.5rem; }
    .notes { color: var(--secondary); font-style: italic; white-space: pre-line; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid var(--border); padding: 0.4rem 0.6rem; text-align: right; }
    th:first-child, td:first-child { text-align: left; }
    thead th { background-color: var(--light); }
    .classical { color: var(--accent); font-weight: 600; }
    .quantum { color: var(--quantum); font-weight: 600; }
    .hint { color: var(--secondary); font-size: 0.85rem; margin-top: 0.5rem; }
    .grid { display: grid; grid-template-columns: repeat(auto-fit, minmax(380px, 1fr)); gap: 1.25rem; }
    .chart svg { width: 100%; height: auto; }
  </style>
</head>
<body>
  <header>
    <h1>{{ .Title }}</h1>
    <div class="generated">Run started {{ .Generated }}</div>
  </header>
  <main>
    <section class="card">
      <ul class="facts">
        {{- range .Facts }}
        <li>{{ . }}</li>
        {{- end }}
      </ul>
      {{- if .Notes }}
      <p class="notes">{{ .Notes }}</p>
      {{- end }}
    </section>

    <section class="card verdict">
      <h2>Overall verdict</h2>
      <p>{{ .Verdict }}</p>
    </section>

    <section class="card">
      <h2>Metrics</h2>
      <table>
        <thead>
          <tr><th>Metric</th><th class="classical">{{ .Classical }}</th><th class="quantum">{{ .Quantum }}</th></tr>
        </thead>
        <tbody>
          {{- range .Metrics }}
          <tr><td title="{{ .Explain }}">{{ .Name }}</td><td>{{ .Classical }}</td><td>{{ .Quantum }}</td></tr>
          {{- end }}
        </tbody>
      </table>
      {{- if .MetricsSVG }}
      <div class="chart">{{ .MetricsSVG }}</div>
      {{- end }}
      <div class="hint">{{ .BarsNote }}</div>
    </section>

    <div class="grid">
      {{- range .Confusions }}
      <section class="card">
        <h2>Confusion ({{ .Side }}): {{ .Name }}</h2>
        <table>
          <thead>
            <tr><th>actual \ predicted</th>{{ range .Headers }}<th>{{ . }}</th>{{ end }}</tr>
          </thead>
          <tbody>
            {{- range .Rows }}
            <tr><th>{{ .Label }}</th>{{ range .Cells }}<td style="{{ .Style }}">{{ .Value }}</td>{{ end }}</tr>
            {{- end }}
          </tbody>
        </table>
        {{- if .PerClass }}
        <table style="margin-top: 0.75rem">
          <thead><tr><th>Class</th><th>Precision</th><th>Recall</th><th>F1</th><th>Support</th></tr></thead>
          <tbody>
            {{- range .PerClass }}
            <tr><td>{{ .Class }}</td><td>{{ metric .Precision }}</td><td>{{ metric .Recall }}</td><td>{{ metric .F1 }}</td><td>{{ .Support }}</td></tr>
            {{- end }}
          </tbody>
        </table>
        {{- end }}
        {{- if .Timings }}
        <div class="hint">{{ .Timings }}</div>
        {{- end }}
      </section>
      {{- end }}
    </div>

    {{- if .CurveAreas }}
    <section class="card">
      <h2>Curves</h2>
      <table>
        <thead><tr><th>Curve</th><th class="classical">Classical</th><th class="quantum">Quantum</th></tr></thead>
        <tbody>
          {{- range .CurveAreas }}
          <tr><td>{{ .Label }}</td><td>{{ .Classical }}</td><td>{{ .Quantum }}</td></tr>
          {{- end }}
        </tbody>
      </table>
      <div class="grid" style="margin-top: 1rem">
        <div class="chart">{{ .ROCSVG }}<div class="hint">{{ .ROCHelp }}</div></div>
        <div class="chart">{{ .PRSVG }}<div class="hint">{{ .PRHelp }}</div></div>
      </div>
    </section>
    {{- else }}
    <section class="card"><p class="notes">No diagnostics returned; curves unavailable.</p></section>
    {{- end }}
  </main>
  <script>
    const runData = {{ .RunJSON }};
    console.log("qmlc run", runData.id);
  </script>
</body>
</html>
`

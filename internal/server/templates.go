package server

import (
	"fmt"
	"html/template"
	"math"
	"net/http"
)

var funcMap = template.FuncMap{
	"fmtFloat": func(v float64) string {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return "—"
		}
		return fmt.Sprintf("%.2f", v)
	},
	"fmtCorr": func(v float64) string { return fmt.Sprintf("%.3f", v) },
	// corrColor maps r in [-1,1] to a blue/red scale for the heatmap.
	"corrColor": func(r float64, defined bool) template.CSS {
		if !defined {
			return "background:#eceff1;color:#90a4ae"
		}
		if r >= 0 {
			a := int(40 + 160*r)
			return template.CSS(fmt.Sprintf("background:rgba(198,40,40,%.2f);color:#111", float64(a)/255))
		}
		a := int(40 + 160*-r)
		return template.CSS(fmt.Sprintf("background:rgba(21,101,192,%.2f);color:#111", float64(a)/255))
	},
	"add": func(a, b int) int { return a + b },
}

func (s *Server) render(w http.ResponseWriter, page string, data any) {
	t, err := template.New("page").Funcs(funcMap).Parse(tmplBase + page)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if err := t.ExecuteTemplate(w, "base", data); err != nil {
		s.log.Error("render template", errField(err))
	}
}

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Carloom</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:#f6f8fa;color:#24292f;font-size:14px;line-height:1.5}
a{color:#0969da;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#fff;border-bottom:1px solid #d0d7de;padding:10px 20px;display:flex;gap:18px;align-items:center}
nav .brand{font-weight:700;font-size:16px;margin-right:10px}
nav a{color:#57606a;padding:4px 8px;border-radius:6px}
nav a.active{background:#0969da;color:#fff}
main{padding:20px;max-width:1100px;margin:0 auto}
h1{font-size:20px;margin-bottom:12px}
h2{font-size:15px;color:#57606a;text-transform:uppercase;letter-spacing:.05em;margin:20px 0 10px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:12px 18px;min-width:140px}
.card .val{font-size:22px;font-weight:700}
.card .lbl{font-size:11px;color:#57606a;margin-top:2px}
table{width:100%;border-collapse:collapse;font-size:12px;background:#fff}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #d0d7de;color:#57606a;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #eaeef2}
.section{background:#fff;border:1px solid #d0d7de;border-radius:6px;margin-bottom:16px;padding:14px;overflow-x:auto}
.warn{background:#fff8c5;border:1px solid #d4a72c66;border-radius:6px;padding:8px 12px;margin:8px 0;font-size:13px}
.info{background:#ddf4ff;border:1px solid #54aeff66;border-radius:6px;padding:8px 12px;margin:8px 0;font-size:13px}
.filters{display:flex;gap:12px;flex-wrap:wrap;align-items:flex-end;background:#fff;border:1px solid #d0d7de;border-radius:6px;padding:12px;margin-bottom:16px}
.filters label{font-size:11px;color:#57606a;display:block;margin-bottom:2px}
.filters select,.filters input{border:1px solid #d0d7de;border-radius:6px;padding:4px 8px;font-size:13px;background:#fff}
.filters button{background:#1f883d;border:none;color:#fff;padding:6px 14px;border-radius:6px;cursor:pointer;font-size:13px}
.chart img{max-width:100%;border:1px solid #eaeef2;border-radius:6px}
.heat td{text-align:center;font-size:11px;padding:6px 4px}
.pair-grid{display:flex;flex-wrap:wrap;gap:8px}
.pair-grid img{border:1px solid #eaeef2;border-radius:4px}
.muted{color:#57606a}
.prose p{margin-bottom:10px;max-width:72ch}
.prose ul{margin:0 0 10px 20px}
</style>
</head>
<body>
<nav>
  <span class="brand">🚗 Carloom</span>
  <a href="/" {{if eq .Active "intro"}}class="active"{{end}}>Introduction</a>
  <a href="/analysis" {{if eq .Active "analysis"}}class="active"{{end}}>Analysis</a>
  <a href="/conclusions" {{if eq .Active "conclusions"}}class="active"{{end}}>Conclusions</a>
</nav>
<main>
{{template "content" .}}
</main>
</body>
</html>{{end}}`

const tmplIntro = `
{{define "content"}}
<h1>Cars Analytics Dashboard</h1>
<div class="prose">
<p>Exploratory analysis of a used-car listings dataset: pricing and consumer
preference drivers such as brand, manufacturing year, fuel type, mileage,
engine power, and transmission. The raw feed arrives with missing values and
inconsistent formats; a cleaned copy is loaded alongside it and every chart
on the analysis page works off the cleaned table.</p>
</div>

<div class="cards">
  {{range .Metrics}}<div class="card"><div class="val">{{.Value}}</div><div class="lbl">{{.Label}}</div></div>{{end}}
</div>

{{range .Warnings}}<div class="warn">⚠ {{.}}</div>{{end}}
{{if .CoordsNote}}<div class="info">{{.CoordsNote}}</div>{{end}}

<h2>Raw dataset (first {{.PreviewRows}} rows)</h2>
<div class="section">{{template "preview" .RawHead}}</div>

<h2>Cleaned dataset (first {{.PreviewRows}} rows)</h2>
<div class="section">{{template "preview" .CleanHead}}</div>
{{end}}

{{define "preview"}}
{{if .}}
<table>
<tr>{{range index . 0}}<th>{{.}}</th>{{end}}</tr>
{{range $i, $row := .}}{{if gt $i 0}}<tr>{{range $row}}<td>{{.}}</td>{{end}}</tr>{{end}}{{end}}
</table>
{{else}}<span class="muted">no rows</span>{{end}}
{{end}}`

const tmplAnalysis = `
{{define "content"}}
<h1>Exploratory Analysis Studio</h1>

<form method="get" action="/analysis" class="filters">
  <input type="hidden" name="applied" value="1">
  <div>
    <label>Company</label>
    <select name="company" multiple size="5">
      {{range .Companies}}<option value="{{.}}" {{if index $.Selected .}}selected{{end}}>{{.}}</option>{{end}}
    </select>
  </div>
  <div>
    <label>Year from</label>
    <input type="number" name="year_min" value="{{.YearMin}}">
  </div>
  <div>
    <label>Year to</label>
    <input type="number" name="year_max" value="{{.YearMax}}">
  </div>
  <div>
    <label>Column</label>
    <select name="ucol">{{range .Columns}}<option {{if eq . $.UniCol}}selected{{end}}>{{.}}</option>{{end}}</select>
  </div>
  <div>
    <label>View</label>
    <select name="uview">
      <option value="histogram" {{if eq .UniView "histogram"}}selected{{end}}>Histogram</option>
      <option value="density" {{if eq .UniView "density"}}selected{{end}}>KDE</option>
      <option value="box" {{if eq .UniView "box"}}selected{{end}}>Boxplot</option>
    </select>
  </div>
  <div>
    <label>X axis</label>
    <select name="x">{{range .Columns}}<option {{if eq . $.BiX}}selected{{end}}>{{.}}</option>{{end}}</select>
  </div>
  <div>
    <label>Y axis</label>
    <select name="y">{{range .Columns}}<option {{if eq . $.BiY}}selected{{end}}>{{.}}</option>{{end}}</select>
  </div>
  <div>
    <label>Multivariate</label>
    <select name="method">
      <option value="heatmap" {{if eq .Method "heatmap"}}selected{{end}}>Heatmap</option>
      <option value="pairs" {{if eq .Method "pairs"}}selected{{end}}>Pairplot</option>
      <option value="grouped_bar" {{if eq .Method "grouped_bar"}}selected{{end}}>Grouped Bar</option>
    </select>
  </div>
  <div><button type="submit">Apply</button></div>
</form>

<div class="cards">
  {{range .Metrics}}<div class="card"><div class="val">{{.Value}}</div><div class="lbl">{{.Label}}</div></div>{{end}}
</div>

{{range .Warnings}}<div class="warn">⚠ {{.}}</div>{{end}}

<h2>Univariate analysis</h2>
<div class="section chart">
  {{if .UniChart}}<img src="{{.UniChart}}" alt="univariate chart">{{else}}<span class="muted">{{.UniNote}}</span>{{end}}
</div>

<h2>Bivariate analysis</h2>
<div class="section chart">
  {{if .BiCorrShown}}<p>Correlation: <strong>{{.BiCorr}}</strong></p>{{end}}
  {{if .BiChart}}<img src="{{.BiChart}}" alt="bivariate chart">{{else}}<span class="muted">{{.BiNote}}</span>{{end}}
</div>

<h2>Multivariate analysis</h2>
<div class="section">
  {{if .Heatmap}}
  <table class="heat">
    <tr><th></th>{{range .Heatmap.Columns}}<th>{{.}}</th>{{end}}</tr>
    {{range $i, $row := .Heatmap.Values}}
    <tr><th>{{index $.Heatmap.Columns $i}}</th>
      {{range $j, $v := $row}}<td style="{{corrColor $v (index (index $.Heatmap.Defined $i) $j)}}">{{if index (index $.Heatmap.Defined $i) $j}}{{fmtCorr $v}}{{else}}—{{end}}</td>{{end}}
    </tr>
    {{end}}
  </table>
  {{else if .PairCharts}}
  <div class="pair-grid">{{range .PairCharts}}<img src="{{.}}" alt="pair scatter">{{end}}</div>
  {{else if .MultiChart}}
  <div class="chart"><img src="{{.MultiChart}}" alt="grouped bar chart"></div>
  {{else}}<span class="muted">{{.MultiNote}}</span>{{end}}
</div>
{{end}}`

const tmplConclusions = `
{{define "content"}}
<h1>Automated Insights</h1>
<div class="prose">
<p>After cleaning and preprocessing, the distributions and relationships
between price, year, fuel type, brand, and transmission point the same way:</p>
<ul>
<li>Newer cars generally carry higher prices</li>
<li>Brand reputation significantly impacts resale value</li>
<li>Transmission type and fuel type both influence pricing</li>
</ul>
<p>The cleaned dataset and these findings are the groundwork for a future
price-prediction model.</p>
</div>

<div class="cards">
  {{range .Metrics}}<div class="card"><div class="val">{{.Value}}</div><div class="lbl">{{.Label}}</div></div>{{end}}
</div>
{{range .Warnings}}<div class="warn">⚠ {{.}}</div>{{end}}
{{end}}`

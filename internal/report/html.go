package report

import (
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/themizzi/menucheck/internal/runner"
)

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"ms": func(d time.Duration) string { return d.Round(time.Millisecond).String() },
	"rel": func(dir, path string) string {
		if r, err := filepath.Rel(dir, path); err == nil {
			return filepath.ToSlash(r)
		}
		return path
	},
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>menucheck report</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; color: #222; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid #ddd; vertical-align: top; }
.passed { color: #1a7f37; } .failed, .interrupted { color: #cf222e; }
.flaky { color: #9a6700; } .skipped { color: #6e7781; }
pre { white-space: pre-wrap; margin: 0; font-size: .85rem; }
</style>
</head>
<body>
<h1>menucheck</h1>
<p>Started {{.Summary.Started.Format "2006-01-02 15:04:05"}}, took {{ms .Summary.Duration}}.</p>
<p>
<span class="passed">{{.Stats.Expected}} passed</span>,
<span class="failed">{{.Stats.Unexpected}} failed</span>,
<span class="flaky">{{.Stats.Flaky}} flaky</span>,
<span class="skipped">{{.Stats.Skipped}} skipped</span>
{{- if .Stats.Interrupted}}, <span class="interrupted">{{.Stats.Interrupted}} interrupted</span>{{end}}
</p>
<table>
<thead><tr><th>Profile</th><th>Suite</th><th>Scenario</th><th>Status</th><th>Duration</th><th>Details</th></tr></thead>
<tbody>
{{- range .Summary.Results}}
<tr>
<td>{{.Profile}}</td><td>{{.Suite}}</td><td>{{.Name}}</td>
<td class="{{.Status}}">{{.Status}}</td><td>{{ms .Duration}}</td>
<td>
{{- range .Attempts}}
{{- if or .Errors .Screenshot}}
<details><summary>attempt {{.Number}}: {{.Status}}</summary>
{{- range .Errors}}<pre>{{.}}</pre>{{end}}
{{- if .Screenshot}}<a href="{{rel $.Dir .Screenshot}}">screenshot</a>{{end}}
</details>
{{- end}}
{{- end}}
</td>
</tr>
{{- end}}
</tbody>
</table>
</body>
</html>
`))

type htmlData struct {
	Summary *runner.Summary
	Stats   Stats
	Dir     string
}

// WriteHTML writes a static HTML summary to path. Screenshot links are
// relative to the report's directory.
func WriteHTML(path string, s *runner.Summary) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return htmlTemplate.Execute(f, htmlData{
		Summary: s,
		Stats:   NewStats(s),
		Dir:     filepath.Dir(path),
	})
}

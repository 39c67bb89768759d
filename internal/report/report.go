// Package report renders vault overviews as plain text and HTML.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"sort"
	"strings"

	"github.com/yuin/goldmark"

	"ideavault/internal/db"
	"ideavault/internal/models"
)

// recentCount is the dashboard window for recently added records.
const recentCount = 5

// md renders note content. The default goldmark renderer drops raw
// HTML, so note text cannot inject markup into the report.
var md = goldmark.New()

// Stats is a point-in-time overview of the vault.
type Stats struct {
	GeneratedAt      string
	TotalProblems    int
	TotalIdeas       int
	TotalNotes       int
	TotalLinks       int
	ProblemsByStatus map[string]int
	IdeasByStatus    map[string]int
	RecentProblems   []*models.Problem
	RecentIdeas      []*models.Idea
	RecentNotes      []*models.Note
}

// Collect gathers status counts, totals, and the most recent records.
func Collect(repo *db.Repository) (*Stats, error) {
	stats := &Stats{GeneratedAt: models.Now()}

	var err error
	if stats.ProblemsByStatus, err = repo.ProblemCountByStatus(); err != nil {
		return nil, err
	}
	if stats.IdeasByStatus, err = repo.IdeaCountByStatus(); err != nil {
		return nil, err
	}
	for _, n := range stats.ProblemsByStatus {
		stats.TotalProblems += n
	}
	for _, n := range stats.IdeasByStatus {
		stats.TotalIdeas += n
	}

	if stats.RecentProblems, err = repo.RecentProblems(recentCount); err != nil {
		return nil, err
	}
	if stats.RecentIdeas, err = repo.RecentIdeas(recentCount); err != nil {
		return nil, err
	}

	notes, err := repo.AllNotes()
	if err != nil {
		return nil, err
	}
	stats.TotalNotes = len(notes)
	if len(notes) > recentCount {
		notes = notes[:recentCount]
	}
	stats.RecentNotes = notes

	links, err := repo.AllLinks()
	if err != nil {
		return nil, err
	}
	stats.TotalLinks = len(links)

	return stats, nil
}

// RenderText formats the overview for terminal output.
func RenderText(stats *Stats) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Problems: %d\n", stats.TotalProblems)
	for _, status := range statusOrder(models.ProblemStatuses, stats.ProblemsByStatus) {
		fmt.Fprintf(&b, "  %-12s %d\n", status, stats.ProblemsByStatus[status])
	}

	fmt.Fprintf(&b, "Ideas: %d\n", stats.TotalIdeas)
	for _, status := range statusOrder(models.IdeaStatuses, stats.IdeasByStatus) {
		fmt.Fprintf(&b, "  %-12s %d\n", status, stats.IdeasByStatus[status])
	}

	fmt.Fprintf(&b, "Notes: %d\n", stats.TotalNotes)
	fmt.Fprintf(&b, "Links: %d\n", stats.TotalLinks)
	return b.String()
}

// RenderHTML renders the overview as a standalone HTML page. Note
// content is treated as markdown; everything else is escaped.
func RenderHTML(stats *Stats) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, templateData(stats)); err != nil {
		return nil, fmt.Errorf("failed to render report: %w", err)
	}
	return buf.Bytes(), nil
}

// statusOrder lists the statuses present in counts: known statuses in
// their declared order first, then anything a foreign backup brought
// in, alphabetically.
func statusOrder(known []string, counts map[string]int) []string {
	order := make([]string, 0, len(counts))
	seen := make(map[string]bool, len(known))
	for _, status := range known {
		seen[status] = true
		if _, ok := counts[status]; ok {
			order = append(order, status)
		}
	}
	var extra []string
	for status := range counts {
		if !seen[status] {
			extra = append(extra, status)
		}
	}
	sort.Strings(extra)
	return append(order, extra...)
}

type statusRow struct {
	Status string
	Count  int
}

type pageData struct {
	GeneratedAt    string
	TotalProblems  int
	TotalIdeas     int
	TotalNotes     int
	TotalLinks     int
	ProblemRows    []statusRow
	IdeaRows       []statusRow
	RecentProblems []*models.Problem
	RecentIdeas    []*models.Idea
	RecentNotes    []*models.Note
}

func templateData(stats *Stats) *pageData {
	data := &pageData{
		GeneratedAt:    stats.GeneratedAt,
		TotalProblems:  stats.TotalProblems,
		TotalIdeas:     stats.TotalIdeas,
		TotalNotes:     stats.TotalNotes,
		TotalLinks:     stats.TotalLinks,
		RecentProblems: stats.RecentProblems,
		RecentIdeas:    stats.RecentIdeas,
		RecentNotes:    stats.RecentNotes,
	}
	for _, status := range statusOrder(models.ProblemStatuses, stats.ProblemsByStatus) {
		data.ProblemRows = append(data.ProblemRows, statusRow{status, stats.ProblemsByStatus[status]})
	}
	for _, status := range statusOrder(models.IdeaStatuses, stats.IdeasByStatus) {
		data.IdeaRows = append(data.IdeaRows, statusRow{status, stats.IdeasByStatus[status]})
	}
	return data
}

// markdownHTML converts note markdown to HTML for embedding.
func markdownHTML(content string) template.HTML {
	var buf bytes.Buffer
	if err := md.Convert([]byte(content), &buf); err != nil {
		return template.HTML("<p>" + template.HTMLEscapeString(content) + "</p>")
	}
	return template.HTML(buf.String())
}

var pageTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"markdown": markdownHTML,
}).Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Idea Vault Report</title>
<style>
body { font-family: sans-serif; max-width: 60rem; margin: 2rem auto; padding: 0 1rem; color: #222; }
h1, h2 { border-bottom: 1px solid #ddd; padding-bottom: .3rem; }
table { border-collapse: collapse; width: 100%; margin: .5rem 0 1.5rem; }
th, td { text-align: left; padding: .35rem .6rem; border-bottom: 1px solid #eee; }
th { background: #f7f7f7; }
.note { border: 1px solid #eee; border-radius: 4px; padding: .5rem 1rem; margin-bottom: 1rem; }
.meta { color: #777; font-size: .85rem; }
</style>
</head>
<body>
<h1>Idea Vault Report</h1>
<p class="meta">Generated {{.GeneratedAt}}</p>

<h2>Problems ({{.TotalProblems}})</h2>
{{if .ProblemRows}}
<table>
<tr><th>Status</th><th>Count</th></tr>
{{range .ProblemRows}}<tr><td>{{.Status}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{else}}<p>No problems recorded yet.</p>{{end}}

{{if .RecentProblems}}
<h2>Recently Added Problems</h2>
<table>
<tr><th>ID</th><th>Title</th><th>Severity</th><th>Frequency</th><th>Status</th><th>Tags</th></tr>
{{range .RecentProblems}}<tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Severity}}</td><td>{{.Frequency}}</td><td>{{.Status}}</td><td>{{.Tags}}</td></tr>
{{end}}</table>
{{end}}

<h2>Ideas ({{.TotalIdeas}})</h2>
{{if .IdeaRows}}
<table>
<tr><th>Status</th><th>Count</th></tr>
{{range .IdeaRows}}<tr><td>{{.Status}}</td><td>{{.Count}}</td></tr>
{{end}}</table>
{{else}}<p>No ideas recorded yet.</p>{{end}}

{{if .RecentIdeas}}
<h2>Recently Added Ideas</h2>
<table>
<tr><th>ID</th><th>Title</th><th>Status</th><th>Score</th><th>Tags</th></tr>
{{range .RecentIdeas}}<tr><td>{{.ID}}</td><td>{{.Title}}</td><td>{{.Status}}</td><td>{{if .Score}}{{.Score}}{{else}}unscored{{end}}</td><td>{{.Tags}}</td></tr>
{{end}}</table>
{{end}}

<h2>Notes ({{.TotalNotes}})</h2>
{{if .RecentNotes}}
{{range .RecentNotes}}
<div class="note">
<p class="meta">#{{.ID}} {{.NoteType}} {{.CreatedAt}}</p>
{{markdown .Content}}
{{if .Links}}<p class="meta">Links: {{.Links}}</p>{{end}}
</div>
{{end}}
{{else}}<p>No notes recorded yet.</p>{{end}}

<p class="meta">Problem/idea links: {{.TotalLinks}}</p>
</body>
</html>
`))

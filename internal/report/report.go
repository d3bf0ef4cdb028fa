// Package report renders the visit history into a local HTML report.
package report

import (
	"bytes"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"sort"
	"time"

	"tubeboost/internal/history"
)

// Builder creates support reports from visit history
type Builder struct {
	outputDir string
	template  *template.Template
}

// New creates a new report builder writing into outputDir
func New(outputDir string) (*Builder, error) {
	tmpl, err := template.New("report").Parse(defaultTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template: %w", err)
	}

	return &Builder{
		outputDir: outputDir,
		template:  tmpl,
	}, nil
}

// Report is a rendered report on disk
type Report struct {
	FilePath   string
	VisitCount int
	CreatedAt  time.Time
}

// reportData is the template data structure
type reportData struct {
	Date     string
	Channels []channelRow
	Visits   []visitRow
	Stats    statsRow
}

type channelRow struct {
	Name         string
	Visits       int
	Supported    int
	WatchedHuman string
	LastVisit    string
}

type visitRow struct {
	Channel      string
	VideoTitle   string
	Outcome      string
	WatchedHuman string
	Actions      string
	StartedAt    string
	Err          string
}

type statsRow struct {
	TotalVisits    int
	TotalSupported int
}

// Build renders visits and per-channel stats to a timestamped HTML file
// and returns its path.
func (b *Builder) Build(visits []history.Visit, stats []history.ChannelStats) (*Report, error) {
	if len(visits) == 0 {
		return nil, fmt.Errorf("no visits to report on")
	}

	// Newest visits first
	sort.Slice(visits, func(i, j int) bool {
		return visits[i].StartedAt.After(visits[j].StartedAt)
	})

	now := time.Now()
	data := reportData{
		Date:     now.Format("Monday, January 2 15:04"),
		Channels: make([]channelRow, len(stats)),
		Visits:   make([]visitRow, len(visits)),
	}

	for i, cs := range stats {
		lastVisit := ""
		if !cs.LastVisit.IsZero() {
			lastVisit = cs.LastVisit.Format("Jan 2 15:04")
		}
		data.Channels[i] = channelRow{
			Name:         cs.ChannelName,
			Visits:       cs.Visits,
			Supported:    cs.Supported,
			WatchedHuman: humanDuration(cs.TotalWatchedSeconds),
			LastVisit:    lastVisit,
		}
	}

	for i, v := range visits {
		data.Visits[i] = visitRow{
			Channel:      v.ChannelName,
			VideoTitle:   v.VideoTitle,
			Outcome:      v.Outcome,
			WatchedHuman: humanDuration(v.WatchedSeconds),
			Actions:      actionSummary(v),
			StartedAt:    v.StartedAt.Format("Jan 2 15:04"),
			Err:          v.Err,
		}
		data.Stats.TotalVisits++
		if v.Supported {
			data.Stats.TotalSupported++
		}
	}

	var buf bytes.Buffer
	if err := b.template.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template: %w", err)
	}

	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return nil, err
	}
	filename := now.Format("2006-01-02T15-04-05") + ".html"
	path := filepath.Join(b.outputDir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return nil, err
	}

	return &Report{
		FilePath:   path,
		VisitCount: len(visits),
		CreatedAt:  now,
	}, nil
}

// Latest returns the most recent report file in dir.
func Latest(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}

	var newest string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".html" {
			continue
		}
		if e.Name() > newest {
			newest = e.Name()
		}
	}
	if newest == "" {
		return "", fmt.Errorf("no reports found in %s", dir)
	}
	return filepath.Join(dir, newest), nil
}

// Summary builds a plain text run summary, used for email notifications.
func Summary(visits []history.Visit) string {
	var buf bytes.Buffer
	supported := 0
	for _, v := range visits {
		if v.Supported {
			supported++
		}
	}
	buf.WriteString(fmt.Sprintf("Support run: %d/%d channels supported\n\n", supported, len(visits)))

	for i, v := range visits {
		line := fmt.Sprintf("%d. %s - %s (%s watched)", i+1, v.ChannelName, v.Outcome, humanDuration(v.WatchedSeconds))
		if v.Err != "" {
			line += fmt.Sprintf(" [%s]", v.Err)
		}
		buf.WriteString(line + "\n")
	}
	return buf.String()
}

func actionSummary(v history.Visit) string {
	actions := ""
	if v.Liked {
		actions += "liked "
	}
	if v.Subscribed {
		actions += "subscribed "
	}
	if v.Commented {
		actions += "commented"
	}
	if actions == "" {
		return "watch only"
	}
	return actions
}

func humanDuration(seconds float64) string {
	d := time.Duration(seconds) * time.Second
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
}

const defaultTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Support Report</title>
    <style>
        body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; background: #f5f5f5; }
        .container { background: white; border-radius: 8px; padding: 20px; }
        h1 { color: #c4302b; margin-bottom: 5px; }
        h2 { color: #333; margin-top: 25px; }
        .date { color: #666; margin-bottom: 20px; }
        table { width: 100%; border-collapse: collapse; }
        th { text-align: left; color: #666; font-size: 13px; border-bottom: 2px solid #eee; padding: 6px; }
        td { border-bottom: 1px solid #eee; padding: 6px; font-size: 14px; }
        .outcome-completed { color: #2e7d32; }
        .outcome-interrupted { color: #f9a825; }
        .outcome-errored { color: #c62828; }
        .err { color: #c62828; font-size: 12px; }
        .footer { margin-top: 20px; padding-top: 15px; border-top: 1px solid #eee; color: #999; font-size: 12px; text-align: center; }
    </style>
</head>
<body>
    <div class="container">
        <h1>Support Report</h1>
        <div class="date">{{.Date}}</div>

        <h2>Channels</h2>
        <table>
            <tr><th>Channel</th><th>Visits</th><th>Supported</th><th>Watched</th><th>Last visit</th></tr>
            {{range .Channels}}
            <tr><td>{{.Name}}</td><td>{{.Visits}}</td><td>{{.Supported}}</td><td>{{.WatchedHuman}}</td><td>{{.LastVisit}}</td></tr>
            {{end}}
        </table>

        <h2>Recent visits</h2>
        <table>
            <tr><th>When</th><th>Channel</th><th>Video</th><th>Outcome</th><th>Watched</th><th>Actions</th></tr>
            {{range .Visits}}
            <tr>
                <td>{{.StartedAt}}</td>
                <td>{{.Channel}}</td>
                <td>{{.VideoTitle}}</td>
                <td class="outcome-{{.Outcome}}">{{.Outcome}}{{if .Err}}<div class="err">{{.Err}}</div>{{end}}</td>
                <td>{{.WatchedHuman}}</td>
                <td>{{.Actions}}</td>
            </tr>
            {{end}}
        </table>

        <div class="footer">
            {{.Stats.TotalSupported}} of {{.Stats.TotalVisits}} visits supported · Generated by tubeboost
        </div>
    </div>
</body>
</html>`

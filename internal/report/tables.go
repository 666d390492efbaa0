package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/audi70r/logstat/internal/gitlog"
	"github.com/audi70r/logstat/internal/stats"
)

const (
	dateLayout    = "2006-01-02 15:04"
	maxPathWidth  = 60
	maxTitleWidth = 60
)

// Overview is the summary shown by the range command
type Overview struct {
	Source       string          `json:"source"        yaml:"source"`
	Head         string          `json:"head,omitempty" yaml:"head,omitempty"`
	DateRange    stats.DateRange `json:"date_range"    yaml:"date_range"`
	Commits      int             `json:"commits"       yaml:"commits"`
	MergeCommits int             `json:"merge_commits" yaml:"merge_commits"`
	Authors      int             `json:"authors"       yaml:"authors"`
	Files        int             `json:"files"         yaml:"files"`
	Additions    int             `json:"additions"     yaml:"additions"`
	Deletions    int             `json:"deletions"     yaml:"deletions"`
	Binary       int             `json:"binary_changes" yaml:"binary_changes"`
	Renames      int             `json:"renames"       yaml:"renames"`
	Skipped      int             `json:"skipped"       yaml:"skipped"`
}

// NewOverview collects the headline numbers of a summary
func NewOverview(source, head string, s *stats.Summary, skipped int) Overview {
	return Overview{
		Source:       source,
		Head:         head,
		DateRange:    s.DateRange,
		Commits:      s.TotalCommits,
		MergeCommits: s.MergeCommits,
		Authors:      s.TotalAuthors,
		Files:        len(s.Files),
		Additions:    s.TotalAdditions,
		Deletions:    s.TotalDeletions,
		Binary:       s.BinaryChanges,
		Renames:      s.Renames,
		Skipped:      skipped,
	}
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Format.Footer = text.FormatDefault
	return tbl
}

// Range prints the covered period and totals
func (r *Renderer) Range(o Overview) error {
	if done, err := r.encode(o); done {
		return err
	}

	r.title("Summary of " + o.Source)

	tbl := newTable()
	tbl.Style().Options.SeparateHeader = false
	if o.Head != "" {
		tbl.AppendRow(table.Row{"HEAD", o.Head})
	}
	if o.DateRange.IsZero() {
		tbl.AppendRow(table.Row{"Period", "no commits"})
	} else {
		now := r.now()
		tbl.AppendRow(table.Row{"First commit", fmt.Sprintf("%s (%s)",
			o.DateRange.Since.Format(dateLayout), humanize.RelTime(o.DateRange.Since, now, "ago", "from now"))})
		tbl.AppendRow(table.Row{"Last commit", fmt.Sprintf("%s (%s)",
			o.DateRange.Until.Format(dateLayout), humanize.RelTime(o.DateRange.Until, now, "ago", "from now"))})
		tbl.AppendRow(table.Row{"Span", spanDays(o.DateRange)})
	}
	tbl.AppendRow(table.Row{"Commits", humanize.Comma(int64(o.Commits))})
	tbl.AppendRow(table.Row{"Merge commits", humanize.Comma(int64(o.MergeCommits))})
	tbl.AppendRow(table.Row{"Authors", humanize.Comma(int64(o.Authors))})
	tbl.AppendRow(table.Row{"Files", humanize.Comma(int64(o.Files))})
	tbl.AppendRow(table.Row{"Lines", r.lines(o.Additions, o.Deletions)})
	tbl.AppendRow(table.Row{"Binary changes", humanize.Comma(int64(o.Binary))})
	tbl.AppendRow(table.Row{"Renames", humanize.Comma(int64(o.Renames))})
	if o.Skipped > 0 {
		tbl.AppendRow(table.Row{"Skipped", r.paint(color.FgYellow).Sprint(humanize.Comma(int64(o.Skipped)))})
	}

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}

// Files prints per-file statistics; total is the number of files before limiting
func (r *Renderer) Files(files []*stats.FileStats, total int) error {
	if done, err := r.encode(files); done {
		return err
	}

	r.title("Files")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "File", "Commits", "Authors", "+Lines", "-Lines", "Binary"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	var added, deleted int
	for i, f := range files {
		added += f.LinesAdded
		deleted += f.LinesDeleted
		tbl.AppendRow(table.Row{
			i + 1,
			truncatePath(f.Path, maxPathWidth),
			humanize.Comma(int64(f.Commits)),
			len(f.Authors),
			r.paint(color.FgGreen).Sprintf("+%s", humanize.Comma(int64(f.LinesAdded))),
			r.paint(color.FgRed).Sprintf("-%s", humanize.Comma(int64(f.LinesDeleted))),
			f.Binary,
		})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d of %d files", len(files), total), "", "",
		"+" + humanize.Comma(int64(added)), "-" + humanize.Comma(int64(deleted)), ""})

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}

// Authors prints the author leaderboard
func (r *Renderer) Authors(authors []*stats.AuthorStats) error {
	if done, err := r.encode(authors); done {
		return err
	}

	r.title("Authors")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "Author", "Email", "Commits", "+Lines", "-Lines", "Net", "Files", "Active"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
		{Number: 8, Align: text.AlignRight},
	})

	var commits int
	for i, a := range authors {
		commits += a.Commits
		tbl.AppendRow(table.Row{
			i + 1,
			a.Name,
			a.Email,
			humanize.Comma(int64(a.Commits)),
			r.paint(color.FgGreen).Sprintf("+%s", humanize.Comma(int64(a.Additions))),
			r.paint(color.FgRed).Sprintf("-%s", humanize.Comma(int64(a.Deletions))),
			r.net(a.Net()),
			len(a.FilesTouched),
			activeRange(a.FirstCommit, a.LastCommit),
		})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d authors", len(authors)), "", humanize.Comma(int64(commits))})

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}

// Commits prints one row per commit
func (r *Renderer) Commits(commits []*gitlog.Commit) error {
	if done, err := r.encode(commits); done {
		return err
	}

	r.title("Commits")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Hash", "Date", "Author", "Subject", "Files", "+Lines", "-Lines"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, c := range commits {
		var added, deleted int
		for _, fc := range c.Files {
			added += fc.Added()
			deleted += fc.Deleted()
		}

		hash := c.Hash
		if len(hash) > 7 {
			hash = hash[:7]
		}
		subject := c.Subject()
		if c.IsMerge() {
			subject = r.paint(color.FgMagenta).Sprint("[merge] ") + subject
		}

		tbl.AppendRow(table.Row{
			r.paint(color.FgYellow).Sprint(hash),
			c.Date.Format(dateLayout),
			c.AuthorName(),
			text.Trim(subject, maxTitleWidth),
			len(c.Files),
			r.paint(color.FgGreen).Sprintf("+%d", added),
			r.paint(color.FgRed).Sprintf("-%d", deleted),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", fmt.Sprintf("%d commits", len(commits))})

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}

// Hotspots prints risky files
func (r *Renderer) Hotspots(hotspots []*stats.Hotspot) error {
	if done, err := r.encode(hotspots); done {
		return err
	}

	r.title("Hotspots")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"#", "File", "Churn%", "Commits", "Authors", "Risk"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
	})

	for i, h := range hotspots {
		tbl.AppendRow(table.Row{
			i + 1,
			truncatePath(h.Path, maxPathWidth),
			fmt.Sprintf("%.1f", h.ChurnScore),
			h.Commits,
			h.AuthorCount,
			r.risk(h.RiskScore),
		})
	}
	tbl.AppendFooter(table.Row{"", fmt.Sprintf("%d hotspots", len(hotspots))})

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}

// Ownership prints directories with their leading owner
func (r *Renderer) Ownership(dirs []*stats.DirStats) error {
	if done, err := r.encode(dirs); done {
		return err
	}

	r.title("Ownership")

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Directory", "Changes", "Touches", "Authors", "Top owner", "Share", "Bus factor"})
	tbl.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, Align: text.AlignRight},
	})

	for _, d := range dirs {
		owner, share := "", ""
		if owners := d.Owners(); len(owners) > 0 {
			owner = owners[0].Name
			share = fmt.Sprintf("%.1f%%", owners[0].Share)
		}
		name := d.Path
		if name == "." {
			name = "(root files)"
		}
		tbl.AppendRow(table.Row{
			name,
			humanize.Comma(int64(d.Changes)),
			humanize.Comma(int64(d.Commits)),
			len(d.Authors),
			owner,
			share,
			d.BusFactor(),
		})
	}

	_, err := fmt.Fprintln(r.out, tbl.Render())
	return err
}

func (r *Renderer) lines(added, deleted int) string {
	return r.paint(color.FgGreen).Sprintf("+%s", humanize.Comma(int64(added))) + " " +
		r.paint(color.FgRed).Sprintf("-%s", humanize.Comma(int64(deleted)))
}

func (r *Renderer) net(n int) string {
	s := fmt.Sprintf("%+d", n)
	switch {
	case n > 0:
		return r.paint(color.FgGreen).Sprint(s)
	case n < 0:
		return r.paint(color.FgRed).Sprint(s)
	default:
		return s
	}
}

func (r *Renderer) risk(score float64) string {
	s := fmt.Sprintf("%.0f", score)
	switch {
	case score >= 70:
		return r.paint(color.FgRed).Sprint(s)
	case score >= 30:
		return r.paint(color.FgYellow).Sprint(s)
	default:
		return r.paint(color.FgGreen).Sprint(s)
	}
}

func spanDays(d stats.DateRange) string {
	days := int(d.Duration().Hours()/24) + 1
	if days == 1 {
		return "1 day"
	}
	return humanize.Comma(int64(days)) + " days"
}

func activeRange(first, last time.Time) string {
	if first.IsZero() {
		return ""
	}
	from, to := first.Format("2006-01-02"), last.Format("2006-01-02")
	if from == to {
		return from
	}
	return from + " .. " + to
}

// truncatePath keeps the tail of long paths
func truncatePath(path string, width int) string {
	runes := []rune(path)
	if len(runes) <= width {
		return path
	}
	return "..." + strings.TrimLeft(string(runes[len(runes)-width+3:]), "/")
}

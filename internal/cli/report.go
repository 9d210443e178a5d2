// Package cli renders scan results for the terminal. It consumes
// types.AnalysisResult; nothing here feeds back into the analyzers.
package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/minsu-kang/reclaim/internal/types"
	"github.com/minsu-kang/reclaim/internal/utils"
)

const defaultReportWidth = 100

var (
	colorPrimary = lipgloss.Color("81")
	colorSuccess = lipgloss.Color("78")
	colorWarning = lipgloss.Color("214")
	colorDanger  = lipgloss.Color("203")
	colorMuted   = lipgloss.Color("243")
)

type reportStyles struct {
	enabled bool
	title   lipgloss.Style
	section lipgloss.Style
	success lipgloss.Style
	warn    lipgloss.Style
	danger  lipgloss.Style
	muted   lipgloss.Style
}

func newReportStyles() reportStyles {
	return reportStyles{
		enabled: shouldColorize(),
		title:   lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		section: lipgloss.NewStyle().Foreground(colorPrimary).Bold(true),
		success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		warn:    lipgloss.NewStyle().Foreground(colorWarning).Bold(true),
		danger:  lipgloss.NewStyle().Foreground(colorDanger).Bold(true),
		muted:   lipgloss.NewStyle().Foreground(colorMuted),
	}
}

func (s reportStyles) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

func (s reportStyles) Title(text string) string   { return s.render(s.title, text) }
func (s reportStyles) Section(text string) string { return s.render(s.section, text) }
func (s reportStyles) Success(text string) string { return s.render(s.success, text) }
func (s reportStyles) Muted(text string) string   { return s.render(s.muted, text) }

func (s reportStyles) Action(a types.Action) string {
	label := strings.ToUpper(string(a))
	switch a {
	case types.ActionClean:
		return s.render(s.success, label)
	case types.ActionArchive:
		return s.render(s.warn, label)
	case types.ActionReview:
		return s.render(s.danger, label)
	default:
		return label
	}
}

func shouldColorize() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// FormatReport renders a plain-text report of the scan, grouped by
// location with the biggest findings first within each group.
func FormatReport(result *types.AnalysisResult) string {
	if result == nil {
		return "No results available.\n"
	}

	styles := newReportStyles()
	width := reportWidth()

	var b strings.Builder
	title := "Disk Insight Report"
	b.WriteString(styles.Title(title) + "\n")
	b.WriteString(styles.Muted(strings.Repeat("-", len(title))) + "\n\n")

	b.WriteString(fmt.Sprintf("Findings: %d    Reclaimable: %s\n",
		result.TotalInsightCount(),
		styles.Success(utils.FormatSize(result.TotalReclaimableBytes()))))

	if len(result.AllInsights) == 0 {
		b.WriteString("\n" + styles.Muted("Nothing worth reporting — disk looks tidy.") + "\n")
	} else {
		b.WriteString("\n")
		b.WriteString(renderGroups(styles, result.AllInsights, width))
	}

	if len(result.Errors) > 0 {
		b.WriteString("\n" + styles.Section("Degraded analyzers") + "\n")
		for _, e := range result.Errors {
			b.WriteString(styles.Muted("  - "+e) + "\n")
		}
	}

	return b.String()
}

func renderGroups(styles reportStyles, insights []types.Insight, width int) string {
	groups := types.GroupByLocation(insights)

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	// Largest groups first; name breaks ties so output is stable.
	sort.Slice(keys, func(i, j int) bool {
		si, sj := groupSize(groups[keys[i]]), groupSize(groups[keys[j]])
		if si != sj {
			return si > sj
		}
		return keys[i] < keys[j]
	})

	var b strings.Builder
	for _, key := range keys {
		group := groups[key]
		b.WriteString(styles.Section(key) + styles.Muted(fmt.Sprintf("  (%s)", utils.FormatSize(groupSize(group)))) + "\n")
		for _, in := range group {
			b.WriteString(renderInsight(styles, in, width))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

func renderInsight(styles reportStyles, in types.Insight, width int) string {
	line := fmt.Sprintf("  %-7s  %s", styles.Action(in.Action), truncateText(in.Description, width-12))
	out := line + "\n"
	if in.CleanupCommand != "" {
		out += styles.Muted("           $ "+in.CleanupCommand) + "\n"
	}
	return out
}

func groupSize(insights []types.Insight) int64 {
	var total int64
	for _, in := range insights {
		total += in.SizeInBytes
	}
	return total
}

// truncateText shortens to max runes, never splitting a multibyte
// character.
func truncateText(text string, max int) string {
	if max <= 3 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-3]) + "..."
}

func reportWidth() int {
	if w := termWidth(); w > 0 {
		return w
	}
	return defaultReportWidth
}

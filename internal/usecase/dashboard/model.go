// Package dashboard is the terminal view over live KPI, trend and defect data.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fnoldesk/internal/bootstrap/logging"
	"fnoldesk/internal/domain/claims"
	"fnoldesk/internal/domain/quality"
)

const (
	defaultRefreshInterval = 10 * time.Second
	maxBarWidth            = 30
)

type tab int

const (
	tabKPIs tab = iota
	tabTrends
	tabDefects
	tabCount
)

func (t tab) String() string {
	switch t {
	case tabKPIs:
		return "KPIs"
	case tabTrends:
		return "Trends"
	case tabDefects:
		return "Defects"
	default:
		return "?"
	}
}

// Source is the read side of fnol.Service the dashboard polls.
type Source interface {
	KPIMetrics(ctx context.Context) (claims.KPIMetrics, error)
	TrendAnalysis(ctx context.Context) (claims.TrendAnalysis, error)
	ListDefects(ctx context.Context) ([]quality.Defect, error)
}

type Options struct {
	RefreshInterval time.Duration
}

type model struct {
	ctx             context.Context
	source          Source
	refreshInterval time.Duration

	active    tab
	kpis      claims.KPIMetrics
	trends    claims.TrendAnalysis
	defects   []quality.Defect
	loaded    bool
	status    string
	updatedAt time.Time
}

type snapshotLoadedMsg struct {
	kpis    claims.KPIMetrics
	trends  claims.TrendAnalysis
	defects []quality.Defect
	at      time.Time
	err     error
}

type tickMsg struct{}

func NewModel(ctx context.Context, source Source, options Options) tea.Model {
	interval := options.RefreshInterval
	if interval <= 0 {
		interval = defaultRefreshInterval
	}
	return &model{
		ctx:             ctx,
		source:          source,
		refreshInterval: interval,
		status:          "loading",
	}
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(m.loadCmd(), m.tickCmd())
}

func (m *model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := message.(type) {
	case tickMsg:
		return m, tea.Batch(m.loadCmd(), m.tickCmd())
	case snapshotLoadedMsg:
		if msg.err != nil {
			m.status = "refresh failed: " + msg.err.Error()
			logging.Warn(logging.WithAttrs(m.ctx, slog.String("component", "dashboard")), "dashboard refresh failed", slog.String("err", msg.err.Error()))
			return m, nil
		}
		m.kpis = msg.kpis
		m.trends = msg.trends
		m.defects = msg.defects
		m.loaded = true
		m.updatedAt = msg.at
		m.status = fmt.Sprintf("refreshed, %d claims", msg.kpis.TotalClaims)
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "r":
			m.status = "refreshing"
			return m, m.loadCmd()
		case "tab", "right", "l":
			m.active = (m.active + 1) % tabCount
			return m, nil
		case "shift+tab", "left", "h":
			m.active = (m.active + tabCount - 1) % tabCount
			return m, nil
		case "1":
			m.active = tabKPIs
		case "2":
			m.active = tabTrends
		case "3":
			m.active = tabDefects
		}
	}
	return m, nil
}

func (m *model) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true)
	sectionStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("63"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("62")).Padding(0, 1)
	tabStyle := lipgloss.NewStyle().Padding(0, 1)

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("FNOL Dashboard"))
	builder.WriteString("\n")

	tabs := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		label := fmt.Sprintf("%d %s", int(t)+1, t)
		if t == m.active {
			tabs = append(tabs, activeStyle.Render(label))
		} else {
			tabs = append(tabs, tabStyle.Render(label))
		}
	}
	builder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
	builder.WriteString("\n\n")

	if !m.loaded {
		builder.WriteString(dimStyle.Render("- no data yet"))
		builder.WriteString("\n\n")
	} else {
		builder.WriteString(sectionStyle.Render(m.active.String()))
		builder.WriteString("\n")
		switch m.active {
		case tabKPIs:
			builder.WriteString(renderKPIs(m.kpis))
		case tabTrends:
			builder.WriteString(renderTrends(m.trends))
		case tabDefects:
			builder.WriteString(renderDefects(m.defects))
		}
		builder.WriteString("\n")
	}

	builder.WriteString(sectionStyle.Render("Status"))
	builder.WriteString("\n")
	status := m.status
	if !m.updatedAt.IsZero() {
		status += " at " + m.updatedAt.Format("15:04:05")
	}
	builder.WriteString("- " + status)
	builder.WriteString("\n\n")
	builder.WriteString(dimStyle.Render(fmt.Sprintf("Keys: tab/1-3 switch  r refresh  q quit  (auto refresh %s)", m.refreshInterval)))
	return builder.String()
}

func renderKPIs(kpis claims.KPIMetrics) string {
	rows := []struct {
		label string
		value string
	}{
		{"Avg resolution time", fmt.Sprintf("%.1f h", kpis.AvgResolutionTime)},
		{"Auto-route success", fmt.Sprintf("%.1f%%", kpis.AutoRouteSuccessRate)},
		{"Escalation rate", fmt.Sprintf("%.1f%%", kpis.EscalationRate)},
		{"Total claims", fmt.Sprintf("%d", kpis.TotalClaims)},
		{"Open", fmt.Sprintf("%d", kpis.OpenClaims)},
		{"Closed", fmt.Sprintf("%d", kpis.ClosedClaims)},
		{"Escalated", fmt.Sprintf("%d", kpis.EscalatedClaims)},
	}
	var builder strings.Builder
	for _, row := range rows {
		builder.WriteString(fmt.Sprintf("%-20s %s\n", row.label, row.value))
	}
	return builder.String()
}

type bar struct {
	label string
	count int
}

func renderTrends(trends claims.TrendAnalysis) string {
	var builder strings.Builder

	groups := []struct {
		title string
		bars  []bar
	}{
		{"By status", statusBars(trends.ByStatus)},
		{"By claim type", typeBars(trends.ByClaimType)},
		{"By region", regionBars(trends.ByRegion)},
		{"By day of week", dayBars(trends.ByDayOfWeek)},
	}
	for _, group := range groups {
		builder.WriteString(group.title + "\n")
		builder.WriteString(renderBars(group.bars))
	}
	builder.WriteString(fmt.Sprintf("Timeline: %d days", len(trends.Timeline)))
	if n := len(trends.Timeline); n > 0 {
		builder.WriteString(fmt.Sprintf(" (%s .. %s)", trends.Timeline[0].Date, trends.Timeline[n-1].Date))
	}
	builder.WriteString("\n")
	return builder.String()
}

func statusBars(items []claims.StatusCount) []bar {
	out := make([]bar, 0, len(items))
	for _, item := range items {
		out = append(out, bar{label: string(item.Status), count: item.Count})
	}
	return out
}

func typeBars(items []claims.TypeCount) []bar {
	out := make([]bar, 0, len(items))
	for _, item := range items {
		out = append(out, bar{label: string(item.Type), count: item.Count})
	}
	return out
}

func regionBars(items []claims.RegionCount) []bar {
	out := make([]bar, 0, len(items))
	for _, item := range items {
		out = append(out, bar{label: string(item.Region), count: item.Count})
	}
	return out
}

func dayBars(items []claims.DayCount) []bar {
	out := make([]bar, 0, len(items))
	for _, item := range items {
		out = append(out, bar{label: item.Day, count: item.Count})
	}
	return out
}

// renderBars scales bars so the largest count spans maxBarWidth cells.
func renderBars(bars []bar) string {
	if len(bars) == 0 {
		return "  - none\n"
	}
	peak := 0
	for _, b := range bars {
		if b.count > peak {
			peak = b.count
		}
	}
	var builder strings.Builder
	for _, b := range bars {
		width := 0
		if peak > 0 {
			width = b.count * maxBarWidth / peak
		}
		if width == 0 && b.count > 0 {
			width = 1
		}
		builder.WriteString(fmt.Sprintf("  %-14s %s %d\n", b.label, strings.Repeat("█", width), b.count))
	}
	return builder.String()
}

func renderDefects(items []quality.Defect) string {
	if len(items) == 0 {
		return "- no defects\n"
	}
	var builder strings.Builder
	for _, defect := range items {
		assignee := "-"
		if defect.AssignedTo != nil && *defect.AssignedTo != "" {
			assignee = *defect.AssignedTo
		}
		builder.WriteString(fmt.Sprintf("%s [%s/%s] %s (assignee=%s)\n", defect.DefectID, defect.Severity, defect.Status, defect.Title, assignee))
	}
	return builder.String()
}

func (m *model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}

func (m *model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		kpis, err := m.source.KPIMetrics(m.ctx)
		if err != nil {
			return snapshotLoadedMsg{err: err}
		}
		trends, err := m.source.TrendAnalysis(m.ctx)
		if err != nil {
			return snapshotLoadedMsg{err: err}
		}
		defects, err := m.source.ListDefects(m.ctx)
		if err != nil {
			return snapshotLoadedMsg{err: err}
		}
		return snapshotLoadedMsg{kpis: kpis, trends: trends, defects: defects, at: time.Now()}
	}
}

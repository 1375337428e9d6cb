package tui

import (
	"fmt"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

const statsChartHeight = 8

// buildChart redraws the active/completed bar chart from the last counts the
// controller rendered.
func (a *App) buildChart() {
	chartWidth := a.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}

	a.chart = barchart.New(chartWidth, statsChartHeight)
	a.chart.PushAll([]barchart.BarData{
		{
			Label:  "Active",
			Values: []barchart.BarValue{{Name: "active", Value: float64(a.active), Style: activeBarStyle}},
		},
		{
			Label:  "Completed",
			Values: []barchart.BarValue{{Name: "completed", Value: float64(a.completed), Style: completedBarStyle}},
		},
	})
	a.chart.Draw()
}

func (a App) renderStats(w int) string {
	total := a.active + a.completed
	pct := 0.0
	if total > 0 {
		pct = float64(a.completed) / float64(total) * 100
	}

	legend := lipgloss.JoinHorizontal(lipgloss.Bottom,
		activeBarStyle.Render("● "), fmt.Sprintf("active %d", a.active), "   ",
		completedBarStyle.Render("● "), fmt.Sprintf("completed %d", a.completed), "   ",
		mutedStyle.Render(fmt.Sprintf("%.0f%% done", pct)),
	)

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render("Stats"), "", a.chart.View(), "", legend,
		),
	)
}

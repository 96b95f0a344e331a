// Package view renders weather snapshots for the terminal
package view

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"

	"github.com/NikitaCOEUR/skycast/internal/weather"
)

// NoData is printed when there is no snapshot to show
const NoData = "no data"

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("12")).
			Padding(0, 1)

	cityStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))
)

// RenderSnapshot draws the weather panel, or NoData for a nil snapshot
func RenderSnapshot(s *weather.Snapshot) string {
	if s == nil {
		return NoData
	}

	rows := [][2]string{
		{"Temperature", fmt.Sprintf("%s°C / %s°F", num(s.TemperatureCelsius), num(s.TemperatureFahrenheit))},
		{"Condition", s.Condition},
		{"Humidity", fmt.Sprintf("%s%%", num(s.Humidity))},
		{"Wind Speed", fmt.Sprintf("%s kph / %s mph", num(s.WindSpeedKph), num(s.WindSpeedMph))},
		{"Feels Like", fmt.Sprintf("%s°C / %s°F", num(s.FeelsLikeCelsius), num(s.FeelsLikeFahrenheit))},
		{"Local Time", s.LocalTime},
	}

	var b strings.Builder
	b.WriteString(cityStyle.Render(s.City))
	for _, row := range rows {
		b.WriteString("\n" + keyStyle.Render(row[0]+": ") + valueStyle.Render(row[1]))
	}
	return panelStyle.Render(b.String())
}

// num formats a reading without a trailing ".0"
func num(f float64) string {
	return fmt.Sprintf("%g", f)
}

// RenderTemplate executes a text/template against the snapshot, with
// sprig's function map available. A nil snapshot renders NoData.
func RenderTemplate(tmpl string, s *weather.Snapshot) (string, error) {
	if s == nil {
		return NoData, nil
	}

	t, err := template.New("current").Funcs(sprig.TxtFuncMap()).Parse(tmpl)
	if err != nil {
		return "", fmt.Errorf("failed to parse format: %w", err)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, s); err != nil {
		return "", fmt.Errorf("failed to render format: %w", err)
	}
	return buf.String(), nil
}

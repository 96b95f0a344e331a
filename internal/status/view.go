package status

import (
	"fmt"
	"strings"

	"code.cloudfoundry.org/bytefmt"
	"github.com/charmbracelet/lipgloss"
)

var (
	// Colors and styles
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	subtleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Render renders the status data to a string
func Render(data *Data) string {
	var b strings.Builder

	b.WriteString(renderHeader(data))
	b.WriteString("\n")

	b.WriteString(renderConfigInfo(data))
	b.WriteString("\n")

	b.WriteString(renderCacheInfo(data))

	return b.String()
}

func renderHeader(data *Data) string {
	return titleStyle.Render("📦 Version: ") + valueStyle.Render(data.Version)
}

func renderConfigInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("📝 Configuration:") + "\n")

	if data.ConfigExists {
		b.WriteString("   " + keyStyle.Render("File: ") + valueStyle.Render(data.ConfigPath) + " " + successStyle.Render("✓") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("File: ") + subtleStyle.Render(data.ConfigPath+" (not found, using defaults)") + "\n")
		b.WriteString("   " + warningStyle.Render("Run 'skycast init' to create one") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("API: ") + valueStyle.Render(data.APIBaseURL) + "\n")
	if data.APIKeySet {
		b.WriteString("   " + keyStyle.Render("API key: ") + successStyle.Render("✓ Set") + "\n")
	} else {
		b.WriteString("   " + keyStyle.Render("API key: ") + errorStyle.Render("✗ Missing") + "\n")
	}

	b.WriteString("   " + keyStyle.Render("Autocomplete threshold: ") + valueStyle.Render(fmt.Sprintf("%d", data.Threshold)) + "\n")
	b.WriteString("   " + keyStyle.Render("Visible suggestions: ") + valueStyle.Render(fmt.Sprintf("%d", data.MaxVisible)))

	return b.String()
}

func renderCacheInfo(data *Data) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("💾 Cache:") + "\n")

	if data.CacheDisabled {
		b.WriteString("   " + subtleStyle.Render("Disabled"))
		return b.String()
	}

	b.WriteString("   " + keyStyle.Render("Path: ") + subtleStyle.Render(data.CachePath) + "\n")
	b.WriteString("   " + keyStyle.Render("Size: ") + valueStyle.Render(formatBytes(data.CacheFileSize)) + "\n")
	b.WriteString("   " + keyStyle.Render("Total entries: ") + valueStyle.Render(fmt.Sprintf("%d", data.CacheTotalEntries)) + "\n")
	if data.CacheExpiredEntries > 0 {
		b.WriteString("   " + keyStyle.Render("Expired entries: ") + warningStyle.Render(fmt.Sprintf("%d", data.CacheExpiredEntries)) + "\n")
	}
	b.WriteString("   " + keyStyle.Render("Search TTL: ") + valueStyle.Render(data.SearchTTL.String()) + "\n")
	b.WriteString("   " + keyStyle.Render("Current TTL: ") + valueStyle.Render(data.CurrentTTL.String()))

	return b.String()
}

func formatBytes(bytes int64) string {
	if bytes <= 0 {
		return "0B"
	}
	return bytefmt.ByteSize(uint64(bytes))
}

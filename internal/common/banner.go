package common

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner
func PrintBanner(serviceName, environment, baseURL, logFile string) {
	b := banner.New().
		SetStyle(banner.StyleDouble).
		SetBorderColor(banner.ColorPurple).
		SetTextColor(banner.ColorWhite).
		SetBold(true).
		SetWidth(80)

	fmt.Printf("\n")

	b.PrintTopLine()
	b.PrintCenteredText(strings.ToUpper(serviceName))
	b.PrintCenteredText("Jira Ticket Viewer")
	b.PrintSeparatorLine()

	b.PrintKeyValue("Version", GetVersion(), 15)
	b.PrintKeyValue("Build", GetBuild(), 15)
	b.PrintKeyValue("Environment", environment, 15)
	b.PrintKeyValue("Jira", baseURL, 15)
	b.PrintBottomLine()

	if logFile != "" {
		pattern := strings.Replace(logFile, ".log", ".{YYYY-MM-DDTHH-MM-SS}.log", 1)
		fmt.Printf("   • Log File: %s\n", pattern)
	}
	fmt.Printf("\n")
}

// Colorize wraps message in color when enabled
func Colorize(enabled bool, color, message string) string {
	if !enabled {
		return message
	}
	return color + message + banner.ColorReset
}

var colorEnabled = true

// SetColorEnabled turns ANSI colors on or off for the Print* helpers
func SetColorEnabled(enabled bool) {
	colorEnabled = enabled
}

func printColorized(w io.Writer, color, message string) {
	fmt.Fprintln(w, Colorize(colorEnabled, color, message))
}

// PrintSuccess prints a success message in green
func PrintSuccess(message string) {
	printColorized(os.Stdout, banner.ColorGreen, fmt.Sprintf("✓ %s", message))
}

// PrintError prints an error message in red on stderr
func PrintError(message string) {
	printColorized(os.Stderr, banner.ColorRed, fmt.Sprintf("✗ %s", message))
}

// PrintWarning prints a warning message in yellow on stderr
func PrintWarning(message string) {
	printColorized(os.Stderr, banner.ColorYellow, fmt.Sprintf("⚠ %s", message))
}

// PrintInfo prints an info message in cyan
func PrintInfo(message string) {
	printColorized(os.Stdout, banner.ColorCyan, fmt.Sprintf("ℹ %s", message))
}

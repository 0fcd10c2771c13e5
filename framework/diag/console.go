package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Semantic colors per level, light/dark terminal aware.
var (
	infoColor    = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"}
	successColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	warningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	errorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
)

var levelStyles = map[Level]lipgloss.Style{
	LevelInfo:    lipgloss.NewStyle().Foreground(infoColor),
	LevelSuccess: lipgloss.NewStyle().Foreground(successColor),
	LevelWarning: lipgloss.NewStyle().Foreground(warningColor),
	LevelError:   lipgloss.NewStyle().Foreground(errorColor).Bold(true),
}

// Console is the default Sink: one line per diagnostic, level tag colored by
// severity.
type Console struct {
	Out io.Writer
}

// NewConsole returns a Console writing to stdout.
func NewConsole() *Console {
	return &Console{Out: os.Stdout}
}

func (c *Console) Log(level Level, format string, args ...any) {
	style, ok := levelStyles[level]
	if !ok {
		style = levelStyles[LevelInfo]
	}
	tag := style.Render(fmt.Sprintf("%-5s", level))
	fmt.Fprintf(c.Out, "%s %s\n", tag, fmt.Sprintf(format, args...))
}

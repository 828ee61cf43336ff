package cli

import (
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

const (
	ansiReset = "\x1b[0m"
	ansiRed   = "\x1b[31m"
	ansiGreen = "\x1b[32m"
	ansiCyan  = "\x1b[36m"
)

// useColor reports whether ANSI colors should be written to w.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR and TTY detection.
func useColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}

	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// colorizeDiff paints removed lines red, added lines green and hunk headers cyan.
func colorizeDiff(diff string) string {
	lines := strings.SplitAfter(diff, "\n")

	var b strings.Builder
	b.Grow(len(diff))
	for _, line := range lines {
		color := ""
		switch {
		case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		case strings.HasPrefix(line, "@@"):
			color = ansiCyan
		case strings.HasPrefix(line, "-"):
			color = ansiRed
		case strings.HasPrefix(line, "+"):
			color = ansiGreen
		}

		if color == "" {
			b.WriteString(line)
			continue
		}

		body, nl := strings.CutSuffix(line, "\n")
		b.WriteString(color + body + ansiReset)
		if nl {
			b.WriteString("\n")
		}
	}

	return b.String()
}

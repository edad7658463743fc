// Package console prints the scanner's user-facing messages.
package console

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func Success(format string, args ...any) {
	fmt.Println(successStyle.Render("✅ " + fmt.Sprintf(format, args...)))
}

func Warning(format string, args ...any) {
	fmt.Println(warnStyle.Render("⚠️ " + fmt.Sprintf(format, args...)))
}

func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

func BulletList(title string, items []string) {
	fmt.Println(successStyle.Render(title))
	for i, item := range items {
		fmt.Printf("  %d. %s\n", i+1, item)
	}
}

// Interactive reports whether stdin is a terminal; prompts are skipped when
// it isn't.
func Interactive() bool {
	fd := os.Stdin.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Prompt reads one line from stdin, returning def when not interactive or on
// empty input.
func Prompt(prompt, def string) string {
	if !Interactive() {
		return def
	}
	fmt.Print(prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return def
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return def
	}
	return line
}

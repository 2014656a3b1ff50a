package errors

import (
	stderrors "errors"
	"fmt"
	"io"
	"strings"
)

// ANSI color codes for terminal output.
const (
	colorReset = "\033[0m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorWhite = "\033[37m"
	colorGray  = "\033[90m"
	colorBold  = "\033[1m"
)

// colorEnabled controls whether ANSI colors are used.
var colorEnabled = true

// DisableColors disables ANSI color output.
func DisableColors() {
	colorEnabled = false
}

// EnableColors enables ANSI color output.
func EnableColors() {
	colorEnabled = true
}

// color wraps text in ANSI color codes if colors are enabled.
func color(code, text string) string {
	if !colorEnabled {
		return text
	}
	return code + text + colorReset
}

func red(text string) string   { return color(colorRed, text) }
func cyan(text string) string  { return color(colorCyan, text) }
func white(text string) string { return color(colorWhite, text) }
func gray(text string) string  { return color(colorGray, text) }
func bold(text string) string  { return color(colorBold, text) }

// Format returns a multi-line error report for terminal display.
func (e *ForgeError) Format() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(red(bold("ERROR ")))
	b.WriteString(white(bold(fmt.Sprintf("%d: ", e.Code))))
	b.WriteString(white(e.Message))
	b.WriteString("\n\n")

	if e.Subject != "" {
		b.WriteString("  ")
		b.WriteString(gray("subject: "))
		b.WriteString(cyan(e.Subject))
		b.WriteString("\n\n")
	}

	if e.Detail != "" {
		for _, line := range wrapText(e.Detail, 70) {
			b.WriteString("  ")
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if e.Wrapped != nil {
		b.WriteString("  ")
		b.WriteString(gray("cause: "))
		b.WriteString(e.Wrapped.Error())
		b.WriteString("\n\n")
	}

	if e.Suggestion != "" {
		b.WriteString("  ")
		b.WriteString(cyan("Hint: "))
		b.WriteString(e.Suggestion)
		b.WriteString("\n\n")
	}

	return b.String()
}

// FormatCompact returns a compact single-line error format.
func (e *ForgeError) FormatCompact() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d: %s", e.Code, e.Message)
	if e.Subject != "" {
		b.WriteString(" [")
		b.WriteString(e.Subject)
		b.WriteString("]")
	}
	return b.String()
}

// FormatJSON returns the error as a JSON object.
func (e *ForgeError) FormatJSON() string {
	var b strings.Builder
	b.WriteString("{")
	b.WriteString(fmt.Sprintf(`"code":%d,`, e.Code))
	b.WriteString(fmt.Sprintf(`"category":%q,`, e.Category))
	b.WriteString(fmt.Sprintf(`"message":%q`, e.Message))

	if e.Subject != "" {
		b.WriteString(fmt.Sprintf(`,"subject":%q`, e.Subject))
	}
	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(`,"detail":%q`, e.Detail))
	}
	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf(`,"suggestion":%q`, e.Suggestion))
	}

	b.WriteString("}")
	return b.String()
}

// wrapText wraps text to the specified width.
func wrapText(text string, width int) []string {
	if text == "" {
		return nil
	}
	if len(text) <= width {
		return []string{text}
	}

	var lines []string
	words := strings.Fields(text)
	var current strings.Builder

	for _, word := range words {
		if current.Len()+len(word)+1 > width {
			if current.Len() > 0 {
				lines = append(lines, current.String())
				current.Reset()
			}
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(word)
	}

	if current.Len() > 0 {
		lines = append(lines, current.String())
	}

	return lines
}

// PrintError writes a formatted error to w.
func PrintError(w io.Writer, err error) {
	var fe *ForgeError
	if stderrors.As(err, &fe) {
		fmt.Fprint(w, fe.Format())
		return
	}
	fmt.Fprintf(w, "\n%s %s\n\n", red(bold("ERROR:")), err.Error())
}

// Compact returns FormatCompact for forge errors and Error otherwise.
func Compact(err error) string {
	var fe *ForgeError
	if stderrors.As(err, &fe) {
		return fe.FormatCompact()
	}
	return err.Error()
}

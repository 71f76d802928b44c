package chat

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"termagent/internal/styles"
)

const separatorWidth = 50

// WriteResult renders r as a delimited block: a separator, a RESULT: title,
// another separator, one "  key: value" line per entry and a closing
// separator.
func WriteResult(w io.Writer, r *Result, st styles.Styles) error {
	sep := st.Separator.Render(strings.Repeat("=", separatorWidth))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(sep + "\n")
	b.WriteString(st.Label.Render("RESULT:") + "\n")
	b.WriteString(sep + "\n")
	r.Each(func(key string, value any) {
		text := fmt.Sprint(value)
		fmt.Fprintf(&b, "  %s: %s\n", st.Label.Render(key), valueStyle(st, key, text).Render(text))
	})
	b.WriteString(sep + "\n\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write result: %w", err)
	}
	return nil
}

func valueStyle(st styles.Styles, key, text string) lipgloss.Style {
	switch {
	case key == KeyStatus && text == StatusSuccess:
		return st.Success
	case key == KeyStatus && text == StatusError, key == KeyError:
		return st.Error
	default:
		return st.Value
	}
}

// writeWelcome prints the startup banner listing the exit keywords.
func writeWelcome(w io.Writer, title string, keywords []string, st styles.Styles) error {
	sep := st.Separator.Render(strings.Repeat("=", separatorWidth))

	var b strings.Builder
	b.WriteString("\n" + sep + "\n")
	b.WriteString("  " + st.Gradient(title) + "\n")
	b.WriteString(sep + "\n")
	b.WriteString("Type your request and press Enter.\n")
	if len(keywords) > 0 {
		b.WriteString("Type " + quoteList(keywords) + " to quit.\n")
	}
	b.WriteString(sep + "\n\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// quoteList renders ["a" "b" "c"] as 'a', 'b', or 'c'.
func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + it + "'"
	}
	switch len(quoted) {
	case 1:
		return quoted[0]
	case 2:
		return quoted[0] + " or " + quoted[1]
	default:
		return strings.Join(quoted[:len(quoted)-1], ", ") + ", or " + quoted[len(quoted)-1]
	}
}

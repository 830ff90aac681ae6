package telegram

import (
	"fmt"
	"strings"
)

// Telegram's legacy Markdown only treats these as entity markers.
var markdownEscaper = strings.NewReplacer(
	"_", "\\_",
	"*", "\\*",
	"`", "\\`",
	"[", "\\[",
)

// Inside an entity only the closing marker is special, so titles just lose it.
var boldTitleCleaner = strings.NewReplacer("*", "")

// EscapeMarkdown escapes s for tgbotapi.ModeMarkdown.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatAlertMessage renders an alert as a Markdown Telegram message.
func FormatAlertMessage(title, body string) string {
	var builder strings.Builder

	emoji := "🔔"
	switch {
	case strings.Contains(body, "BUY"):
		emoji = "📈"
	case strings.Contains(body, "SELL"):
		emoji = "📉"
	}

	builder.WriteString(fmt.Sprintf("%s *%s*\n\n", emoji, boldTitleCleaner.Replace(title)))
	builder.WriteString(EscapeMarkdown(body))
	return builder.String()
}

package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/germanamz/grok-launcher/cmd/grok-launcher/internal/styles"
	"github.com/germanamz/grok-launcher/pkg/extension"
	"github.com/germanamz/grok-launcher/pkg/launcher"
	"github.com/mattn/go-runewidth"
)

// renderItems formats result items for the terminal. Titles wider than width
// are truncated; width <= 0 disables truncation.
func renderItems(items []launcher.Item, width int) string {
	var sb strings.Builder

	for i, it := range items {
		if i > 0 {
			sb.WriteString("\n")
		}

		title := styles.Bullet + it.Name
		if width > 0 && runewidth.StringWidth(title) > width {
			title = runewidth.Truncate(title, width, "…")
		}

		sb.WriteString(titleStyle(it).Render(title))
		sb.WriteString("\n")

		if it.Description != "" {
			sb.WriteString(styles.DescriptionStyle.Render(it.Description))
			sb.WriteString("\n")
		}

		if it.Action.Type == launcher.ActionCopyToClipboard && it.Name == extension.TitleResponse {
			sb.WriteString(styles.HintStyle.Render("↵ copy to clipboard"))
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func titleStyle(it launcher.Item) lipgloss.Style {
	switch {
	case it.Action.IsNoop():
		return styles.PlaceholderTitleStyle
	case it.Name == extension.TitleResponse:
		return styles.ResponseTitleStyle
	default:
		return styles.ErrorTitleStyle
	}
}

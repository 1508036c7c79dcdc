package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/firefly-engineering/firefly-forage/packages/scon/internal/registry"
)

var (
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	imageStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	historyRule = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// RenderContainers formats every container with its base image and full
// history, oldest entry first.
func RenderContainers(reg registry.Registry) string {
	var sb strings.Builder

	if len(reg) == 0 {
		sb.WriteString("No stateful containers found.\n")
		sb.WriteString("Create one with: scon create <name> <image>\n")
		return sb.String()
	}

	for i, c := range reg {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(nameStyle.Render(c.Name) + "\n")
		sb.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("Image:"), c.Image))

		if len(c.History) == 0 {
			sb.WriteString(fmt.Sprintf("  %s %s\n", labelStyle.Render("History:"), "(empty)"))
			continue
		}

		sb.WriteString(fmt.Sprintf("  %s\n", labelStyle.Render("History:")))
		for _, e := range c.History {
			ts := "-"
			if !e.Timestamp.IsZero() {
				ts = e.Timestamp.UTC().Format(time.RFC3339)
			}
			line := fmt.Sprintf("    %s %s  %s  %s",
				historyRule.Render("-"),
				ts,
				registry.ShortID(e.ContainerID),
				imageStyle.Render(e.Image),
			)
			if e.Tagged {
				line += " " + labelStyle.Render("(tagged)")
			}
			sb.WriteString(line + "\n")
		}
	}

	return sb.String()
}

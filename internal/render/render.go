package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/aurastudio/aura/internal/aura"
	"github.com/aurastudio/aura/internal/state"
)

// statusPriority defines the display order for render jobs.
// Lower values appear first (higher attention).
var statusPriority = map[string]int{
	"failed":    0,
	"rendering": 1,
	"queued":    2,
	"cancelled": 3,
	"completed": 4,
}

// StatusRank returns the display priority for a job status.
func StatusRank(status string) int {
	if rank, ok := statusPriority[strings.ToLower(strings.TrimSpace(status))]; ok {
		return rank
	}
	return 999
}

// Renderer formats backend snapshots for terminal output. When colored is
// false every style degrades to plain text, which is what piped output gets.
type Renderer struct {
	styles  Styles
	colored bool
}

// NewRenderer builds a renderer for the theme.
func NewRenderer(theme Theme, colored bool) *Renderer {
	return &Renderer{styles: theme.Styles(), colored: colored}
}

// StatusLine renders one line summarizing the snapshot.
func (r *Renderer) StatusLine(snap state.Snapshot) string {
	ts := snap.LastUpdated.Format("15:04:05")
	if snap.LastUpdated.IsZero() {
		ts = "--:--:--"
	}

	if snap.LastError != nil {
		if snap.IsOffline() {
			return fmt.Sprintf("%s %s %s", ts,
				r.paint(r.styles.DangerText, "offline"),
				aura.UserMessage(snap.LastError))
		}
		return fmt.Sprintf("%s %s %s", ts,
			r.paint(r.styles.WarningText, "degraded"),
			aura.UserMessage(snap.LastError))
	}

	if !snap.HasStatus {
		return fmt.Sprintf("%s %s", ts, r.paint(r.styles.MutedText, "waiting for first poll"))
	}

	rendering := 0
	for _, job := range snap.Jobs {
		if strings.EqualFold(job.Status, "rendering") {
			rendering++
		}
	}

	parts := []string{
		fmt.Sprintf("backend %s", snap.Status.Version),
		fmt.Sprintf("%d projects", len(snap.Projects)),
		fmt.Sprintf("%d jobs", len(snap.Jobs)),
	}
	if rendering > 0 {
		parts = append(parts, r.paint(r.styles.AccentText, fmt.Sprintf("%d rendering", rendering)))
	}
	return fmt.Sprintf("%s %s %s", ts,
		r.paint(r.styles.SuccessText, "ok"),
		strings.Join(parts, " · "))
}

// JobStatus renders a job status in its theme color.
func (r *Renderer) JobStatus(status string) string {
	return r.paint(r.styles.StatusStyle(strings.ToLower(strings.TrimSpace(status))), status)
}

// ProgressBar renders job progress as a fixed-width bar plus percentage.
func ProgressBar(percent float64, width int) string {
	if width <= 0 {
		width = 10
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	filled := int(percent / 100 * float64(width))
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return fmt.Sprintf("%s %3.0f%%", bar, percent)
}

func (r *Renderer) paint(style lipgloss.Style, text string) string {
	if !r.colored {
		return text
	}
	return style.Render(text)
}

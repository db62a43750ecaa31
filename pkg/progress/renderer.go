package progress

import (
	"fmt"

	"github.com/fatih/color"
)

type renderer interface {
	render(Status, string) string
	final(message string, failed bool) string
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type spinnerRenderer struct {
	noColor bool
	frame   int
}

func (r *spinnerRenderer) render(status Status, message string) string {
	r.frame = (r.frame + 1) % len(spinnerFrames)

	spin := color.New(color.FgCyan)
	if r.noColor {
		spin.DisableColor()
	}

	line := fmt.Sprintf("%s %s", spin.Sprint(spinnerFrames[r.frame]), message)
	if status.Phase != "" {
		line += fmt.Sprintf(" [%s]", status.Phase)
	}
	if status.ItemsProcessed > 0 {
		line += fmt.Sprintf(" (%d files)", status.ItemsProcessed)
	}

	return line
}

func (r *spinnerRenderer) final(message string, failed bool) string {
	c := color.New(color.FgGreen)
	if failed {
		c = color.New(color.FgRed)
	}
	if r.noColor {
		c.DisableColor()
	}

	return c.Sprint(message)
}

type simpleRenderer struct{}

func (r *simpleRenderer) render(status Status, message string) string {
	if status.Phase != "" {
		return fmt.Sprintf("%s [%s]", message, status.Phase)
	}
	return message
}

func (r *simpleRenderer) final(message string, failed bool) string {
	return message
}

package output

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/sonemaro/dupescan/pkg/dedup"
)

func (f *formatter) formatText(result *dedup.DuplicateFiles) string {
	if len(result.Groups) == 0 {
		return "No duplicate files found."
	}

	heading := color.New(color.FgGreen, color.Bold)
	groupLine := color.New(color.FgCyan)
	if !f.config.WithColors {
		heading.DisableColor()
		groupLine.DisableColor()
	}

	var b strings.Builder

	if f.config.SizeOnly {
		b.WriteString(heading.Sprint("Found duplicate files (by size only):"))
	} else {
		b.WriteString(heading.Sprint("Found duplicate files:"))
	}
	b.WriteString("\n")

	for _, group := range result.Groups {
		b.WriteString("\n")
		b.WriteString(groupLine.Sprintf("Group: %d files of size %s",
			len(group.Files), FormatSize(group.Size)))
		b.WriteString("\n")
		for _, file := range group.Files {
			b.WriteString("  ")
			b.WriteString(file.Path)
			b.WriteString("\n")
		}
	}

	if f.config.WithStats {
		s := f.calculateStats(result)
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("%d groups, %d files, %s reclaimable\n",
			s.Groups, s.Files, FormatSize(s.ReclaimableBytes)))
	}

	return b.String()
}

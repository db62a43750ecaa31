package output

import (
	"encoding/json"
	"time"

	"github.com/sonemaro/dupescan/pkg/dedup"
	"github.com/sonemaro/dupescan/pkg/logger"
)

// jsonFile represents one file in JSON output
type jsonFile struct {
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// jsonGroup represents one duplicate group in JSON output
type jsonGroup struct {
	Size  int64      `json:"size"`
	Count int        `json:"count"`
	Files []jsonFile `json:"files"`
}

// jsonReport represents the complete JSON output
type jsonReport struct {
	Groups     []jsonGroup `json:"groups"`
	SizeOnly   bool        `json:"sizeOnly"`
	Statistics *stats      `json:"statistics,omitempty"`
	Generated  time.Time   `json:"generated"`
}

func (f *formatter) formatJSON(result *dedup.DuplicateFiles) (string, error) {
	f.log.Debug("Formatting JSON output")

	report := f.buildReport(result)

	bytes, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal JSON")
		return "", err
	}

	return string(bytes), nil
}

func (f *formatter) buildReport(result *dedup.DuplicateFiles) *jsonReport {
	report := &jsonReport{
		Groups:    make([]jsonGroup, 0, len(result.Groups)),
		SizeOnly:  f.config.SizeOnly,
		Generated: time.Now(),
	}

	for _, group := range result.Groups {
		jGroup := jsonGroup{
			Size:  group.Size,
			Count: len(group.Files),
			Files: make([]jsonFile, 0, len(group.Files)),
		}
		for _, file := range group.Files {
			jGroup.Files = append(jGroup.Files, jsonFile{
				Path: file.Path,
				Size: file.Size,
			})
		}
		report.Groups = append(report.Groups, jGroup)
	}

	if f.config.WithStats {
		report.Statistics = f.calculateStats(result)
	}

	return report
}

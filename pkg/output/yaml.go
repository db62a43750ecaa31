package output

import (
	"gopkg.in/yaml.v3"

	"github.com/sonemaro/dupescan/pkg/dedup"
	"github.com/sonemaro/dupescan/pkg/logger"
)

func (f *formatter) formatYAML(result *dedup.DuplicateFiles) (string, error) {
	f.log.Debug("Formatting YAML output")

	// Reuse the JSON report structure for YAML output
	report := f.buildReport(result)

	bytes, err := yaml.Marshal(report)
	if err != nil {
		f.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to marshal YAML")
		return "", err
	}

	return string(bytes), nil
}

package output

import (
	"github.com/sonemaro/dupescan/pkg/dedup"
)

// stats summarizes a duplicate-search result
type stats struct {
	Groups           int   `json:"duplicateGroups"`
	Files            int   `json:"duplicateFiles"`
	ReclaimableBytes int64 `json:"reclaimableBytes"`
}

func (f *formatter) calculateStats(result *dedup.DuplicateFiles) *stats {
	return &stats{
		Groups:           len(result.Groups),
		Files:            result.TotalFiles(),
		ReclaimableBytes: result.ReclaimableBytes(),
	}
}

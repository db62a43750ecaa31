package progress

import "time"

// Style represents the type of progress visualization
type Style string

const (
	// StyleSpinner shows a spinning indicator
	StyleSpinner Style = "spinner"

	// StyleSimple shows basic text progress
	StyleSimple Style = "simple"
)

// Config holds the configuration for progress visualization
type Config struct {
	// Style defines how progress should be displayed
	Style Style

	// NoColor disables colored output
	NoColor bool

	// RefreshRate defines how often the display updates
	RefreshRate time.Duration
}

// Status represents the current progress state
type Status struct {
	// Phase names the pipeline stage currently running
	Phase string

	// CurrentItem is the path being processed
	CurrentItem string

	// ItemsProcessed is the number of items handled so far
	ItemsProcessed int64
}

// Progress defines the interface for progress visualization
type Progress interface {
	// Start begins progress visualization with an initial message
	Start(message string)

	// Update updates the progress status
	Update(status Status)

	// Complete marks the operation as successfully completed
	Complete(message string)

	// Error marks the operation as failed
	Error(message string)

	// Stop stops progress visualization and clears the display
	Stop()

	// IsSupportedTerminal checks if the output supports live rendering
	IsSupportedTerminal() bool
}

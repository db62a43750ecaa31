// Package progress provides lightweight terminal progress feedback for
// long-running scans. It renders a spinner or plain text updates on an
// interval and stays silent when the output is not a terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"

	"github.com/sonemaro/dupescan/pkg/logger"
)

type progress struct {
	config Config
	log    logger.Logger
	writer io.Writer

	status   Status
	message  string
	isActive bool
	renderer renderer

	mu       sync.Mutex
	stopChan chan struct{}
	doneChan chan struct{}
}

// New creates a new progress visualization instance writing to stderr.
func New(config Config, log logger.Logger) Progress {
	if config.RefreshRate == 0 {
		config.RefreshRate = 100 * time.Millisecond
	}

	p := &progress{
		config: config,
		log:    log,
		writer: os.Stderr,
	}
	p.renderer = p.createRenderer()

	return p
}

func (p *progress) Start(message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.isActive || !p.supported() {
		p.log.WithFields(logger.Fields{
			"message": message,
		}).Debug("Progress rendering skipped")
		return
	}

	p.message = message
	p.isActive = true
	p.stopChan = make(chan struct{})
	p.doneChan = make(chan struct{})

	go p.renderLoop()
}

func (p *progress) Update(status Status) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.status = status
}

func (p *progress) Complete(message string) {
	p.finish(message, false)
}

func (p *progress) Error(message string) {
	p.finish(message, true)
}

func (p *progress) Stop() {
	p.finish("", false)
}

func (p *progress) IsSupportedTerminal() bool {
	if f, ok := p.writer.(*os.File); ok {
		return term.IsTerminal(int(f.Fd()))
	}
	return false
}

func (p *progress) supported() bool {
	return p.IsSupportedTerminal()
}

func (p *progress) finish(message string, failed bool) {
	p.mu.Lock()
	if !p.isActive {
		p.mu.Unlock()
		return
	}
	p.isActive = false
	close(p.stopChan)
	done := p.doneChan
	p.mu.Unlock()

	<-done

	p.clearLine()
	if message != "" {
		fmt.Fprintln(p.writer, p.renderer.final(message, failed))
	}
}

func (p *progress) renderLoop() {
	ticker := time.NewTicker(p.config.RefreshRate)
	defer ticker.Stop()
	defer close(p.doneChan)

	for {
		select {
		case <-p.stopChan:
			return
		case <-ticker.C:
			p.mu.Lock()
			line := p.renderer.render(p.status, p.message)
			p.mu.Unlock()

			p.clearLine()
			fmt.Fprint(p.writer, line)
		}
	}
}

func (p *progress) clearLine() {
	fmt.Fprint(p.writer, "\r\033[K")
}

func (p *progress) createRenderer() renderer {
	switch p.config.Style {
	case StyleSimple:
		return &simpleRenderer{}
	default:
		return &spinnerRenderer{noColor: p.config.NoColor}
	}
}

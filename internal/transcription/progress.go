package transcription

import (
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"voiceprep/internal/logging"
)

// Progress reports per-file advancement of a run.
type Progress interface {
	Start(total int)
	Advance()
	Finish()
}

// NewProgress returns a progress bar on interactive terminals and periodic
// log lines everywhere else.
func NewProgress(w io.Writer, logger *slog.Logger) Progress {
	if file, ok := w.(*os.File); ok {
		fd := file.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return &barProgress{writer: w}
		}
	}
	return &logProgress{logger: logger}
}

type barProgress struct {
	writer io.Writer
	bar    *progressbar.ProgressBar
}

func (p *barProgress) Start(total int) {
	p.bar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionSetDescription("transcribing"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionClearOnFinish(),
	)
}

func (p *barProgress) Advance() {
	if p.bar != nil {
		_ = p.bar.Add(1)
	}
}

func (p *barProgress) Finish() {
	if p.bar != nil {
		_ = p.bar.Finish()
	}
}

type logProgress struct {
	logger *slog.Logger
	total  int
	done   int
	step   int
}

func (p *logProgress) Start(total int) {
	p.total = total
	p.done = 0
	p.step = max(1, total/20)
}

func (p *logProgress) Advance() {
	p.done++
	if p.logger == nil || (p.done%p.step != 0 && p.done != p.total) {
		return
	}
	p.logger.Info("transcription progress",
		logging.Int("done", p.done),
		logging.Int("total", p.total),
	)
}

func (p *logProgress) Finish() {}

type noopProgress struct{}

func (noopProgress) Start(int) {}
func (noopProgress) Advance()  {}
func (noopProgress) Finish()   {}

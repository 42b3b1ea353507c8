package driver

import (
	"io"

	"fortio.org/safecast"

	"myton/internal/interp"
	"myton/internal/trace"
)

// Options configure one pipeline run.
type Options struct {
	MaxDiagnostics int
	Out            io.Writer // print sink; os.Stdout when nil
	Tracer         trace.Tracer
	Timings        bool
	Clock          interp.Clock
	// Stage stops the pipeline early; StageAll runs the program.
	Stage Stage
}

// Stage is the last pipeline step to execute.
type Stage uint8

const (
	StageAll Stage = iota
	StageTokenize
	StageParse
	StageResolve
)

func (s Stage) String() string {
	switch s {
	case StageTokenize:
		return "tokenize"
	case StageParse:
		return "parse"
	case StageResolve:
		return "resolve"
	}
	return "all"
}

// maxErrors maps the diagnostic limit onto the parser's; negative means unlimited.
func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		return 0
	}
	return n
}

package model

import "github.com/rotisserie/eris"

// Fatal conditions for a generation request. Everything else the pipeline
// encounters is absorbed into warnings and metrics.
var (
	// ErrTemplateNotFound signals an unknown template id.
	ErrTemplateNotFound = eris.New("template not found")

	// ErrNoSuitableTemplate signals that no catalog candidate scored above
	// the selector cutoff for the requested document type.
	ErrNoSuitableTemplate = eris.New("no suitable template")
)

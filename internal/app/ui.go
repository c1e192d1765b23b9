package app

import "github.com/cwbudde/algo-nsor/axis"

// Label names a status text shown by the UI.
type Label string

const (
	LabelStatus    Label = "status"
	LabelIntegral  Label = "integral"
	LabelPhaseInfo Label = "phase_info"
)

// ZeroFillKey is the field holding the zero-fill selector text.
const ZeroFillKey = "zero_fill"

// Status texts.
const (
	StatusWaiting = "Waiting..."
	StatusReady   = "Ready"
)

// Warning texts.
const (
	WarnNoData     = "No original data available!"
	WarnNotNumeric = "Input only number"
)

// UI is the widget collaborator of the controller.
type UI interface {
	// PromptPath asks for an acquisition file. ok is false when cancelled.
	PromptPath(startDir string) (path string, ok bool)
	// Warn shows a modal warning.
	Warn(msg string)
	FieldText(key string) string
	SetFieldText(key, text string)
	// Draw fully redraws the plot of d.
	Draw(d axis.Domain)
	// Blit repaints only the moving artists of d.
	Blit(d axis.Domain)
	SetLabel(l Label, text string)
}

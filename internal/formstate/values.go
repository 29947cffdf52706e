// Package formstate holds the single mutable form record and its persistence.
//
// FormValues is intentionally flat: fields that belong to a mode other than the
// active one are kept (so switching modes back and forth loses nothing) and are
// simply ignored when arguments are built.
package formstate

import "strings"

type Mode string

const (
	ModeCopy   Mode = "copy"
	ModeGet    Mode = "get"
	ModePaste  Mode = "paste"
	ModeStatus Mode = "status"
	ModeClear  Mode = "clear"
	ModeAI     Mode = "ai"
)

// Modes lists every mode in the order the form cycles through them.
var Modes = []Mode{ModePaste, ModeCopy, ModeGet, ModeStatus, ModeClear, ModeAI}

const (
	TypeAuto   = "auto"
	TypeText   = "text"
	TypeImage  = "image"
	TypeBinary = "binary"
)

var PasteTypes = []string{TypeAuto, TypeText, TypeImage, TypeBinary}

// ImageFormats starts with the empty "no format" choice.
var ImageFormats = []string{"", "png", "jpeg", "webp"}

const (
	AISummarize = "summarize"
	AIClassify  = "classify"
	AITransform = "transform"
)

var AIActions = []string{AISummarize, AIClassify, AITransform}

// MaxClipOffset is the deepest clipboard history entry the form offers.
const MaxClipOffset = 5

// Key is the fixed persistence key for the launcher form.
const Key = "clipaste.form"

type FormValues struct {
	Mode          Mode     `json:"mode"`
	Text          string   `json:"text,omitempty"`
	Files         []string `json:"file,omitempty"`
	Output        string   `json:"output,omitempty"`
	Filename      string   `json:"filename,omitempty"`
	Type          string   `json:"type,omitempty"`
	Format        string   `json:"format,omitempty"`
	Quality       string   `json:"quality,omitempty"`
	AutoExtension bool     `json:"autoExtension,omitempty"`
	DryRun        bool     `json:"dryRun,omitempty"`
	Raw           bool     `json:"raw,omitempty"`
	AIAction      string   `json:"aiAction,omitempty"`
	AILabels      string   `json:"aiLabels,omitempty"`
	AIInstruction string   `json:"aiInstruction,omitempty"`
	TemplateArgs  string   `json:"templateArgs,omitempty"`
	RecipeID      string   `json:"recipeId,omitempty"`
	ClipOffset    int      `json:"clipOffset"`
}

func Default() FormValues {
	return FormValues{Mode: ModePaste, Type: TypeAuto, ClipOffset: 0}
}

func (m Mode) Valid() bool {
	for _, v := range Modes {
		if v == m {
			return true
		}
	}
	return false
}

// Next returns the mode after m in Modes, wrapping around.
func (m Mode) Next() Mode {
	for i, v := range Modes {
		if v == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return ModePaste
}

// ParseMode accepts a mode name case-insensitively.
func ParseMode(s string) (Mode, bool) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	return m, m.Valid()
}

// Normalize repairs values loaded from disk or typed on the command line. It
// never touches fields of inactive modes.
func Normalize(v FormValues) FormValues {
	if !v.Mode.Valid() {
		v.Mode = ModePaste
	}
	if strings.TrimSpace(v.Type) == "" {
		v.Type = TypeAuto
	}
	if v.ClipOffset < 0 {
		v.ClipOffset = 0
	}
	if v.ClipOffset > MaxClipOffset {
		v.ClipOffset = MaxClipOffset
	}
	if len(v.Files) > 0 {
		v.Files = append([]string(nil), v.Files...)
	}
	return v
}

// Clone returns a copy that shares no slices with v.
func (v FormValues) Clone() FormValues {
	out := v
	if v.Files != nil {
		out.Files = append([]string(nil), v.Files...)
	}
	return out
}

// EffectiveAIAction applies the summarize default.
func (v FormValues) EffectiveAIAction() string {
	if strings.TrimSpace(v.AIAction) == "" {
		return AISummarize
	}
	return v.AIAction
}

// Cycle returns the option after current in options, wrapping around. An
// unknown current value moves to the first option.
func Cycle(options []string, current string, delta int) string {
	if len(options) == 0 {
		return current
	}
	idx := -1
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	if idx < 0 {
		return options[0]
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

// Package command turns the form record into the argv for clipaste and its
// display preview.
package command

import (
	"strings"

	"clipdeck/internal/formstate"
)

func notBlank(s string) bool { return strings.TrimSpace(s) != "" }

// BuildArgs projects the fields of the active mode onto clipaste arguments.
// Fields of other modes are ignored. Missing or blank inputs drop their flag
// rather than fail; an unknown mode yields no arguments.
func BuildArgs(v formstate.FormValues) []string {
	switch v.Mode {
	case formstate.ModeCopy:
		args := []string{"copy"}
		if len(v.Files) > 0 && notBlank(v.Files[0]) {
			return append(args, "--file", v.Files[0])
		}
		if notBlank(v.Text) {
			args = append(args, v.Text)
		}
		return args
	case formstate.ModeGet:
		args := []string{"get"}
		if v.Raw {
			args = append(args, "--raw")
		}
		return args
	case formstate.ModePaste:
		return pasteArgs(v)
	case formstate.ModeStatus:
		return []string{"status"}
	case formstate.ModeClear:
		return []string{"clear", "--confirm"}
	case formstate.ModeAI:
		action := v.EffectiveAIAction()
		args := []string{"ai", action}
		if action == formstate.AIClassify && notBlank(v.AILabels) {
			args = append(args, "--labels", v.AILabels)
		}
		if action == formstate.AITransform && notBlank(v.AIInstruction) {
			args = append(args, "--instruction", v.AIInstruction)
		}
		return args
	default:
		return []string{}
	}
}

func pasteArgs(v formstate.FormValues) []string {
	args := []string{"paste"}
	if notBlank(v.Output) {
		args = append(args, "--output", v.Output)
	}
	if notBlank(v.Filename) {
		args = append(args, "--filename", v.Filename)
	}
	if notBlank(v.Type) && v.Type != formstate.TypeAuto {
		args = append(args, "--type", v.Type)
	}
	if notBlank(v.Format) {
		args = append(args, "--format", v.Format)
	}
	if notBlank(v.Quality) {
		args = append(args, "--quality", v.Quality)
	}
	if v.AutoExtension {
		args = append(args, "--auto-extension")
	}
	if v.DryRun {
		args = append(args, "--dry-run")
	}
	return args
}

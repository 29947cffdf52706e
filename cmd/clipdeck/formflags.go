package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"clipdeck/internal/formstate"
)

// formFlags overrides stored form values for one invocation. Only flags that
// were set on the command line are applied.
type formFlags struct {
	mode          string
	text          string
	files         []string
	output        string
	filename      string
	typ           string
	format        string
	quality       string
	autoExtension bool
	dryRun        bool
	raw           bool
	aiAction      string
	labels        string
	instruction   string
	extra         string
	recipe        string
	offset        int
	save          bool
}

func (f *formFlags) register(fs *pflag.FlagSet) {
	modes := make([]string, len(formstate.Modes))
	for i, m := range formstate.Modes {
		modes[i] = string(m)
	}
	fs.StringVarP(&f.mode, "mode", "m", "", "mode: "+strings.Join(modes, ", "))
	fs.StringVar(&f.text, "text", "", "copy: text to copy")
	fs.StringSliceVar(&f.files, "file", nil, "copy: file to copy (first one wins)")
	fs.StringVarP(&f.output, "output", "o", "", "paste: output directory")
	fs.StringVar(&f.filename, "filename", "", "paste: file name")
	fs.StringVar(&f.typ, "type", "", "paste: "+strings.Join(formstate.PasteTypes, ", "))
	fs.StringVar(&f.format, "format", "", "paste: image format (png, jpeg, webp)")
	fs.StringVar(&f.quality, "quality", "", "paste: image quality 1-100")
	fs.BoolVar(&f.autoExtension, "auto-extension", false, "paste: add the file extension")
	fs.BoolVar(&f.dryRun, "dry-run", false, "paste: show what would be written")
	fs.BoolVar(&f.raw, "raw", false, "get: raw output")
	fs.StringVar(&f.aiAction, "ai-action", "", "ai: "+strings.Join(formstate.AIActions, ", "))
	fs.StringVar(&f.labels, "labels", "", "ai classify: comma separated labels")
	fs.StringVar(&f.instruction, "instruction", "", "ai transform: instruction")
	fs.StringVarP(&f.extra, "args", "a", "", "extra arguments appended verbatim")
	fs.StringVarP(&f.recipe, "recipe", "r", "", "recipe id (empty clears)")
	fs.IntVar(&f.offset, "offset", 0, "clipboard history offset 0-"+strconv.Itoa(formstate.MaxClipOffset))
	fs.BoolVar(&f.save, "save", false, "persist the overrides as the stored form")
}

func (f *formFlags) apply(fs *pflag.FlagSet, v formstate.FormValues) (formstate.FormValues, error) {
	v = v.Clone()
	if fs.Changed("mode") {
		m, ok := formstate.ParseMode(f.mode)
		if !ok {
			return v, fmt.Errorf("unknown mode %q", f.mode)
		}
		v.Mode = m
	}
	if fs.Changed("type") {
		if !contains(formstate.PasteTypes, f.typ) {
			return v, fmt.Errorf("unknown paste type %q", f.typ)
		}
		v.Type = f.typ
	}
	if fs.Changed("ai-action") {
		if !contains(formstate.AIActions, f.aiAction) {
			return v, fmt.Errorf("unknown ai action %q", f.aiAction)
		}
		v.AIAction = f.aiAction
	}
	if fs.Changed("offset") {
		if f.offset < 0 || f.offset > formstate.MaxClipOffset {
			return v, fmt.Errorf("offset must be between 0 and %d", formstate.MaxClipOffset)
		}
		v.ClipOffset = f.offset
	}
	strs := []struct {
		name string
		src  string
		dst  *string
	}{
		{"text", f.text, &v.Text},
		{"output", f.output, &v.Output},
		{"filename", f.filename, &v.Filename},
		{"format", f.format, &v.Format},
		{"quality", f.quality, &v.Quality},
		{"labels", f.labels, &v.AILabels},
		{"instruction", f.instruction, &v.AIInstruction},
		{"args", f.extra, &v.TemplateArgs},
		{"recipe", f.recipe, &v.RecipeID},
	}
	for _, s := range strs {
		if fs.Changed(s.name) {
			*s.dst = s.src
		}
	}
	bools := []struct {
		name string
		src  bool
		dst  *bool
	}{
		{"auto-extension", f.autoExtension, &v.AutoExtension},
		{"dry-run", f.dryRun, &v.DryRun},
		{"raw", f.raw, &v.Raw},
	}
	for _, b := range bools {
		if fs.Changed(b.name) {
			*b.dst = b.src
		}
	}
	if fs.Changed("file") {
		v.Files = append([]string(nil), f.files...)
	}
	return formstate.Normalize(v), nil
}

func contains(options []string, s string) bool {
	for _, o := range options {
		if o == s {
			return true
		}
	}
	return false
}

package tui

import (
	"strconv"
	"strings"

	"clipdeck/internal/formstate"
)

type rowKind int

const (
	rowMode rowKind = iota
	rowRecipe
	rowText
	rowPath
	rowEnum
	rowBool
	rowOffset
)

type formRow struct {
	key         string
	label       string
	kind        rowKind
	options     []string
	dirOnly     bool
	placeholder string
}

var (
	rowModeDef       = formRow{key: "mode", label: "Mode", kind: rowMode}
	rowRecipeDef     = formRow{key: "recipe", label: "Recipe", kind: rowRecipe, placeholder: "(none)"}
	rowTemplateDef   = formRow{key: "templateArgs", label: "Extra args", kind: rowText, placeholder: `e.g. --filename "my file"`}
	rowClipOffsetDef = formRow{key: "clipOffset", label: "Clipboard offset", kind: rowOffset}
)

// rowsFor lists the rows shown for the active mode. Fields of other modes
// keep their values but are not shown.
func rowsFor(v formstate.FormValues) []formRow {
	rows := []formRow{rowModeDef, rowRecipeDef}
	switch v.Mode {
	case formstate.ModePaste:
		rows = append(rows,
			formRow{key: "output", label: "Output dir", kind: rowPath, dirOnly: true, placeholder: "(default output dir)"},
			formRow{key: "filename", label: "Filename", kind: rowText, placeholder: "(auto)"},
			formRow{key: "type", label: "Type", kind: rowEnum, options: formstate.PasteTypes},
			formRow{key: "format", label: "Image format", kind: rowEnum, options: formstate.ImageFormats},
			formRow{key: "quality", label: "Quality", kind: rowText, placeholder: "1-100"},
			formRow{key: "autoExtension", label: "Auto extension", kind: rowBool},
			formRow{key: "dryRun", label: "Dry run", kind: rowBool},
		)
	case formstate.ModeCopy:
		rows = append(rows,
			formRow{key: "file", label: "File", kind: rowPath, placeholder: "(copy text instead)"},
			formRow{key: "text", label: "Text", kind: rowText, placeholder: "(nothing)"},
		)
	case formstate.ModeGet:
		rows = append(rows, formRow{key: "raw", label: "Raw", kind: rowBool})
	case formstate.ModeAI:
		rows = append(rows, formRow{key: "aiAction", label: "Action", kind: rowEnum, options: formstate.AIActions})
		switch v.EffectiveAIAction() {
		case formstate.AIClassify:
			rows = append(rows, formRow{key: "aiLabels", label: "Labels", kind: rowText, placeholder: "comma,separated"})
		case formstate.AITransform:
			rows = append(rows, formRow{key: "aiInstruction", label: "Instruction", kind: rowText, placeholder: "what to change"})
		}
	}
	return append(rows, rowTemplateDef, rowClipOffsetDef)
}

func rowValue(v formstate.FormValues, key string) string {
	switch key {
	case "mode":
		return string(v.Mode)
	case "recipe":
		return v.RecipeID
	case "output":
		return v.Output
	case "filename":
		return v.Filename
	case "type":
		return v.Type
	case "format":
		return v.Format
	case "quality":
		return v.Quality
	case "file":
		if len(v.Files) > 0 {
			return v.Files[0]
		}
		return ""
	case "text":
		return v.Text
	case "aiAction":
		return v.EffectiveAIAction()
	case "aiLabels":
		return v.AILabels
	case "aiInstruction":
		return v.AIInstruction
	case "templateArgs":
		return v.TemplateArgs
	case "clipOffset":
		return strconv.Itoa(v.ClipOffset)
	}
	return ""
}

func setRowValue(v formstate.FormValues, key, val string) formstate.FormValues {
	switch key {
	case "mode":
		if m, ok := formstate.ParseMode(val); ok {
			v.Mode = m
		}
	case "recipe":
		v.RecipeID = strings.TrimSpace(val)
	case "output":
		v.Output = val
	case "filename":
		v.Filename = val
	case "type":
		v.Type = val
	case "format":
		v.Format = val
	case "quality":
		v.Quality = val
	case "file":
		if strings.TrimSpace(val) == "" {
			v.Files = nil
		} else {
			v.Files = []string{val}
		}
	case "text":
		v.Text = val
	case "aiAction":
		v.AIAction = val
	case "aiLabels":
		v.AILabels = val
	case "aiInstruction":
		v.AIInstruction = val
	case "templateArgs":
		v.TemplateArgs = val
	case "clipOffset":
		if n, err := strconv.Atoi(strings.TrimSpace(val)); err == nil {
			v.ClipOffset = n
		}
	}
	return v
}

func rowBoolValue(v formstate.FormValues, key string) bool {
	switch key {
	case "autoExtension":
		return v.AutoExtension
	case "dryRun":
		return v.DryRun
	case "raw":
		return v.Raw
	}
	return false
}

func setRowBool(v formstate.FormValues, key string, b bool) formstate.FormValues {
	switch key {
	case "autoExtension":
		v.AutoExtension = b
	case "dryRun":
		v.DryRun = b
	case "raw":
		v.Raw = b
	}
	return v
}

// cycleRow moves enum-like rows by delta. It reports false for rows that
// need an editor instead.
func cycleRow(v formstate.FormValues, row formRow, delta int) (formstate.FormValues, bool) {
	switch row.kind {
	case rowMode:
		modes := make([]string, len(formstate.Modes))
		for i, m := range formstate.Modes {
			modes[i] = string(m)
		}
		v.Mode = formstate.Mode(formstate.Cycle(modes, string(v.Mode), delta))
		return v, true
	case rowEnum:
		return setRowValue(v, row.key, formstate.Cycle(row.options, rowValue(v, row.key), delta)), true
	case rowBool:
		return setRowBool(v, row.key, !rowBoolValue(v, row.key)), true
	case rowOffset:
		v.ClipOffset = clampInt(v.ClipOffset+delta, 0, formstate.MaxClipOffset)
		return v, true
	}
	return v, false
}

func clearRow(v formstate.FormValues, row formRow) formstate.FormValues {
	switch row.kind {
	case rowMode:
		return v
	case rowBool:
		return setRowBool(v, row.key, false)
	case rowEnum:
		if row.key == "aiAction" {
			v.AIAction = ""
			return v
		}
		return setRowValue(v, row.key, row.options[0])
	case rowOffset:
		v.ClipOffset = 0
		return v
	}
	return setRowValue(v, row.key, "")
}

func displayRowValue(v formstate.FormValues, row formRow) string {
	switch row.kind {
	case rowBool:
		if rowBoolValue(v, row.key) {
			return "[x]"
		}
		return "[ ]"
	case rowEnum, rowMode:
		val := rowValue(v, row.key)
		if val == "" {
			val = "(none)"
		}
		return "< " + val + " >"
	case rowOffset:
		return "< " + rowValue(v, row.key) + " >"
	}
	val := rowValue(v, row.key)
	if strings.TrimSpace(val) == "" {
		return row.placeholder
	}
	return val
}

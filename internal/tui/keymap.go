package tui

func globalHelp() string {
	return "Global: ctrl+r/F5 run, c copy command, / recipes, m next mode, q quit"
}

func formHelp() string {
	return "Form: j/k move, h/l/space change, enter edit, x clear, o/O clip offset, R refresh clip, p clip detail, i image dump"
}

func modalHelp(kind modalKind) string {
	switch kind {
	case modalFieldEditor:
		return "Enter save, Esc cancel"
	case modalRecipePicker:
		return "Type to filter, up/down move, Enter choose, Esc cancel"
	case modalPathBrowser:
		return "j/k move, Enter open/select, Backspace parent, h/l scroll, Esc cancel"
	case modalResult:
		return "r run again, c copy command, up/down scroll, Enter/Esc close"
	case modalClipDetail:
		return "R refresh, c copy, up/down scroll, Enter/Esc close"
	case modalImageDump:
		return "r run again, c copy path, Enter/Esc close"
	}
	return ""
}

package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"clipdeck/internal/clipview"
	"clipdeck/internal/command"
	"clipdeck/internal/executor"
	"clipdeck/internal/formstate"
	"clipdeck/internal/imagedump"
)

// RunPipeline is the part of executor.Pipeline the UI drives.
type RunPipeline interface {
	Begin(executable string, argv []string) executor.Run
	Execute(ctx context.Context, run executor.Run) executor.Result
	Complete(res executor.Result) bool
}

type AppCallbacks struct {
	Values           formstate.FormValues
	Save             func(formstate.FormValues) error
	Synthesizer      command.Synthesizer
	DefaultOutputDir string
	Pipeline         RunPipeline
	Clipboard        *clipview.Adapter
	// DumpImage is nil when the fallback image preview is disabled.
	DumpImage  func(ctx context.Context) imagedump.Outcome
	CopyText   func(string) error
	Describe   func(path string) (clipview.ImageInfo, error)
	Context    context.Context
	Version    string
	ProjectURL string
	Theme      UITheme
}

type modalKind int

const (
	modalNone modalKind = iota
	modalFieldEditor
	modalRecipePicker
	modalPathBrowser
	modalResult
	modalClipDetail
	modalImageDump
)

type appModel struct {
	callbacks AppCallbacks
	ctx       context.Context
	theme     UITheme
	width     int
	height    int
	quitting  bool
	status    string

	values formstate.FormValues
	cursor int

	modalActive bool
	modalKind   modalKind
	editor      textinput.Model
	editKey     string
	picker      recipeTable
	browser     browserState
	spinner     spinner.Model

	running      bool
	lastCmd      command.Command
	result       executor.Result
	resultScroll int

	clip         clipview.Snapshot
	clipOffset   int
	clipLoading  bool
	clipErr      error
	clipInfo     string
	detailScroll int

	dumpGen  uint64
	dumping  bool
	dump     imagedump.Outcome
	dumpInfo string
}

type runFinishedMsg struct {
	result executor.Result
}

type clipFetchedMsg struct {
	fetched clipview.Fetched
}

type imageDumpedMsg struct {
	gen     uint64
	outcome imagedump.Outcome
	info    string
}

func RunApp(callbacks AppCallbacks) error {
	m := newAppModel(callbacks)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func newAppModel(callbacks AppCallbacks) appModel {
	ctx := callbacks.Context
	if ctx == nil {
		ctx = context.Background()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	m := appModel{
		callbacks: callbacks,
		ctx:       ctx,
		theme:     callbacks.Theme.withDefaults(),
		values:    formstate.Normalize(callbacks.Values),
		spinner:   sp,
		status:    "Ready",
	}
	m.clipOffset = m.values.ClipOffset
	m.clipLoading = callbacks.Clipboard != nil
	return m
}

func (m appModel) Init() tea.Cmd {
	return m.fetchClipCmd()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case spinner.TickMsg:
		if !m.running && !m.dumping {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case runFinishedMsg:
		return m.handleRunFinished(msg.result), nil
	case clipFetchedMsg:
		return m.handleClipFetched(msg.fetched), nil
	case imageDumpedMsg:
		if msg.gen != m.dumpGen {
			return m, nil
		}
		m.dumping = false
		m.dump = msg.outcome
		m.dumpInfo = msg.info
		m.status = "Image dump: " + msg.outcome.Kind.String()
		return m, nil
	case tea.KeyMsg:
		k := msg.String()
		if k == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.modalActive {
			return m.updateModalKey(msg)
		}
		return m.updateFormKey(k)
	}
	return m, nil
}

// handleRunFinished drops results the pipeline no longer considers current.
func (m appModel) handleRunFinished(res executor.Result) appModel {
	if m.callbacks.Pipeline == nil || !m.callbacks.Pipeline.Complete(res) {
		return m
	}
	m.running = false
	m.result = res
	m.resultScroll = 0
	if res.Status == executor.StatusSucceeded {
		m.status = fmt.Sprintf("Done in %s", res.Duration.Round(time.Millisecond))
	} else {
		m.status = "Error: " + firstLine(res.Message)
	}
	return m
}

func (m appModel) handleClipFetched(f clipview.Fetched) appModel {
	if m.callbacks.Clipboard == nil || !m.callbacks.Clipboard.Accept(f.Token) {
		return m
	}
	m.clipLoading = false
	m.clip = f.Snapshot
	m.clipOffset = f.Offset
	m.clipErr = f.Err
	m.clipInfo = ""
	if f.Snapshot.File != "" && clipview.IsImagePath(f.Snapshot.File) && m.callbacks.Describe != nil {
		if info, err := m.callbacks.Describe(f.Snapshot.File); err == nil {
			m.clipInfo = info.String()
		}
	}
	return m
}

func (m appModel) updateFormKey(k string) (tea.Model, tea.Cmd) {
	rows := rowsFor(m.values)
	m.cursor = clampInt(m.cursor, 0, len(rows)-1)
	row := rows[m.cursor]
	switch k {
	case "q":
		m.quitting = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "left", "h":
		if v, ok := cycleRow(m.values, row, -1); ok {
			cmd := m.setValues(v)
			return m, cmd
		}
	case "right", "l", " ":
		if v, ok := cycleRow(m.values, row, 1); ok {
			cmd := m.setValues(v)
			return m, cmd
		}
	case "enter":
		cmd := m.activateRow(row)
		return m, cmd
	case "x":
		cmd := m.setValues(clearRow(m.values, row))
		m.status = "Cleared " + row.label
		return m, cmd
	case "m":
		v := m.values
		v.Mode = v.Mode.Next()
		cmd := m.setValues(v)
		m.status = "Mode: " + string(v.Mode)
		return m, cmd
	case "/":
		m.openRecipePicker()
	case "o":
		v := m.values
		v.ClipOffset = clampInt(v.ClipOffset-1, 0, formstate.MaxClipOffset)
		cmd := m.setValues(v)
		return m, cmd
	case "O":
		v := m.values
		v.ClipOffset = clampInt(v.ClipOffset+1, 0, formstate.MaxClipOffset)
		cmd := m.setValues(v)
		return m, cmd
	case "R":
		m.status = "Refreshing clipboard"
		cmd := m.fetchClipCmd()
		return m, cmd
	case "p":
		m.detailScroll = 0
		m.openModal(modalClipDetail)
	case "i":
		cmd := m.startDump()
		return m, cmd
	case "c":
		m.copyText(m.preview().Display(), "command")
	case "ctrl+r", "f5":
		cmd := m.startRun(m.submitCommand())
		return m, cmd
	}
	return m, nil
}

func (m *appModel) activateRow(row formRow) tea.Cmd {
	switch row.kind {
	case rowText:
		return m.openEditor(row)
	case rowPath:
		return m.startBrowser(row)
	case rowRecipe:
		m.openRecipePicker()
		return nil
	}
	if v, ok := cycleRow(m.values, row, 1); ok {
		return m.setValues(v)
	}
	return nil
}

func (m appModel) updateModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch m.modalKind {
	case modalFieldEditor:
		switch k {
		case "esc":
			m.closeModal()
			m.status = "Edit canceled"
			return m, nil
		case "enter":
			key := m.editKey
			val := m.editor.Value()
			m.closeModal()
			cmd := m.setValues(setRowValue(m.values, key, val))
			return m, cmd
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	case modalRecipePicker:
		switch k {
		case "esc":
			m.closeModal()
			return m, nil
		case "enter":
			r, ok := m.picker.current()
			m.closeModal()
			if !ok {
				return m, nil
			}
			v := m.values
			v.RecipeID = r.ID
			cmd := m.setValues(v)
			if r.ID == "" {
				m.status = "Recipe cleared"
			} else {
				m.status = "Recipe: " + r.ID
			}
			return m, cmd
		case "up", "ctrl+p":
			m.picker.moveCursor(-1)
		case "down", "ctrl+n":
			m.picker.moveCursor(1)
		case "pgup":
			m.picker.pageMove(-1)
		case "pgdown":
			m.picker.pageMove(1)
		case "backspace":
			m.picker.backspaceFilter()
		default:
			if isPrintableKey(k) {
				m.picker.appendFilterChar(k)
			}
		}
		return m, nil
	case modalPathBrowser:
		return m.updateBrowser(k)
	case modalResult:
		switch k {
		case "esc", "enter", "q":
			m.closeModal()
		case "r":
			cmd := m.startRun(m.lastCmd)
			return m, cmd
		case "c":
			m.copyText(m.lastCmd.Display(), "command")
		case "up", "k":
			if m.resultScroll > 0 {
				m.resultScroll--
			}
		case "down", "j":
			m.resultScroll++
		}
		return m, nil
	case modalClipDetail:
		switch k {
		case "esc", "enter", "q":
			m.closeModal()
		case "R":
			cmd := m.fetchClipCmd()
			return m, cmd
		case "c":
			switch {
			case m.clip.Text != "":
				m.copyText(m.clip.Text, "clipboard text")
			case m.clip.File != "":
				m.copyText(m.clip.File, "file path")
			}
		case "up", "k":
			if m.detailScroll > 0 {
				m.detailScroll--
			}
		case "down", "j":
			m.detailScroll++
		}
		return m, nil
	case modalImageDump:
		switch k {
		case "esc", "enter", "q":
			m.closeModal()
		case "r":
			if !m.dumping {
				cmd := m.startDump()
				return m, cmd
			}
		case "c":
			if !m.dumping && m.dump.Kind == imagedump.OK {
				m.copyText(m.dump.Path, "image path")
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *appModel) openModal(kind modalKind) {
	m.modalActive = true
	m.modalKind = kind
}

func (m *appModel) closeModal() {
	m.modalActive = false
	m.modalKind = modalNone
	m.editKey = ""
	m.editor.Blur()
}

func (m *appModel) openEditor(row formRow) tea.Cmd {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = row.placeholder
	ti.CharLimit = 0
	ti.Width = 60
	ti.SetValue(rowValue(m.values, row.key))
	ti.CursorEnd()
	m.editor = ti
	m.editKey = row.key
	m.status = "Editing " + row.label
	m.openModal(modalFieldEditor)
	return m.editor.Focus()
}

func (m *appModel) openRecipePicker() {
	m.picker = newRecipeTable(m.callbacks.Synthesizer.Catalog, m.values.RecipeID)
	m.openModal(modalRecipePicker)
}

// setValues normalizes and persists v. A failed save only warns; the form
// keeps the new values.
func (m *appModel) setValues(v formstate.FormValues) tea.Cmd {
	v = formstate.Normalize(v)
	offsetChanged := v.ClipOffset != m.values.ClipOffset
	m.values = v
	m.cursor = clampInt(m.cursor, 0, len(rowsFor(v))-1)
	if m.callbacks.Save != nil {
		if err := m.callbacks.Save(v); err != nil {
			m.status = "Warning: could not save form: " + err.Error()
		}
	}
	if offsetChanged {
		return m.fetchClipCmd()
	}
	return nil
}

func (m appModel) preview() command.Command {
	return m.callbacks.Synthesizer.Synthesize(m.values)
}

func (m appModel) submitCommand() command.Command {
	return m.callbacks.Synthesizer.Synthesize(command.ForSubmit(m.values, m.callbacks.DefaultOutputDir))
}

func (m *appModel) fetchClipCmd() tea.Cmd {
	a := m.callbacks.Clipboard
	if a == nil {
		return nil
	}
	token := a.Request()
	offset := m.values.ClipOffset
	ctx := m.ctx
	m.clipLoading = true
	return func() tea.Msg {
		return clipFetchedMsg{fetched: a.Fetch(ctx, token, offset)}
	}
}

func (m *appModel) startRun(c command.Command) tea.Cmd {
	if m.callbacks.Pipeline == nil {
		m.status = "Error: no run pipeline configured"
		return nil
	}
	p := m.callbacks.Pipeline
	run := p.Begin(c.Executable, c.Argv)
	m.running = true
	m.lastCmd = c
	m.result = executor.Result{
		Generation: run.Generation,
		Status:     executor.StatusRunning,
		Executable: run.Executable,
		Argv:       run.Argv,
	}
	m.resultScroll = 0
	m.status = "Running " + c.Preview
	m.openModal(modalResult)
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return runFinishedMsg{result: p.Execute(ctx, run)}
	})
}

func (m *appModel) startDump() tea.Cmd {
	if m.callbacks.DumpImage == nil {
		m.status = "Image dump is disabled (set enable_fallback_preview)"
		return nil
	}
	m.dumpGen++
	gen := m.dumpGen
	m.dumping = true
	m.dump = imagedump.Outcome{}
	m.dumpInfo = ""
	m.openModal(modalImageDump)
	dump := m.callbacks.DumpImage
	describe := m.callbacks.Describe
	ctx := m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		out := dump(ctx)
		info := ""
		if out.Kind == imagedump.OK && describe != nil {
			if d, err := describe(out.Path); err == nil {
				info = d.String()
			}
		}
		return imageDumpedMsg{gen: gen, outcome: out, info: info}
	})
}

func (m *appModel) copyText(s, what string) {
	if m.callbacks.CopyText == nil {
		m.status = "Copy is unavailable"
		return
	}
	if err := m.callbacks.CopyText(s); err != nil {
		m.status = "Error: copy failed: " + err.Error()
		return
	}
	m.status = "Copied " + what
}

func (m appModel) View() string {
	if m.quitting {
		return "Exited.\n"
	}
	if m.width <= 0 {
		m.width = 120
	}
	if m.height <= 0 {
		m.height = 36
	}
	help := globalHelp() + " | " + formHelp()
	help = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HelpText)).Render(clampLine(help, m.width))
	statusLine := fmt.Sprintf("Mode: %s | Offset: %d | Status: %s", m.values.Mode, m.values.ClipOffset, m.status)
	statusLine = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.StatusText)).Render(clampLine(statusLine, m.width))

	banner := m.renderTopBanner(m.width)
	bodyHeight := m.height - len(banner) - 4
	if bodyHeight < 8 {
		bodyHeight = 8
	}

	gap := 1
	availableWidth := m.width
	if availableWidth < 60 {
		availableWidth = 60
	}
	contentWidth := availableWidth - gap
	leftWidth := (contentWidth * 3) / 5
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := contentWidth - leftWidth
	if rightWidth < 20 {
		rightWidth = 20
	}

	left := m.renderFormPanel(leftWidth, bodyHeight)
	right := m.renderRightColumn(rightWidth, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	out := make([]string, 0, len(banner)+5)
	out = append(out, banner...)
	out = append(out, "", help, statusLine, body)
	if u := strings.TrimSpace(m.callbacks.ProjectURL); u != "" {
		out = append(out, lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TextMuted)).Render(clampLine(u, m.width)))
	}
	view := strings.Join(out, "\n")
	if m.modalActive {
		backdrop := applyBackdrop(view, m.width, m.height)
		view = overlayCentered(backdrop, m.renderModalOverlay(), m.width, m.height)
	}
	return view + "\n"
}

func (m appModel) renderFormPanel(width, height int) string {
	innerW := panelInnerWidth(width)
	header := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HeaderText)).Bold(true).Render("Form: " + string(m.values.Mode))
	lines := []string{header}
	for i, row := range rowsFor(m.values) {
		value := displayRowValue(m.values, row)
		if row.kind == rowRecipe {
			value = m.recipeLabel()
		}
		plain := truncateRaw(fmt.Sprintf("%-17s %s", row.label+":", value), innerW-2)
		if i == m.cursor {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.SelectionFg)).
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Render("> "+plain))
			continue
		}
		lines = append(lines, "  "+colorizeDetailLine(plain, m.theme))
	}
	lines = fitLines(lines, innerHeight(height))
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.PaneBorderActive)).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) recipeLabel() string {
	id := strings.TrimSpace(m.values.RecipeID)
	if id == "" {
		return "(none)"
	}
	r, ok := m.callbacks.Synthesizer.Catalog.Lookup(id)
	if !ok {
		return id + " (unknown, ignored)"
	}
	return r.ID + " - " + r.Label
}

func (m appModel) renderRightColumn(width, height int) string {
	topHeight := height / 3
	if topHeight < 6 {
		topHeight = 6
	}
	bottomHeight := height - topHeight
	if bottomHeight < 6 {
		bottomHeight = 6
	}
	top := m.renderCommandPanel(width, topHeight)
	bottom := m.renderClipPanel(width, bottomHeight)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
}

func (m appModel) renderCommandPanel(width, height int) string {
	innerW := panelInnerWidth(width)
	raw := []string{m.preview().Display()}
	if m.values.Mode == formstate.ModePaste && strings.TrimSpace(m.values.Output) == "" && strings.TrimSpace(m.callbacks.DefaultOutputDir) != "" {
		raw = append(raw, "", "On run: --output "+command.Quote(m.callbacks.DefaultOutputDir))
	}
	wrapped := fitAndWrapLines(raw, innerHeight(height)-1, innerW)
	lines := []string{lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HeaderText)).Bold(true).Render("Command")}
	cmdStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.CommandText))
	for _, l := range wrapped {
		lines = append(lines, cmdStyle.Render(l))
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.PaneBorderInactive)).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) clipLines() []string {
	switch {
	case m.callbacks.Clipboard == nil:
		return []string{"(clipboard unavailable)"}
	case m.clipLoading && m.clip.IsEmpty():
		return []string{"Loading…"}
	case m.clipErr != nil:
		return []string{"Error: " + m.clipErr.Error()}
	}
	lines := strings.Split(clipview.Render(m.clip).String(), "\n")
	if m.clipInfo != "" {
		lines = append(lines, "Image: "+m.clipInfo)
	}
	return lines
}

func (m appModel) renderClipPanel(width, height int) string {
	title := fmt.Sprintf("Clipboard (offset %d)", m.clipOffset)
	if m.clipLoading {
		title += " …"
	}
	wrapped := fitAndWrapLines(m.clipLines(), innerHeight(height)-1, panelInnerWidth(width))
	lines := []string{lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HeaderText)).Bold(true).Render(title)}
	clipStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.ClipText))
	for _, l := range wrapped {
		lines = append(lines, clipStyle.Render(l))
	}
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.PaneBorderInactive)).
		Padding(0, 1).
		Width(width).
		Render(strings.Join(lines, "\n"))
}

func (m appModel) renderModalOverlay() string {
	width := m.width - 6
	if width > 96 {
		width = 96
	}
	if width < 36 {
		width = 36
	}
	innerW := panelInnerWidth(width)
	maxLines := m.height - 10
	if maxLines < 8 {
		maxLines = 8
	}
	if maxLines > 20 {
		maxLines = 20
	}
	title := "Input"
	var lines []string
	switch m.modalKind {
	case modalFieldEditor:
		title = "Edit"
		lines = []string{"Shortcuts suspended. Enter saves, Esc cancels.", "", m.editor.View()}
	case modalRecipePicker:
		title = "Recipes"
		m.picker.setHeight(maxLines - 2)
		lines = strings.Split(m.picker.render(innerW, m.theme), "\n")
		lines = append(lines, modalHelp(modalRecipePicker))
	case modalPathBrowser:
		title = "Browse: " + m.browser.dir
		lines = m.renderBrowserLines(innerW, maxLines-2)
		lines = append(lines, "", modalHelp(modalPathBrowser))
	case modalResult:
		title = "Result"
		lines = m.renderResultModalLines(innerW, maxLines)
	case modalClipDetail:
		title = fmt.Sprintf("Clipboard detail (offset %d)", m.clipOffset)
		lines = renderScrolled(m.clipDetailLines(), m.detailScroll, innerW, maxLines, modalHelp(modalClipDetail))
	case modalImageDump:
		title = "Clipboard image"
		lines = m.renderDumpLines()
		lines = append(lines, "", modalHelp(modalImageDump))
	}
	switch m.modalKind {
	case modalResult, modalClipDetail, modalRecipePicker:
	default:
		lines = fitAndWrapLines(lines, maxLines, innerW)
	}
	inner := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.PopupBorder)).
		Padding(0, 1).
		Width(width).
		Render(title + "\n" + strings.Join(lines, "\n"))
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.ThickBorder()).
		BorderForeground(lipgloss.Color(m.theme.PopupOuterBorder)).
		Padding(0, 1).
		Render(inner)
}

func (m appModel) renderBrowserLines(width, maxLines int) []string {
	s := m.browser
	if len(s.items) == 0 {
		return []string{"(empty)"}
	}
	start := 0
	if s.cursor >= maxLines {
		start = s.cursor - maxLines + 1
	}
	end := min(len(s.items), start+maxLines)
	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		label, _, _ := windowedText(s.items[i].label, s.hScroll, width-2)
		if i == s.cursor {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(lipgloss.Color(m.theme.SelectionFg)).
				Background(lipgloss.Color(m.theme.SelectionBg)).
				Render("> "+label))
			continue
		}
		lines = append(lines, "  "+label)
	}
	return lines
}

func (m appModel) renderResultModalLines(maxWidth, maxLines int) []string {
	var header string
	headerStyle := lipgloss.NewStyle().Bold(true)
	switch m.result.Status {
	case executor.StatusRunning:
		header = m.spinner.View() + " Running…"
	case executor.StatusFailed:
		header = headerStyle.Foreground(lipgloss.Color(m.theme.Danger)).Render("Error")
	case executor.StatusSucceeded:
		header = headerStyle.Foreground(lipgloss.Color(m.theme.Success)).Render("Done") +
			fmt.Sprintf(" (%s)", m.result.Duration.Round(time.Millisecond))
	default:
		header = "Idle"
	}
	body := []string{"$ " + m.lastCmd.Preview, ""}
	switch m.result.Status {
	case executor.StatusSucceeded:
		body = append(body, strings.Split(m.result.Output, "\n")...)
	case executor.StatusFailed:
		body = append(body, strings.Split(m.result.Message, "\n")...)
	}
	out := []string{header}
	return append(out, renderScrolled(body, m.resultScroll, maxWidth, maxLines-1, modalHelp(modalResult))...)
}

// renderScrolled wraps lines and shows the window starting at scroll. The
// footer reports the position when the content overflows.
func renderScrolled(lines []string, scroll, maxWidth, maxLines int, help string) []string {
	wrapped := wrapLines(lines, maxWidth)
	if len(wrapped) == 0 {
		wrapped = []string{executor.NoOutput}
	}
	room := maxLines - 2
	if room < 1 {
		room = 1
	}
	scroll = clampInt(scroll, 0, max(len(wrapped)-room, 0))
	end := min(len(wrapped), scroll+room)
	visible := append([]string(nil), wrapped[scroll:end]...)
	footer := help
	if len(wrapped) > room {
		footer = fmt.Sprintf("%s (%d/%d)", help, scroll+1, len(wrapped))
	}
	visible = append(visible, "", footer)
	return fitLines(visible, maxLines)
}

func (m appModel) clipDetailLines() []string {
	if m.clipErr != nil {
		return []string{"Error: " + m.clipErr.Error()}
	}
	if m.clip.IsEmpty() {
		return []string{clipview.Empty}
	}
	var lines []string
	if m.clip.Text != "" {
		lines = append(lines, "Text:")
		lines = append(lines, strings.Split(m.clip.Text, "\n")...)
	}
	if m.clip.File != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "File: "+m.clip.File)
		if m.clipInfo != "" {
			lines = append(lines, "Image: "+m.clipInfo)
		}
	}
	if m.clip.HTML != "" {
		if len(lines) > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, "HTML:")
		lines = append(lines, strings.Split(m.clip.HTML, "\n")...)
	}
	return lines
}

func (m appModel) renderDumpLines() []string {
	if m.dumping {
		return []string{m.spinner.View() + " Reading clipboard image…"}
	}
	danger := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Danger))
	o := m.dump
	switch o.Kind {
	case imagedump.NotAvailable:
		return []string{
			danger.Render(o.Binary + " is not installed"),
			"Install it with: " + imagedump.InstallHint,
		}
	case imagedump.Failed:
		msg := o.Message
		if strings.TrimSpace(msg) == "" {
			msg = "no image on the clipboard"
		}
		return []string{danger.Render("Failed"), msg}
	case imagedump.OK:
		lines := []string{
			lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Success)).Render("Saved to " + o.Path),
		}
		if m.dumpInfo != "" {
			lines = append(lines, "Image: "+m.dumpInfo)
		}
		return lines
	}
	return []string{"(no result)"}
}

func (m appModel) renderTopBanner(maxWidth int) []string {
	logo := []string{
		"┏━╸ ╻   ╻ ┏━┓ ╺┳┓ ┏━╸ ┏━╸ ╻┏ ",
		"┃   ┃   ┃ ┣━┛  ┃┃ ┣╸  ┃   ┣┻┓",
		"┗━╸ ┗━╸ ╹ ╹   ╺┻┛ ┗━╸ ┗━╸ ╹ ╹",
	}
	version := formatVersionLabel(m.callbacks.Version)
	versionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.TextMuted))
	if maxWidth < 40 {
		return []string{lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.HeaderText)).Render("clipdeck " + version)}
	}
	styles := []lipgloss.Style{
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.LogoLine1)),
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.LogoLine2)),
		lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.LogoLine3)),
	}
	out := make([]string, 0, len(logo))
	for i, l := range logo {
		line := styles[i].Render(l)
		if i == len(logo)-1 {
			line += "  " + versionStyle.Render(version)
		}
		out = append(out, line)
	}
	return out
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

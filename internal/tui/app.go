package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/quantmind-br/motionscan/internal/config"
)

type state int

const (
	stateMenu state = iota
	stateForm
	statePreview
	stateConfirm
	stateSaved
	stateError
)

// Model is the bubbletea model of the configuration editor
type Model struct {
	state      state
	values     *ConfigValues
	menuIndex  int
	category   string
	form       *huh.Form
	edited     map[string]bool
	preview    string
	err        error
	saveFunc   func(*config.Config) error
	accessible bool
	path       string
}

type Options struct {
	Config     *config.Config
	SaveFunc   func(*config.Config) error
	Accessible bool
	// Path is shown under the title
	Path string
}

func NewModel(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	return Model{
		state:      stateMenu,
		values:     FromConfig(cfg),
		edited:     make(map[string]bool),
		saveFunc:   opts.SaveFunc,
		accessible: opts.Accessible,
		path:       opts.Path,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) dirty() bool {
	return len(m.edited) > 0
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.updateMenu(key)
		case stateForm:
			if key.String() == "esc" {
				m.state = stateMenu
				m.form = nil
				return m, nil
			}
		case statePreview:
			m.state = stateMenu
			return m, nil
		case stateConfirm:
			return m.updateConfirm(key)
		case stateSaved, stateError:
			return m, tea.Quit
		}
	}

	if m.state == stateForm && m.form != nil {
		return m.updateForm(msg)
	}
	return m, nil
}

func (m Model) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		if m.dirty() {
			m.state = stateConfirm
			return m, nil
		}
		return m, tea.Quit

	case "up", "k":
		if m.menuIndex > 0 {
			m.menuIndex--
		}

	case "down", "j":
		if m.menuIndex < len(Categories) {
			m.menuIndex++
		}

	case "enter":
		if m.menuIndex == len(Categories) {
			return m.handleSave()
		}
		return m.openForm(Categories[m.menuIndex].ID)

	case "p":
		return m.handlePreview()

	case "s":
		return m.handleSave()
	}

	return m, nil
}

func (m Model) openForm(category string) (tea.Model, tea.Cmd) {
	form := GetFormForCategory(category, m.values)
	if form == nil {
		return m, nil
	}
	if m.accessible {
		form = form.WithAccessible(true).WithTheme(GetAccessibleTheme())
	}
	m.state = stateForm
	m.category = category
	m.form = form
	return m, form.Init()
}

// updateForm forwards msg to the open form and returns to the menu once
// the form completes, marking its category as edited.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.form.Update(msg)
	if f, ok := next.(*huh.Form); ok {
		m.form = f
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.edited[m.category] = true
		m.state = stateMenu
		m.form = nil
		return m, nil
	case huh.StateAborted:
		m.state = stateMenu
		m.form = nil
		return m, nil
	}
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		return m.handleSave()
	case "n", "N", "esc":
		return m, tea.Quit
	case "c":
		m.state = stateMenu
	}
	return m, nil
}

func (m Model) handlePreview() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err != nil {
		m.preview = ErrorStyle.Render(fmt.Sprintf("Invalid configuration: %v", err))
	} else {
		data, err := yaml.Marshal(cfg)
		if err != nil {
			m.preview = ErrorStyle.Render(err.Error())
		} else {
			m.preview = string(data)
		}
	}
	m.state = statePreview
	return m, nil
}

func (m Model) handleSave() (tea.Model, tea.Cmd) {
	cfg, err := m.values.ToConfig()
	if err != nil {
		m.state = stateError
		m.err = err
		return m, nil
	}

	if m.saveFunc != nil {
		if err := m.saveFunc(cfg); err != nil {
			m.state = stateError
			m.err = err
			return m, nil
		}
	}

	m.state = stateSaved
	m.edited = make(map[string]bool)
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("motionscan Configuration"))
	s.WriteString("\n")
	if m.path != "" {
		s.WriteString(SubtitleStyle.Render(m.path))
		s.WriteString("\n")
	}
	s.WriteString("\n")

	switch m.state {
	case stateMenu:
		s.WriteString(m.renderMenu())
	case stateForm:
		if m.form != nil {
			s.WriteString(m.form.View())
		}
	case statePreview:
		s.WriteString(BoxStyle.Render(strings.TrimRight(m.preview, "\n")))
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("any key to return"))
	case stateConfirm:
		s.WriteString(BoxStyle.
			BorderForeground(warnColor).
			Render("You have unsaved changes.\n\nSave before quitting?\n\n[y] Yes  [n] No  [c] Cancel"))
	case stateSaved:
		s.WriteString(SuccessStyle.Render("Configuration saved successfully!"))
		s.WriteString("\n\nPress any key to exit.")
	case stateError:
		s.WriteString(ErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		s.WriteString("\n\nPress any key to exit.")
	}

	return s.String()
}

func (m Model) renderMenu() string {
	var s strings.Builder

	for i, cat := range Categories {
		cursor := "  "
		style := UnselectedStyle
		if i == m.menuIndex {
			cursor = "> "
			style = SelectedStyle
		}
		s.WriteString(style.Render(cursor + cat.Name))
		if m.edited[cat.ID] {
			s.WriteString(EditedStyle.Render(" *"))
		}
		if i == m.menuIndex {
			s.WriteString(DescriptionStyle.Render("  " + cat.Description))
		}
		s.WriteString("\n")
	}

	saveStyle := UnselectedStyle
	saveCursor := "  "
	if m.menuIndex == len(Categories) {
		saveCursor = "> "
		saveStyle = SelectedStyle
	}
	s.WriteString("\n")
	s.WriteString(saveStyle.Render(saveCursor + "Save Configuration"))
	s.WriteString("\n\n")

	s.WriteString(HelpStyle.Render("↑/↓ navigate • enter select • p preview • s save • q quit"))

	return s.String()
}

// Run starts the editor and blocks until it exits
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

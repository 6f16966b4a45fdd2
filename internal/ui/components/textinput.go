package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/studynav/internal/ui/theme"
)

// TextInput wraps bubbles/textinput with app styling and a one-shot Take
// for submit-style fields.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a focused input.
func NewTextInput(placeholder string, charLimit int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = "› "
	if charLimit > 0 {
		ti.CharLimit = charLimit
	}
	ti.Focus()
	return TextInput{Model: ti}
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the input inside a rounded box of the given width.
func (t TextInput) View(width int) string {
	border := theme.Border
	if t.Model.Focused() {
		border = theme.Primary
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(width-2, 10)).
		Render(t.Model.View())
}

// Value returns the current input value.
func (t TextInput) Value() string {
	return t.Model.Value()
}

// SetValue replaces the input value and moves the cursor to the end.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
	t.Model.CursorEnd()
}

// Take returns the trimmed value and clears the field.
func (t *TextInput) Take() string {
	v := strings.TrimSpace(t.Model.Value())
	t.Model.Reset()
	return v
}

// Blur and Focus toggle keyboard capture.
func (t *TextInput) Blur() { t.Model.Blur() }

func (t *TextInput) Focus() tea.Cmd { return t.Model.Focus() }

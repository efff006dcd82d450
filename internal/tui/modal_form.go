package tui

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
)

const formModalWidth = 70

type formKind int

const (
	formQuestion formKind = iota
	formDescription
)

// formModal wraps a single-field huh form used to collect a question or a
// new description. The value lives on the heap so the form keeps writing to
// it while the Model is copied between updates.
type formModal struct {
	kind   formKind
	itemID string
	value  *string
	form   *huh.Form
}

func formTheme() *huh.Theme {
	t := huh.ThemeBase()
	t.Focused.Base = t.Focused.Base.BorderForeground(styles.ColorPrimary)
	t.Focused.Title = t.Focused.Title.Foreground(styles.ColorPrimary).Bold(true)
	t.Focused.Description = t.Focused.Description.Foreground(styles.ColorMuted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(styles.ColorError)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(styles.ColorError)
	return t
}

func formKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()
	km.Quit = key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel"))
	return km
}

func newQuestionModal(item review.Item) *formModal {
	value := new(string)
	field := huh.NewText().
		Title("Ask a question").
		Description(fmt.Sprintf("About %q. The item stays out of the approved and rejected lists.", item.Title)).
		Placeholder("What would you like to know?").
		Lines(5).
		Value(value).
		Validate(func(s string) error {
			if review.IsBlank(s) {
				return errors.New("question must not be blank")
			}
			return nil
		})

	return &formModal{kind: formQuestion, itemID: item.ID, value: value, form: buildForm(field)}
}

func newDescriptionModal(item review.Item) *formModal {
	value := new(string)
	*value = item.Description
	field := huh.NewText().
		Title("Edit description").
		Description(item.Title).
		Lines(12).
		CharLimit(review.MaxDescriptionLength).
		Value(value).
		Validate(func(s string) error {
			if err := review.ValidateDescription(s); err != nil {
				var vErr *review.ValidationError
				if errors.As(err, &vErr) {
					return errors.New(vErr.Reason)
				}
				return err
			}
			return nil
		})

	return &formModal{kind: formDescription, itemID: item.ID, value: value, form: buildForm(field)}
}

func buildForm(field huh.Field) *huh.Form {
	return huh.NewForm(huh.NewGroup(field)).
		WithTheme(formTheme()).
		WithKeyMap(formKeyMap()).
		WithWidth(formModalWidth).
		WithShowHelp(true)
}

// Init starts the embedded form.
func (m *formModal) Init() tea.Cmd {
	return m.form.Init()
}

// Update forwards msg to the form.
func (m *formModal) Update(msg tea.Msg) tea.Cmd {
	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}
	return cmd
}

// Submitted reports whether the form completed.
func (m *formModal) Submitted() bool {
	return m.form.State == huh.StateCompleted
}

// Aborted reports whether the form was cancelled.
func (m *formModal) Aborted() bool {
	return m.form.State == huh.StateAborted
}

// Value returns the text entered so far.
func (m *formModal) Value() string {
	return *m.value
}

// View renders the modal box.
func (m *formModal) View() string {
	counter := ""
	if m.kind == formDescription {
		counter = styles.MutedStyle.Render(fmt.Sprintf("%d / %d", utf8.RuneCountInString(*m.value), review.MaxDescriptionLength))
	}
	help := styles.ModalHelpStyle.Render("[enter] submit  [alt+enter] new line  [esc] cancel")
	return styles.ModalStyle.Render(m.form.View() + "\n" + counter + help)
}

// Package form implements the terminal search form for the lookup service.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/kailas-cloud/lookup/internal/domain"
	"github.com/kailas-cloud/lookup/internal/domain/query"
	"github.com/kailas-cloud/lookup/pkg/client"
)

// Field names, shared with the service's validation errors.
const (
	FieldEmail  = "email"
	FieldNumber = "number"
)

const (
	focusEmail = iota
	focusNumber
	fieldCount
)

// Searcher runs a lookup query. *client.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, email, number string) ([]client.Record, error)
}

// State is the form's submission state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// searchResultMsg carries a finished search back to Update.
// gen identifies the submission it answers.
type searchResultMsg struct {
	gen     uint64
	records []client.Record
	err     error
}

// Model is the Bubble Tea model for the search form.
type Model struct {
	searcher Searcher
	logger   *zap.Logger

	email   textinput.Model
	number  textinput.Model
	focus   int
	spinner spinner.Model
	help    help.Model
	keys    formKeys

	state    State
	results  []client.Record
	searched bool
	errs     map[string]string

	gen    uint64
	cancel context.CancelFunc
}

// New creates a form that queries searcher. A nil logger discards diagnostics.
func New(searcher Searcher, logger *zap.Logger) Model {
	if logger == nil {
		logger = zap.NewNop()
	}

	email := textinput.New()
	email.Placeholder = "jill@gmail.com"
	email.Prompt = ""
	email.CharLimit = 254
	email.Focus()

	number := textinput.New()
	number.Placeholder = "99-99-99"
	number.Prompt = ""
	number.CharLimit = 8

	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		searcher: searcher,
		logger:   logger,
		email:    email,
		number:   number,
		spinner:  s,
		help:     help.New(),
		keys:     FormKeyMap(),
		errs:     map[string]string{},
	}
}

// WithValues pre-fills the inputs. The number is masked.
func (m Model) WithValues(email, number string) Model {
	m.email.SetValue(email)
	m.email.CursorEnd()
	m.number.SetValue(MaskNumber(number))
	m.number.CursorEnd()
	return m
}

// State returns the submission state.
func (m Model) State() State { return m.state }

// Results returns the records of the last completed search.
func (m Model) Results() []client.Record { return m.results }

// FieldError returns the message shown under field, if any.
func (m Model) FieldError(field string) string { return m.errs[field] }

// Values returns the current input values.
func (m Model) Values() (email, number string) {
	return m.email.Value(), m.number.Value()
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.supersede()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			return m.submit()
		case key.Matches(msg, m.keys.Next):
			return m.setFocus((m.focus + 1) % fieldCount)
		case key.Matches(msg, m.keys.Prev):
			return m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		}
		return m.updateInput(msg)

	case searchResultMsg:
		return m.finish(msg), nil

	case spinner.TickMsg:
		if m.state != StateSubmitting {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateInput(msg)
}

func (m Model) setFocus(i int) (tea.Model, tea.Cmd) {
	m.focus = i
	if i == focusEmail {
		m.number.Blur()
		return m, m.email.Focus()
	}
	m.email.Blur()
	return m, m.number.Focus()
}

func (m Model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	prevEmail, prevNumber := m.Values()

	var cmd tea.Cmd
	if m.focus == focusEmail {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.number, cmd = m.number.Update(msg)
		if masked := MaskNumber(m.number.Value()); masked != m.number.Value() {
			m.number.SetValue(masked)
			m.number.CursorEnd()
		}
	}

	email, number := m.Values()
	if email != prevEmail || number != prevNumber {
		if m.state == StateSubmitting {
			m.logger.Debug("pending search superseded by edit", zap.Uint64("gen", m.gen))
			m.supersede()
		}
	}
	return m, cmd
}

// submit validates locally and starts a search. Ignored while a search is pending.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.state == StateSubmitting {
		return m, nil
	}

	email, number := m.Values()
	if _, err := query.New(email, number); err != nil {
		m.errs = fieldErrors(err)
		return m, nil
	}

	m.errs = map[string]string{}
	m.gen++
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.state = StateSubmitting

	return m, tea.Batch(m.spinner.Tick, searchCmd(ctx, m.searcher, m.gen, email, number))
}

// supersede cancels the pending search and makes any late answer stale.
func (m *Model) supersede() {
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	if m.state == StateSubmitting {
		m.gen++
		m.state = StateIdle
	}
}

func (m Model) finish(msg searchResultMsg) Model {
	if msg.gen != m.gen {
		return m
	}
	if m.cancel != nil {
		m.cancel()
		m.cancel = nil
	}
	m.state = StateIdle

	if msg.err != nil {
		var ve *domain.ValidationError
		if errors.As(msg.err, &ve) {
			m.errs = fieldErrors(ve)
			return m
		}
		m.logger.Error("search failed",
			zap.Uint64("gen", msg.gen),
			zap.Error(msg.err),
		)
		return m
	}

	m.results = msg.records
	m.searched = true
	return m
}

func searchCmd(ctx context.Context, s Searcher, gen uint64, email, number string) tea.Cmd {
	return func() tea.Msg {
		recs, err := s.Search(ctx, email, number)
		return searchResultMsg{gen: gen, records: recs, err: err}
	}
}

func fieldErrors(err error) map[string]string {
	out := map[string]string{}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		for _, f := range ve.Fields {
			if _, ok := out[f.Field]; !ok {
				out[f.Field] = f.Message
			}
		}
	}
	return out
}

// FormatRecord renders one result line.
func FormatRecord(r client.Record) string {
	return fmt.Sprintf("Email: %s, Number: %s", r.Email, r.Number)
}

// View renders the form, its errors, and the result list.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Record lookup"))
	b.WriteString("\n\n")

	m.writeField(&b, "Email", m.email.View(), FieldEmail)
	m.writeField(&b, "Number", m.number.View(), FieldNumber)

	b.WriteString("\n")
	if m.state == StateSubmitting {
		b.WriteString(m.spinner.View() + " Searching...\n")
	} else {
		b.WriteString(dimStyle.Render("[ Search ]") + "\n")
	}

	if m.searched {
		b.WriteString("\n")
		if len(m.results) == 0 {
			b.WriteString(dimStyle.Render("No records found.") + "\n")
		}
		for _, r := range m.results {
			b.WriteString(FormatRecord(r) + "\n")
		}
	}

	b.WriteString("\n" + m.help.View(m.keys) + "\n")
	return b.String()
}

func (m Model) writeField(b *strings.Builder, label, input, field string) {
	b.WriteString(labelStyle.Render(label) + input + "\n")
	if msg := m.errs[field]; msg != "" {
		b.WriteString(labelStyle.Render("") + errorStyle.Render(msg) + "\n")
	}
}

package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/colonyops/freigabe/internal/core/review"
)

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	m.progress.Width = max(min(msg.Width-24, cardMaxWidth), 10)

	var cmds []tea.Cmd
	if m.modal == modalForm {
		cmds = append(cmds, m.form.Update(msg))
	}

	m, cmd := m.maybeCelebrate()
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleDecisionSettled(msg decisionSettledMsg) (tea.Model, tea.Cmd) {
	err := m.session.Settle(msg.sub, msg.err)
	cmds := []tea.Cmd{m.ensureToastTick()}

	if err == nil {
		m.swipe = newSwipe(msg.sub.Decision())
		m.ticks.swipeGen++
		cmds = append(cmds, scheduleSwipeTick(m.ticks.swipeGen))
	}
	m.refreshKeys()

	m, cmd := m.maybeCelebrate()
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

func (m Model) handleEditSettled(msg editSettledMsg) (tea.Model, tea.Cmd) {
	_ = m.session.SettleEdit(msg.edit, msg.err)
	return m, m.ensureToastTick()
}

func (m Model) handleToastTick() (tea.Model, tea.Cmd) {
	m.toastController.Tick(toastTickInterval)
	if !m.toastController.HasToasts() {
		m.ticks.toast = false
		return m, nil
	}
	return m, scheduleToastTick()
}

func (m Model) handleSwipeTick(msg swipeTickMsg) (tea.Model, tea.Cmd) {
	if m.swipe == nil || msg.gen != m.ticks.swipeGen {
		return m, nil
	}
	if !m.swipe.Step() {
		m.swipe = nil
		return m, nil
	}
	return m, scheduleSwipeTick(msg.gen)
}

func (m Model) handleConfettiTick() (tea.Model, tea.Cmd) {
	if m.confetti == nil {
		return m, nil
	}
	if !m.confetti.Step() {
		m.confetti = nil
		return m, nil
	}
	return m, scheduleConfettiTick()
}

// handleKey processes key presses.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}

	if m.configErr != nil {
		if key.Matches(msg, m.keys.Quit) {
			return m.quit()
		}
		return m, nil
	}

	switch m.modal {
	case modalForm:
		return m.afterForm(m.form.Update(msg))
	case modalDetail:
		if key.Matches(msg, m.keys.Back, m.keys.Open, m.keys.Quit) {
			return m.closeModal(), nil
		}
		return m, m.detail.Update(msg)
	case modalAttachments:
		if key.Matches(msg, m.keys.Back, m.keys.Attachments, m.keys.Quit) {
			return m.closeModal(), nil
		}
		return m, nil
	}

	approved, rejected := m.session.Approved(), m.session.Rejected()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()

	case key.Matches(msg, m.keys.Back):
		if m.toastController.HasToasts() {
			m.toastController.Dismiss()
		} else {
			m.lists.focus = focusCard
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		m.lists = m.lists.cycle(len(approved), len(rejected))
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.lists = m.lists.move(-1, len(approved), len(rejected))
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.lists = m.lists.move(1, len(approved), len(rejected))
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.openDetail(approved, rejected)

	case key.Matches(msg, m.keys.Approve):
		return m.decide(review.DecisionApproved, "")

	case key.Matches(msg, m.keys.Reject):
		return m.decide(review.DecisionRejected, "")

	case key.Matches(msg, m.keys.Ask):
		if m.session.State() != review.StateIdle {
			return m, nil
		}
		item, _ := m.session.Current()
		return m.openForm(newQuestionModal(item))

	case key.Matches(msg, m.keys.Edit):
		if m.session.IsComplete() || m.session.Editing() {
			return m, nil
		}
		item, _ := m.session.Current()
		return m.openForm(newDescriptionModal(item))

	case key.Matches(msg, m.keys.Attachments):
		if m.session.IsComplete() {
			return m, nil
		}
		m.modal = modalAttachments
		return m, nil
	}

	return m, nil
}

// decide starts a decision for the current item. Busy and complete sessions
// ignore the request; validation failures have already been notified.
func (m Model) decide(d review.Decision, question string) (tea.Model, tea.Cmd) {
	sub, err := m.session.BeginDecision(d, question)
	if err != nil {
		if !review.IsIgnored(err) {
			m.log.Debug().Err(err).Msg("decision rejected")
		}
		return m, m.ensureToastTick()
	}
	m.refreshKeys()
	return m, runDecision(m.ctx, sub)
}

func (m Model) editDescription(itemID, text string) (tea.Model, tea.Cmd) {
	if item, ok := m.session.Current(); !ok || item.ID != itemID {
		m.bus.Warnf("The item changed before the description was saved")
		return m, m.ensureToastTick()
	}

	edit, err := m.session.BeginEdit(text)
	if err != nil {
		return m, m.ensureToastTick()
	}
	return m, runEdit(m.ctx, edit)
}

func (m Model) openForm(f *formModal) (tea.Model, tea.Cmd) {
	m.modal = modalForm
	m.form = f
	return m, f.Init()
}

// afterForm inspects the form after an update and acts on submit or cancel.
func (m Model) afterForm(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	f := m.form
	switch {
	case f.Aborted():
		return m.closeModal(), nil
	case f.Submitted():
		m = m.closeModal()
		if f.kind == formQuestion {
			return m.decide(review.DecisionQuestioned, f.Value())
		}
		return m.editDescription(f.itemID, f.Value())
	}
	return m, cmd
}

func (m Model) openDetail(approved, rejected []review.ProcessedItem) (tea.Model, tea.Cmd) {
	id, ok := m.lists.selected(approved, rejected)
	if !ok {
		return m, nil
	}

	entry, ok := m.session.SelectProcessed(id)
	if !ok {
		m.log.Error().Str("item_id", id).Msg("processed item not found")
		return m, nil
	}

	m.detail = newDetailModal(entry, m.md, m.width, m.height)
	m.modal = modalDetail
	return m, nil
}

func (m Model) closeModal() Model {
	m.modal = modalNone
	m.form = nil
	m.detail = nil
	return m
}

func (m *Model) refreshKeys() {
	m.keys.setDeciding(!m.session.IsComplete())
}

// Package tui implements the interactive review program.
package tui

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/colonyops/freigabe/internal/core/logging"
	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/core/review"
	"github.com/colonyops/freigabe/internal/core/styles"
	tuinotify "github.com/colonyops/freigabe/internal/tui/notify"
)

type modalState int

const (
	modalNone modalState = iota
	modalForm
	modalDetail
	modalAttachments
)

// Options configures the review program.
type Options struct {
	// Session is the review session. It must be nil when ConfigErr is set.
	Session *review.Session

	// Bus receives the session notifications and feeds the toasts. The
	// session must have been created with the same bus as its notifier.
	Bus *tuinotify.Bus

	// ConfigErr replaces the whole screen with a static message.
	ConfigErr error

	Customer  string
	ToastTTL  time.Duration
	ErrorTTL  time.Duration
	Celebrate bool

	// Warnings are shown as toasts on start.
	Warnings []string

	// Rand seeds the celebration. A time-seeded source is used when nil.
	Rand *rand.Rand
}

// completion is set by the session's completion listener. It lives on the
// heap because the listener outlives any single copy of Model.
type completion struct {
	fired      bool
	celebrated bool
}

// tickState records the running timer chains. It is shared between model
// copies so the chain armed in Init is seen by Update.
type tickState struct {
	toast    bool
	swipeGen int
}

// Model is the Bubble Tea model of the review screen.
type Model struct {
	ctx       context.Context
	log       zerolog.Logger
	session   *review.Session
	bus       *tuinotify.Bus
	configErr error
	customer  string

	keys     keyMap
	help     help.Model
	progress progress.Model
	md       *markdown

	toastController *ToastController
	toastView       *ToastView

	lists  listState
	modal  modalState
	form   *formModal
	detail *detailModal

	swipe      *swipe
	confetti   *confetti
	completion *completion
	ticks      *tickState
	celebrate  bool
	rng        *rand.Rand
	warnings   []string

	width    int
	height   int
	quitting bool
}

// New creates the review model. ctx bounds every remote call started by the
// program.
func New(ctx context.Context, opts Options) Model {
	bus := opts.Bus
	if bus == nil {
		bus = tuinotify.NewBus(nil)
	}

	toastCtrl := NewToastController(opts.ToastTTL, opts.ErrorTTL)
	bus.Subscribe(func(n notify.Notification) {
		toastCtrl.Push(n)
	})

	rng := opts.Rand
	if rng == nil {
		now := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(now, now>>1))
	}

	m := Model{
		ctx:             ctx,
		log:             logging.Component("tui"),
		session:         opts.Session,
		bus:             bus,
		configErr:       opts.ConfigErr,
		customer:        opts.Customer,
		keys:            defaultKeyMap(),
		help:            help.New(),
		progress:        progress.New(progress.WithSolidFill(string(styles.ColorPrimary)), progress.WithoutPercentage()),
		md:              newMarkdown(),
		toastController: toastCtrl,
		toastView:       NewToastView(toastCtrl),
		completion:      &completion{},
		ticks:           &tickState{},
		celebrate:       opts.Celebrate,
		rng:             rng,
		warnings:        opts.Warnings,
	}

	if m.session != nil {
		done := m.completion
		m.session.OnComplete(func() { done.fired = true })
		m.refreshKeys()
	}

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	for _, w := range m.warnings {
		m.bus.Warnf("%s", w)
	}
	return m.ensureToastTick()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case decisionSettledMsg:
		return m.handleDecisionSettled(msg)
	case editSettledMsg:
		return m.handleEditSettled(msg)

	case toastTickMsg:
		return m.handleToastTick()
	case swipeTickMsg:
		return m.handleSwipeTick(msg)
	case confettiTickMsg:
		return m.handleConfettiTick()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Internal huh messages (field focus, group changes) and viewport
	// events go to whichever modal is open.
	switch m.modal {
	case modalForm:
		return m.afterForm(m.form.Update(msg))
	case modalDetail:
		return m, m.detail.Update(msg)
	}
	return m, nil
}

func (m Model) quit() (Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// ensureToastTick arms the toast timer when toasts are showing and no tick
// chain is running yet.
func (m Model) ensureToastTick() tea.Cmd {
	if m.ticks.toast || !m.toastController.HasToasts() {
		return nil
	}
	m.ticks.toast = true
	return scheduleToastTick()
}

// maybeCelebrate starts the confetti once after the completion event, as
// soon as the screen size is known. Empty sessions are not celebrated.
func (m Model) maybeCelebrate() (Model, tea.Cmd) {
	c := m.completion
	if !c.fired || c.celebrated || m.width == 0 {
		return m, nil
	}
	c.celebrated = true

	if !m.celebrate || m.session == nil || m.session.Len() == 0 {
		return m, nil
	}

	m.confetti = newConfetti(m.cardWidth(), m.bodyHeight()-1, m.rng)
	return m, scheduleConfettiTick()
}

func (m Model) bodyHeight() int {
	return max(m.height-5, 3)
}

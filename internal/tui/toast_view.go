package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/colonyops/freigabe/internal/core/notify"
	"github.com/colonyops/freigabe/internal/core/styles"
)

func scheduleToastTick() tea.Cmd {
	return tea.Tick(toastTickInterval, func(t time.Time) tea.Msg {
		return toastTickMsg(t)
	})
}

// ToastView renders toast notifications and composites them as an overlay.
type ToastView struct {
	controller *ToastController
}

func NewToastView(controller *ToastController) *ToastView {
	return &ToastView{controller: controller}
}

// View renders the toast stack, oldest at top and newest at bottom.
func (v *ToastView) View() string {
	toasts := v.controller.Toasts()
	if len(toasts) == 0 {
		return ""
	}

	rendered := make([]string, 0, len(toasts))
	for _, t := range toasts {
		rendered = append(rendered, renderToast(t.notification))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func renderToast(n notify.Notification) string {
	var icon string
	var style lipgloss.Style

	switch n.Level {
	case notify.LevelError:
		icon, style = styles.IconNotifyError, styles.ToastErrorStyle
	case notify.LevelWarning:
		icon, style = styles.IconNotifyWarning, styles.ToastWarningStyle
	case notify.LevelSuccess:
		icon, style = styles.IconNotifySuccess, styles.ToastSuccessStyle
	default:
		icon, style = styles.IconNotifyInfo, styles.ToastInfoStyle
	}

	content := icon + " " + n.Message
	if n.Detail != "" {
		content += "\n" + styles.MutedStyle.Render(n.Detail)
	}
	return style.Width(toastWidth).Render(content)
}

// Overlay draws the toast stack over the lower-right corner of background.
func (v *ToastView) Overlay(background string, width, height int) string {
	content := v.View()
	if content == "" {
		return background
	}
	return overlayBottomRight(background, content, width, height)
}

func overlayBottomRight(bg, fg string, width, height int) string {
	x := max(width-lipgloss.Width(fg)-1, 0)
	y := max(height-lipgloss.Height(fg), 0)
	return overlayAt(bg, fg, x, y, height)
}

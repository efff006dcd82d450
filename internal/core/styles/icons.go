package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

var (
	IconApproved   = "✓"
	IconRejected   = "✗"
	IconQuestioned = "?"
	IconAttachment = "\U000F0066" // 󰁦
	IconLink       = "\uf0c1"
	IconSpinner    = "◌"
	IconDone       = "\U000F0E1E" // 󰸞

	IconNotifyInfo    = "ℹ"
	IconNotifySuccess = "✓"
	IconNotifyWarning = "⚠"
	IconNotifyError   = "✗"
)

// Confetti glyphs used by the completion animation.
var ConfettiGlyphs = []string{"*", "+", "•", "✦", "✧", "·"}

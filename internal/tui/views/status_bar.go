package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/matheus3301/tgclone/internal/tui/model"
	"github.com/matheus3301/tgclone/internal/tui/ui"
	"github.com/rivo/tview"
)

// StatusBar is the bottom line: session, user, busy marker, clock and the
// current flash message.
type StatusBar struct {
	*tview.TextView
	theme   *ui.Theme
	session string
	user    string
	busy    bool
	hints   []ui.MenuHint
	flash   *model.FlashMessage
	now     func() time.Time
}

// NewStatusBar creates a new status bar.
func NewStatusBar(theme *ui.Theme) *StatusBar {
	sb := &StatusBar{
		TextView: tview.NewTextView().SetDynamicColors(true),
		now:      time.Now,
	}
	sb.Restyle(theme)
	return sb
}

// Restyle switches the palette and redraws.
func (sb *StatusBar) Restyle(theme *ui.Theme) {
	sb.theme = theme
	sb.SetBackgroundColor(theme.StatusBarBg)
	sb.SetTextColor(theme.FgColor)
	sb.render()
}

// SetSession updates the session name display.
func (sb *StatusBar) SetSession(name string) {
	sb.session = name
	sb.render()
}

// SetUser updates the signed-in user display. "" hides it.
func (sb *StatusBar) SetUser(name string) {
	sb.user = name
	sb.render()
}

// SetBusy toggles the activity marker.
func (sb *StatusBar) SetBusy(busy bool) {
	sb.busy = busy
	sb.render()
}

// SetHints updates the key hints of the current page.
func (sb *StatusBar) SetHints(hints []ui.MenuHint) {
	sb.hints = hints
	sb.render()
}

// SetFlash shows msg; nil clears it.
func (sb *StatusBar) SetFlash(msg *model.FlashMessage) {
	sb.flash = msg
	sb.render()
}

func (sb *StatusBar) render() {
	sb.Clear()

	busy := " "
	if sb.busy {
		busy = fmt.Sprintf("[%s]~[-]", ui.Tag(sb.theme.AccentColor))
	}
	line := fmt.Sprintf(" [::b]%s[-:-:-]", tview.Escape(sb.session))
	if sb.user != "" {
		line += " | " + cleanText(sb.user)
	}
	line += fmt.Sprintf(" %s | %s", busy, sb.now().Format("15:04"))

	if sb.flash != nil {
		color := sb.theme.FlashInfoColor
		switch sb.flash.Level {
		case model.FlashWarn:
			color = sb.theme.FlashWarnColor
		case model.FlashErr:
			color = sb.theme.FlashErrColor
		}
		line += fmt.Sprintf(" | [%s]%s[-]", ui.Tag(color), tview.Escape(sb.flash.Text))
	} else if len(sb.hints) > 0 {
		kc := ui.Tag(sb.theme.MenuKeyColor)
		parts := make([]string, len(sb.hints))
		for i, h := range sb.hints {
			parts[i] = fmt.Sprintf("[%s]<%s>[-] %s", kc, h.Key, tview.Escape(h.Description))
		}
		line += " | " + strings.Join(parts, "  ")
	}

	_, _ = fmt.Fprint(sb, line)
}

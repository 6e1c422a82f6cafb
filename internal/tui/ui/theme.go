package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/matheus3301/tgclone/internal/prefs"
	"github.com/rivo/tview"
)

// Theme holds the colours of one palette.
type Theme struct {
	Name             prefs.Theme
	BgColor          tcell.Color
	FgColor          tcell.Color
	MutedColor       tcell.Color
	BorderColor      tcell.Color
	BorderFocusColor tcell.Color
	TitleColor       tcell.Color
	AccentColor      tcell.Color
	FieldBgColor     tcell.Color
	ListCursorFg     tcell.Color
	ListCursorBg     tcell.Color
	CrumbActiveFg    tcell.Color
	CrumbActiveBg    tcell.Color
	CrumbInactiveFg  tcell.Color
	CrumbInactiveBg  tcell.Color
	MenuKeyColor     tcell.Color
	ErrorColor       tcell.Color
	FlashInfoColor   tcell.Color
	FlashWarnColor   tcell.Color
	FlashErrColor    tcell.Color
	StatusBarBg      tcell.Color
}

// ThemeFor returns the palette for t. Unknown themes get the light palette.
func ThemeFor(t prefs.Theme) *Theme {
	switch t {
	case prefs.Dark:
		return darkTheme()
	case prefs.Black:
		return blackTheme()
	default:
		return lightTheme()
	}
}

func lightTheme() *Theme {
	return &Theme{
		Name:             prefs.Light,
		BgColor:          tcell.ColorWhite,
		FgColor:          tcell.NewHexColor(0x1f2937),
		MutedColor:       tcell.ColorGray,
		BorderColor:      tcell.NewHexColor(0xd1d5db),
		BorderFocusColor: tcell.NewHexColor(0x2aabee),
		TitleColor:       tcell.NewHexColor(0x2aabee),
		AccentColor:      tcell.NewHexColor(0x2aabee),
		FieldBgColor:     tcell.NewHexColor(0xf3f4f6),
		ListCursorFg:     tcell.ColorWhite,
		ListCursorBg:     tcell.NewHexColor(0x2aabee),
		CrumbActiveFg:    tcell.ColorWhite,
		CrumbActiveBg:    tcell.NewHexColor(0x2aabee),
		CrumbInactiveFg:  tcell.NewHexColor(0x1f2937),
		CrumbInactiveBg:  tcell.NewHexColor(0xe5e7eb),
		MenuKeyColor:     tcell.NewHexColor(0x0088cc),
		ErrorColor:       tcell.NewHexColor(0xdc2626),
		FlashInfoColor:   tcell.NewHexColor(0x047857),
		FlashWarnColor:   tcell.NewHexColor(0xb45309),
		FlashErrColor:    tcell.NewHexColor(0xdc2626),
		StatusBarBg:      tcell.NewHexColor(0xe5e7eb),
	}
}

func darkTheme() *Theme {
	return &Theme{
		Name:             prefs.Dark,
		BgColor:          tcell.NewHexColor(0x17212b),
		FgColor:          tcell.NewHexColor(0xe5e7eb),
		MutedColor:       tcell.NewHexColor(0x708499),
		BorderColor:      tcell.NewHexColor(0x2b5278),
		BorderFocusColor: tcell.NewHexColor(0x5eb5f7),
		TitleColor:       tcell.NewHexColor(0x5eb5f7),
		AccentColor:      tcell.NewHexColor(0x5eb5f7),
		FieldBgColor:     tcell.NewHexColor(0x242f3d),
		ListCursorFg:     tcell.ColorWhite,
		ListCursorBg:     tcell.NewHexColor(0x2b5278),
		CrumbActiveFg:    tcell.NewHexColor(0x17212b),
		CrumbActiveBg:    tcell.NewHexColor(0x5eb5f7),
		CrumbInactiveFg:  tcell.NewHexColor(0xe5e7eb),
		CrumbInactiveBg:  tcell.NewHexColor(0x242f3d),
		MenuKeyColor:     tcell.NewHexColor(0x5eb5f7),
		ErrorColor:       tcell.NewHexColor(0xf87171),
		FlashInfoColor:   tcell.NewHexColor(0x6ee7b7),
		FlashWarnColor:   tcell.ColorOrange,
		FlashErrColor:    tcell.NewHexColor(0xf87171),
		StatusBarBg:      tcell.NewHexColor(0x0e1621),
	}
}

func blackTheme() *Theme {
	return &Theme{
		Name:             prefs.Black,
		BgColor:          tcell.ColorBlack,
		FgColor:          tcell.ColorWhite,
		MutedColor:       tcell.ColorDarkGray,
		BorderColor:      tcell.NewHexColor(0x262626),
		BorderFocusColor: tcell.ColorWhite,
		TitleColor:       tcell.ColorWhite,
		AccentColor:      tcell.NewHexColor(0x3b82f6),
		FieldBgColor:     tcell.NewHexColor(0x111111),
		ListCursorFg:     tcell.ColorBlack,
		ListCursorBg:     tcell.ColorWhite,
		CrumbActiveFg:    tcell.ColorBlack,
		CrumbActiveBg:    tcell.ColorWhite,
		CrumbInactiveFg:  tcell.ColorWhite,
		CrumbInactiveBg:  tcell.NewHexColor(0x262626),
		MenuKeyColor:     tcell.NewHexColor(0x3b82f6),
		ErrorColor:       tcell.ColorRed,
		FlashInfoColor:   tcell.ColorGreen,
		FlashWarnColor:   tcell.ColorYellow,
		FlashErrColor:    tcell.ColorRed,
		StatusBarBg:      tcell.ColorBlack,
	}
}

// Apply sets tview's global styles from the palette so that widgets created
// afterwards pick it up.
func (t *Theme) Apply() {
	tview.Styles.PrimitiveBackgroundColor = t.BgColor
	tview.Styles.ContrastBackgroundColor = t.FieldBgColor
	tview.Styles.MoreContrastBackgroundColor = t.StatusBarBg
	tview.Styles.BorderColor = t.BorderColor
	tview.Styles.TitleColor = t.TitleColor
	tview.Styles.GraphicsColor = t.BorderColor
	tview.Styles.PrimaryTextColor = t.FgColor
	tview.Styles.SecondaryTextColor = t.AccentColor
	tview.Styles.TertiaryTextColor = t.MutedColor
	tview.Styles.InverseTextColor = t.BgColor
	tview.Styles.ContrastSecondaryTextColor = t.MutedColor
}

// Tag returns the tview colour tag for c, e.g. "#2aabee".
func Tag(c tcell.Color) string {
	return fmt.Sprintf("#%06x", c.Hex())
}

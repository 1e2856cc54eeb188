package styles

// Tip: To find icons use https://github.com/loichyan/nerdfix

// Icon handles used in button labels.
const (
	IconHandleConfirm = "confirm"
	IconHandleClear   = "clear"
	IconHandleHold    = "hold"
)

var (
	IconConfirm = "\uf00c" // nf-fa-check
	IconClear   = "\uf00d" // nf-fa-times
	IconHold    = "\uf192" // nf-fa-dot_circle_o
)

// Icon returns the glyph for an icon handle, or the handle itself when it is
// not a known icon.
func Icon(handle string) string {
	switch handle {
	case IconHandleConfirm:
		return IconConfirm
	case IconHandleClear:
		return IconClear
	case IconHandleHold:
		return IconHold
	case "":
		return ""
	}
	return handle
}

// UsePlainIcons swaps the nerd font glyphs for plain characters.
func UsePlainIcons() {
	IconConfirm = "✓"
	IconClear = "✕"
	IconHold = "●"
}

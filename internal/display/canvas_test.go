package display

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/touchgate/internal/core/dialog"
	"github.com/colonyops/touchgate/internal/core/geom"
	"github.com/colonyops/touchgate/internal/core/paint"
	"github.com/colonyops/touchgate/internal/core/styles"
)

var testLayout = dialog.Layout{Width: 20, Height: 8, BarHeight: 3, ProgressHeight: 1}

func plainRows(c *Canvas) []string {
	return strings.Split(ansi.Strip(c.String()), "\n")
}

func TestCanvas_BlankDimensions(t *testing.T) {
	c := NewCanvas(testLayout)
	rows := plainRows(c)

	require.Len(t, rows, 8)
	for _, r := range rows {
		assert.Equal(t, 20, ansi.StringWidth(r))
		assert.Empty(t, strings.TrimSpace(r))
	}
}

func TestCanvas_ButtonCentersLabel(t *testing.T) {
	c := NewCanvas(testLayout)
	c.Button(testLayout.ActionBar(), paint.Label{Text: "OK"}, styles.ButtonConfirm)

	rows := plainRows(c)
	assert.Equal(t, "OK", strings.TrimSpace(rows[6]), "label on the middle bar row")
	assert.Equal(t, 9, strings.Index(rows[6], "OK"))
	assert.Empty(t, strings.TrimSpace(rows[5]))
}

func TestCanvas_ButtonsSplitBar(t *testing.T) {
	c := NewCanvas(testLayout)
	left, right := testLayout.ActionBar().SplitH()
	c.Button(left, paint.Label{Text: "No"}, styles.ButtonCancel)
	c.Button(right, paint.Label{Text: "Yes"}, styles.ButtonConfirm)

	row := plainRows(c)[6]
	assert.Less(t, strings.Index(row, "No"), 10)
	assert.GreaterOrEqual(t, strings.Index(row, "Yes"), 10)
	assert.Equal(t, 20, ansi.StringWidth(row))
}

func TestCanvas_RepaintReplaces(t *testing.T) {
	c := NewCanvas(testLayout)
	bar := testLayout.ActionBar()
	c.Button(bar, paint.Label{Text: "First"}, styles.ButtonConfirm)
	c.Button(bar, paint.Label{Text: "Second"}, styles.ButtonConfirmActive)

	row := plainRows(c)[6]
	assert.NotContains(t, row, "First")
	assert.Contains(t, row, "Second")
}

func TestCanvas_LongLabelTruncated(t *testing.T) {
	c := NewCanvas(testLayout)
	area := geom.Rect{X: 0, Y: 5, W: 6, H: 1}
	c.Button(area, paint.Label{Text: "Much too long"}, styles.ButtonConfirm)

	row := plainRows(c)[5]
	assert.Equal(t, 20, ansi.StringWidth(row))
	assert.NotContains(t, row, "long")
}

func TestCanvas_Progress(t *testing.T) {
	c := NewCanvas(testLayout)
	c.Progress(testLayout.ProgressArea(), 0.5, styles.ProgressActive)

	row := plainRows(c)[4]
	assert.Equal(t, 20, ansi.StringWidth(row))
	assert.Equal(t, 10, strings.Count(row, "█"))
}

func TestCanvas_PlainBody(t *testing.T) {
	c := NewCanvas(testLayout, WithMarkdown(false))
	c.Body("line one\nline two\nthree\nfour\nfive\nsix")

	rows := plainRows(c)
	assert.Equal(t, "line one", strings.TrimSpace(rows[0]))
	assert.Equal(t, "four", strings.TrimSpace(rows[3]))
	assert.Empty(t, strings.TrimSpace(rows[4]), "body stops above the progress strip")
}

func TestCanvas_ClearResets(t *testing.T) {
	c := NewCanvas(testLayout)
	c.Body("hello")
	c.Button(testLayout.ActionBar(), paint.Label{Text: "OK"}, styles.ButtonConfirm)
	c.Clear()

	assert.Empty(t, strings.TrimSpace(ansi.Strip(c.String())))
}

func TestLabelText(t *testing.T) {
	assert.Equal(t, "Go", labelText(paint.Label{Text: "Go"}))
	assert.Equal(t, styles.IconConfirm, labelText(paint.Label{Icon: styles.IconHandleConfirm}))
	assert.Equal(t, styles.IconClear+" Cancel", labelText(paint.Label{Text: "Cancel", Icon: styles.IconHandleClear}))
}

package logging

import "context"

// dialogKey carries the DialogFields of the dialog a context belongs to.
type dialogKey struct{}

// DialogFields identify one dialog in log output.
type DialogFields struct {
	Flow   string
	ID     string
	Source string
}

// WithDialog tags ctx so every event logged with it carries the dialog's
// flow, id and source. Empty fields are left out of the output.
func WithDialog(ctx context.Context, f DialogFields) context.Context {
	return context.WithValue(ctx, dialogKey{}, f)
}

// DialogFrom returns the fields stored by WithDialog.
func DialogFrom(ctx context.Context) (DialogFields, bool) {
	if ctx == nil {
		return DialogFields{}, false
	}
	f, ok := ctx.Value(dialogKey{}).(DialogFields)
	return f, ok
}

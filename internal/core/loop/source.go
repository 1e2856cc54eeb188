// Package loop provides the cooperative scheduling primitives the dialogs are
// built on: non-blocking sources, a first-ready combinator, and a
// single-threaded scheduler that drives tasks by polling them.
package loop

// Source is a non-blocking producer of values. Poll returns the next value
// and true when one is ready, or false when the caller should yield and try
// again on a later pass.
type Source[T any] interface {
	Poll() (T, bool)
}

// SourceFunc adapts a function to a Source.
type SourceFunc[T any] func() (T, bool)

func (f SourceFunc[T]) Poll() (T, bool) {
	return f()
}

// Map adapts a source to a different value type.
func Map[T, U any](src Source[T], fn func(T) U) Source[U] {
	return SourceFunc[U](func() (U, bool) {
		v, ok := src.Poll()
		if !ok {
			var zero U
			return zero, false
		}
		return fn(v), true
	})
}

// Never is a source that is always pending.
func Never[T any]() Source[T] {
	return SourceFunc[T](func() (T, bool) {
		var zero T
		return zero, false
	})
}

// Wait polls the sources in priority order and returns the index and value
// of the first one that is ready. Sources after the winner are not polled, so
// whatever they hold stays unconsumed for the next call. ok is false when
// every source is pending.
func Wait[T any](sources ...Source[T]) (index int, value T, ok bool) {
	for i, src := range sources {
		if src == nil {
			continue
		}
		if v, ready := src.Poll(); ready {
			return i, v, true
		}
	}
	var zero T
	return -1, zero, false
}

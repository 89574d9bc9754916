package buffer

// Option configures a Buffer at construction time.
type Option func(*Buffer)

// WithLineEnding sets the buffer's line ending style.
// Content passed to the constructor and all later insertions are normalized
// to this style.
func WithLineEnding(le LineEnding) Option {
	return func(b *Buffer) {
		b.lineEnding = le
	}
}

package token

import (
	"bufio"
	"io"
)

// recorder wraps a byte source and buffers every rune consumed since
// the last checkpoint, so the scanner sitting above it can recover the
// verbatim text of any span it has already read.
//
// It implements io.RuneScanner. Both the scanner and the reader built
// on top of it defer every rune or token they would otherwise read
// purely to prime themselves for their next call, rather than reading
// it eagerly (see scanner.fresh and reader.stale) - so a capture taken
// immediately after an event is produced sees offset and Text stop
// exactly at that event's own closing delimiter, never partway into
// whatever comes next.
type recorder struct {
	src    *bufio.Reader
	window []rune
	pushed []rune
	offset int
}

func newRecorder(r io.Reader) *recorder {
	return &recorder{src: bufio.NewReader(r)}
}

func (rec *recorder) ReadRune() (rune, int, error) {
	if n := len(rec.pushed); n > 0 {
		ch := rec.pushed[n-1]
		rec.pushed = rec.pushed[:n-1]
		rec.window = append(rec.window, ch)
		rec.offset++
		return ch, len(string(ch)), nil
	}
	ch, size, err := rec.src.ReadRune()
	if err != nil {
		return 0, 0, err
	}
	rec.window = append(rec.window, ch)
	rec.offset++
	return ch, size, nil
}

func (rec *recorder) UnreadRune() error {
	if len(rec.window) == 0 {
		return io.ErrShortBuffer
	}
	n := len(rec.window) - 1
	ch := rec.window[n]
	rec.window = rec.window[:n]
	rec.pushed = append(rec.pushed, ch)
	rec.offset--
	return nil
}

// Offset returns the number of runes the scanner has committed to
// since the recorder was created. It never counts a rune that is
// currently pushed back awaiting re-reading.
func (rec *recorder) Offset() int {
	return rec.offset
}

// Record starts a fresh recording window, discarding everything
// buffered so far. It is called immediately after every verbatim text
// extraction so the next window starts empty.
func (rec *recorder) Record() {
	rec.window = rec.window[:0]
}

// Text returns the last n runes recorded since the last Record call.
// Callers in this package pass -1 to take the whole window; an n that
// is negative or larger than the window is clamped to the window's
// length.
func (rec *recorder) Text(n int) string {
	if n < 0 || n > len(rec.window) {
		n = len(rec.window)
	}
	start := len(rec.window) - n
	return string(rec.window[start:])
}

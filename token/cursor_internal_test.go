package token

import (
	"strings"
	"testing"
)

// staleReader always reports a nonzero offset, simulating a pluggable
// event source that was already partway through the document when it
// was handed to New.
type staleReader struct{}

func (staleReader) Next() (Event, error) { return Event{kind: evEndDocument}, nil }
func (staleReader) Offset() int          { return 4 }

func TestNewRejectsReaderWithNonZeroOffset(t *testing.T) {
	factory := func(rec *recorder) EventReader { return staleReader{} }
	_, err := New(strings.NewReader("<a/>"), "/a", WithEventReader(factory))
	if err != ErrNoLocation {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
}

func TestRecorderTracksOffsetAcrossPushback(t *testing.T) {
	rec := newRecorder(strings.NewReader("abc"))
	r1, _, _ := rec.ReadRune()
	r2, _, _ := rec.ReadRune()
	if r1 != 'a' || r2 != 'b' {
		t.Fatalf("unexpected runes: %q %q", r1, r2)
	}
	if rec.Offset() != 2 {
		t.Fatalf("offset: got %d, want 2", rec.Offset())
	}
	rec.UnreadRune()
	if rec.Offset() != 1 {
		t.Fatalf("offset after unread: got %d, want 1", rec.Offset())
	}
	r2again, _, _ := rec.ReadRune()
	if r2again != 'b' {
		t.Fatalf("reread: got %q, want b", r2again)
	}
	if rec.Text(-1) != "ab" {
		t.Fatalf("text: got %q, want ab", rec.Text(-1))
	}
}

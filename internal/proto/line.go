package proto

// MaxLineLen is the line reassembler capacity. Bytes beyond it on a
// single line are silently discarded; the line still terminates normally
// at the next '\n'.
const MaxLineLen = 128

// LineBuffer accumulates raw bytes into complete lines.
//
// The buffer is a fixed-size array with a length counter: the capacity
// check happens at every insertion, so arbitrarily long garbage input can
// never overflow it. Carriage returns are dropped wherever they appear.
//
// The zero value is ready to use.
type LineBuffer struct {
	buf [MaxLineLen]byte
	n   int
}

// Append consumes raw bytes and returns the complete lines they finished,
// in arrival order. Partial trailing input stays buffered for the next
// call.
func (b *LineBuffer) Append(p []byte) []string {
	var lines []string
	for _, c := range p {
		switch c {
		case '\r':
			// Ignored so CRLF and LF terminators behave identically.
		case '\n':
			lines = append(lines, string(b.buf[:b.n]))
			b.n = 0
		default:
			if b.n < MaxLineLen {
				b.buf[b.n] = c
				b.n++
			}
			// Over capacity: the excess is dropped, not an error.
		}
	}
	return lines
}

// Pending returns the number of buffered bytes of the current partial
// line.
func (b *LineBuffer) Pending() int { return b.n }

// Reset discards any buffered partial line.
func (b *LineBuffer) Reset() { b.n = 0 }

// Package frame builds the page-addressed monochrome frame buffer sent to
// the display collaborator. Layout matches the SSD1306 addressing scheme:
// the buffer is split into horizontal pages of 8 pixel rows, one byte per
// column with the least significant bit on top.
package frame

import "fmt"

// Display geometry.
const (
	Width      = 128
	Height     = 32
	PageHeight = 8
	Pages      = Height / PageHeight
	BufLen     = Pages * Width
)

// CharWidth is the horizontal advance per character cell.
const CharWidth = 8

// Buffer is a full display frame. The zero value is a cleared frame.
type Buffer struct {
	pix [BufLen]byte
}

// Bytes returns the underlying frame bytes in page order.
func (b *Buffer) Bytes() []byte {
	return b.pix[:]
}

// Clear blanks the frame.
func (b *Buffer) Clear() {
	for i := range b.pix {
		b.pix[i] = 0
	}
}

// WriteChar draws one character cell with its top-left corner at (x, y).
// y must be page-aligned; it is truncated to the containing page. Cells
// that would not fit on the display are dropped.
func (b *Buffer) WriteChar(x, y int, ch byte) {
	if x < 0 || y < 0 || x > Width-CharWidth || y > Height-PageHeight {
		return
	}
	page := y / PageHeight
	g := glyph(ch)
	idx := page*Width + x
	copy(b.pix[idx:idx+CharWidth], g[:])
}

// WriteString draws s starting at (x, y), advancing one cell per character.
func (b *Buffer) WriteString(x, y int, s string) {
	for i := 0; i < len(s); i++ {
		b.WriteChar(x, y, s[i])
		x += CharWidth
	}
}

// Status holds the values shown on the two display lines. Temperature is
// already in the selected unit.
type Status struct {
	Voltage     float32
	Temperature float32
	Unit        Unit
}

// Build renders the status into the frame: sensed voltage on the first
// line, smoothed temperature with its unit on the second.
func Build(b *Buffer, st Status) {
	b.Clear()
	b.WriteString(10, 0, "VOLT:")
	b.WriteString(70, 0, fmt.Sprintf("%.3f V", st.Voltage))
	b.WriteString(10, 8, "TEMP:")
	b.WriteString(70, 8, fmt.Sprintf("%.1f %s", st.Temperature, st.Unit))
}

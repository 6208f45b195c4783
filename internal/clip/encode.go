// Package clip serializes a selected nibble range as hex text.
package clip

import (
	"strings"

	"hexview/internal/buffer"
)

const hexDigits = "0123456789abcdef"

// Encode renders the nibbles in [begin, end) of src as lowercase hex. Whole
// bytes are followed by a space; a trailing lone high nibble is not. A line
// break follows every byte that ends a display row of bytesPerLine bytes.
// Nibbles past the end of the data are dropped.
func Encode(begin, end int64, src buffer.Source, bytesPerLine int) string {
	if src == nil || begin >= end {
		return ""
	}
	if begin < 0 {
		begin = 0
	}
	if bytesPerLine < 1 {
		bytesPerLine = 1
	}

	first := begin / 2
	count := (end+1)/2 - first
	if avail := src.Size() - first; count > avail {
		count = avail
	}
	if count <= 0 {
		return ""
	}
	data := src.Read(first, int(count))
	byteAt := func(n int64) (byte, bool) {
		i := n/2 - first
		if i < 0 || i >= int64(len(data)) {
			return 0, false
		}
		return data[i], true
	}
	endOfRow := func(n int64) bool {
		return (n/2)%int64(bytesPerLine) == int64(bytesPerLine)-1
	}

	var b strings.Builder
	n := begin
	if n%2 == 1 {
		v, ok := byteAt(n)
		if !ok {
			return ""
		}
		b.WriteByte(hexDigits[v&0x0F])
		b.WriteByte(' ')
		if endOfRow(n) {
			b.WriteByte('\n')
		}
		n++
	}

	for ; n < end; n += 2 {
		v, ok := byteAt(n)
		if !ok {
			break
		}
		b.WriteByte(hexDigits[v>>4])
		if n+1 < end {
			b.WriteByte(hexDigits[v&0x0F])
			b.WriteByte(' ')
		}
		if endOfRow(n) {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

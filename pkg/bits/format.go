package bits

import "strings"

const hexDigits = "0123456789ABCDEF"

// Hex8 formats v as an assembler style hex literal, e.g. "$0F".
func Hex8(v uint8) string {
	return string([]byte{'$', hexDigits[v>>4], hexDigits[v&0xF]})
}

// Hex16 formats v as an assembler style hex literal, e.g. "$C000".
func Hex16(v uint16) string {
	return string([]byte{
		'$',
		hexDigits[v>>12&0xF],
		hexDigits[v>>8&0xF],
		hexDigits[v>>4&0xF],
		hexDigits[v&0xF],
	})
}

// HexBytes formats b as space separated hex pairs, e.g. "CB 7C".
func HexBytes(b []byte) string {
	var sb strings.Builder
	for i, v := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteByte(hexDigits[v>>4])
		sb.WriteByte(hexDigits[v&0xF])
	}
	return sb.String()
}

// Binary8 formats v as an assembler style binary literal, e.g. "%00001111".
func Binary8(v uint8) string {
	buf := make([]byte, 9)
	buf[0] = '%'
	for i := 0; i < 8; i++ {
		buf[8-i] = '0' + (v>>i)&1
	}
	return string(buf)
}

// Binary16 formats v as an assembler style binary literal.
func Binary16(v uint16) string {
	hi, lo := Split(v)
	return Binary8(hi) + Binary8(lo)[1:]
}

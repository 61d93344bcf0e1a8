package proto

import "encoding/binary"

// KeyPayload encodes a MsgKey payload.
//
// Layout (little-endian):
//   - u16: key code
//   - u8:  1 = press, 0 = release
//   - u32: rune (0 for non-text keys)
func KeyPayload(code uint16, press bool, r rune) []byte {
	buf := make([]byte, 7)
	binary.LittleEndian.PutUint16(buf[0:2], code)
	if press {
		buf[2] = 1
	}
	binary.LittleEndian.PutUint32(buf[3:7], uint32(r))
	return buf
}

// DecodeKeyPayload decodes a KeyPayload.
func DecodeKeyPayload(b []byte) (code uint16, press bool, r rune, ok bool) {
	if len(b) != 7 {
		return 0, false, 0, false
	}
	code = binary.LittleEndian.Uint16(b[0:2])
	press = b[2] != 0
	r = rune(binary.LittleEndian.Uint32(b[3:7]))
	return code, press, r, true
}

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - i16: x
//   - i16: y
//   - u8:  1 = press, 0 = release
func PointerPayload(x, y int16, press bool) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(x))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(y))
	if press {
		buf[4] = 1
	}
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(b []byte) (x, y int16, press bool, ok bool) {
	if len(b) != 5 {
		return 0, 0, false, false
	}
	x = int16(binary.LittleEndian.Uint16(b[0:2]))
	y = int16(binary.LittleEndian.Uint16(b[2:4]))
	return x, y, b[4] != 0, true
}

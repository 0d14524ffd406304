package input

// Decode converts raw terminal bytes into key names.
// Handles CSI arrow sequences; a lone ESC is reported as Escape.
func Decode(buf []byte) []string {
	var keys []string
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		// Check for escape sequences (arrow keys)
		if b == '\x1b' && i+2 < len(buf) && (buf[i+1] == '[' || buf[i+1] == 'O') {
			switch buf[i+2] {
			case 'A':
				keys = append(keys, KeyArrowUp)
				i += 2
				continue
			case 'B':
				keys = append(keys, KeyArrowDown)
				i += 2
				continue
			case 'C':
				keys = append(keys, KeyArrowRight)
				i += 2
				continue
			case 'D':
				keys = append(keys, KeyArrowLeft)
				i += 2
				continue
			}
		}

		if key, ok := byteKey(b); ok {
			keys = append(keys, key)
		}
	}
	return keys
}

// byteKey maps a single byte to its key name.
func byteKey(b byte) (string, bool) {
	switch {
	case b == '\x03', b == '\x04':
		return KeyInterrupt, true
	case b == '\r', b == '\n':
		return KeyEnter, true
	case b == '\b', b == '\x7f':
		return KeyBackspace, true
	case b == '\x1b':
		return KeyEscape, true
	case b == ' ':
		return KeySpace, true
	case b > ' ' && b < '\x7f':
		return string(rune(b)), true
	}
	return "", false
}

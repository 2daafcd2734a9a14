package terminal

import (
	"bufio"
	"io"
	"unicode/utf8"
)

// Key identifies a decoded keyboard input.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyTab
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown
	KeyCtrl // Ctrl plus a letter, carried in Rune
	KeyRune // Regular character
)

// KeyEvent is one key press.
type KeyEvent struct {
	Key  Key
	Rune rune // The character for KeyRune, the lowercase letter for KeyCtrl.
}

// KeyReader decodes key presses from a raw terminal input stream.
type KeyReader struct {
	reader *bufio.Reader
}

// NewKeyReader creates a KeyReader over raw terminal input.
func NewKeyReader(r io.Reader) *KeyReader {
	return &KeyReader{reader: bufio.NewReaderSize(r, 64)}
}

// ReadKey blocks until a key is pressed and returns it.
func (k *KeyReader) ReadKey() (KeyEvent, error) {
	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{}, err
	}

	switch {
	case b == 0x09:
		return KeyEvent{Key: KeyTab}, nil
	case b == 0x0d:
		return KeyEvent{Key: KeyEnter}, nil
	case b == 0x7f || b == 0x08:
		return KeyEvent{Key: KeyBackspace}, nil
	case b == 0x1b:
		return k.readEscapeSequence()
	case b >= 0x01 && b <= 0x1a:
		return KeyEvent{Key: KeyCtrl, Rune: rune('a' + b - 0x01)}, nil
	case b >= 0x20 && b < 0x7f:
		return KeyEvent{Key: KeyRune, Rune: rune(b)}, nil
	case b >= 0xc0:
		return k.readUTF8(b)
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}
}

// readEscapeSequence distinguishes a bare escape key from the CSI and
// SS3 sequences function keys arrive as. Terminals deliver a sequence
// in one burst, so no buffered follow-up byte means a lone escape.
func (k *KeyReader) readEscapeSequence() (KeyEvent, error) {
	if k.reader.Buffered() == 0 {
		return KeyEvent{Key: KeyEscape}, nil
	}

	b, err := k.reader.ReadByte()
	if err != nil {
		return KeyEvent{Key: KeyEscape}, nil
	}
	if b != '[' && b != 'O' {
		k.reader.UnreadByte()
		return KeyEvent{Key: KeyEscape}, nil
	}
	return k.parseCSI()
}

// parseCSI parses the body of a CSI or SS3 sequence.
func (k *KeyReader) parseCSI() (KeyEvent, error) {
	var params []byte
	for {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, nil
		}

		switch b {
		case 'A':
			return KeyEvent{Key: KeyUp}, nil
		case 'B':
			return KeyEvent{Key: KeyDown}, nil
		case 'C':
			return KeyEvent{Key: KeyRight}, nil
		case 'D':
			return KeyEvent{Key: KeyLeft}, nil
		case 'H':
			return KeyEvent{Key: KeyHome}, nil
		case 'F':
			return KeyEvent{Key: KeyEnd}, nil
		case '~':
			switch string(params) {
			case "1", "7":
				return KeyEvent{Key: KeyHome}, nil
			case "4", "8":
				return KeyEvent{Key: KeyEnd}, nil
			case "5":
				return KeyEvent{Key: KeyPageUp}, nil
			case "6":
				return KeyEvent{Key: KeyPageDown}, nil
			default:
				return KeyEvent{Key: KeyUnknown}, nil
			}
		default:
			if b >= '0' && b <= '9' || b == ';' {
				params = append(params, b)
				continue
			}
			return KeyEvent{Key: KeyUnknown}, nil
		}
	}
}

// readUTF8 completes a multi-byte UTF-8 character.
func (k *KeyReader) readUTF8(first byte) (KeyEvent, error) {
	var buf [4]byte
	buf[0] = first

	var n int
	switch {
	case first&0xe0 == 0xc0:
		n = 2
	case first&0xf0 == 0xe0:
		n = 3
	case first&0xf8 == 0xf0:
		n = 4
	default:
		return KeyEvent{Key: KeyUnknown}, nil
	}

	for i := 1; i < n; i++ {
		b, err := k.reader.ReadByte()
		if err != nil {
			return KeyEvent{Key: KeyUnknown}, err
		}
		buf[i] = b
	}

	r, _ := utf8.DecodeRune(buf[:n])
	if r == utf8.RuneError {
		return KeyEvent{Key: KeyUnknown}, nil
	}
	return KeyEvent{Key: KeyRune, Rune: r}, nil
}

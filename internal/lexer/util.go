package lexer

import (
	"fmt"
	"unicode"
)

func isDec(b byte) bool {
	return b >= '0' && b <= '9'
}

func isUpper(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

func isIdentStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || isUpper(b) || b == '_'
}

func isIdentContinue(b byte) bool {
	return isIdentStart(b) || isDec(b) || b == '\''
}

func quoteByte(b byte) string {
	if b < 0x80 && unicode.IsPrint(rune(b)) {
		return fmt.Sprintf("%q", string(b))
	}
	return fmt.Sprintf("0x%02X", b)
}

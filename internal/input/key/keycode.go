package key

import (
	"strconv"
	"strings"
)

// Code is a physical key code in browser virtual key numbering.
type Code = int

// Special keys.
const (
	CodeBackspace   Code = 8
	CodeTab         Code = 9
	CodeEnter       Code = 13
	CodeShift       Code = 16
	CodeCtrl        Code = 17
	CodeAlt         Code = 18
	CodePause       Code = 19
	CodeCapsLock    Code = 20
	CodeEscape      Code = 27
	CodeSpace       Code = 32
	CodePageUp      Code = 33
	CodePageDown    Code = 34
	CodeEnd         Code = 35
	CodeHome        Code = 36
	CodeLeft        Code = 37
	CodeUp          Code = 38
	CodeRight       Code = 39
	CodeDown        Code = 40
	CodePrintScreen Code = 44
	CodeInsert      Code = 45
	CodeDelete      Code = 46
	CodeNumLock     Code = 144
	CodeScrollLock  Code = 145
)

// Ranges for digits, letters, keypad digits and function keys.
const (
	Code0   Code = 48
	CodeA   Code = 65
	CodeKP0 Code = 96
	CodeF1  Code = 112
)

// Keypad operators.
const (
	CodeKPMultiply Code = 106
	CodeKPAdd      Code = 107
	CodeKPSubtract Code = 109
	CodeKPDecimal  Code = 110
	CodeKPDivide   Code = 111
)

var codeNames = map[Code]string{
	CodeBackspace:   "backspace",
	CodeTab:         "tab",
	CodeEnter:       "enter",
	CodeShift:       "shift",
	CodeCtrl:        "ctrl",
	CodeAlt:         "alt",
	CodePause:       "pause",
	CodeCapsLock:    "capslock",
	CodeEscape:      "escape",
	CodeSpace:       "space",
	CodePageUp:      "pageup",
	CodePageDown:    "pagedown",
	CodeEnd:         "end",
	CodeHome:        "home",
	CodeLeft:        "left",
	CodeUp:          "up",
	CodeRight:       "right",
	CodeDown:        "down",
	CodePrintScreen: "printscreen",
	CodeInsert:      "insert",
	CodeDelete:      "delete",
	CodeNumLock:     "numlock",
	CodeScrollLock:  "scrolllock",
	CodeKPMultiply:  "kpmultiply",
	CodeKPAdd:       "kpadd",
	CodeKPSubtract:  "kpsubtract",
	CodeKPDecimal:   "kpdecimal",
	CodeKPDivide:    "kpdivide",
}

var codeAliases = map[string]Code{
	"esc":    CodeEscape,
	"return": CodeEnter,
	"cr":     CodeEnter,
	"bs":     CodeBackspace,
	"del":    CodeDelete,
	"pgup":   CodePageUp,
	"pgdn":   CodePageDown,
}

var namedCodes = func() map[string]Code {
	m := make(map[string]Code, len(codeNames)+len(codeAliases)+72)
	for c, n := range codeNames {
		m[n] = c
	}
	for n, c := range codeAliases {
		m[n] = c
	}
	for i := 0; i < 10; i++ {
		m[strconv.Itoa(i)] = Code0 + i
		m["kp"+strconv.Itoa(i)] = CodeKP0 + i
	}
	for i := 0; i < 26; i++ {
		m[string(rune('a'+i))] = CodeA + i
	}
	for i := 0; i < 12; i++ {
		m["f"+strconv.Itoa(i+1)] = CodeF1 + i
	}
	return m
}()

// CodeByName returns the code for a key name such as "space", "a", "f5" or
// "kp7". Names are case-insensitive. A decimal string is accepted as a raw
// code.
func CodeByName(name string) (Code, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if c, ok := namedCodes[name]; ok {
		return c, true
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 {
		return n, true
	}
	return 0, false
}

// CodeName returns the canonical name for a code, or its decimal form if it
// has no name.
func CodeName(c Code) string {
	switch {
	case c >= Code0 && c < Code0+10:
		return strconv.Itoa(c - Code0)
	case c >= CodeA && c < CodeA+26:
		return string(rune('a' + c - CodeA))
	case c >= CodeKP0 && c < CodeKP0+10:
		return "kp" + strconv.Itoa(c-CodeKP0)
	case c >= CodeF1 && c < CodeF1+12:
		return "f" + strconv.Itoa(c-CodeF1+1)
	}
	if n, ok := codeNames[c]; ok {
		return n
	}
	return strconv.Itoa(c)
}

// CodeForRune returns the code for a printable character, folding case.
// Characters without a dedicated key return false.
func CodeForRune(r rune) (Code, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return CodeA + int(r-'a'), true
	case r >= 'A' && r <= 'Z':
		return CodeA + int(r-'A'), true
	case r >= '0' && r <= '9':
		return Code0 + int(r-'0'), true
	case r == ' ':
		return CodeSpace, true
	}
	return 0, false
}

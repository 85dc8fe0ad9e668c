package compose

import "github.com/aretw0/dwellkeys/pkg/domain"

// KeyKind tells character keys from keys with their own behaviour.
type KeyKind string

const (
	KindChar    KeyKind = "char"
	KindSpecial KeyKind = "special"
	KindSpace   KeyKind = "space"
)

// Key codes with dedicated behaviour.
const (
	CodeBackspace  domain.TargetID = "backspace"
	CodeEnter      domain.TargetID = "enter"
	CodeSpace      domain.TargetID = "space"
	CodeTab        domain.TargetID = "tab"
	CodeCaps       domain.TargetID = "caps"
	CodeShiftLeft  domain.TargetID = "shift-left"
	CodeShiftRight domain.TargetID = "shift-right"
)

// Key is one button of the layout. Its Code doubles as the dwell target id.
type Key struct {
	Code      domain.TargetID `json:"code"`
	Label     string          `json:"label"`
	Char      string          `json:"char,omitempty"`
	ShiftChar string          `json:"shift_char,omitempty"`
	Kind      KeyKind         `json:"kind"`
}

// Layout is a keyboard as rows of keys.
type Layout [][]Key

func char(code domain.TargetID, label, c, shift string) Key {
	return Key{Code: code, Label: label, Char: c, ShiftChar: shift, Kind: KindChar}
}

func letter(c, upper string) Key {
	return char(domain.TargetID(c), upper, c, upper)
}

func special(code domain.TargetID, label string) Key {
	return Key{Code: code, Label: label, Kind: KindSpecial}
}

// Spanish is the Spanish QWERTY layout plus a bottom bar of accented vowels
// and opening punctuation.
var Spanish = Layout{
	{
		char("masculine", "º", "º", "ª"),
		char("digit1", "1", "1", "!"),
		char("digit2", "2", "2", `"`),
		char("digit3", "3", "3", "·"),
		char("digit4", "4", "4", "$"),
		char("digit5", "5", "5", "%"),
		char("digit6", "6", "6", "&"),
		char("digit7", "7", "7", "/"),
		char("digit8", "8", "8", "("),
		char("digit9", "9", "9", ")"),
		char("digit0", "0", "0", "="),
		char("apostrophe", "'", "'", "?"),
		char("exclamdown", "¡", "¡", "¿"),
		special(CodeBackspace, "⌫"),
	},
	{
		special(CodeTab, "Tab"),
		letter("q", "Q"), letter("w", "W"), letter("e", "E"), letter("r", "R"),
		letter("t", "T"), letter("y", "Y"), letter("u", "U"), letter("i", "I"),
		letter("o", "O"), letter("p", "P"),
		char("grave", "`", "`", "^"),
		char("plus", "+", "+", "*"),
	},
	{
		special(CodeCaps, "Bloq"),
		letter("a", "A"), letter("s", "S"), letter("d", "D"), letter("f", "F"),
		letter("g", "G"), letter("h", "H"), letter("j", "J"), letter("k", "K"),
		letter("l", "L"),
		char("ntilde", "Ñ", "ñ", "Ñ"),
		char("acute", "´", "´", "¨"),
		special(CodeEnter, "↵"),
	},
	{
		special(CodeShiftLeft, "⇧"),
		char("less", "<", "<", ">"),
		letter("z", "Z"), letter("x", "X"), letter("c", "C"), letter("v", "V"),
		letter("b", "B"), letter("n", "N"), letter("m", "M"),
		char("comma", ",", ",", ";"),
		char("period", ".", ".", ":"),
		char("minus", "-", "-", "_"),
		special(CodeShiftRight, "⇧"),
	},
	{
		char("excl-open", "¡", "¡", ""),
		char("excl-close", "!", "!", ""),
		char("a-acute", "Á", "á", "Á"),
		char("e-acute", "É", "é", "É"),
		char("i-acute", "Í", "í", "Í"),
		{Code: CodeSpace, Label: "Espacio", Char: " ", Kind: KindSpace},
		char("o-acute", "Ó", "ó", "Ó"),
		char("u-acute", "Ú", "ú", "Ú"),
		char("u-dieresis", "Ü", "ü", "Ü"),
		char("quest-open", "¿", "¿", ""),
		char("quest-close", "?", "?", ""),
	},
}

// Keys returns every key in row order.
func (l Layout) Keys() []Key {
	var keys []Key
	for _, row := range l {
		keys = append(keys, row...)
	}
	return keys
}

// Lookup finds a key by code.
func (l Layout) Lookup(code domain.TargetID) (Key, bool) {
	for _, row := range l {
		for _, k := range row {
			if k.Code == code {
				return k, true
			}
		}
	}
	return Key{}, false
}

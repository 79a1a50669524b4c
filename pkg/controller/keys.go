package controller

import (
	"sync"

	"github.com/gdamore/tcell/v2"
)

// tcell reports every printable key as KeyRune, so shortcut letters get synthetic key codes
// above the range tcell uses. That lets one map[tcell.Key]KeyEvent hold all bindings.
const runeKeyBase = 1 << 14

func runeKey(r rune) tcell.Key {
	return tcell.Key(runeKeyBase + int(r))
}

// These are the rune keys the app binds.
var (
	KeyA = runeKey('a')
	KeyE = runeKey('e')
	KeyF = runeKey('f')
	KeyG = runeKey('g')
	KeyQ = runeKey('q')
	KeyR = runeKey('r')
	KeyX = runeKey('x')
	Key1 = runeKey('1')
	Key2 = runeKey('2')
	Key3 = runeKey('3')
	Key4 = runeKey('4')
)

var (
	boundRunes = []rune{'a', 'e', 'f', 'g', 'q', 'r', 'x', '1', '2', '3', '4'}
	keysOnce   sync.Once
)

// initKeys registers display names for the rune keys so headers can print them like the
// named tcell keys.
func initKeys() {
	keysOnce.Do(func() {
		for _, r := range boundRunes {
			tcell.KeyNames[runeKey(r)] = string(r)
		}
	})
}

// AsKey returns the key code for evt, mapping runes to their synthetic codes.
func AsKey(evt *tcell.EventKey) tcell.Key {
	if evt.Key() == tcell.KeyRune {
		return runeKey(evt.Rune())
	}

	return evt.Key()
}

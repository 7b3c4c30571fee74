// Package locale holds the user-visible strings of the game.
package locale

import (
	_ "embed"

	"github.com/leonelquinteros/gotext"
)

//go:embed en.po
var english []byte

var catalog = load()

func load() *gotext.Po {
	po := gotext.NewPo()
	po.Parse(english)
	return po
}

// Get returns the translation of key formatted with vars. Unknown keys are
// returned as-is.
func Get(key string, vars ...interface{}) string {
	return catalog.Get(key, vars...)
}

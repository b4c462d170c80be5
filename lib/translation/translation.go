package translation

import (
	"github.com/leonelquinteros/gotext"
)

// Translate resolves msgID against the configured locale, falling back
// to the msgID itself when no translation exists.
func Translate(msgID string, vars ...interface{}) string {
	return gotext.Get(msgID, vars...)
}

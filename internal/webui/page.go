// Package webui carries the static index page served by the device
// socket. The engine treats the content as opaque build-time bytes.
package webui

import _ "embed"

//go:embed index.html
var indexPage []byte

func Page() []byte { return indexPage }

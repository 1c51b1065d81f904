package httpd

import (
	"bytes"

	"github.com/danmuck/relayctl/internal/relay"
)

// Request is the ephemeral parse of one buffered request. Only the first
// request line is interpreted; headers are carried past, not parsed.
type Request struct {
	Method string
	Target string
	// Body holds the bytes after the blank-line terminator. HasBody
	// distinguishes an empty body from a request whose terminator never
	// arrived (typically a truncated buffer).
	Body    []byte
	HasBody bool
}

// ParseRequest extracts method, target, and body from one raw buffer.
// Parsing is best effort: a malformed request line yields empty tokens,
// which no route matches.
func ParseRequest(raw []byte) Request {
	var req Request

	line := raw
	if i := bytes.IndexByte(raw, '\n'); i >= 0 {
		line = raw[:i]
	}
	fields := bytes.Fields(line)
	if len(fields) > 0 {
		req.Method = string(fields[0])
	}
	if len(fields) > 1 {
		req.Target = string(fields[1])
	}

	if i := bytes.Index(raw, []byte("\r\n\r\n")); i >= 0 {
		req.Body = raw[i+4:]
		req.HasBody = true
	} else if i := bytes.Index(raw, []byte("\n\n")); i >= 0 {
		req.Body = raw[i+2:]
		req.HasBody = true
	}
	return req
}

// ScanStateField locates a JSON "state" key in the body and reads its
// 0/1 value. The key must sit at key position (start of object or after
// a comma), so a body carrying "other_state":1 does not match. A missing
// or unreadable field reports found=false; callers treat that as Off.
func ScanStateField(body []byte) (relay.State, bool) {
	key := []byte(`"state"`)
	for i := 0; i+len(key) <= len(body); i++ {
		if body[i] != '"' || !bytes.HasPrefix(body[i:], key) {
			continue
		}
		j := i - 1
		for j >= 0 && isSpace(body[j]) {
			j--
		}
		if j >= 0 && body[j] != '{' && body[j] != ',' {
			continue
		}
		k := i + len(key)
		for k < len(body) && isSpace(body[k]) {
			k++
		}
		if k >= len(body) || body[k] != ':' {
			continue
		}
		k++
		for k < len(body) && isSpace(body[k]) {
			k++
		}
		if k >= len(body) {
			continue
		}
		switch body[k] {
		case '0':
			return relay.Off, true
		case '1':
			return relay.On, true
		}
	}
	return relay.Off, false
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\n'
}

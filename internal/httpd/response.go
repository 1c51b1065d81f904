package httpd

import (
	"fmt"
	"strconv"

	"github.com/danmuck/relayctl/internal/relay"
)

const (
	ContentTypeHTML  = "text/html"
	ContentTypeJSON  = "application/json"
	ContentTypePlain = "text/plain"
)

// Response is one complete reply. Encode produces the full wire bytes;
// nothing is cached or reused between requests.
type Response struct {
	Status      int
	ContentType string
	Body        []byte
}

func (r Response) Encode() []byte {
	header := fmt.Sprintf(
		"HTTP/1.1 %d %s\r\nContent-Type: %s\r\nContent-Length: %d\r\nConnection: close\r\n\r\n",
		r.Status, reasonPhrase(r.Status), r.ContentType, len(r.Body),
	)
	out := make([]byte, 0, len(header)+len(r.Body))
	out = append(out, header...)
	out = append(out, r.Body...)
	return out
}

func reasonPhrase(status int) string {
	switch status {
	case 200:
		return "OK"
	case 400:
		return "Bad Request"
	case 404:
		return "Not Found"
	default:
		return "Internal Server Error"
	}
}

func okJSON(body string) Response {
	return Response{Status: 200, ContentType: ContentTypeJSON, Body: []byte(body)}
}

func okHTML(body []byte) Response {
	return Response{Status: 200, ContentType: ContentTypeHTML, Body: body}
}

func notFound() Response {
	return Response{Status: 404, ContentType: ContentTypePlain, Body: []byte("Not Found")}
}

func badRequest(msg string) Response {
	body := fmt.Sprintf(`{"success":false,"error":%q}`, msg)
	return Response{Status: 400, ContentType: ContentTypeJSON, Body: []byte(body)}
}

// StatesJSON serializes a bank snapshot in the fixed shape the firmware
// clients expect: {"relay_1":{"state":0},...,"relay_8":{"state":1}}.
func StatesJSON(states [relay.ChannelCount]relay.State) []byte {
	buf := make([]byte, 0, 160)
	buf = append(buf, '{')
	for i, s := range states {
		if i > 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, `"relay_`...)
		buf = strconv.AppendInt(buf, int64(i+1), 10)
		buf = append(buf, `":{"state":`...)
		buf = strconv.AppendInt(buf, int64(s.Wire()), 10)
		buf = append(buf, '}')
	}
	buf = append(buf, '}')
	return buf
}

package httpd

import (
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/danmuck/relayctl/internal/observability"
	"github.com/danmuck/relayctl/internal/relay"
)

const successBody = `{"success":true}`

const relayPathPrefix = "/api/relay/"

// Router dispatches one parsed request against the fixed route table and
// applies at most one relay mutation (or one bulk mutation). The table is
// configuration, never mutated at runtime.
type Router struct {
	bank   *relay.Bank
	page   []byte
	logger zerolog.Logger
}

func NewRouter(bank *relay.Bank, page []byte, logger zerolog.Logger) *Router {
	return &Router{bank: bank, page: page, logger: logger}
}

// Handle parses raw request bytes, routes them, and returns the complete
// response. Every request is answered; malformed ones fall through to 404
// or 400 rather than being dropped.
func (rt *Router) Handle(raw []byte) Response {
	start := time.Now()
	req := ParseRequest(raw)
	resp := rt.route(req)

	observability.RecordHTTPRequest(req.Method, req.Target, resp.Status, time.Since(start))

	event := rt.logger.Info()
	if resp.Status >= 400 {
		event = rt.logger.Warn()
	}
	event.
		Str("method", req.Method).
		Str("target", req.Target).
		Int("status", resp.Status).
		Dur("duration", time.Since(start)).
		Msg("http_request")

	return resp
}

func (rt *Router) route(req Request) Response {
	switch req.Method {
	case "GET":
		switch req.Target {
		case "/", "/index.html":
			return okHTML(rt.page)
		case "/api/relays":
			return Response{
				Status:      200,
				ContentType: ContentTypeJSON,
				Body:        StatesJSON(rt.bank.Snapshot()),
			}
		}
	case "POST":
		switch {
		case req.Target == "/api/relays/all/on":
			rt.bank.SetAll(relay.On)
			return okJSON(successBody)
		case req.Target == "/api/relays/all/off":
			rt.bank.SetAll(relay.Off)
			return okJSON(successBody)
		case strings.HasPrefix(req.Target, relayPathPrefix):
			return rt.routeRelayChannel(req)
		}
	}
	return notFound()
}

// routeRelayChannel handles POST /api/relay/<n>. Channel numbers are a
// single digit by construction of the channel count; anything else on the
// suffix is a route miss, not a parse error.
func (rt *Router) routeRelayChannel(req Request) Response {
	suffix := req.Target[len(relayPathPrefix):]
	if len(suffix) != 1 || suffix[0] < '1' || suffix[0] > '8' {
		return notFound()
	}
	channel := int(suffix[0] - '0')

	if !req.HasBody {
		return badRequest("missing request body")
	}
	state, _ := ScanStateField(req.Body)
	if err := rt.bank.Set(channel, state); err != nil {
		// unreachable for 1..8, kept for the driver error path
		rt.logger.Error().Err(err).Int("channel", channel).Msg("relay_set_failed")
		return badRequest("relay drive failed")
	}
	return okJSON(successBody)
}

package relay

import "github.com/rs/zerolog"

// NopDriver discards every switch. Used in tests and when running without
// hardware attached.
type NopDriver struct{}

func (NopDriver) Apply(int, State) error { return nil }

// LogDriver reports each switch through the runtime logger. It stands in
// for the GPIO write on hosts that have no output hardware.
type LogDriver struct {
	Logger zerolog.Logger
}

func (d LogDriver) Apply(channel int, s State) error {
	d.Logger.Info().
		Int("channel", channel).
		Str("state", s.String()).
		Msg("relay_switch")
	return nil
}

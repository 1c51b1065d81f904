package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/danmuck/relayctl/internal/config"
)

var errCheckFailed = errors.New("relaycheck: check failed")

type relayEntry struct {
	State int `json:"state"`
}

func runSequence(cfg config.ProbeConfig) error {
	if err := expectSuccess(cfg, "POST", "/api/relays/all/off", ""); err != nil {
		return err
	}
	if err := expectStates(cfg, allStates(0)); err != nil {
		return err
	}

	if err := expectSuccess(cfg, "POST", "/api/relay/1", `{"state":1}`); err != nil {
		return err
	}
	one := allStates(0)
	one[1] = 1
	if err := expectStates(cfg, one); err != nil {
		return err
	}

	// same request twice, same outcome
	if err := expectSuccess(cfg, "POST", "/api/relay/1", `{"state":1}`); err != nil {
		return err
	}
	if err := expectStates(cfg, one); err != nil {
		return err
	}

	if err := expectSuccess(cfg, "POST", "/api/relays/all/on", ""); err != nil {
		return err
	}
	if err := expectStates(cfg, allStates(1)); err != nil {
		return err
	}

	if err := expectSuccess(cfg, "POST", "/api/relays/all/off", ""); err != nil {
		return err
	}
	if err := expectStates(cfg, allStates(0)); err != nil {
		return err
	}

	status, body, err := doRequest(cfg, "GET", "/no/such/route", "")
	if err != nil {
		return err
	}
	if status != 404 || !bytes.Equal(body, []byte("Not Found")) {
		return fmt.Errorf("%w: route miss returned %d %q", errCheckFailed, status, body)
	}

	if cfg.CheckWeb {
		status, body, err := doRequest(cfg, "GET", "/", "")
		if err != nil {
			return err
		}
		if status != 200 || !bytes.Contains(body, []byte("<html")) {
			return fmt.Errorf("%w: index page returned %d", errCheckFailed, status)
		}
	}
	return nil
}

func allStates(v int) map[int]int {
	states := make(map[int]int, 8)
	for ch := 1; ch <= 8; ch++ {
		states[ch] = v
	}
	return states
}

func expectSuccess(cfg config.ProbeConfig, method, path, body string) error {
	status, respBody, err := doRequest(cfg, method, path, body)
	if err != nil {
		return err
	}
	if status != 200 || !bytes.Contains(respBody, []byte(`"success":true`)) {
		return fmt.Errorf("%w: %s %s returned %d %q", errCheckFailed, method, path, status, respBody)
	}
	return nil
}

func expectStates(cfg config.ProbeConfig, want map[int]int) error {
	status, body, err := doRequest(cfg, "GET", "/api/relays", "")
	if err != nil {
		return err
	}
	if status != 200 {
		return fmt.Errorf("%w: GET /api/relays returned %d", errCheckFailed, status)
	}
	var states map[string]relayEntry
	if err := json.Unmarshal(body, &states); err != nil {
		return fmt.Errorf("relaycheck: decode states: %w", err)
	}
	for ch, v := range want {
		entry, ok := states[fmt.Sprintf("relay_%d", ch)]
		if !ok {
			return fmt.Errorf("%w: relay_%d missing from snapshot", errCheckFailed, ch)
		}
		if entry.State != v {
			return fmt.Errorf("%w: relay_%d state=%d want=%d", errCheckFailed, ch, entry.State, v)
		}
	}
	return nil
}

// doRequest issues one non-persistent exchange: the controller closes
// after every response, so the body is everything up to EOF.
func doRequest(cfg config.ProbeConfig, method, path, body string) (int, []byte, error) {
	conn, err := net.DialTimeout("tcp", cfg.Target, cfg.Timeout)
	if err != nil {
		return 0, nil, fmt.Errorf("relaycheck: dial %s: %w", cfg.Target, err)
	}
	defer conn.Close()
	if err := conn.SetDeadline(time.Now().Add(cfg.Timeout)); err != nil {
		return 0, nil, fmt.Errorf("relaycheck: set deadline: %w", err)
	}

	var req strings.Builder
	fmt.Fprintf(&req, "%s %s HTTP/1.1\r\nHost: relayctl\r\nConnection: close\r\n", method, path)
	if body != "" {
		fmt.Fprintf(&req, "Content-Length: %d\r\n", len(body))
	}
	req.WriteString("\r\n")
	req.WriteString(body)

	if _, err := conn.Write([]byte(req.String())); err != nil {
		return 0, nil, fmt.Errorf("relaycheck: write request: %w", err)
	}

	raw, err := io.ReadAll(conn)
	if err != nil {
		return 0, nil, fmt.Errorf("relaycheck: read response: %w", err)
	}
	return parseResponse(raw)
}

func parseResponse(raw []byte) (int, []byte, error) {
	head, rest, found := bytes.Cut(raw, []byte("\r\n\r\n"))
	if !found {
		return 0, nil, fmt.Errorf("relaycheck: response missing header terminator: %q", raw)
	}
	fields := bytes.Fields(head)
	if len(fields) < 2 {
		return 0, nil, fmt.Errorf("relaycheck: malformed status line: %q", head)
	}
	status, err := strconv.Atoi(string(fields[1]))
	if err != nil {
		return 0, nil, fmt.Errorf("relaycheck: malformed status code: %w", err)
	}
	return status, rest, nil
}

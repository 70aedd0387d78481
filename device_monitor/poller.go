package main

import (
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// PollState tracks the health of the refresh loop for the status line.
type PollState struct {
	mu            sync.RWMutex
	healthy       bool
	everPolled    bool
	lastRefreshed time.Time
	lastError     string
	lastErrorTime time.Time
}

// SetSuccess records a completed refresh and reports whether this poll
// recovered from a failure streak.
func (ps *PollState) SetSuccess(t time.Time) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	recovered := ps.everPolled && !ps.healthy
	ps.healthy = true
	ps.everPolled = true
	ps.lastRefreshed = t
	ps.lastError = ""
	return recovered
}

// SetFailure records a failed refresh and reports whether the loop was
// healthy before it, so callers can cue once per outage.
func (ps *PollState) SetFailure(err error) bool {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	wasHealthy := ps.healthy || !ps.everPolled
	ps.healthy = false
	ps.everPolled = true
	ps.lastError = err.Error()
	ps.lastErrorTime = time.Now()
	return wasHealthy
}

// Indicator returns the "last refreshed" text for the status line.
func (ps *PollState) Indicator() string {
	ps.mu.RLock()
	defer ps.mu.RUnlock()

	if !ps.everPolled {
		return "waiting for first refresh"
	}
	if ps.healthy {
		return "updated " + ps.lastRefreshed.Format("15:04:05")
	}
	return fmt.Sprintf("refresh failed %s: %s", ps.lastErrorTime.Format("15:04:05"), ps.lastError)
}

// Poller owns the refresh lifecycle: one request at a time, the next cycle
// scheduled a fixed delay after the previous one completes. Failures are
// transient by design; the loop never stops and never backs off further.
type Poller struct {
	URL      string
	Interval time.Duration
	Client   *http.Client
	Store    *DeviceStore
	State    *PollState
	Logger   zerolog.Logger
	OnUpdate func()
}

// Run polls until done closes. The inter-cycle delay is measured from
// completion, so a slow upstream self-throttles and requests never overlap.
func (p *Poller) Run(done <-chan struct{}) {
	client := p.Client
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}

	for {
		p.pollOnce(client)

		select {
		case <-done:
			return
		case <-time.After(p.Interval):
		}
	}
}

func (p *Poller) pollOnce(client *http.Client) {
	devices, err := p.fetch(client)
	if err != nil {
		if p.State.SetFailure(err) {
			playPollFailureSound()
		}
		p.Logger.Error().Err(err).Str("url", p.URL).Msg("device poll failed")
		return
	}

	p.Store.Replace(devices)
	if p.State.SetSuccess(time.Now()) {
		playPollRecoveredSound()
	}
	p.Logger.Debug().Int("devices", len(devices)).Msg("device poll complete")

	if p.OnUpdate != nil {
		p.OnUpdate()
	}
}

func (p *Poller) fetch(client *http.Client) ([]*DeviceSnapshot, error) {
	resp, err := client.Get(p.URL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return decodeDevicePayload(body)
}

// Package timeouts defines shared timeout and cadence constants.
package timeouts

import "time"

// GRPCDial caps the wait time when dialing a gRPC peer.
const GRPCDial = 2 * time.Second

// GRPCRequest caps the time allowed for a single possessionctl request.
const GRPCRequest = 2 * time.Second

// Shutdown limits how long servers and telemetry wait during graceful shutdown.
const Shutdown = 5 * time.Second

// Tick is the default game loop cadence.
const Tick = 250 * time.Millisecond

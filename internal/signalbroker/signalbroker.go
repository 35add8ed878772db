// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

// Package signalbroker listens for OS signals that should terminate the
// process. By default it listens for SIGINT, SIGTERM, SIGQUIT and
// os.Interrupt.
//
// The Watch function cancels a context when a second signal of the same type
// is received, giving an in-flight build stage one chance to finish.
package signalbroker

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
)

var termSignals = []os.Signal{
	syscall.SIGINT,
	syscall.SIGTERM,
	syscall.SIGQUIT,
	os.Interrupt,
}

// New creates a new signal channel subscribed to the given signals,
// or to the default termination signals if none are supplied.
func New(ctx context.Context, sigs ...os.Signal) chan os.Signal {
	ch := make(chan os.Signal, 1)

	if len(sigs) == 0 {
		sigs = termSignals
	}

	ctxlog.Debug(ctx, "signalbroker subscribing", "signals", sigs)
	signal.Notify(ch, sigs...)

	return ch
}

// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package signalbroker

import (
	"context"
	"os"

	"github.com/matt-FFFFFF/rosci/internal/ctxlog"
)

// Watch monitors the signal channel and cancels the context on the second
// signal of a given type. The first signal is logged and otherwise ignored so
// that a running pipeline stage can complete.
func Watch(ctx context.Context, sigCh chan os.Signal, cancel context.CancelFunc) {
	seen := make(map[os.Signal]struct{})

	for sig := range sigCh {
		if _, ok := seen[sig]; ok {
			ctxlog.Info(ctx, "received second signal, cancelling pipeline", "signal", sig.String())
			close(sigCh)
			cancel()

			return
		}

		ctxlog.Info(ctx, "received signal, send again to cancel", "signal", sig.String())

		seen[sig] = struct{}{}
	}
}

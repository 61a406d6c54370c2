// Copyright 2025 The Chainmux Authors
// This file is part of Chainmux.
//
// Chainmux is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Chainmux is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Chainmux. If not, see <http://www.gnu.org/licenses/>.

// Package engine multiplexes the three work sources of an execution engine's
// request-orchestration core: progress events from the execution backend,
// consensus-layer requests, and completed block downloads. The Engine type is
// the poll-driven core; Service runs it under a context and wires it to
// channel-based collaborators.
package engine

import (
	"fmt"

	"github.com/ledgerwatch/log/v3"
)

func engineLogPrefix(message string) string {
	return "[engine] " + message
}

// RequestSource is a non-blocking, possibly infinite stream of incoming
// consensus-layer requests. Next reports false when no request is currently
// queued.
type RequestSource[TRequest any] interface {
	Next() (TRequest, bool)
}

// RequestHandler processes engine inputs and is polled for progress. Both
// operations must not block. OnInput may or may not have been called between
// two polls; implementations own their state exclusively and communicate only
// through these two operations.
type RequestHandler[TRequest any, TEvent any] interface {
	OnInput(input Input[TRequest])
	Poll() (HandlerEvent[TEvent], bool)
}

// Engine multiplexes three sources of work into one non-blocking control
// loop: progress from its request handler, incoming consensus-layer requests,
// and completed block downloads. The owning orchestrator drives it by calling
// Poll repeatedly from a single goroutine.
//
// Priority is strict: the handler is always drained before a new request is
// accepted, and requests are accepted one at a time before download outcomes
// are considered. Handler-produced results preempt everything, since a
// backfill request or fatal error makes further intake pointless.
type Engine[TRequest any, TEvent any] struct {
	handler    RequestHandler[TRequest, TEvent]
	requests   RequestSource[TRequest]
	downloader BlockDownloader
	failed     bool
	logger     log.Logger
}

func NewEngine[TRequest any, TEvent any](
	logger log.Logger,
	handler RequestHandler[TRequest, TEvent],
	requests RequestSource[TRequest],
	downloader BlockDownloader,
) *Engine[TRequest, TEvent] {
	return &Engine[TRequest, TEvent]{
		handler:    handler,
		requests:   requests,
		downloader: downloader,
		logger:     logger,
	}
}

// DeliverSignal forwards an orchestrator signal into the handler. Signals
// delivered after a fatal result are discarded.
func (e *Engine[TRequest, TEvent]) DeliverSignal(signal OrchestratorSignal) {
	if e.failed {
		e.logger.Debug(engineLogPrefix("discarding signal, handler already failed"), "signal", signal)
		return
	}
	e.handler.OnInput(SignalInput[TRequest](signal))
}

// Poll advances the engine as far as possible without blocking. It reports a
// result as soon as one is available, or false when no progress can currently
// be made and the caller must wait to be woken by one of the input sources.
//
// A fatal result is terminal: the handler receives no further input and every
// subsequent Poll reports the fatal result again.
func (e *Engine[TRequest, TEvent]) Poll() (Result[TEvent], bool) {
	if e.failed {
		return Result[TEvent]{Type: ResultFatal}, true
	}

	for {
		// drain the handler first
		for {
			handlerEvent, ok := e.handler.Poll()
			if !ok {
				break
			}

			switch handlerEvent.Type {
			case HandlerDownload:
				mxDownloadsStarted.Inc()
				e.downloader.OnCommand(StartDownload(handlerEvent.Download))
			case HandlerBackfill:
				// live-sync downloads are stale once backfill takes over
				mxDownloadsCleared.Inc()
				e.downloader.OnCommand(ClearDownloads())
				mxBackfillRequests.Inc()
				return Result[TEvent]{Type: ResultBackfill, Target: handlerEvent.Target}, true
			case HandlerChainEvent:
				return Result[TEvent]{Type: ResultChainEvent, Event: handlerEvent.Event}, true
			case HandlerFatal:
				mxFatalErrors.Inc()
				e.failed = true
				e.logger.Error(engineLogPrefix("request handler failed"))
				return Result[TEvent]{Type: ResultFatal}, true
			default:
				panic(fmt.Sprintf("unexpected handler event type: %d", handlerEvent.Type))
			}
		}

		// accept at most one incoming request, then give the handler the
		// chance to react before anything else is considered
		if request, ok := e.requests.Next(); ok {
			mxRequestsAccepted.Inc()
			e.handler.OnInput(RequestInput(request))
			continue
		}

		// advance the downloader last
		if outcome, ok := e.downloader.Poll(); ok {
			mxBatchesDelivered.Inc()
			e.handler.OnInput(BlocksInput[TRequest](outcome.Blocks))
			continue
		}

		return Result[TEvent]{}, false
	}
}

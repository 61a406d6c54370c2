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

package engine

import (
	"fmt"

	"github.com/ledgerwatch/log/v3"
)

// BackendHandler bridges the engine to an execution backend that runs on its
// own goroutine and communicates exclusively over two channels: inputs out,
// events in. It holds no other state; its whole job is preserving message
// identity and surfacing event-channel closure as the fatal condition.
//
// An input that cannot be enqueued is dropped with a debug log rather than
// treated as an error: an unreachable backend is expected to surface shortly
// afterward through the event channel closing. A backend that wedges without
// ever closing its event channel would make such drops invisible; size the
// command channel so it never fills under expected load.
type BackendHandler[TRequest any, TEvent any] struct {
	commands chan<- Input[TRequest]
	events   <-chan BackendEvent[TEvent]
	logger   log.Logger
}

func NewBackendHandler[TRequest any, TEvent any](
	logger log.Logger,
	commands chan<- Input[TRequest],
	events <-chan BackendEvent[TEvent],
) *BackendHandler[TRequest, TEvent] {
	return &BackendHandler[TRequest, TEvent]{
		commands: commands,
		events:   events,
		logger:   logger,
	}
}

func (h *BackendHandler[TRequest, TEvent]) OnInput(input Input[TRequest]) {
	select {
	case h.commands <- input:
	default:
		h.logger.Debug(engineLogPrefix("backend command channel unavailable, dropping input"), "type", input.Type)
	}
}

func (h *BackendHandler[TRequest, TEvent]) Poll() (HandlerEvent[TEvent], bool) {
	select {
	case event, ok := <-h.events:
		if !ok {
			// no more events will ever arrive
			return HandlerEvent[TEvent]{Type: HandlerFatal}, true
		}
		switch event.Type {
		case BackendEventChain:
			return HandlerEvent[TEvent]{Type: HandlerChainEvent, Event: event.Event}, true
		case BackendEventBackfill:
			return HandlerEvent[TEvent]{Type: HandlerBackfill, Target: event.Target}, true
		case BackendEventDownload:
			return HandlerEvent[TEvent]{Type: HandlerDownload, Download: event.Download}, true
		default:
			panic(fmt.Sprintf("unexpected backend event type: %d", event.Type))
		}
	default:
		return HandlerEvent[TEvent]{}, false
	}
}

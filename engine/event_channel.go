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
	"sync"

	"github.com/emirpasic/gods/queues/linkedlistqueue"
	"github.com/ledgerwatch/log/v3"
)

type eventChannelOptions struct {
	notifier   *Notifier
	dropLogger log.Logger
	name       string
}

type EventChannelOption func(*eventChannelOptions)

// WithEventNotifier wakes the given notifier on every push.
func WithEventNotifier(notifier *Notifier) EventChannelOption {
	return func(opts *eventChannelOptions) {
		opts.notifier = notifier
	}
}

// WithDropWarn logs a warning whenever the channel overflows and drops its
// oldest event.
func WithDropWarn(logger log.Logger, name string) EventChannelOption {
	return func(opts *eventChannelOptions) {
		opts.dropLogger = logger
		opts.name = name
	}
}

// EventChannel is a bounded FIFO of events with non-blocking push and take.
// When full, pushing drops the oldest unconsumed event so producers always
// observe the most recent state of the world. Capacity 0 means unbounded.
type EventChannel[TEvent any] struct {
	mu       sync.Mutex
	events   *linkedlistqueue.Queue
	capacity uint
	opts     eventChannelOptions
}

func NewEventChannel[TEvent any](capacity uint, opts ...EventChannelOption) *EventChannel[TEvent] {
	ec := &EventChannel[TEvent]{
		events:   linkedlistqueue.New(),
		capacity: capacity,
	}
	for _, opt := range opts {
		opt(&ec.opts)
	}
	return ec
}

// PushEvent appends an event without blocking, dropping the oldest queued
// event first if the channel is at capacity.
func (ec *EventChannel[TEvent]) PushEvent(event TEvent) {
	ec.mu.Lock()
	dropped := false
	if ec.capacity > 0 && uint(ec.events.Size()) == ec.capacity {
		ec.events.Dequeue()
		dropped = true
	}
	ec.events.Enqueue(event)
	ec.mu.Unlock()

	if dropped {
		mxQueueEventsDropped.Inc()
		if ec.opts.dropLogger != nil {
			ec.opts.dropLogger.Warn(engineLogPrefix("queue overflow, dropped oldest event"), "queue", ec.opts.name)
		}
	}
	ec.opts.notifier.Notify()
}

// Next takes the oldest queued event, reporting false if the channel is
// empty.
func (ec *EventChannel[TEvent]) Next() (TEvent, bool) {
	ec.mu.Lock()
	defer ec.mu.Unlock()

	value, ok := ec.events.Dequeue()
	if !ok {
		var zero TEvent
		return zero, false
	}
	return value.(TEvent), true
}

func (ec *EventChannel[TEvent]) Len() int {
	ec.mu.Lock()
	defer ec.mu.Unlock()
	return ec.events.Size()
}

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
	"context"
	"errors"

	"github.com/ledgerwatch/log/v3"
	"golang.org/x/sync/errgroup"
)

// ErrBackendClosed is returned from Service.Run after the execution backend's
// event channel has closed and the fatal result has been bubbled. The service
// will produce no further useful results; restart or escalate.
var ErrBackendClosed = errors.New("engine: execution backend event channel closed")

const (
	defaultRequestQueueCapacity = 1024
	defaultEventBuffer          = 64
	defaultResultBuffer         = 16
)

// ServiceConfig wires a Service to its collaborators. The backend channels
// connect to the execution backend goroutine; the download channels connect
// to the block-download subsystem.
type ServiceConfig[TRequest any, TEvent any] struct {
	Logger           log.Logger
	BackendCommands  chan<- Input[TRequest]
	BackendEvents    <-chan BackendEvent[TEvent]
	DownloadCommands chan<- DownloadCommand
	DownloadOutcomes <-chan DownloadOutcome

	// RequestQueueCapacity bounds the incoming-request queue; the oldest
	// unprocessed request is dropped on overflow. 0 selects the default.
	RequestQueueCapacity uint
	// ResultBuffer sizes the bubbled-result channel. The poll loop stalls
	// when it fills, so the owning orchestrator must keep consuming Results.
	ResultBuffer uint
}

// Service runs an Engine under a context. It owns the request and signal
// queues, pumps backend events and download outcomes into the engine's poll
// sources, and bubbles engine results to the owning orchestrator.
//
// SubmitRequest and DeliverSignal are safe to call from any goroutine; the
// engine itself is only ever touched by the Run loop.
type Service[TRequest any, TEvent any] struct {
	engine        *Engine[TRequest, TEvent]
	requests      *EventChannel[TRequest]
	signals       *EventChannel[OrchestratorSignal]
	downloader    *ChannelDownloader
	backendEvents <-chan BackendEvent[TEvent]
	handlerEvents chan BackendEvent[TEvent]
	results       chan Result[TEvent]
	wake          *Notifier
	logger        log.Logger
}

func NewService[TRequest any, TEvent any](config ServiceConfig[TRequest, TEvent]) *Service[TRequest, TEvent] {
	logger := config.Logger
	if logger == nil {
		logger = log.Root()
	}
	requestQueueCapacity := config.RequestQueueCapacity
	if requestQueueCapacity == 0 {
		requestQueueCapacity = defaultRequestQueueCapacity
	}
	resultBuffer := config.ResultBuffer
	if resultBuffer == 0 {
		resultBuffer = defaultResultBuffer
	}

	wake := NewNotifier()
	requests := NewEventChannel[TRequest](
		requestQueueCapacity,
		WithEventNotifier(wake),
		WithDropWarn(logger, "incoming requests"),
	)
	signals := NewEventChannel[OrchestratorSignal](0, WithEventNotifier(wake))
	handlerEvents := make(chan BackendEvent[TEvent], defaultEventBuffer)
	handler := NewBackendHandler(logger, config.BackendCommands, handlerEvents)
	downloader := NewChannelDownloader(logger, config.DownloadCommands, config.DownloadOutcomes, wake)

	return &Service[TRequest, TEvent]{
		engine:        NewEngine[TRequest, TEvent](logger, handler, requests, downloader),
		requests:      requests,
		signals:       signals,
		downloader:    downloader,
		backendEvents: config.BackendEvents,
		handlerEvents: handlerEvents,
		results:       make(chan Result[TEvent], resultBuffer),
		wake:          wake,
		logger:        logger,
	}
}

// SubmitRequest queues a consensus-layer request for processing.
func (s *Service[TRequest, TEvent]) SubmitRequest(request TRequest) {
	s.requests.PushEvent(request)
}

// DeliverSignal queues an orchestrator signal. Signals are applied by the run
// loop before the next poll so the engine stays single-threaded.
func (s *Service[TRequest, TEvent]) DeliverSignal(signal OrchestratorSignal) {
	s.signals.PushEvent(signal)
}

// Results returns the channel of bubbled engine results: chain events,
// backfill requests and the final fatal result.
func (s *Service[TRequest, TEvent]) Results() <-chan Result[TEvent] {
	return s.results
}

func (s *Service[TRequest, TEvent]) Run(ctx context.Context) error {
	s.logger.Debug(engineLogPrefix("running service component"))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error { return s.pumpBackendEvents(ctx) })
	eg.Go(func() error { return s.downloader.Run(ctx) })
	eg.Go(func() error { return s.loop(ctx) })
	return eg.Wait()
}

// pumpBackendEvents tees the backend's event channel into the handler's poll
// source, waking the loop on every arrival. Closure of the backend channel is
// passed through by closing the inner channel, which the handler surfaces as
// the fatal result.
func (s *Service[TRequest, TEvent]) pumpBackendEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-s.backendEvents:
			if !ok {
				close(s.handlerEvents)
				s.wake.Notify()
				return nil
			}
			select {
			case s.handlerEvents <- event:
				s.wake.Notify()
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	}
}

func (s *Service[TRequest, TEvent]) loop(ctx context.Context) error {
	for {
		for {
			signal, ok := s.signals.Next()
			if !ok {
				break
			}
			s.engine.DeliverSignal(signal)
		}

		for {
			result, ok := s.engine.Poll()
			if !ok {
				break
			}
			select {
			case s.results <- result:
			case <-ctx.Done():
				return ctx.Err()
			}
			if result.Type == ResultFatal {
				return ErrBackendClosed
			}
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-s.wake.C():
		}
	}
}

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
	"testing"

	"github.com/ledgerwatch/log/v3"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	libcommon "github.com/ledgerwatch/erigon-lib/common"

	"github.com/chainmux/chainmux/core/types"
	"github.com/chainmux/chainmux/turbo/testlog"
)

// scriptedHandler is a RequestHandler whose poll results are queued up front
// and which records every interaction in order.
type scriptedHandler struct {
	pending []HandlerEvent[string]
	inputs  []Input[string]
	calls   []string
	onInput func(input Input[string])
}

func (h *scriptedHandler) OnInput(input Input[string]) {
	h.inputs = append(h.inputs, input)
	switch input.Type {
	case InputRequest:
		h.calls = append(h.calls, "input:request:"+input.Request)
	case InputDownloadedBlocks:
		h.calls = append(h.calls, "input:blocks")
	case InputSignal:
		h.calls = append(h.calls, "input:signal:"+input.Signal.String())
	}
	if h.onInput != nil {
		h.onInput(input)
	}
}

func (h *scriptedHandler) Poll() (HandlerEvent[string], bool) {
	h.calls = append(h.calls, "poll")
	if len(h.pending) == 0 {
		return HandlerEvent[string]{}, false
	}
	event := h.pending[0]
	h.pending = h.pending[1:]
	return event, true
}

func (h *scriptedHandler) queue(events ...HandlerEvent[string]) {
	h.pending = append(h.pending, events...)
}

type engineTest struct {
	handler    *scriptedHandler
	requests   *EventChannel[string]
	downloader *MockBlockDownloader
	engine     *Engine[string, string]
}

func newEngineTest(t *testing.T) *engineTest {
	ctrl := gomock.NewController(t)
	handler := &scriptedHandler{}
	requests := NewEventChannel[string](16)
	downloader := NewMockBlockDownloader(ctrl)
	logger := testlog.Logger(t, log.LvlDebug)
	return &engineTest{
		handler:    handler,
		requests:   requests,
		downloader: downloader,
		engine:     NewEngine[string, string](logger, handler, requests, downloader),
	}
}

func TestEngineDrainsHandlerBeforeAcceptingWork(t *testing.T) {
	t.Parallel()

	test := newEngineTest(t)
	test.handler.queue(HandlerEvent[string]{Type: HandlerChainEvent, Event: "ev1"})
	test.requests.PushEvent("r1")

	// the queued handler result must come out before the request is touched
	result, ready := test.engine.Poll()
	require.True(t, ready)
	require.Equal(t, ResultChainEvent, result.Type)
	require.Equal(t, "ev1", result.Event)
	require.Empty(t, test.handler.inputs)
	require.Equal(t, 1, test.requests.Len())

	test.downloader.EXPECT().Poll().Return(DownloadOutcome{}, false).Times(1)

	_, ready = test.engine.Poll()
	require.False(t, ready)
	require.Len(t, test.handler.inputs, 1)
	require.Equal(t, InputRequest, test.handler.inputs[0].Type)
	require.Equal(t, "r1", test.handler.inputs[0].Request)
	require.Equal(t, 0, test.requests.Len())
}

func TestEngineAcceptsOneRequestPerIteration(t *testing.T) {
	t.Parallel()

	test := newEngineTest(t)
	test.requests.PushEvent("r1")
	test.requests.PushEvent("r2")
	test.downloader.EXPECT().Poll().Return(DownloadOutcome{}, false).Times(1)

	_, ready := test.engine.Poll()
	require.False(t, ready)

	// the handler is re-polled between the two accepted requests, and the
	// downloader is only consulted after the request stream runs dry
	require.Equal(t, []string{
		"poll",
		"input:request:r1",
		"poll",
		"input:request:r2",
		"poll",
	}, test.handler.calls)
}

func TestEngineClearsDownloadsBeforeBubblingBackfill(t *testing.T) {
	t.Parallel()

	test := newEngineTest(t)
	target := BackfillToHash(libcommon.HexToHash("0xaa"))
	test.handler.queue(HandlerEvent[string]{Type: HandlerBackfill, Target: target})

	var order []string
	test.downloader.EXPECT().
		OnCommand(ClearDownloads()).
		Do(func(DownloadCommand) { order = append(order, "clear") }).
		Times(1)

	result, ready := test.engine.Poll()
	order = append(order, "result")

	require.True(t, ready)
	require.Equal(t, ResultBackfill, result.Type)
	require.Equal(t, target, result.Target)
	require.Equal(t, []string{"clear", "result"}, order)
}

func TestEngineFatalIsTerminal(t *testing.T) {
	t.Parallel()

	test := newEngineTest(t)
	test.handler.queue(HandlerEvent[string]{Type: HandlerFatal})
	test.requests.PushEvent("r1")

	result, ready := test.engine.Poll()
	require.True(t, ready)
	require.Equal(t, ResultFatal, result.Type)

	// no further input reaches the handler, the queued request stays queued
	// and the downloader is never touched
	callsAfterFatal := len(test.handler.calls)
	result, ready = test.engine.Poll()
	require.True(t, ready)
	require.Equal(t, ResultFatal, result.Type)
	require.Len(t, test.handler.calls, callsAfterFatal)
	require.Equal(t, 1, test.requests.Len())

	test.engine.DeliverSignal(BackfillSyncFinished)
	require.Empty(t, test.handler.inputs)
}

func TestEngineDownloadRoundTrip(t *testing.T) {
	t.Parallel()

	test := newEngineTest(t)
	hash := libcommon.HexToHash("0x01")
	request := DownloadSingleBlock(hash)
	test.handler.queue(HandlerEvent[string]{Type: HandlerDownload, Download: request})
	test.handler.onInput = func(input Input[string]) {
		if input.Type == InputDownloadedBlocks {
			test.handler.queue(HandlerEvent[string]{Type: HandlerChainEvent, Event: "imported"})
		}
	}

	test.downloader.EXPECT().OnCommand(StartDownload(request)).Times(1)
	test.downloader.EXPECT().Poll().Return(DownloadOutcome{}, false).Times(1)

	_, ready := test.engine.Poll()
	require.False(t, ready)

	block := &types.BlockWithSenders{Block: &types.Block{Header: &types.Header{Number: 1}}}
	test.downloader.EXPECT().Poll().Return(DownloadOutcome{Blocks: []*types.BlockWithSenders{block}}, true).Times(1)

	result, ready := test.engine.Poll()
	require.True(t, ready)
	require.Equal(t, ResultChainEvent, result.Type)
	require.Equal(t, "imported", result.Event)

	var delivered []*types.BlockWithSenders
	for _, input := range test.handler.inputs {
		if input.Type == InputDownloadedBlocks {
			delivered = input.Blocks
		}
	}
	require.Len(t, delivered, 1)
	require.Same(t, block, delivered[0])
}

func TestEngineDeliverSignal(t *testing.T) {
	t.Parallel()

	test := newEngineTest(t)
	test.engine.DeliverSignal(BackfillSyncFinished)

	require.Len(t, test.handler.inputs, 1)
	require.Equal(t, InputSignal, test.handler.inputs[0].Type)
	require.Equal(t, BackfillSyncFinished, test.handler.inputs[0].Signal)
}

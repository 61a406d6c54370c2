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
	libcommon "github.com/ledgerwatch/erigon-lib/common"

	"github.com/chainmux/chainmux/core/types"
)

// OrchestratorSignal is emitted by the owning orchestrator when the node's
// sync mode changes. The engine forwards it into the request handler
// unchanged.
type OrchestratorSignal int

const (
	BackfillSyncStarted OrchestratorSignal = iota
	BackfillSyncFinished
)

func (s OrchestratorSignal) String() string {
	switch s {
	case BackfillSyncStarted:
		return "backfillSyncStarted"
	case BackfillSyncFinished:
		return "backfillSyncFinished"
	default:
		return "unknown"
	}
}

// BackfillTarget tells the orchestrator where backfill sync should go: either
// forward toward a tip hash, or backward to a block number. The engine treats
// it as opaque and only passes it along.
type BackfillTarget struct {
	TipHash  libcommon.Hash
	UnwindTo uint64
	Unwind   bool
}

func BackfillToHash(tipHash libcommon.Hash) BackfillTarget {
	return BackfillTarget{TipHash: tipHash}
}

func BackfillUnwind(blockNum uint64) BackfillTarget {
	return BackfillTarget{UnwindTo: blockNum, Unwind: true}
}

type InputType int

const (
	InputSignal InputType = iota
	InputRequest
	InputDownloadedBlocks
)

func (t InputType) String() string {
	switch t {
	case InputSignal:
		return "signal"
	case InputRequest:
		return "request"
	case InputDownloadedBlocks:
		return "downloadedBlocks"
	default:
		return "unknown"
	}
}

// Input is everything that can be delivered into a RequestHandler: an
// orchestrator signal, a consensus-layer request, or blocks that finished
// downloading. Exactly one payload field is set, selected by Type.
type Input[TRequest any] struct {
	Type    InputType
	Signal  OrchestratorSignal
	Request TRequest
	Blocks  []*types.BlockWithSenders
}

func SignalInput[TRequest any](signal OrchestratorSignal) Input[TRequest] {
	return Input[TRequest]{Type: InputSignal, Signal: signal}
}

func RequestInput[TRequest any](request TRequest) Input[TRequest] {
	return Input[TRequest]{Type: InputRequest, Request: request}
}

func BlocksInput[TRequest any](blocks []*types.BlockWithSenders) Input[TRequest] {
	return Input[TRequest]{Type: InputDownloadedBlocks, Blocks: blocks}
}

type ResultType int

const (
	ResultChainEvent ResultType = iota
	ResultBackfill
	ResultFatal
)

func (t ResultType) String() string {
	switch t {
	case ResultChainEvent:
		return "chainEvent"
	case ResultBackfill:
		return "backfill"
	case ResultFatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Result is what the engine bubbles up to the owning orchestrator: a chain
// progress event, a request to switch to backfill sync, or a fatal error
// after which the engine produces nothing useful.
type Result[TEvent any] struct {
	Type   ResultType
	Event  TEvent
	Target BackfillTarget
}

type HandlerEventType int

const (
	HandlerChainEvent HandlerEventType = iota
	HandlerBackfill
	HandlerFatal
	HandlerDownload
)

// HandlerEvent is everything a RequestHandler may produce when polled: the
// three bubbled result kinds, plus a request to download blocks which the
// engine routes to the downloader instead of the orchestrator.
type HandlerEvent[TEvent any] struct {
	Type     HandlerEventType
	Event    TEvent
	Target   BackfillTarget
	Download DownloadRequest
}

type BackendEventType int

const (
	BackendEventChain BackendEventType = iota
	BackendEventBackfill
	BackendEventDownload
)

// BackendEvent is what the execution backend sends back over its event
// channel. BackendHandler translates these 1:1 into HandlerEvents.
type BackendEvent[TEvent any] struct {
	Type     BackendEventType
	Event    TEvent
	Target   BackfillTarget
	Download DownloadRequest
}

func ChainEvent[TEvent any](event TEvent) BackendEvent[TEvent] {
	return BackendEvent[TEvent]{Type: BackendEventChain, Event: event}
}

func BackfillEvent[TEvent any](target BackfillTarget) BackendEvent[TEvent] {
	return BackendEvent[TEvent]{Type: BackendEventBackfill, Target: target}
}

func DownloadEvent[TEvent any](request DownloadRequest) BackendEvent[TEvent] {
	return BackendEvent[TEvent]{Type: BackendEventDownload, Download: request}
}

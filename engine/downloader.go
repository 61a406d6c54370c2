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

	"github.com/ledgerwatch/log/v3"

	libcommon "github.com/ledgerwatch/erigon-lib/common"

	"github.com/chainmux/chainmux/core/types"
)

type DownloadRequestType int

const (
	DownloadBySet DownloadRequestType = iota
	DownloadByRange
)

// DownloadRequest asks the downloader for either a set of blocks by hash or a
// contiguous range starting at a hash. The set form collapses duplicates.
type DownloadRequest struct {
	Type       DownloadRequestType
	Hashes     map[libcommon.Hash]struct{}
	RangeStart libcommon.Hash
	RangeCount uint64
}

func DownloadBlockSet(hashes ...libcommon.Hash) DownloadRequest {
	set := make(map[libcommon.Hash]struct{}, len(hashes))
	for _, hash := range hashes {
		set[hash] = struct{}{}
	}
	return DownloadRequest{Type: DownloadBySet, Hashes: set}
}

func DownloadSingleBlock(hash libcommon.Hash) DownloadRequest {
	return DownloadBlockSet(hash)
}

func DownloadBlockRange(start libcommon.Hash, count uint64) DownloadRequest {
	return DownloadRequest{Type: DownloadByRange, RangeStart: start, RangeCount: count}
}

type DownloadCommandType int

const (
	// DownloadClear abandons all queued and in-flight download work. Issued
	// when backfill sync takes over and live-sync downloads become stale.
	DownloadClear DownloadCommandType = iota
	DownloadStart
)

func (t DownloadCommandType) String() string {
	switch t {
	case DownloadClear:
		return "clear"
	case DownloadStart:
		return "start"
	default:
		return "unknown"
	}
}

type DownloadCommand struct {
	Type    DownloadCommandType
	Request DownloadRequest
}

func ClearDownloads() DownloadCommand {
	return DownloadCommand{Type: DownloadClear}
}

func StartDownload(request DownloadRequest) DownloadCommand {
	return DownloadCommand{Type: DownloadStart, Request: request}
}

// DownloadOutcome is one completed batch of blocks, ordered by height.
// Download failures never surface here: retries, peer selection and partial
// failures are the downloader's own business.
type DownloadOutcome struct {
	Blocks []*types.BlockWithSenders
}

// BlockDownloader fetches blocks from the network on the engine's behalf.
// Both operations must not block. Poll may report a completed batch any
// number of times, once per batch. The engine is the only caller of either
// operation.
//
//go:generate mockgen -typed=true -source=./downloader.go -destination=./downloader_mock.go -package=engine . BlockDownloader
type BlockDownloader interface {
	OnCommand(command DownloadCommand)
	Poll() (DownloadOutcome, bool)
}

// ChannelDownloader adapts a downloader that lives behind a channel pair to
// the BlockDownloader contract: commands go out on one channel, completed
// batches come back on another. Run pumps incoming batches into an internal
// queue so Poll stays non-blocking.
type ChannelDownloader struct {
	commands chan<- DownloadCommand
	outcomes <-chan DownloadOutcome
	buffer   *EventChannel[DownloadOutcome]
	logger   log.Logger
}

func NewChannelDownloader(
	logger log.Logger,
	commands chan<- DownloadCommand,
	outcomes <-chan DownloadOutcome,
	notifier *Notifier,
) *ChannelDownloader {
	return &ChannelDownloader{
		commands: commands,
		outcomes: outcomes,
		buffer:   NewEventChannel[DownloadOutcome](0, WithEventNotifier(notifier)),
		logger:   logger,
	}
}

func (d *ChannelDownloader) OnCommand(command DownloadCommand) {
	select {
	case d.commands <- command:
	default:
		d.logger.Warn(engineLogPrefix("download command channel full, dropping command"), "type", command.Type)
	}
}

func (d *ChannelDownloader) Poll() (DownloadOutcome, bool) {
	return d.buffer.Next()
}

// Run consumes completed batches until the context is cancelled or the
// outcome channel closes. A closed outcome channel only means no more
// downloads will complete; it is not an error.
func (d *ChannelDownloader) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case outcome, ok := <-d.outcomes:
			if !ok {
				return nil
			}
			d.buffer.PushEvent(outcome)
		}
	}
}

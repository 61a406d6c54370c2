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
	"github.com/ledgerwatch/erigon-lib/metrics"
)

var (
	mxRequestsAccepted   = metrics.GetOrCreateCounter(`engine_requests_accepted`)
	mxDownloadsStarted   = metrics.GetOrCreateCounter(`engine_downloads_started`)
	mxDownloadsCleared   = metrics.GetOrCreateCounter(`engine_downloads_cleared`)
	mxBatchesDelivered   = metrics.GetOrCreateCounter(`engine_download_batches_delivered`)
	mxBackfillRequests   = metrics.GetOrCreateCounter(`engine_backfill_requests`)
	mxFatalErrors        = metrics.GetOrCreateCounter(`engine_fatal_errors`)
	mxQueueEventsDropped = metrics.GetOrCreateCounter(`engine_queue_events_dropped`)
)

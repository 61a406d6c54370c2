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

// Package testlog provides a log handler that buffers records into the
// unit test log of the current test.
package testlog

import (
	"sync"
	"testing"

	"github.com/ledgerwatch/log/v3"
)

// Logger returns a logger which logs to the unit test log of t.
func Logger(t *testing.T, level log.Lvl) log.Logger {
	l := log.New()
	l.SetHandler(Handler(t, level))
	return l
}

// Handler returns a log handler which logs to the unit test log of t.
func Handler(t *testing.T, level log.Lvl) log.Handler {
	return log.LvlFilterHandler(level, &handler{t: t, fmt: log.LogfmtFormat()})
}

type handler struct {
	mu  sync.Mutex
	t   *testing.T
	fmt log.Format
}

func (h *handler) Log(r *log.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.t.Logf("%s", h.fmt.Format(r))
	return nil
}

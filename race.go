// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package lnq

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent MPSC runs: the atomix diagnostic
// counters appear to the detector as plain memory accesses.
const RaceEnabled = true

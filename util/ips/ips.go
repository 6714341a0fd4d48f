/*
 * RV32 - Instructions per second monitor
 *
 * Copyright 2025, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package ips tracks how many instructions the emulator retires per
// wall clock second. Samples are cheap, so the caller may offer one
// as often as it likes; a rate is computed once at least a second of
// wall time has passed.
package ips

import "time"

// Monitor accumulates cycle samples into a rate.
type Monitor struct {
	lastTime   time.Time
	lastCycles uint64
	rate       float64
}

// New returns a monitor primed with the current cycle count.
func New(currentCycles uint64) *Monitor {
	return &Monitor{lastTime: time.Now(), lastCycles: currentCycles}
}

// Update offers a cycle count sample. It returns the new rate and
// true when a full window has elapsed and the rate was recomputed.
func (m *Monitor) Update(currentCycles uint64) (float64, bool) {
	if time.Since(m.lastTime) < time.Second {
		return m.rate, false
	}
	now := time.Now()
	deltaCycles := currentCycles - m.lastCycles
	deltaTime := now.Sub(m.lastTime).Seconds()

	m.rate = float64(deltaCycles) / deltaTime
	m.lastTime = now
	m.lastCycles = currentCycles
	return m.rate, true
}

// Rate returns the most recently computed rate, zero before the first
// full window.
func (m *Monitor) Rate() float64 {
	return m.rate
}

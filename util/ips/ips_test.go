/*
 * RV32 - Instructions per second monitor tests
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

package ips

import (
	"testing"
	"time"
)

// No rate before a full window has elapsed.
func TestNoEarlyRate(t *testing.T) {
	m := New(0)
	rate, ok := m.Update(500)
	if ok {
		t.Error("rate computed before the window elapsed")
	}
	if rate != 0 {
		t.Errorf("early rate not correct got: %f expected: 0", rate)
	}
	if m.Rate() != 0 {
		t.Errorf("initial rate not correct got: %f expected: 0", m.Rate())
	}
}

// After a full window the rate reflects the cycle delta.
func TestRateAfterWindow(t *testing.T) {
	m := New(1000)
	m.lastTime = time.Now().Add(-2 * time.Second)
	rate, ok := m.Update(2001000)
	if !ok {
		t.Fatal("rate not computed after the window elapsed")
	}
	// Two million cycles over roughly two seconds.
	if rate < 900000 || rate > 1100000 {
		t.Errorf("rate not plausible got: %f expected: ~1000000", rate)
	}
	if m.Rate() != rate {
		t.Errorf("Rate not cached got: %f expected: %f", m.Rate(), rate)
	}
	// The window resets.
	if _, ok := m.Update(2002000); ok {
		t.Error("rate recomputed immediately after a window")
	}
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package lnq_test

import (
	"testing"

	"code.hybscloud.com/lnq"
)

func TestBuildSelection(t *testing.T) {
	tests := []struct {
		name     string
		builder  *lnq.Builder
		wantMPSC bool
	}{
		{"Default", lnq.New(), false},
		{"SingleConsumer", lnq.New().SingleConsumer(), true},
		{"SingleConsumerLocked", lnq.New().SingleConsumer().Locked(), false},
		{"Locked", lnq.New().Locked(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := lnq.Build[int](tt.builder)
			_, isMPSC := q.(*lnq.MPSC[int])
			_, isLocked := q.(*lnq.Locked[int])
			if isMPSC != tt.wantMPSC || isLocked == tt.wantMPSC {
				t.Fatalf("Build: got %T", q)
			}
		})
	}
}

func TestBuildMPSCPanics(t *testing.T) {
	tests := []struct {
		name    string
		builder *lnq.Builder
	}{
		{"NoConstraint", lnq.New()},
		{"Locked", lnq.New().SingleConsumer().Locked()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if r := recover(); r == nil {
					t.Fatal("expected panic")
				}
			}()
			lnq.BuildMPSC[int](tt.builder)
		})
	}

	if q := lnq.BuildMPSC[int](lnq.New().SingleConsumer()); q == nil {
		t.Fatal("BuildMPSC returned nil")
	}
	if q := lnq.BuildLocked[int](lnq.New().SingleConsumer()); q == nil {
		t.Fatal("BuildLocked returned nil")
	}
}

func TestQueueInterface(t *testing.T) {
	var _ lnq.Queue[int] = lnq.NewMPSC[int]()
	var _ lnq.Queue[int] = lnq.NewLocked[int]()
}

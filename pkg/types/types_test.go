package types_test

import (
	"testing"

	"github.com/arthur-debert/relink/pkg/types"
)

func TestKindOrDefault(t *testing.T) {
	if got := (types.LinkDescriptor{}).KindOrDefault(); got != types.KindSymbolic {
		t.Errorf("KindOrDefault() = %v, want %v", got, types.KindSymbolic)
	}
	if got := (types.LinkDescriptor{Kind: types.KindHard}).KindOrDefault(); got != types.KindHard {
		t.Errorf("KindOrDefault() = %v, want %v", got, types.KindHard)
	}
}

func TestHardLinkCandidate(t *testing.T) {
	tests := []struct {
		kind types.StateKind
		want bool
	}{
		{types.StateAbsent, false},
		{types.StateRegular, true},
		{types.StateDirectory, false},
		{types.StateSymlink, false},
		{types.StateOther, true},
	}

	for _, tt := range tests {
		state := types.CurrentState{Kind: tt.kind}
		if got := state.HardLinkCandidate(); got != tt.want {
			t.Errorf("HardLinkCandidate(%s) = %v, want %v", tt.kind, got, tt.want)
		}
	}
}

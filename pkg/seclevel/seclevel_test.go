package seclevel

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestConduitSecurityLevel(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		expected int
	}{
		{"equal levels", 2, 2, 2},
		{"from higher", 4, 1, 4},
		{"to higher", 1, 4, 4},
		{"adjacent", 2, 3, 3},
		{"minimum", 1, 1, 1},
		{"maximum", 4, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConduitSecurityLevel(tt.from, tt.to); got != tt.expected {
				t.Errorf("ConduitSecurityLevel(%d, %d) = %d, want %d", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestRequiresInspection(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		expected bool
	}{
		{"no gap", 2, 2, false},
		{"gap of one", 2, 3, false},
		{"gap of one reversed", 3, 2, false},
		{"gap of exactly two", 1, 3, true},
		{"gap of exactly two reversed", 3, 1, true},
		{"gap of three", 1, 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RequiresInspection(tt.from, tt.to); got != tt.expected {
				t.Errorf("RequiresInspection(%d, %d) = %t, want %t", tt.from, tt.to, got, tt.expected)
			}
		})
	}
}

func TestEffectiveConduitLevel(t *testing.T) {
	if got := EffectiveConduitLevel(0, 2, 3); got != 3 {
		t.Errorf("without override: got %d, want 3", got)
	}
	if got := EffectiveConduitLevel(4, 2, 3); got != 4 {
		t.Errorf("with override: got %d, want 4", got)
	}
	// An explicit override wins even when it is below the derived level;
	// flagging that is the validator's job, not this function's.
	if got := EffectiveConduitLevel(1, 2, 3); got != 1 {
		t.Errorf("with low override: got %d, want 1", got)
	}
}

func TestRequiresEncryption(t *testing.T) {
	for level := 1; level <= 4; level++ {
		expected := level >= 3
		if got := RequiresEncryption(level); got != expected {
			t.Errorf("RequiresEncryption(%d) = %t, want %t", level, got, expected)
		}
	}
}

// TestLevelRuleProperties verifies the algebraic properties of the level
// rules over the whole 1-4 domain
func TestLevelRuleProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)
	levelGen := gen.IntRange(1, 4)

	properties.Property("conduit level is symmetric", prop.ForAll(
		func(a, b int) bool {
			return ConduitSecurityLevel(a, b) == ConduitSecurityLevel(b, a)
		},
		levelGen, levelGen,
	))

	properties.Property("conduit level is the max of its endpoints", prop.ForAll(
		func(a, b int) bool {
			got := ConduitSecurityLevel(a, b)
			if a > b {
				return got == a
			}
			return got == b
		},
		levelGen, levelGen,
	))

	properties.Property("inspection required iff gap >= 2", prop.ForAll(
		func(a, b int) bool {
			gap := a - b
			if gap < 0 {
				gap = -gap
			}
			return RequiresInspection(a, b) == (gap >= 2)
		},
		levelGen, levelGen,
	))

	properties.Property("inspection is symmetric", prop.ForAll(
		func(a, b int) bool {
			return RequiresInspection(a, b) == RequiresInspection(b, a)
		},
		levelGen, levelGen,
	))

	properties.TestingRun(t)
}

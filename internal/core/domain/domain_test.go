package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestInstance_Family_ReadsConfigEntry(t *testing.T) {
	tests := []struct {
		name       string
		config     map[string]any
		wantFamily string
		wantOK     bool
	}{
		{
			name:       "FamilyPresent_ShouldReturnIt",
			config:     map[string]any{"family": "model"},
			wantFamily: "model",
			wantOK:     true,
		},
		{
			name:   "FamilyAbsent_ShouldMatchNothing",
			config: map[string]any{},
			wantOK: false,
		},
		{
			name:   "NilConfig_ShouldMatchNothing",
			config: nil,
			wantOK: false,
		},
		{
			name:   "NonStringFamily_ShouldMatchNothing",
			config: map[string]any{"family": 42},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inst := NewInstance("|root|node", tt.config)
			family, ok := inst.Family()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantFamily, family)
		})
	}
}

func TestInstance_Config_IsLiveForPluginMutation(t *testing.T) {
	inst := NewInstance("|root|node", map[string]any{"family": "rig"})

	inst.Config()["output"] = "/tmp/out.ma"

	assert.Equal(t, "/tmp/out.ma", inst.Config()["output"])
}

func TestInstance_RecordError_IsAppendOnly(t *testing.T) {
	inst := NewInstance("|root|node", nil)

	first := &ProcessError{Plugin: "p1", Instance: inst, Err: errors.New("boom")}
	second := &ProcessError{Plugin: "p2", Instance: inst, Err: errors.New("bang")}
	inst.RecordError(first)
	inst.RecordError(second)

	errs := inst.Errors()
	require.Len(t, errs, 2)
	assert.Same(t, first, errs[0])
	assert.Same(t, second, errs[1])

	// Mutating the returned slice must not disturb the instance.
	errs[0] = nil
	require.Same(t, first, inst.Errors()[0])
}

func TestContext_Append_PreservesInsertionOrder(t *testing.T) {
	ctx := NewContext()
	a := NewInstance("a", nil)
	b := NewInstance("b", nil)
	c := NewInstance("c", nil)

	ctx.Append(a)
	ctx.Append(b)
	ctx.Append(c)

	require.Equal(t, 3, ctx.Len())
	instances := ctx.Instances()
	assert.Same(t, a, instances[0])
	assert.Same(t, b, instances[1])
	assert.Same(t, c, instances[2])
}

func TestContext_Errors_ConcatenatesInContextOrder(t *testing.T) {
	ctx := NewContext()

	a := NewInstance("a", nil)
	errA := &ProcessError{Plugin: "p", Instance: a, Err: errors.New("a failed")}
	a.RecordError(errA)

	b := NewInstance("b", nil)

	c := NewInstance("c", nil)
	errC1 := &ProcessError{Plugin: "p", Instance: c, Err: errors.New("c failed")}
	errC2 := &ProcessError{Plugin: "q", Instance: c, Err: errors.New("c failed again")}
	c.RecordError(errC1)
	c.RecordError(errC2)

	ctx.Append(a)
	ctx.Append(b)
	ctx.Append(c)

	errs := ctx.Errors()
	require.Len(t, errs, 3)
	assert.Same(t, errA, errs[0])
	assert.Same(t, errC1, errs[1])
	assert.Same(t, errC2, errs[2])
	assert.True(t, ctx.HasErrors())
}

func TestContext_HasErrors_FalseWhenEmpty(t *testing.T) {
	ctx := NewContext()
	assert.False(t, ctx.HasErrors())

	ctx.Append(NewInstance("clean", nil))
	assert.False(t, ctx.HasErrors())
	assert.Empty(t, ctx.Errors())
}

// Property: Context.Errors always equals the concatenation, in instance
// order, of each instance's errors, and HasErrors is true iff that
// concatenation is non-empty.
func TestContext_Errors_ConcatenationProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		ctx := NewContext()
		var want []*ProcessError

		instanceCount := rapid.IntRange(0, 8).Draw(t, "instanceCount")
		for i := 0; i < instanceCount; i++ {
			inst := NewInstance(fmt.Sprintf("inst-%d", i), nil)
			errorCount := rapid.IntRange(0, 4).Draw(t, "errorCount")
			for j := 0; j < errorCount; j++ {
				perr := &ProcessError{
					Plugin:   fmt.Sprintf("plugin-%d-%d", i, j),
					Instance: inst,
					Err:      errors.New("failure"),
				}
				inst.RecordError(perr)
				want = append(want, perr)
			}
			ctx.Append(inst)
		}

		got := ctx.Errors()
		require.Len(t, got, len(want))
		for i := range want {
			assert.Same(t, want[i], got[i])
		}
		assert.Equal(t, len(want) > 0, ctx.HasErrors())
	})
}

func TestProcessError_Error_IncludesIdentityAndCause(t *testing.T) {
	inst := NewInstance("|scene|hero", nil)
	cause := errors.New("mesh has no UVs")
	perr := &ProcessError{
		Plugin:     "uv-validator",
		Stage:      StageValidators,
		Instance:   inst,
		Err:        cause,
		OccurredAt: time.Now(),
	}

	assert.Contains(t, perr.Error(), "uv-validator")
	assert.Contains(t, perr.Error(), "|scene|hero")
	assert.Contains(t, perr.Error(), "mesh has no UVs")
	assert.ErrorIs(t, perr, cause)
}

package report

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"publishkit.dev/cli/internal/core/domain"
)

func TestNew_AssignsUniqueRunIDs(t *testing.T) {
	first := New(domain.HostMaya)
	second := New(domain.HostMaya)

	assert.NotEmpty(t, first.RunID)
	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Equal(t, domain.HostMaya, first.Host)
	assert.False(t, first.StartedAt.IsZero())
}

func TestRecordStage_DerivesNewErrorCount(t *testing.T) {
	ctx := domain.NewContext()
	inst := domain.NewInstance("hero", map[string]any{"family": "model"})
	ctx.Append(inst)

	rep := New(domain.HostMaya)
	rep.RecordStage(domain.StageSelectors, ctx, 0, 10*time.Millisecond)

	inst.RecordError(&domain.ProcessError{Plugin: "v", Instance: inst, Err: errors.New("bad")})
	inst.RecordError(&domain.ProcessError{Plugin: "w", Instance: inst, Err: errors.New("worse")})
	rep.RecordStage(domain.StageValidators, ctx, 0, 25*time.Millisecond)

	rep.RecordStage(domain.StageExtractors, ctx, 2, 5*time.Millisecond)

	require.Len(t, rep.Stages, 3)
	assert.Equal(t, 0, rep.Stages[0].NewErrors)
	assert.Equal(t, 2, rep.Stages[1].NewErrors)
	assert.Equal(t, 0, rep.Stages[2].NewErrors)
	assert.Equal(t, 1, rep.Stages[1].Instances)
	assert.Equal(t, 2, rep.TotalErrors())
}

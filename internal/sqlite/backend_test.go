package sqlite

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/themes/pkg/types"
)

func TestSnapshot_Create(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	s := NewSnapshot()
	require.NoError(t, s.Create(ctx, cfg))
	defer s.Detach()

	_, err := os.Stat(cfg.Database)
	require.NoError(t, err, "snapshot file should exist")
	assert.Equal(t, cfg.Database, s.Path())

	// Schema creation is idempotent.
	require.NoError(t, s.EnsureSchema(ctx))
}

func TestSnapshot_AttachMissingFile(t *testing.T) {
	cfg := testConfig(t)

	err := NewSnapshot().Attach(context.Background(), cfg)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSnapshotMissing))
}

func TestSnapshot_AttachExisting(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	created := NewSnapshot()
	require.NoError(t, created.Create(ctx, cfg))
	require.NoError(t, created.Detach())

	s := NewSnapshot()
	require.NoError(t, s.Attach(ctx, cfg))
	defer s.Detach()

	err := s.Attach(ctx, cfg)
	assert.ErrorIs(t, err, ErrAlreadyAttached)
}

func TestSnapshot_AttachRejectsInvalidConfig(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	created := NewSnapshot()
	require.NoError(t, created.Create(ctx, cfg))
	require.NoError(t, created.Detach())

	cfg.Backend = "postgres"
	err := NewSnapshot().Attach(ctx, cfg)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
}

func TestSnapshot_Detach(t *testing.T) {
	ctx := context.Background()
	s, cfg := newSeededSnapshot(t)

	require.NoError(t, s.Detach())
	require.NoError(t, s.Detach(), "second Detach should not error")

	_, err := s.ThemeRows(ctx, cfg.Query)
	assert.ErrorIs(t, err, ErrDetached)

	_, err = s.AssignPaperIDs(ctx, nil)
	assert.ErrorIs(t, err, ErrDetached)

	assert.ErrorIs(t, s.EnsureSchema(ctx), ErrDetached)
}

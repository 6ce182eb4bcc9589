package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/canvass/pkg/adapters/file"
	"github.com/aretw0/canvass/pkg/domain"
	"github.com/aretw0/canvass/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_Contract(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ports.RunResumeStoreContract(t, store)
}

func TestFileStoreRejectsEmptySessionID(t *testing.T) {
	store := file.NewStore(t.TempDir())
	ctx := context.Background()

	assert.Error(t, store.SaveStepIndex(ctx, "", 1))
	assert.Error(t, store.SaveResponses(ctx, "", []byte("{}")))
}

func TestFileStoreMangledStepSlot(t *testing.T) {
	dir := t.TempDir()
	store := file.NewStore(dir)
	ctx := context.Background()

	// A step file that doesn't parse as an int reads as absent.
	path := filepath.Join(dir, "mangled.step")
	require.NoError(t, os.WriteFile(path, []byte("three"), 0644))

	_, err := store.LoadStepIndex(ctx, "mangled")
	assert.ErrorIs(t, err, domain.ErrNoResumeState)
}

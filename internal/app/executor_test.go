package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

func TestExecutor_CollectsProducedMedia(t *testing.T) {
	root := t.TempDir()
	engine := &fakeEngine{produce: map[string]int{
		"clip.mp4":  2048,
		"track.mp3": 512,
		"notes.txt": 16, // not a media extension
	}}
	executor := NewExecutor(engine, root, zap.NewNop())

	result, err := executor.Execute(context.Background(), "https://example.com/v", domain.DownloadDirective{Format: "18"})
	require.NoError(t, err)
	defer result.Cleanup()

	require.Len(t, result.Files, 2)
	kinds := map[string]domain.MediaKind{}
	for _, file := range result.Files {
		kinds[filepath.Base(file.Path)] = file.Kind
		info, statErr := os.Stat(file.Path)
		require.NoError(t, statErr)
		assert.Equal(t, info.Size(), file.Size)
	}
	assert.Equal(t, domain.KindVideo, kinds["clip.mp4"])
	assert.Equal(t, domain.KindAudio, kinds["track.mp3"])

	assert.Equal(t, filepath.Join(filepath.Dir(engine.lastOpts.OutputTemplate), "%(title)s.%(ext)s"), engine.lastOpts.OutputTemplate)
}

func TestExecutor_NoFileProduced(t *testing.T) {
	root := t.TempDir()
	engine := &fakeEngine{produce: map[string]int{"report.txt": 10}}
	executor := NewExecutor(engine, root, zap.NewNop())

	_, err := executor.Execute(context.Background(), "https://example.com/v", domain.DownloadDirective{})

	require.ErrorIs(t, err, domain.ErrNoFileProduced)
	assertRootEmpty(t, root)
}

func TestExecutor_EngineFailureReleasesWorkspace(t *testing.T) {
	root := t.TempDir()
	engine := &fakeEngine{downloadErr: fmt.Errorf("yt-dlp download failed: boom")}
	executor := NewExecutor(engine, root, zap.NewNop())

	_, err := executor.Execute(context.Background(), "https://example.com/v", domain.DownloadDirective{})

	require.Error(t, err)
	assertRootEmpty(t, root)
}

func TestDownloadResult_Cleanup(t *testing.T) {
	root := t.TempDir()
	engine := &fakeEngine{produce: map[string]int{"clip.mp4": 1}}
	executor := NewExecutor(engine, root, zap.NewNop())

	result, err := executor.Execute(context.Background(), "https://example.com/v", domain.DownloadDirective{})
	require.NoError(t, err)

	result.Cleanup()
	assertRootEmpty(t, root)

	// A second cleanup is a no-op.
	result.Cleanup()
}

func TestWorkspace_SeparatePerInvocation(t *testing.T) {
	root := t.TempDir()

	first, err := NewWorkspace(root)
	require.NoError(t, err)
	second, err := NewWorkspace(root)
	require.NoError(t, err)
	defer first.Cleanup()
	defer second.Cleanup()

	assert.NotEqual(t, first.Dir(), second.Dir())
}

func assertRootEmpty(t *testing.T, root string) {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

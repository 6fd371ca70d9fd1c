package app

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// Workspace is the scoped temporary directory owning one download
// invocation's output. Cleanup is idempotent and must run exactly once
// per workspace on every exit path.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh workspace directory under root
func NewWorkspace(root string) (*Workspace, error) {
	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace root: %w", err)
	}
	dir := filepath.Join(root, "fetch-"+uuid.NewString())
	if err := os.Mkdir(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path
func (w *Workspace) Dir() string {
	return w.dir
}

// OutputTemplate returns the engine output template anchored in the
// workspace
func (w *Workspace) OutputTemplate() string {
	return filepath.Join(w.dir, "%(title)s.%(ext)s")
}

// Cleanup removes the workspace recursively
func (w *Workspace) Cleanup() {
	if w.dir == "" {
		return
	}
	os.RemoveAll(w.dir)
	w.dir = ""
}

// MediaFile is one produced file, annotated with size and inferred kind
type MediaFile struct {
	Path string
	Size int64
	Kind domain.MediaKind
}

// DownloadResult is the set of media files one download produced. The
// result owns its workspace; the consumer releases it via Cleanup once
// delivery is finished.
type DownloadResult struct {
	Files     []MediaFile
	workspace *Workspace
}

// Cleanup releases the result's workspace
func (r *DownloadResult) Cleanup() {
	if r.workspace != nil {
		r.workspace.Cleanup()
	}
}

// Executor invokes the download engine inside a scoped workspace and
// collects the produced media files
type Executor struct {
	engine domain.Engine
	root   string
	logger *zap.Logger
}

// NewExecutor creates an executor placing workspaces under root
func NewExecutor(engine domain.Engine, root string, logger *zap.Logger) *Executor {
	return &Executor{
		engine: engine,
		root:   root,
		logger: logger,
	}
}

// Execute runs one download directive. On failure the workspace is
// destroyed before returning; on success ownership passes to the
// returned result.
func (e *Executor) Execute(ctx context.Context, url string, directive domain.DownloadDirective) (*DownloadResult, error) {
	workspace, err := NewWorkspace(e.root)
	if err != nil {
		return nil, err
	}

	opts := domain.DownloadOptions{
		OutputTemplate: workspace.OutputTemplate(),
		Format:         directive.Format,
		Audio:          directive.Audio,
	}
	if err := e.engine.Download(ctx, url, opts); err != nil {
		workspace.Cleanup()
		return nil, err
	}

	files, err := collectMedia(workspace.Dir())
	if err != nil {
		workspace.Cleanup()
		return nil, fmt.Errorf("failed to scan workspace: %w", err)
	}
	if len(files) == 0 {
		workspace.Cleanup()
		return nil, domain.ErrNoFileProduced
	}

	e.logger.Info("Download produced files",
		zap.String("url", url),
		zap.Int("count", len(files)))

	return &DownloadResult{Files: files, workspace: workspace}, nil
}

// collectMedia enumerates the workspace recursively for files with a
// known media extension
func collectMedia(dir string) ([]MediaFile, error) {
	var files []MediaFile
	err := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}
		kind, ok := domain.KindForExt(filepath.Ext(path))
		if !ok {
			return nil
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		files = append(files, MediaFile{
			Path: path,
			Size: info.Size(),
			Kind: kind,
		})
		return nil
	})
	return files, err
}

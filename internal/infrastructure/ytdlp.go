package infrastructure

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// YTDLPEngine drives the external yt-dlp binary as the extraction and
// download engine
type YTDLPEngine struct {
	binary string
	logger *zap.Logger
}

// NewYTDLPEngine creates an engine around the given yt-dlp binary
func NewYTDLPEngine(config *domain.EngineConfig, logger *zap.Logger) *YTDLPEngine {
	return &YTDLPEngine{
		binary: config.Binary,
		logger: logger,
	}
}

// Resolve fetches metadata for a URL without downloading anything
func (e *YTDLPEngine) Resolve(ctx context.Context, url string) (*domain.MediaInfo, error) {
	args := resolveArgs(url)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	e.logger.Debug("Resolving URL", zap.String("cmd", commandLine(e.binary, args)))

	if err := cmd.Run(); err != nil {
		return nil, engineError("resolve", &stderr, err)
	}

	var info domain.MediaInfo
	if err := json.Unmarshal(stdout.Bytes(), &info); err != nil {
		return nil, fmt.Errorf("failed to parse extractor output: %w", err)
	}
	if info.WebpageURL == "" {
		info.WebpageURL = url
	}
	return &info, nil
}

// Download produces files under the options' output template,
// optionally extracting and transcoding audio
func (e *YTDLPEngine) Download(ctx context.Context, url string, opts domain.DownloadOptions) error {
	args := downloadArgs(url, opts)

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, e.binary, args...)
	cmd.Stderr = &stderr

	e.logger.Info("Starting download",
		zap.String("url", url),
		zap.String("format", opts.Format),
		zap.String("cmd", commandLine(e.binary, args)))

	if err := cmd.Run(); err != nil {
		return engineError("download", &stderr, err)
	}
	return nil
}

func resolveArgs(url string) []string {
	return []string{
		"--dump-single-json",
		"--no-warnings",
		"--no-playlist",
		url,
	}
}

func downloadArgs(url string, opts domain.DownloadOptions) []string {
	args := []string{
		"--no-warnings",
		"--no-playlist",
		"-o", opts.OutputTemplate,
	}
	if opts.Format != "" {
		args = append(args, "-f", opts.Format)
	}
	if opts.Audio != nil {
		args = append(args, "-x", "--audio-format", opts.Audio.Codec)
		if opts.Audio.Quality != "" {
			args = append(args, "--audio-quality", opts.Audio.Quality)
		}
	}
	return append(args, url)
}

// engineError surfaces the engine's own message so failures stay
// classifiable by substring
func engineError(op string, stderr *bytes.Buffer, err error) error {
	detail := strings.TrimSpace(stderr.String())
	if detail == "" {
		return fmt.Errorf("yt-dlp %s failed: %w", op, err)
	}
	return fmt.Errorf("yt-dlp %s failed: %s: %w", op, detail, err)
}

// commandLine renders a command for log display with shell-style
// quoting; exec.Command itself needs none
func commandLine(binary string, args []string) string {
	parts := []string{shellQuote(binary)}
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s == "" {
		return "''"
	}
	if !strings.ContainsAny(s, " \t'\"$`\\!*?[](){}|;<>&~#%\n") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'"'"'`) + "'"
}

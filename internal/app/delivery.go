package app

import (
	"context"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// DeliveryReport folds the independent per-file outcomes of one
// delivery pass
type DeliveryReport struct {
	Sent    int
	Skipped int
	Failed  int
}

// Complete reports whether every produced file was sent
func (r DeliveryReport) Complete(total int) bool {
	return r.Sent == total
}

// DeliveryRouter classifies produced files and hands them to the
// transport, enforcing the size policy per file
type DeliveryRouter struct {
	transport domain.Transport
	maxBytes  int64
	logger    *zap.Logger
}

// NewDeliveryRouter creates a router with the given per-file send ceiling
func NewDeliveryRouter(transport domain.Transport, maxBytes int64, log *zap.Logger) *DeliveryRouter {
	return &DeliveryRouter{
		transport: transport,
		maxBytes:  maxBytes,
		logger:    log,
	}
}

// Deliver sends each file in the result, skipping oversized ones with
// a notice and continuing past per-file failures
func (d *DeliveryRouter) Deliver(ctx context.Context, chatID int64, info *domain.MediaInfo, result *DownloadResult) DeliveryReport {
	var report DeliveryReport

	for _, file := range result.Files {
		if file.Size > d.maxBytes {
			report.Skipped++
			notice := fmt.Sprintf(
				"File too large (%.1fMB). The send limit is %dMB. Try selecting a lower quality format.",
				float64(file.Size)/(1024*1024), d.maxBytes/(1024*1024))
			if err := d.transport.SendText(ctx, chatID, notice); err != nil {
				d.logger.Warn("Failed to send size notice", zap.Error(err))
			}
			continue
		}

		if err := d.send(ctx, chatID, info, file); err != nil {
			report.Failed++
			d.logger.Error("Failed to send file",
				zap.String("path", file.Path),
				zap.String("kind", string(file.Kind)),
				zap.Error(err))
			continue
		}
		report.Sent++
	}

	return report
}

func (d *DeliveryRouter) send(ctx context.Context, chatID int64, info *domain.MediaInfo, file MediaFile) error {
	caption := filepath.Base(file.Path)

	if file.Kind == domain.KindAudio {
		title := "Downloaded Audio"
		performer := "Unknown"
		if info != nil {
			if info.Title != "" {
				title = truncate(info.Title, 64)
			}
			if info.Uploader != "" {
				performer = truncate(info.Uploader, 64)
			}
		}
		return d.transport.SendAudio(ctx, chatID, file.Path, domain.AudioMeta{
			Caption:   caption,
			Title:     title,
			Performer: performer,
		})
	}

	return d.transport.SendVideo(ctx, chatID, file.Path, domain.VideoMeta{
		Caption:           caption,
		SupportsStreaming: true,
	})
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/yourusername/media-fetch-go/internal/catalog"
	"github.com/yourusername/media-fetch-go/internal/domain"
	"github.com/yourusername/media-fetch-go/internal/infrastructure"
	"github.com/yourusername/media-fetch-go/internal/selection"
	"github.com/yourusername/media-fetch-go/internal/session"
)

// URL substrings associated with disallowed content categories
var urlDenylist = []string{"porn", "xxx", "adult"}

const (
	welcomeText = "Hello! Send me a media link and I'll show the available formats.\n\n" +
		"Commands:\n/start - show this message\n/help - usage guide\n/cancel - cancel the current operation"

	helpText = "1. Send a URL of a video or audio page.\n" +
		"2. Pick a format from the buttons.\n" +
		"3. I'll download it and send the file back.\n\n" +
		"Files above the send limit are skipped; pick a lower quality in that case. " +
		"Some videos are private, members-only or age-restricted and cannot be fetched."
)

// Pipeline orchestrates the format resolution and delivery flow in
// response to inbound text and selection events
type Pipeline struct {
	engine    domain.Engine
	transport domain.Transport
	sessions  *session.Store
	executor  *Executor
	delivery  *DeliveryRouter
	logger    *zap.Logger
}

// NewPipeline creates the pipeline controller
func NewPipeline(
	engine domain.Engine,
	transport domain.Transport,
	sessions *session.Store,
	executor *Executor,
	delivery *DeliveryRouter,
	logger *zap.Logger,
) *Pipeline {
	return &Pipeline{
		engine:    engine,
		transport: transport,
		sessions:  sessions,
		executor:  executor,
		delivery:  delivery,
		logger:    logger,
	}
}

// HandleText processes an inbound text message: commands are handled
// directly, anything else goes through URL validation and resolution.
// Anticipated failures are reported to the user here; only unexpected
// faults propagate to the caller's fallback handler.
func (p *Pipeline) HandleText(ctx context.Context, userID, chatID int64, text string) error {
	text = strings.TrimSpace(text)
	if strings.HasPrefix(text, "/") {
		p.handleCommand(ctx, userID, chatID, text)
		return nil
	}

	if verr := validateURL(text); verr != nil {
		p.say(ctx, chatID, verr.Reason)
		return nil
	}

	p.say(ctx, chatID, "Extracting media information...")

	info, err := p.engine.Resolve(ctx, text)
	if err != nil {
		p.logger.Warn("Resolution failed",
			zap.Int64("user_id", userID),
			zap.String("url", text),
			zap.String("kind", string(infrastructure.ClassifyFailure(err))),
			zap.Error(err))
		p.say(ctx, chatID, infrastructure.FailureMessage(err))
		return nil
	}

	sess := domain.NewSession(userID, chatID, info.WebpageURL, info)
	built := catalog.Build(info.Formats)

	if built.Empty() {
		sess.AudioOnly = true
		p.sessions.Put(userID, sess)
		return p.presentPresets(ctx, chatID, info)
	}

	sess.Catalog = &built
	p.sessions.Put(userID, sess)
	return p.presentCatalog(ctx, chatID, info, built)
}

// HandleSelection processes a button press token. The session is
// consumed on every exit path past the expiry check.
func (p *Pipeline) HandleSelection(ctx context.Context, userID, chatID int64, token string) error {
	sel, err := selection.Decode(token)
	if err != nil {
		// Only this encoder produces tokens; an unknown one is a
		// contract violation and fails loudly.
		return fmt.Errorf("selection for user %d: %w", userID, err)
	}

	if sel.Kind == domain.SelectCancel {
		p.sessions.Remove(userID)
		p.say(ctx, chatID, "Operation cancelled.")
		return nil
	}

	sess, ok := p.sessions.Take(userID)
	if !ok {
		p.say(ctx, chatID, "Session expired. Please send the URL again.")
		return nil
	}

	directive, err := sel.Directive()
	if err != nil {
		return err
	}

	p.say(ctx, chatID, "Downloading... This may take a while.")

	result, err := p.executor.Execute(ctx, sess.URL, directive)
	if err != nil {
		p.logger.Warn("Download failed",
			zap.Int64("user_id", userID),
			zap.String("url", sess.URL),
			zap.Error(err))
		if errors.Is(err, domain.ErrNoFileProduced) {
			p.say(ctx, chatID, "No file was downloaded.")
		} else {
			p.say(ctx, chatID, "Download failed: "+infrastructure.Truncate(err.Error(), 200))
		}
		return nil
	}
	defer result.Cleanup()

	report := p.delivery.Deliver(ctx, chatID, sess.Info, result)
	p.say(ctx, chatID, terminalStatus(report, len(result.Files)))
	return nil
}

func (p *Pipeline) handleCommand(ctx context.Context, userID, chatID int64, command string) {
	switch strings.SplitN(command, "@", 2)[0] {
	case "/start":
		p.say(ctx, chatID, welcomeText)
	case "/help":
		p.say(ctx, chatID, helpText)
	case "/cancel":
		p.sessions.Remove(userID)
		p.say(ctx, chatID, "Operation cancelled.")
	}
}

func (p *Pipeline) presentCatalog(ctx context.Context, chatID int64, info *domain.MediaInfo, built domain.Catalog) error {
	var groups []domain.ButtonGroup
	if len(built.Video) > 0 {
		groups = append(groups, domain.ButtonGroup{
			Heading: "Video Formats",
			Buttons: entryButtons(built.Video),
		})
	}
	if len(built.Audio) > 0 {
		groups = append(groups, domain.ButtonGroup{
			Heading: "Audio Only",
			Buttons: entryButtons(built.Audio),
		})
	}
	groups = append(groups, cancelGroup())

	text := fmt.Sprintf("%s\nDuration: %s\n\nSelect a format:",
		truncate(info.Title, 100), info.DurationString())
	return p.transport.SendChoices(ctx, chatID, text, groups)
}

func (p *Pipeline) presentPresets(ctx context.Context, chatID int64, info *domain.MediaInfo) error {
	var buttons []domain.Button
	for _, preset := range domain.AudioPresets() {
		buttons = append(buttons, domain.Button{
			Label: preset.Label(),
			Token: selection.EncodePreset(preset),
		})
	}
	groups := []domain.ButtonGroup{
		{Buttons: buttons},
		cancelGroup(),
	}

	title := info.Title
	if title == "" {
		title = "Audio Content"
	}
	text := fmt.Sprintf("%s\n\nSelect audio format:", truncate(title, 100))
	return p.transport.SendChoices(ctx, chatID, text, groups)
}

func entryButtons(entries []domain.CatalogEntry) []domain.Button {
	buttons := make([]domain.Button, 0, len(entries))
	for _, entry := range entries {
		buttons = append(buttons, domain.Button{
			Label: entry.Label(),
			Token: selection.EncodeEntry(entry),
		})
	}
	return buttons
}

func cancelGroup() domain.ButtonGroup {
	return domain.ButtonGroup{
		Buttons: []domain.Button{{Label: "Cancel", Token: selection.TokenCancel}},
	}
}

func terminalStatus(report DeliveryReport, total int) string {
	switch {
	case report.Complete(total):
		return "Download complete!"
	case report.Sent > 0:
		return fmt.Sprintf("Download finished: %d of %d files delivered.", report.Sent, total)
	default:
		return "Download finished, but no file could be delivered."
	}
}

// say reports to the user; send failures are logged, not propagated
func (p *Pipeline) say(ctx context.Context, chatID int64, text string) {
	if err := p.transport.SendText(ctx, chatID, text); err != nil {
		p.logger.Warn("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err))
	}
}

// validateURL rejects malformed or disallowed URLs before any state
// change or network call
func validateURL(url string) *domain.ValidationError {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return &domain.ValidationError{Reason: "Please send a valid URL starting with http:// or https://"}
	}
	lower := strings.ToLower(url)
	for _, blocked := range urlDenylist {
		if strings.Contains(lower, blocked) {
			return &domain.ValidationError{Reason: "This content is not supported."}
		}
	}
	return nil
}

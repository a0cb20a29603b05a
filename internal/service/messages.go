package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gagliardetto/solana-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jask/soldash/internal/config"
	"github.com/jask/soldash/internal/database/repository"
	"github.com/jask/soldash/internal/wallet"
)

// DefaultMaxMessageLength caps a post in runes.
const DefaultMaxMessageLength = 280

var ErrMessageTooLong = errors.New("message too long")

// MessagePost is one entry on the board.
type MessagePost struct {
	ID        string
	Author    string
	Content   string
	CreatedAt time.Time
}

// Poster submits a post. It is the one place a real backend would plug in.
type Poster interface {
	Post(ctx context.Context, author solana.PublicKey, content string) error
}

// SimulatedPoster waits Delay and writes nothing anywhere.
type SimulatedPoster struct {
	Delay time.Duration
}

func (p SimulatedPoster) Post(ctx context.Context, _ solana.PublicKey, _ string) error {
	if p.Delay <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(p.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// MessageBoard keeps the session's posts, newest first.
type MessageBoard struct {
	Messages     *repository.MessageRepo
	Poster       Poster
	MaxLength    int
	AuthorPrefix int
	AuthorSuffix string
	Logger       *logrus.Logger
}

// NewMessageBoard wires a board from config.
func NewMessageBoard(repo *repository.MessageRepo, poster Poster, cfg config.BoardConfig, logger *logrus.Logger) *MessageBoard {
	return &MessageBoard{
		Messages:     repo,
		Poster:       poster,
		MaxLength:    cfg.MaxLength,
		AuthorPrefix: cfg.AuthorPrefix,
		AuthorSuffix: cfg.AuthorSuffix,
		Logger:       logger,
	}
}

// Seed loads the initial posts. seeds are listed in display order, so the
// first seed ends up on top.
func (b *MessageBoard) Seed(ctx context.Context, seeds []config.SeedPost, now time.Time) error {
	rows := make([]repository.Message, 0, len(seeds))
	for i := len(seeds) - 1; i >= 0; i-- {
		s := seeds[i]
		rows = append(rows, repository.Message{
			ID:        uuid.NewString(),
			Author:    s.Author,
			Content:   s.Content,
			CreatedAt: now.Add(-s.Age),
		})
	}
	if err := b.Messages.InsertMany(ctx, rows); err != nil {
		return fmt.Errorf("seed messages: %w", err)
	}
	return nil
}

// List returns every post, newest first.
func (b *MessageBoard) List(ctx context.Context) ([]MessagePost, error) {
	rows, err := b.Messages.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	out := make([]MessagePost, 0, len(rows))
	for _, r := range rows {
		out = append(out, MessagePost(r))
	}
	return out, nil
}

func (b *MessageBoard) maxLength() int {
	if b.MaxLength <= 0 {
		return DefaultMaxMessageLength
	}
	return b.MaxLength
}

// Validate reports whether text may be posted.
func (b *MessageBoard) Validate(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrIncomplete
	}
	if n := utf8.RuneCountInString(text); n > b.maxLength() {
		return fmt.Errorf("%w: %d/%d characters", ErrMessageTooLong, n, b.maxLength())
	}
	return nil
}

// Post submits text through the Poster and prepends the new post.
func (b *MessageBoard) Post(ctx context.Context, author solana.PublicKey, text string, now time.Time) (MessagePost, error) {
	if author.IsZero() {
		return MessagePost{}, ErrNotConnected
	}
	if err := b.Validate(text); err != nil {
		return MessagePost{}, err
	}
	if err := b.Poster.Post(ctx, author, text); err != nil {
		b.logger().WithError(err).WithField("owner", author.String()).Warn("post failed")
		return MessagePost{}, fmt.Errorf("post message: %w", err)
	}
	post := MessagePost{
		ID:        uuid.NewString(),
		Author:    wallet.ShortIdentity(author, b.AuthorPrefix, b.AuthorSuffix),
		Content:   text,
		CreatedAt: now,
	}
	if err := b.Messages.Insert(ctx, repository.Message(post)); err != nil {
		return MessagePost{}, fmt.Errorf("store message: %w", err)
	}
	b.logger().WithFields(logrus.Fields{"owner": author.String(), "id": post.ID}).Info("message posted")
	return post, nil
}

func (b *MessageBoard) logger() *logrus.Logger {
	if b.Logger == nil {
		return logrus.StandardLogger()
	}
	return b.Logger
}

package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/require"

	"github.com/jask/soldash/internal/config"
	"github.com/jask/soldash/internal/database"
	"github.com/jask/soldash/internal/database/repository"
)

type posterFunc func(ctx context.Context, author solana.PublicKey, content string) error

func (f posterFunc) Post(ctx context.Context, author solana.PublicKey, content string) error {
	return f(ctx, author, content)
}

func setupBoard(t *testing.T, poster Poster) *MessageBoard {
	t.Helper()
	db, err := database.OpenSessionStore()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	logger, _ := newLogger()
	return NewMessageBoard(repository.NewMessageRepo(db), poster, config.BoardConfig{
		MaxLength:    280,
		AuthorPrefix: 8,
		AuthorSuffix: "...",
	}, logger)
}

func TestSeedKeepsDisplayOrder(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t, SimulatedPoster{})
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, board.Seed(ctx, []config.SeedPost{
		{Author: "DemoUser1", Content: "one", Age: time.Hour},
		{Author: "DemoUser2", Content: "two", Age: 30 * time.Minute},
		{Author: "DemoUser3", Content: "three", Age: 15 * time.Minute},
	}, now))

	posts, err := board.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	require.Equal(t, "DemoUser1", posts[0].Author)
	require.Equal(t, "DemoUser3", posts[2].Author)
	require.True(t, posts[0].CreatedAt.Equal(now.Add(-time.Hour)))
}

func TestPostPrependsOneEntry(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t, SimulatedPoster{Delay: time.Millisecond})
	require.NoError(t, board.Seed(ctx, []config.SeedPost{{Author: "DemoUser1", Content: "hello"}}, time.Now()))
	author := randomKey()
	now := time.Now()

	post, err := board.Post(ctx, author, "gm from the terminal", now)
	require.NoError(t, err)
	require.Equal(t, author.String()[:8]+"...", post.Author)
	require.NotEmpty(t, post.ID)

	posts, err := board.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, post.ID, posts[0].ID)
	require.Equal(t, "gm from the terminal", posts[0].Content)
	require.Equal(t, "DemoUser1", posts[1].Author)
}

func TestPostLengthBoundary(t *testing.T) {
	ctx := context.Background()
	board := setupBoard(t, SimulatedPoster{})
	author := randomKey()

	_, err := board.Post(ctx, author, strings.Repeat("é", 280), time.Now())
	require.NoError(t, err)

	_, err = board.Post(ctx, author, strings.Repeat("a", 281), time.Now())
	require.ErrorIs(t, err, ErrMessageTooLong)

	posts, err := board.List(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 1)
}

func TestPostDeclinesIncomplete(t *testing.T) {
	ctx := context.Background()
	called := false
	board := setupBoard(t, posterFunc(func(context.Context, solana.PublicKey, string) error {
		called = true
		return nil
	}))

	_, err := board.Post(ctx, randomKey(), "   \n ", time.Now())
	require.ErrorIs(t, err, ErrIncomplete)
	_, err = board.Post(ctx, solana.PublicKey{}, "hello", time.Now())
	require.ErrorIs(t, err, ErrNotConnected)
	require.False(t, called)
}

func TestPostFailureLeavesBoardUnchanged(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("program error")
	board := setupBoard(t, posterFunc(func(context.Context, solana.PublicKey, string) error { return boom }))

	_, err := board.Post(ctx, randomKey(), "hello", time.Now())
	require.ErrorIs(t, err, boom)
	n, err := board.Messages.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestSimulatedPosterHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := SimulatedPoster{Delay: time.Hour}.Post(ctx, randomKey(), "x")
	require.ErrorIs(t, err, context.Canceled)
}

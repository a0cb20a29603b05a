package app

import (
	"strings"
	"testing"
	"time"

	"github.com/jask/soldash/core"
	"github.com/jask/soldash/internal/config"
)

func TestComposePostPrependsOneEntry(t *testing.T) {
	f := newFixture(t, &fakeLedger{})
	f.connect(t)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.deps.Now = func() time.Time { return now }
	if err := f.deps.Board.Seed(f.deps.context(), []config.SeedPost{{Author: "DemoUser1", Content: "Welcome", Age: time.Hour}}, now); err != nil {
		t.Fatalf("seed: %v", err)
	}
	compose := NewComposePane(spec("compose", core.ScopeCompose, 'c', true), f.deps)
	board := NewBoardPane(spec("board", core.ScopeBoard, 'b', true), f.deps)
	deliver(board, drain(board.Init()))
	if len(board.Posts()) != 1 {
		t.Fatalf("expected seeded post, got %d", len(board.Posts()))
	}

	compose.SetText("gm devnet")
	cmd := compose.Update(core.ActionMsg{Action: "post"})
	if cmd == nil || !compose.InFlight() {
		t.Fatalf("post should start")
	}
	results := drain(cmd)
	out := deliver(compose, results)
	deliver(board, results)

	if compose.InFlight() || compose.Text() != "" {
		t.Fatalf("success should clear the draft and the in-flight flag")
	}
	if status := statusMessages(out); len(status) != 1 || status[0].Text != "Message posted" {
		t.Fatalf("unexpected notification %#v", status)
	}
	posts := board.Posts()
	if len(posts) != 2 {
		t.Fatalf("expected exactly one new post, got %d", len(posts))
	}
	want := f.owner.String()[:8] + "..."
	if posts[0].Author != want || posts[0].Content != "gm devnet" || !posts[0].CreatedAt.Equal(now) {
		t.Fatalf("unexpected newest post %#v", posts[0])
	}
	if posts[1].Author != "DemoUser1" {
		t.Fatalf("seed should move down, got %#v", posts[1])
	}
}

func TestComposeFailureKeepsDraft(t *testing.T) {
	f := newFixture(t, &fakeLedger{})
	f.connect(t)
	f.deps.Board = newBoard(t, failingPoster{err: errRPC}, f.deps.Config.Board, f.deps.logger())
	compose := NewComposePane(spec("compose", core.ScopeCompose, 'c', true), f.deps)
	board := NewBoardPane(spec("board", core.ScopeBoard, 'b', true), f.deps)
	deliver(board, drain(board.Init()))

	compose.SetText("hello")
	cmd := compose.Update(core.ActionMsg{Action: "post"})
	if cmd == nil || !compose.InFlight() {
		t.Fatalf("post should start")
	}
	results := drain(cmd)
	out := deliver(compose, results)
	deliver(board, results)

	if compose.InFlight() {
		t.Fatalf("in-flight flag should clear on failure")
	}
	if compose.Text() != "hello" {
		t.Fatalf("draft should survive a failure, got %q", compose.Text())
	}
	status := statusMessages(out)
	if len(status) != 1 || !status[0].IsErr || !strings.Contains(status[0].Text, errRPC.Error()) {
		t.Fatalf("unexpected notification %#v", status)
	}
	if len(board.Posts()) != 0 {
		t.Fatalf("a failed post must not reach the board, got %d", len(board.Posts()))
	}
}

func TestComposeCapsLength(t *testing.T) {
	f := newFixture(t, &fakeLedger{})
	f.connect(t)
	compose := NewComposePane(spec("compose", core.ScopeCompose, 'c', true), f.deps)

	compose.SetText(strings.Repeat("a", 281))
	if n := len([]rune(compose.Text())); n != 280 {
		t.Fatalf("draft should stop at 280 characters, got %d", n)
	}
	if cmd := compose.Update(core.ActionMsg{Action: "post"}); cmd == nil || !compose.InFlight() {
		t.Fatalf("exactly 280 characters should post")
	}
}

func TestComposeIgnoresBlankText(t *testing.T) {
	f := newFixture(t, &fakeLedger{})
	f.connect(t)
	compose := NewComposePane(spec("compose", core.ScopeCompose, 'c', true), f.deps)
	compose.SetText("   ")
	if cmd := compose.Update(core.ActionMsg{Action: "post"}); cmd != nil || compose.InFlight() {
		t.Fatalf("blank text should decline silently")
	}
}

func TestBoardScrollStaysInRange(t *testing.T) {
	f := newFixture(t, &fakeLedger{})
	board := NewBoardPane(spec("board", core.ScopeBoard, 'b', true), f.deps)
	deliver(board, drain(board.Init()))

	board.Update(core.ActionMsg{Action: "scroll-up"})
	board.Update(core.ActionMsg{Action: "scroll-down"})
	if board.offset != 0 {
		t.Fatalf("empty board should not scroll, offset %d", board.offset)
	}
}

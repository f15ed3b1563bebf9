package buildstore

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.fpgaboards.dev/boards/logging"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "history", "builds.db"), logging.NewTestLogger(t))
	test.That(t, err, test.ShouldBeNil)
	t.Cleanup(func() { test.That(t, s.Close(), test.ShouldBeNil) })
	return s
}

func TestRecordFinishGet(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return start }

	b, err := s.Record(ctx, Build{Board: "digilent_arty", Variant: "a7-35", Toolchain: "vivado", SysClkFreq: 100e6, OutputDir: "/tmp/arty"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, b.ID, test.ShouldNotBeEmpty)
	test.That(t, b.Status, test.ShouldEqual, StatusRunning)

	got, err := s.Get(ctx, b.ID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got, test.ShouldResemble, b)

	s.now = func() time.Time { return start.Add(time.Minute) }
	test.That(t, s.Finish(ctx, b.ID, errors.New("vivado exited with status 1")), test.ShouldBeNil)
	got, err = s.Get(ctx, b.ID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Status, test.ShouldEqual, StatusFailed)
	test.That(t, got.Error, test.ShouldEqual, "vivado exited with status 1")
	test.That(t, got.FinishedAt, test.ShouldEqual, start.Add(time.Minute))
}

func TestGetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	test.That(t, errors.Is(err, ErrNotFound), test.ShouldBeTrue)
	err = s.Finish(context.Background(), "nope", nil)
	test.That(t, errors.Is(err, ErrNotFound), test.ShouldBeTrue)
}

func TestRecordRequiresBoard(t *testing.T) {
	s := openTestStore(t)
	_, err := s.Record(context.Background(), Build{})
	test.That(t, err, test.ShouldNotBeNil)
}

func TestList(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t)
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, board := range []string{"digilent_arty", "radiona_ulx3s", "digilent_arty"} {
		s.now = func() time.Time { return base.Add(time.Duration(i) * time.Hour) }
		b, err := s.Record(ctx, Build{Board: board, Toolchain: "x"})
		test.That(t, err, test.ShouldBeNil)
		test.That(t, s.Finish(ctx, b.ID, nil), test.ShouldBeNil)
	}

	all, err := s.List(ctx, Filter{})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, all, test.ShouldHaveLength, 3)
	test.That(t, all[0].StartedAt, test.ShouldEqual, base.Add(2*time.Hour))
	test.That(t, all[0].Status, test.ShouldEqual, StatusSucceeded)

	arty, err := s.List(ctx, Filter{Board: "digilent_arty", Limit: 1})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, arty, test.ShouldHaveLength, 1)
	test.That(t, arty[0].Board, test.ShouldEqual, "digilent_arty")
	test.That(t, arty[0].StartedAt, test.ShouldEqual, base.Add(2*time.Hour))
}

func TestReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "builds.db")
	logger := logging.NewTestLogger(t)
	s, err := Open(ctx, path, logger)
	test.That(t, err, test.ShouldBeNil)
	b, err := s.Record(ctx, Build{Board: "kosagi_fomu", Toolchain: "icestorm"})
	test.That(t, err, test.ShouldBeNil)
	test.That(t, s.Close(), test.ShouldBeNil)

	s, err = Open(ctx, path, logger)
	test.That(t, err, test.ShouldBeNil)
	defer s.Close()
	got, err := s.Get(ctx, b.ID)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, got.Board, test.ShouldEqual, "kosagi_fomu")
}

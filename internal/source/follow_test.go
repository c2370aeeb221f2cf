package source

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestJSONLinesUnterminatedLastLine(t *testing.T) {
	src := NewJSONLines(strings.NewReader(`{"touch-sensors":[1,2,3,4,5,6,7,8]}`), newTestTracker())
	b, err := src.Read(context.Background())
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if len(b.Raw) != 8 {
		t.Errorf("expected final line to be parsed, got %v", b.Raw)
	}
	if _, err := src.Read(context.Background()); !errors.Is(err, io.EOF) {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestFollowJSONLines(t *testing.T) {
	defer goleak.VerifyNone(t)

	path := filepath.Join(t.TempDir(), "touch.jsonl")
	if err := os.WriteFile(path, []byte(`{"touch-sensors":[1,1,1,1,1,1,1,1]}`+"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	src, err := Open(Options{Kind: "jsonl", Path: path, Window: 10, Follow: true})
	if err != nil {
		t.Fatalf("open failed: %v", err)
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := src.Read(ctx); err != nil {
		t.Fatalf("first read failed: %v", err)
	}

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		defer f.Close()
		_, _ = f.WriteString(`{"touch-sensors":[2,2,2,2,2,2,2,2]}` + "\n")
	}()

	b, err := src.Read(ctx)
	if err != nil {
		t.Fatalf("followed read failed: %v", err)
	}
	if b.Raw[0] != 2 {
		t.Errorf("expected appended line, got %v", b.Raw)
	}

	short, cancelShort := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancelShort()
	if _, err := src.Read(short); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline while waiting, got %v", err)
	}
}

func TestFollowMissingFile(t *testing.T) {
	inner := NewJSONLines(strings.NewReader(""), newTestTracker())
	if _, err := NewFollow(inner, filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error watching a missing file")
	}
}

func TestPumpNoLeak(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	store := NewStore()
	done := make(chan error, 1)
	go func() {
		done <- Pump(ctx, NewSynthetic(time.Millisecond, 7, newTestTracker(), nil), store, zaptest.NewLogger(t))
	}()

	deadline := time.After(2 * time.Second)
	for {
		if _, seq := store.Load(); seq >= 3 {
			break
		}
		select {
		case <-deadline:
			t.Fatal("pump made no progress")
		case <-time.After(time.Millisecond):
		}
	}
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

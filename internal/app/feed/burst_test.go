package feed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"livefeed/internal/pkg/randx"
)

func drain(t *testing.T, q *Queue) []Update {
	t.Helper()

	var out []Update
	for q.Len() > 0 {
		u, err := q.Pop(context.Background())
		if err != nil {
			t.Fatalf("Pop error: %v", err)
		}
		out = append(out, u)
	}
	return out
}

func TestBurst(t *testing.T) {
	t.Run("Run enqueues button, five lists, button", func(t *testing.T) {
		hp := NewHomepage("mark")
		b := NewBurst(time.Millisecond)

		if err := b.Run(context.Background(), hp); err != nil {
			t.Fatalf("Run error: %v", err)
		}

		updates := drain(t, hp.Queue())
		if len(updates) != BurstSize+2 {
			t.Fatalf("expected %d updates, got %d", BurstSize+2, len(updates))
		}

		first := updates[0].HTML["btn_mark"]
		if !strings.Contains(first, " disabled>") {
			t.Errorf("first update should disable the button, got %q", first)
		}

		last := updates[len(updates)-1].HTML["btn_mark"]
		if last == "" || strings.Contains(last, "disabled") {
			t.Errorf("last update should enable the button, got %q", last)
		}

		for i, u := range updates[1 : BurstSize+1] {
			list, ok := u.HTML["ol_mark"]
			if !ok {
				t.Fatalf("update %d is not a list update: %v", i+1, u)
			}
			if n := strings.Count(list, "<li>"); n != i+1 {
				t.Errorf("update %d: expected %d items, got %d", i+1, i+1, n)
			}
		}

		posts := hp.Posts()
		if len(posts) != BurstSize {
			t.Fatalf("expected %d posts, got %d", BurstSize, len(posts))
		}
		for _, p := range posts {
			if len(p) != randx.GeneratedPostLength || !randx.IsAlphanumeric(p) {
				t.Errorf("generated post %q is not 10 alphanumeric characters", p)
			}
		}

		if hp.ButtonToggled() {
			t.Error("button should be re-enabled after the burst")
		}
	})

	t.Run("Run waits one interval per post", func(t *testing.T) {
		hp := NewHomepage("mark")
		b := NewBurst(5 * time.Millisecond)

		start := time.Now()
		b.Run(context.Background(), hp)

		if elapsed := time.Since(start); elapsed < BurstSize*5*time.Millisecond {
			t.Errorf("burst finished too early: %v", elapsed)
		}
	})

	t.Run("overlapping bursts open disabled and close enabled", func(t *testing.T) {
		hp := NewHomepage("mark")

		secondStarted := make(chan struct{})
		var once sync.Once

		first := Burst{NewPost: func() (string, error) {
			<-secondStarted
			return "first", nil
		}}
		second := Burst{NewPost: func() (string, error) {
			once.Do(func() { close(secondStarted) })
			return "second", nil
		}}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			first.Run(context.Background(), hp)
		}()

		deadline := time.Now().Add(time.Second)
		for hp.Queue().Len() == 0 {
			if time.Now().After(deadline) {
				t.Fatal("first burst never queued its opening update")
			}
			time.Sleep(time.Millisecond)
		}

		go func() {
			defer wg.Done()
			second.Run(context.Background(), hp)
		}()
		wg.Wait()

		var buttons []bool
		for _, u := range drain(t, hp.Queue()) {
			if fragment, ok := u.HTML["btn_mark"]; ok {
				buttons = append(buttons, strings.Contains(fragment, " disabled>"))
			}
		}

		want := []bool{true, true, false, false}
		if len(buttons) != len(want) {
			t.Fatalf("expected %d button updates, got %v", len(want), buttons)
		}
		for i := range want {
			if buttons[i] != want[i] {
				t.Errorf("button update %d: disabled=%v, want %v (all: %v)", i, buttons[i], want[i], buttons)
			}
		}

		if len(hp.Posts()) != 2*BurstSize {
			t.Errorf("expected %d posts, got %d", 2*BurstSize, len(hp.Posts()))
		}
		if hp.ButtonToggled() {
			t.Error("flag should be back to enabled after both bursts")
		}
	})

	t.Run("cancelled context still re-enables the button", func(t *testing.T) {
		hp := NewHomepage("mark")
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := NewBurst(time.Hour).Run(ctx, hp)
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}

		updates := drain(t, hp.Queue())
		if len(updates) != 3 {
			t.Fatalf("expected button, one list, button; got %d updates", len(updates))
		}
		if hp.ButtonToggled() {
			t.Error("button left disabled")
		}
	})

	t.Run("generator failure stops the burst", func(t *testing.T) {
		hp := NewHomepage("mark")
		boom := errors.New("boom")
		b := Burst{NewPost: func() (string, error) { return "", boom }}

		if err := b.Run(context.Background(), hp); !errors.Is(err, boom) {
			t.Errorf("expected generator error, got %v", err)
		}
		if n := len(drain(t, hp.Queue())); n != 2 {
			t.Errorf("expected only the two button updates, got %d", n)
		}
	})

	t.Run("Run on a removed homepage fails", func(t *testing.T) {
		hp := NewHomepage("mark")
		hp.Queue().Close()

		if err := NewBurst(0).Run(context.Background(), hp); !errors.Is(err, ErrQueueClosed) {
			t.Errorf("expected ErrQueueClosed, got %v", err)
		}
	})
}

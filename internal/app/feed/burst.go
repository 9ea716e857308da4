package feed

import (
	"context"
	"fmt"
	"time"

	"livefeed/internal/pkg/randx"
)

// BurstSize is the number of posts a generate burst appends.
const BurstSize = 5

// Burst appends generated posts to a homepage one at a time, streaming the refreshed
// list after each, with the generate button disabled for the duration.
type Burst struct {
	// Interval is the pause after each generated post.
	Interval time.Duration

	// NewPost produces the content of a generated post.
	// Defaults to randx.GeneratedPost.
	NewPost func() (string, error)
}

// NewBurst returns a Burst pausing interval between posts.
func NewBurst(interval time.Duration) Burst {
	return Burst{Interval: interval, NewPost: randx.GeneratedPost}
}

// Run executes the burst on hp and enqueues BurstSize+2 updates in order: the disabled
// button, one list refresh per post, then the re-enabled button. The button fragments
// are fixed; the homepage flag is flipped alongside them but never decides which
// fragment is sent, so overlapping bursts still open with a disable and close with an
// enable.
//
// Callers that must not abort on client disconnect pass a context detached from the
// request. If ctx ends during a pause, or a post cannot be generated, the remaining
// posts are skipped but the button is still re-enabled.
func (b Burst) Run(ctx context.Context, hp *Homepage) error {
	newPost := b.NewPost
	if newPost == nil {
		newPost = randx.GeneratedPost
	}

	hp.ToggleButton()
	if err := hp.Enqueue(ButtonUpdate(hp.Username, true)); err != nil {
		return err
	}

	runErr := b.generate(ctx, hp, newPost)

	hp.ToggleButton()
	if err := hp.Enqueue(ButtonUpdate(hp.Username, false)); err != nil && runErr == nil {
		runErr = err
	}

	return runErr
}

func (b Burst) generate(ctx context.Context, hp *Homepage, newPost func() (string, error)) error {
	for range BurstSize {
		post, err := newPost()
		if err != nil {
			return fmt.Errorf("failed to generate post: %w", err)
		}

		posts := hp.AddPost(post)
		if err := hp.Enqueue(PostListUpdate(hp.Username, posts)); err != nil {
			return err
		}

		if err := sleep(ctx, b.Interval); err != nil {
			return err
		}
	}
	return nil
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

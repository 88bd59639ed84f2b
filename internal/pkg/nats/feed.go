package nats

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nats-io/nats.go"
)

// ErrFeedClosed is returned by Next when the feed was closed while waiting
var ErrFeedClosed = errors.New("feed closed")

// Feed is a lazy, restartable subscription to one subject. The subscription
// is opened by the first Next call, released by Close, and reopened by a
// later Next.
type Feed struct {
	conn    *nats.Conn
	subject string

	mu     sync.Mutex
	sub    *nats.Subscription
	closed chan struct{}
}

// NewFeed creates a feed without subscribing
func NewFeed(conn *nats.Conn, subject string) *Feed {
	return &Feed{conn: conn, subject: subject}
}

// Subject returns the subject of the feed
func (f *Feed) Subject() string {
	return f.subject
}

// Active reports whether the feed currently holds a subscription
func (f *Feed) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sub != nil
}

func (f *Feed) ensure() (*nats.Subscription, chan struct{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sub != nil {
		return f.sub, f.closed, nil
	}
	sub, err := f.conn.SubscribeSync(f.subject)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to subscribe to %s: %w", f.subject, err)
	}
	f.sub = sub
	f.closed = make(chan struct{})
	return f.sub, f.closed, nil
}

// Next blocks until the next message, ctx is done, or the feed is closed
func (f *Feed) Next(ctx context.Context) ([]byte, error) {
	sub, closed, err := f.ensure()
	if err != nil {
		return nil, err
	}

	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-closed:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	msg, err := sub.NextMsgWithContext(waitCtx)
	if err != nil {
		select {
		case <-closed:
			return nil, ErrFeedClosed
		default:
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, nats.ErrBadSubscription) || errors.Is(err, nats.ErrConnectionClosed) {
			return nil, ErrFeedClosed
		}
		return nil, err
	}
	return msg.Data, nil
}

// Close unsubscribes. It is safe to call more than once.
func (f *Feed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.sub == nil {
		return nil
	}
	close(f.closed)
	err := f.sub.Unsubscribe()
	f.sub = nil
	if err != nil && !errors.Is(err, nats.ErrConnectionClosed) && !errors.Is(err, nats.ErrBadSubscription) {
		return err
	}
	return nil
}

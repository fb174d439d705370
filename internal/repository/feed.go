package repository

import (
	"context"
	"sync"
)

const feedBuffer = 64

// ChangeFeed carries "collection changed" notifications between writers and
// the remote backend's listener. Payloads are collection topics.
type ChangeFeed interface {
	Publish(ctx context.Context, topic string) error
	// Listen returns a channel of topics that is closed when ctx is done or the feed closes.
	Listen(ctx context.Context) (<-chan string, error)
	Close() error
}

// LocalFeed broadcasts changes inside a single process.
type LocalFeed struct {
	mu        sync.Mutex
	listeners map[*localListener]struct{}
	stop      chan struct{}
	closed    bool
}

type localListener struct {
	in   chan string
	done <-chan struct{}
}

func NewLocalFeed() *LocalFeed {
	return &LocalFeed{
		listeners: make(map[*localListener]struct{}),
		stop:      make(chan struct{}),
	}
}

func (f *LocalFeed) Publish(ctx context.Context, topic string) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrBackendClosed
	}
	listeners := make([]*localListener, 0, len(f.listeners))
	for l := range f.listeners {
		listeners = append(listeners, l)
	}
	f.mu.Unlock()

	for _, l := range listeners {
		select {
		case l.in <- topic:
		case <-l.done:
		case <-f.stop:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

func (f *LocalFeed) Listen(ctx context.Context) (<-chan string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil, ErrBackendClosed
	}

	l := &localListener{
		in:   make(chan string, feedBuffer),
		done: ctx.Done(),
	}
	f.listeners[l] = struct{}{}

	out := make(chan string)
	go func() {
		defer close(out)
		defer f.remove(l)

		for {
			select {
			case topic := <-l.in:
				select {
				case out <- topic:
				case <-ctx.Done():
					return
				case <-f.stop:
					return
				}
			case <-ctx.Done():
				return
			case <-f.stop:
				return
			}
		}
	}()

	return out, nil
}

func (f *LocalFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.closed {
		f.closed = true
		close(f.stop)
	}
	return nil
}

func (f *LocalFeed) remove(l *localListener) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.listeners, l)
}

var _ ChangeFeed = (*LocalFeed)(nil)

package clipview

import (
	"context"
	"sync"
)

// Adapter hands out request tokens so that only the newest read is shown.
// Older reads may still finish; callers drop them with Accept.
type Adapter struct {
	Reader Reader

	mu     sync.Mutex
	latest uint64
}

func NewAdapter(r Reader) *Adapter {
	return &Adapter{Reader: r}
}

type Fetched struct {
	Token    uint64
	Offset   int
	Snapshot Snapshot
	Err      error
}

// Request invalidates every earlier token.
func (a *Adapter) Request() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.latest++
	return a.latest
}

func (a *Adapter) Fetch(ctx context.Context, token uint64, offset int) Fetched {
	s, err := a.Reader.Read(ctx, offset)
	return Fetched{Token: token, Offset: offset, Snapshot: s, Err: err}
}

func (a *Adapter) Accept(token uint64) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return token == a.latest
}

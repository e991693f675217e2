// SPDX-License-Identifier: Unlicense OR MIT

package help

import (
	"context"

	gcpool "github.com/jolestar/go-commons-pool"

	"github.com/nightisyang/frankentui-sub000/cell"
)

// framePool recycles scratch *cell.Frame buffers used while rebuilding the
// cache (spec §4.8 steps 4/5), avoiding a fresh allocation on every
// structural relayout. Pool operations are synchronous; the context is
// carried only because the library's interface requires one.
type framePool struct {
	pool *gcpool.ObjectPool
	ctx  context.Context
}

func newFramePool() *framePool {
	ctx := context.Background()
	factory := gcpool.NewPooledObjectFactorySimple(
		func(context.Context) (interface{}, error) {
			return cell.NewFrame(1, 1), nil
		})
	return &framePool{pool: gcpool.NewObjectPoolWithDefaultConfig(ctx, factory), ctx: ctx}
}

// borrow returns a frame sized exactly width x height. A pooled frame is
// reused only when it already matches; otherwise a fresh one is built and
// the mismatched pooled object is returned unused.
func (p *framePool) borrow(width, height int) *cell.Frame {
	obj, err := p.pool.BorrowObject(p.ctx)
	if err != nil {
		return cell.NewFrame(width, height)
	}
	f, ok := obj.(*cell.Frame)
	if !ok || f.Width() != width || f.Height() != height {
		if ok {
			_ = p.pool.ReturnObject(p.ctx, f)
		}
		return cell.NewFrame(width, height)
	}
	return f
}

// release returns f to the pool for potential reuse by a later borrow of
// the same dimensions.
func (p *framePool) release(f *cell.Frame) {
	_ = p.pool.ReturnObject(p.ctx, f)
}

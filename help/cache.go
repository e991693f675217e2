// SPDX-License-Identifier: Unlicense OR MIT

package help

import (
	"github.com/nightisyang/frankentui-sub000/cell"
	"github.com/nightisyang/frankentui-sub000/hashutil"
)

// Cache is the reusable artifact of a previous render: a filled buffer, the
// layout skeleton that produced it, the layout key it was built under, a
// per-slot content hash (in position order), and the enabled-entry count at
// build time (spec §3.5/§4.8).
type Cache struct {
	Buffer         *cell.Frame
	Layout         Layout
	Key            uint64
	PerEntryHashes []uint64
	EnabledCount   int
}

// Counters tracks the cache's lifetime hit/miss/update instrumentation.
type Counters struct {
	Hits           uint64
	Misses         uint64
	DirtyUpdates   uint64
	LayoutRebuilds uint64
}

// RenderState is the per-widget-instance mutable state threaded through
// Render calls: an optional cache, scratch buffers reused across calls to
// avoid per-frame allocation, and the running counters.
type RenderState struct {
	Cache          *Cache
	EnabledIndices []int
	DirtyRects     []cell.Rect
	dirtyIndices   []int
	Counters       Counters

	mode Mode
	pool *framePool
}

// NewRenderState returns an empty state with no cache yet built.
func NewRenderState() *RenderState {
	return &RenderState{pool: newFramePool()}
}

// Mode reports the state's last-set display mode (SPEC_FULL.md supplemented
// feature).
func (s *RenderState) Mode() Mode { return s.mode }

// SetMode updates the display mode. It is a no-op (the cache is kept) when
// the mode has not actually changed; a genuine mode change drops the cache
// so the next render rebuilds it. Render lays out by Widget.Mode, which the
// layout key includes.
func (s *RenderState) SetMode(m Mode) {
	if s.mode == m {
		return
	}
	s.mode = m
	s.Cache = nil
}

func styleHash(d *hashutil.Digest, style cell.Style) {
	fg, bg, attr := style.Decompose()
	d.WriteUint64(uint64(fg))
	d.WriteUint64(uint64(bg))
	d.WriteUint64(uint64(attr))
}

// layoutKey computes the hash named in spec §4.8: mode, area dimensions,
// separator/ellipsis content, the three style keys, and degradation level.
// Two renders with equal keys are guaranteed to share a layout skeleton.
func layoutKey(w Widget, area cell.Rect, degradation cell.DegradationLevel) uint64 {
	d := hashutil.New()
	d.WriteByte(byte(w.Mode))
	d.WriteUint32(uint32(area.Width))
	d.WriteUint32(uint32(area.Height))
	d.WriteString(w.Separator)
	d.WriteString(w.Ellipsis)
	styleHash(d, w.Styles.Key)
	styleHash(d, w.Styles.Desc)
	styleHash(d, w.Styles.Separator)
	d.WriteByte(byte(degradation))
	return d.Sum64()
}

// entryHash mixes the fields of one entry that affect its rendered
// content: key, desc, enabled, category.
func entryHash(e Entry) uint64 {
	d := hashutil.New()
	d.WriteString(e.Key)
	d.WriteString(e.Desc)
	d.WriteBool(e.Enabled)
	d.WriteString(e.Category)
	return d.Sum64()
}

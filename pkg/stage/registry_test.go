package stage

import "testing"

func TestRegistryTapTopmostFirst(t *testing.T) {
	r := NewRegistry()
	bottom := &stubActor{w: 4, h: 4, consume: true}
	top := &stubActor{w: 4, h: 4, consume: true}
	r.Add(bottom)
	r.Add(top)

	if !r.Tap(2, 2) {
		t.Fatal("tap should be consumed")
	}
	if top.tapped != 1 || bottom.tapped != 0 {
		t.Errorf("topmost actor should win: top=%d bottom=%d", top.tapped, bottom.tapped)
	}
}

func TestRegistryTapFallsThrough(t *testing.T) {
	r := NewRegistry()
	bottom := &stubActor{w: 4, h: 4, consume: true}
	top := &stubActor{w: 4, h: 4, consume: false}
	r.Add(bottom)
	r.Add(top)

	if !r.Tap(2, 2) {
		t.Fatal("tap should fall through to the bottom actor")
	}
	if top.tapped != 1 || bottom.tapped != 1 {
		t.Errorf("both actors should be tried: top=%d bottom=%d", top.tapped, bottom.tapped)
	}
}

func TestRegistryTapSkipsDefunctAndMisses(t *testing.T) {
	r := NewRegistry()
	dead := &stubActor{w: 4, h: 4, consume: true, defunct: true}
	far := &stubActor{x: 100, y: 100, w: 1, h: 1, consume: true}
	r.Add(dead)
	r.Add(far)

	if r.Tap(2, 2) {
		t.Error("tap should miss")
	}
	if dead.tapped != 0 || far.tapped != 0 {
		t.Errorf("no actor should be tapped: dead=%d far=%d", dead.tapped, far.tapped)
	}
}

func TestRegistrySweepDisposesDefunct(t *testing.T) {
	r := NewRegistry()
	keep := &stubActor{w: 1, h: 1}
	drop := &stubActor{w: 1, h: 1, defunct: true}
	r.Add(keep)
	r.Add(drop)

	r.Sweep()
	if !drop.disposed {
		t.Error("defunct actor should be disposed")
	}
	if keep.disposed {
		t.Error("live actor should not be disposed")
	}
	if r.Len() != 1 {
		t.Errorf("expected 1 actor after sweep, got %d", r.Len())
	}

	seen := 0
	r.ForEach(func(a Actor) { seen++ })
	if seen != 1 {
		t.Errorf("expected 1 live actor, got %d", seen)
	}
}

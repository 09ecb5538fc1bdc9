package stage

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/device"
	"github.com/decker502/jetlag/pkg/physics"
)

// fakeSequencer records level transitions.
type fakeSequencer struct {
	advanced int
	repeated int
}

func (f *fakeSequencer) AdvanceLevel() { f.advanced++ }
func (f *fakeSequencer) RepeatLevel()  { f.repeated++ }

// fakeSound counts calls to the playback interface.
type fakeSound struct {
	plays, pauses, stops int
}

func (f *fakeSound) Play()                 { f.plays++ }
func (f *fakeSound) Pause()                { f.pauses++ }
func (f *fakeSound) Stop()                 { f.stops++ }
func (f *fakeSound) IsPlaying() bool       { return false }
func (f *fakeSound) SetVolume(vol float64) {}

// stubActor is a minimal world actor for tap routing tests.
type stubActor struct {
	x, y, w, h float64
	consume    bool
	tapped     int
	defunct    bool
	disposed   bool
}

func (a *stubActor) OnCollide(other physics.CollisionHandler, contact physics.Contact) {}

func (a *stubActor) Draw(screen *ebiten.Image, camera *Camera, elapsed float64) {}

func (a *stubActor) Contains(x, y float64) bool {
	return x >= a.x && x <= a.x+a.w && y >= a.y && y <= a.y+a.h
}

func (a *stubActor) Tap(x, y float64) bool {
	a.tapped++
	return a.consume
}

func (a *stubActor) Defunct() bool { return a.defunct }
func (a *stubActor) Dispose()      { a.disposed = true }

func newTestStage() (*Stage, *fakeSequencer) {
	cfg := config.Default()
	cfg.ForceAccelerometerOff = true
	dev := &device.Device{
		Accelerometer: device.NewAccelerometer(cfg),
		Storage:       device.NewMemoryStorage(),
	}
	seq := &fakeSequencer{}
	s := NewStage(cfg, dev)
	s.SetSequencer(seq)
	return s, seq
}

func TestUpdateBeforeScreenChangeIsHarmless(t *testing.T) {
	s, _ := newTestStage()
	// No world yet: Update and gestures must be safe no-ops.
	s.Update(0.016)
	if s.World() != nil {
		t.Error("expected nil world before OnScreenChange")
	}
	if s.Tap(100, 100) {
		t.Error("tap before OnScreenChange should not be consumed")
	}
	if s.PanStart(100, 100) {
		t.Error("pan before OnScreenChange should not be consumed")
	}
}

func TestOnScreenChangeResetsEverything(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	snd := &fakeSound{}
	s.SetMusic(snd)
	s.PlayMusic()
	s.SetBackgroundColor(0x123456)
	s.SetGestureHudFirst(false)
	s.Score().SetLoseCountdown(10)
	s.SetWelcomeSceneBuilder(func(api *OverlayAPI) {})
	s.Device().Storage.SetLevelFact("coins", "5")

	s.OnScreenChange()

	if s.MusicPlaying() {
		t.Error("music should be stopped after screen change")
	}
	if snd.stops != 1 {
		t.Errorf("expected underlying sound stopped once, got %d", snd.stops)
	}
	if s.HasOverlay() {
		t.Error("overlay should be cleared after screen change")
	}
	if _, active := s.Score().LoseCountdown(); active {
		t.Error("lose countdown should be disabled after screen change")
	}
	if got := s.Device().Storage.LevelFact("coins", "0"); got != "0" {
		t.Errorf("level facts should be cleared, got %q", got)
	}
	// The welcome builder from the previous level must not fire.
	s.Update(0.016)
	if s.HasOverlay() {
		t.Error("stale welcome builder fired after screen change")
	}
}

func TestWelcomeOverlaySuspendsWorld(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	builderCalls := 0
	s.SetWelcomeSceneBuilder(func(api *OverlayAPI) {
		builderCalls++
		api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
			api.Dismiss()
			return true
		})
	})

	frames := 0
	s.World().AddRepeatEvent(func() { frames++ })

	// Frame 1: overlay pops and the world stays frozen.
	s.Update(0.016)
	if !s.HasOverlay() {
		t.Fatal("welcome overlay should be active")
	}
	if frames != 0 {
		t.Errorf("world advanced under an overlay: %d frames", frames)
	}

	// Frame 2: still frozen, builder not re-invoked.
	s.Update(0.016)
	if builderCalls != 1 {
		t.Errorf("welcome builder should fire once, got %d", builderCalls)
	}
	if frames != 0 {
		t.Errorf("world advanced under an overlay: %d frames", frames)
	}

	// Tap anywhere dismisses; the world resumes next frame.
	if !s.Tap(800, 450) {
		t.Error("overlay tap should be consumed")
	}
	if s.HasOverlay() {
		t.Error("overlay should be dismissed after tap")
	}
	s.Update(0.016)
	if frames != 1 {
		t.Errorf("expected world to resume, got %d frames", frames)
	}
}

func TestPauseBuilderPopsNextFrame(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	s.Update(0.016)
	if s.HasOverlay() {
		t.Fatal("no overlay expected without builders")
	}

	calls := 0
	s.SetPauseSceneBuilder(func(api *OverlayAPI) { calls++ })
	s.Update(0.016)
	if !s.HasOverlay() {
		t.Error("pause overlay should be active")
	}
	if calls != 1 {
		t.Errorf("pause builder should fire once, got %d", calls)
	}
}

func TestTapRoutingHudFirst(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	hudTaps := 0
	s.HUD().AddControl(&Control{
		OnTap: func(x, y float64) bool {
			hudTaps++
			return true
		},
	})
	actor := &stubActor{w: 16, h: 9, consume: true}
	s.World().AddActor(actor)

	// Default: HUD wins, the world never sees the tap.
	s.Tap(800, 450)
	if hudTaps != 1 || actor.tapped != 0 {
		t.Errorf("hud-first routing broken: hud=%d world=%d", hudTaps, actor.tapped)
	}

	// World-first: the actor consumes, HUD never sees it.
	s.SetGestureHudFirst(false)
	s.Tap(800, 450)
	if hudTaps != 1 || actor.tapped != 1 {
		t.Errorf("world-first routing broken: hud=%d world=%d", hudTaps, actor.tapped)
	}
}

func TestTapFallsThroughUnconsumed(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	hudTaps := 0
	s.HUD().AddControl(&Control{
		OnTap: func(x, y float64) bool {
			hudTaps++
			return false
		},
	})
	actor := &stubActor{w: 16, h: 9, consume: true}
	s.World().AddActor(actor)

	if !s.Tap(800, 450) {
		t.Error("world actor should consume the fallen-through tap")
	}
	if hudTaps != 1 || actor.tapped != 1 {
		t.Errorf("expected both candidates tried: hud=%d world=%d", hudTaps, actor.tapped)
	}
}

func TestOverlayGetsExclusiveGestures(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	hudTaps := 0
	s.HUD().AddControl(&Control{
		OnTap:      func(x, y float64) bool { hudTaps++; return true },
		OnPanStart: func(x, y float64) bool { hudTaps++; return true },
	})
	actor := &stubActor{w: 16, h: 9, consume: true}
	s.World().AddActor(actor)

	overlayTaps := 0
	s.SetWelcomeSceneBuilder(func(api *OverlayAPI) {
		api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
			overlayTaps++
			return true
		})
	})
	s.Update(0.016)

	s.Tap(800, 450)
	s.PanStart(800, 450)
	s.Swipe(0, 0, 200, 0, 900, 0)
	if overlayTaps != 1 {
		t.Errorf("expected overlay to receive the tap, got %d", overlayTaps)
	}
	if hudTaps != 0 || actor.tapped != 0 {
		t.Errorf("hud/world leaked gestures under overlay: hud=%d world=%d", hudTaps, actor.tapped)
	}
}

func TestPanAndSwipeGoToHudOnly(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	var panStarts, panMoves, panStops, touchDowns, touchUps, swipes int
	s.HUD().AddControl(&Control{
		OnPanStart:  func(x, y float64) bool { panStarts++; return true },
		OnPanMove:   func(x, y, dx, dy float64) bool { panMoves++; return true },
		OnPanStop:   func(x, y float64) bool { panStops++; return true },
		OnTouchDown: func(x, y float64) bool { touchDowns++; return true },
		OnTouchUp:   func(x, y float64) bool { touchUps++; return true },
		OnSwipe:     func(fx, fy, tx, ty, vx, vy float64) bool { swipes++; return true },
	})

	if !s.PanStart(100, 100) || !s.PanMove(120, 100, 20, 0) || !s.PanStop(140, 100) {
		t.Error("pan sequence should be consumed by the HUD")
	}
	if !s.TouchDown(100, 100) || !s.TouchUp(100, 100) {
		t.Error("touch events should be consumed by the HUD")
	}
	if !s.Swipe(0, 0, 300, 0, 1200, 0) {
		t.Error("swipe should be consumed by the HUD")
	}
	if panStarts != 1 || panMoves != 1 || panStops != 1 || touchDowns != 1 || touchUps != 1 || swipes != 1 {
		t.Errorf("unexpected counts: %d %d %d %d %d %d",
			panStarts, panMoves, panStops, touchDowns, touchUps, swipes)
	}
}

func TestEndLevelWinBuilderIsOneShot(t *testing.T) {
	s, seq := newTestStage()
	s.OnScreenChange()

	s.SetWinSceneBuilder(func(api *OverlayAPI) {
		api.AddTapControl(0, 0, 0, 0, func(x, y float64) bool {
			api.DismissAndAdvance()
			return true
		})
	})

	s.EndLevel(true)
	if !s.HasOverlay() {
		t.Fatal("win overlay should be active")
	}
	if seq.advanced != 0 {
		t.Errorf("sequencer should wait for dismissal, advanced=%d", seq.advanced)
	}

	s.Tap(800, 450)
	if seq.advanced != 1 {
		t.Errorf("expected advance on dismissal, got %d", seq.advanced)
	}

	// The builder was consumed: a second win goes straight through.
	s.EndLevel(true)
	if s.HasOverlay() {
		t.Error("consumed win builder should not pop again")
	}
	if seq.advanced != 2 {
		t.Errorf("expected direct advance, got %d", seq.advanced)
	}
}

func TestEndLevelLoseWithoutBuilderRepeats(t *testing.T) {
	s, seq := newTestStage()
	s.OnScreenChange()

	s.EndLevel(false)
	if seq.repeated != 1 || seq.advanced != 0 {
		t.Errorf("expected one repeat, got repeat=%d advance=%d", seq.repeated, seq.advanced)
	}
}

func TestLoseCountdownEndsLevelOnce(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	builderCalls := 0
	s.SetLoseSceneBuilder(func(api *OverlayAPI) { builderCalls++ })
	s.Score().SetLoseCountdown(0.5)

	s.Update(0.3)
	if s.HasOverlay() {
		t.Fatal("countdown should still be running")
	}
	s.Update(0.3)
	if !s.HasOverlay() {
		t.Fatal("lose overlay should pop when the countdown expires")
	}
	if builderCalls != 1 {
		t.Errorf("lose builder should fire once, got %d", builderCalls)
	}
	if _, active := s.Score().LoseCountdown(); active {
		t.Error("expired countdown should self-disable")
	}
}

func TestWinCountdownAdvancesLevel(t *testing.T) {
	s, seq := newTestStage()
	s.OnScreenChange()

	s.Score().SetWinCountdown(0.2)
	s.Update(0.3)
	if seq.advanced != 1 {
		t.Errorf("expected one advance, got %d", seq.advanced)
	}
}

func TestMusicIdempotence(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	snd := &fakeSound{}
	s.SetMusic(snd)

	s.PlayMusic()
	s.PlayMusic()
	if snd.plays != 1 {
		t.Errorf("expected a single Play, got %d", snd.plays)
	}

	s.PauseMusic()
	s.PauseMusic()
	if snd.pauses != 1 {
		t.Errorf("expected a single Pause, got %d", snd.pauses)
	}

	// Already stopped (paused): Stop must be a no-op.
	s.StopMusic()
	if snd.stops != 0 {
		t.Errorf("stop while not playing should be a no-op, got %d", snd.stops)
	}

	s.PlayMusic()
	s.StopMusic()
	s.StopMusic()
	if snd.plays != 2 || snd.stops != 1 {
		t.Errorf("expected plays=2 stops=1, got plays=%d stops=%d", snd.plays, snd.stops)
	}
}

func TestUpdateStartsMusic(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	snd := &fakeSound{}
	s.SetMusic(snd)
	s.Update(0.016)
	s.Update(0.016)
	if snd.plays != 1 {
		t.Errorf("expected music started exactly once, got %d", snd.plays)
	}
}

func TestOneTimeEventsRunExactlyOnce(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	runs := 0
	s.World().AddOneTimeEvent(func() { runs++ })

	s.Update(0.016)
	s.Update(0.016)
	if runs != 1 {
		t.Errorf("one-time event should run once, got %d", runs)
	}
}

func TestOneTimeEventReenqueueRunsNextFrame(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	var order []int
	s.World().AddOneTimeEvent(func() {
		order = append(order, 1)
		s.World().AddOneTimeEvent(func() { order = append(order, 2) })
	})

	s.Update(0.016)
	if len(order) != 1 || order[0] != 1 {
		t.Fatalf("only the first event should run this frame, got %v", order)
	}
	s.Update(0.016)
	if len(order) != 2 || order[1] != 2 {
		t.Errorf("re-enqueued event should run next frame, got %v", order)
	}
}

func TestDefunctActorSweptAfterFrame(t *testing.T) {
	s, _ := newTestStage()
	s.OnScreenChange()

	actor := &stubActor{w: 1, h: 1}
	s.World().AddActor(actor)
	s.World().AddOneTimeEvent(func() { actor.defunct = true })

	s.Update(0.016)
	if !actor.disposed {
		t.Error("defunct actor should be disposed during the sweep")
	}
	if s.World().ActorCount() != 0 {
		t.Errorf("expected empty registry, got %d actors", s.World().ActorCount())
	}
}

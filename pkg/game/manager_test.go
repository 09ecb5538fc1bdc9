package game

import (
	"testing"

	"github.com/decker502/jetlag/pkg/config"
	"github.com/decker502/jetlag/pkg/device"
	"github.com/decker502/jetlag/pkg/stage"
)

func newTestManager() *Manager {
	cfg := config.Default()
	cfg.NumLevels = 3
	cfg.NumHelpScenes = 2
	cfg.ForceAccelerometerOff = true
	dev := &device.Device{
		Accelerometer: device.NewAccelerometer(cfg),
		Storage:       device.NewMemoryStorage(),
	}
	return NewManager(cfg, dev)
}

func TestLaunchWithoutSplashGoesToPlay(t *testing.T) {
	m := newTestManager()
	var built []int
	m.SetLevelBuilder(func(index int, s *stage.Stage) { built = append(built, index) })

	m.Launch()
	if m.Mode() != ModePlay {
		t.Errorf("expected play mode, got %d", m.Mode())
	}
	if len(built) != 1 || built[0] != 1 {
		t.Errorf("expected level 1 built, got %v", built)
	}
}

func TestLaunchWithSplash(t *testing.T) {
	m := newTestManager()
	splashes := 0
	m.SetSplashBuilder(func(index int, s *stage.Stage) { splashes++ })
	m.SetLevelBuilder(func(index int, s *stage.Stage) {})

	m.Launch()
	if m.Mode() != ModeSplash {
		t.Errorf("expected splash mode, got %d", m.Mode())
	}
	if splashes != 1 {
		t.Errorf("expected splash built once, got %d", splashes)
	}
}

func TestAdvanceLevelWalksThroughLevels(t *testing.T) {
	m := newTestManager()
	var built []int
	m.SetLevelBuilder(func(index int, s *stage.Stage) { built = append(built, index) })
	choosers := 0
	m.SetChooserBuilder(func(index int, s *stage.Stage) { choosers++ })

	m.DoPlay(1)
	m.AdvanceLevel()
	m.AdvanceLevel()
	if len(built) != 3 || built[2] != 3 {
		t.Fatalf("expected levels 1,2,3 built, got %v", built)
	}

	// Past the last level: back to the chooser.
	m.AdvanceLevel()
	if m.Mode() != ModeChooser || choosers != 1 {
		t.Errorf("expected chooser after last level, mode=%d choosers=%d", m.Mode(), choosers)
	}
}

func TestRepeatLevelRebuildsSameLevel(t *testing.T) {
	m := newTestManager()
	var built []int
	m.SetLevelBuilder(func(index int, s *stage.Stage) { built = append(built, index) })

	m.DoPlay(2)
	m.RepeatLevel()
	if len(built) != 2 || built[0] != 2 || built[1] != 2 {
		t.Errorf("expected level 2 built twice, got %v", built)
	}
}

func TestDoPlayClampsLevelIndex(t *testing.T) {
	m := newTestManager()
	var built []int
	m.SetLevelBuilder(func(index int, s *stage.Stage) { built = append(built, index) })

	m.DoPlay(0)
	m.DoPlay(99)
	if len(built) != 2 || built[0] != 1 || built[1] != 3 {
		t.Errorf("expected clamped levels [1,3], got %v", built)
	}
}

func TestHelpPagination(t *testing.T) {
	m := newTestManager()
	var pages []int
	m.SetHelpBuilder(func(index int, s *stage.Stage) { pages = append(pages, index) })
	splashes := 0
	m.SetSplashBuilder(func(index int, s *stage.Stage) { splashes++ })

	m.DoHelp(1)
	m.AdvanceLevel()
	if len(pages) != 2 || pages[1] != 2 {
		t.Fatalf("expected help pages 1,2, got %v", pages)
	}
	// Past the last page: back to the splash.
	m.AdvanceLevel()
	if m.Mode() != ModeSplash || splashes != 1 {
		t.Errorf("expected splash after last help page, mode=%d splashes=%d", m.Mode(), splashes)
	}
}

func TestUnlockProgressMonotonic(t *testing.T) {
	m := newTestManager()
	m.SetLevelBuilder(func(index int, s *stage.Stage) {})

	if m.UnlockedLevel() != 1 {
		t.Fatalf("expected initial unlock 1, got %d", m.UnlockedLevel())
	}
	m.DoPlay(3)
	if m.UnlockedLevel() != 3 {
		t.Errorf("expected unlock 3, got %d", m.UnlockedLevel())
	}
	// Going back does not regress the unlock.
	m.DoPlay(1)
	if m.UnlockedLevel() != 3 {
		t.Errorf("unlock should be monotonic, got %d", m.UnlockedLevel())
	}
}

func TestModeSwitchResetsStage(t *testing.T) {
	m := newTestManager()
	m.SetLevelBuilder(func(index int, s *stage.Stage) {
		s.SetWelcomeSceneBuilder(func(api *stage.OverlayAPI) {})
	})

	m.DoPlay(1)
	m.Update(0.016)
	if !m.Stage().HasOverlay() {
		t.Fatal("welcome overlay should pop")
	}

	// Rebuilding the level clears the stale overlay.
	m.RepeatLevel()
	if m.Stage().HasOverlay() {
		t.Error("overlay should be cleared by the screen change")
	}
}

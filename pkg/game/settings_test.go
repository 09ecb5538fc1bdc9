package game

import "testing"

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.MusicVolume != 0.7 || s.SfxVolume != 0.8 {
		t.Errorf("unexpected default volumes: music=%f sfx=%f", s.MusicVolume, s.SfxVolume)
	}
	if !s.MusicEnabled || !s.SfxEnabled {
		t.Error("audio should be enabled by default")
	}
}

func TestSettingsManagerDegradedMode(t *testing.T) {
	sm, err := NewSettingsManager(nil)
	if err != nil {
		t.Fatalf("degraded mode should not error: %v", err)
	}
	sm.SetMusicVolume(0.5)
	if err := sm.Save(); err != nil {
		t.Errorf("save in degraded mode should be a no-op, got %v", err)
	}
	if sm.Get().MusicVolume != 0.5 {
		t.Errorf("in-memory setting lost: %f", sm.Get().MusicVolume)
	}
}

func TestVolumeClamped(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetMusicVolume(1.5)
	if sm.Get().MusicVolume != 1.0 {
		t.Errorf("expected clamp to 1.0, got %f", sm.Get().MusicVolume)
	}
	sm.SetSfxVolume(-0.3)
	if sm.Get().SfxVolume != 0.0 {
		t.Errorf("expected clamp to 0.0, got %f", sm.Get().SfxVolume)
	}
}

func TestEffectiveVolumeRespectsToggle(t *testing.T) {
	sm, _ := NewSettingsManager(nil)
	sm.SetMusicVolume(0.6)
	if got := sm.EffectiveMusicVolume(); got != 0.6 {
		t.Errorf("expected 0.6, got %f", got)
	}
	sm.SetMusicEnabled(false)
	if got := sm.EffectiveMusicVolume(); got != 0 {
		t.Errorf("disabled music should be silent, got %f", got)
	}
	sm.SetSfxEnabled(false)
	if got := sm.EffectiveSfxVolume(); got != 0 {
		t.Errorf("disabled sfx should be silent, got %f", got)
	}
}

package stage

import "testing"

// TestScoreResetRestoresDefaults verifies that Reset clears counters and
// disables all timers, with no state leaking between consecutive resets.
func TestScoreResetRestoresDefaults(t *testing.T) {
	s := NewScore()
	s.AddGoodie(0, 5)
	s.SetLoseCountdown(10)
	s.SetWinCountdown(20)
	s.SetStopwatch(3)
	s.HeroCreated()
	s.EnemyCreated()

	for i := 0; i < 2; i++ {
		s.Reset()
		if got := s.GoodieCount(0); got != 0 {
			t.Errorf("Reset #%d: expected goodie count 0, got %d", i+1, got)
		}
		if _, active := s.LoseCountdown(); active {
			t.Errorf("Reset #%d: expected lose countdown disabled", i+1)
		}
		if _, active := s.WinCountdown(); active {
			t.Errorf("Reset #%d: expected win countdown disabled", i+1)
		}
		if _, active := s.StopwatchValue(); active {
			t.Errorf("Reset #%d: expected stopwatch disabled", i+1)
		}
	}
}

// TestCountdownFiresExactlyOnce verifies that a countdown reports expiry on
// the tick that crosses below zero, and never again.
func TestCountdownFiresExactlyOnce(t *testing.T) {
	s := NewScore()
	s.SetLoseCountdown(0.5)

	// A 600ms frame pushes the 0.5s timer below zero.
	if !s.TickLose(0.6) {
		t.Fatal("Expected countdown to expire on the crossing tick")
	}
	if s.TickLose(0.6) {
		t.Error("Expected expiry to be reported only once")
	}
	if _, active := s.LoseCountdown(); active {
		t.Error("Expected countdown disabled after expiry")
	}
}

// TestCountdownZeroIsNotExpired verifies that reaching exactly zero does not
// count as crossing below zero.
func TestCountdownZeroIsNotExpired(t *testing.T) {
	s := NewScore()
	s.SetWinCountdown(1.0)
	if s.TickWin(1.0) {
		t.Error("Expected no expiry at exactly zero remaining")
	}
	if remaining, active := s.WinCountdown(); !active || remaining != 0 {
		t.Errorf("Expected active timer at 0, got remaining=%f active=%v", remaining, active)
	}
	if !s.TickWin(0.001) {
		t.Error("Expected expiry once remaining goes negative")
	}
}

// TestDisabledTimersIgnoreTicks verifies ticking inactive timers is a no-op.
func TestDisabledTimersIgnoreTicks(t *testing.T) {
	s := NewScore()
	if s.TickLose(100) || s.TickWin(100) {
		t.Error("Expected disabled timers to never expire")
	}
	s.TickStopwatch(100)
	if v, active := s.StopwatchValue(); active || v != 0 {
		t.Errorf("Expected inactive stopwatch to stay at 0, got %f (active=%v)", v, active)
	}
}

// TestStopwatchCountsUp verifies the stopwatch accumulates elapsed time.
func TestStopwatchCountsUp(t *testing.T) {
	s := NewScore()
	s.SetStopwatch(1.0)
	s.TickStopwatch(0.25)
	s.TickStopwatch(0.25)
	if v, active := s.StopwatchValue(); !active || v != 1.5 {
		t.Errorf("Expected stopwatch at 1.5, got %f (active=%v)", v, active)
	}
}

// TestNegativeGoodieDeltas verifies penalty goodies can drive counts negative.
func TestNegativeGoodieDeltas(t *testing.T) {
	s := NewScore()
	s.AddGoodie(2, -3)
	if got := s.GoodieCount(2); got != -3 {
		t.Errorf("Expected goodie count -3, got %d", got)
	}
}

// TestGoodieIndexOutOfRange verifies out-of-range indices are rejected
// without panicking.
func TestGoodieIndexOutOfRange(t *testing.T) {
	s := NewScore()
	if s.AddGoodie(GoodieTypes, 1) {
		t.Error("Expected out-of-range AddGoodie to report no victory")
	}
	if got := s.GoodieCount(-1); got != 0 {
		t.Errorf("Expected 0 for out-of-range index, got %d", got)
	}
}

// TestGoodieQuotaVictory verifies the goodie-count victory rule considers all
// four counters.
func TestGoodieQuotaVictory(t *testing.T) {
	s := NewScore()
	s.SetVictoryGoodies(2, 1, 0, 0)

	if s.AddGoodie(0, 2) {
		t.Error("Quota must not be met while counter 1 is short")
	}
	if !s.AddGoodie(1, 1) {
		t.Error("Expected quota met once all counters reach their quota")
	}
}

// TestDestinationVictory verifies arrivals against the required hero count.
func TestDestinationVictory(t *testing.T) {
	s := NewScore()
	s.SetVictoryDestination(2)
	if s.Arrive() {
		t.Error("Expected no victory after first arrival")
	}
	if !s.Arrive() {
		t.Error("Expected victory after second arrival")
	}
}

// TestEnemyCountVictory verifies both the fixed-count and the
// all-enemies variants.
func TestEnemyCountVictory(t *testing.T) {
	s := NewScore()
	s.SetVictoryEnemyCount(2)
	s.EnemyCreated()
	s.EnemyCreated()
	s.EnemyCreated()
	if s.EnemyDefeated() {
		t.Error("Expected no victory after one defeat")
	}
	if !s.EnemyDefeated() {
		t.Error("Expected victory after two defeats")
	}

	s.Reset()
	s.SetVictoryEnemyCount(-1)
	s.EnemyCreated()
	s.EnemyCreated()
	if s.EnemyDefeated() {
		t.Error("Expected no victory while an enemy remains")
	}
	if !s.EnemyDefeated() {
		t.Error("Expected victory once all enemies are defeated")
	}
}

// TestHeroDefeatedTracksLastHero verifies losing the last hero is reported.
func TestHeroDefeatedTracksLastHero(t *testing.T) {
	s := NewScore()
	s.HeroCreated()
	s.HeroCreated()
	if s.HeroDefeated() {
		t.Error("Expected not all heroes defeated")
	}
	if !s.HeroDefeated() {
		t.Error("Expected all heroes defeated")
	}
}

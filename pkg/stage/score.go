package stage

import "log"

// GoodieTypes 独立的 goodie 计数器数量
const GoodieTypes = 4

// CountdownTimer 倒计时
//
// 用显式的 active 标志区分"未启用"和"任意真实剩余值"（包括 0 和
// 尚未处理的负值）。到期时自动失效，保证 Tick 只报告一次到期。
type CountdownTimer struct {
	active    bool
	remaining float64
}

// Set 启动倒计时
func (t *CountdownTimer) Set(seconds float64) {
	t.active = true
	t.remaining = seconds
}

// Disable 停用倒计时
func (t *CountdownTimer) Disable() {
	t.active = false
	t.remaining = 0
}

// Remaining 返回剩余秒数和是否启用
func (t *CountdownTimer) Remaining() (float64, bool) {
	return t.remaining, t.active
}

// Tick 推进倒计时
//
// 返回 true 表示本次推进让剩余时间跌破 0（且只在这一次返回 true，
// 之后计时器自动失效）。未启用时什么都不做。
func (t *CountdownTimer) Tick(delta float64) bool {
	if !t.active {
		return false
	}
	t.remaining -= delta
	if t.remaining < 0 {
		t.active = false
		return true
	}
	return false
}

// Stopwatch 正计时
type Stopwatch struct {
	active bool
	value  float64
}

// Start 从 start 秒开始计时
func (s *Stopwatch) Start(start float64) {
	s.active = true
	s.value = start
}

// Value 返回当前读数和是否启用
func (s *Stopwatch) Value() (float64, bool) {
	return s.value, s.active
}

// Tick 推进正计时，未启用时什么都不做
func (s *Stopwatch) Tick(delta float64) {
	if s.active {
		s.value += delta
	}
}

// VictoryKind 关卡胜利条件
type VictoryKind int

const (
	// VictoryDestination 足够数量的 hero 到达终点
	VictoryDestination VictoryKind = iota
	// VictoryGoodieCount 四类 goodie 分别达到配额
	VictoryGoodieCount
	// VictoryEnemyCount 击败指定数量（或全部）敌人
	VictoryEnemyCount
)

// Score 每关的可变计分状态
//
// 由当前 Stage 独占：每次 OnScreenChange 时 Reset，每帧由编排层
// 推进计时器，游戏回调（拾取、击败、到达）修改计数。
// 所有计数方法只改状态并报告胜负条件是否达成，
// 真正结束关卡由 Stage.EndLevel 负责。
type Score struct {
	goodies [GoodieTypes]int

	loseCountdown CountdownTimer
	winCountdown  CountdownTimer
	stopwatch     Stopwatch

	heroesCreated   int
	heroesDefeated  int
	enemiesCreated  int
	enemiesDefeated int
	arrivals        int

	victory          VictoryKind
	victoryGoodies   [GoodieTypes]int
	victoryHeroCount int
	// victoryEnemyCount 为负表示"全部敌人"
	victoryEnemyCount int
}

// NewScore 创建默认计分状态（等价于 Reset 之后的状态）
func NewScore() *Score {
	s := &Score{}
	s.Reset()
	return s
}

// Reset 恢复所有默认值
//
// 计时器全部停用，计数器清零，胜利条件回到"一个 hero 到达终点"。
// 每次进入新关卡都必须调用，保证上一关不泄漏任何状态。
func (s *Score) Reset() {
	s.goodies = [GoodieTypes]int{}
	s.loseCountdown.Disable()
	s.winCountdown.Disable()
	s.stopwatch = Stopwatch{}
	s.heroesCreated = 0
	s.heroesDefeated = 0
	s.enemiesCreated = 0
	s.enemiesDefeated = 0
	s.arrivals = 0
	s.victory = VictoryDestination
	s.victoryGoodies = [GoodieTypes]int{}
	s.victoryHeroCount = 1
	s.victoryEnemyCount = -1
}

// AddGoodie 调整第 idx 类 goodie 计数
// delta 可以为负（惩罚型 goodie）。返回是否因此达成 goodie 配额。
func (s *Score) AddGoodie(idx, delta int) bool {
	if idx < 0 || idx >= GoodieTypes {
		log.Printf("[Score] Warning: goodie index %d out of range [0,%d)", idx, GoodieTypes)
		return false
	}
	s.goodies[idx] += delta
	return s.goodieQuotaMet()
}

// GoodieCount 返回第 idx 类 goodie 的当前计数
func (s *Score) GoodieCount(idx int) int {
	if idx < 0 || idx >= GoodieTypes {
		return 0
	}
	return s.goodies[idx]
}

// goodieQuotaMet 检查 goodie 配额胜利条件
func (s *Score) goodieQuotaMet() bool {
	if s.victory != VictoryGoodieCount {
		return false
	}
	for i := 0; i < GoodieTypes; i++ {
		if s.goodies[i] < s.victoryGoodies[i] {
			return false
		}
	}
	return true
}

// SetLoseCountdown 启动失败倒计时（跌破 0 时判负）
func (s *Score) SetLoseCountdown(seconds float64) {
	s.loseCountdown.Set(seconds)
}

// LoseCountdown 返回失败倒计时的剩余秒数和是否启用
func (s *Score) LoseCountdown() (float64, bool) {
	return s.loseCountdown.Remaining()
}

// SetWinCountdown 启动胜利倒计时（撑过倒计时即判胜）
func (s *Score) SetWinCountdown(seconds float64) {
	s.winCountdown.Set(seconds)
}

// WinCountdown 返回胜利倒计时的剩余秒数和是否启用
func (s *Score) WinCountdown() (float64, bool) {
	return s.winCountdown.Remaining()
}

// SetStopwatch 启动秒表
func (s *Score) SetStopwatch(start float64) {
	s.stopwatch.Start(start)
}

// StopwatchValue 返回秒表读数和是否启用
func (s *Score) StopwatchValue() (float64, bool) {
	return s.stopwatch.Value()
}

// TickLose 推进失败倒计时，返回是否刚刚到期
func (s *Score) TickLose(delta float64) bool {
	return s.loseCountdown.Tick(delta)
}

// TickWin 推进胜利倒计时，返回是否刚刚到期
func (s *Score) TickWin(delta float64) bool {
	return s.winCountdown.Tick(delta)
}

// TickStopwatch 推进秒表
func (s *Score) TickStopwatch(delta float64) {
	s.stopwatch.Tick(delta)
}

// SetVictoryDestination 设置"heroCount 个 hero 到达终点"胜利条件
func (s *Score) SetVictoryDestination(heroCount int) {
	s.victory = VictoryDestination
	if heroCount < 1 {
		heroCount = 1
	}
	s.victoryHeroCount = heroCount
}

// SetVictoryGoodies 设置四类 goodie 的胜利配额
func (s *Score) SetVictoryGoodies(v0, v1, v2, v3 int) {
	s.victory = VictoryGoodieCount
	s.victoryGoodies = [GoodieTypes]int{v0, v1, v2, v3}
}

// SetVictoryEnemyCount 设置击败敌人数量的胜利条件
// count 为负表示必须击败全部已创建的敌人。
func (s *Score) SetVictoryEnemyCount(count int) {
	s.victory = VictoryEnemyCount
	s.victoryEnemyCount = count
}

// HeroCreated 登记一个新 hero
func (s *Score) HeroCreated() {
	s.heroesCreated++
}

// HeroDefeated 登记一个 hero 被击败，返回是否所有 hero 都已阵亡
func (s *Score) HeroDefeated() bool {
	s.heroesDefeated++
	return s.heroesDefeated >= s.heroesCreated
}

// EnemyCreated 登记一个新敌人
func (s *Score) EnemyCreated() {
	s.enemiesCreated++
}

// EnemyDefeated 登记一个敌人被击败，返回是否达成击败数量胜利条件
func (s *Score) EnemyDefeated() bool {
	s.enemiesDefeated++
	if s.victory != VictoryEnemyCount {
		return false
	}
	if s.victoryEnemyCount < 0 {
		return s.enemiesDefeated >= s.enemiesCreated
	}
	return s.enemiesDefeated >= s.victoryEnemyCount
}

// Arrive 登记一个 hero 到达终点，返回是否达成到达数量胜利条件
func (s *Score) Arrive() bool {
	s.arrivals++
	return s.victory == VictoryDestination && s.arrivals >= s.victoryHeroCount
}

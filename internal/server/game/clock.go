package game

import (
	"time"

	"variantchess/internal/storage"
	"variantchess/internal/variant"
)

const (
	DefaultBase      = 10 * time.Minute
	DefaultIncrement = 5 * time.Second

	minBase      = time.Minute
	maxBase      = 180 * time.Minute
	maxIncrement = 60 * time.Second
)

// ClockConfig 零值表示使用默认 10 分钟；NewClock 只对零值 Base 套默认值
type ClockConfig struct {
	Base      time.Duration
	Increment time.Duration
}

// ClockConfigFromInput 按界面输入（分钟 / 秒）构造，超出范围的截断（0 分钟截到 1 分钟）；负数表示未填写
func ClockConfigFromInput(baseMinutes, incrementSeconds float64) ClockConfig {
	cfg := ClockConfig{Base: DefaultBase, Increment: DefaultIncrement}
	if baseMinutes >= 0 {
		cfg.Base = time.Duration(baseMinutes * float64(time.Minute))
	}
	if incrementSeconds >= 0 {
		cfg.Increment = time.Duration(incrementSeconds * float64(time.Second))
	}
	return cfg.clamped()
}

func (c ClockConfig) clamped() ClockConfig {
	c.Base = min(max(c.Base, minBase), maxBase)
	c.Increment = min(max(c.Increment, 0), maxIncrement)
	return c
}

func (c ClockConfig) normalized() ClockConfig {
	if c.Base == 0 {
		c.Base = DefaultBase
	}
	return c.clamped()
}

// Clock 双方各自计时；只有 Running 时才扣时间
type Clock struct {
	Base      time.Duration
	Increment time.Duration
	remaining [2]time.Duration
	active    variant.Color
	running   bool
	lastTick  time.Time
}

func NewClock(cfg ClockConfig) *Clock {
	cfg = cfg.normalized()
	return &Clock{
		Base:      cfg.Base,
		Increment: cfg.Increment,
		remaining: [2]time.Duration{cfg.Base, cfg.Base},
		active:    variant.White,
	}
}

func (c *Clock) Running() bool         { return c.running }
func (c *Clock) Active() variant.Color { return c.active }

// Consume 把上次记账以来的时间从走棋方扣掉，最少扣到 0
func (c *Clock) Consume(now time.Time) {
	if !c.running {
		return
	}
	elapsed := now.Sub(c.lastTick)
	c.lastTick = now
	c.remaining[c.active] = max(c.remaining[c.active]-elapsed, 0)
}

// Remaining 只读地计算某一方当前剩余时间
func (c *Clock) Remaining(color variant.Color, now time.Time) time.Duration {
	if color != variant.White && color != variant.Black {
		return 0
	}
	ms := c.remaining[color]
	if c.running && c.active == color {
		ms = max(ms-now.Sub(c.lastTick), 0)
	}
	return ms
}

// Expired 走棋方的时间是否已经用完
func (c *Clock) Expired(now time.Time) bool {
	return c.running && c.Remaining(c.active, now) <= 0
}

// Start 从 turn 这一方开始计时
func (c *Clock) Start(turn variant.Color, now time.Time) {
	c.active = turn
	c.lastTick = now
	c.running = true
}

func (c *Clock) Stop(now time.Time) {
	c.Consume(now)
	c.running = false
}

// OnMoveCommitted 给刚走完的一方加秒，换另一方计时
func (c *Clock) OnMoveCommitted(mover, next variant.Color, now time.Time) {
	if !c.running {
		return
	}
	c.remaining[mover] += c.Increment
	c.active = next
	c.lastTick = now
}

func (c *Clock) Record() *storage.ClockRecord {
	return &storage.ClockRecord{
		BaseMs:      c.Base.Milliseconds(),
		IncrementMs: c.Increment.Milliseconds(),
		RemainingMs: [2]int64{c.remaining[0].Milliseconds(), c.remaining[1].Milliseconds()},
		Active:      int(c.active),
		Running:     c.running,
	}
}

// clockFromRecord 恢复出来的时钟一律暂停，避免把停机时间算进去
func clockFromRecord(rec *storage.ClockRecord) *Clock {
	if rec == nil {
		return NewClock(ClockConfig{})
	}
	c := NewClock(ClockConfig{
		Base:      time.Duration(rec.BaseMs) * time.Millisecond,
		Increment: time.Duration(rec.IncrementMs) * time.Millisecond,
	})
	c.remaining = [2]time.Duration{
		time.Duration(rec.RemainingMs[0]) * time.Millisecond,
		time.Duration(rec.RemainingMs[1]) * time.Millisecond,
	}
	if rec.Active == int(variant.Black) {
		c.active = variant.Black
	}
	return c
}

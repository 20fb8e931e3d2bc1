package weapons

import (
	"math"

	"github.com/decker502/gunrunner/pkg/types"
)

// Sniper 狙击枪：拉栓换弹
// 翻滚会打断拉栓，进度清零，翻滚结束后重新开始计时
type Sniper struct {
	base
	duration float64
	swing    float64
}

// NewSniper 创建狙击枪行为
func NewSniper(shotCost int, fireInterval, baseDamage, duration, swing float64) *Sniper {
	return &Sniper{
		base:     base{kind: types.WeaponSniper, shotCost: shotCost, fireInterval: fireInterval, baseDamage: baseDamage},
		duration: duration,
		swing:    swing,
	}
}

// Reload 推进一帧换弹
func (s *Sniper) Reload(in ReloadInput) ReloadOutcome {
	out := unchanged(in)

	if in.Rolling() {
		out.Progress = 0
		out.Orientation = in.StartOrientation
		return out
	}

	out.Progress = in.Progress + in.Dt
	t := math.Min(out.Progress/s.duration, 1)
	// 枪口先抬起再放下
	out.Orientation = in.StartOrientation - s.swing*math.Sin(math.Pi*t)

	if out.Progress >= s.duration {
		out.MagAmmo, out.Ammo = refill(in.Ammo)
		out.Orientation = in.StartOrientation
		out.Done = true
	}
	return out
}

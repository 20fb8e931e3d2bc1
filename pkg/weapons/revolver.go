package weapons

import (
	"math"

	"github.com/decker502/gunrunner/pkg/types"
)

// Revolver 左轮：换弹时长结束后一次装满整个弹巢
// 换弹期间武器旋转一圈；翻滚时旋转动画暂停，但计时照常推进
type Revolver struct {
	base
	duration float64
	spin     float64
}

// NewRevolver 创建左轮行为
func NewRevolver(shotCost int, fireInterval, baseDamage, duration, spin float64) *Revolver {
	return &Revolver{
		base:     base{kind: types.WeaponRevolver, shotCost: shotCost, fireInterval: fireInterval, baseDamage: baseDamage},
		duration: duration,
		spin:     spin,
	}
}

// Reload 推进一帧换弹
func (r *Revolver) Reload(in ReloadInput) ReloadOutcome {
	out := unchanged(in)
	out.Progress = in.Progress + in.Dt

	if !in.Rolling() {
		t := math.Min(out.Progress/r.duration, 1)
		out.Orientation = in.StartOrientation + r.spin*t
	}

	if out.Progress >= r.duration {
		out.MagAmmo, out.Ammo = refill(in.Ammo)
		out.Orientation = in.StartOrientation
		out.Done = true
	}
	return out
}

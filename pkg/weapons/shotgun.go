package weapons

import "github.com/decker502/gunrunner/pkg/types"

// Shotgun 霰弹枪：每隔 shellInterval 装填一发
// 弹匣装满或备弹耗尽时完成；翻滚期间暂停装填
type Shotgun struct {
	base
	shellInterval float64
	tilt          float64
}

// NewShotgun 创建霰弹枪行为
func NewShotgun(shotCost int, fireInterval, baseDamage, shellInterval, tilt float64) *Shotgun {
	return &Shotgun{
		base:          base{kind: types.WeaponShotgun, shotCost: shotCost, fireInterval: fireInterval, baseDamage: baseDamage},
		shellInterval: shellInterval,
		tilt:          tilt,
	}
}

// Reload 推进一帧换弹
func (s *Shotgun) Reload(in ReloadInput) ReloadOutcome {
	out := unchanged(in)
	out.Orientation = in.StartOrientation + s.tilt

	if !in.Rolling() {
		out.Progress = in.Progress + in.Dt
	}

	ammo := in.Ammo
	for out.Progress >= s.shellInterval && ammo.CanReload() {
		ammo.MagAmmo++
		if !ammo.Infinite {
			ammo.Ammo--
		}
		out.Progress -= s.shellInterval
	}
	out.MagAmmo, out.Ammo = ammo.MagAmmo, ammo.Ammo

	if !ammo.CanReload() {
		out.Orientation = in.StartOrientation
		out.Progress = 0
		out.Done = true
	}
	return out
}

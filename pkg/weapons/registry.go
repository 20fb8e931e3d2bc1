package weapons

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/types"
)

// Registry 武器类型到行为和弹道参数的绑定表
// 启动时构建，运行期只读
type Registry struct {
	behaviors  map[types.WeaponKind]Behavior
	ballistics map[types.WeaponKind]Ballistics
}

// Ballistics 子弹参数；Speed 为 0 的武器开火不生成子弹
type Ballistics struct {
	Speed float64
	Range float64
}

// NewRegistry 创建空的注册表
func NewRegistry() *Registry {
	return &Registry{
		behaviors:  make(map[types.WeaponKind]Behavior),
		ballistics: make(map[types.WeaponKind]Ballistics),
	}
}

// Register 绑定一个行为；同一武器类型重复绑定返回错误
func (r *Registry) Register(b Behavior) error {
	if _, exists := r.behaviors[b.Kind()]; exists {
		return fmt.Errorf("weapon kind %s already has a behavior", b.Kind())
	}
	r.behaviors[b.Kind()] = b
	return nil
}

// Lookup 查找武器类型的行为
func (r *Registry) Lookup(kind types.WeaponKind) (Behavior, bool) {
	b, ok := r.behaviors[kind]
	return b, ok
}

// MustLookup 查找武器类型的行为，未绑定时 panic
// 武器实体只会为已绑定的类型生成，查不到说明构建阶段有 bug
func (r *Registry) MustLookup(kind types.WeaponKind) Behavior {
	b, ok := r.Lookup(kind)
	if !ok {
		panic(fmt.Sprintf("weapons: no behavior bound for kind %s", kind))
	}
	return b
}

// SetBallistics 设置武器类型的子弹参数
func (r *Registry) SetBallistics(kind types.WeaponKind, b Ballistics) {
	r.ballistics[kind] = b
}

// Ballistics 返回武器类型的子弹参数；未设置或速度为 0 时返回 false
func (r *Registry) Ballistics(kind types.WeaponKind) (Ballistics, bool) {
	b, ok := r.ballistics[kind]
	if !ok || b.Speed <= 0 {
		return Ballistics{}, false
	}
	return b, true
}

// Kinds 按声明顺序返回已绑定的武器类型
func (r *Registry) Kinds() []types.WeaponKind {
	kinds := make([]types.WeaponKind, 0, len(r.behaviors))
	for _, kind := range types.AllWeaponKinds() {
		if _, ok := r.behaviors[kind]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// NewBehavior 根据调参创建对应武器类型的行为
func NewBehavior(kind types.WeaponKind, w config.WeaponTuning) (Behavior, error) {
	switch kind {
	case types.WeaponRevolver:
		return NewRevolver(w.ShotCost, w.FireInterval, w.BaseDamage, w.ReloadDuration, w.ReloadSpin), nil
	case types.WeaponSniper:
		return NewSniper(w.ShotCost, w.FireInterval, w.BaseDamage, w.ReloadDuration, w.ReloadSpin), nil
	case types.WeaponShotgun:
		return NewShotgun(w.ShotCost, w.FireInterval, w.BaseDamage, w.ShellInterval, w.ReloadSpin), nil
	}
	return nil, fmt.Errorf("weapon kind %s has no behavior implementation", kind)
}

// NewRegistryFromTuning 为调参中配置的每种武器绑定行为
func NewRegistryFromTuning(cfg *config.TuningConfig) (*Registry, error) {
	r := NewRegistry()
	for _, kind := range cfg.WeaponKinds() {
		w, _ := cfg.Weapon(kind)
		b, err := NewBehavior(kind, w)
		if err != nil {
			return nil, err
		}
		if err := r.Register(b); err != nil {
			return nil, err
		}
		r.SetBallistics(kind, Ballistics{Speed: w.BulletSpeed, Range: w.BulletRange})
	}
	return r, nil
}

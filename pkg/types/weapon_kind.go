package types

import "fmt"

// WeaponKind 定义武器的类型
// 每种武器在 weapons.Registry 中绑定一个换弹行为
type WeaponKind int

const (
	// WeaponRevolver 左轮：整个弹巢一次装满
	WeaponRevolver WeaponKind = iota
	// WeaponSniper 狙击枪：拉栓换弹，翻滚会打断
	WeaponSniper
	// WeaponShotgun 霰弹枪：逐发装填
	WeaponShotgun
)

var weaponKindNames = [...]string{
	WeaponRevolver: "revolver",
	WeaponSniper:   "sniper",
	WeaponShotgun:  "shotgun",
}

// AllWeaponKinds 按声明顺序返回全部武器类型
func AllWeaponKinds() []WeaponKind {
	kinds := make([]WeaponKind, len(weaponKindNames))
	for i := range weaponKindNames {
		kinds[i] = WeaponKind(i)
	}
	return kinds
}

// String 返回武器类型的配置名
func (k WeaponKind) String() string {
	if k >= 0 && int(k) < len(weaponKindNames) {
		return weaponKindNames[k]
	}
	return fmt.Sprintf("WeaponKind(%d)", int(k))
}

// ParseWeaponKind 将配置名转换为 WeaponKind
func ParseWeaponKind(name string) (WeaponKind, error) {
	for i, n := range weaponKindNames {
		if n == name {
			return WeaponKind(i), nil
		}
	}
	return WeaponRevolver, fmt.Errorf("unknown weapon kind %q", name)
}

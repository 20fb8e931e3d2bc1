package types

import "fmt"

// ItemKind 可拾取物品的种类（封闭枚举）
type ItemKind int

const (
	// ItemBandage 绷带
	ItemBandage ItemKind = iota
	// ItemGunpowder 火药
	ItemGunpowder
	// ItemScrap 废铁
	ItemScrap
	// ItemBattery 电池
	ItemBattery
)

var itemKindNames = [...]string{
	ItemBandage:   "bandage",
	ItemGunpowder: "gunpowder",
	ItemScrap:     "scrap",
	ItemBattery:   "battery",
}

// AllItemKinds 按声明顺序返回全部物品种类
// 拾取物的生成布局依赖这个顺序
func AllItemKinds() []ItemKind {
	kinds := make([]ItemKind, len(itemKindNames))
	for i := range itemKindNames {
		kinds[i] = ItemKind(i)
	}
	return kinds
}

// String 返回物品种类的配置名
func (k ItemKind) String() string {
	if k >= 0 && int(k) < len(itemKindNames) {
		return itemKindNames[k]
	}
	return fmt.Sprintf("ItemKind(%d)", int(k))
}

// ParseItemKind 将配置名转换为 ItemKind
func ParseItemKind(name string) (ItemKind, error) {
	for i, n := range itemKindNames {
		if n == name {
			return ItemKind(i), nil
		}
	}
	return ItemBandage, fmt.Errorf("unknown item kind %q", name)
}

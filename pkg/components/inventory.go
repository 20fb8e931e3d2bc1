package components

import "github.com/decker502/gunrunner/pkg/types"

// InventoryComponent 角色背包：物品种类到数量的映射
type InventoryComponent struct {
	counts map[types.ItemKind]int
}

// NewInventoryComponent 创建空背包
func NewInventoryComponent() *InventoryComponent {
	return &InventoryComponent{counts: make(map[types.ItemKind]int)}
}

// Add 增加一个物品
func (inv *InventoryComponent) Add(kind types.ItemKind) {
	if inv.counts == nil {
		inv.counts = make(map[types.ItemKind]int)
	}
	inv.counts[kind]++
}

// Count 返回某种物品的数量
func (inv *InventoryComponent) Count(kind types.ItemKind) int {
	return inv.counts[kind]
}

// Total 返回背包内物品总数
func (inv *InventoryComponent) Total() int {
	total := 0
	for _, n := range inv.counts {
		total += n
	}
	return total
}

// Snapshot 按物品种类顺序返回全部计数（包括 0）
func (inv *InventoryComponent) Snapshot() map[types.ItemKind]int {
	snapshot := make(map[types.ItemKind]int, len(inv.counts))
	for _, kind := range types.AllItemKinds() {
		snapshot[kind] = inv.counts[kind]
	}
	return snapshot
}

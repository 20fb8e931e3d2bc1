package entities

import (
	"math/rand"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// NewItemPickupEntity 在指定位置生成一个物品拾取物
func NewItemPickupEntity(em *ecs.EntityManager, item types.ItemKind, x, y, animOffset float64) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.PickupComponent{
		Kind:       components.PickupItem,
		Item:       item,
		AnimOffset: animOffset,
		BaseY:      y,
	})

	return id
}

// PickupColumnX 返回第 column 列（共 columns 列）拾取物的 X 坐标
// 整行以 X=0 为中心对称排列
func PickupColumnX(column, columns int, spacing float64) float64 {
	return -(float64(columns)*spacing)/2 + float64(column)*spacing + spacing/2
}

// SpawnPickupRow 关卡开始时按物品种类生成一行拾取物
// 每种物品占一列，同一列叠放 CopiesPerKind 个；相位偏移由 Seed 决定，保证可复现
//
// 返回: 按生成顺序排列的拾取物实体ID
func SpawnPickupRow(em *ecs.EntityManager, cfg config.PickupTuning) []ecs.EntityID {
	rng := rand.New(rand.NewSource(cfg.Seed))
	kinds := types.AllItemKinds()

	ids := make([]ecs.EntityID, 0, len(kinds)*cfg.CopiesPerKind)
	for column, item := range kinds {
		x := PickupColumnX(column, len(kinds), cfg.Spacing)
		for i := 0; i < cfg.CopiesPerKind; i++ {
			offset := rng.Float64() * 100
			ids = append(ids, NewItemPickupEntity(em, item, x, cfg.RowY, offset))
		}
	}
	return ids
}

package entities

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// NewWeaponEntity 创建一把弹匣装满的武器
// 武器是独立实体，由 owner 持有；owner 销毁时由 DeathSystem 一并销毁
//
// 弹药参数不合法时 panic：调参在加载时已校验，走到这里说明调用方绕过了校验
func NewWeaponEntity(em *ecs.EntityManager, kind types.WeaponKind, tuning config.WeaponTuning, owner ecs.EntityID) ecs.EntityID {
	ammo := &components.AmmoComponent{
		MagAmmo:  tuning.MagSize,
		MagSize:  tuning.MagSize,
		Ammo:     tuning.Reserve,
		Infinite: tuning.Infinite,
	}
	if err := ammo.Validate(); err != nil {
		panic(fmt.Sprintf("entities: weapon %s: %v", kind, err))
	}

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.WeaponComponent{
		Kind:  kind,
		Owner: owner,
	})
	ecs.AddComponent(em, id, ammo)

	return id
}

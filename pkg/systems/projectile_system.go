package systems

import (
	"log"
	"math"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/game"
)

// projectileSubstep 子弹每次碰撞检测之间最多前进的距离
// 大步长时分段检测，避免子弹穿过角色
const projectileSubstep = 4.0

// ProjectileSystem 移动子弹并处理子弹命中
//
// 每颗子弹：
//  1. 沿速度方向前进（不超过剩余射程），途中逐段做 AABB 检测
//  2. 命中第一个非主人、未死亡的角色时扣血、发出 EventActorHit 并销毁子弹
//  3. 射程耗尽时销毁子弹
//
// 必须在 WeaponSystem 之后、DeathSystem 之前运行：开火当帧子弹就会飞行，
// 被打死的角色在同一帧内由 DeathSystem 清理。
type ProjectileSystem struct {
	entityManager *ecs.EntityManager
	events        *game.EventQueue
}

// NewProjectileSystem 创建子弹系统
func NewProjectileSystem(em *ecs.EntityManager, events *game.EventQueue) *ProjectileSystem {
	return &ProjectileSystem{
		entityManager: em,
		events:        events,
	}
}

// Update 更新所有子弹
func (s *ProjectileSystem) Update(deltaTime float64) {
	bullets := ecs.GetEntitiesWith3[
		*components.ProjectileComponent,
		*components.PositionComponent,
		*components.VelocityComponent,
	](s.entityManager)

	for _, bulletID := range bullets {
		projectile, _ := ecs.GetComponent[*components.ProjectileComponent](s.entityManager, bulletID)
		position, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, bulletID)
		velocity, _ := ecs.GetComponent[*components.VelocityComponent](s.entityManager, bulletID)
		collision, ok := ecs.GetComponent[*components.CollisionComponent](s.entityManager, bulletID)
		if !ok {
			collision = &components.CollisionComponent{}
		}

		speed := math.Hypot(velocity.VX, velocity.VY)
		if speed == 0 || projectile.Remaining <= 0 {
			log.Printf("[ProjectileSystem] 子弹 %d 无法继续飞行，标记删除", bulletID)
			s.entityManager.DestroyEntity(bulletID)
			continue
		}
		travel := math.Min(speed*deltaTime, projectile.Remaining)
		if travel <= 0 {
			continue
		}

		// 本帧飞完剩余射程：按标记销毁，不依赖浮点累减恰好归零
		exhausted := travel >= projectile.Remaining
		dirX, dirY := velocity.VX/speed, velocity.VY/speed
		substeps := int(math.Ceil(travel / projectileSubstep))
		segment := travel / float64(substeps)

		hit := false
		for i := 0; i < substeps && !hit; i++ {
			position.X += dirX * segment
			position.Y += dirY * segment
			projectile.Remaining -= segment

			if target, ok := s.findTarget(projectile, position, collision); ok {
				s.applyHit(bulletID, projectile, target)
				hit = true
			}
		}
		if hit {
			continue
		}

		if exhausted || projectile.Remaining <= 0 {
			projectile.Remaining = 0
			log.Printf("[ProjectileSystem] 子弹 %d 射程耗尽 (X=%.1f, Y=%.1f)，标记删除", bulletID, position.X, position.Y)
			s.entityManager.DestroyEntity(bulletID)
		}
	}
}

// findTarget 按 ID 升序查找第一个与子弹重叠的角色
// 子弹的主人和已经死亡（等待 DeathSystem 清理）的角色不会被命中
func (s *ProjectileSystem) findTarget(projectile *components.ProjectileComponent, position *components.PositionComponent, collision *components.CollisionComponent) (ecs.EntityID, bool) {
	targets := ecs.GetEntitiesWith3[
		*components.ActorStatsComponent,
		*components.PositionComponent,
		*components.CollisionComponent,
	](s.entityManager)

	for _, targetID := range targets {
		if targetID == projectile.Owner {
			continue
		}
		stats, _ := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, targetID)
		if stats.IsDead() {
			continue
		}
		targetPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, targetID)
		targetCol, _ := ecs.GetComponent[*components.CollisionComponent](s.entityManager, targetID)
		if collision.Overlaps(position, targetCol, targetPos) {
			return targetID, true
		}
	}
	return 0, false
}

// applyHit 扣除目标生命值，发出通知并销毁子弹
func (s *ProjectileSystem) applyHit(bulletID ecs.EntityID, projectile *components.ProjectileComponent, target ecs.EntityID) {
	stats, _ := ecs.GetComponent[*components.ActorStatsComponent](s.entityManager, target)
	stats.TakeDamage(projectile.Damage)

	log.Printf("[ProjectileSystem] 子弹 %d 命中角色 %d (伤害: %.1f, 剩余生命: %.1f/%.1f)",
		bulletID, target, projectile.Damage, stats.CurrentHealth, stats.MaxHealth)

	s.events.Emit(game.Event{
		Type:       game.EventActorHit,
		Actor:      target,
		Source:     projectile.Owner,
		WeaponKind: projectile.Weapon,
		Damage:     projectile.Damage,
	})
	s.entityManager.DestroyEntity(bulletID)
}

package game

import (
	"fmt"

	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
)

// EventType 核心向外发出的通知类型
type EventType int

const (
	// EventPickupCollected 角色拾取了一个物品
	EventPickupCollected EventType = iota
	// EventShotFired 武器开火
	EventShotFired
	// EventReloadStarted 开始换弹
	EventReloadStarted
	// EventReloadFinished 换弹行为报告完成
	EventReloadFinished
	// EventReloadDiscarded 换弹目标武器已失效，换弹被丢弃
	EventReloadDiscarded
	// EventReloadAborted 换弹超过引擎兜底时长被强制终止
	EventReloadAborted
	// EventActorDied 角色死亡（角色和武器已被销毁）
	EventActorDied
	// EventActorHit 角色被子弹命中
	EventActorHit
)

// String 返回事件类型名称
func (t EventType) String() string {
	switch t {
	case EventPickupCollected:
		return "PickupCollected"
	case EventShotFired:
		return "ShotFired"
	case EventReloadStarted:
		return "ReloadStarted"
	case EventReloadFinished:
		return "ReloadFinished"
	case EventReloadDiscarded:
		return "ReloadDiscarded"
	case EventReloadAborted:
		return "ReloadAborted"
	case EventActorDied:
		return "ActorDied"
	case EventActorHit:
		return "ActorHit"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event 一条通知
// 不同类型只使用其中部分字段
type Event struct {
	Type   EventType
	Actor  ecs.EntityID // 相关角色
	Weapon ecs.EntityID // 相关武器（开火、换弹）
	Pickup ecs.EntityID // 被拾取的拾取物实体（已销毁）
	Source ecs.EntityID // EventActorHit 的开火角色

	Item       types.ItemKind   // EventPickupCollected
	WeaponKind types.WeaponKind // 开火、换弹
	Angle      float64          // EventShotFired 的射击角度
	Damage     float64          // EventShotFired / EventActorHit 的实际伤害
}

// String 返回便于日志阅读的描述
func (e Event) String() string {
	switch e.Type {
	case EventPickupCollected:
		return fmt.Sprintf("%s(item=%s, actor=%d)", e.Type, e.Item, e.Actor)
	case EventShotFired:
		return fmt.Sprintf("%s(actor=%d, weapon=%s, damage=%.1f)", e.Type, e.Actor, e.WeaponKind, e.Damage)
	case EventActorDied:
		return fmt.Sprintf("%s(actor=%d)", e.Type, e.Actor)
	case EventActorHit:
		return fmt.Sprintf("%s(actor=%d, by=%d, weapon=%s, damage=%.1f)", e.Type, e.Actor, e.Source, e.WeaponKind, e.Damage)
	default:
		return fmt.Sprintf("%s(actor=%d, weapon=%s)", e.Type, e.Actor, e.WeaponKind)
	}
}

// EventQueue 按发出顺序收集一帧内的通知
// 单线程使用：系统在 Update 中 Emit，编排层在帧末 Drain
type EventQueue struct {
	events []Event
}

// NewEventQueue 创建空队列
func NewEventQueue() *EventQueue {
	return &EventQueue{events: make([]Event, 0, 16)}
}

// Emit 追加一条通知
func (q *EventQueue) Emit(e Event) {
	q.events = append(q.events, e)
}

// Len 返回尚未取走的通知数量
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Drain 取走全部通知并清空队列
func (q *EventQueue) Drain() []Event {
	drained := make([]Event, q.Len())
	copy(drained, q.events)
	q.events = q.events[:0]
	return drained
}

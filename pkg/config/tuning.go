package config

import (
	"fmt"
	"os"

	"github.com/decker502/gunrunner/pkg/embedded"
	"github.com/decker502/gunrunner/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultTuningPath 内置调参文件路径
const DefaultTuningPath = "data/tuning.yaml"

// MaxLocalPlayers 本地玩家上限：一名键鼠玩家和一名手柄玩家
const MaxLocalPlayers = 2

// TuningConfig 战斗/动画核心的全部调参
//
// 配置文件位置: data/tuning.yaml
type TuningConfig struct {
	Animation      AnimationTuning         `yaml:"animation"`
	Actor          ActorTuning             `yaml:"actor"`
	Reload         ReloadTuning            `yaml:"reload"`
	StartingWeapon string                  `yaml:"startingWeapon"`
	Weapons        map[string]WeaponTuning `yaml:"weapons"`
	Pickup         PickupTuning            `yaml:"pickup"`
	Arena          ArenaTuning             `yaml:"arena"`
}

// AnimationTuning 动画状态机配置
type AnimationTuning struct {
	// FrameDuration 每帧持续时间（秒）
	FrameDuration float64 `yaml:"frameDuration"`

	// States 动作状态名到动画条目的映射，必须覆盖全部动作状态
	States map[string]AnimationEntry `yaml:"states"`
}

// AnimationEntry 单个动作状态的动画条目
type AnimationEntry struct {
	Atlas string `yaml:"atlas"` // 图集句柄
	First int    `yaml:"first"` // 起始帧（含）
	Last  int    `yaml:"last"`  // 结束帧（含）
	Flip  string `yaml:"flip"`  // none / x / y
}

// ActorTuning 角色默认属性
type ActorTuning struct {
	Speed            float64 `yaml:"speed"`
	MaxHealth        float64 `yaml:"maxHealth"`
	DamageMultiplier float64 `yaml:"damageMultiplier"`
	DamageAdded      float64 `yaml:"damageAdded"`
	RollDuration     float64 `yaml:"rollDuration"`
	RollSpeed        float64 `yaml:"rollSpeed"`
	HitWidth         float64 `yaml:"hitWidth"`  // 受击盒宽度，0 表示不会被子弹命中
	HitHeight        float64 `yaml:"hitHeight"` // 受击盒高度
}

// ReloadTuning 换弹引擎配置
type ReloadTuning struct {
	// MaxDuration 引擎级兜底超时（秒），0 表示不启用
	MaxDuration float64 `yaml:"maxDuration"`
}

// WeaponTuning 单种武器的参数
type WeaponTuning struct {
	MagSize        int     `yaml:"magSize"`        // 弹匣容量
	Reserve        int     `yaml:"reserve"`        // 初始备弹
	Infinite       bool    `yaml:"infinite"`       // 是否无限备弹
	ShotCost       int     `yaml:"shotCost"`       // 每次射击消耗
	ReloadDuration float64 `yaml:"reloadDuration"` // 整体换弹时长（左轮、狙击）
	ShellInterval  float64 `yaml:"shellInterval"`  // 逐发装填间隔（霰弹枪）
	ReloadSpin     float64 `yaml:"reloadSpin"`     // 换弹期间武器旋转的总角度（弧度）
	FireInterval   float64 `yaml:"fireInterval"`   // 按住开火时的连发间隔
	BaseDamage     float64 `yaml:"baseDamage"`     // 基础伤害
	BulletSpeed    float64 `yaml:"bulletSpeed"`    // 子弹速度，0 表示开火不生成子弹
	BulletRange    float64 `yaml:"bulletRange"`    // 子弹射程
}

// PickupTuning 拾取物配置
type PickupTuning struct {
	Range         float64 `yaml:"range"`         // 拾取半径
	BobFrequency  float64 `yaml:"bobFrequency"`  // 漂浮频率（弧度/秒）
	BobAmplitude  float64 `yaml:"bobAmplitude"`  // 漂浮幅度
	ZBase         float64 `yaml:"zBase"`         // 绘制层级基准
	Spacing       float64 `yaml:"spacing"`       // 生成时的横向间距
	RowY          float64 `yaml:"rowY"`          // 生成行的 Y 坐标
	CopiesPerKind int     `yaml:"copiesPerKind"` // 每种物品生成的数量
	Seed          int64   `yaml:"seed"`          // 相位偏移随机种子
}

// ArenaTuning 标准场地配置
type ArenaTuning struct {
	// Spawns 本地玩家的出生点，依次分配给键鼠玩家和手柄玩家；为空时只在原点生成一名玩家
	Spawns []SpawnPoint `yaml:"spawns"`
}

// SpawnPoint 出生点（世界坐标）
type SpawnPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// SpawnPoints 返回出生点列表，未配置时返回原点
func (a ArenaTuning) SpawnPoints() []SpawnPoint {
	if len(a.Spawns) == 0 {
		return []SpawnPoint{{X: 0, Y: 0}}
	}
	return a.Spawns
}

// LoadTuning 从文件系统加载调参文件
//
// 参数:
//   - path: 配置文件路径（如 "data/tuning.yaml"）
//
// 返回:
//   - *TuningConfig: 加载并校验后的配置
//   - error: 读取、解析或校验失败时返回错误
func LoadTuning(path string) (*TuningConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning config %s: %w", path, err)
	}
	cfg, err := ParseTuning(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// LoadEmbeddedTuning 从嵌入资源加载内置调参文件
func LoadEmbeddedTuning() (*TuningConfig, error) {
	data, err := embedded.ReadFile(DefaultTuningPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read embedded tuning config: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning 解析并校验 YAML 调参内容
func ParseTuning(data []byte) (*TuningConfig, error) {
	var cfg TuningConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse tuning YAML: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid tuning config: %w", err)
	}
	return &cfg, nil
}

// Validate 验证配置有效性
//
// 检查：
//   - 帧时长为正，动画表覆盖全部动作状态且帧范围合法
//   - 每种武器名可识别，弹匣容量为正，换弹参数与武器类型匹配
//   - 初始武器已配置
//   - 拾取半径为正
//   - 出生点不超过本地玩家上限
func (c *TuningConfig) Validate() error {
	if c.Animation.FrameDuration <= 0 {
		return fmt.Errorf("animation.frameDuration must be positive, got %v", c.Animation.FrameDuration)
	}
	for name := range c.Animation.States {
		if _, err := types.ParseAnimationState(name); err != nil {
			return fmt.Errorf("animation.states: %w", err)
		}
	}
	for _, state := range types.AllAnimationStates() {
		entry, ok := c.Animation.States[state.String()]
		if !ok {
			return fmt.Errorf("animation.states: missing state %q", state.String())
		}
		if entry.Atlas == "" {
			return fmt.Errorf("animation.states.%s: atlas is required", state)
		}
		if entry.First < 0 || entry.Last < entry.First {
			return fmt.Errorf("animation.states.%s: invalid frame range [%d, %d]", state, entry.First, entry.Last)
		}
		switch entry.Flip {
		case "", "none", "x", "y":
		default:
			return fmt.Errorf("animation.states.%s: unknown flip %q", state, entry.Flip)
		}
	}

	if c.Actor.MaxHealth <= 0 {
		return fmt.Errorf("actor.maxHealth must be positive, got %v", c.Actor.MaxHealth)
	}
	if c.Actor.HitWidth < 0 || c.Actor.HitHeight < 0 {
		return fmt.Errorf("actor hitbox cannot be negative, got %vx%v", c.Actor.HitWidth, c.Actor.HitHeight)
	}
	if c.Reload.MaxDuration < 0 {
		return fmt.Errorf("reload.maxDuration cannot be negative, got %v", c.Reload.MaxDuration)
	}

	if len(c.Weapons) == 0 {
		return fmt.Errorf("at least one weapon is required")
	}
	for name, w := range c.Weapons {
		kind, err := types.ParseWeaponKind(name)
		if err != nil {
			return fmt.Errorf("weapons: %w", err)
		}
		if w.MagSize <= 0 {
			return fmt.Errorf("weapon %s: magSize must be positive, got %d", name, w.MagSize)
		}
		if w.Reserve < 0 {
			return fmt.Errorf("weapon %s: reserve cannot be negative, got %d", name, w.Reserve)
		}
		if w.ShotCost <= 0 {
			return fmt.Errorf("weapon %s: shotCost must be positive, got %d", name, w.ShotCost)
		}
		if w.FireInterval < 0 {
			return fmt.Errorf("weapon %s: fireInterval cannot be negative, got %v", name, w.FireInterval)
		}
		if w.BulletSpeed < 0 || w.BulletRange < 0 {
			return fmt.Errorf("weapon %s: bullet speed and range cannot be negative, got %v/%v", name, w.BulletSpeed, w.BulletRange)
		}
		switch kind {
		case types.WeaponShotgun:
			if w.ShellInterval <= 0 {
				return fmt.Errorf("weapon %s: shellInterval must be positive, got %v", name, w.ShellInterval)
			}
		default:
			if w.ReloadDuration <= 0 {
				return fmt.Errorf("weapon %s: reloadDuration must be positive, got %v", name, w.ReloadDuration)
			}
		}
	}
	if _, ok := c.Weapons[c.StartingWeapon]; !ok {
		return fmt.Errorf("startingWeapon %q is not configured", c.StartingWeapon)
	}

	if c.Pickup.Range <= 0 {
		return fmt.Errorf("pickup.range must be positive, got %v", c.Pickup.Range)
	}
	if c.Pickup.CopiesPerKind < 0 {
		return fmt.Errorf("pickup.copiesPerKind cannot be negative, got %d", c.Pickup.CopiesPerKind)
	}
	if len(c.Arena.Spawns) > MaxLocalPlayers {
		return fmt.Errorf("arena.spawns: at most %d local players, got %d", MaxLocalPlayers, len(c.Arena.Spawns))
	}
	return nil
}

// Weapon 获取指定武器类型的参数
// 如果未配置，返回零值和 false
func (c *TuningConfig) Weapon(kind types.WeaponKind) (WeaponTuning, bool) {
	w, ok := c.Weapons[kind.String()]
	return w, ok
}

// WeaponKinds 按声明顺序返回已配置的武器类型
func (c *TuningConfig) WeaponKinds() []types.WeaponKind {
	kinds := make([]types.WeaponKind, 0, len(c.Weapons))
	for _, kind := range types.AllWeaponKinds() {
		if _, ok := c.Weapons[kind.String()]; ok {
			kinds = append(kinds, kind)
		}
	}
	return kinds
}

// StartingWeaponKind 返回初始武器类型
func (c *TuningConfig) StartingWeaponKind() types.WeaponKind {
	kind, err := types.ParseWeaponKind(c.StartingWeapon)
	if err != nil {
		// Validate 已保证配置合法
		panic(fmt.Sprintf("tuning: startingWeapon %q: %v", c.StartingWeapon, err))
	}
	return kind
}

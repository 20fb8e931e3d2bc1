// Package replay 录制和回放战斗核心的输入序列
//
// 核心是确定性的：同一份调参加上同一串 (dt, 意图) 总会得到同样的结果，
// 因此录像只需要保存输入，不保存任何状态。
package replay

import (
	"fmt"
	"os"
	"sort"

	"github.com/decker502/gunrunner/pkg/components"
	"github.com/decker502/gunrunner/pkg/ecs"
	"github.com/decker502/gunrunner/pkg/types"
	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// Recording 一段录像
type Recording struct {
	ID     string  `yaml:"id"`
	Tuning string  `yaml:"tuning"` // 调参文件路径，空表示内置调参
	Seed   int64   `yaml:"seed"`   // 录制时拾取物的随机种子
	Frames []Frame `yaml:"frames"`
}

// Frame 一帧输入
type Frame struct {
	Dt      float64       `yaml:"dt"`
	Intents []ActorIntent `yaml:"intents,omitempty"`
}

// ActorIntent 单个角色一帧的意图
// 只保存非零字段，保持录像文件紧凑
type ActorIntent struct {
	Actor ecs.EntityID `yaml:"actor"`

	Fire        bool    `yaml:"fire,omitempty"`
	FirePressed bool    `yaml:"firePressed,omitempty"`
	Reload      bool    `yaml:"reload,omitempty"`
	Interact    bool    `yaml:"interact,omitempty"`
	Roll        bool    `yaml:"roll,omitempty"`
	MoveX       float64 `yaml:"moveX,omitempty"`
	MoveY       float64 `yaml:"moveY,omitempty"`
	Aim         float64 `yaml:"aim,omitempty"`
	Animation   string  `yaml:"animation,omitempty"`
}

// toRecord 把意图组件转换为录像条目
func toRecord(actor ecs.EntityID, in components.InputIntentComponent) ActorIntent {
	rec := ActorIntent{
		Actor:       actor,
		Fire:        in.FireHeld,
		FirePressed: in.FireJustPressed,
		Reload:      in.ReloadHeld,
		Interact:    in.InteractJustPressed,
		Roll:        in.RollJustPressed,
		MoveX:       in.MoveX,
		MoveY:       in.MoveY,
		Aim:         in.AimAngle,
	}
	if in.AnimationState != types.AnimIdle {
		rec.Animation = in.AnimationState.String()
	}
	return rec
}

// Intent 把录像条目还原为意图组件
func (a ActorIntent) Intent() (components.InputIntentComponent, error) {
	state := types.AnimIdle
	if a.Animation != "" {
		parsed, err := types.ParseAnimationState(a.Animation)
		if err != nil {
			return components.InputIntentComponent{}, fmt.Errorf("actor %d: %w", a.Actor, err)
		}
		state = parsed
	}
	return components.InputIntentComponent{
		FireHeld:            a.Fire,
		FireJustPressed:     a.FirePressed,
		ReloadHeld:          a.Reload,
		InteractJustPressed: a.Interact,
		RollJustPressed:     a.Roll,
		MoveX:               a.MoveX,
		MoveY:               a.MoveY,
		AimAngle:            a.Aim,
		AnimationState:      state,
	}, nil
}

// DecodeIntents 还原一帧内全部角色的意图
func (f Frame) DecodeIntents() (map[ecs.EntityID]components.InputIntentComponent, error) {
	out := make(map[ecs.EntityID]components.InputIntentComponent, len(f.Intents))
	for _, rec := range f.Intents {
		intent, err := rec.Intent()
		if err != nil {
			return nil, err
		}
		out[rec.Actor] = intent
	}
	return out, nil
}

// Duration 返回录像总时长（秒）
func (r *Recording) Duration() float64 {
	total := 0.0
	for _, f := range r.Frames {
		total += f.Dt
	}
	return total
}

// Recorder 逐帧收集输入
type Recorder struct {
	recording Recording
}

// NewRecorder 创建录制器，每份录像有唯一ID
func NewRecorder(tuningPath string, seed int64) *Recorder {
	return &Recorder{recording: Recording{
		ID:     uuid.NewString(),
		Tuning: tuningPath,
		Seed:   seed,
	}}
}

// Capture 记录一帧输入；角色按 ID 升序保存
func (r *Recorder) Capture(dt float64, intents map[ecs.EntityID]components.InputIntentComponent) {
	actors := make([]ecs.EntityID, 0, len(intents))
	for id := range intents {
		actors = append(actors, id)
	}
	sort.Slice(actors, func(i, j int) bool { return actors[i] < actors[j] })

	frame := Frame{Dt: dt}
	for _, id := range actors {
		frame.Intents = append(frame.Intents, toRecord(id, intents[id]))
	}
	r.recording.Frames = append(r.recording.Frames, frame)
}

// Recording 返回目前为止录制的内容
func (r *Recorder) Recording() *Recording {
	return &r.recording
}

// Save 把录像写入 YAML 文件
func (r *Recorder) Save(path string) error {
	return Save(path, &r.recording)
}

// Save 把录像写入 YAML 文件
func Save(path string, rec *Recording) error {
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal recording: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write recording %s: %w", path, err)
	}
	return nil
}

// Load 读取 YAML 录像文件
func Load(path string) (*Recording, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording %s: %w", path, err)
	}
	var rec Recording
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("failed to parse recording %s: %w", path, err)
	}
	if _, err := uuid.Parse(rec.ID); err != nil {
		return nil, fmt.Errorf("recording %s has invalid id %q: %w", path, rec.ID, err)
	}
	for i, f := range rec.Frames {
		if f.Dt < 0 {
			return nil, fmt.Errorf("recording %s: frame %d has negative dt %v", path, i, f.Dt)
		}
	}
	return &rec, nil
}

// replay 在无窗口环境下回放录像，逐帧打印核心发出的事件
//
// 用法:
//
//	go run ./cmd/replay -file session.yaml
//	go run ./cmd/replay -file session.yaml -tuning data/tuning.yaml -quiet
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/decker502/gunrunner/data"
	"github.com/decker502/gunrunner/pkg/config"
	"github.com/decker502/gunrunner/pkg/embedded"
	"github.com/decker502/gunrunner/pkg/game"
	"github.com/decker502/gunrunner/pkg/replay"
	"github.com/decker502/gunrunner/pkg/scenes"
	"github.com/decker502/gunrunner/pkg/types"
)

var (
	file       = flag.String("file", "", "录像文件路径（必填）")
	tuningPath = flag.String("tuning", "", "调参文件路径（默认使用录像中记录的路径）")
	quiet      = flag.Bool("quiet", false, "只打印最终汇总")
	verbose    = flag.Bool("verbose", false, "显示系统日志")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))

	frameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Width(12)

	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#5F5F87")).
			Padding(0, 1)

	eventStyles = map[game.EventType]lipgloss.Style{
		game.EventShotFired:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")),
		game.EventPickupCollected: lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")),
		game.EventReloadStarted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")),
		game.EventReloadFinished:  lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF")).Bold(true),
		game.EventActorHit:        lipgloss.NewStyle().Foreground(lipgloss.Color("#FF8700")),
		game.EventActorDied:       lipgloss.NewStyle().Foreground(lipgloss.Color("#FF0000")).Bold(true),
	}

	defaultEventStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD75F"))
)

func main() {
	flag.Parse()
	if *file == "" {
		flag.Usage()
		os.Exit(2)
	}
	if !*verbose {
		log.SetOutput(io.Discard)
	}
	embedded.Init(data.FS)

	if err := run(*file, *tuningPath, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "replay:", err)
		os.Exit(1)
	}
}

func run(path, tuningOverride string, out io.Writer) error {
	rec, err := replay.Load(path)
	if err != nil {
		return err
	}

	if tuningOverride == "" {
		tuningOverride = rec.Tuning
	}
	if tuningOverride == "" {
		tuningOverride = config.DefaultTuningPath
	}
	tuning, err := loadTuning(tuningOverride)
	if err != nil {
		return err
	}
	// 拾取物相位依赖录制时的种子
	tuning.Pickup.Seed = rec.Seed

	sim, _, err := scenes.NewArena(tuning)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Replay %s  (%d frames, %.2fs, tuning %s)",
		rec.ID, len(rec.Frames), rec.Duration(), tuningOverride)))

	counts := make(map[game.EventType]int)
	err = replay.Play(sim, rec, func(index int, frame replay.Frame, events []game.Event) {
		for _, e := range events {
			counts[e.Type]++
			if *quiet {
				continue
			}
			fmt.Fprintln(out, frameStyle.Render(fmt.Sprintf("#%d", index))+renderEvent(e))
		}
	})
	if err != nil {
		return err
	}

	fmt.Fprintln(out, summaryStyle.Render(summary(sim, counts)))
	return nil
}

// loadTuning 从文件系统加载调参
// 录像通常记录内置路径 data/tuning.yaml；当前目录下没有这个文件时改用内置调参
func loadTuning(path string) (*config.TuningConfig, error) {
	tuning, err := config.LoadTuning(path)
	if err == nil {
		return tuning, nil
	}
	if filepath.ToSlash(filepath.Clean(path)) != config.DefaultTuningPath || !embedded.IsInitialized() {
		return nil, err
	}
	log.Printf("[Replay] %v，改用内置调参", err)
	return config.LoadEmbeddedTuning()
}

func renderEvent(e game.Event) string {
	style, ok := eventStyles[e.Type]
	if !ok {
		style = defaultEventStyle
	}
	return style.Render(e.String())
}

// summary 汇总事件计数和存活角色的最终状态
func summary(sim *scenes.Simulation, counts map[game.EventType]int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "frames %d, elapsed %.2fs\n", sim.Frame(), sim.Elapsed())

	eventTypes := make([]game.EventType, 0, len(counts))
	for t := range counts {
		eventTypes = append(eventTypes, t)
	}
	sort.Slice(eventTypes, func(i, j int) bool { return eventTypes[i] < eventTypes[j] })
	for _, t := range eventTypes {
		fmt.Fprintf(&b, "%-16s %d\n", t, counts[t])
	}

	actors := sim.Actors()
	if len(actors) == 0 {
		b.WriteString("no surviving actors")
		return b.String()
	}
	for i, id := range actors {
		state, ok := sim.ActorState(id)
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "actor %d at (%.1f, %.1f) hp %.0f/%.0f %s %d/%d",
			state.ID, state.X, state.Y, state.Health, state.MaxHealth, state.Weapon, state.MagAmmo, state.MagSize)
		if state.Infinite {
			b.WriteString(" +inf")
		} else {
			fmt.Fprintf(&b, " +%d", state.Ammo)
		}
		for _, kind := range types.AllItemKinds() {
			if n := state.Inventory[kind]; n > 0 {
				fmt.Fprintf(&b, " %s=%d", kind, n)
			}
		}
		if i < len(actors)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

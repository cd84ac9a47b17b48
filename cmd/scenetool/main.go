// scenetool is a CLI utility for inspecting model manifests and camera paths.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/Faultbox/scenebox/internal/assets"
	"github.com/Faultbox/scenebox/internal/config"
	"github.com/Faultbox/scenebox/internal/engine/animation"
	"github.com/Faultbox/scenebox/internal/engine/scene"
	"github.com/Faultbox/scenebox/pkg/math"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "validate", "check":
		cmdValidate(args)
	case "path":
		cmdPath(args)
	case "clip":
		cmdClip(args)
	case "config":
		cmdConfig(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`scenetool - scenebox manifest and path utility

Usage:
  scenetool <command> [options]

Commands:
  info <model.yaml>                        Show node tree and clips
  validate <model.yaml>...                 Load manifests concurrently and report errors
  path [--config file] [--steps N]         Sample every configured path
  clip <model.yaml> [--steps N] [--dt s]   Sample clip playback on the model root
  config [--config file] [--out path]      Print the resolved config, or write it
         [--install]                       (--install writes to the user config dir)

Examples:
  scenetool info assets/Robot.yaml
  scenetool validate assets/*.yaml
  scenetool path --config scenebox.yaml --steps 20
  scenetool clip assets/Robot.yaml --dt 0.25
  scenetool config --config scenebox.yaml --install`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool info <model.yaml>")
		os.Exit(1)
	}

	model := loadModel(args[0])

	fmt.Printf("Model: %s\n", model.Name)
	fmt.Printf("Nodes: %d\n", model.Count())
	fmt.Println()
	printNode(model.Root, 0)

	if len(model.Clips) == 0 {
		return
	}
	fmt.Println()
	fmt.Println("Clips:")
	for _, clip := range model.Clips {
		fmt.Printf("  %-16s %6.2fs  %-8s %d tracks\n", clip.Name, clip.Duration, clip.Loop, len(clip.Tracks))
		for _, tr := range clip.Tracks {
			target := tr.Target
			if target == "" {
				target = model.Root.Name
			}
			fmt.Printf("    %-14s %-9s %d keys\n", target, tr.Path, len(tr.Times))
		}
	}
}

func printNode(obj *scene.Object, depth int) {
	hidden := ""
	if !obj.Visible {
		hidden = " (hidden)"
	}
	fmt.Printf("%s%s  pos=%s%s\n", strings.Repeat("  ", depth), obj.Name, fmtVec(obj.Position), hidden)
	for _, child := range obj.Children() {
		printNode(child, depth+1)
	}
}

func cmdValidate(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool validate <model.yaml>...")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := assets.NewLoader("").ValidateAll(ctx, args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", r.Path, r.Err)
			continue
		}
		fmt.Printf("ok    %s (%s, %d nodes, %d clips)\n", r.Path, r.Model.Name, r.Model.Count(), len(r.Model.Clips))
	}

	fmt.Printf("\n%d/%d manifests valid\n", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}

func cmdPath(args []string) {
	fs := flag.NewFlagSet("path", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file with paths")
	steps := fs.Int("steps", 10, "Number of ticks to sample")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	if len(cfg.Paths) == 0 {
		fmt.Println("No paths configured")
		return
	}

	graph := scene.New()
	table := animation.NewPathTable()
	for _, p := range cfg.Paths {
		graph.Add(scene.NewObject(p.Object))
		table.Register(p.Object, p.Curve())
	}

	lookahead := cfg.Animation.Lookahead
	if lookahead == 0 {
		lookahead = animation.DefaultLookahead
	}

	for _, name := range table.Names() {
		entry, _ := table.Entry(name)
		obj := graph.ObjectByName(name)
		fmt.Printf("%s (speed %.4f, lookahead %.4f)\n", name, cfg.Animation.PathSpeed, lookahead)
		fmt.Printf("  %5s  %8s  %-26s  %s\n", "tick", "progress", "position", "rotation (deg)")
		for i := 1; i <= *steps; i++ {
			animation.Traverse(graph, table, name, cfg.Animation.PathSpeed, lookahead)
			fmt.Printf("  %5d  %8.4f  %-26s  %s\n", i, entry.Progress, fmtVec(obj.Position), fmtDeg(obj.Rotation))
		}
	}
}

func cmdClip(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: scenetool clip <model.yaml> [--steps N] [--dt s]")
		os.Exit(1)
	}

	fs := flag.NewFlagSet("clip", flag.ExitOnError)
	steps := fs.Int("steps", 8, "Number of samples")
	dt := fs.Float64("dt", 0.5, "Seconds between samples")
	fs.Parse(args[1:])

	model := loadModel(args[0])
	if len(model.Clips) == 0 {
		fmt.Printf("%s has no clips\n", model.Name)
		return
	}

	mixer := animation.NewMixer(model.Root)
	for _, clip := range model.Clips {
		mixer.ClipAction(clip).Play(0)
	}

	fmt.Printf("%s: %d clips on %d nodes\n", model.Name, len(model.Clips), model.Count())
	for i := 0; i <= *steps; i++ {
		elapsed := float64(i) * *dt
		mixer.Update(elapsed)
		fmt.Printf("t=%6.2fs\n", elapsed)
		model.Root.Traverse(func(obj *scene.Object) {
			fmt.Printf("  %-14s pos=%s rot=%s scale=%s\n", obj.Name, fmtVec(obj.Position), fmtDeg(obj.Rotation), fmtVec(obj.Scale))
		})
	}
}

func cmdConfig(args []string) {
	fs := flag.NewFlagSet("config", flag.ExitOnError)
	configPath := fs.String("config", "", "Config file to start from")
	out := fs.String("out", "", "Write the config to this path")
	install := fs.Bool("install", false, "Write the config to the user config directory")
	fs.Parse(args)

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.LoadFile(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}

	switch {
	case *install:
		path, err := cfg.Save()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", path)
	case *out != "":
		if err := cfg.SaveTo(*out); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Wrote %s\n", *out)
	default:
		data, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		os.Stdout.Write(data)
	}
}

func loadModel(path string) *assets.Model {
	models, err := assets.NewLoader("").LoadAll(context.Background(), []string{path})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return models[0]
}

func fmtVec(v math.Vec3) string {
	return fmt.Sprintf("(%.2f, %.2f, %.2f)", v.X, v.Y, v.Z)
}

func fmtDeg(e math.Euler) string {
	return fmt.Sprintf("(%.1f, %.1f, %.1f)", math.RadToDeg(e.X), math.RadToDeg(e.Y), math.RadToDeg(e.Z))
}

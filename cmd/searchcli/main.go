// Command searchcli runs grid searches from the terminal without a server.
//
// It loads maps from a directory, executes one or more algorithms against
// them, and prints the path, statistics, and an optional ASCII or PNG
// rendering of the result.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/pvera/gridpath/pathfind/mapstore"
	"github.com/pvera/gridpath/pathfind/render"
	"github.com/pvera/gridpath/pathfind/search"
)

func main() {
	cmd := &cli.Command{
		Name:  "searchcli",
		Usage: "run grid search algorithms against map files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "map-dir",
				Value: "assets/maps",
				Usage: "directory containing map files",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run one algorithm on a map",
				ArgsUsage: "<algorithm> <map>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "depth-limit",
						Value: 0,
						Usage: "depth bound, only consulted by dls",
					},
					&cli.StringFlag{
						Name:  "format",
						Value: "ascii",
						Usage: "output rendering: ascii, png or none",
					},
					&cli.StringFlag{
						Name:  "out",
						Value: "",
						Usage: "output file for png rendering",
					},
					&cli.BoolFlag{
						Name:  "trace",
						Usage: "include expanded states in the rendering",
					},
				},
				Action: runAction,
			},
			{
				Name:      "compare",
				Usage:     "run several algorithms on one map side by side",
				ArgsUsage: "<map>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "algorithms",
						Value: "",
						Usage: "comma-separated algorithm names (empty means all)",
					},
					&cli.IntFlag{
						Name:  "depth-limit",
						Value: 0,
						Usage: "depth bound, only consulted by dls",
					},
				},
				Action: compareAction,
			},
			{
				Name:   "maps",
				Usage:  "list maps in the map directory",
				Action: mapsAction,
			},
			{
				Name:   "algorithms",
				Usage:  "list registered algorithm names",
				Action: algorithmsAction,
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 2 {
		return fmt.Errorf("usage: searchcli run <algorithm> <map>")
	}
	algorithm := cmd.Args().Get(0)
	mapName := cmd.Args().Get(1)

	manager, err := mapstore.NewManager(cmd.String("map-dir"))
	if err != nil {
		return err
	}

	g, err := manager.LoadMap(mapName)
	if err != nil {
		return err
	}

	registry := search.Default()
	opts := search.Options{DepthLimit: cmd.Int("depth-limit")}

	start := time.Now()
	result, err := registry.Run(algorithm, g, opts)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	if result.Found {
		fmt.Printf("Path found: cost %v, %d edges\n", result.Cost, result.PathLen())
		fmt.Printf("Path: %s\n", formatPath(result))
	} else {
		fmt.Println("No path found")
	}
	fmt.Printf("Expanded: %d states | Frontier max: %d | Elapsed: %s\n",
		result.Expanded, result.FrontierMax, elapsed)

	overlay := render.Overlay{Path: result.Path}
	if cmd.Bool("trace") {
		overlay.Trace = result.Trace
	}

	switch cmd.String("format") {
	case "ascii":
		fmt.Println()
		fmt.Println(render.ASCII(g, overlay))
	case "png":
		out := cmd.String("out")
		if out == "" {
			out = mapName + ".png"
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := render.PNG(f, g, overlay); err != nil {
			return err
		}
		fmt.Printf("Wrote %s\n", out)
	case "none":
	default:
		return fmt.Errorf("unknown format %q: use ascii, png or none", cmd.String("format"))
	}

	return nil
}

func compareAction(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() < 1 {
		return fmt.Errorf("usage: searchcli compare <map>")
	}
	mapName := cmd.Args().Get(0)

	manager, err := mapstore.NewManager(cmd.String("map-dir"))
	if err != nil {
		return err
	}

	g, err := manager.LoadMap(mapName)
	if err != nil {
		return err
	}

	registry := search.Default()
	algorithms := registry.Names()
	if list := cmd.String("algorithms"); list != "" {
		algorithms = strings.Split(list, ",")
	}

	opts := search.Options{DepthLimit: cmd.Int("depth-limit")}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "algo\tfound\tcost\tpathlen\texpanded\tfrontier\telapsed")
	for _, name := range algorithms {
		name = strings.TrimSpace(name)
		start := time.Now()
		result, err := registry.Run(name, g, opts)
		elapsed := time.Since(start)
		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\n", name, err)
			continue
		}
		fmt.Fprintf(w, "%s\t%v\t%.1f\t%d\t%d\t%d\t%s\n",
			name, result.Found, result.Cost, result.PathLen(),
			result.Expanded, result.FrontierMax, elapsed)
	}
	return w.Flush()
}

func mapsAction(ctx context.Context, cmd *cli.Command) error {
	manager, err := mapstore.NewManager(cmd.String("map-dir"))
	if err != nil {
		return err
	}

	maps, err := manager.ListMaps()
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "map\tsize\tstart\tgoal\tobstacles")
	for _, m := range maps {
		fmt.Fprintf(w, "%s\t%dx%d\t(%d,%d)\t(%d,%d)\t%d\n",
			m.MapID, m.Height, m.Width,
			m.Start.Row, m.Start.Col, m.Goal.Row, m.Goal.Col, m.Obstacles)
	}
	return w.Flush()
}

func algorithmsAction(ctx context.Context, cmd *cli.Command) error {
	for _, name := range search.Default().Names() {
		fmt.Println(name)
	}
	return nil
}

// formatPath renders a path as "(r,c) -> (r,c) -> ...".
func formatPath(result *search.Result) string {
	var b strings.Builder
	for i, s := range result.Path {
		if i > 0 {
			b.WriteString(" -> ")
		}
		fmt.Fprintf(&b, "(%d,%d)", s.Row, s.Col)
	}
	return b.String()
}

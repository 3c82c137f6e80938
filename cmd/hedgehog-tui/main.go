package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/ubigu/hedgehog-map/internal/client"
	"github.com/ubigu/hedgehog-map/internal/ui"
)

func main() {
	var (
		configPath = flag.String("config", "hedgehog.yaml", "path to YAML settings")
		baseURL    = flag.String("url", "", "API base URL (overrides base_url)")
		basemap    = flag.String("basemap", "", "EPSG:3067 shapefile drawn under the markers (overrides basemap)")
	)
	flag.Parse()

	cfg, err := ui.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *baseURL != "" {
		cfg.BaseURL = *baseURL
	}
	if *basemap != "" {
		cfg.Basemap = *basemap
	}

	if os.Getenv("HEDGEHOG_DEBUG") != "" {
		f, err := tea.LogToFile("hedgehog-tui.log", "debug")
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		defer f.Close()
	}

	var bm *ui.Basemap
	if cfg.Basemap != "" {
		bm, err = ui.LoadBasemap(cfg.Basemap)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}

	app := ui.NewApp(client.New(cfg.BaseURL), cfg, bm)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/term"
)

const version = "0.1.0"

func main() {
	configPath := flag.String("config", "", "Config file (default ~/.mindtree.yaml)")
	dataPath := flag.String("data", "", "Initial mind map, JSON or YAML (default: bundled map)")
	exportPaths := flag.String("export", "", "Comma-separated files to export (.png, .svg, .txt), then exit")
	printLayout := flag.Bool("layout", false, "Print the layout and view window as JSON, then exit")
	reset := flag.Bool("reset", false, "Discard the stored mind map before starting")
	showVersion := flag.Bool("version", false, "Show version")
	help := flag.Bool("help", false, "Show help")
	flag.Parse()

	if *help {
		fmt.Println("Usage: mindtree [options]")
		fmt.Println("\nAn interactive, collapsible mind map for the terminal.")
		flag.PrintDefaults()
		os.Exit(0)
	}

	if *showVersion {
		fmt.Println("mindtree version " + version)
		os.Exit(0)
	}

	config, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *dataPath != "" {
		config.Data = expandPath(*dataPath)
	}

	logger, err := newLogger(config.Log)
	if err != nil {
		fmt.Printf("Error opening log: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	initial, err := LoadTree(config.Data)
	if err != nil {
		fmt.Printf("Error loading mind map: %v\n", err)
		os.Exit(1)
	}

	storage, closeStorage, err := config.openStorage()
	if err != nil {
		fmt.Printf("Error opening storage: %v\n", err)
		os.Exit(1)
	}
	defer closeStorage()

	if *reset {
		if err := storage.Clear(); err != nil {
			fmt.Printf("Error clearing storage: %v\n", err)
			os.Exit(1)
		}
		logger.Info("stored mind map discarded")
	}

	store := NewStore(initial, storage,
		WithReducer(Reducer{Layout: config.Layout, Fit: config.Fit}),
		WithLogger(logger))

	switch {
	case *exportPaths != "":
		if err := runExport(store, config, splitList(*exportPaths)); err != nil {
			fmt.Printf("Error exporting: %v\n", err)
			os.Exit(1)
		}
		return
	case *printLayout || !term.IsTerminal(int(os.Stdout.Fd())):
		if err := writeLayout(os.Stdout, store); err != nil {
			fmt.Printf("Error writing layout: %v\n", err)
			os.Exit(1)
		}
		return
	}

	var watcher *DataWatcher
	if config.Data != "" {
		watcher, err = NewDataWatcher(config.Data, logger)
		if err != nil {
			logger.Warn("data file will not be watched", zap.String("path", config.Data), zap.Error(err))
			watcher = nil
		} else {
			defer watcher.Close()
		}
	}

	p := tea.NewProgram(newModel(store, config, logger, watcher), programOptions()...)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running mindtree: %v\n", err)
		os.Exit(1)
	}
}

// programOptions runs the mouse in all-motion mode: hover tooltips need
// motion events while no button is pressed.
func programOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
	}
}

func runExport(store *Store, config *Config, paths []string) error {
	st := store.State()
	base := ExportOptions{
		Tree:       st.Tree,
		SelectedID: st.SelectedID,
		View:       st.View,
		Layout:     store.LayoutConfig(),
		Fit:        config.Fit,
		Text:       config.Text,
	}
	for i, path := range paths {
		savePath, err := config.GetSavePath(path)
		if err != nil {
			return err
		}
		paths[i] = savePath
	}
	if err := ExportAll(context.Background(), base, paths); err != nil {
		return err
	}
	for _, path := range paths {
		fmt.Println("Exported " + path)
	}
	return nil
}

type layoutReport struct {
	Layout *Layout `json:"layout"`
	View   Rect    `json:"view"`
}

func writeLayout(w io.Writer, store *Store) error {
	data, err := json.MarshalIndent(layoutReport{Layout: store.Layout(), View: store.View()}, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// Command ls-globeradio is a terminal globe for browsing and playing
// internet radio stations by location.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/litescript/ls-globeradio/internal/config"
	"github.com/litescript/ls-globeradio/internal/globe"
	"github.com/litescript/ls-globeradio/internal/logging"
	"github.com/litescript/ls-globeradio/internal/player"
	"github.com/litescript/ls-globeradio/internal/station"
	"github.com/litescript/ls-globeradio/internal/store"
	"github.com/litescript/ls-globeradio/internal/ui"
	"github.com/litescript/ls-globeradio/internal/version"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config file")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	stationsURL := flag.String("stations-url", "", "Override station list URL")
	listMode := flag.Bool("list", false, "Print the station list and exit")
	country := flag.String("country", "", "Filter -list output by country")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Println("ls-globeradio", version.Version)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *stationsURL != "" {
		cfg.StationsURL = *stationsURL
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	loader := station.NewLoader(
		station.WithURL(cfg.StationsURL),
		station.WithTimeout(cfg.FetchTimeout),
	)

	// Headless mode: no TUI.
	if *listMode {
		logger := logging.NewConsole(logging.ParseLevel(cfg.LogLevel))
		if err := runList(ctx, loader, *country, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	// The TUI owns the terminal; log to a file instead of stderr.
	logger := logging.Discard()
	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(cfg.DataDir, "ls-globeradio.log")
	}
	if f, err := logging.OpenLogFile(logPath); err == nil {
		defer f.Close()
		logger = logging.New(logging.ParseLevel(cfg.LogLevel), f)
	}

	st, err := store.Open(filepath.Join(cfg.DataDir, "store"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: open store: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	engine := globe.NewEngine(globe.NewCamera())
	engine.HoverPicker = globe.ScreenSpacePicker{ThresholdPx: cfg.HitThresholdPx}

	backend := player.NewProcessBackend()
	backend.Command = cfg.PlayerCommand

	// The program is created after the player, so notifications go through
	// a captured pointer. Nothing plays before the program runs.
	var prog *tea.Program
	pl := player.New(player.Config{
		Backend:     backend,
		Library:     st,
		LoadTimeout: cfg.LoadTimeout,
		Logger:      logger,
		Notify: func(e player.Event) {
			if prog != nil {
				prog.Send(ui.PlayerEventMsg(e))
			}
		},
	})
	defer pl.Stop()

	model := ui.New(cfg, engine, pl, st)
	prog = tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())

	go loadStations(ctx, loader, prog, logger)

	if _, err := prog.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

// loadStations fetches the station list in the background and delivers the
// result into the program loop.
func loadStations(ctx context.Context, loader *station.Loader, prog *tea.Program, logger zerolog.Logger) {
	logger.Debug().Str("url", loader.URL()).Msg("fetching station list")

	result, err := loader.Load(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("station list fetch failed")
		prog.Send(ui.StationsMsg{Err: err})
		return
	}

	logger.Info().
		Int("stations", len(result.Records)).
		Int("skipped", result.Skipped).
		Dur("duration", result.Duration).
		Msg("station list loaded")
	prog.Send(ui.StationsMsg{Records: result.Records, Skipped: result.Skipped})
}

// runList prints the station list as a table and exits.
func runList(ctx context.Context, loader *station.Loader, country string, logger zerolog.Logger) error {
	result, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	if result.Skipped > 0 {
		logger.Warn().Int("skipped", result.Skipped).Msg("invalid station records dropped")
	}

	dir := station.NewDirectory(result.Records)
	records := dir.Records()
	if country != "" {
		records = dir.Filter(func(r station.Record) bool {
			return r.Country == country
		})
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOUNTRY\tCITY\tLAT\tLON\tSTREAM")
	for _, r := range records {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.4f\t%.4f\t%s\n",
			r.Name, r.Country, r.City, r.Latitude, r.Longitude, r.StreamURL)
	}
	return w.Flush()
}

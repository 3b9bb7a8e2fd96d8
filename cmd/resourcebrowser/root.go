package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/alexballas/resourcebrowser/browser"
	"github.com/alexballas/resourcebrowser/internal/config"
	"github.com/alexballas/resourcebrowser/internal/logging"
)

const appID = "io.github.alexballas.resourcebrowser"

type rootFlags struct {
	cfgFile string
	dir     string
	match   string
	verbose bool
}

type runtimeEnv struct {
	cfg *config.Config
	log zerolog.Logger
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}
	env := &runtimeEnv{log: logging.NewDefault()}

	rootCmd := &cobra.Command{
		Use:   "resourcebrowser",
		Short: "Browse image resources by name and thumbnail",
		Long: `Opens a panel listing image resources next to a thumbnail grid.
Without --dir the built-in theme icons are shown.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(flags)
			if err != nil {
				return err
			}
			level := logging.ParseLevel(cfg.LogLevel)
			if flags.verbose {
				level = zerolog.DebugLevel
			}
			env.cfg = cfg
			env.log = logging.New(cmd.ErrOrStderr(), level)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPanel(env)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&flags.cfgFile, "config", "c", "", "Configuration file path (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVarP(&flags.dir, "dir", "d", "", "Directory of images to browse (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flags.match, "match", "", "Match mode: glob or fuzzy (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Verbose output (shows debug messages)")

	rootCmd.AddCommand(newListCmd(env))
	return rootCmd
}

func loadConfig(flags *rootFlags) (*config.Config, error) {
	path := flags.cfgFile
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if flags.dir != "" {
		dir, err := filepath.Abs(flags.dir)
		if err != nil {
			return nil, fmt.Errorf("resolve dir: %w", err)
		}
		cfg.Catalog.Dir = dir
	}
	if flags.match != "" {
		cfg.Catalog.Match = flags.match
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildSource picks the catalog for the configured directory and match mode.
func buildSource(cfg *config.Config) (browser.Source, error) {
	var src browser.Source
	if cfg.Catalog.Dir == "" {
		src = browser.ThemeCatalog()
	} else {
		fsCat, err := browser.NewFSCatalog(cfg.Catalog.Dir)
		if err != nil {
			return nil, err
		}
		src = fsCat
	}
	if strings.EqualFold(cfg.Catalog.Match, config.MatchFuzzy) {
		src = browser.NewFuzzyCatalog(src)
	}
	return src, nil
}

func panelOptions(cfg *config.Config, log zerolog.Logger) (browser.Options, error) {
	src, err := buildSource(cfg)
	if err != nil {
		return browser.Options{}, err
	}
	title := "Resource Browser"
	if cfg.Catalog.Dir != "" {
		title += " - " + filepath.Base(cfg.Catalog.Dir)
	}
	return browser.Options{
		Title:      title,
		Source:     src,
		Extensions: cfg.Catalog.Extensions,
		Metrics: browser.Metrics{
			IconSize:   cfg.Icons.Size,
			GridWidth:  cfg.Icons.GridWidth,
			GridHeight: cfg.Icons.GridHeight,
			Padding:    cfg.Icons.Padding,
			Border:     cfg.Icons.Border,
		},
		WindowSize: fyne.NewSize(cfg.Window.Width, cfg.Window.Height),
		StartDelay: time.Duration(cfg.Loader.StartDelay),
		Dir:        cfg.Catalog.Dir,
		Logger:     log,
	}, nil
}

func runPanel(env *runtimeEnv) error {
	a := app.NewWithID(appID)
	opts, err := panelOptions(env.cfg, env.log)
	if err != nil {
		return err
	}

	mgr := browser.NewManager(a, env.log)
	mgr.SetFolderFactory(func(dir string) (browser.Options, error) {
		next := *env.cfg
		next.Catalog.Dir = dir
		return panelOptions(&next, env.log)
	})
	if _, err := mgr.Show(opts); err != nil {
		return err
	}
	a.Run()
	return nil
}

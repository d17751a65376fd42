package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"regexp"
	"syscall"

	"github.com/joho/godotenv"
	internalcli "github.com/themizzi/menucheck/internal/cli"
	"github.com/themizzi/menucheck/internal/config"
	"github.com/themizzi/menucheck/internal/database"
	"github.com/themizzi/menucheck/internal/driver"
	"github.com/themizzi/menucheck/internal/handlers"
	"github.com/themizzi/menucheck/internal/repository"
	"github.com/themizzi/menucheck/internal/scenarios"
	"github.com/themizzi/menucheck/internal/services"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// loadSuiteConfig layers the environment, the optional YAML file and the
// command line flags, in that order
func loadSuiteConfig(c *cli.Context) (*config.SuiteConfig, error) {
	cfg, err := config.LoadSuiteConfig(os.Getenv)
	if err != nil {
		return nil, err
	}

	if path := c.String("config"); path != "" {
		cfg.ConfigFile = path
	}
	if cfg.ConfigFile != "" {
		f, err := config.LoadFile(cfg.ConfigFile)
		if err != nil {
			return nil, err
		}
		cfg.Apply(f)
	}

	if c.IsSet("base-url") {
		cfg.BaseURL = c.String("base-url")
	}
	if c.IsSet("profile") {
		profiles, err := config.SelectProfiles(cfg.Profiles, c.StringSlice("profile"))
		if err != nil {
			return nil, err
		}
		cfg.Profiles = profiles
	}
	if c.IsSet("consent") {
		cfg.Consent = c.String("consent")
	}
	if c.IsSet("storage-state") {
		cfg.StorageStatePath = c.String("storage-state")
	}
	if c.Bool("headed") {
		cfg.Headless = false
	}
	if c.IsSet("workers") {
		n := c.Int("workers")
		if n < 1 {
			return nil, fmt.Errorf("--workers must be a positive integer, got %d", n)
		}
		cfg.Workers = n
	}
	if c.IsSet("retries") {
		n := c.Int("retries")
		if n < 0 {
			return nil, fmt.Errorf("--retries must be a non-negative integer, got %d", n)
		}
		cfg.Retries = n
	}
	if c.IsSet("timeout") {
		d := c.Duration("timeout")
		if d <= 0 {
			return nil, fmt.Errorf("--timeout must be a positive duration, got %s", d)
		}
		cfg.TestTimeout = d
	}
	if c.IsSet("reporter") {
		cfg.Reporters = c.StringSlice("reporter")
	}
	if c.IsSet("output") {
		cfg.OutputDir = c.String("output")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// commonFlags are shared by every command that drives a browser
func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "config", Usage: "YAML file overriding profiles and thresholds"},
		&cli.StringFlag{Name: "base-url", Usage: "menu page to check"},
		&cli.StringSliceFlag{Name: "profile", Aliases: []string{"p"}, Usage: "profile to run, repeatable"},
		&cli.StringFlag{Name: "consent", Usage: "seed a consent preference (reject or accept) before navigation"},
		&cli.StringFlag{Name: "storage-state", Usage: "storage state file written by setup"},
		&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
	}
}

// openHistory connects to the run history database
func openHistory() (services.RunService, error) {
	if err := database.Connect(); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return services.NewRunService(repository.NewRunRepository()), nil
}

// RunCommand returns the run command
func RunCommand() *cli.Command {
	flags := append(commonFlags(),
		&cli.IntFlag{Name: "workers", Aliases: []string{"j"}, Usage: "parallel scenarios"},
		&cli.IntFlag{Name: "retries", Usage: "retries for a failed scenario"},
		&cli.DurationFlag{Name: "timeout", Usage: "per scenario timeout"},
		&cli.StringFlag{Name: "grep", Aliases: []string{"g"}, Usage: "only run scenarios whose suite and name match"},
		&cli.StringSliceFlag{Name: "reporter", Usage: "html, json or junit, repeatable"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "report and screenshot directory"},
		&cli.BoolFlag{Name: "record", Usage: "store the run in the history database"},
	)

	return &cli.Command{
		Name:  "run",
		Usage: "Run the menu checks across the device profiles",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := loadSuiteConfig(c)
			if err != nil {
				return err
			}

			var grep *regexp.Regexp
			if expr := c.String("grep"); expr != "" {
				if grep, err = regexp.Compile(expr); err != nil {
					return fmt.Errorf("invalid --grep: %w", err)
				}
			}

			deps := internalcli.RunDependencies{
				Config:    cfg,
				Grep:      grep,
				Scenarios: scenarios.All(),
			}

			if c.Bool("record") {
				history, err := openHistory()
				if err != nil {
					return err
				}
				defer database.Close()
				deps.History = history
			}

			opts, err := driver.OptionsFromConfig(cfg)
			if err != nil {
				return err
			}
			launcher, err := driver.Start(opts)
			if err != nil {
				return err
			}
			defer func() {
				if err := launcher.Close(); err != nil {
					log.Printf("Warning: %v", err)
				}
			}()
			deps.Sessions = internalcli.LauncherSessions(launcher)

			ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Printf("Checking %s", cfg.BaseURL)
			_, err = internalcli.RunChecks(ctx, deps)
			return err
		},
	}
}

// SetupCommand returns the setup command
func SetupCommand() *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Dismiss the consent banner once and save the storage state for later runs",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadSuiteConfig(c)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, cfg.NavigationTimeout)
			defer cancel()

			outcome, err := internalcli.RunSetup(ctx, cfg)
			if err != nil {
				return err
			}
			log.Printf("Setup complete: %s, state saved to %s", outcome, cfg.StorageStatePath)
			return nil
		},
	}
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the local fixture menu site",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port, overrides PORT"},
		},
		Action: func(c *cli.Context) error {
			cfg := config.LoadServerConfig(os.Getenv)
			if c.IsSet("port") {
				cfg.Port = c.String("port")
			}

			deps, err := internalcli.NewServerDependencies(cfg, handlers.DefaultCatalog())
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// HistoryCommand returns the history command
func HistoryCommand() *cli.Command {
	return &cli.Command{
		Name:      "history",
		Usage:     "List recorded runs, or the results of one run",
		ArgsUsage: "[run id]",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Aliases: []string{"n"}, Value: 10, Usage: "number of runs to list"},
		},
		Action: func(c *cli.Context) error {
			history, err := openHistory()
			if err != nil {
				return err
			}
			defer database.Close()

			if id := c.Args().First(); id != "" {
				return internalcli.PrintRunResults(os.Stdout, history, id)
			}
			return internalcli.PrintHistory(os.Stdout, history, c.Int("limit"))
		},
	}
}

// ProfilesCommand returns the profiles command
func ProfilesCommand() *cli.Command {
	return &cli.Command{
		Name:  "profiles",
		Usage: "List the device profiles a run uses",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			cfg, err := loadSuiteConfig(c)
			if err != nil {
				return err
			}
			return internalcli.PrintProfiles(os.Stdout, cfg.Profiles)
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "menucheck",
		Usage:   "Cross-browser checks for a restaurant menu site",
		Version: version,
		Commands: []*cli.Command{
			RunCommand(),
			SetupCommand(),
			ServeCommand(),
			HistoryCommand(),
			ProfilesCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Fatal(err)
	}
}

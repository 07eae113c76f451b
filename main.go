package main

import (
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/seliret/hourglass/internal/config"
	"github.com/seliret/hourglass/internal/store"
	"github.com/seliret/hourglass/internal/tui"
)

const defaultWeeks = 8

var (
	flagDB       string
	flagConfig   string
	flagWeeks    int
	flagEmployee string

	seedWeeks int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "hourglass",
		Short:         "TUI timesheet viewer with weekly hour charts",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runTUICmd,
	}

	rootCmd.PersistentFlags().StringVar(&flagDB, "db", "", "path to the sqlite database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "path to the config file")
	rootCmd.Flags().IntVar(&flagWeeks, "weeks", defaultWeeks, "number of weeks to load into the chart")
	rootCmd.Flags().StringVar(&flagEmployee, "employee", "", "badge of the employee to open with")

	rootCmd.AddCommand(newSeedCmd())

	return rootCmd
}

func runTUICmd(cmd *cobra.Command, _ []string) error {
	cfgPath := flagConfig
	if cfgPath == "" {
		cfgPath = config.DefaultConfigPath()
	}
	var fileCfg config.FileConfig
	if cfgPath != "" {
		var err error
		fileCfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
	}
	applyStringConfig(cmd, "db", &flagDB, fileCfg.General.DBPath)
	applyIntConfig(cmd, "weeks", &flagWeeks, fileCfg.General.Weeks)
	applyStringConfig(cmd, "employee", &flagEmployee, fileCfg.General.Employee)

	if flagWeeks <= 0 {
		return fmt.Errorf("--weeks must be > 0")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	// The config file seeds the week-start setting; the in-app settings
	// form edits it afterwards.
	if fileCfg.Chart.WeekStart != nil {
		ws := strings.ToLower(strings.TrimSpace(*fileCfg.Chart.WeekStart))
		if ws != "sunday" && ws != "monday" {
			return fmt.Errorf("chart.week-start must be %q or %q", "sunday", "monday")
		}
		if err := s.SetSetting("week_start", ws); err != nil {
			return fmt.Errorf("apply week-start: %w", err)
		}
	}

	app := tui.NewApp(s, flagWeeks, flagEmployee)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}

func newSeedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo employees, projects, and time entries",
		Args:  cobra.NoArgs,
		RunE:  runSeedCmd,
	}
	cmd.Flags().IntVar(&seedWeeks, "weeks", 12, "weeks of demo entries to generate")
	return cmd
}

func runSeedCmd(_ *cobra.Command, _ []string) error {
	if seedWeeks <= 0 {
		return fmt.Errorf("--weeks must be > 0")
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.Seed(seedWeeks); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	fmt.Printf("Seeded %d weeks of demo data\n", seedWeeks)
	return nil
}

func openStore() (*store.Store, error) {
	dbPath := flagDB
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve db path: %w", err)
		}
	}
	s, err := store.New(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

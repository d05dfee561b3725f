package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/sense-dice/config"
	"github.com/lixenwraith/sense-dice/telemetry"
)

// app carries state resolved once by the root command for every subcommand
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry telemetry.Config
	closeLog  func() error
}

func newRootCmd() *cobra.Command {
	a := &app{}
	loader := config.NewLoader()
	var cfgPath string
	var envFiles []string

	rootCmd := &cobra.Command{
		Use:   "sense-dice",
		Short: "Dual-die sensory mechanic sandbox",
		Long: `A good die and a bad die each pick one of Sight, Hearing and Speech.
Their faces drive the vision cone, the audio mix and hostile agent behavior.`,
		SilenceUsage: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&cfgPath, "config", "c", "", "Config file (TOML or YAML)")
	flags.StringSliceVar(&envFiles, "env-file", []string{".env"}, "Env files loaded before resolving config, missing files are skipped")
	flags.String("log-level", "info", "Log level: debug, info, warn, error")
	flags.String("log-file", "", "Log file path, - for stderr, empty discards")
	flags.Bool("mute", false, "Never open the audio device")
	flags.Uint64("seed", 0, "Dice seed, 0 seeds from the clock")

	bindErr := errors.Join(
		loader.BindFlag("log.level", flags.Lookup("log-level")),
		loader.BindFlag("log.file", flags.Lookup("log-file")),
		loader.BindFlag("audio.muted", flags.Lookup("mute")),
		loader.BindFlag("dice.seed", flags.Lookup("seed")),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if bindErr != nil {
			return bindErr
		}
		if err := config.LoadEnvFiles(envFiles...); err != nil {
			return err
		}
		cfg, err := loader.Load(cfgPath)
		if err != nil {
			return err
		}
		tel, err := telemetry.ParseConfig()
		if err != nil {
			return err
		}
		logger, closeLog, err := setupLogging(cfg.Log, cmd.ErrOrStderr())
		if err != nil {
			return err
		}

		a.cfg, a.telemetry, a.logger, a.closeLog = cfg, tel, logger, closeLog
		slog.SetDefault(logger)
		logger.Debug("config resolved", "file", cfgPath, "seed", cfg.Dice.Seed, "muted", cfg.Audio.Muted)
		return nil
	}
	rootCmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		if a.closeLog == nil {
			return nil
		}
		if err := a.closeLog(); err != nil {
			return fmt.Errorf("close log: %w", err)
		}
		return nil
	}

	rootCmd.AddCommand(
		newPlayCmd(a),
		newSimulateCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

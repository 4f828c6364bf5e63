package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"

	"github.com/MacroPower/smarttask/pkg/config"
	"github.com/MacroPower/smarttask/pkg/log"
	"github.com/MacroPower/smarttask/pkg/version"
)

var (
	ErrLogHandlerFailed = errors.New("log handler failed")
	ErrConfigFailed     = errors.New("config failed")
	ErrArgument         = errors.New("argument error")
	ErrInvalidArgument  = errors.New("invalid argument")

	heapProfile   *pprof.Profile
	allocsProfile *pprof.Profile
	blockProfile  *pprof.Profile
	mutexProfile  *pprof.Profile
)

func NewRootCmd(name, shortDesc, longDesc string) *cobra.Command {
	args := NewRootArgs()

	cmd := &cobra.Command{
		Use:           name,
		Short:         shortDesc,
		Long:          longDesc,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	cmd.PersistentFlags().StringVar(args.logLevel, "log_level", "warn", "Set the log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(args.logFormat, "log_format", "text", "Set the log format (text, logfmt, json)")

	cmd.PersistentFlags().StringVarP(args.configFile, "config", "c", "",
		fmt.Sprintf("Config file, YAML or TOML (default %s)", config.DefaultPath()))
	cmd.PersistentFlags().StringVar(args.store, "store", "",
		fmt.Sprintf("Task store file (env %s)", config.EnvStore))
	cmd.PersistentFlags().StringVar(args.theme, "theme", "",
		fmt.Sprintf("Chart theme: light, dark or auto (env %s)", config.EnvTheme))

	cmd.PersistentFlags().StringVar(args.cpuProfile, "cpuprofile", "", "Write a CPU profile to this file")
	cmd.PersistentFlags().StringVar(args.heapProfile, "heapprofile", "", "Write a heap profile to this file")
	cmd.PersistentFlags().StringVar(args.memProfile, "memprofile", "", "Write a memory profile to this file")
	cmd.PersistentFlags().
		IntVar(args.memProfileRate, "memprofile_rate", 512*1024, "Memory profiling rate as a fraction")
	cmd.PersistentFlags().StringVar(args.blockProfile, "blockprofile", "", "Write a block profile to this file")
	cmd.PersistentFlags().IntVar(args.blockProfileRate, "blockprofile_rate", 1, "Block profiling rate as a fraction")
	cmd.PersistentFlags().StringVar(args.mutexProfile, "mutexprofile", "", "Write a mutex profile to this file")
	cmd.PersistentFlags().IntVar(args.mutexProfileRate, "mutexprofile_rate", 1, "Mutex profiling rate as a fraction")

	for _, f := range []string{"config", "store", "cpuprofile", "heapprofile", "memprofile", "blockprofile", "mutexprofile"} {
		must(cmd.MarkPersistentFlagFilename(f))
	}

	cmd.PersistentPreRunE = func(cc *cobra.Command, _ []string) error {
		err := startProfiling(args)
		if err != nil {
			return err
		}

		h, err := log.CreateHandlerWithStrings(
			cc.ErrOrStderr(),
			args.GetLogLevel(),
			args.GetLogFormat(),
		)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrLogHandlerFailed, err)
		}

		slog.SetDefault(slog.New(h))

		cfg, err := loadConfig(cc, args)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrConfigFailed, err)
		}

		*args.cfg = cfg

		slog.Debug("ready to go",
			slog.String("store", cfg.StorePath),
			slog.String("theme", cfg.Theme),
		)

		return nil
	}

	cmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		slog.Debug("shutting down")

		return stopProfiling(args)
	}

	cmd.AddCommand(NewVersionCmd())
	cmd.AddCommand(NewTaskCmd(args))
	cmd.AddCommand(NewStatsCmd(args))
	cmd.AddCommand(NewChartCmd(args))
	cmd.AddCommand(NewExportCmd(args))
	cmd.AddCommand(NewImportCmd(args))
	cmd.AddCommand(NewSchemaCmd())

	return cmd
}

// loadConfig layers flags over the config file and environment.
func loadConfig(cc *cobra.Command, args *RootArgs) (config.Config, error) {
	cfg, err := config.Load(args.GetConfigFile())
	if err != nil {
		return config.Config{}, err
	}

	flags := cc.Flags()
	if flags.Changed("store") {
		cfg.StorePath = args.GetStore()
	}

	if flags.Changed("theme") {
		cfg.Theme = args.GetTheme()
	}

	err = cfg.Validate()
	if err != nil {
		return config.Config{}, err
	}

	return cfg, nil
}

func startProfiling(args *RootArgs) error {
	if args.GetCPUProfile() != "" {
		f, err := os.Create(args.GetCPUProfile())
		if err != nil {
			return fmt.Errorf("failed to create CPU profile: %w", err)
		}

		err = pprof.StartCPUProfile(f)
		if err != nil {
			must(f.Close())

			return fmt.Errorf("failed to start CPU profile: %w", err)
		}
	}

	if args.GetHeapProfile() != "" || args.GetMemProfile() != "" {
		runtime.MemProfileRate = args.GetMemProfileRate()
	}

	if args.GetHeapProfile() != "" {
		heapProfile = pprof.Lookup("heap")
	}

	if args.GetMemProfile() != "" {
		allocsProfile = pprof.Lookup("allocs")
	}

	if args.GetBlockProfile() != "" {
		runtime.SetBlockProfileRate(args.GetBlockProfileRate())

		blockProfile = pprof.Lookup("block")
	}

	if args.GetMutexProfile() != "" {
		runtime.SetMutexProfileFraction(args.GetMutexProfileRate())

		mutexProfile = pprof.Lookup("mutex")
	}

	return nil
}

func stopProfiling(args *RootArgs) error {
	if args.GetCPUProfile() != "" {
		pprof.StopCPUProfile()
	}

	if allocsProfile != nil {
		runtime.GC() //nolint:revive // Get up-to-date statistics for the profile.
	}

	profiles := []struct {
		profile *pprof.Profile
		name    string
		path    string
	}{
		{heapProfile, "heap", args.GetHeapProfile()},
		{allocsProfile, "memory", args.GetMemProfile()},
		{blockProfile, "block", args.GetBlockProfile()},
		{mutexProfile, "mutex", args.GetMutexProfile()},
	}

	for _, p := range profiles {
		if p.profile == nil {
			continue
		}

		f, err := os.Create(p.path)
		if err != nil {
			return fmt.Errorf("failed to create %s profile: %w", p.name, err)
		}

		err = p.profile.WriteTo(f, 0)
		if err != nil {
			must(f.Close())

			return fmt.Errorf("failed to write %s profile: %w", p.name, err)
		}

		must(f.Close())
	}

	return nil
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

package main

import (
	"fmt"
	"os"

	"library-desk/config"
	"library-desk/library"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootFlags struct {
	dbPath   string
	memory   bool
	catalog  string
	logLevel string
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		flags rootFlags
		cfg   *config.Config
	)

	root := &cobra.Command{
		Use:          "library-desk",
		Short:        "Terminal library desk: catalog, roster, borrowing",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			if cfg, err = config.Load(); err != nil {
				return err
			}
			applyFlags(cmd, cfg, flags)
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, cfg)
		},
	}
	root.PersistentFlags().StringVar(&flags.dbPath, "db", "", "SQLite file holding the saved login (default from LIBRARY_DB)")
	root.PersistentFlags().BoolVar(&flags.memory, "memory", false, "keep the saved login in memory only")
	root.PersistentFlags().StringVar(&flags.catalog, "catalog", "", "JSON file with the starting catalog")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "debug, info, warn or error")

	root.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Forget the saved login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := library.ResetStorage(cfg.DBPath); err != nil {
				return fmt.Errorf("reset: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved login cleared from %s\n", cfg.DBPath)
			return nil
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "whoami",
		Short: "Show the saved login",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWhoAmI(cmd, cfg)
		},
	})
	return root
}

// applyFlags lets explicitly set flags win over the environment.
func applyFlags(cmd *cobra.Command, cfg *config.Config, flags rootFlags) {
	pf := cmd.Flags()
	if pf.Changed("db") {
		cfg.DBPath = flags.dbPath
	}
	if pf.Changed("memory") && flags.memory {
		cfg.Storage = "memory"
	}
	if pf.Changed("catalog") {
		cfg.CatalogPath = flags.catalog
	}
	if pf.Changed("log-level") {
		cfg.LogLevel = flags.logLevel
	}
}

func openManager(cfg *config.Config, notifier library.Notifier, logger *zap.Logger) (*library.LibraryManager, error) {
	var books []library.Book
	if cfg.CatalogPath != "" {
		var err error
		if books, err = library.LoadCatalogFile(cfg.CatalogPath); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	return library.NewLibraryManager(library.Options{
		DBPath:     cfg.DBPath,
		InMemory:   cfg.InMemory(),
		Books:      books,
		Notifier:   notifier,
		Logger:     logger,
		BcryptCost: cfg.BcryptCost,
	})
}

func runShell(cmd *cobra.Command, cfg *config.Config) error {
	logger, err := cfg.NewLogger()
	if err != nil {
		return err
	}
	defer logger.Sync()

	out := cmd.OutOrStdout()
	box := library.NewMessageBox(cfg.MessageDuration)
	manager, err := openManager(cfg, box, logger)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error starting the desk: %v\n", err)
		fmt.Fprintln(cmd.ErrOrStderr(), "Run 'library-desk reset' to clear the saved login and try again.")
		return err
	}
	defer manager.Close()

	newShell(manager, box, cmd.InOrStdin(), out).run()
	return nil
}

func runWhoAmI(cmd *cobra.Command, cfg *config.Config) error {
	manager, err := openManager(cfg, library.NotifierFunc(func(string) {}), zap.NewNop())
	if err != nil {
		return err
	}
	defer manager.Close()

	u, ok := manager.CurrentUser()
	if !ok {
		fmt.Fprintln(cmd.OutOrStdout(), "Nobody is logged in.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s (%s), %d book(s) borrowed\n", u.Username, u.Role, len(u.BorrowedBooks))
	return nil
}

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/deppfellow/contact-repository/internal/config"
	"github.com/deppfellow/contact-repository/internal/lib/utils"
	"github.com/deppfellow/contact-repository/internal/logger"
	"github.com/deppfellow/contact-repository/internal/model"
	"github.com/deppfellow/contact-repository/internal/repository"
	"github.com/deppfellow/contact-repository/internal/server"
	"github.com/deppfellow/contact-repository/internal/service"
	"github.com/spf13/cobra"
)

type getOptions struct {
	json    bool
	timeout time.Duration
	verbose int
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "contacts",
		Short:         "Look up contacts stored in PostgreSQL",
		Long:          `contacts reads records from the contact table. Connection settings come from CONTACTS_* environment variables or a .env file.`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.AddCommand(newGetCmd())
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "contacts %s (commit: %s, built: %s)\n", version, commit, date)
		},
	})

	return rootCmd
}

func newGetCmd() *cobra.Command {
	opts := &getOptions{}

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Print the contact with the given id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid contact id %q: must be an integer", args[0])
			}
			return runGet(cmd, id, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.json, "json", false, "Print the contact as JSON")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", 0, "Overall deadline for connecting and querying (0 = none)")
	cmd.Flags().CountVarP(&opts.verbose, "verbose", "v", "Increase verbosity (-v debug)")

	return cmd
}

func runGet(cmd *cobra.Command, id int64, opts *getOptions) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if opts.verbose > 0 {
		cfg.Observability.Logging.Level = "debug"
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	srv, err := server.New(ctx, cfg, &log, loggerService)
	if err != nil {
		loggerService.Shutdown()
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	repos := repository.NewRepositories(srv)
	services, err := service.NewServices(srv, repos)
	if err != nil {
		return err
	}

	contact, err := services.Contacts.GetContact(ctx, service.GetContactRequest{ID: id})
	if err != nil {
		return err
	}

	return printContact(cmd, contact, opts.json)
}

func printContact(cmd *cobra.Command, contact *model.Contact, asJSON bool) error {
	out := cmd.OutOrStdout()
	if asJSON {
		return utils.PrintJSON(out, contact)
	}
	_, err := fmt.Fprintf(out, "%d\t%s\t%s\t%s\n", contact.ID, contact.FullName(), contact.Phone, contact.Email)
	return err
}

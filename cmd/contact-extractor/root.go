package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/waseemnasir2k26/contact-extractor/internal/log"
)

// NewRootCmd creates the root command for contact-extractor.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contact-extractor",
		Short: "Extract contact information from websites",
		Long: `contact-extractor crawls a small, time-boxed set of pages on a website and
extracts email addresses, phone numbers, WhatsApp links, social media
profiles, names and postal addresses.

Pages likely to hold contact details (/contact, /about, /team, ...) are
visited first. Local and private network addresses are always refused.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", "", "Log format: text, json or pretty (default text; json for serve)")

	cmd.AddCommand(NewExtractCmd())
	cmd.AddCommand(NewServeCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger builds the secure logger selected by --log-format, writing
// to stderr, and installs it as the slog default.
func setupLogger(cmd *cobra.Command, defaultFormat string) (*slog.Logger, error) {
	format := defaultFormat
	if f := cmd.Flag("log-format"); f != nil && f.Value.String() != "" {
		format = f.Value.String()
	}

	logger, err := log.New(cmd.ErrOrStderr(), format, getVerboseFlag(cmd))
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

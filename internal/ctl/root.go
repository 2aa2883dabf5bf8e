package ctl

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"doubleit/internal/config"
	"doubleit/internal/verify"
)

// buildRootCmdWith constructs the Cobra command tree wired to the fn* actions.
func buildRootCmdWith(cfg *Config) *cobra.Command {
	root := &cobra.Command{
		Use:           "doubleitctl",
		Short:         "Build and verify the doubleit model artifact",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.LogLvl, "log-level", cfg.LogLvl, "Log level: debug|info|warn|error (defaults DOUBLEIT_LOG_LEVEL or info)")
	root.PersistentFlags().StringVar(&cfg.Artifact, "artifact", cfg.Artifact, "Artifact path (defaults DOUBLEIT_ARTIFACT or "+config.DefaultArtifact+")")
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		SetLogLevel(cfg.LogLvl)
	}

	buildCmd := &cobra.Command{
		Use:     "build",
		Short:   "Write the doubling graph artifact, replacing any existing file",
		Example: "  doubleitctl build\n  doubleitctl build --artifact /srv/doubleit/doubleit_model.graph",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return fnBuild(cfg.Artifact)
		},
	}
	root.AddCommand(buildCmd)

	verifyCmd := &cobra.Command{Use: "verify", Short: "Check the doubling property", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return fmt.Errorf("verify requires a subcommand: model|api|all")
	}}
	verifyCmd.PersistentFlags().StringVar(&cfg.URL, "url", cfg.URL, "Base URL of a running doubleitd")
	verifyCmd.PersistentFlags().DurationVar(&cfg.Wait, "wait", cfg.Wait, "Wait up to this long for /readyz before the API check (0 = no wait)")

	verifyModel := &cobra.Command{Use: "model", Short: "Load the artifact and check a fixed sample", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return runVerifyModel(cmd.Context(), cfg)
	}}
	verifyAPI := &cobra.Command{Use: "api", Short: "POST a fixed sample to a running service", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		return runVerifyAPI(cmd.Context(), cfg)
	}}
	verifyAll := &cobra.Command{Use: "all", Short: "Run the model and api checks concurrently", Args: cobra.NoArgs, RunE: func(cmd *cobra.Command, args []string) error {
		g, ctx := errgroup.WithContext(cmd.Context())
		g.Go(func() error { return runVerifyModel(ctx, cfg) })
		g.Go(func() error { return runVerifyAPI(ctx, cfg) })
		return g.Wait()
	}}
	verifyCmd.AddCommand(verifyModel, verifyAPI, verifyAll)
	root.AddCommand(verifyCmd)

	completionCmd := &cobra.Command{Use: "completion", Short: "Generate the autocompletion script for the specified shell"}
	completionCmd.AddCommand(&cobra.Command{Use: "bash", Short: "Bash completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenBashCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "zsh", Short: "Zsh completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenZshCompletion(os.Stdout) }})
	completionCmd.AddCommand(&cobra.Command{Use: "fish", Short: "Fish completion", RunE: func(cmd *cobra.Command, args []string) error { return root.GenFishCompletion(os.Stdout, true) }})
	root.AddCommand(completionCmd)

	return root
}

func runVerifyModel(ctx context.Context, cfg *Config) error {
	if err := fnVerifyModel(ctx, cfg.Artifact); err != nil {
		return fmt.Errorf("verify model: %w", err)
	}
	logger.Info().Str("artifact", cfg.Artifact).Ints64("input", verify.ModelSample).Ints64("output", verify.ModelExpected).Msg("model check passed")
	return nil
}

func runVerifyAPI(ctx context.Context, cfg *Config) error {
	if err := fnVerifyAPI(ctx, cfg.URL, cfg.Wait); err != nil {
		return fmt.Errorf("verify api: %w", err)
	}
	logger.Info().Str("url", cfg.URL).Ints64("input", verify.APISample).Ints64("output", verify.APIExpected).Msg("api check passed")
	return nil
}

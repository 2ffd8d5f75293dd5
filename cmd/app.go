package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/grovetools/praise/config"
	"github.com/grovetools/praise/pkg/praise"
	"github.com/grovetools/praise/pkg/presenter"
	"github.com/grovetools/praise/pkg/workers"
)

// assetFlags are the --assets and --variant overrides shared by serve and tui.
type assetFlags struct {
	assets  string
	variant string
}

func (f *assetFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.assets, "assets", "", "Directory with worker images (overrides assets.dir)")
	cmd.Flags().StringVar(&f.variant, "variant", "", "Page layout: grid (click a worker) or single (one rotating worker)")
}

// apply folds the flags into cfg and re-validates it.
func (f *assetFlags) apply(cfg *config.Config) error {
	if f.assets != "" {
		cfg.Assets.Dir = f.assets
	}
	if f.variant != "" {
		cfg.Presenter.Variant = f.variant
	}
	return cfg.Validate()
}

func workerOptions(cfg *config.Config) workers.Options {
	return workers.Options{
		Extensions:       cfg.Assets.Extensions,
		Exclude:          cfg.Assets.Exclude,
		Placeholders:     cfg.PlaceholdersEnabled(),
		PlaceholderCount: cfg.Assets.PlaceholderCount,
	}
}

// workerSource enumerates the asset folder on every call, so pages always
// reflect the folder as it is now.
func workerSource(cfg *config.Config) func() ([]workers.Worker, error) {
	dir := cfg.Assets.Dir
	opts := workerOptions(cfg)
	return func() ([]workers.Worker, error) {
		return workers.Enumerate(dir, opts)
	}
}

func newSelector(cfg *config.Config) *praise.Selector {
	return praise.NewSelector(praise.WithHints(cfg.HintsEnabled()))
}

func newPresenter(cfg *config.Config, now func() time.Time) *presenter.Presenter {
	return presenter.New(
		presenter.Variant(cfg.Presenter.Variant),
		newSelector(cfg),
		presenter.WithClock(now),
		presenter.WithHistoryDisplay(cfg.Presenter.HistoryDisplay),
	)
}

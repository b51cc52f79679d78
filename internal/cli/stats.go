package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deppfellow/reciters/internal/cache"
	"github.com/deppfellow/reciters/internal/database"
	"github.com/deppfellow/reciters/internal/lib/utils"
	"github.com/deppfellow/reciters/internal/model"
	"github.com/deppfellow/reciters/internal/repository"
	"github.com/deppfellow/reciters/internal/service"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print registration and results statistics as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, loggerService, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		db, err := database.New(cfg, &log, loggerService)
		if err != nil {
			return err
		}
		defer db.Close()

		services := service.NewServices(&log, repository.NewRepositories(db), cache.New(), service.Propagate)
		return writeStats(cmd.Context(), cmd.OutOrStdout(), services)
	},
}

type statsReport struct {
	Registration model.RegistrationStats `json:"registration"`
	Results      model.ResultsStats      `json:"results"`
}

// writeStats reads both summaries uncached and prints them. Any read
// failure aborts without output.
func writeStats(ctx context.Context, w io.Writer, services *service.Services) error {
	registration, err := services.Reciters.GetRegistrationStats(ctx)
	if err != nil {
		return fmt.Errorf("reading registration stats: %w", err)
	}

	results, err := services.Results.GetResultsStats(ctx)
	if err != nil {
		return fmt.Errorf("reading results stats: %w", err)
	}

	return utils.PrintJSON(w, statsReport{Registration: registration, Results: results})
}

package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kailas-cloud/catsearch/internal/app"
	catalogrepo "github.com/kailas-cloud/catsearch/internal/repository/catalog"
)

func newCatalogCommand(load func() (*session, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Args:  cobra.NoArgs,
		Short: "Catalog management",
	}

	cmd.AddCommand(newImportCommand(load))

	return cmd
}

func newImportCommand(load func() (*session, error)) *cobra.Command {
	var (
		combination string
		file        string
	)

	cmd := &cobra.Command{
		Use:   "import",
		Args:  cobra.NoArgs,
		Short: "Replace the catalog of a combination with a JSON export",
		Long: `Replace the catalog of a combination with a JSON export.

Cached results of that combination are not touched; run "cache clear"
afterwards if names or ids changed.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			combinationID, err := uuid.Parse(combination)
			if err != nil {
				return fmt.Errorf("invalid --combination: %w", err)
			}

			f, err := os.Open(filepath.Clean(file))
			if err != nil {
				return fmt.Errorf("open dump: %w", err)
			}
			defer f.Close()

			dump, err := catalogrepo.ReadDump(f)
			if err != nil {
				return err
			}

			sess, err := load()
			if err != nil {
				return err
			}
			repo, closeRepo, err := app.OpenCatalog(cmd.Context(), sess.cfg, sess.logger)
			if err != nil {
				return err
			}
			defer closeRepo()

			if err := repo.Import(cmd.Context(), combinationID, dump); err != nil {
				return err
			}
			sess.logger.Info("Imported catalog",
				zap.String("combination_id", combinationID.String()),
				zap.Int("items", len(dump.Items)),
				zap.Int("recipes", len(dump.Recipes)),
				zap.Int("translations", len(dump.Translations)),
			)
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d items, %d recipes, %d translations\n",
				len(dump.Items), len(dump.Recipes), len(dump.Translations))
			return nil
		},
	}
	cmd.Flags().StringVar(&combination, "combination", "", "combination id (UUID)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "path to the JSON catalog export")
	_ = cmd.MarkFlagRequired("combination")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

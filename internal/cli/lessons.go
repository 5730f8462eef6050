package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"lesson-author-service/internal/codec"
	"lesson-author-service/internal/config"
	pgstore "lesson-author-service/internal/infra/postgres"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
)

// NewLessonsCmd groups the lesson package utilities: template download,
// file import, and file export against the configured store.
func NewLessonsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lessons",
		Short: "Import, export, and template lesson packages",
	}
	cmd.AddCommand(newTemplateCmd())
	cmd.AddCommand(newImportCmd(configPath))
	cmd.AddCommand(newExportCmd(configPath))
	return cmd
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template [file]",
		Short: "Write the commented lesson template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "lesson_template.json"
			if len(args) == 1 {
				path = args[0]
			}
			if err := os.WriteFile(path, codec.Template(), 0o644); err != nil {
				return err
			}
			log.Printf("template written to %s", path)
			return nil
		},
	}
}

func newImportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import a lesson package file into the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			pkg, err := codec.DecodeLesson(data)
			if err != nil {
				return err
			}

			store, cleanup, err := storeFromConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			lesson, err := store.CreateLesson(cmd.Context(), codec.ToLesson(pkg))
			if err != nil {
				return err
			}
			log.Printf("imported lesson %s (%q, %d questions)",
				lesson.ID, lesson.Title, len(lesson.QuizData.Questions))
			return nil
		},
	}
}

func newExportCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "export <lessonID> [file]",
		Short: "Export a stored lesson as a package file",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, cleanup, err := storeFromConfig(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer cleanup()

			lesson, err := store.GetLesson(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			data, err := codec.EncodeLesson(lesson)
			if err != nil {
				return err
			}

			path := "lesson.json"
			if len(args) == 2 {
				path = args[1]
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return err
			}
			log.Printf("lesson %s exported to %s", lesson.ID, path)
			return nil
		},
	}
}

func storeFromConfig(ctx context.Context, configPath string) (*pgstore.LessonStore, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	if cfg.Postgres.URL == "" {
		return nil, nil, fmt.Errorf("postgres url not configured")
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return nil, nil, err
	}
	return pgstore.NewLessonStore(pool), pool.Close, nil
}

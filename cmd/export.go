/*
Copyright © 2025 Ambor <saltbo@foxmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/eslkits/drillbox/internal/app"
	"github.com/eslkits/drillbox/internal/entity"
	"github.com/eslkits/drillbox/internal/infrastructure/config"
	"github.com/eslkits/drillbox/internal/repository"
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the teaching catalog as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		output, _ := cmd.Flags().GetString("output")
		if output == "" {
			output = fmt.Sprintf("drillbox-catalog-%s.json", time.Now().Format("20060102-150405"))
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logger := newLogger(cfg)

		container, err := app.NewContainer(cfg, logger)
		if err != nil {
			return fmt.Errorf("build container: %w", err)
		}

		lessons, _, err := container.Lessons.ListLessons(ctx, &repository.ListLessonQuery{})
		if err != nil {
			return fmt.Errorf("export lessons: %w", err)
		}
		passages, _, err := container.Listening.ListPassages(ctx, &repository.ListPassageQuery{})
		if err != nil {
			return fmt.Errorf("export passages: %w", err)
		}
		categories, _, err := container.SoundChange.ListCategories(ctx, &repository.ListCategoryQuery{})
		if err != nil {
			return fmt.Errorf("export categories: %w", err)
		}

		doc := catalogDocument{
			Lessons: lo.Map(lessons, func(l entity.Lesson, _ int) catalogLesson {
				return lessonToCatalog(l)
			}),
			Passages: lo.Map(passages, func(p entity.Passage, _ int) catalogPassage {
				return passageToCatalog(p)
			}),
			Categories: lo.Map(categories, func(c entity.SoundChangeCategory, _ int) catalogCategory {
				return categoryToCatalog(c)
			}),
		}

		var out *os.File
		if output == "-" {
			out = os.Stdout
		} else {
			out, err = os.Create(output)
			if err != nil {
				return fmt.Errorf("create output file: %w", err)
			}
			defer out.Close()
		}

		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode catalog: %w", err)
		}

		logger.Infof("exported %d lessons, %d passages, %d categories",
			len(doc.Lessons), len(doc.Passages), len(doc.Categories))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringP("output", "o", "", "output file path (- for stdout)")
}

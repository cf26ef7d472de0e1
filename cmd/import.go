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

	"github.com/spf13/cobra"

	"github.com/eslkits/drillbox/internal/app"
	"github.com/eslkits/drillbox/internal/infrastructure/config"
	"github.com/eslkits/drillbox/internal/infrastructure/database"
)

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a teaching catalog from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		input, _ := cmd.Flags().GetString("input")
		if input == "" {
			return fmt.Errorf("--input is required (- for stdin)")
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
		if err := database.Migrate(container.DB); err != nil {
			return err
		}

		var in *os.File
		if input == "-" {
			in = os.Stdin
		} else {
			in, err = os.Open(input)
			if err != nil {
				return fmt.Errorf("open input file: %w", err)
			}
			defer in.Close()
		}

		var doc catalogDocument
		if err := json.NewDecoder(in).Decode(&doc); err != nil {
			return fmt.Errorf("decode catalog: %w", err)
		}

		for i := range doc.Lessons {
			if _, err := container.Lessons.CreateLesson(ctx, doc.Lessons[i].toEntity()); err != nil {
				return fmt.Errorf("import lesson %q: %w", doc.Lessons[i].Title, err)
			}
		}
		for i := range doc.Passages {
			if _, err := container.Listening.CreatePassage(ctx, doc.Passages[i].toEntity()); err != nil {
				return fmt.Errorf("import passage %q: %w", doc.Passages[i].Title, err)
			}
		}
		for i := range doc.Categories {
			if _, err := container.SoundChange.CreateCategory(ctx, doc.Categories[i].toEntity()); err != nil {
				return fmt.Errorf("import category %q: %w", doc.Categories[i].Name, err)
			}
		}

		logger.Infof("imported %d lessons, %d passages, %d categories",
			len(doc.Lessons), len(doc.Passages), len(doc.Categories))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("input", "i", "", "catalog file path (- for stdin)")
}

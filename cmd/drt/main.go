package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"drt/internal/bootstrap"
	"drt/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var vaultPath string

	root := &cobra.Command{
		Use:           "drt",
		Short:         "Document Reading Tracker",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&vaultPath, "vault", ".", "vault path")

	root.AddCommand(newTUICmd(&vaultPath))
	root.AddCommand(newIngestCmd(&vaultPath))
	root.AddCommand(newDocCmd(&vaultPath))
	root.AddCommand(newReaderCmd(&vaultPath))
	root.AddCommand(newReindexCmd(&vaultPath))
	return root
}

func loadApp(vaultPath string) (*bootstrap.App, error) {
	cfg, err := config.New(vaultPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg)
}

func newTUICmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run drt terminal UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			return bootstrap.RunTUI(*vaultPath, app)
		},
	}
}

func newIngestCmd(vaultPath *string) *cobra.Command {
	ingest := &cobra.Command{Use: "ingest", Short: "Ingest documents into the vault"}

	var docType, title string
	var authors, tags []string

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Ingest a local file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.IngestFile(context.Background(), docType, args[0], title, authors, tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ingested %s (%s) note=%s\n", out.Title, out.ID, out.NotePath)
			return nil
		},
	}
	fileCmd.Flags().StringVar(&docType, "type", "book", "document type: book|article|paper|manual")
	fileCmd.Flags().StringVar(&title, "title", "", "document title (optional)")
	fileCmd.Flags().StringSliceVar(&authors, "authors", nil, "authors")
	fileCmd.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	urlCmd := &cobra.Command{
		Use:   "url <url>",
		Short: "Ingest a URL document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.IngestURL(context.Background(), docType, args[0], title, authors, tags)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "ingested %s (%s) note=%s\n", out.Title, out.ID, out.NotePath)
			return nil
		},
	}
	urlCmd.Flags().StringVar(&docType, "type", "article", "document type: book|article|paper|manual")
	urlCmd.Flags().StringVar(&title, "title", "", "document title (optional)")
	urlCmd.Flags().StringSliceVar(&authors, "authors", nil, "authors")
	urlCmd.Flags().StringSliceVar(&tags, "tags", nil, "tags")

	ingest.AddCommand(fileCmd, urlCmd)
	return ingest
}

func newDocCmd(vaultPath *string) *cobra.Command {
	doc := &cobra.Command{Use: "doc", Short: "Document query commands"}

	doc.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List known documents",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			documents, err := app.LibraryCLI.ListDocuments(context.Background())
			if err != nil {
				return err
			}
			if len(documents) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no documents")
				return nil
			}
			for _, d := range documents {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%.1f%%\n", d.ID, d.Type, d.Title, d.Percent)
			}
			return nil
		},
	})

	var documentID string
	show := &cobra.Command{
		Use:   "show --id <id>",
		Short: "Show document details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(documentID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			d, err := app.LibraryCLI.GetDocument(context.Background(), documentID)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "id: %s\ntitle: %s\ntype: %s\nprogress: %.1f%%\nfile: %s\nurl: %s\nnote: %s\n", d.ID, d.Title, d.Type, d.Percent, d.FilePath, d.URL, d.NotePath)
			if d.PageTotal > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page: %d/%d\n", d.PageCurrent, d.PageTotal)
			}
			return nil
		},
	}
	show.Flags().StringVar(&documentID, "id", "", "document id")
	doc.AddCommand(show)

	var progressID string
	var percent float64
	var pageCurrent, pageTotal int
	progress := &cobra.Command{
		Use:   "progress --id <id>",
		Short: "Update reading progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(progressID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.LibraryCLI.UpdateProgress(context.Background(), progressID, percent, pageCurrent, pageTotal)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "updated %s progress=%.1f%%\n", out.Title, out.Percent)
			return nil
		},
	}
	progress.Flags().StringVar(&progressID, "id", "", "document id")
	progress.Flags().Float64Var(&percent, "percent", 0, "completion percent (0..100)")
	progress.Flags().IntVar(&pageCurrent, "page", 0, "current page")
	progress.Flags().IntVar(&pageTotal, "pages", 0, "total pages")
	doc.AddCommand(progress)

	return doc
}

func newReaderCmd(vaultPath *string) *cobra.Command {
	reader := &cobra.Command{Use: "reader", Short: "Reader operations"}

	var documentID, mode string
	var page int
	var external bool
	open := &cobra.Command{
		Use:   "open --id <id>",
		Short: "Open a document in the reader flow",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(documentID) == "" {
				return fmt.Errorf("--id is required")
			}
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			out, err := app.ReaderCLI.OpenDocument(context.Background(), documentID, mode, page, external)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "document=%s title=%q type=%s mode=%s progress=%.1f%%\n", out.DocumentID, out.Title, out.Type, out.Mode, out.Percent)
			if out.Page > 0 {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "page=%d/%d\n", out.Page, out.TotalPage)
			}
			if out.ExternalTarget != "" {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "target=%s launched=%t\n", out.ExternalTarget, out.ExternalLaunched)
			}
			if strings.TrimSpace(out.Content) != "" {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Content)
			}
			return nil
		},
	}
	open.Flags().StringVar(&documentID, "id", "", "document id")
	open.Flags().StringVar(&mode, "mode", "auto", "reader mode: auto|markdown|pdf|external")
	open.Flags().IntVar(&page, "page", 0, "pdf page (0 resumes at the saved page)")
	open.Flags().BoolVar(&external, "external", false, "launch external target when applicable")

	reader.AddCommand(open)
	return reader
}

func newReindexCmd(vaultPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "reindex",
		Short: "Rebuild the SQLite index from vault markdown",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*vaultPath)
			if err != nil {
				return err
			}
			if err := app.LibraryCLI.Reindex(context.Background()); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reindex completed")
			return nil
		},
	}
}

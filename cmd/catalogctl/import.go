package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/2beens/setsbymuscle/internal/gymstats/catalog"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const maxRemoteCatalogBytes = 10 << 20

func newImportCmd(a *app) *cobra.Command {
	var (
		replace  bool
		noBackup bool
	)
	cmd := &cobra.Command{
		Use:   "import <file or url>",
		Short: "Merge exercises from another catalog document",
		Long: `Merge the exercises of another catalog document (.json, .yaml, or an
http(s) URL) into the catalog. Exercises with an existing id are conflicts:
they are reported and the import is refused unless --replace is given.
The previous catalog is copied next to it before it is overwritten.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			existing, err := catalog.ReadDocument(a.catalogPath)
			if err != nil {
				return err
			}
			incoming, err := readSource(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			merged, report, err := catalog.Merge(existing, incoming, replace, a.today())
			for _, c := range report.Conflicts {
				fmt.Fprintf(out, "conflict: %s (%q -> %q)\n", c.ID, c.Existing, c.Imported)
			}
			if errors.Is(err, catalog.ErrConflicts) {
				return fmt.Errorf("%w: rerun with --replace to overwrite %d exercise(s)", err, len(report.Conflicts))
			}
			if err != nil {
				return err
			}

			if !noBackup {
				backupPath, err := backupFile(a.catalogPath, a.now())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "previous catalog saved to %s\n", backupPath)
			}
			if err := catalog.WriteDocument(a.catalogPath, merged); err != nil {
				return err
			}

			fmt.Fprintf(out, "imported: %d added, %d replaced, catalog now has %d exercises\n",
				len(report.Added), len(report.Conflicts), len(merged.Exercises))
			return nil
		},
	}
	cmd.Flags().BoolVar(&replace, "replace", false, "overwrite existing exercises with the same id")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "do not keep a copy of the previous catalog")
	return cmd
}

func readSource(ctx context.Context, source string) (*catalog.Document, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return catalog.ReadDocument(source)
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := tracedHttpClient.Do(req)
	if err != nil {
		return nil, &catalog.LoadError{Source: source, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return nil, &catalog.LoadError{Source: source, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxRemoteCatalogBytes))
	if err != nil {
		return nil, &catalog.LoadError{Source: source, Err: err}
	}
	doc, err := catalog.Parse(data, catalog.FormatFromPath(req.URL.Path))
	if err != nil {
		return nil, &catalog.LoadError{Source: source, Err: err}
	}
	return doc, nil
}

// backupFile copies path to path.bak-<timestamp> and returns the copy's path.
func backupFile(path string, now time.Time) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read catalog for backup: %w", err)
	}
	backupPath := fmt.Sprintf("%s.bak-%s", path, now.UTC().Format("20060102T150405"))
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		return "", fmt.Errorf("write catalog backup: %w", err)
	}
	return backupPath, nil
}

// Package warmup parses dictionary files at startup, priming the shared
// file cache in the dictionary package so the first codeAction request
// does not pay the full load cost.
package warmup

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/amarbel-llc/spelld/internal/config"
	"github.com/amarbel-llc/spelld/internal/dictionary"
)

const maxConcurrentLoads = 4

// Preload parses every configured dictionary file concurrently into the
// dictionary file cache, where later Load calls find them. Unreadable
// files are logged, not fatal; the server still starts and the resolution
// path reports the error per request.
func Preload(ctx context.Context, s config.Settings) {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentLoads)

	for _, path := range s.DictionaryFiles {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return nil
			}
			words, err := dictionary.LoadFile(path)
			if err != nil {
				slog.Warn("dictionary preload failed", "path", path, "err", err)
				return nil
			}
			slog.Debug("dictionary preloaded", "path", path, "words", len(words))
			return nil
		})
	}

	g.Wait()
}

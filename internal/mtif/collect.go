// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"
)

// Collect reads every record of the export at path and parses them on up to
// workers goroutines. Posts are returned in file order.
func Collect(ctx context.Context, path string, workers int, opts ...Option) ([]*Post, error) {
	p := NewParser(path, opts...)
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("opening export: %w", err)
	}
	defer func() { _ = p.Close() }()

	var blocks []string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		block, ok := p.NextBlock()
		if !ok {
			break
		}
		blocks = append(blocks, block)
	}
	if err := p.Err(); err != nil {
		return nil, fmt.Errorf("reading export: %w", err)
	}

	return ParseBlocks(ctx, blocks, workers, p.Location())
}

// ParseBlocks parses raw records concurrently, keeping their order. Dates
// without an offset are read in loc; nil means time.Local.
func ParseBlocks(ctx context.Context, blocks []string, workers int, loc *time.Location) ([]*Post, error) {
	if workers < 1 {
		workers = 1
	}

	posts := make([]*Post, len(blocks))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, block := range blocks {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			posts[i] = ParsePostIn(block, loc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return posts, nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/olegiv/ocms-mtif/cmd/mtif/output"
	mt "github.com/olegiv/ocms-mtif/internal/mtif"
)

var (
	// Inspect flags
	inspectLimit     int
	inspectTranscode bool
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show the posts parsed from an MTIF export",
	Long: `Parse an MTIF export without touching the database and show what was found.

Examples:
  mtif inspect export.txt                  # Summary of every post
  mtif inspect export.txt --limit 5        # First five posts only
  mtif inspect export.txt --json           # Full parsed posts as JSON`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInspect(args[0])
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().IntVarP(&inspectLimit, "limit", "n", 0, "Show at most this many posts (0 = all)")
	inspectCmd.Flags().BoolVar(&inspectTranscode, "transcode", false, "Decode non-UTF-8 exports")
}

// commentView is the JSON shape of a parsed comment.
type commentView struct {
	Author string    `json:"author"`
	Email  string    `json:"email,omitempty"`
	URL    string    `json:"url,omitempty"`
	IP     string    `json:"ip,omitempty"`
	Date   time.Time `json:"date,omitzero"`
	Body   string    `json:"body"`
}

// postView is the JSON shape of a parsed post.
type postView struct {
	Title           string        `json:"title"`
	Author          string        `json:"author,omitempty"`
	Date            time.Time     `json:"date"`
	Status          string        `json:"status"`
	Basename        string        `json:"basename,omitempty"`
	PrimaryCategory string        `json:"primary_category,omitempty"`
	Categories      []string      `json:"categories,omitempty"`
	Keywords        []string      `json:"keywords,omitempty"`
	AllowComments   bool          `json:"allow_comments"`
	AllowPings      bool          `json:"allow_pings"`
	TextFilter      string        `json:"text_filter,omitempty"`
	ConvertBreaks   bool          `json:"convert_breaks"`
	Body            string        `json:"body"`
	Excerpt         string        `json:"excerpt,omitempty"`
	Comments        []commentView `json:"comments,omitempty"`
}

func newPostView(p *mt.Post) postView {
	v := postView{
		Title:           p.Title,
		Author:          p.Author.Login,
		Date:            p.Date,
		Status:          string(p.Status),
		Basename:        p.Basename,
		PrimaryCategory: p.PrimaryCategory,
		Categories:      p.Categories,
		Keywords:        p.Keywords,
		AllowComments:   p.AllowComments,
		AllowPings:      p.AllowPings,
		TextFilter:      p.TextFilter,
		ConvertBreaks:   p.ConvertBreaks,
		Body:            p.Body(),
		Excerpt:         p.Excerpt(),
	}
	for _, c := range p.Comments() {
		v.Comments = append(v.Comments, commentView{
			Author: c.Author,
			Email:  c.Email,
			URL:    c.URL,
			IP:     c.IP,
			Date:   c.Date,
			Body:   c.Body,
		})
	}
	return v
}

func runInspect(path string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := []mt.Option{mt.WithLocation(cfg.Location())}
	if inspectTranscode || cfg.Transcode {
		opts = append(opts, mt.WithTranscoding())
	}

	posts, err := mt.Collect(ctx, path, cfg.Workers, opts...)
	if err != nil {
		return err
	}
	if len(posts) == 0 {
		output.Warning("No records found in %s", path)
		return nil
	}

	total := len(posts)
	if inspectLimit > 0 && inspectLimit < total {
		posts = posts[:inspectLimit]
	}

	if jsonOutput {
		return writePostsJSON(os.Stdout, posts)
	}

	output.Section(fmt.Sprintf("%s (%d posts)", path, total))
	for _, p := range posts {
		printPostSummary(p)
	}
	if len(posts) < total {
		output.Muted("... %d more", total-len(posts))
	}
	return nil
}

func writePostsJSON(w io.Writer, posts []*mt.Post) error {
	views := make([]postView, 0, len(posts))
	for _, p := range posts {
		views = append(views, newPostView(p))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(views)
}

func printPostSummary(p *mt.Post) {
	title := p.Title
	if title == "" {
		title = "(untitled)"
	}
	output.Info("%s", title)
	output.Row("Author", p.Author.Login)
	output.Row("Date", p.Date.Format(time.DateTime))
	output.Row("Status", p.Status)
	if cats := p.AllCategories(); len(cats) > 0 {
		output.Row("Categories", cats)
	}
	if len(p.Keywords) > 0 {
		output.Row("Keywords", p.Keywords)
	}
	output.Row("Comments", len(p.Comments()))
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package mtif

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/olegiv/ocms-mtif/internal/auth"
	"github.com/olegiv/ocms-mtif/internal/content"
	"github.com/olegiv/ocms-mtif/internal/model"
	mt "github.com/olegiv/ocms-mtif/internal/mtif"
	"github.com/olegiv/ocms-mtif/internal/store"
	"github.com/olegiv/ocms-mtif/internal/util"
	"github.com/olegiv/ocms-mtif/modules/migrator/types"
)

// defaultWorkers is the number of parse workers when the options leave it unset.
const defaultWorkers = 4

// fallbackSlug is used for posts whose basename and title yield no slug.
const fallbackSlug = "post"

// Import reads the export named in cfg and writes its content into the oCMS
// database. Per-item failures are collected in the result; the returned error
// is reserved for problems that stop the whole run, including cancellation.
func (s *Source) Import(ctx context.Context, db *sql.DB, cfg map[string]string, opts types.ImportOptions, tracker types.ImportTracker) (*types.ImportResult, error) {
	path := strings.TrimSpace(cfg[ConfigFilePath])
	if path == "" {
		return nil, fmt.Errorf("%s is required", ConfigFilePath)
	}

	loc, err := loadLocation(cfg[ConfigTimezone])
	if err != nil {
		return nil, err
	}
	workers := opts.Workers
	if workers < 1 {
		workers = defaultWorkers
	}

	posts, err := mt.Collect(ctx, path, workers, append(parserOptions(cfg), mt.WithLocation(loc))...)
	if err != nil {
		return nil, fmt.Errorf("failed to read MTIF export: %w", err)
	}

	imp := newImporter(s.Name(), db, opts, tracker)

	authorLogin := strings.TrimSpace(cfg[ConfigDefaultAuthor])
	if authorLogin == "" {
		authorLogin = DefaultAuthorLogin
	}
	if err := imp.prepare(ctx, authorLogin); err != nil {
		return nil, err
	}

	for _, post := range posts {
		if err := ctx.Err(); err != nil {
			return imp.result, err
		}
		if imp.limiter != nil {
			if err := imp.limiter.Wait(ctx); err != nil {
				return imp.result, err
			}
		}
		imp.importPost(ctx, post)
	}

	return imp.result, nil
}

// importer holds the state of one import run.
type importer struct {
	source  string
	db      *sql.DB
	queries *store.Queries
	opts    types.ImportOptions
	tracker types.ImportTracker
	result  *types.ImportResult
	limiter *rate.Limiter

	defaultAuthorID int64
	passwordHash    string

	users      map[string]int64
	categories map[string]int64
	tags       map[string]int64
	slugs      map[string]bool // Slugs taken during this run
	dryRunID   int64
}

func newImporter(source string, db *sql.DB, opts types.ImportOptions, tracker types.ImportTracker) *importer {
	imp := &importer{
		source:     source,
		db:         db,
		queries:    store.New(db),
		opts:       opts,
		tracker:    tracker,
		result:     &types.ImportResult{},
		users:      make(map[string]int64),
		categories: make(map[string]int64),
		tags:       make(map[string]int64),
		slugs:      make(map[string]bool),
	}
	if opts.RateLimit > 0 {
		imp.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), 1)
	}
	return imp
}

// prepare resolves the default author and the shared password hash.
func (imp *importer) prepare(ctx context.Context, authorLogin string) error {
	if imp.opts.DryRun {
		user, err := imp.queries.GetUserByLogin(ctx, authorLogin)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to look up default author: %w", err)
		}
		imp.defaultAuthorID = user.ID
		return nil
	}

	user, err := store.SeedDefaultAuthor(ctx, imp.db, authorLogin)
	if err != nil {
		return fmt.Errorf("failed to get default author: %w", err)
	}
	imp.defaultAuthorID = user.ID
	imp.users[authorLogin] = user.ID

	if imp.opts.ImportAuthors {
		// Imported authors share one placeholder password and must reset it.
		hash, err := auth.PlaceholderHash()
		if err != nil {
			return err
		}
		imp.passwordHash = hash
	}
	return nil
}

// termLink is a category or tag resolved for one post.
type termLink struct {
	id      int64
	primary bool
}

// importPost writes one post with its taxonomy and comments. Failures are
// recorded in the result and never stop the run.
func (imp *importer) importPost(ctx context.Context, post *mt.Post) {
	comments := post.Comments()
	if !imp.opts.ImportComments {
		comments = nil
	}

	baseSlug := util.SlugFromBasename(post.Basename, post.Title)
	if baseSlug == "" {
		baseSlug = fallbackSlug
	}

	if imp.opts.SkipExisting {
		taken, err := imp.slugTaken(ctx, baseSlug)
		if err != nil {
			imp.fail("Failed to check post '%s': %v", post.Title, err)
			return
		}
		if taken {
			imp.result.PostsSkipped++
			imp.result.CommentsSkipped += len(comments)
			return
		}
	}

	slug, err := imp.uniqueSlug(ctx, baseSlug)
	if err != nil {
		imp.fail("Failed to choose slug for post '%s': %v", post.Title, err)
		return
	}

	authorID, err := imp.authorFor(ctx, post.Author)
	if err != nil {
		imp.fail("Failed to create author '%s': %v", post.Author.Login, err)
		return
	}

	categories, tags := imp.resolveTerms(ctx, post)

	body, err := content.RenderBody(post.Body(), post.TextFilter, post.ConvertBreaks)
	if err != nil {
		imp.fail("Failed to render body of post '%s': %v", post.Title, err)
		body = post.Body()
	}
	excerpt, err := content.RenderBody(post.Excerpt(), post.TextFilter, post.ConvertBreaks)
	if err != nil {
		imp.fail("Failed to render excerpt of post '%s': %v", post.Title, err)
		excerpt = post.Excerpt()
	}

	status := storeStatus(post.Status)
	var publishedAt sql.NullTime
	if status == model.PostStatusPublished {
		publishedAt = util.NullTimeFromValue(post.Date)
	}

	if imp.opts.DryRun {
		imp.slugs[slug] = true
		post.ID = imp.nextDryRunID()
		imp.result.PostsImported++
		imp.result.CommentsImported += len(comments)
		return
	}

	now := time.Now()
	postID, commentIDs, err := imp.writePost(ctx, store.CreatePostParams{
		Title:         post.Title,
		Slug:          slug,
		Body:          body,
		Excerpt:       excerpt,
		Status:        status,
		AuthorID:      authorID,
		AllowComments: post.AllowComments,
		AllowPings:    post.AllowPings,
		TextFilter:    post.TextFilter,
		PostType:      post.PostType,
		MenuOrder:     int64(post.MenuOrder),
		PublishedAt:   publishedAt,
		CreatedAt:     post.Date,
		UpdatedAt:     now,
	}, categories, tags, comments, post.Date)
	if err != nil {
		imp.fail("Failed to create post '%s': %v", post.Title, err)
		return
	}

	imp.slugs[slug] = true
	post.ID = postID
	imp.track(ctx, model.EntityPost, postID)
	for _, id := range commentIDs {
		imp.track(ctx, model.EntityComment, id)
	}
	imp.result.PostsImported++
	imp.result.CommentsImported += len(commentIDs)
}

// writePost creates the post, its taxonomy links and its comments in one
// transaction.
func (imp *importer) writePost(ctx context.Context, params store.CreatePostParams, categories, tags []termLink, comments []*mt.Comment, postDate time.Time) (int64, []int64, error) {
	tx, err := imp.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer func() { _ = tx.Rollback() }()

	q := imp.queries.WithTx(tx)

	created, err := q.CreatePost(ctx, params)
	if err != nil {
		return 0, nil, err
	}

	for _, c := range categories {
		if err := q.AddCategoryToPost(ctx, store.AddCategoryToPostParams{
			PostID:     created.ID,
			CategoryID: c.id,
			IsPrimary:  c.primary,
		}); err != nil {
			return 0, nil, fmt.Errorf("adding category: %w", err)
		}
	}
	for _, t := range tags {
		if err := q.AddTagToPost(ctx, store.AddTagToPostParams{
			PostID: created.ID,
			TagID:  t.id,
		}); err != nil {
			return 0, nil, fmt.Errorf("adding tag: %w", err)
		}
	}

	commentIDs := make([]int64, 0, len(comments))
	for _, c := range comments {
		date := c.Date
		if !c.HasDate() {
			date = postDate
		}
		comment, err := q.CreateComment(ctx, store.CreateCommentParams{
			PostID:      created.ID,
			AuthorName:  c.Author,
			AuthorEmail: c.Email,
			AuthorUrl:   c.URL,
			AuthorIp:    c.IP,
			Body:        content.SanitizeComment(c.Body),
			CreatedAt:   date,
		})
		if err != nil {
			return 0, nil, fmt.Errorf("adding comment by '%s': %w", c.Author, err)
		}
		commentIDs = append(commentIDs, comment.ID)
	}

	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	return created.ID, commentIDs, nil
}

// authorFor returns the user ID that owns a post, creating the user on first
// sight when authors are imported.
func (imp *importer) authorFor(ctx context.Context, author mt.Author) (int64, error) {
	login := strings.TrimSpace(author.Login)
	if !imp.opts.ImportAuthors || login == "" {
		return imp.defaultAuthorID, nil
	}
	if id, ok := imp.users[login]; ok {
		return id, nil
	}

	existing, err := imp.queries.GetUserByLogin(ctx, login)
	if err == nil {
		imp.users[login] = existing.ID
		imp.result.UsersSkipped++
		return existing.ID, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}

	if imp.opts.DryRun {
		id := imp.nextDryRunID()
		imp.users[login] = id
		imp.result.UsersImported++
		return id, nil
	}

	now := time.Now()
	user, err := imp.queries.CreateUser(ctx, store.CreateUserParams{
		Login:        login,
		Email:        author.Email,
		Name:         author.Name(),
		PasswordHash: imp.passwordHash, // Placeholder - users must reset password
		Role:         model.RoleAuthor,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return 0, err
	}

	imp.track(ctx, model.EntityUser, user.ID)
	imp.users[login] = user.ID
	imp.result.UsersImported++
	return user.ID, nil
}

// resolveTerms returns the category and tag links of a post, creating terms
// that do not exist yet. A term that cannot be created is reported and left
// off the post.
func (imp *importer) resolveTerms(ctx context.Context, post *mt.Post) (categories, tags []termLink) {
	if imp.opts.ImportCategories {
		for _, name := range post.AllCategories() {
			id, ok := imp.ensureCategory(ctx, name)
			if ok {
				categories = append(categories, termLink{id: id, primary: name == post.PrimaryCategory})
			}
		}
	}
	if imp.opts.ImportTags {
		seen := make(map[int64]bool)
		for _, keyword := range post.Keywords {
			id, ok := imp.ensureTag(ctx, keyword)
			if ok && !seen[id] {
				seen[id] = true
				tags = append(tags, termLink{id: id})
			}
		}
	}
	return categories, tags
}

func (imp *importer) ensureCategory(ctx context.Context, name string) (int64, bool) {
	slug := util.Slugify(name)
	if slug == "" {
		return 0, false
	}
	if id, ok := imp.categories[slug]; ok {
		return id, true
	}

	existing, err := imp.queries.GetCategoryBySlug(ctx, slug)
	if err == nil {
		imp.categories[slug] = existing.ID
		imp.result.CategoriesSkipped++
		return existing.ID, true
	}
	if !errors.Is(err, sql.ErrNoRows) {
		imp.fail("Failed to look up category '%s': %v", name, err)
		return 0, false
	}

	if imp.opts.DryRun {
		id := imp.nextDryRunID()
		imp.categories[slug] = id
		imp.result.CategoriesImported++
		return id, true
	}

	now := time.Now()
	category, err := imp.queries.CreateCategory(ctx, store.CreateCategoryParams{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		imp.fail("Failed to create category '%s': %v", name, err)
		return 0, false
	}

	imp.track(ctx, model.EntityCategory, category.ID)
	imp.categories[slug] = category.ID
	imp.result.CategoriesImported++
	return category.ID, true
}

func (imp *importer) ensureTag(ctx context.Context, name string) (int64, bool) {
	slug := util.Slugify(name)
	if slug == "" {
		return 0, false
	}
	if id, ok := imp.tags[slug]; ok {
		return id, true
	}

	existing, err := imp.queries.GetTagBySlug(ctx, slug)
	if err == nil {
		imp.tags[slug] = existing.ID
		imp.result.TagsSkipped++
		return existing.ID, true
	}
	if !errors.Is(err, sql.ErrNoRows) {
		imp.fail("Failed to look up tag '%s': %v", name, err)
		return 0, false
	}

	if imp.opts.DryRun {
		id := imp.nextDryRunID()
		imp.tags[slug] = id
		imp.result.TagsImported++
		return id, true
	}

	now := time.Now()
	tag, err := imp.queries.CreateTag(ctx, store.CreateTagParams{
		Name:      name,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		imp.fail("Failed to create tag '%s': %v", name, err)
		return 0, false
	}

	imp.track(ctx, model.EntityTag, tag.ID)
	imp.tags[slug] = tag.ID
	imp.result.TagsImported++
	return tag.ID, true
}

// slugTaken reports whether a post already uses slug, in the database or
// earlier in this run.
func (imp *importer) slugTaken(ctx context.Context, slug string) (bool, error) {
	if imp.slugs[slug] {
		return true, nil
	}
	_, err := imp.queries.GetPostBySlug(ctx, slug)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, sql.ErrNoRows):
		return false, nil
	default:
		return false, err
	}
}

// uniqueSlug generates a unique slug by appending -2, -3, etc. if needed.
func (imp *importer) uniqueSlug(ctx context.Context, baseSlug string) (string, error) {
	taken, err := imp.slugTaken(ctx, baseSlug)
	if err != nil || !taken {
		return baseSlug, err
	}

	for i := 2; i <= 100; i++ {
		slug := baseSlug + "-" + strconv.Itoa(i)
		taken, err := imp.slugTaken(ctx, slug)
		if err != nil {
			return "", err
		}
		if !taken {
			return slug, nil
		}
	}

	// Fallback: append timestamp
	return baseSlug + "-" + strconv.FormatInt(time.Now().UnixNano(), 36), nil
}

// track records an imported row with the tracker, if there is one.
func (imp *importer) track(ctx context.Context, entityType string, id int64) {
	if imp.tracker == nil {
		return
	}
	if err := imp.tracker.TrackImportedItem(ctx, imp.source, entityType, id); err != nil {
		imp.fail("Failed to track %s %d: %v", entityType, id, err)
	}
}

func (imp *importer) fail(format string, args ...any) {
	imp.result.Errors = append(imp.result.Errors, fmt.Sprintf(format, args...))
}

// nextDryRunID hands out negative IDs so dry-run posts are never mistaken
// for stored rows.
func (imp *importer) nextDryRunID() int64 {
	imp.dryRunID--
	return imp.dryRunID
}

// storeStatus maps a parsed status to the value stored in posts.status.
func storeStatus(s mt.Status) string {
	switch s {
	case mt.StatusDraft:
		return model.PostStatusDraft
	case mt.StatusPublish:
		return model.PostStatusPublished
	default:
		return string(s)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// testDB creates a temporary test database.
func testDB(t *testing.T) (*sql.DB, func()) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "mtif-test.db")

	db, err := NewDB(dbPath)
	if err != nil {
		t.Fatalf("NewDB: %v", err)
	}

	if err := Migrate(db); err != nil {
		_ = db.Close()
		t.Fatalf("Migrate: %v", err)
	}

	cleanup := func() {
		_ = db.Close()
		_ = os.Remove(dbPath)
	}

	return db, cleanup
}

func createTestUser(t *testing.T, q *Queries, login string) User {
	t.Helper()

	now := time.Now()
	user, err := q.CreateUser(context.Background(), CreateUserParams{
		Login:        login,
		Email:        login + "@example.com",
		Name:         "Test " + login,
		PasswordHash: "hashed-password",
		Role:         "author",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return user
}

func createTestPost(t *testing.T, q *Queries, authorID int64, slug string) Post {
	t.Helper()

	now := time.Now()
	post, err := q.CreatePost(context.Background(), CreatePostParams{
		Title:         "Post " + slug,
		Slug:          slug,
		Body:          "<p>Body</p>",
		Excerpt:       "Excerpt",
		Status:        "published",
		AuthorID:      authorID,
		AllowComments: true,
		TextFilter:    "markdown",
		PostType:      "post",
		PublishedAt:   sql.NullTime{Time: now, Valid: true},
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}
	return post
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	if err := Migrate(db); err != nil {
		t.Fatalf("second Migrate: %v", err)
	}
}

func TestCreateUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)

	user := createTestUser(t, q, "melody")

	if user.ID == 0 {
		t.Error("expected non-zero user ID")
	}
	if user.Login != "melody" {
		t.Errorf("Login = %q, want %q", user.Login, "melody")
	}

	got, err := q.GetUserByLogin(ctx, "melody")
	if err != nil {
		t.Fatalf("GetUserByLogin: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %d, want %d", got.ID, user.ID)
	}
	if got.Email != "melody@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "melody@example.com")
	}

	if _, err := q.GetUserByLogin(ctx, "nobody"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("GetUserByLogin(nobody) error = %v, want sql.ErrNoRows", err)
	}
}

func TestCreateUser_DuplicateLogin(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	createTestUser(t, q, "melody")

	now := time.Now()
	_, err := q.CreateUser(context.Background(), CreateUserParams{
		Login:        "melody",
		PasswordHash: "x",
		Role:         "author",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err == nil {
		t.Error("expected unique constraint error for duplicate login")
	}
}

func TestDeleteUser(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "melody")

	if err := q.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser: %v", err)
	}
	if _, err := q.GetUserByLogin(ctx, "melody"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected user to be deleted, got err = %v", err)
	}
}

func TestDeleteUser_WithPosts(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "melody")
	createTestPost(t, q, user.ID, "hello")

	if err := q.DeleteUser(ctx, user.ID); err == nil {
		t.Error("expected foreign key error when deleting an author with posts")
	}
}

func TestCreatePost(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "melody")
	post := createTestPost(t, q, user.ID, "hello-world")

	if post.ID == 0 {
		t.Error("expected non-zero post ID")
	}

	got, err := q.GetPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("GetPost: %v", err)
	}
	if got.Slug != "hello-world" {
		t.Errorf("Slug = %q, want %q", got.Slug, "hello-world")
	}
	if !got.AllowComments {
		t.Error("AllowComments should be true")
	}
	if got.AllowPings {
		t.Error("AllowPings should be false")
	}
	if !got.PublishedAt.Valid {
		t.Error("PublishedAt should be set")
	}
	if got.AuthorID != user.ID {
		t.Errorf("AuthorID = %d, want %d", got.AuthorID, user.ID)
	}

	bySlug, err := q.GetPostBySlug(ctx, "hello-world")
	if err != nil {
		t.Fatalf("GetPostBySlug: %v", err)
	}
	if bySlug.ID != post.ID {
		t.Errorf("GetPostBySlug ID = %d, want %d", bySlug.ID, post.ID)
	}

	count, err := q.CountPosts(ctx)
	if err != nil {
		t.Fatalf("CountPosts: %v", err)
	}
	if count != 1 {
		t.Errorf("CountPosts = %d, want 1", count)
	}
}

func TestCreatePost_DuplicateSlug(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	q := New(db)
	user := createTestUser(t, q, "melody")
	createTestPost(t, q, user.ID, "hello")

	now := time.Now()
	_, err := q.CreatePost(context.Background(), CreatePostParams{
		Title:     "Again",
		Slug:      "hello",
		Status:    "draft",
		AuthorID:  user.ID,
		PostType:  "post",
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err == nil {
		t.Error("expected unique constraint error for duplicate slug")
	}
}

func TestCategoriesAndTags(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "melody")
	post := createTestPost(t, q, user.ID, "hello")
	now := time.Now()

	news, err := q.CreateCategory(ctx, CreateCategoryParams{Name: "News", Slug: "news", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	misc, err := q.CreateCategory(ctx, CreateCategoryParams{Name: "Misc", Slug: "misc", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}
	tag, err := q.CreateTag(ctx, CreateTagParams{Name: "Go", Slug: "go", CreatedAt: now, UpdatedAt: now})
	if err != nil {
		t.Fatalf("CreateTag: %v", err)
	}

	if err := q.AddCategoryToPost(ctx, AddCategoryToPostParams{PostID: post.ID, CategoryID: news.ID, IsPrimary: true}); err != nil {
		t.Fatalf("AddCategoryToPost: %v", err)
	}
	if err := q.AddCategoryToPost(ctx, AddCategoryToPostParams{PostID: post.ID, CategoryID: misc.ID}); err != nil {
		t.Fatalf("AddCategoryToPost: %v", err)
	}
	// Adding the same association twice is a no-op.
	if err := q.AddTagToPost(ctx, AddTagToPostParams{PostID: post.ID, TagID: tag.ID}); err != nil {
		t.Fatalf("AddTagToPost: %v", err)
	}
	if err := q.AddTagToPost(ctx, AddTagToPostParams{PostID: post.ID, TagID: tag.ID}); err != nil {
		t.Fatalf("AddTagToPost (again): %v", err)
	}

	cats, err := q.ListPostCategories(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListPostCategories: %v", err)
	}
	if len(cats) != 2 || cats[0].Slug != "news" {
		t.Errorf("ListPostCategories = %+v, want news first", cats)
	}

	tags, err := q.ListPostTags(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListPostTags: %v", err)
	}
	if len(tags) != 1 {
		t.Errorf("len(tags) = %d, want 1", len(tags))
	}

	gotCat, err := q.GetCategoryBySlug(ctx, "misc")
	if err != nil {
		t.Fatalf("GetCategoryBySlug: %v", err)
	}
	if gotCat.ID != misc.ID {
		t.Errorf("GetCategoryBySlug ID = %d, want %d", gotCat.ID, misc.ID)
	}
	gotTag, err := q.GetTagBySlug(ctx, "go")
	if err != nil {
		t.Fatalf("GetTagBySlug: %v", err)
	}
	if gotTag.Name != "Go" {
		t.Errorf("GetTagBySlug Name = %q, want %q", gotTag.Name, "Go")
	}

	if err := q.ClearPostTaxonomy(ctx, post.ID); err != nil {
		t.Fatalf("ClearPostTaxonomy: %v", err)
	}
	cats, _ = q.ListPostCategories(ctx, post.ID)
	tags, _ = q.ListPostTags(ctx, post.ID)
	if len(cats) != 0 || len(tags) != 0 {
		t.Errorf("expected no taxonomy after clear, got %d categories and %d tags", len(cats), len(tags))
	}

	if err := q.DeleteCategory(ctx, news.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	if err := q.DeleteTag(ctx, tag.ID); err != nil {
		t.Fatalf("DeleteTag: %v", err)
	}
	if _, err := q.GetTagBySlug(ctx, "go"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("expected tag to be deleted, got err = %v", err)
	}
}

func TestComments(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "melody")
	post := createTestPost(t, q, user.ID, "hello")

	for _, name := range []string{"Alice", "Bob"} {
		if _, err := q.CreateComment(ctx, CreateCommentParams{
			PostID:      post.ID,
			AuthorName:  name,
			AuthorEmail: name + "@example.com",
			AuthorUrl:   "http://example.com",
			AuthorIp:    "127.0.0.1",
			Body:        "Hi from " + name,
			CreatedAt:   time.Now(),
		}); err != nil {
			t.Fatalf("CreateComment: %v", err)
		}
	}

	comments, err := q.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListCommentsByPost: %v", err)
	}
	if len(comments) != 2 {
		t.Fatalf("len(comments) = %d, want 2", len(comments))
	}
	if comments[0].AuthorName != "Alice" || comments[1].AuthorName != "Bob" {
		t.Errorf("comments out of order: %q, %q", comments[0].AuthorName, comments[1].AuthorName)
	}

	if err := q.DeleteComment(ctx, comments[0].ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if err := q.DeleteCommentsByPost(ctx, post.ID); err != nil {
		t.Fatalf("DeleteCommentsByPost: %v", err)
	}
	comments, _ = q.ListCommentsByPost(ctx, post.ID)
	if len(comments) != 0 {
		t.Errorf("len(comments) = %d after delete, want 0", len(comments))
	}
}

func TestDeletePost_CascadesComments(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	user := createTestUser(t, q, "melody")
	post := createTestPost(t, q, user.ID, "hello")

	if _, err := q.CreateComment(ctx, CreateCommentParams{PostID: post.ID, Body: "hi", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("CreateComment: %v", err)
	}

	if err := q.DeletePost(ctx, post.ID); err != nil {
		t.Fatalf("DeletePost: %v", err)
	}
	comments, err := q.ListCommentsByPost(ctx, post.ID)
	if err != nil {
		t.Fatalf("ListCommentsByPost: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("expected comments to cascade, got %d", len(comments))
	}
}

func TestImportItems(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	now := time.Now()

	items := []TrackImportItemParams{
		{BatchID: "b1", Source: "mtif", EntityType: "post", EntityID: 1, CreatedAt: now},
		{BatchID: "b1", Source: "mtif", EntityType: "post", EntityID: 2, CreatedAt: now},
		{BatchID: "b1", Source: "mtif", EntityType: "tag", EntityID: 7, CreatedAt: now},
		{BatchID: "b2", Source: "other", EntityType: "post", EntityID: 3, CreatedAt: now},
	}
	for _, item := range items {
		if err := q.TrackImportItem(ctx, item); err != nil {
			t.Fatalf("TrackImportItem: %v", err)
		}
	}

	ids, err := q.ListImportItems(ctx, ListImportItemsParams{Source: "mtif", EntityType: "post"})
	if err != nil {
		t.Fatalf("ListImportItems: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 2 {
		t.Errorf("ListImportItems = %v, want [1 2]", ids)
	}

	counts, err := q.CountImportItems(ctx, "mtif")
	if err != nil {
		t.Fatalf("CountImportItems: %v", err)
	}
	want := map[string]int64{"post": 2, "tag": 1}
	if len(counts) != len(want) {
		t.Fatalf("CountImportItems = %+v, want %v", counts, want)
	}
	for _, c := range counts {
		if want[c.EntityType] != c.Cnt {
			t.Errorf("count[%s] = %d, want %d", c.EntityType, c.Cnt, want[c.EntityType])
		}
	}

	if err := q.DeleteImportItems(ctx, "mtif"); err != nil {
		t.Fatalf("DeleteImportItems: %v", err)
	}
	counts, _ = q.CountImportItems(ctx, "mtif")
	if len(counts) != 0 {
		t.Errorf("expected no mtif items after delete, got %+v", counts)
	}
	other, _ := q.CountImportItems(ctx, "other")
	if len(other) != 1 {
		t.Errorf("other source items should survive, got %+v", other)
	}
}

func TestEvents(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	q := New(db)
	base := time.Now()

	for i, msg := range []string{"first", "second", "third"} {
		if _, err := q.CreateEvent(ctx, CreateEventParams{
			Level:     "warning",
			Category:  "import",
			Message:   msg,
			Metadata:  "{}",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}); err != nil {
			t.Fatalf("CreateEvent: %v", err)
		}
	}

	events, err := q.ListEvents(ctx, ListEventsParams{Limit: 2, Offset: 0})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	if events[0].Message != "third" {
		t.Errorf("newest event = %q, want %q", events[0].Message, "third")
	}
}

func TestWithTx_Rollback(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("BeginTx: %v", err)
	}
	createTestUser(t, New(db).WithTx(tx), "ghost")
	if err := tx.Rollback(); err != nil {
		t.Fatalf("Rollback: %v", err)
	}

	if _, err := New(db).GetUserByLogin(ctx, "ghost"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("rolled back user should not exist, got err = %v", err)
	}
}

func TestSeedDefaultAuthor(t *testing.T) {
	db, cleanup := testDB(t)
	defer cleanup()

	ctx := context.Background()

	first, err := SeedDefaultAuthor(ctx, db, "admin")
	if err != nil {
		t.Fatalf("SeedDefaultAuthor: %v", err)
	}
	if first.Role != "admin" {
		t.Errorf("Role = %q, want %q", first.Role, "admin")
	}

	second, err := SeedDefaultAuthor(ctx, db, "admin")
	if err != nil {
		t.Fatalf("SeedDefaultAuthor (again): %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second seed created a new user: %d != %d", second.ID, first.ID)
	}
}

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/blog3d/techblog-client/internal/apiclient"
)

func TestGuestLikeToggleReturnsToOriginalMembership(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Go generics", "go-generics")

	guestID := ts.resolver.GetOrCreateGuestID()

	if err := ts.services.Engagement.Like(context.Background(), &blog); err != nil {
		t.Fatalf("first like: %v", err)
	}
	if len(blog.Likes) != 1 || blog.Likes[0].GuestID != guestID {
		t.Fatalf("likes %+v, want one entry for guest %s", blog.Likes, guestID)
	}
	if blog.LikeCount != 1 {
		t.Fatalf("likeCount %d, want 1", blog.LikeCount)
	}

	if err := ts.services.Engagement.Like(context.Background(), &blog); err != nil {
		t.Fatalf("second like: %v", err)
	}
	if len(blog.Likes) != 0 || blog.LikeCount != 0 {
		t.Fatalf("after toggle back: likes %+v count %d, want empty and 0", blog.Likes, blog.LikeCount)
	}
}

func TestAuthenticatedLikeUsesUserIdentity(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Go modules", "go-modules")
	user := ts.backend.SeedUser("Ada", "Lovelace", "ada@example.com", "pw", "user")
	ts.loginAs(t, "ada@example.com", "pw")

	if err := ts.services.Engagement.Like(context.Background(), &blog); err != nil {
		t.Fatalf("like: %v", err)
	}

	if len(blog.Likes) != 1 {
		t.Fatalf("likes %+v, want one entry", blog.Likes)
	}
	if blog.Likes[0].UserID != user.ID || blog.Likes[0].GuestID != "" {
		t.Fatalf("like %+v, want user identity only", blog.Likes[0])
	}

	// server-side record agrees on the actor
	serverBlog, _ := ts.backend.Blog(blog.ID)
	if len(serverBlog.Likes) != 1 || serverBlog.Likes[0].UserID != user.ID {
		t.Fatalf("server likes %+v, want the bearer actor", serverBlog.Likes)
	}
}

func TestLikeFailureLeavesStateUntouched(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Real", "real")
	missing := blog
	missing.ID = "does-not-exist"

	err := ts.services.Engagement.Like(context.Background(), &missing)
	if err == nil {
		t.Fatal("expected an error for a missing post")
	}
	var apiErr *apiclient.APIError
	if !errors.As(err, &apiErr) || apiErr.Message != "Blog not found" {
		t.Fatalf("error %v, want the backend message verbatim", err)
	}
	if len(missing.Likes) != 0 || missing.LikeCount != 0 {
		t.Fatalf("state mutated on failure: %+v", missing)
	}
}

func TestCommentValidationHappensBeforeAnyNetworkCall(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Quiet", "quiet")

	if _, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "   ", "Ada", ""); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("error %v, want ErrEmptyComment", err)
	}
	if _, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "hi", "  ", ""); !errors.Is(err, ErrNameRequired) {
		t.Fatalf("error %v, want ErrNameRequired for a nameless guest", err)
	}

	if hits := ts.backend.TotalHits(); hits != 0 {
		t.Fatalf("saw %d backend requests, validation must reject client-side", hits)
	}
	if len(blog.Comments) != 0 || blog.ApprovedCommentCount != 0 {
		t.Fatalf("state mutated: %+v", blog)
	}
}

func TestGuestCommentAppendedVerbatim(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Comments", "comments")

	comment, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "nice post", "Grace", "grace@example.com")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	if comment.ID == "" {
		t.Fatal("expected the server-assigned id kept")
	}
	if len(blog.Comments) != 1 || blog.Comments[0].ID != comment.ID {
		t.Fatalf("comments %+v, want the server comment appended", blog.Comments)
	}
	if !comment.IsApproved || blog.ApprovedCommentCount != 1 {
		t.Fatalf("approved=%v count=%d, want approved and counted", comment.IsApproved, blog.ApprovedCommentCount)
	}
	if comment.User.GuestID != ts.resolver.GetOrCreateGuestID() {
		t.Fatalf("comment user %+v, want the guest identity", comment.User)
	}
}

func TestUnapprovedGuestCommentNotCounted(t *testing.T) {
	ts := newTestStack(t)
	ts.backend.ApproveGuestComments = false
	blog := ts.backend.SeedBlog("Moderated", "moderated")

	comment, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "awaiting", "Grace", "")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	if comment.IsApproved {
		t.Fatal("expected an unapproved comment")
	}
	if len(blog.Comments) != 1 {
		t.Fatalf("comments length %d, want the comment still appended", len(blog.Comments))
	}
	if blog.ApprovedCommentCount != 0 {
		t.Fatalf("approved count %d, want 0", blog.ApprovedCommentCount)
	}
}

func TestCommentSubmissionRejectedWhileInFlight(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Busy", "busy")

	engagement := ts.services.Engagement.(*engagementService)
	if !engagement.guards.acquire("comment:" + blog.ID) {
		t.Fatal("acquire must succeed")
	}

	if _, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "queued", "Grace", ""); !errors.Is(err, ErrBusy) {
		t.Fatalf("error %v, want ErrBusy while a submission is in flight", err)
	}
	if hits := ts.backend.TotalHits(); hits != 0 {
		t.Fatalf("saw %d backend requests for a rejected submission, want 0", hits)
	}

	engagement.guards.release("comment:" + blog.ID)
	if _, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "queued", "Grace", ""); err != nil {
		t.Fatalf("SubmitComment after release: %v", err)
	}
	if len(blog.Comments) != 1 {
		t.Fatalf("comments %+v, want the released submission applied", blog.Comments)
	}
}

func TestAuthenticatedEmptyCommentRejected(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Strict", "strict")
	ts.backend.SeedUser("Ada", "Lovelace", "ada@example.com", "pw", "user")
	ts.loginAs(t, "ada@example.com", "pw")
	before := ts.backend.TotalHits()

	if _, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "  ", "", ""); !errors.Is(err, ErrEmptyComment) {
		t.Fatalf("error %v, want ErrEmptyComment for an authenticated actor", err)
	}
	if hits := ts.backend.TotalHits(); hits != before {
		t.Fatalf("saw %d extra backend requests, validation must reject client-side", hits-before)
	}
	if len(blog.Comments) != 0 || blog.ApprovedCommentCount != 0 {
		t.Fatalf("state mutated: %+v", blog)
	}
}

func TestAuthenticatedCommentNeedsNoName(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Auth comments", "auth-comments")
	user := ts.backend.SeedUser("Ada", "Lovelace", "ada@example.com", "pw", "user")
	ts.loginAs(t, "ada@example.com", "pw")

	comment, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "hello", "", "")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if comment.User.UserID != user.ID {
		t.Fatalf("comment user %+v, want the authenticated actor", comment.User)
	}
}

func TestCommentLikeUpdatesOnlyTargetComment(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Threads", "threads")

	first, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "first", "Grace", "")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	second, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "second", "Grace", "")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}

	if err := ts.services.Engagement.LikeComment(context.Background(), &blog, second.ID); err != nil {
		t.Fatalf("LikeComment: %v", err)
	}

	if blog.Comments[0].ID != first.ID || blog.Comments[0].Likes != 0 {
		t.Fatalf("first comment %+v, want untouched", blog.Comments[0])
	}
	if blog.Comments[1].Likes != 1 {
		t.Fatalf("second comment %+v, want likes 1", blog.Comments[1])
	}
}

func TestDeleteCommentDecrementsApprovedCount(t *testing.T) {
	ts := newTestStack(t)
	blog := ts.backend.SeedBlog("Deletable", "deletable")
	ts.backend.SeedUser("Ada", "Lovelace", "ada@example.com", "pw", "user")
	ts.loginAs(t, "ada@example.com", "pw")

	comment, err := ts.services.Engagement.SubmitComment(context.Background(), &blog, "my comment", "", "")
	if err != nil {
		t.Fatalf("SubmitComment: %v", err)
	}
	if blog.ApprovedCommentCount != 1 {
		t.Fatalf("approved count %d, want 1", blog.ApprovedCommentCount)
	}

	if err := ts.services.Engagement.DeleteComment(context.Background(), &blog, comment.ID); err != nil {
		t.Fatalf("DeleteComment: %v", err)
	}
	if len(blog.Comments) != 0 || blog.ApprovedCommentCount != 0 {
		t.Fatalf("after delete: %+v", blog)
	}
}

func TestGuardRejectsConcurrentSubmissions(t *testing.T) {
	guards := newGuardSet()

	if !guards.acquire("like:b1") {
		t.Fatal("first acquire must succeed")
	}
	if guards.acquire("like:b1") {
		t.Fatal("second acquire for the same key must be rejected")
	}
	// a different resource is never blocked
	if !guards.acquire("comment-like:c1") {
		t.Fatal("unrelated key must not be blocked")
	}

	guards.release("like:b1")
	if !guards.acquire("like:b1") {
		t.Fatal("acquire after release must succeed")
	}
}

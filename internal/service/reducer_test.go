package service

import (
	"testing"
	"time"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
)

func TestApplyLikeResultAddsActorEntry(t *testing.T) {
	blog := &model.Blog{ID: "b1", Likes: []model.Like{}}
	now := time.Now()

	applyLikeResult(blog, dto.LikeResult{Liked: true, LikeCount: 5}, actorIdentity{guestID: "g1"}, now)

	if len(blog.Likes) != 1 {
		t.Fatalf("likes length %d, want 1", len(blog.Likes))
	}
	if blog.LikeCount != 5 {
		t.Fatalf("likeCount %d, want the server value 5", blog.LikeCount)
	}
	like := blog.Likes[0]
	if like.GuestID != "g1" || like.UserID != "" {
		t.Fatalf("like identity %+v, want guest g1 only", like)
	}
	if like.ID == "" || !like.CreatedAt.Equal(now) {
		t.Fatalf("like %+v, want a temporary id and the call timestamp", like)
	}
}

func TestApplyLikeResultRemovesOnlyActorEntry(t *testing.T) {
	blog := &model.Blog{
		ID: "b1",
		Likes: []model.Like{
			{ID: "1", UserID: "other"},
			{ID: "2", UserID: "me"},
			{ID: "3", GuestID: "g9"},
		},
		LikeCount: 3,
	}

	applyLikeResult(blog, dto.LikeResult{Liked: false, LikeCount: 2}, actorIdentity{userID: "me"}, time.Now())

	if len(blog.Likes) != 2 {
		t.Fatalf("likes length %d, want 2", len(blog.Likes))
	}
	// order preserved, only the actor's entry removed
	if blog.Likes[0].ID != "1" || blog.Likes[1].ID != "3" {
		t.Fatalf("likes %+v, want entries 1 and 3 in order", blog.Likes)
	}
	if blog.LikeCount != 2 {
		t.Fatalf("likeCount %d, want 2", blog.LikeCount)
	}
}

func TestApplyLikeResultToggleIsItsOwnInverse(t *testing.T) {
	blog := &model.Blog{ID: "b1"}
	actor := actorIdentity{guestID: "g1"}

	applyLikeResult(blog, dto.LikeResult{Liked: true, LikeCount: 1}, actor, time.Now())
	if !blog.LikedBy("", "g1") {
		t.Fatal("expected the actor's like present after liking")
	}

	applyLikeResult(blog, dto.LikeResult{Liked: false, LikeCount: 0}, actor, time.Now())
	if blog.LikedBy("", "g1") {
		t.Fatal("expected the actor's like gone after unliking")
	}
	if len(blog.Likes) != 0 {
		t.Fatalf("likes %+v, want the original empty membership", blog.Likes)
	}
}

func TestAppendCommentCountsOnlyApproved(t *testing.T) {
	blog := &model.Blog{ApprovedCommentCount: 2}

	appendComment(blog, model.Comment{ID: "c1", IsApproved: true})
	if blog.ApprovedCommentCount != 3 {
		t.Fatalf("approved count %d, want 3", blog.ApprovedCommentCount)
	}

	appendComment(blog, model.Comment{ID: "c2", IsApproved: false})
	if blog.ApprovedCommentCount != 3 {
		t.Fatalf("approved count %d, want 3 after unapproved comment", blog.ApprovedCommentCount)
	}
	if len(blog.Comments) != 2 {
		t.Fatalf("comments length %d, want 2", len(blog.Comments))
	}
}

func TestApplyCommentLikesTouchesOnlyTarget(t *testing.T) {
	blog := &model.Blog{Comments: []model.Comment{
		{ID: "c1", Likes: 1, Text: "first"},
		{ID: "c2", Likes: 7, Text: "second"},
	}}

	applyCommentLikes(blog, "c2", 8)

	if blog.Comments[0].Likes != 1 {
		t.Fatalf("untouched comment changed: %+v", blog.Comments[0])
	}
	if blog.Comments[1].Likes != 8 || blog.Comments[1].Text != "second" {
		t.Fatalf("target comment %+v, want only likes replaced", blog.Comments[1])
	}
}

func TestRemoveCommentAdjustsApprovedCount(t *testing.T) {
	blog := &model.Blog{
		Comments: []model.Comment{
			{ID: "c1", IsApproved: true},
			{ID: "c2", IsApproved: false},
			{ID: "c3", IsApproved: true},
		},
		ApprovedCommentCount: 2,
	}

	removeComment(blog, "c1")
	if blog.ApprovedCommentCount != 1 {
		t.Fatalf("approved count %d, want 1 after removing approved comment", blog.ApprovedCommentCount)
	}

	removeComment(blog, "c2")
	if blog.ApprovedCommentCount != 1 {
		t.Fatalf("approved count %d, want 1 after removing unapproved comment", blog.ApprovedCommentCount)
	}

	if len(blog.Comments) != 1 || blog.Comments[0].ID != "c3" {
		t.Fatalf("comments %+v, want only c3 left", blog.Comments)
	}

	// removing a missing id is a no-op
	removeComment(blog, "nope")
	if len(blog.Comments) != 1 || blog.ApprovedCommentCount != 1 {
		t.Fatalf("state changed on missing id: %+v", blog)
	}
}

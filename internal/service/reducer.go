package service

import (
	"strconv"
	"time"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
)

// actorIdentity is the resolved acting identity for one engagement call:
// exactly one of userID/guestID is set.
type actorIdentity struct {
	userID  string
	guestID string
}

// The reducers below are the optimistic local patches applied to the
// in-memory post after a successful server round trip. They are the only
// code that mutates a Blog. LikeCount/ApprovedCommentCount always come
// from (or follow) the server; the likes/comments arrays are a partial
// client view where only this actor's entries are kept consistent.

func applyLikeResult(blog *model.Blog, result dto.LikeResult, actor actorIdentity, now time.Time) {
	if result.Liked {
		blog.Likes = append(blog.Likes, model.Like{
			ID:        strconv.FormatInt(now.UnixMilli(), 10),
			UserID:    actor.userID,
			GuestID:   actor.guestID,
			CreatedAt: now,
		})
	} else {
		kept := blog.Likes[:0]
		for _, like := range blog.Likes {
			if actor.userID != "" && like.UserID == actor.userID {
				continue
			}
			if actor.guestID != "" && like.GuestID == actor.guestID {
				continue
			}
			kept = append(kept, like)
		}
		blog.Likes = kept
	}

	blog.LikeCount = result.LikeCount
}

// appendComment applies the server-returned comment verbatim, keeping the
// server-assigned id and approval flag.
func appendComment(blog *model.Blog, comment model.Comment) {
	blog.Comments = append(blog.Comments, comment)
	if comment.IsApproved {
		blog.ApprovedCommentCount++
	}
}

// applyCommentLikes replaces only the likes counter of the matching
// comment, leaving every other comment untouched.
func applyCommentLikes(blog *model.Blog, commentID string, likes int) {
	for i := range blog.Comments {
		if blog.Comments[i].ID == commentID {
			blog.Comments[i].Likes = likes
			return
		}
	}
}

// removeComment drops the comment from the local array, decrementing the
// approved count iff the removed comment was approved. Order-preserving.
func removeComment(blog *model.Blog, commentID string) {
	for i := range blog.Comments {
		if blog.Comments[i].ID != commentID {
			continue
		}
		if blog.Comments[i].IsApproved {
			blog.ApprovedCommentCount--
		}
		blog.Comments = append(blog.Comments[:i], blog.Comments[i+1:]...)
		return
	}
}

package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/auth"
	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/model"
	"github.com/blog3d/techblog-client/internal/session"
	"github.com/blog3d/techblog-client/internal/transport"
	"go.uber.org/zap"
)

// guardSet is the per-resource in-flight flag set: a second submission for
// the same key is rejected, not queued. Keys for different resources never
// block each other.
type guardSet struct {
	mu       sync.Mutex
	inFlight map[string]struct{}
}

func newGuardSet() *guardSet {
	return &guardSet{inFlight: make(map[string]struct{})}
}

func (g *guardSet) acquire(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, busy := g.inFlight[key]; busy {
		return false
	}
	g.inFlight[key] = struct{}{}
	return true
}

func (g *guardSet) release(key string) {
	g.mu.Lock()
	delete(g.inFlight, key)
	g.mu.Unlock()
}

type engagementService struct {
	logger   *zap.Logger
	client   *apiclient.Client
	resolver *session.Resolver
	auth     *auth.Manager
	guards   *guardSet
}

func newEngagementService(logger *zap.Logger, client *apiclient.Client, resolver *session.Resolver, authManager *auth.Manager) Engagement {
	return &engagementService{
		logger:   logger,
		client:   client,
		resolver: resolver,
		auth:     authManager,
		guards:   newGuardSet(),
	}
}

// resolveActor applies the identity resolution rule shared by like,
// comment and comment-like: bearer token for authenticated actors, guest
// session id otherwise.
func (s *engagementService) resolveActor() (transport.Credentials, actorIdentity) {
	if s.auth.IsAuthenticated() {
		if token := s.auth.Token(); token != "" {
			var userID string
			if user := s.auth.User(); user != nil {
				userID = user.ID
			}
			return transport.Credentials{Mode: transport.ModeBearer, Value: token}, actorIdentity{userID: userID}
		}
	}

	guestID := s.resolver.GetOrCreateGuestID()
	return transport.Credentials{Mode: transport.ModeSession, Value: guestID}, actorIdentity{guestID: guestID}
}

// Like toggles the actor's like on the post and patches the local copy
// from the server's answer. Concurrent submissions for the same post are
// rejected with ErrBusy while one is in flight.
func (s *engagementService) Like(ctx context.Context, blog *model.Blog) error {
	key := "like:" + blog.ID
	if !s.guards.acquire(key) {
		return ErrBusy
	}
	defer s.guards.release(key)

	creds, actor := s.resolveActor()

	result, err := s.client.LikeBlog(ctx, blog.ID, creds)
	if err != nil {
		s.logger.Sugar().Errorf("failed to like blog(%s): %s", blog.ID, err.Error())
		return err
	}

	applyLikeResult(blog, *result, actor, time.Now())

	return nil
}

// SubmitComment validates client-side before any network call: text is
// required for everyone, a display name additionally for guests. One
// submission per post may be in flight at a time.
func (s *engagementService) SubmitComment(ctx context.Context, blog *model.Blog, text string, name string, email string) (*model.Comment, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyComment
	}

	key := "comment:" + blog.ID
	if !s.guards.acquire(key) {
		return nil, ErrBusy
	}
	defer s.guards.release(key)

	creds, _ := s.resolveActor()

	req := dto.CreateCommentRequest{Text: text}
	if creds.Mode == transport.ModeSession {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, ErrNameRequired
		}
		req.Name = name
		req.Email = strings.TrimSpace(email)
	}

	comment, err := s.client.AddComment(ctx, blog.ID, req, creds)
	if err != nil {
		s.logger.Sugar().Errorf("failed to add comment on blog(%s): %s", blog.ID, err.Error())
		return nil, err
	}

	appendComment(blog, *comment)

	return comment, nil
}

// LikeComment is guarded per comment id, so likes on different comments
// can run concurrently while duplicates on the same one are rejected.
func (s *engagementService) LikeComment(ctx context.Context, blog *model.Blog, commentID string) error {
	key := "comment-like:" + commentID
	if !s.guards.acquire(key) {
		return ErrBusy
	}
	defer s.guards.release(key)

	creds, _ := s.resolveActor()

	result, err := s.client.LikeComment(ctx, blog.ID, commentID, creds)
	if err != nil {
		s.logger.Sugar().Errorf("failed to like comment(%s) on blog(%s): %s", commentID, blog.ID, err.Error())
		return err
	}

	applyCommentLikes(blog, commentID, result.Likes)

	return nil
}

func (s *engagementService) DeleteComment(ctx context.Context, blog *model.Blog, commentID string) error {
	creds, _ := s.resolveActor()

	if err := s.client.DeleteComment(ctx, blog.ID, commentID, creds); err != nil {
		s.logger.Sugar().Errorf("failed to delete comment(%s) on blog(%s): %s", commentID, blog.ID, err.Error())
		return err
	}

	removeComment(blog, commentID)

	return nil
}

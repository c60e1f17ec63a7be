package service

import (
	"context"
	"strings"

	"github.com/blog3d/techblog-client/internal/apiclient"
)

type newsletterService struct {
	client *apiclient.Client
}

func newNewsletterService(client *apiclient.Client) Newsletter {
	return &newsletterService{client: client}
}

func (s *newsletterService) Subscribe(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}

	return s.client.Subscribe(ctx, email)
}

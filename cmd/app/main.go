package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/blog3d/techblog-client/internal/apiclient"
	"github.com/blog3d/techblog-client/internal/auth"
	"github.com/blog3d/techblog-client/internal/cache"
	"github.com/blog3d/techblog-client/internal/config"
	"github.com/blog3d/techblog-client/internal/service"
	"github.com/blog3d/techblog-client/internal/session"
	"github.com/blog3d/techblog-client/internal/storage"
	"github.com/blog3d/techblog-client/internal/transport"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const usage = `usage: app <command> [args]

commands:
  blog <slug>                 show a post
  blogs                       list posts
  categories                  list categories
  login <email> <password>    sign in
  logout                      sign out
  like <slug>                 toggle a like
  comment <slug> <text> [name] [email]
  subscribe <email>           join the newsletter
`

func main() {
	ctx := context.Background()

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Sugar().Panicf("failed to load configuration: %s", err.Error())
	}

	store, err := storage.Open(cfg.StoragePath)
	if err != nil {
		logger.Sugar().Panicf("failed to open profile store: %s", err.Error())
	}
	defer store.Close()

	resolver := session.New(store)
	if _, isNew, err := resolver.Init(); err != nil {
		logger.Sugar().Panicf("failed to initialize session identity: %s", err.Error())
	} else if isNew {
		logger.Info("Created new session identity")
	}

	var cacheStore cache.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if _, err := rdb.Ping(ctx).Result(); err != nil {
			logger.Sugar().Errorf("failed to ping redis, continuing without cache: %s", err.Error())
		} else {
			cacheStore = cache.NewRedis(rdb)
		}
	}

	decorator := transport.NewDecorator(nil, store, resolver)
	httpClient := &http.Client{Transport: decorator, Timeout: 10 * time.Second}
	client := apiclient.New(cfg.APIOrigin, httpClient, logger)

	authManager := auth.NewManager(client, store, logger)
	decorator.OnUnauthorized(authManager.ForceLogout)
	authManager.OnLogout(func() {
		logger.Info("Session ended")
	})
	authManager.CheckAuth(ctx)

	services := service.New(logger, client, cacheStore, resolver, authManager, cfg.CacheTTL)

	if err := run(ctx, os.Args[1:], services, authManager); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, services *service.Service, authManager *auth.Manager) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}

	switch args[0] {
	case "blog":
		if len(args) < 2 {
			return fmt.Errorf("blog: slug required")
		}
		blog, err := services.Blog.FindBySlug(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s\n\n%s\n\n%d likes, %d comments, %d views\n", blog.Title, blog.Content, blog.LikeCount, blog.ApprovedCommentCount, blog.Views)
		return nil

	case "blogs":
		blogs, err := services.Blog.FindAll(ctx)
		if err != nil {
			return err
		}
		for _, b := range blogs {
			fmt.Printf("%s\t%s\n", b.Slug, b.Title)
		}
		return nil

	case "categories":
		categories, err := services.Blog.Categories(ctx)
		if err != nil {
			return err
		}
		for _, c := range categories {
			fmt.Printf("%s\t%s\n", c.Slug, c.Name)
		}
		return nil

	case "login":
		if len(args) < 3 {
			return fmt.Errorf("login: email and password required")
		}
		if err := authManager.Login(ctx, args[1], args[2]); err != nil {
			return err
		}
		fmt.Println("signed in as", authManager.User().Email)
		return nil

	case "logout":
		authManager.Logout(ctx)
		fmt.Println("signed out")
		return nil

	case "like":
		if len(args) < 2 {
			return fmt.Errorf("like: blog slug required")
		}
		blog, err := services.Blog.FindBySlug(ctx, args[1])
		if err != nil {
			return err
		}
		if err := services.Engagement.Like(ctx, blog); err != nil {
			return err
		}
		fmt.Printf("%d likes\n", blog.LikeCount)
		return nil

	case "comment":
		if len(args) < 3 {
			return fmt.Errorf("comment: blog slug and text required")
		}
		blog, err := services.Blog.FindBySlug(ctx, args[1])
		if err != nil {
			return err
		}
		var name, email string
		if len(args) > 3 {
			name = args[3]
		}
		if len(args) > 4 {
			email = args[4]
		}
		comment, err := services.Engagement.SubmitComment(ctx, blog, args[2], name, email)
		if err != nil {
			return err
		}
		if comment.IsApproved {
			fmt.Println("comment added")
		} else {
			fmt.Println("comment submitted for approval")
		}
		return nil

	case "subscribe":
		if len(args) < 2 {
			return fmt.Errorf("subscribe: email required")
		}
		if err := services.Newsletter.Subscribe(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("subscribed")
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

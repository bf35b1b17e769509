// Package revalidate marks rendered public pages stale after content
// mutations. It is fire-and-forget: a purge failure is logged and never
// rolls back or fails the write that triggered it.
package revalidate

import (
	"context"
	"time"

	"github.com/foliolabs/core/internal/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const purgeTimeout = 5 * time.Second

// Service purges cached page renders for a set of route paths.
type Service struct {
	rdb *redis.Client
	log *zap.Logger
}

func NewService(rdb *redis.Client, log *zap.Logger) *Service {
	return &Service{rdb: rdb, log: log}
}

// Paths schedules a purge of every cached response under the given route
// paths. It returns immediately; the caller's success path never depends on
// the cache layer.
func (s *Service) Paths(paths ...string) {
	if s == nil || s.rdb == nil || len(paths) == 0 {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), purgeTimeout)
		defer cancel()
		for _, path := range paths {
			if _, err := middleware.PurgePagePrefix(ctx, s.rdb, path); err != nil {
				s.log.Warn("page cache purge failed",
					zap.String("path", path), zap.Error(err))
			}
		}
	}()
}

// PostPaths returns the public routes that render a post with the given slug.
func PostPaths(slug string) []string {
	paths := []string{"/", "/api/posts", "/rss.xml", "/feed.xml", "/sitemap.xml"}
	if slug != "" {
		paths = append(paths, "/api/posts/"+slug)
	}
	return paths
}

// ProjectPaths returns the public routes that render a project with the
// given slug.
func ProjectPaths(slug string) []string {
	paths := []string{"/", "/api/projects", "/sitemap.xml"}
	if slug != "" {
		paths = append(paths, "/api/projects/"+slug)
	}
	return paths
}

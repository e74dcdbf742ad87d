package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blog-seed/internal/domain/entity"
	repo "github.com/oksasatya/blog-seed/internal/domain/repository"
	"github.com/oksasatya/blog-seed/pkg/helpers"
	"github.com/oksasatya/blog-seed/pkg/validation"
)

// SessionPurger drops cached sessions that may point at wiped users.
type SessionPurger interface {
	PurgeAll(ctx context.Context) (int64, error)
}

// UserIndexer mirrors the seeded users into a search index.
type UserIndexer interface {
	Replace(ctx context.Context, users []*entity.User) error
}

// SeedService brings the store to the baseline described by Data.
// Every run replaces all users and posts; it never merges.
type SeedService struct {
	Users      repo.UserRepository
	Posts      repo.PostRepository
	Data       Dataset
	BcryptCost int
	Sessions   SessionPurger
	Index      UserIndexer
	Logger     *logrus.Logger

	now   func() time.Time
	newID func() string
}

// Summary reports what a run left in the store.
type Summary struct {
	Users        int64
	Posts        int64
	DeletedUsers int64
	DeletedPosts int64
}

func (s Summary) String() string {
	return fmt.Sprintf("Created %d users and %d posts!", s.Users, s.Posts)
}

func NewSeedService(users repo.UserRepository, posts repo.PostRepository, data Dataset, bcryptCost int, sessions SessionPurger, index UserIndexer, logger *logrus.Logger) *SeedService {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}
	return &SeedService{
		Users:      users,
		Posts:      posts,
		Data:       data,
		BcryptCost: bcryptCost,
		Sessions:   sessions,
		Index:      index,
		Logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
		newID:      newID,
	}
}

// ids are time-ordered so records list back in creation order
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Run wipes posts then users, recreates the dataset and returns the counts
// read back from the store. The first error aborts the run and is returned
// wrapped; nothing is retried. Every record is validated and built, passwords
// included, before anything is deleted.
func (s *SeedService) Run(ctx context.Context) (Summary, error) {
	data := s.Data.normalized()
	if err := data.Validate(); err != nil {
		return Summary{}, err
	}
	users, err := s.buildUsers(data.Users)
	if err != nil {
		return Summary{}, err
	}
	posts := s.buildPosts(data.Posts, users)

	var sum Summary

	// posts go first so deleting users never depends on a cascade
	if sum.DeletedPosts, err = s.Posts.DeleteAll(ctx); err != nil {
		return Summary{}, fmt.Errorf("delete posts: %w", err)
	}
	if sum.DeletedUsers, err = s.Users.DeleteAll(ctx); err != nil {
		return Summary{}, fmt.Errorf("delete users: %w", err)
	}
	s.Logger.WithFields(logrus.Fields{
		"users": sum.DeletedUsers,
		"posts": sum.DeletedPosts,
	}).Info("cleared existing data")

	if err := s.Users.CreateMany(ctx, users); err != nil {
		return Summary{}, fmt.Errorf("create users: %w", err)
	}
	s.Logger.WithField("count", len(users)).Debug("users created")
	if err := s.Posts.CreateMany(ctx, posts); err != nil {
		return Summary{}, fmt.Errorf("create posts: %w", err)
	}
	s.Logger.WithField("count", len(posts)).Debug("posts created")

	if sum.Users, err = s.Users.Count(ctx); err != nil {
		return Summary{}, fmt.Errorf("count users: %w", err)
	}
	if sum.Posts, err = s.Posts.Count(ctx); err != nil {
		return Summary{}, fmt.Errorf("count posts: %w", err)
	}

	s.afterSeed(ctx, users)
	return sum, nil
}

func (s *SeedService) buildUsers(seeds []UserSeed) ([]*entity.User, error) {
	now := s.now()
	users := make([]*entity.User, 0, len(seeds))
	for i, us := range seeds {
		hash, err := helpers.HashPasswordWithCost(us.Password, s.BcryptCost)
		if err != nil {
			return nil, validation.NewFieldError("seed", fmt.Sprintf("users[%d].password", i), err.Error(), err)
		}
		users = append(users, &entity.User{
			ID:        s.newID(),
			Name:      us.Name,
			Email:     us.Email,
			Password:  hash,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return users, nil
}

func (s *SeedService) buildPosts(seeds []PostSeed, users []*entity.User) []*entity.Post {
	byEmail := make(map[string]*entity.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	now := s.now()
	posts := make([]*entity.Post, 0, len(seeds))
	for _, ps := range seeds {
		// Validate has already resolved every author
		p := entity.NewPost(byEmail[ps.Author], ps.Title, ps.Body)
		p.ID = s.newID()
		p.CreatedAt = now
		p.UpdatedAt = now
		posts = append(posts, p)
	}
	return posts
}

// afterSeed refreshes derived state. Failures are logged, never returned:
// the store already holds the baseline.
func (s *SeedService) afterSeed(ctx context.Context, users []*entity.User) {
	if s.Sessions != nil {
		n, err := s.Sessions.PurgeAll(ctx)
		if err != nil {
			s.Logger.WithError(err).Warn("session purge failed")
		} else {
			s.Logger.WithField("sessions", n).Info("purged cached sessions")
		}
	}
	if s.Index != nil {
		if err := s.Index.Replace(ctx, users); err != nil {
			s.Logger.WithError(err).Warn("users reindex failed")
		} else {
			s.Logger.WithField("users", len(users)).Info("reindexed users")
		}
	}
}

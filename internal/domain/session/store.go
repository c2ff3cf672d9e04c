// Package session holds the in-memory per-user dialogue state.
package session

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/patrickmn/go-cache"

	"github.com/FACorreiaa/loci-travel-bot/internal/types"
)

var _ Store = (*StoreImpl)(nil)

// Store is the per-user session registry. Get is read-through: a missing
// session is created and seeded from persisted language and feedback history.
type Store interface {
	Get(ctx context.Context, userID int64) (*types.Session, error)
	Save(ctx context.Context, s *types.Session)
	Reset(ctx context.Context, userID int64)
}

// Seeder supplies the durable state a fresh session starts from. The user and
// feedback repositories satisfy this together.
type Seeder interface {
	GetLanguage(ctx context.Context, userID int64) (string, error)
	GetHistory(ctx context.Context, userID int64) (liked, disliked []string, err error)
}

// StoreImpl keeps sessions in a go-cache instance with no expiration:
// sessions persist until an explicit reset or process restart. Distinct keys
// are safe to touch concurrently; the transport layer serializes events per
// user, so no per-key locking is layered on top.
type StoreImpl struct {
	logger *slog.Logger
	cache  *cache.Cache
	seeder Seeder

	defaultLanguage string
}

func NewStore(seeder Seeder, defaultLanguage string, logger *slog.Logger) *StoreImpl {
	return &StoreImpl{
		logger:          logger,
		cache:           cache.New(cache.NoExpiration, 0),
		seeder:          seeder,
		defaultLanguage: defaultLanguage,
	}
}

func sessionKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}

// Get returns the live session for userID, creating and seeding one on miss.
// Seeding failures are logged and degrade to an empty session rather than
// blocking the dialogue.
func (s *StoreImpl) Get(ctx context.Context, userID int64) (*types.Session, error) {
	if v, found := s.cache.Get(sessionKey(userID)); found {
		return v.(*types.Session), nil
	}

	l := s.logger.With(slog.Int64("user_id", userID))

	lang := s.defaultLanguage
	if s.seeder != nil {
		stored, err := s.seeder.GetLanguage(ctx, userID)
		switch {
		case err == nil && stored != "":
			lang = stored
		case err != nil && !isNotFound(err):
			l.WarnContext(ctx, "failed to load stored language, using default", slog.Any("error", err))
		}
	}

	sess := types.NewSession(userID, lang)

	if s.seeder != nil {
		liked, disliked, err := s.seeder.GetHistory(ctx, userID)
		if err != nil {
			l.WarnContext(ctx, "failed to load feedback history, starting empty", slog.Any("error", err))
		} else {
			for _, id := range liked {
				sess.LikedIDs[id] = struct{}{}
			}
			for _, id := range disliked {
				sess.DislikedIDs[id] = struct{}{}
			}
		}
	}

	s.cache.Set(sessionKey(userID), sess, cache.NoExpiration)
	return sess, nil
}

// Save stores the session back. With the cache holding pointers this is a
// formality, but callers treat sessions as checked out so a future
// distributed store can slot in.
func (s *StoreImpl) Save(_ context.Context, sess *types.Session) {
	s.cache.Set(sessionKey(sess.UserID), sess, cache.NoExpiration)
}

// Reset discards the in-memory session entirely; the next Get re-seeds from
// persistence.
func (s *StoreImpl) Reset(_ context.Context, userID int64) {
	s.cache.Delete(sessionKey(userID))
}

func isNotFound(err error) bool {
	return errors.Is(err, types.ErrNotFound)
}

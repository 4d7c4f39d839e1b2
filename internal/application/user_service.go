package application

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"stayloop/internal/domain/entity"
	repo "stayloop/internal/domain/repository"
	"stayloop/pkg/helpers"
	"stayloop/pkg/mailer"
)

// Service wires the user repository to the surrounding infrastructure:
// token issuance, Redis sessions, Elasticsearch indexing, and the email
// queue. Redis/ES/queue are optional; nil disables the feature.
type Service struct {
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Redis   *redis.Client
	Logger  *logrus.Logger
	ES      *elasticsearch.Client
	ESIndex string
	Pub     *helpers.RabbitPublisher
}

var errSessionMismatch = errors.New("session mismatch")

func NewService(r repo.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, logger *logrus.Logger, es *elasticsearch.Client, esIndex string, pub *helpers.RabbitPublisher) *Service {
	return &Service{
		Repo:    r,
		JWT:     jwt,
		Redis:   rdb,
		Logger:  logger,
		ES:      es,
		ESIndex: esIndex,
		Pub:     pub,
	}
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Login authenticates and issues a token pair with a fresh Redis session.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.User, TokenPair, error) {
	u, err := s.Repo.Authenticate(ctx, username, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return u, pair, nil
}

func (s *Service) issueTokens(ctx context.Context, u *entity.User) (TokenPair, error) {
	sid := uuid.NewString()
	access, aexp, err := s.JWT.GenerateAccessToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(u.ID, sid)
	if err != nil {
		return TokenPair{}, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"user_id":    u.ID,
			"username":   u.Username,
			"email":      u.Email,
			"sid":        sid,
			"created_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, 24*time.Hour)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

// Refresh rotates the session id and both tokens after validating the
// refresh token against the stored session.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, err
	}
	u := &entity.User{ID: claims.UserID}
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, helpers.SessionKey(claims.UserID)).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, errSessionMismatch
		}
		u.Username = data["username"]
		u.Email = data["email"]
	}
	return s.issueTokens(ctx, u)
}

// Logout drops the Redis session.
func (s *Service) Logout(ctx context.Context, userID int64) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, helpers.SessionKey(userID)).Err(); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("user_id", userID).Warn("session delete failed")
	}
}

// Register creates the account, indexes it for search, and enqueues the
// welcome email. Indexing and mail are best-effort.
func (s *Service) Register(ctx context.Context, p entity.RegisterParams) (*entity.User, error) {
	u, err := s.Repo.Register(ctx, p)
	if err != nil {
		return nil, err
	}

	_ = s.indexUser(ctx, u)

	if s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateWelcome,
			Data: map[string]any{
				"Username":  u.Username,
				"FirstName": u.FirstName,
			},
		}
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Warn("welcome email enqueue failed")
		}
	}
	return u, nil
}

// GetAll lists accounts ordered by username.
func (s *Service) GetAll(ctx context.Context) ([]entity.User, error) {
	return s.Repo.GetAll(ctx)
}

// GetProfile returns the account with its listings, bookings, and
// conversations attached.
func (s *Service) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	return s.Repo.Get(ctx, username)
}

// Update applies a partial update and refreshes the search index and
// session fields.
func (s *Service) Update(ctx context.Context, id int64, p entity.UpdateUserParams) (*entity.User, error) {
	u, err := s.Repo.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		key := helpers.SessionKey(u.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"email":      u.Email,
			"updated_at": nowRFC3339(),
		})
		if ttl, tErr := s.Redis.TTL(ctx, key).Result(); tErr == nil && ttl > 0 {
			pipe.Expire(ctx, key, ttl)
		}
		if _, pErr := pipe.Exec(ctx); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}

	_ = s.indexUser(ctx, u)

	if p.Password != nil && s.Pub != nil {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplatePasswordChanged,
			Data: map[string]any{
				"Username":  u.Username,
				"FirstName": u.FirstName,
			},
		}
		if pErr := s.Pub.PublishJSON(ctx, job); pErr != nil && s.Logger != nil {
			s.Logger.WithError(pErr).WithField("user_id", u.ID).Warn("password change email enqueue failed")
		}
	}
	return u, nil
}

// Remove deletes the account, its session, and its search document.
func (s *Service) Remove(ctx context.Context, id int64) error {
	if err := s.Repo.Remove(ctx, id); err != nil {
		return err
	}
	s.Logout(ctx, id)
	s.deleteIndexed(ctx, id)
	return nil
}

func (s *Service) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"username":   u.Username,
		"firstname":  u.FirstName,
		"lastname":   u.LastName,
		"email":      u.Email,
		"updated_at": nowRFC3339(),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

func (s *Service) deleteIndexed(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// Search performs a multi_match query on username, names, and email.
func (s *Service) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"username^2", "firstname", "lastname", "email"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}

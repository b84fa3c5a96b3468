package application

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/user-management-api/internal/domain/entity"
	repo "github.com/oksasatya/user-management-api/internal/domain/repository"
	"github.com/oksasatya/user-management-api/pkg/helpers"
)

// DefaultPerPage is the service-level page size used when the caller
// passes a non-positive value. The HTTP layer applies its own default
// of 10 before calling in; both defaults are kept deliberately.
const DefaultPerPage = 15

// Page wraps one slice of an ordered result set plus pagination metadata.
// The field names follow the JSON contract of the public API.
type Page struct {
	Data        []entity.User `json:"data"`
	Total       int64         `json:"total"`
	CurrentPage int           `json:"current_page"`
	PerPage     int           `json:"per_page"`
	LastPage    int           `json:"last_page"`
}

type CreateUserInput struct {
	Name     string
	Email    string
	Password string
}

// UpdateUserInput carries a partial update; nil fields are left untouched.
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Password *string
}

// UserService holds the user business rules independent of transport.
// ES is optional; when configured, users are mirrored into the index on
// every write so the search endpoint can serve fuzzy queries.
type UserService struct {
	Repo         repo.UserRepository
	Logger       *logrus.Logger
	ES           *elasticsearch.Client
	ESUsersIndex string
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger, es *elasticsearch.Client, esUsersIndex string) *UserService {
	return &UserService{Repo: r, Logger: logger, ES: es, ESUsersIndex: esUsersIndex}
}

// List returns users ordered by ascending id, filtered by a
// case-insensitive substring match on name or email when search is
// non-empty.
func (s *UserService) List(ctx context.Context, search string, page, perPage int) (*Page, error) {
	if page <= 0 {
		page = 1
	}
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	users, total, err := s.Repo.List(ctx, search, page, perPage)
	if err != nil {
		return nil, err
	}
	lastPage := int((total + int64(perPage) - 1) / int64(perPage))
	if lastPage < 1 {
		lastPage = 1
	}
	return &Page{
		Data:        users,
		Total:       total,
		CurrentPage: page,
		PerPage:     perPage,
		LastPage:    lastPage,
	}, nil
}

// Find resolves an id to a stored user. Handlers call this before any
// mutation so a dangling path id turns into a 404 instead of reaching
// the write path.
func (s *UserService) Find(ctx context.Context, id int64) (*entity.User, error) {
	return s.Repo.FindByID(ctx, id)
}

// Create hashes the plaintext password and persists a new user. The
// store assigns id and timestamps; the returned record carries them.
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Password: hash}
	if err := s.Repo.Create(ctx, u); err != nil {
		return nil, err
	}
	s.indexUser(ctx, u)
	return u, nil
}

// Update applies a partial update and re-reads the record so the caller
// sees server-computed state (updated_at) rather than the in-memory
// view. The write-then-re-read pair is not atomic against concurrent
// writers of the same row; last write wins.
func (s *UserService) Update(ctx context.Context, user *entity.User, in UpdateUserInput) (*entity.User, error) {
	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		user.Email = *in.Email
	}
	if in.Password != nil {
		hash, err := helpers.HashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if err := s.Repo.Update(ctx, user); err != nil {
		return nil, err
	}
	fresh, err := s.Repo.FindByID(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	s.indexUser(ctx, fresh)
	return fresh, nil
}

// Delete permanently removes the record. Deleting an already-deleted id
// returns ErrNotFound, not a silent success.
func (s *UserService) Delete(ctx context.Context, user *entity.User) error {
	if err := s.Repo.Delete(ctx, user.ID); err != nil {
		return err
	}
	s.removeFromIndex(ctx, user.ID)
	return nil
}

// indexUser mirrors a user into Elasticsearch. Best effort: indexing
// failures are logged and never fail the request.
func (s *UserService) indexUser(ctx context.Context, u *entity.User) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	doc := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": u.UpdatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: strconv.FormatInt(u.ID, 10), Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
}

func (s *UserService) removeFromIndex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESUsersIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// SearchUsers performs a multi_match query on name and email against
// the Elasticsearch mirror. Returns an empty slice when ES is not
// configured; the SQL-backed List remains the canonical search path.
func (s *UserService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESUsersIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
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

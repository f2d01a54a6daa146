package records

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/visadesk/internal/common"
	"github.com/dmitrijs2005/visadesk/internal/config"
	"github.com/dmitrijs2005/visadesk/internal/cryptox"
	"github.com/dmitrijs2005/visadesk/internal/kv"
	"github.com/dmitrijs2005/visadesk/internal/logging"
)

// Store is the record store facade. It holds no goroutines and is not safe
// for concurrent use; callers serialize access.
type Store struct {
	kv         kv.Store
	log        logging.Logger
	validate   *validator.Validate
	hashParams cryptox.Params
	chatLimit  int
	session    string
	now        func() time.Time
	newID      func() string
}

type Option func(*Store)

func WithLogger(l logging.Logger) Option {
	return func(s *Store) { s.log = l }
}

// WithChatHistoryLimit caps every chat history at n messages.
func WithChatHistoryLimit(n int) Option {
	return func(s *Store) {
		if n > 0 {
			s.chatLimit = n
		}
	}
}

func WithHashParams(p cryptox.Params) Option {
	return func(s *Store) { s.hashParams = p }
}

// WithSessionName binds the store to a named session snapshot.
func WithSessionName(name string) Option {
	return func(s *Store) { s.session = kv.SessionKey(name) }
}

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator replaces the uuid generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *Store) { s.newID = gen }
}

// New builds a Store over the given substrate.
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:         store,
		log:        logging.Nop{},
		validate:   newValidator(),
		hashParams: cryptox.DefaultParams,
		chatLimit:  config.DefaultChatHistoryLimit,
		session:    kv.KeyCurrentUser,
		now:        time.Now,
		newID:      uuid.NewString,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// WithSession returns a view of s bound to another session snapshot. Both
// views share the substrate and the canonical collections.
func (s *Store) WithSession(name string) *Store {
	c := *s
	c.session = kv.SessionKey(name)
	return &c
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check runs struct validation and turns the first failure into a
// validation error.
func (s *Store) check(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		switch fe.Tag() {
		case "required":
			return common.Validation("%s is required", fe.Field())
		case "email":
			return common.Validation("%s is not a valid email address", fe.Field())
		default:
			return common.Validation("%s is invalid", fe.Field())
		}
	}
	return common.Validation("invalid input: %v", err)
}

func (s *Store) timestamp() time.Time {
	return s.now().UTC()
}

// fail maps an error coming out of the substrate layer. *common.Error values
// pass through untouched; anything else is logged and reported as a storage
// failure.
func (s *Store) fail(ctx context.Context, op string, err error) error {
	if err == nil {
		return nil
	}
	var e *common.Error
	if errors.As(err, &e) {
		return err
	}
	s.log.Error(ctx, "storage failure", "op", op, "error", err)
	return common.Storage(err)
}

// update runs fn as one atomic unit of work.
func (s *Store) update(ctx context.Context, op string, fn func(ctx context.Context, st kv.Store) error) error {
	return s.fail(ctx, op, s.kv.Atomic(ctx, fn))
}

// view runs a read-only fn against the live substrate.
func (s *Store) view(ctx context.Context, op string, fn func(ctx context.Context, st kv.Store) error) error {
	return s.fail(ctx, op, fn(ctx, s.kv))
}

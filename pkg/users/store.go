package users

import (
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/openfleet/carrent/pkg/store"
)

// Field selects one mutable user attribute for UpdateField.
type Field int

// Mutable user fields.
const (
	FieldFullName Field = iota + 1
	FieldAddress
	FieldContact
	FieldEmail
	FieldPassword
)

// Errors
var (
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrDuplicateContact   = errors.New("contact number already registered")
	ErrInvalidCredentials = errors.New("invalid identifier or password")
	ErrUnknownField       = errors.New("unknown user field")
	ErrNotFound           = errors.New("user not found")
)

// Store is the user specialization of the record store. Usernames and
// contact numbers are unique at registration time; both checks are full
// linear scans against the store contents, not the sequence counter.
type Store struct {
	records *store.FixedStore[User]
	seq     *store.Sequence
	logger  *slog.Logger
}

// NewStore creates a user store over the given record file and counter side
// file.
func NewStore(filePath, counterPath string) (*Store, error) {
	records, err := store.NewFixedStore[User](store.Config{FilePath: filePath, Name: "users"}, NewUserCodec())
	if err != nil {
		return nil, err
	}
	return &Store{
		records: records,
		seq:     store.NewSequence(counterPath),
		logger:  slog.Default(),
	}, nil
}

// SetLogger replaces the store's logger.
func (s *Store) SetLogger(logger *slog.Logger) {
	if logger != nil {
		s.logger = logger
		s.records.SetLogger(logger)
	}
}

// SetObserver attaches a metrics observer to the underlying record store.
func (s *Store) SetObserver(o store.Observer) {
	s.records.SetObserver(o)
}

// Registered returns how many users the sequence counter has ever recorded.
func (s *Store) Registered() uint64 {
	return s.seq.Load()
}

// Register hashes the password, checks username and contact uniqueness
// against every existing record, appends the user, and bumps the sequence
// counter. The caller re-prompts on duplicate errors; the store never
// retries internally.
func (s *Store) Register(u User, password string) (User, error) {
	if u.Username == "" {
		return User{}, fmt.Errorf("register: empty username")
	}

	_, _, err := s.records.FindFirst(func(existing User) bool {
		return existing.Username == u.Username
	})
	if err == nil {
		return User{}, ErrDuplicateUsername
	}
	if !errors.Is(err, store.ErrNotFound) {
		return User{}, err
	}

	_, _, err = s.records.FindFirst(func(existing User) bool {
		return existing.Contact == u.Contact
	})
	if err == nil {
		return User{}, ErrDuplicateContact
	}
	if !errors.Is(err, store.ErrNotFound) {
		return User{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, fmt.Errorf("register: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.records.Append(u); err != nil {
		return User{}, err
	}

	n, err := s.seq.Increment()
	if err != nil {
		// The record is durable; a stale counter only affects numbering.
		s.logger.Warn("failed to persist user sequence counter", "error", err)
	} else {
		s.logger.Info("user registered", "username", u.Username, "total_registered", n)
	}

	return u, nil
}

// Get returns the user with the given username.
func (s *Store) Get(username string) (User, error) {
	u, _, err := s.records.FindFirst(func(existing User) bool {
		return existing.Username == username
	})
	if errors.Is(err, store.ErrNotFound) {
		return User{}, ErrNotFound
	}
	return u, err
}

// List returns all users in registration order.
func (s *Store) List() ([]User, error) {
	return s.records.All()
}

// UpdateField locates the user by username, mutates one field, and rewrites
// the whole record in place. Password updates are re-hashed. A missing user
// is ErrNotFound, reported and non-fatal.
func (s *Store) UpdateField(username string, field Field, value string) error {
	u, index, err := s.records.FindFirst(func(existing User) bool {
		return existing.Username == username
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}

	switch field {
	case FieldFullName:
		u.FullName = value
	case FieldAddress:
		u.Address = value
	case FieldContact:
		u.Contact = value
	case FieldEmail:
		u.Email = value
	case FieldPassword:
		hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("update password: %w", err)
		}
		u.PasswordHash = string(hash)
	default:
		return ErrUnknownField
	}

	return s.records.UpdateAt(index, u)
}

// RemoveByUsername deletes the user via a store rebuild. When no record
// matches, the file is left untouched and ErrNotFound is returned.
func (s *Store) RemoveByUsername(username string) error {
	removed, err := s.records.DeleteWhere(func(_ int, u User) bool {
		return u.Username == username
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return ErrNotFound
	}
	s.logger.Info("user removed", "username", username)
	return nil
}

// Authenticate locates a user whose username, contact number, or email
// matches identifier and compares the password against the stored bcrypt
// hash. Any failure is ErrInvalidCredentials; lookup and comparison failures
// are indistinguishable to the caller.
func (s *Store) Authenticate(identifier, password string) (User, error) {
	u, _, err := s.records.FindFirst(func(existing User) bool {
		return existing.Username == identifier ||
			existing.Contact == identifier ||
			existing.Email == identifier
	})
	if errors.Is(err, store.ErrNotFound) {
		return User{}, ErrInvalidCredentials
	}
	if err != nil {
		return User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// IsEmpty reports whether any user has registered.
func (s *Store) IsEmpty() (bool, error) {
	return s.records.IsEmpty()
}

package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"tradeassist/internal/domain"

	"github.com/gofrs/flock"
)

// UserRepo implements repository.UserRepository over a single JSON file
type UserRepo struct {
	path string

	// guards every load-mutate-save since all users share one file
	mu sync.Mutex
	// same guard across processes, so usersctl and the bot do not lose each other's writes
	fileLock *flock.Flock
}

// NewUserRepo creates a new file-backed user repository
func NewUserRepo(path string) *UserRepo {
	return &UserRepo{
		path:     path,
		fileLock: flock.New(path + ".lock"),
	}
}

// Path returns the backing file path
func (r *UserRepo) Path() string {
	return r.path
}

// Load reads all users. A missing file is an empty store.
func (r *UserRepo) Load() (domain.Users, error) {
	unlock, err := r.acquire()
	if err != nil {
		return nil, err
	}
	defer unlock()
	return r.load()
}

// Save replaces the whole file with users
func (r *UserRepo) Save(users domain.Users) error {
	unlock, err := r.acquire()
	if err != nil {
		return err
	}
	defer unlock()
	return r.save(users)
}

// GetOrCreate returns the user, inserting a default record on first contact
func (r *UserRepo) GetOrCreate(userID string) (domain.User, error) {
	unlock, err := r.acquire()
	if err != nil {
		return domain.User{}, err
	}
	defer unlock()

	users, err := r.load()
	if err != nil {
		return domain.User{}, err
	}

	if user, ok := users[userID]; ok {
		return user, nil
	}

	user := domain.NewUser()
	users[userID] = user
	if err := r.save(users); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Get returns the user without creating one
func (r *UserRepo) Get(userID string) (domain.User, error) {
	unlock, err := r.acquire()
	if err != nil {
		return domain.User{}, err
	}
	defer unlock()

	users, err := r.load()
	if err != nil {
		return domain.User{}, err
	}

	user, ok := users[userID]
	if !ok {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return user, nil
}

// SetLanguage updates the user's language
func (r *UserRepo) SetLanguage(userID string, lang domain.Language) error {
	return r.update(userID, func(u *domain.User) { u.Language = lang })
}

// SetConnected updates the user's connection flag
func (r *UserRepo) SetConnected(userID string, connected bool) error {
	return r.update(userID, func(u *domain.User) { u.Connected = connected })
}

func (r *UserRepo) update(userID string, mutate func(*domain.User)) error {
	unlock, err := r.acquire()
	if err != nil {
		return err
	}
	defer unlock()

	users, err := r.load()
	if err != nil {
		return err
	}

	user, ok := users[userID]
	if !ok {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	mutate(&user)
	users[userID] = user

	return r.save(users)
}

// acquire takes the in-process mutex and then the advisory file lock
func (r *UserRepo) acquire() (func(), error) {
	r.mu.Lock()

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("failed to create %s: %w", dir, err)
	}
	if err := r.fileLock.Lock(); err != nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("failed to lock %s: %w", r.path, err)
	}

	return func() {
		r.fileLock.Unlock()
		r.mu.Unlock()
	}, nil
}

func (r *UserRepo) load() (domain.Users, error) {
	data, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return domain.Users{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.path, err)
	}

	var users domain.Users
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrCorruptStore, r.path, err)
	}
	if users == nil {
		// the file held a JSON null
		users = domain.Users{}
	}
	return users, nil
}

// save writes to a temporary file in the same directory and renames it over the target
func (r *UserRepo) save(users domain.Users) error {
	if users == nil {
		users = domain.Users{}
	}

	// an unreadable record would make every later load fail
	for id, user := range users {
		if !user.Language.Valid() {
			return fmt.Errorf("user %s: %w: %q", id, domain.ErrInvalidLanguage, user.Language)
		}
	}

	data, err := json.MarshalIndent(users, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to encode users: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(r.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write users: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write users: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", r.path, err)
	}
	return nil
}

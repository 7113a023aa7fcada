package postgres

import (
	"database/sql"
	"errors"
	"fmt"

	"tradeassist/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sqlx.DB) *UserRepo {
	return &UserRepo{db: db}
}

type userRow struct {
	UserID    string `db:"user_id"`
	Lang      string `db:"lang"`
	Connected bool   `db:"connected"`
}

func (row userRow) toDomain() (domain.User, error) {
	lang, err := domain.ParseLanguage(row.Lang)
	if err != nil {
		return domain.User{}, fmt.Errorf("%w: user %s: %v", domain.ErrCorruptStore, row.UserID, err)
	}
	return domain.User{Language: lang, Connected: row.Connected}, nil
}

// Load returns every user
func (r *UserRepo) Load() (domain.Users, error) {
	var rows []userRow
	query := `SELECT user_id, lang, connected FROM users`
	if err := r.db.Select(&rows, query); err != nil {
		return nil, err
	}

	users := make(domain.Users, len(rows))
	for _, row := range rows {
		user, err := row.toDomain()
		if err != nil {
			return nil, err
		}
		users[row.UserID] = user
	}
	return users, nil
}

// Save replaces the whole table in one transaction
func (r *UserRepo) Save(users domain.Users) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM users`); err != nil {
		return err
	}

	query := `INSERT INTO users (user_id, lang, connected) VALUES ($1, $2, $3)`
	for id, user := range users {
		if _, err := tx.Exec(query, id, string(user.Language), user.Connected); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetOrCreate inserts a default record if none exists and returns the stored one
func (r *UserRepo) GetOrCreate(userID string) (domain.User, error) {
	def := domain.NewUser()
	query := `
		INSERT INTO users (user_id, lang, connected)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING
	`
	if _, err := r.db.Exec(query, userID, string(def.Language), def.Connected); err != nil {
		return domain.User{}, err
	}
	return r.Get(userID)
}

// Get returns the user or domain.ErrUserNotFound
func (r *UserRepo) Get(userID string) (domain.User, error) {
	var row userRow
	query := `SELECT user_id, lang, connected FROM users WHERE user_id = $1`
	err := r.db.Get(&row, query, userID)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	if err != nil {
		return domain.User{}, err
	}

	return row.toDomain()
}

// SetLanguage updates the user's language
func (r *UserRepo) SetLanguage(userID string, lang domain.Language) error {
	query := `UPDATE users SET lang = $2 WHERE user_id = $1`
	return r.exec(userID, query, userID, string(lang))
}

// SetConnected updates the user's connection flag
func (r *UserRepo) SetConnected(userID string, connected bool) error {
	query := `UPDATE users SET connected = $2 WHERE user_id = $1`
	return r.exec(userID, query, userID, connected)
}

func (r *UserRepo) exec(userID, query string, args ...any) error {
	res, err := r.db.Exec(query, args...)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", domain.ErrUserNotFound, userID)
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qiuyou/courtside/internal/domain/user"
	"github.com/qiuyou/courtside/internal/repository"
)

const userColumns = `
	u.id, u.username, u.nickname, u.phone, u.email, u.avatar, u.gender,
	u.skill_level, u.signature, u.wechat_id, u.created_at, u.updated_at`

// UserRepository implements user.Repository for SQLite
type UserRepository struct {
	db *DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// Upsert inserts a user or refreshes the stored profile
func (r *UserRepository) Upsert(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, username, nickname, phone, email, avatar, gender,
			skill_level, signature, wechat_id, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			username = excluded.username,
			nickname = excluded.nickname,
			phone = excluded.phone,
			email = excluded.email,
			avatar = excluded.avatar,
			gender = excluded.gender,
			skill_level = excluded.skill_level,
			signature = excluded.signature,
			wechat_id = excluded.wechat_id,
			updated_at = excluded.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Username,
		u.Nickname,
		nullString(u.Phone),
		nullString(u.Email),
		nullString(u.Avatar),
		u.Gender,
		nullString(u.SkillLevel),
		nullString(u.Signature),
		nullString(u.WechatID),
		u.CreatedAt.UTC(),
		u.UpdatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to upsert user: %w", err)
	}
	return nil
}

// Get retrieves a user by ID
func (r *UserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	query := `SELECT ` + userColumns + ` FROM users u WHERE u.id = ?`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// Update writes the editable profile fields
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users SET
			nickname = ?, email = ?, avatar = ?, gender = ?,
			skill_level = ?, signature = ?, wechat_id = ?, updated_at = ?
		WHERE id = ?
	`
	result, err := r.db.ExecContext(ctx, query,
		u.Nickname,
		nullString(u.Email),
		nullString(u.Avatar),
		u.Gender,
		nullString(u.SkillLevel),
		nullString(u.Signature),
		nullString(u.WechatID),
		u.UpdatedAt.UTC(),
		u.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireRow(result)
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var phone, email, avatar, skill, signature, wechat sql.NullString
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Nickname,
		&phone,
		&email,
		&avatar,
		&u.Gender,
		&skill,
		&signature,
		&wechat,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	u.Phone = phone.String
	u.Email = email.String
	u.Avatar = avatar.String
	u.SkillLevel = skill.String
	u.Signature = signature.String
	u.WechatID = wechat.String
	return &u, nil
}

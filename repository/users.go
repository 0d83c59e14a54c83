package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	storefront "github.com/goliatone/go-storefront"
	"github.com/uptrace/bun"
)

// UsersRepository implements storefront.Users using Bun.
type UsersRepository struct {
	db *bun.DB
}

var _ storefront.Users = (*UsersRepository)(nil)

// NewUsersRepository creates a new repository.
func NewUsersRepository(db *bun.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

// Create inserts a new account record.
func (r *UsersRepository) Create(ctx context.Context, record *storefront.User) (*storefront.User, error) {
	record.EnsureRole()

	if _, err := r.db.NewInsert().Model(record).Exec(ctx); err != nil {
		return nil, storefront.WrapStorage(err, "failed to create user")
	}

	return record, nil
}

// GetByID implements storefront.Users.
func (r *UsersRepository) GetByID(ctx context.Context, id int64) (*storefront.User, error) {
	record := &storefront.User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.id = ?", id).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"user_id": id,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load user")
	}

	return record, nil
}

// GetByEmail implements storefront.Users.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*storefront.User, error) {
	record := &storefront.User{}
	err := r.db.NewSelect().
		Model(record).
		Where("?TableAlias.email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
				"email": email,
			})
		}
		return nil, storefront.WrapStorage(err, "failed to load user")
	}

	return record, nil
}

// List implements storefront.Users.
func (r *UsersRepository) List(ctx context.Context) ([]*storefront.User, error) {
	var records []*storefront.User
	err := r.db.NewSelect().
		Model(&records).
		Order("id ASC").
		Scan(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to list users")
	}

	return records, nil
}

// Patch applies only the fields present on the patch, each already validated
// by the caller. Passwords arrive as cleartext and are hashed here so a hash
// never round-trips through a request payload.
func (r *UsersRepository) Patch(ctx context.Context, id int64, patch storefront.UserPatch) (*storefront.User, error) {
	if patch.IsZero() {
		return r.GetByID(ctx, id)
	}

	q := r.db.NewUpdate().
		Model((*storefront.User)(nil)).
		Set("updated_at = ?", time.Now()).
		Where("?TableAlias.id = ?", id)

	if patch.Name != nil {
		q = q.Set("name = ?", *patch.Name)
	}
	if patch.Email != nil {
		q = q.Set("email = ?", *patch.Email)
	}
	if patch.Phone != nil {
		q = q.Set("phone = ?", *patch.Phone)
	}
	if patch.Role != nil {
		q = q.Set("role = ?", *patch.Role)
	}
	if patch.Password != nil {
		hash, err := storefront.HashPassword(*patch.Password)
		if err != nil {
			return nil, err
		}
		q = q.Set("password_hash = ?", hash)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to patch user")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return nil, storefront.WrapStorage(err, "failed to patch user")
	}

	if matched == 0 {
		return nil, storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"user_id": id,
		})
	}

	return r.GetByID(ctx, id)
}

// Delete implements storefront.Users.
func (r *UsersRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.NewDelete().
		Model((*storefront.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return storefront.WrapStorage(err, "failed to delete user")
	}

	matched, err := res.RowsAffected()
	if err != nil {
		return storefront.WrapStorage(err, "failed to delete user")
	}

	if matched == 0 {
		return storefront.ErrRecordNotFound.WithMetadata(map[string]any{
			"user_id": id,
		})
	}

	return nil
}

// Package userrepo manages repository layer of users.
package userrepo

import (
	"context"
	"database/sql"

	"github.com/go-woori/bank-ledger/internal/domain"
	"github.com/go-woori/bank-ledger/pkg/dbpkg"
	"github.com/go-woori/bank-ledger/pkg/errorspkg"

	"github.com/rs/zerolog"
)

// RepoPGS facilitates user repository layer logic.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns user RepoPGS.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getQuery = `
SELECT
	id, name, created_at
FROM users
WHERE id = $1
`

// Get returns the user with the given id.
func (r *RepoPGS) Get(ctx context.Context, id int64) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getQuery, id)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return u, domain.ErrUserNotFound
		}

		l.Error().Err(err).Send()

		return u, errorspkg.ErrInternal
	}

	return u, nil
}

const createQuery = `
INSERT INTO
    users (name)
VALUES
    ($1)
RETURNING id, name, created_at
`

// Create creates the user and then returns it. Used for seeding and tests;
// there is no registration surface.
func (r *RepoPGS) Create(ctx context.Context, name string) (domain.User, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createQuery, name)

	var u domain.User

	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.CreatedAt,
	)

	if err != nil {
		l.Error().Err(err).Send()
		return u, errorspkg.ErrInternal
	}

	return u, nil
}

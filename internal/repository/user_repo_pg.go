package repository

import (
	"context"
	"strconv"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
)

type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
}

type PGUserRepository struct {
	db database.Transactor
}

func NewUserRepository(db database.Transactor) UserRepository {
	return &PGUserRepository{db: db}
}

// Create inserts one Users row. There is no duplicate-email check; a
// uniqueness violation comes back as a database.StatementError.
func (r *PGUserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.db.Exec(ctx, `INSERT INTO Users VALUES ($1, $2, $3, $4, $5)`,
		user.Email, user.LastName, user.FirstName, strconv.FormatInt(user.Phone, 10), user.PasswordDigest)
	return err
}

var _ UserRepository = (*PGUserRepository)(nil)

package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Domenick1991/ticketmaster/internal/database"
	"github.com/Domenick1991/ticketmaster/internal/domain"
)

type CatalogRepository interface {
	Exists(ctx context.Context, entity domain.Entity, key any) (bool, error)
	AddMovieShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int64) error
	ListCinemas(ctx context.Context) ([]domain.Cinema, error)
}

type PGCatalogRepository struct {
	db database.Transactor
}

func NewCatalogRepository(db database.Transactor) CatalogRepository {
	return &PGCatalogRepository{db: db}
}

var existsQueries = map[domain.Entity]string{
	domain.EntityUser:       `SELECT 1 FROM Users WHERE email = $1`,
	domain.EntityShow:       `SELECT 1 FROM Shows WHERE sid = $1`,
	domain.EntityMovie:      `SELECT 1 FROM Movies WHERE mvid = $1`,
	domain.EntityCinemaSeat: `SELECT 1 FROM CinemaSeats WHERE csid = $1`,
	domain.EntityShowSeat:   `SELECT 1 FROM ShowSeats WHERE ssid = $1`,
	domain.EntityTheater:    `SELECT 1 FROM Theaters WHERE tid = $1`,
	domain.EntityCinema:     `SELECT 1 FROM Cinemas WHERE cid = $1`,
}

func (r *PGCatalogRepository) Exists(ctx context.Context, entity domain.Entity, key any) (bool, error) {
	q, ok := existsQueries[entity]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownEntity, entity)
	}
	return r.db.Exists(ctx, q, key)
}

// AddMovieShowing inserts the movie, the show and the Plays row linking the
// show to a theater in one transaction.
func (r *PGCatalogRepository) AddMovieShowing(ctx context.Context, movie *domain.Movie, show *domain.Show, theaterID int64) error {
	return r.db.WithTx(ctx, func(tx database.Executor) error {
		if _, err := tx.Exec(ctx, `INSERT INTO Movies VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			movie.ID, movie.Title, movie.ReleaseDate, movie.Country, movie.Description, movie.Duration, movie.Language, movie.Genre); err != nil {
			return fmt.Errorf("insert movie %d: %w", movie.ID, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO Shows VALUES ($1, $2, $3, $4, $5)`,
			show.ID, show.MovieID, show.Date, show.StartTime, show.EndTime); err != nil {
			return fmt.Errorf("insert show %d: %w", show.ID, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO Plays VALUES ($1, $2)`, show.ID, theaterID); err != nil {
			return fmt.Errorf("insert plays %d/%d: %w", show.ID, theaterID, err)
		}
		return nil
	})
}

func (r *PGCatalogRepository) ListCinemas(ctx context.Context) ([]domain.Cinema, error) {
	res, err := r.db.Query(ctx, `SELECT cid, cname FROM Cinemas ORDER BY cid`)
	if err != nil {
		return nil, err
	}

	cinemas := make([]domain.Cinema, 0, res.Len())
	for _, row := range res.Rows {
		id, err := strconv.ParseInt(row[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse cinema id %q: %w", row[0], err)
		}
		cinemas = append(cinemas, domain.Cinema{ID: id, Name: row[1]})
	}
	return cinemas, nil
}

var _ CatalogRepository = (*PGCatalogRepository)(nil)

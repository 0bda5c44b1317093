package repository

import (
	"context"

	"github.com/deppfellow/contact-repository/internal/database"
	"github.com/deppfellow/contact-repository/internal/model"
	"github.com/deppfellow/contact-repository/internal/sqlerr"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

const contactTable = "contact"

const getContactQuery = `SELECT id, firstname, lastname, phone, email FROM contact WHERE id = $1`

// DBInterface is the part of the driver the contact repository needs.
// *pgxpool.Pool, *pgx.Conn and pgxmock satisfy it.
type DBInterface interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PgsqlRepository implements ContactRepository on PostgreSQL.
type PgsqlRepository struct {
	db       DBInterface
	database *database.Database
}

var _ ContactRepository = (*PgsqlRepository)(nil)

// NewPgsqlRepository connects to the database described by dsn and returns
// a repository that owns the connection. The connection is monitored in the
// background until Close; connection errors are reported on logger.
//
// An unreachable or invalid dsn is returned as an error once the connect
// timeout elapses.
func NewPgsqlRepository(ctx context.Context, dsn string, logger *zerolog.Logger) (*PgsqlRepository, error) {
	db, err := database.New(ctx, dsn, nil, logger, nil)
	if err != nil {
		return nil, sqlerr.HandleError(err, contactTable)
	}
	return &PgsqlRepository{db: db.Pool, database: db}, nil
}

// NewPgsqlRepositoryFromDB builds a repository on a connection owned by the caller.
func NewPgsqlRepositoryFromDB(db DBInterface) *PgsqlRepository {
	return &PgsqlRepository{db: db}
}

// Get fetches one contact by id.
//
// Zero rows is ErrContactNotFound, more than one row is ErrContactAmbiguous,
// and driver failures come back as database errors.
func (r *PgsqlRepository) Get(ctx context.Context, id int32) (*model.Contact, error) {
	rows, err := r.db.Query(ctx, getContactQuery, id)
	if err != nil {
		return nil, sqlerr.HandleRowError(err, contactTable, id)
	}

	contact, err := pgx.CollectExactlyOneRow(rows, scanContact)
	if err != nil {
		return nil, sqlerr.HandleRowError(err, contactTable, id)
	}

	return &contact, nil
}

// Close releases the connection when the repository owns it.
func (r *PgsqlRepository) Close() error {
	if r.database == nil {
		return nil
	}
	return r.database.Close()
}

// scanContact maps the five selected columns, in order, onto a Contact.
func scanContact(row pgx.CollectableRow) (model.Contact, error) {
	var c model.Contact
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Phone, &c.Email)
	return c, err
}

package word

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/kapu/subtitle-vocab-go/internal/domain"
	"github.com/kapu/subtitle-vocab-go/internal/service/database"
	"github.com/kapu/subtitle-vocab-go/pkg/errors"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// PostgresRepository reads and updates the word table directly over the
// PostgreSQL wire protocol.
type PostgresRepository struct {
	db     *sql.DB
	table  string
	logger *zap.Logger
}

func NewPostgresRepository(postgres *database.PostgresService, table string, logger *zap.Logger) *PostgresRepository {
	return &PostgresRepository{
		db:     postgres.GetDB(),
		table:  pq.QuoteIdentifier(table),
		logger: logger,
	}
}

// ListAll returns every row ordered by id.
func (r *PostgresRepository) ListAll(ctx context.Context) ([]*domain.WordRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, COALESCE(sentence, ''), COALESCE(series_name, ''), COALESCE(status, 0), episode
		FROM %s
		ORDER BY id
	`, r.table)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.NewStoreError("failed to query words", "list", 0, 0, err)
	}
	defer rows.Close()

	records := make([]*domain.WordRecord, 0)
	for rows.Next() {
		var (
			rec     domain.WordRecord
			episode sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.Sentence, &rec.SeriesName, &rec.Status, &episode); err != nil {
			return nil, errors.NewStoreError("failed to scan word", "list", 0, 0, err)
		}
		if episode.Valid {
			value := episode.String
			rec.Episode = &value
		}
		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.NewStoreError("failed to iterate words", "list", 0, 0, err)
	}

	r.logger.Debug("Words loaded from PostgreSQL", zap.Int("count", len(records)))
	return records, nil
}

// UpdateClassification writes series_name, status and episode for one row.
func (r *PostgresRepository) UpdateClassification(ctx context.Context, record *domain.WordRecord) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET series_name = $1, status = $2, episode = $3
		WHERE id = $4
	`, r.table)

	var episode sql.NullString
	if record.Episode != nil {
		episode = sql.NullString{String: *record.Episode, Valid: true}
	}

	result, err := r.db.ExecContext(ctx, query, record.SeriesName, record.Status, episode, record.ID)
	if err != nil {
		return errors.NewStoreError("failed to update word", "update", record.ID, 0, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return errors.NewStoreError("failed to read affected rows", "update", record.ID, 0, err)
	}
	if affected == 0 {
		return errors.NewStoreError(fmt.Sprintf("word %d not found", record.ID), "update", record.ID, 404, nil)
	}

	return nil
}

package journal

import (
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rustyeddy/airgraph/pkg/id"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) Record(r ReadingRecord) error {
	if r.ID == "" {
		r.ID = id.New()
	}
	_, err := j.db.Exec(`
		INSERT INTO readings
		(id, time, co2, temperature, humidity, source)
		VALUES (?, ?, ?, ?, ?, ?)`,
		r.ID, r.Time, r.CO2, r.TemperatureC, r.HumidityRH, r.Source,
	)
	return err
}

func (j *SQLite) Recent(n int) ([]ReadingRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, co2, temperature, humidity, source
		FROM (
			SELECT * FROM readings ORDER BY time DESC, id DESC LIMIT ?
		)
		ORDER BY time ASC, id ASC`, n)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func (j *SQLite) Between(start, end time.Time) ([]ReadingRecord, error) {
	rows, err := j.db.Query(`
		SELECT id, time, co2, temperature, humidity, source
		FROM readings
		WHERE time >= ? AND time < ?
		ORDER BY time ASC, id ASC`, start, end)
	if err != nil {
		return nil, err
	}
	return scanRecords(rows)
}

func scanRecords(rows *sql.Rows) ([]ReadingRecord, error) {
	defer rows.Close()

	var out []ReadingRecord
	for rows.Next() {
		var rec ReadingRecord
		if err := rows.Scan(
			&rec.ID,
			&rec.Time,
			&rec.CO2,
			&rec.TemperatureC,
			&rec.HumidityRH,
			&rec.Source,
		); err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

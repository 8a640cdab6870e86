package journal

const Schema = `
CREATE TABLE IF NOT EXISTS readings (
	id TEXT PRIMARY KEY,
	time DATETIME NOT NULL,
	co2 REAL NOT NULL,
	temperature REAL NOT NULL,
	humidity REAL NOT NULL,
	source TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_readings_time ON readings(time);
`

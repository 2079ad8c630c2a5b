package repository

// Schema is the fight database layout. The store itself never runs it;
// production databases are built by the ingest tooling. It is exported so
// tests and local setup can bootstrap an empty database.
const Schema = `
CREATE TABLE IF NOT EXISTS fighters (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	nickname TEXT,
	nationality TEXT,
	weight_class TEXT,
	record_wins INTEGER DEFAULT 0,
	record_losses INTEGER DEFAULT 0,
	record_draws INTEGER DEFAULT 0,
	ko_percentage REAL DEFAULT 0.0,
	reach INTEGER,
	height INTEGER,
	stance TEXT,
	birth_date TEXT,
	debut_date TEXT,
	active BOOLEAN DEFAULT 1,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS fights (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	date TEXT NOT NULL,
	fighter1_id INTEGER NOT NULL,
	fighter2_id INTEGER NOT NULL,
	winner_id INTEGER,
	method TEXT,
	round INTEGER,
	time TEXT,
	title_fight BOOLEAN DEFAULT 0,
	weight_class TEXT,
	location TEXT,
	status TEXT,
	FOREIGN KEY (fighter1_id) REFERENCES fighters(id),
	FOREIGN KEY (fighter2_id) REFERENCES fighters(id),
	FOREIGN KEY (winner_id) REFERENCES fighters(id)
);

CREATE TABLE IF NOT EXISTS titles (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	fighter_id INTEGER NOT NULL,
	title_name TEXT NOT NULL,
	won_date TEXT NOT NULL,
	lost_date TEXT,
	defenses_count INTEGER DEFAULT 0,
	FOREIGN KEY (fighter_id) REFERENCES fighters(id)
);

CREATE INDEX IF NOT EXISTS idx_fighters_name ON fighters(name);
CREATE INDEX IF NOT EXISTS idx_fighters_weight_class ON fighters(weight_class);
CREATE INDEX IF NOT EXISTS idx_fights_date ON fights(date);
`

package sqlite

// Table names, also the keys of sqlite_sequence.
const (
	Creators            = "creators"
	PriceHistory        = "price_history"
	LinkHistory         = "link_history"
	InterestingLinks    = "interesting_links"
	BlacklistedCreators = "blacklisted_creators"
)

// Foreign keys are declared but the connection disables their enforcement: repositories check references
// themselves and deleting a creator must leave its blacklist and price rows behind.
const schema = `
BEGIN TRANSACTION;

CREATE TABLE
	IF NOT EXISTS creators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL CHECK (length(name) > 0),
		homepage TEXT NOT NULL,
		rate INTEGER NOT NULL DEFAULT 0 CHECK (rate BETWEEN 0 AND 10)
	);

CREATE TABLE
	IF NOT EXISTS price_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		creator_id INTEGER NOT NULL,
		price REAL NOT NULL CHECK (price >= 0),
		date TEXT NOT NULL,
		FOREIGN KEY (creator_id) REFERENCES creators (id)
	);

CREATE TABLE
	IF NOT EXISTS link_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		source TEXT,
		downloaded BOOLEAN NOT NULL DEFAULT 0,
		date TEXT NOT NULL
	);

CREATE TABLE
	IF NOT EXISTS interesting_links (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		source TEXT,
		downloaded BOOLEAN NOT NULL DEFAULT 0,
		date TEXT
	);

CREATE TABLE
	IF NOT EXISTS blacklisted_creators (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		creator_id INTEGER NOT NULL,
		reason TEXT,
		date TEXT NOT NULL,
		FOREIGN KEY (creator_id) REFERENCES creators (id)
	);

CREATE INDEX IF NOT EXISTS "Price Creator Index" ON "price_history" ("creator_id" ASC);

COMMIT;
`

// the only column added after the first release; older files lack it
const addRateColumn = `ALTER TABLE creators ADD COLUMN rate INTEGER NOT NULL DEFAULT 0`

var tables = map[string]bool{
	Creators:            true,
	PriceHistory:        true,
	LinkHistory:         true,
	InterestingLinks:    true,
	BlacklistedCreators: true,
}

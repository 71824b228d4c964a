package store

type migration struct {
	version int
	sql     string
}

var migrations = []migration{
	{
		version: 1,
		sql: `
CREATE TABLE IF NOT EXISTS schema_version (
	version    INTEGER PRIMARY KEY,
	applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS users (
	id            INTEGER PRIMARY KEY AUTOINCREMENT,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	name          TEXT NOT NULL,
	department    TEXT NOT NULL DEFAULT 'Service',
	phone         TEXT NOT NULL DEFAULT '',
	last_login    DATETIME,
	created_at    DATETIME NOT NULL,
	updated_at    DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	title            TEXT NOT NULL,
	description      TEXT NOT NULL DEFAULT '',
	due_date         TEXT NOT NULL,
	status           TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'completed')),
	priority         TEXT NOT NULL DEFAULT 'medium' CHECK(priority IN ('low', 'medium', 'high')),
	assigned_to      INTEGER REFERENCES users(id),
	created_by       INTEGER REFERENCES users(id),
	equipment_id     TEXT NOT NULL DEFAULT '',
	location         TEXT NOT NULL DEFAULT '',
	estimated_hours  INTEGER,
	actual_hours     INTEGER,
	completion_notes TEXT NOT NULL DEFAULT '',
	completed_at     DATETIME,
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_status_due ON tasks(status, due_date);
CREATE INDEX IF NOT EXISTS idx_tasks_assigned_to ON tasks(assigned_to);

CREATE TABLE IF NOT EXISTS knowledge_base (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	category         TEXT NOT NULL,
	title            TEXT NOT NULL,
	content          TEXT NOT NULL,
	tags             TEXT NOT NULL DEFAULT '',
	equipment_type   TEXT NOT NULL DEFAULT '',
	difficulty_level TEXT NOT NULL DEFAULT 'medium' CHECK(difficulty_level IN ('easy', 'medium', 'hard')),
	created_at       DATETIME NOT NULL,
	updated_at       DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_knowledge_category ON knowledge_base(category);

CREATE TABLE IF NOT EXISTS email_notifications (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	task_id           INTEGER NOT NULL REFERENCES tasks(id),
	email             TEXT NOT NULL,
	sent_at           DATETIME,
	status            TEXT NOT NULL DEFAULT 'pending' CHECK(status IN ('pending', 'sent', 'failed')),
	notification_type TEXT NOT NULL DEFAULT 'due_reminder',
	created_at        DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_notifications_task ON email_notifications(task_id, status, notification_type, created_at);

INSERT INTO schema_version (version) VALUES (1);
`,
	},
}

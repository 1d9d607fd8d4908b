package sqlite

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	"github.com/hoshinonyaruko/gridsnake/structs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/vmihailenco/msgpack/v5"
)

const createHighScoreTableSQL = `
CREATE TABLE IF NOT EXISTS HighScore (
    ID INTEGER PRIMARY KEY CHECK (ID = 1),
    Score INTEGER NOT NULL,
    UpdatedAt TIMESTAMP
);
`

const createSessionsTableSQL = `
CREATE TABLE IF NOT EXISTS Sessions (
    SessionID TEXT PRIMARY KEY,
    Outcome TEXT,
    Score INTEGER,
    Length INTEGER,
    MapWidth INTEGER,
    MapHeight INTEGER,
    Body BLOB,
    StartedAt TIMESTAMP,
    FinishedAt TIMESTAMP
);
`

const createSessionsIndexSQL = `
CREATE INDEX IF NOT EXISTS idx_sessions_finished ON Sessions (FinishedAt);
`

// Store 用 sqlite 保存最高分和每一局的记录
type Store struct {
	db *sql.DB
}

// Open 打开数据库文件并建表
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	// sqlite 只允许一个写连接
	db.SetMaxOpenConns(1)
	if err := InitializeDatabase(db); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func executeSQL(db *sql.DB, sqlStatement string) error {
	_, err := db.Exec(sqlStatement)
	if err != nil {
		log.Printf("Error executing SQL statement: %s\n%s", sqlStatement, err)
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

func InitializeDatabase(db *sql.DB) error {
	for _, stmt := range []string{createHighScoreTableSQL, createSessionsTableSQL, createSessionsIndexSQL} {
		if err := executeSQL(db, stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadHighScore 没有记录时返回 0
func (s *Store) LoadHighScore() (int, error) {
	var score int
	err := s.db.QueryRow("SELECT Score FROM HighScore WHERE ID = 1").Scan(&score)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return score, nil
}

// SaveHighScore 只会让分数变大
func (s *Store) SaveHighScore(score int) error {
	_, err := s.db.Exec(`INSERT INTO HighScore (ID, Score, UpdatedAt) VALUES (1, ?, ?)
ON CONFLICT(ID) DO UPDATE SET Score = excluded.Score, UpdatedAt = excluded.UpdatedAt
WHERE excluded.Score > HighScore.Score`, score, time.Now())
	return err
}

// RecordSession 保存一局结束时的状态，蛇身用 msgpack 编码
func (s *Store) RecordSession(rec structs.SessionRecord) error {
	body, err := msgpack.Marshal(rec.Body)
	if err != nil {
		return err
	}

	// 开启事务
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}

	_, err = tx.Exec("INSERT OR REPLACE INTO Sessions (SessionID, Outcome, Score, Length, MapWidth, MapHeight, Body, StartedAt, FinishedAt) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		rec.SessionID, rec.Outcome, rec.Score, rec.Length, rec.Width, rec.Height, body, rec.StartedAt, rec.FinishedAt)
	if err != nil {
		tx.Rollback()
		return err
	}

	// 顺便保证最高分不低于这一局
	_, err = tx.Exec(`INSERT INTO HighScore (ID, Score, UpdatedAt) VALUES (1, ?, ?)
ON CONFLICT(ID) DO UPDATE SET Score = excluded.Score, UpdatedAt = excluded.UpdatedAt
WHERE excluded.Score > HighScore.Score`, rec.Score, rec.FinishedAt)
	if err != nil {
		tx.Rollback()
		return err
	}

	// 提交事务
	return tx.Commit()
}

// RecentSessions 按结束时间倒序返回最近的记录
func (s *Store) RecentSessions(limit int) ([]structs.SessionRecord, error) {
	rows, err := s.db.Query("SELECT SessionID, Outcome, Score, Length, MapWidth, MapHeight, Body, StartedAt, FinishedAt FROM Sessions ORDER BY FinishedAt DESC LIMIT ?", limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := []structs.SessionRecord{}
	for rows.Next() {
		var rec structs.SessionRecord
		var body []byte
		if err := rows.Scan(&rec.SessionID, &rec.Outcome, &rec.Score, &rec.Length, &rec.Width, &rec.Height, &body, &rec.StartedAt, &rec.FinishedAt); err != nil {
			return nil, err
		}
		if err := msgpack.Unmarshal(body, &rec.Body); err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

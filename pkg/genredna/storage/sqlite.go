//go:build !js && !wasm

// Package storage persists the song catalog in SQLite.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/himanishpuri/GenreDNA/pkg/models"
)

const DefaultDBFile = "genredna.sqlite3"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

// Song is the persisted form of models.Song. Position keeps catalog order
// stable across loads.
type Song struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	Position  int    `gorm:"index:idx_song_position"`
	Title     string `gorm:"uniqueIndex:idx_song_unique,priority:1"`
	Artist    string `gorm:"uniqueIndex:idx_song_unique,priority:2"`
	Genre     string `gorm:"index:idx_song_genre;type:varchar(16)"`
	Duration  string `gorm:"type:varchar(16)"`
	CreatedAt time.Time
}

type Sample struct {
	ID        string `gorm:"primaryKey;type:varchar(64)"`
	Position  int    `gorm:"index:idx_sample_position"`
	Name      string
	Genre     string `gorm:"type:varchar(16)"`
	CreatedAt time.Time
}

// NewDBClient opens (creating if needed) the database at dbPath. An empty
// path uses DefaultDBFile in the working directory.
func NewDBClient(dbPath string) (*DBClient, error) {
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_foreign_keys=on"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Song{}, &Sample{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// CountSongs returns the number of stored songs.
func (c *DBClient) CountSongs() (int, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var count int64
	if err := c.DB.Model(&Song{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return int(count), nil
}

// Seed stores songs and samples in a single transaction when the song table
// is empty. It reports whether anything was written.
func (c *DBClient) Seed(songs []models.Song, samples []models.SampleAudio) (bool, error) {
	n, err := c.CountSongs()
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	songRows := make([]Song, len(songs))
	for i, s := range songs {
		songRows[i] = Song{
			ID:       s.ID,
			Position: i,
			Title:    s.Title,
			Artist:   s.Artist,
			Genre:    s.Genre.String(),
			Duration: s.Duration,
		}
	}
	sampleRows := make([]Sample, len(samples))
	for i, s := range samples {
		sampleRows[i] = Sample{ID: s.ID, Position: i, Name: s.Name, Genre: s.Genre.String()}
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if len(songRows) > 0 {
			if err := tx.CreateInBatches(songRows, 500).Error; err != nil {
				return fmt.Errorf("inserting songs: %w", err)
			}
		}
		if len(sampleRows) > 0 {
			if err := tx.Where("1 = 1").Delete(&Sample{}).Error; err != nil {
				return fmt.Errorf("clearing samples: %w", err)
			}
			if err := tx.CreateInBatches(sampleRows, 500).Error; err != nil {
				return fmt.Errorf("inserting samples: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// ListSongs returns every song in seed order.
func (c *DBClient) ListSongs() ([]models.Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rows []Song
	if err := c.DB.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying songs: %w", err)
	}
	return songsFromRows(rows)
}

// SongsByGenre returns the songs tagged with g in seed order.
func (c *DBClient) SongsByGenre(g models.Genre) ([]models.Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rows []Song
	if err := c.DB.Where("genre = ?", g.String()).Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying songs by genre: %w", err)
	}
	return songsFromRows(rows)
}

func (c *DBClient) ListSamples() ([]models.SampleAudio, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var rows []Sample
	if err := c.DB.Order("position ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("querying samples: %w", err)
	}

	out := make([]models.SampleAudio, 0, len(rows))
	for _, r := range rows {
		g, err := models.ParseGenre(r.Genre)
		if err != nil {
			return nil, fmt.Errorf("sample %s: %w", r.ID, err)
		}
		out = append(out, models.SampleAudio{ID: r.ID, Name: r.Name, Genre: g})
	}
	return out, nil
}

func songsFromRows(rows []Song) ([]models.Song, error) {
	out := make([]models.Song, 0, len(rows))
	for _, r := range rows {
		g, err := models.ParseGenre(r.Genre)
		if err != nil {
			return nil, fmt.Errorf("song %s: %w", r.ID, err)
		}
		out = append(out, models.Song{
			ID:       r.ID,
			Title:    r.Title,
			Artist:   r.Artist,
			Genre:    g,
			Duration: r.Duration,
		})
	}
	return out, nil
}

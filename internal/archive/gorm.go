package archive

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/DoyleJ11/werewolf-table/internal/protocol"
)

type replayRow struct {
	ID         string    `gorm:"primaryKey;type:uuid"`
	Source     string    `gorm:"size:16;not null"`
	RecordedAt time.Time `gorm:"index;not null"`
	Entries    int       `gorm:"not null"`
	Result     string    `gorm:"size:32"`
	Payload    string    `gorm:"type:text;not null"`
}

func (replayRow) TableName() string { return "replays" }

// GormRepository stores replays in Postgres.
type GormRepository struct {
	db *gorm.DB
}

// OpenPostgres connects and migrates the replays table.
func OpenPostgres(dsn string) (*GormRepository, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewGormRepository(db)
}

func NewGormRepository(db *gorm.DB) (*GormRepository, error) {
	if err := db.AutoMigrate(&replayRow{}); err != nil {
		return nil, fmt.Errorf("migrate replays: %w", err)
	}
	return &GormRepository{db: db}, nil
}

func (r *GormRepository) Save(ctx context.Context, rec Record) error {
	payload, err := json.Marshal(rec.Replay)
	if err != nil {
		return fmt.Errorf("encode replay %s: %w", rec.ID, err)
	}
	row := replayRow{
		ID:         rec.ID.String(),
		Source:     string(rec.Source),
		RecordedAt: rec.RecordedAt,
		Entries:    len(rec.Replay.Timeline),
		Result:     string(rec.Replay.Result),
		Payload:    string(payload),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("save replay %s: %w", rec.ID, err)
	}
	return nil
}

func (r *GormRepository) Get(ctx context.Context, id uuid.UUID) (Record, error) {
	var row replayRow
	err := r.db.WithContext(ctx).First(&row, "id = ?", id.String()).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Record{}, ErrNotFound
	}
	if err != nil {
		return Record{}, fmt.Errorf("get replay %s: %w", id, err)
	}

	var replay protocol.ReplayData
	if err := json.Unmarshal([]byte(row.Payload), &replay); err != nil {
		return Record{}, fmt.Errorf("decode replay %s: %w", id, err)
	}
	return Record{
		ID:         id,
		Source:     Source(row.Source),
		RecordedAt: row.RecordedAt,
		Replay:     replay,
	}, nil
}

func (r *GormRepository) List(ctx context.Context) ([]Summary, error) {
	var rows []replayRow
	err := r.db.WithContext(ctx).
		Select("id", "source", "recorded_at", "entries", "result").
		Order("recorded_at desc").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list replays: %w", err)
	}

	out := make([]Summary, 0, len(rows))
	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			continue
		}
		out = append(out, Summary{
			ID:         id,
			Source:     Source(row.Source),
			RecordedAt: row.RecordedAt,
			Entries:    row.Entries,
			Result:     protocol.Result(row.Result),
		})
	}
	return out, nil
}

func (r *GormRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

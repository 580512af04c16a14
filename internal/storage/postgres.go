package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/makaka119911-oss/Tatiana-Server/internal/config"
	logging "github.com/makaka119911-oss/Tatiana-Server/internal/logging"
	"github.com/makaka119911-oss/Tatiana-Server/internal/models"
)

// PostgresStore keeps registrations and test results in relational tables
// behind gorm's bounded connection pool.
type PostgresStore struct {
	db *gorm.DB
}

var _ Store = (*PostgresStore)(nil)

// NewPostgres connects, applies the pool bounds from configuration and runs
// the schema migrations for both tables.
func NewPostgres(cfg config.DatabaseConfig, log *zap.Logger) (*PostgresStore, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)

	if err := db.AutoMigrate(&models.Registration{}, &models.TestResult{}); err != nil {
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) SaveRegistration(ctx context.Context, reg *models.Registration) error {
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(reg).Error; err != nil {
		return fmt.Errorf("failed to insert registration: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetRegistration(ctx context.Context, registrationID string) (*models.Registration, error) {
	var reg models.Registration
	err := s.db.WithContext(ctx).First(&reg, "registration_id = ?", registrationID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRegistrationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up registration: %w", err)
	}
	return &reg, nil
}

func (s *PostgresStore) SaveTestResult(ctx context.Context, res *models.TestResult) error {
	if res.CreatedAt.IsZero() {
		res.CreatedAt = time.Now().UTC()
	}
	if err := s.db.WithContext(ctx).Create(res).Error; err != nil {
		return fmt.Errorf("failed to insert test result: %w", err)
	}
	return nil
}

// archiveRow is the raw join projection before reshaping into ArchiveRecord.
type archiveRow struct {
	LastName     string
	FirstName    string
	Age          int
	Phone        string
	Telegram     string
	RegisteredAt time.Time
	Level        *string
	Score        *int
	TestedAt     *time.Time
}

func (s *PostgresStore) ListArchive(ctx context.Context) ([]models.ArchiveRecord, error) {
	var rows []archiveRow
	err := s.db.WithContext(ctx).
		Table("registrations AS r").
		Select("r.last_name, r.first_name, r.age, r.phone, r.telegram, r.created_at AS registered_at, t.level, t.score, t.created_at AS tested_at").
		Joins("LEFT JOIN test_results t ON t.registration_id = r.registration_id").
		Order("r.created_at DESC, t.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query archive: %w", err)
	}

	records := make([]models.ArchiveRecord, 0, len(rows))
	for _, row := range rows {
		rec := models.ArchiveRecord{
			FIO:      row.LastName + " " + row.FirstName,
			Age:      row.Age,
			Phone:    row.Phone,
			Telegram: row.Telegram,
			Level:    row.Level,
			Score:    row.Score,
			Date:     row.RegisteredAt,
		}
		if row.TestedAt != nil {
			rec.Date = *row.TestedAt
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *PostgresStore) Kind() string { return "postgres" }

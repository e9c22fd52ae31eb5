package analytics

import (
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var ErrEntryNotFound = errors.New("entry not found")

// AnalyticsManager records how committed lines relate to the suggestion that
// was on screen when they were committed.
type AnalyticsManager struct {
	db     *gorm.DB
	Logger *zap.Logger
}

type AnalyticsEntry struct {
	ID        uint      `gorm:"primarykey"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time `gorm:"index"`

	Input      string
	Suggestion string
	Actual     string
}

// Accepted reports whether the committed line is the suggestion.
func (e AnalyticsEntry) Accepted() bool {
	return e.Suggestion != "" && e.Suggestion == e.Actual
}

// HintCount is how often a hint was committed through a suggestion.
type HintCount struct {
	Hint  string
	Count int64
}

func NewAnalyticsManager(dbFilePath string) (*AnalyticsManager, error) {
	db, err := gorm.Open(sqlite.Open(dbFilePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open analytics database %s: %w", dbFilePath, err)
	}

	if err := db.AutoMigrate(&AnalyticsEntry{}); err != nil {
		return nil, fmt.Errorf("migrate analytics database: %w", err)
	}

	return &AnalyticsManager{
		db:     db,
		Logger: zap.NewNop(),
	}, nil
}

// NewEntry implements hintline.Analytics.
func (analyticsManager *AnalyticsManager) NewEntry(input string, suggestion string, actual string) error {
	entry := AnalyticsEntry{
		Input:      input,
		Suggestion: suggestion,
		Actual:     actual,
	}

	result := analyticsManager.db.Create(&entry)
	if result.Error != nil {
		return result.Error
	}

	analyticsManager.Logger.Debug("analytics entry recorded",
		zap.Uint("id", entry.ID),
		zap.Bool("accepted", entry.Accepted()))
	return nil
}

func (analyticsManager *AnalyticsManager) GetRecentEntries(limit int) ([]AnalyticsEntry, error) {
	var entries []AnalyticsEntry
	result := analyticsManager.db.Where("actual <> ''").Order("created_at desc, id desc").Limit(limit).Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}
	return entries, nil
}

func (analyticsManager *AnalyticsManager) ResetAnalytics() error {
	result := analyticsManager.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&AnalyticsEntry{})
	return result.Error
}

func (analyticsManager *AnalyticsManager) DeleteEntry(id uint) error {
	result := analyticsManager.db.Delete(&AnalyticsEntry{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (analyticsManager *AnalyticsManager) GetTotalCount() (int64, error) {
	var count int64
	result := analyticsManager.db.Model(&AnalyticsEntry{}).Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetAcceptanceCount counts the lines that were committed as the suggestion
// shown for them.
func (analyticsManager *AnalyticsManager) GetAcceptanceCount() (int64, error) {
	var count int64
	result := analyticsManager.db.Model(&AnalyticsEntry{}).Where("suggestion <> '' AND suggestion = actual").Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

// GetTopAccepted returns the most often accepted hints, most frequent first.
func (analyticsManager *AnalyticsManager) GetTopAccepted(limit int) ([]HintCount, error) {
	var results []struct {
		Actual string
		Count  int64
	}
	err := analyticsManager.db.Model(&AnalyticsEntry{}).
		Select("actual, count(*) as count").
		Where("suggestion <> '' AND suggestion = actual").
		Group("actual").
		Order("count desc, actual asc").
		Limit(limit).
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	counts := make([]HintCount, 0, len(results))
	for _, r := range results {
		counts = append(counts, HintCount{Hint: r.Actual, Count: r.Count})
	}
	return counts, nil
}

// GetDailyActivity returns a map of date string (YYYY-MM-DD) to entry count
func (analyticsManager *AnalyticsManager) GetDailyActivity() (map[string]int64, error) {
	var results []struct {
		Date  string
		Count int64
	}
	// SQLite specific date function
	if err := analyticsManager.db.Model(&AnalyticsEntry{}).Select("date(created_at) as date, count(*) as count").Group("date(created_at)").Scan(&results).Error; err != nil {
		return nil, err
	}

	activity := make(map[string]int64)
	for _, r := range results {
		activity[r.Date] = r.Count
	}
	return activity, nil
}

func (analyticsManager *AnalyticsManager) Close() error {
	sqlDB, err := analyticsManager.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

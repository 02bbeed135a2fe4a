package remote

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"codeberg.org/velkan/lingoscope/internal/vocab"
)

// gormStore implements Store using GORM over Postgres.
type gormStore struct {
	db *gorm.DB
}

// Open connects to the backend at dsn and returns a ready Store. The schema
// is migrated on connect.
func Open(dsn string) (Store, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to remote store: %w", err)
	}
	return NewStore(db)
}

// NewStore wraps an existing GORM connection.
func NewStore(db *gorm.DB) (Store, error) {
	if err := db.AutoMigrate(&vocab.SavedAnalysis{}, &vocab.AnalysisFolder{}); err != nil {
		return nil, fmt.Errorf("failed to migrate remote schema: %w", err)
	}
	return &gormStore{db: db}, nil
}

func (s *gormStore) FetchAnalyses(ctx context.Context, userID string) ([]vocab.SavedAnalysis, error) {
	var analyses []vocab.SavedAnalysis
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&analyses).Error
	return analyses, err
}

func (s *gormStore) FetchFolders(ctx context.Context, userID string) ([]vocab.AnalysisFolder, error) {
	var folders []vocab.AnalysisFolder
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&folders).Error
	return folders, err
}

func (s *gormStore) SaveAnalysis(ctx context.Context, userID string, a vocab.SavedAnalysis) error {
	a.UserID = userID
	a.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Create(&a).Error
}

func (s *gormStore) UpdateAnalysis(ctx context.Context, userID string, a vocab.SavedAnalysis) error {
	a.UserID = userID
	a.UpdatedAt = time.Now()
	// Save is insert-or-replace by primary key.
	return s.db.WithContext(ctx).Save(&a).Error
}

func (s *gormStore) DeleteAnalysis(ctx context.Context, userID, analysisID string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", analysisID, userID).
		Delete(&vocab.SavedAnalysis{}).Error
}

func (s *gormStore) UpdateAnalysisFolder(ctx context.Context, userID, analysisID string, folderID *string) error {
	return s.db.WithContext(ctx).Model(&vocab.SavedAnalysis{}).
		Where("id = ? AND user_id = ?", analysisID, userID).
		Updates(map[string]interface{}{
			"folder_id":  folderID,
			"updated_at": time.Now(),
		}).Error
}

func (s *gormStore) CreateFolder(ctx context.Context, userID string, f vocab.AnalysisFolder) error {
	f.UserID = userID
	f.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Create(&f).Error
}

func (s *gormStore) UpdateFolder(ctx context.Context, userID string, f vocab.AnalysisFolder) error {
	f.UserID = userID
	f.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Save(&f).Error
}

func (s *gormStore) DeleteFolder(ctx context.Context, userID, folderID string) error {
	return s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", folderID, userID).
		Delete(&vocab.AnalysisFolder{}).Error
}

func (s *gormStore) SyncAnalyses(ctx context.Context, userID string, local []vocab.SavedAnalysis) error {
	if len(local) == 0 {
		return nil
	}
	var existing []string
	err := s.db.WithContext(ctx).Model(&vocab.SavedAnalysis{}).
		Where("user_id = ?", userID).
		Pluck("id", &existing).Error
	if err != nil {
		return err
	}
	missing := missingAnalyses(existing, local)
	for i := range missing {
		missing[i].UserID = userID
		missing[i].UpdatedAt = time.Now()
	}
	if len(missing) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&missing).Error
}

func (s *gormStore) SyncFolders(ctx context.Context, userID string, local []vocab.AnalysisFolder) error {
	if len(local) == 0 {
		return nil
	}
	var existing []string
	err := s.db.WithContext(ctx).Model(&vocab.AnalysisFolder{}).
		Where("user_id = ?", userID).
		Pluck("id", &existing).Error
	if err != nil {
		return err
	}
	missing := missingFolders(existing, local)
	for i := range missing {
		missing[i].UserID = userID
		missing[i].UpdatedAt = time.Now()
	}
	if len(missing) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Create(&missing).Error
}

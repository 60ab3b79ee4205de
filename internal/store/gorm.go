package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"mediassist/internal/models"
)

// GormStore keeps one model in its table.
type GormStore[M any, P Entity[M]] struct {
	db *gorm.DB
}

func NewGormStore[M any, P Entity[M]](db *gorm.DB) *GormStore[M, P] {
	return &GormStore[M, P]{db: db}
}

func (s *GormStore[M, P]) List(ctx context.Context) ([]M, error) {
	var rows []M
	err := s.db.WithContext(ctx).
		Order(clause.OrderByColumn{Column: clause.Column{Table: clause.CurrentTable, Name: clause.PrimaryKey}}).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing: %w", err)
	}
	return rows, nil
}

func (s *GormStore[M, P]) Get(ctx context.Context, id int64) (M, error) {
	var rec M
	if err := s.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return rec, ErrNotFound
		}
		return rec, fmt.Errorf("loading %d: %w", id, err)
	}
	return rec, nil
}

func (s *GormStore[M, P]) Create(ctx context.Context, rec *M) error {
	P(rec).SetID(0)
	if err := s.db.WithContext(ctx).Create(rec).Error; err != nil {
		return fmt.Errorf("creating: %w", err)
	}
	return nil
}

// Update overwrites every column of an existing row, zero values included.
func (s *GormStore[M, P]) Update(ctx context.Context, rec *M) error {
	id := P(rec).GetID()
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	err := s.db.WithContext(ctx).Model(rec).
		Select("*").Omit("CreatedAt").
		Updates(rec).Error
	if err != nil {
		return fmt.Errorf("updating %d: %w", id, err)
	}
	return nil
}

func (s *GormStore[M, P]) Delete(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(new(M), id)
	if res.Error != nil {
		return fmt.Errorf("deleting %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

func (s *GormUserStore) Create(ctx context.Context, u *models.User) error {
	if _, err := s.FindByEmail(ctx, u.Email); err == nil {
		return ErrDuplicate
	} else if !errors.Is(err, ErrNotFound) {
		return err
	}
	if err := s.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *GormUserStore) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("finding user: %w", err)
	}
	return &u, nil
}

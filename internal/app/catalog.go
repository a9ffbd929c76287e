package app

import (
	"context"

	"golang.org/x/sync/errgroup"

	"kwiz-client/internal/domain"
)

// CatalogAPI is the slice of the remote service the catalog views need.
type CatalogAPI interface {
	Quizzes(ctx context.Context) ([]domain.Quiz, error)
	Turmas(ctx context.Context) ([]domain.Turma, error)
	OverallStats(ctx context.Context, userID int64) (domain.Stats, error)
}

// Catalog fetches the listing views. Every call is one fetch; nothing is
// cached across navigations.
type Catalog struct {
	api CatalogAPI
}

func NewCatalog(api CatalogAPI) *Catalog {
	return &Catalog{api: api}
}

func (c *Catalog) Quizzes(ctx context.Context) ([]domain.Quiz, error) {
	quizzes, err := c.api.Quizzes(ctx)
	if err != nil {
		return nil, err
	}
	if quizzes == nil {
		quizzes = []domain.Quiz{}
	}
	return quizzes, nil
}

func (c *Catalog) Turmas(ctx context.Context) ([]domain.Turma, error) {
	turmas, err := c.api.Turmas(ctx)
	if err != nil {
		return nil, err
	}
	if turmas == nil {
		turmas = []domain.Turma{}
	}
	return turmas, nil
}

func (c *Catalog) Stats(ctx context.Context, userID int64) (domain.Stats, error) {
	return c.api.OverallStats(ctx, userID)
}

// Overview bundles all three catalog views for the dashboard.
type Overview struct {
	Quizzes []domain.Quiz
	Turmas  []domain.Turma
	Stats   domain.Stats
}

// Overview fetches quizzes, turmas, and stats concurrently.
func (c *Catalog) Overview(ctx context.Context, userID int64) (Overview, error) {
	var overview Overview
	group, ctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		quizzes, err := c.Quizzes(ctx)
		if err != nil {
			return err
		}
		overview.Quizzes = quizzes
		return nil
	})
	group.Go(func() error {
		turmas, err := c.Turmas(ctx)
		if err != nil {
			return err
		}
		overview.Turmas = turmas
		return nil
	})
	group.Go(func() error {
		stats, err := c.Stats(ctx, userID)
		if err != nil {
			return err
		}
		overview.Stats = stats
		return nil
	})
	if err := group.Wait(); err != nil {
		return Overview{}, err
	}
	return overview, nil
}

// Package session owns the tables of one exploration session.
//
// A Session is built once: the source is loaded, cleaned by the imputation
// policy, and both tables are kept read-only for the session's lifetime so
// callers can compare raw and cleaned data. Nothing here is global; every
// caller holds its own *Session.
package session

import (
	"context"
	"fmt"
	"time"

	"diabex/domain/core"
	"diabex/domain/dataset"
	"diabex/internal"
	"diabex/internal/cleaning"
	"diabex/ports"
)

// View selects which table of a session a read operation runs on
type View string

const (
	ViewClean View = "clean"
	ViewRaw   View = "raw"
)

// ParseView maps "", "clean" and "raw" to a View
func ParseView(s string) (View, error) {
	switch View(s) {
	case "", ViewClean:
		return ViewClean, nil
	case ViewRaw:
		return ViewRaw, nil
	default:
		return "", fmt.Errorf("unknown view %q (want clean or raw)", s)
	}
}

// Session holds one loaded dataset and its cleaned copy
type Session struct {
	ID          core.SessionID
	Source      string
	LoadedAt    time.Time
	Policy      cleaning.Policy
	Imputations []cleaning.Imputation

	raw   *dataset.Table
	clean *dataset.Table
}

// New loads source with loader and applies policy to produce the cleaned table.
func New(ctx context.Context, loader ports.DatasetLoader, policy cleaning.Policy, source string, logger *internal.Logger) (*Session, error) {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	log := logger.With("Session")

	raw, err := loader.Load(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", source, err)
	}

	clean, imputations, err := policy.Apply(raw)
	if err != nil {
		return nil, fmt.Errorf("clean %s: %w", source, err)
	}

	s := &Session{
		ID:          core.NewSessionID(),
		Source:      source,
		LoadedAt:    time.Now().UTC(),
		Policy:      policy,
		Imputations: imputations,
		raw:         raw,
		clean:       clean,
	}

	for _, imp := range imputations {
		if imp.Replaced > 0 {
			log.Debug("%s: replaced %d values of %g with median %g", imp.Column, imp.Replaced, imp.Sentinel, *imp.Median)
		}
	}
	log.Info("Session %s ready: %d rows from %s", s.ID, raw.RowCount(), source)
	return s, nil
}

// Raw returns the table exactly as loaded
func (s *Session) Raw() *dataset.Table { return s.raw }

// Clean returns the imputed table
func (s *Session) Clean() *dataset.Table { return s.clean }

// Table returns the table for view
func (s *Session) Table(view View) *dataset.Table {
	if view == ViewRaw {
		return s.Raw()
	}
	return s.Clean()
}

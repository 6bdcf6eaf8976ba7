package server

import (
	"context"

	"github.com/preston-bernstein/team-matches-service/internal/coordinator"
	"github.com/preston-bernstein/team-matches-service/internal/domain/matches"
)

// Coordinator defines the refresh loop behaviour the server needs.
type Coordinator interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() coordinator.Status
	Current() *matches.Snapshot
	Refresh(ctx context.Context) error
	Subscribe(fn func(*matches.Snapshot)) func()
}

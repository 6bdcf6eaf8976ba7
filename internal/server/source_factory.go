package server

import (
	"log/slog"
	"time"

	"github.com/preston-bernstein/team-matches-service/internal/config"
	"github.com/preston-bernstein/team-matches-service/internal/fetcher"
	"github.com/preston-bernstein/team-matches-service/internal/logging"
	"github.com/preston-bernstein/team-matches-service/internal/parser"
	"github.com/preston-bernstein/team-matches-service/internal/parser/zalgiris"
)

func buildFetcher(src config.SourceConfig, loc *time.Location, logger *slog.Logger) fetcher.Fetcher {
	switch src.Name {
	case config.SourceFixture:
		logging.Info(logger, "using fixture schedule source")
		return fetcher.NewFixture(loc)
	case config.SourceZalgiris:
		return fetcher.NewClient(fetcher.Config{
			UserAgent: src.UserAgent,
			Timeout:   src.Timeout,
		})
	default:
		logging.Warn(logger, "unknown source, falling back to fixture", logging.FieldSource, src.Name)
		return fetcher.NewFixture(loc)
	}
}

func buildParser(src config.SourceConfig, loc *time.Location) parser.Parser {
	return zalgiris.New(zalgiris.Config{
		BaseURL:  src.BaseURL,
		TeamName: src.TeamName,
		Location: loc,
	})
}

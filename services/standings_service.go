package services

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/shopspring/decimal"

	"github.com/tercas-fc/league-system/models"
	"github.com/tercas-fc/league-system/repositories"
)

// Scoring rules of the league. A loss still grants one point (consolation
// point, a deliberate club rule) and ties on points are broken by games
// played descending. These are constants, not defaults to tune per season.
const (
	WinPoints  = 3
	DrawPoints = 2
	LossPoints = 1
)

// GameFee is debited from every participant of a recorded match, win or lose.
var GameFee = decimal.NewFromFloat(3.0)

type StandingsService interface {
	ComputeTable(ctx context.Context) ([]models.PlayerStanding, error)
}

type standingsService struct {
	playerRepo        repositories.PlayerRepository
	matchRepo         repositories.MatchRepository
	participationRepo repositories.ParticipationRepository
}

func NewStandingsService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	participationRepo repositories.ParticipationRepository,
) StandingsService {
	return &standingsService{
		playerRepo:        playerRepo,
		matchRepo:         matchRepo,
		participationRepo: participationRepo,
	}
}

// ComputeTable derives the live table from stored state. It is a pure read:
// no mutation, safe to call repeatedly and concurrently.
func (s *standingsService) ComputeTable(ctx context.Context) ([]models.PlayerStanding, error) {
	var (
		players []models.Player
		matches []models.Match
		links   []models.MatchParticipation
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx, nil, true)
		return err
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx, nil)
		return err
	})
	g.Go(func() error {
		var err error
		links, err = s.participationRepo.ListAll(gCtx, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to load standings inputs: %w", err)
	}

	return BuildTable(players, matches, links), nil
}

// BuildTable turns the active roster plus the recorded matches into a ranked
// table. Participations of inactive or unknown players are skipped: their
// history stays in the store (and in any archive taken earlier) but the live
// table hides them.
//
// Ordering: points descending, then games played descending. Players equal on
// both keep the input roster order; no further tie-break is defined.
func BuildTable(players []models.Player, matches []models.Match, links []models.MatchParticipation) []models.PlayerStanding {
	stats := make(map[int]*models.PlayerStanding, len(players))
	order := make([]int, 0, len(players))
	for _, p := range players {
		stats[p.ID] = &models.PlayerStanding{ID: p.ID, Name: p.Name}
		order = append(order, p.ID)
	}

	linksByMatch := make(map[int][]models.MatchParticipation, len(matches))
	for _, l := range links {
		linksByMatch[l.MatchID] = append(linksByMatch[l.MatchID], l)
	}

	for _, m := range matches {
		multiplier := 1
		if m.DoublePoints {
			multiplier = 2
		}

		for _, link := range linksByMatch[m.ID] {
			row, ok := stats[link.PlayerID]
			if !ok {
				continue
			}
			row.GamesPlayed++

			switch {
			case m.Result == models.ResultDraw:
				row.Draws++
				row.Points += DrawPoints * multiplier
			case winningTeam(m.Result) == link.Team:
				row.Wins++
				row.Points += WinPoints * multiplier
			default:
				row.Losses++
				row.Points += LossPoints * multiplier
			}
		}
	}

	table := make([]models.PlayerStanding, 0, len(order))
	for _, id := range order {
		table = append(table, *stats[id])
	}

	sort.SliceStable(table, func(i, j int) bool {
		if table[i].Points != table[j].Points {
			return table[i].Points > table[j].Points
		}
		return table[i].GamesPlayed > table[j].GamesPlayed
	})

	return table
}

func winningTeam(result models.MatchResult) string {
	switch result {
	case models.ResultTeamA:
		return "A"
	case models.ResultTeamB:
		return "B"
	}
	return ""
}

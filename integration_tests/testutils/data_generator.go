package testutils

import (
	"fmt"
	"strconv"
	"time"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
	"github.com/brianvoe/gofakeit/v7"
)

// TestDataGenerator builds valid tournaments with random names.
type TestDataGenerator struct {
	faker *gofakeit.Faker
	seed  int64
}

// NewTestDataGenerator creates a generator. Pass a seed for reproducible data.
func NewTestDataGenerator(seed ...int64) *TestDataGenerator {
	s := time.Now().UnixNano()
	if len(seed) > 0 {
		s = seed[0]
	}
	return &TestDataGenerator{faker: gofakeit.New(uint64(s)), seed: s}
}

// Seed returns the seed in use, for failure messages.
func (g *TestDataGenerator) Seed() int64 {
	return g.seed
}

// GenerateTeams creates count teams with sequential provider ids starting
// at firstID. Team names are unique.
func (g *TestDataGenerator) GenerateTeams(count, firstID int) []tournamentdomain.Team {
	teams := make([]tournamentdomain.Team, count)
	for i := range teams {
		lineup := make([]tournamentdomain.Player, g.faker.Number(1, 4))
		for j := range lineup {
			lineup[j] = tournamentdomain.Player{
				Name:         g.faker.Gamertag(),
				CustomFields: tournamentdomain.CustomFields{"platform_id": g.faker.Numerify("##########")},
			}
		}
		teams[i] = tournamentdomain.Team{
			ID:     strconv.Itoa(firstID + i),
			Name:   fmt.Sprintf("%s %s #%d", g.faker.Color(), g.faker.Animal(), i+1),
			Lineup: lineup,
		}
	}
	return teams
}

// GenerateTournament creates a tournament with teamCount teams and
// matchCount pending matches open to every team.
func (g *TestDataGenerator) GenerateTournament(alias string, teamCount, matchCount int) *tournamentdomain.Tournament {
	id := g.faker.Numerify("##########")
	created := g.faker.DateRange(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	).UTC().Truncate(time.Second)

	matches := make([]tournamentdomain.Match, matchCount)
	for i := range matches {
		matches[i] = tournamentdomain.Match{
			Name:      fmt.Sprintf("game-%d", i+1),
			CreatedBy: g.faker.Numerify("##################"),
			CreatedAt: created.Add(time.Duration(i) * time.Hour),
			Password:  g.faker.Password(true, false, true, false, false, 8),
			Status:    tournamentdomain.MatchStatusPending,
		}
	}

	return &tournamentdomain.Tournament{
		Alias: alias,
		ID:    id,
		URL:   tournamentdomain.TournamentURL(id),
		Info: tournamentdomain.ToornamentInfo{
			ID:          id,
			Name:        g.faker.AppName() + " Cup",
			Discipline:  "fortnite",
			Country:     g.faker.CountryAbr(),
			Size:        teamCount,
			TeamMinSize: 1,
			TeamMaxSize: 4,
			Platforms:   []string{"pc"},
		},
		AdministratorRoles: []string{g.faker.Numerify("##################")},
		Teams:              g.GenerateTeams(teamCount, 1),
		Matches:            matches,
		CreatedAt:          created,
	}
}

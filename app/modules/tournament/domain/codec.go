package tournamentdomain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// DecodeTournament parses a stored tournament blob. Unknown fields and
// structurally invalid data are rejected rather than coerced.
func DecodeTournament(data []byte) (*Tournament, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var t Tournament
	if err := dec.Decode(&t); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidTournament, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after tournament object", ErrInvalidTournament)
	}

	normalize(&t)
	if err := Validate(&t); err != nil {
		return nil, err
	}
	return &t, nil
}

// EncodeTournament serializes t for storage after validating it.
func EncodeTournament(t *Tournament) ([]byte, error) {
	normalize(t)
	if err := Validate(t); err != nil {
		return nil, err
	}
	return json.Marshal(t)
}

// Validate checks the structural invariants of a tournament.
func Validate(t *Tournament) error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", ErrInvalidTournament, fmt.Sprintf(format, args...))
	}

	if t.Alias == "" {
		return invalid("alias is required")
	}
	if t.ID == "" {
		return invalid("tournament %s has no provider id", t.Alias)
	}

	teamIDs := make(map[string]struct{}, len(t.Teams))
	captains := make(map[string]string)
	for _, team := range t.Teams {
		if team.ID == "" {
			return invalid("team %q has no id", team.Name)
		}
		if _, dup := teamIDs[team.ID]; dup {
			return invalid("duplicate team id %s", team.ID)
		}
		teamIDs[team.ID] = struct{}{}

		if team.Captain != "" {
			if other, dup := captains[team.Captain]; dup {
				return invalid("captain %s linked to teams %s and %s", team.Captain, other, team.ID)
			}
			captains[team.Captain] = team.ID
		}

		seen := make(map[string]struct{}, len(team.ScoreSubmissions))
		for _, s := range team.ScoreSubmissions {
			if _, dup := seen[s.MatchName]; dup {
				return invalid("team %s has two submissions for match %s", team.ID, s.MatchName)
			}
			seen[s.MatchName] = struct{}{}
			if s.Position < 1 || s.Eliminations < 0 {
				return invalid("team %s has an invalid score for match %s", team.ID, s.MatchName)
			}
		}
	}

	matchNames := make(map[string]struct{}, len(t.Matches))
	for _, m := range t.Matches {
		if m.Name == "" {
			return invalid("match has no name")
		}
		if _, dup := matchNames[m.Name]; dup {
			return invalid("duplicate match name %s", m.Name)
		}
		matchNames[m.Name] = struct{}{}

		if !m.Status.Valid() {
			return invalid("match %s has status %d", m.Name, int(m.Status))
		}
		if len(m.TeamsRegistered) > 0 {
			for _, id := range m.TeamsJoined {
				if !m.IsRegistered(id) {
					return invalid("match %s: joined team %s is not registered", m.Name, id)
				}
			}
		}
	}
	return nil
}

// normalize replaces nil collections with empty ones so stored blobs are stable.
func normalize(t *Tournament) {
	if t.AdministratorRoles == nil {
		t.AdministratorRoles = []string{}
	}
	if t.Channels == nil {
		t.Channels = []string{}
	}
	if t.Teams == nil {
		t.Teams = []Team{}
	}
	if t.Matches == nil {
		t.Matches = []Match{}
	}
	if t.Info.Platforms == nil {
		t.Info.Platforms = []string{}
	}
	for i := range t.Teams {
		if t.Teams[i].Lineup == nil {
			t.Teams[i].Lineup = []Player{}
		}
		if t.Teams[i].ScoreSubmissions == nil {
			t.Teams[i].ScoreSubmissions = []ScoreSubmission{}
		}
		for j := range t.Teams[i].ScoreSubmissions {
			if t.Teams[i].ScoreSubmissions[j].ScreenshotLinks == nil {
				t.Teams[i].ScoreSubmissions[j].ScreenshotLinks = []string{}
			}
		}
	}
	for i := range t.Matches {
		if t.Matches[i].TeamsRegistered == nil {
			t.Matches[i].TeamsRegistered = []string{}
		}
		if t.Matches[i].TeamsJoined == nil {
			t.Matches[i].TeamsJoined = []string{}
		}
	}
}

package tournamentdomain

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// MatchStatus is the lifecycle state of a match.
type MatchStatus int

const (
	MatchStatusPending   MatchStatus = 1
	MatchStatusOngoing   MatchStatus = 2
	MatchStatusCompleted MatchStatus = 3
)

var matchStatusNames = map[MatchStatus]string{
	MatchStatusPending:   "PENDING",
	MatchStatusOngoing:   "ONGOING",
	MatchStatusCompleted: "COMPLETED",
}

// String returns the upper-case status name used in chat replies.
func (s MatchStatus) String() string {
	if name, ok := matchStatusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("MatchStatus(%d)", int(s))
}

// Valid reports whether s is one of the known statuses.
func (s MatchStatus) Valid() bool {
	_, ok := matchStatusNames[s]
	return ok
}

// ParseMatchStatus resolves a status name, ignoring case.
func ParseMatchStatus(name string) (MatchStatus, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for status, n := range matchStatusNames {
		if n == upper {
			return status, nil
		}
	}
	return 0, fmt.Errorf("%w: %q (choices are PENDING, ONGOING, COMPLETED)", ErrInvalidMatchStatus, name)
}

// CustomFields holds provider-defined participant attributes.
type CustomFields map[string]any

// Player is a member of a team lineup.
type Player struct {
	Name         string       `json:"name"`
	CustomFields CustomFields `json:"custom_fields,omitempty"`
	Email        string       `json:"email,omitempty"`
}

// ScoreSubmission is a team's result claim for one match.
type ScoreSubmission struct {
	MatchName       string    `json:"match_name"`
	TeamName        string    `json:"team_name"`
	ScreenshotLinks []string  `json:"screenshot_links"`
	Position        int       `json:"position"`
	Eliminations    int       `json:"eliminations"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Points returns the reporting score of the submission.
func (s ScoreSubmission) Points() int {
	return Points(s.Position, s.Eliminations)
}

// Team is a tournament participant. Captain and ScoreSubmissions are owned
// locally and survive provider refreshes.
type Team struct {
	ID               string            `json:"id"`
	Name             string            `json:"name"`
	CustomFields     CustomFields      `json:"custom_fields,omitempty"`
	Lineup           []Player          `json:"lineup"`
	Captain          string            `json:"captain,omitempty"`
	CheckedIn        *bool             `json:"checked_in,omitempty"`
	ScoreSubmissions []ScoreSubmission `json:"score_submissions"`
}

// HasCaptain reports whether a chat user is linked to the team.
func (t *Team) HasCaptain() bool {
	return t.Captain != ""
}

// FindSubmission returns the team's submission for matchName, or nil.
func (t *Team) FindSubmission(matchName string) *ScoreSubmission {
	for i := range t.ScoreSubmissions {
		if t.ScoreSubmissions[i].MatchName == matchName {
			return &t.ScoreSubmissions[i]
		}
	}
	return nil
}

// Match is a tournament game session that teams join and report scores on.
type Match struct {
	Name            string      `json:"name"`
	ID              string      `json:"id,omitempty"`
	GroupName       string      `json:"group_name,omitempty"`
	CreatedBy       string      `json:"created_by"`
	CreatedAt       time.Time   `json:"created_at"`
	Password        string      `json:"password,omitempty"`
	Status          MatchStatus `json:"status"`
	TeamsRegistered []string    `json:"teams_registered"`
	TeamsJoined     []string    `json:"teams_joined"`
}

// IsRegistered reports whether teamID may take part. An empty registration
// list admits every team.
func (m *Match) IsRegistered(teamID string) bool {
	if len(m.TeamsRegistered) == 0 {
		return true
	}
	return slices.Contains(m.TeamsRegistered, teamID)
}

// HasJoined reports whether teamID is in the joined list.
func (m *Match) HasJoined(teamID string) bool {
	return slices.Contains(m.TeamsJoined, teamID)
}

// Locked reports whether score submissions are frozen.
func (m *Match) Locked() bool {
	return m.Status == MatchStatusCompleted
}

// ToornamentInfo is the provider's tournament metadata snapshot.
type ToornamentInfo struct {
	ID                 string   `json:"id"`
	Name               string   `json:"name"`
	Discipline         string   `json:"discipline"`
	Country            string   `json:"country,omitempty"`
	Location           string   `json:"location,omitempty"`
	Status             string   `json:"status,omitempty"`
	ScheduledDateStart string   `json:"scheduled_date_start,omitempty"`
	ScheduledDateEnd   string   `json:"scheduled_date_end,omitempty"`
	Size               int      `json:"size"`
	TeamMinSize        int      `json:"team_min_size"`
	TeamMaxSize        int      `json:"team_max_size"`
	Rule               string   `json:"rule,omitempty"`
	Prize              string   `json:"prize,omitempty"`
	Platforms          []string `json:"platforms"`
}

// Tournament is the aggregate root persisted under its alias.
type Tournament struct {
	Alias              string         `json:"alias"`
	ID                 string         `json:"id"`
	URL                string         `json:"url"`
	Info               ToornamentInfo `json:"info"`
	AdministratorRoles []string       `json:"administrator_roles"`
	CaptainRole        string         `json:"captain_role,omitempty"`
	Channels           []string       `json:"channels"`
	Teams              []Team         `json:"teams"`
	Matches            []Match        `json:"matches"`
	CreatedAt          time.Time      `json:"created_at"`
}

// TournamentURL is the public information page of a provider tournament.
func TournamentURL(id string) string {
	return "https://www.toornament.com/en_US/tournaments/" + id + "/information"
}

// FindTeamByID returns the team with the given provider id, or nil.
func (t *Tournament) FindTeamByID(id string) *Team {
	for i := range t.Teams {
		if t.Teams[i].ID == id {
			return &t.Teams[i]
		}
	}
	return nil
}

// FindTeamByName returns the first team with the given display name, or nil.
func (t *Tournament) FindTeamByName(name string) *Team {
	for i := range t.Teams {
		if t.Teams[i].Name == name {
			return &t.Teams[i]
		}
	}
	return nil
}

// FindTeamByCaptain returns the team linked to captain, or nil.
func (t *Tournament) FindTeamByCaptain(captain string) *Team {
	if captain == "" {
		return nil
	}
	for i := range t.Teams {
		if t.Teams[i].Captain == captain {
			return &t.Teams[i]
		}
	}
	return nil
}

// FindMatch returns the match named name, or nil.
func (t *Tournament) FindMatch(name string) *Match {
	for i := range t.Matches {
		if t.Matches[i].Name == name {
			return &t.Matches[i]
		}
	}
	return nil
}

// CountLinkedTeams returns how many teams have a captain.
func (t *Tournament) CountLinkedTeams() int {
	n := 0
	for i := range t.Teams {
		if t.Teams[i].HasCaptain() {
			n++
		}
	}
	return n
}

// TeamsWithoutCaptain returns the teams nobody has linked yet, in roster order.
func (t *Tournament) TeamsWithoutCaptain() []Team {
	var out []Team
	for _, team := range t.Teams {
		if !team.HasCaptain() {
			out = append(out, team)
		}
	}
	return out
}

// JoinedMatches returns the matches teamID has joined.
func (t *Tournament) JoinedMatches(teamID string) []Match {
	var out []Match
	for _, m := range t.Matches {
		if m.HasJoined(teamID) {
			out = append(out, m)
		}
	}
	return out
}

func remove(values []string, v string) []string {
	out := make([]string, 0, len(values))
	for _, s := range values {
		if s != v {
			out = append(out, s)
		}
	}
	return out
}

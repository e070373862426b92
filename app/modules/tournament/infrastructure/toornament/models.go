package toornament

import (
	"bytes"
	"encoding/json"
	"fmt"

	tournamentdomain "github.com/Black-And-White-Club/tourney-bot/app/modules/tournament/domain"
)

// id accepts both the string ids of the v2 API and bare numbers, so ids are
// strings everywhere past this package.
type id string

func (i *id) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*i = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*i = id(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id must be a string or number: %w", err)
	}
	*i = id(n.String())
	return nil
}

type tournamentDTO struct {
	ID                 id       `json:"id"`
	Name               string   `json:"name"`
	Discipline         string   `json:"discipline"`
	Country            string   `json:"country"`
	Location           string   `json:"location"`
	Status             string   `json:"status"`
	ScheduledDateStart string   `json:"scheduled_date_start"`
	ScheduledDateEnd   string   `json:"scheduled_date_end"`
	Size               int      `json:"size"`
	TeamMinSize        int      `json:"team_min_size"`
	TeamMaxSize        int      `json:"team_max_size"`
	Rule               string   `json:"rule"`
	Prize              string   `json:"prize"`
	Platforms          []string `json:"platforms"`
}

func (d tournamentDTO) toDomain() *tournamentdomain.ToornamentInfo {
	platforms := d.Platforms
	if platforms == nil {
		platforms = []string{}
	}
	return &tournamentdomain.ToornamentInfo{
		ID:                 string(d.ID),
		Name:               d.Name,
		Discipline:         d.Discipline,
		Country:            d.Country,
		Location:           d.Location,
		Status:             d.Status,
		ScheduledDateStart: d.ScheduledDateStart,
		ScheduledDateEnd:   d.ScheduledDateEnd,
		Size:               d.Size,
		TeamMinSize:        d.TeamMinSize,
		TeamMaxSize:        d.TeamMaxSize,
		Rule:               d.Rule,
		Prize:              d.Prize,
		Platforms:          platforms,
	}
}

type playerDTO struct {
	Name         string         `json:"name"`
	CustomFields map[string]any `json:"custom_fields"`
	Email        string         `json:"email"`
}

type participantDTO struct {
	ID           id             `json:"id"`
	Name         string         `json:"name"`
	CustomFields map[string]any `json:"custom_fields"`
	Lineup       []playerDTO    `json:"lineup"`
	CheckedIn    *bool          `json:"checked_in"`
}

func (d participantDTO) toDomain() tournamentdomain.Participant {
	lineup := make([]tournamentdomain.Player, 0, len(d.Lineup))
	for _, p := range d.Lineup {
		lineup = append(lineup, tournamentdomain.Player{
			Name:         p.Name,
			CustomFields: p.CustomFields,
			Email:        p.Email,
		})
	}
	return tournamentdomain.Participant{
		ID:           string(d.ID),
		Name:         d.Name,
		CustomFields: d.CustomFields,
		Lineup:       lineup,
		CheckedIn:    d.CheckedIn,
	}
}

type opponentDTO struct {
	Number      int `json:"number"`
	Participant *struct {
		ID   id     `json:"id"`
		Name string `json:"name"`
	} `json:"participant"`
}

type matchDTO struct {
	ID          id            `json:"id"`
	PublicNotes *string       `json:"public_notes"`
	Opponents   []opponentDTO `json:"opponents"`
}

// toDomain keeps the participants already placed in the match. Open slots
// have no participant yet and are skipped.
func (d matchDTO) toDomain() *tournamentdomain.MatchMetadata {
	m := &tournamentdomain.MatchMetadata{ID: string(d.ID), ParticipantIDs: []string{}}
	if d.PublicNotes != nil {
		m.GroupName = *d.PublicNotes
	}
	for _, o := range d.Opponents {
		if o.Participant == nil || o.Participant.ID == "" {
			continue
		}
		m.ParticipantIDs = append(m.ParticipantIDs, string(o.Participant.ID))
	}
	return m
}

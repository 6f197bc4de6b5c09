package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/playerz/playerz-api/models"
	"github.com/playerz/playerz-api/pairing"
	"github.com/playerz/playerz-api/services"
)

// fakeMatchService переопределяет только нужные методы, остальные паникуют.
type fakeMatchService struct {
	services.MatchService
	calls int
}

func (f *fakeMatchService) UpdateScore(_ context.Context, id, side, score int) (*models.Match, error) {
	f.calls++
	if side != 1 && side != 2 {
		return nil, services.ErrInvalidSide
	}
	if id == 404 {
		return nil, services.ErrMatchNotFound
	}
	m := &models.Match{ID: id, TournamentID: 1, Status: models.MatchInProgress}
	if side == 1 {
		m.ScoreTeamOne = score
	} else {
		m.ScoreTeamTwo = score
	}
	return m, nil
}

type fakePlayerService struct {
	services.PlayerService
	created *services.CreatePlayerInput
}

func (f *fakePlayerService) CreatePlayer(_ context.Context, input services.CreatePlayerInput) (*models.Player, error) {
	f.created = &input
	return &models.Player{ID: 1, Pseudo: input.Pseudo}, nil
}

func (f *fakePlayerService) GetPlayerByID(_ context.Context, id int) (*models.Player, error) {
	return nil, services.ErrPlayerNotFound
}

func newTestRouter(match services.MatchService, player services.PlayerService) http.Handler {
	r := chi.NewRouter()
	mh := NewMatchHandler(match)
	ph := NewPlayerHandler(player)
	gh := NewGameHandler(pairing.Pair)
	r.Put("/matches/{id}/score/{side}", mh.UpdateScore)
	r.Post("/players/", ph.CreatePlayer)
	r.Get("/players/{id}", ph.GetPlayer)
	r.Post("/games/organize_teams", gh.OrganizeTeams)
	return r
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestUpdateScoreRoute(t *testing.T) {
	matches := &fakeMatchService{}
	router := newTestRouter(matches, &fakePlayerService{})

	tests := []struct {
		name   string
		target string
		body   string
		want   int
	}{
		{"side one", "/matches/7/score/1", `{"score": 4}`, http.StatusOK},
		{"side two", "/matches/7/score/2", `{"score": 2}`, http.StatusOK},
		{"side three", "/matches/7/score/3", `{"score": 2}`, http.StatusBadRequest},
		{"side not a number", "/matches/7/score/left", `{"score": 2}`, http.StatusBadRequest},
		{"bad id", "/matches/abc/score/1", `{"score": 2}`, http.StatusBadRequest},
		{"missing match", "/matches/404/score/1", `{"score": 2}`, http.StatusNotFound},
		{"unknown field", "/matches/7/score/1", `{"score": 2, "team": 1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(router, http.MethodPut, tt.target, tt.body)
			if rec.Code != tt.want {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestUpdateScoreReturnsMatchEnvelope(t *testing.T) {
	router := newTestRouter(&fakeMatchService{}, &fakePlayerService{})

	rec := serve(router, http.MethodPut, "/matches/7/score/2", `{"score": 5}`)
	match, ok := decodeBody(t, rec)["match"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing match envelope: %s", rec.Body.String())
	}
	if match["score_team_two"] != float64(5) || match["score_team_one"] != float64(0) {
		t.Errorf("unexpected scores: %v", match)
	}
}

func TestCreatePlayerRejectsUnknownFields(t *testing.T) {
	players := &fakePlayerService{}
	router := newTestRouter(&fakeMatchService{}, players)

	rec := serve(router, http.MethodPost, "/players/", `{"pseudo": "neo", "level": 9}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if players.created != nil {
		t.Error("service must not be called for a rejected body")
	}

	rec = serve(router, http.MethodPost, "/players/", `{"pseudo": "neo"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201 (%s)", rec.Code, rec.Body.String())
	}
	if players.created == nil || players.created.Pseudo != "neo" {
		t.Errorf("service got %+v", players.created)
	}
}

func TestGetMissingPlayer(t *testing.T) {
	router := newTestRouter(&fakeMatchService{}, &fakePlayerService{})

	rec := serve(router, http.MethodGet, "/players/12", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestOrganizeTeams(t *testing.T) {
	router := newTestRouter(&fakeMatchService{}, &fakePlayerService{})

	rec := serve(router, http.MethodPost, "/games/organize_teams", `{"players": [1]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("single player: status = %d, want 400", rec.Code)
	}

	rec = serve(router, http.MethodPost, "/games/organize_teams", `{"players": [1, 2, 3], "randomize": false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", rec.Code, rec.Body.String())
	}
	teams, ok := decodeBody(t, rec)["teams"].([]interface{})
	if !ok || len(teams) != 2 {
		t.Fatalf("unexpected teams: %s", rec.Body.String())
	}
}

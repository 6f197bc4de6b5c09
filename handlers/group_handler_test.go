package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/playerz/playerz-api/services"
)

type fakeGroupService struct {
	services.GroupService
	members map[[2]int]bool
}

func (f *fakeGroupService) AddMember(_ context.Context, groupID int, input services.AddMemberInput) (bool, error) {
	key := [2]int{groupID, input.PlayerID}
	if f.members[key] {
		return false, nil
	}
	f.members[key] = true
	return true, nil
}

func TestAddMemberRespondsWithMembership(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/groupes/{id}/players", NewGroupHandler(&fakeGroupService{members: map[[2]int]bool{}}).AddMember)

	tests := []struct {
		name      string
		wantCode  int
		wantAdded bool
	}{
		{"first add", http.StatusCreated, true},
		{"repeated add", http.StatusOK, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(r, http.MethodPost, "/groupes/8/players", `{"player_id": 3}`)
			if rec.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			body := decodeBody(t, rec)
			if body["group_id"] != float64(8) || body["player_id"] != float64(3) || body["added"] != tt.wantAdded {
				t.Errorf("unexpected body %v", body)
			}
		})
	}
}

package tests

import (
	"net/http"
	"testing"

	"github.com/jdfgtrompete/explicacoes/core/schedule"
)

func TestAPI_sessionCreate(t *testing.T) {
	f := setup(t)
	usr := createUser(t, f, "joaquim", "joaquim@test.pt", "LordOfTheRings")
	token := getToken(t, usr)
	ana := createStudent(t, f, usr.ID, "Ana")

	t.Run("invalid payload", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{
				"kind": "this field is required",
				"participants": "this field is required",
				"starts_at": "this field is required",
				"duration_hours": "must be a positive multiple of half an hour"
			}`),
		}
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, []byte(`{}`))
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("quarter hour duration rejected", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"duration_hours": "must be a positive multiple of half an hour"}`),
		}
		body := []byte(`{
			"kind": "individual",
			"participants": ["` + ana.ID + `"],
			"starts_at": "2024-03-04T09:00:00Z",
			"duration_hours": 1.25
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, body)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("dialog create", func(t *testing.T) {
		body := []byte(`{
			"kind": "individual",
			"participants": ["` + ana.ID + `"],
			"starts_at": "2024-03-04T09:00:00Z",
			"duration_hours": 1.5,
			"notes": "algebra"
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, body)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
		var s schedule.Session
		marchallResp(t, rec, &s)
		if s.Kind != schedule.Individual {
			t.Errorf("failed! kind = %v; want %v", s.Kind, schedule.Individual)
		}
		if s.DurationHours != 1.5 {
			t.Errorf("failed! duration = %v; want 1.5", s.DurationHours)
		}
	})

	t.Run("grid create refuses a taken slot", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"starts_at": "a class already starts in this slot"}`),
		}
		body := []byte(`{
			"kind": "group",
			"participants": ["` + ana.ID + `"],
			"starts_at": "2024-03-04T09:00:00Z",
			"duration_hours": 1
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions?grid=true", token, body)
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})

	t.Run("dialog create books the same slot anyway", func(t *testing.T) {
		body := []byte(`{
			"kind": "group",
			"participants": ["` + ana.ID + `"],
			"starts_at": "2024-03-04T09:00:00Z",
			"duration_hours": 1
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, body)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Errorf("failed! code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})

	t.Run("grid create on a free slot", func(t *testing.T) {
		body := []byte(`{
			"kind": "individual",
			"participants": ["` + ana.ID + `"],
			"starts_at": "2024-03-04T11:00:00Z",
			"duration_hours": 1
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions?grid=true", token, body)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Errorf("failed! code = %v; want %v; body %s", rec.Code, http.StatusCreated, rec.Body.String())
		}
	})
}

func TestAPI_sessionQueryWeek(t *testing.T) {
	f := setup(t)
	usr := createUser(t, f, "joaquim", "joaquim@test.pt", "LordOfTheRings")
	token := getToken(t, usr)
	ana := createStudent(t, f, usr.ID, "Ana")

	// one class in the first week of march, one in the second
	for _, startsAt := range []string{"2024-03-04T09:00:00Z", "2024-03-11T09:00:00Z"} {
		body := []byte(`{
			"kind": "individual",
			"participants": ["` + ana.ID + `"],
			"starts_at": "` + startsAt + `",
			"duration_hours": 1
		}`)
		req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, body)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("fixture session failed: %s", rec.Body.String())
		}
	}

	tests := []struct {
		name string
		path string
		want int
	}{
		{"first week", "/v1/sessions?week=2024-03-06T00:00:00Z", 1},
		{"second week", "/v1/sessions?week=2024-03-11T23:00:00Z", 1},
		{"empty week", "/v1/sessions?week=2024-04-01T00:00:00Z", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodGet, tt.path, token)
			f.app.ServeHTTP(rec, req)
			if rec.Code != http.StatusOK {
				t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
			}
			var sessions []schedule.Session
			marchallResp(t, rec, &sessions)
			if len(sessions) != tt.want {
				t.Errorf("failed! got %d sessions; want %d", len(sessions), tt.want)
			}
		})
	}

	t.Run("bad week param", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/sessions?week=yesterday", token)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("failed! code = %v; want %v", rec.Code, http.StatusBadRequest)
		}
	})
}

func TestAPI_sessionDelete(t *testing.T) {
	f := setup(t)
	usr := createUser(t, f, "joaquim", "joaquim@test.pt", "LordOfTheRings")
	token := getToken(t, usr)
	ana := createStudent(t, f, usr.ID, "Ana")

	body := []byte(`{
		"kind": "individual",
		"participants": ["` + ana.ID + `"],
		"starts_at": "2024-03-04T09:00:00Z",
		"duration_hours": 1
	}`)
	req, rec := newAuthRequest(http.MethodPost, "/v1/sessions", token, body)
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("fixture session failed: %s", rec.Body.String())
	}
	var s schedule.Session
	marchallResp(t, rec, &s)

	t.Run("unknown id", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/sessions/nope", token)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("failed! code = %v; want %v", rec.Code, http.StatusNotFound)
		}
	})

	t.Run("delete", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodDelete, "/v1/sessions/"+s.ID, token)
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusNoContent, rec.Body.String())
		}
		if _, err := f.scheduleSvc.GetByID(req.Context(), s.ID); err != schedule.ErrNotFound {
			t.Errorf("failed! err = %v; want %v", err, schedule.ErrNotFound)
		}
	})
}

package tests

import (
	"context"
	"net/http"
	"testing"

	. "github.com/jdfgtrompete/explicacoes/apps/api/echo"
	"github.com/jdfgtrompete/explicacoes/core/user"
)

func createUser(t *testing.T, f fixture, uname, email, pwd string) user.User {
	t.Helper()
	usr, err := f.usrSvc.Create(context.Background(), user.NewUser{
		Name:            "Test Tutor",
		Username:        uname,
		Email:           email,
		Password:        pwd,
		PasswordConfirm: pwd,
	})
	if err != nil {
		t.Fatalf("createUser() failed: %v", err)
	}
	return usr
}

func TestAPI_userLogin(t *testing.T) {
	f := setup(t)
	usr := createUser(t, f, "joaquim", "joaquim@test.pt", "LordOfTheRings")

	deadUsr := createUser(t, f, "inactive", "inactive@test.pt", "LordOfTheRings")
	deadUsr.IsActive = false
	if _, err := f.usrSvc.Update(context.Background(), deadUsr.ID, user.UpdateUser{IsActive: &deadUsr.IsActive}); err != nil {
		t.Fatalf("deactivating user failed: %v", err)
	}

	tests := []httpTest{
		{
			name:     "empty credentials",
			body:     []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"username":"this field is required","password":"this field is required"}`),
		},
		{
			name:     "unknown username",
			body:     []byte(`{"username": "nobody", "password": "whatever"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "invalid credentials"}),
		},
		{
			name:     "wrong password",
			body:     []byte(`{"username": "joaquim", "password": "wrong"}`),
			wantCode: http.StatusBadRequest,
			wantData: marchallObj(t, httpErr{Error: "authentication failed"}),
		},
		{
			name:     "deactivated account",
			body:     []byte(`{"username": "inactive", "password": "LordOfTheRings"}`),
			wantCode: http.StatusForbidden,
			wantData: marchallObj(t, httpErr{Error: "account deactivated"}),
		},
		{
			name:     "login by email uppercased",
			body:     []byte(`{"username": "Joaquim@Test.PT", "password": "LordOfTheRings"}`),
			wantCode: http.StatusOK,
		},
		{
			name:     "login ok",
			body:     []byte(`{"username": "joaquim", "password": "LordOfTheRings"}`),
			wantCode: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/login", tt.body)
			f.app.ServeHTTP(rec, req)

			if tt.wantCode == http.StatusOK {
				if rec.Code != tt.wantCode {
					t.Fatalf("failed! code = %v; wantCode %v; body %s", rec.Code, tt.wantCode, rec.Body.String())
				}
				var resp struct {
					Token string `json:"token"`
				}
				marchallResp(t, rec, &resp)
				if resp.Token == "" {
					t.Errorf("failed! token should not be empty")
				}
				return
			}
			checkCodeAndData(t, tt, rec)
		})
	}

	// a fresh token must open an authed endpoint
	t.Run("token grants access", func(t *testing.T) {
		req, rec := newAuthRequest(http.MethodGet, "/v1/users/me", getToken(t, usr))
		f.app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		var me user.User
		marchallResp(t, rec, &me)
		if me.Username != usr.Username {
			t.Errorf("failed! username = %v; want %v", me.Username, usr.Username)
		}
	})

	t.Run("missing token rejected", func(t *testing.T) {
		tt := httpTest{
			wantCode: http.StatusUnauthorized,
			wantData: marchallObj(t, errMissingToken),
		}
		req, rec := newRequest(http.MethodGet, "/v1/users/me")
		f.app.ServeHTTP(rec, req)
		checkCodeAndData(t, tt, rec)
	})
}

func TestAPI_userPasswordReset(t *testing.T) {
	f := setup(t)
	createUser(t, f, "joaquim", "joaquim@test.pt", "LordOfTheRings")

	successMsg := "If the email address supplied is associated with an active account on this system, " +
		"an email will arrive in your inbox shortly with instructions to reset your password."

	tests := []httpTest{
		{
			name:     "invalid email",
			body:     []byte(`{"email": "not-an-email"}`),
			wantCode: http.StatusBadRequest,
			wantData: []byte(`{"email":"email must be a valid email address"}`),
		},
		{
			name:     "unknown email still succeeds",
			body:     []byte(`{"email": "stranger@test.pt"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Success: successMsg}),
		},
		{
			name:     "known email",
			body:     []byte(`{"email": "joaquim@test.pt"}`),
			wantCode: http.StatusOK,
			wantData: marchallObj(t, SuccessResponse{Success: successMsg}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newRequest(http.MethodPost, "/v1/users/password-reset", tt.body)
			f.app.ServeHTTP(rec, req)
			checkCodeAndData(t, tt, rec)
		})
	}
}

func TestAPI_userTokenRefresh(t *testing.T) {
	f := setup(t)
	usr := createUser(t, f, "joaquim", "joaquim@test.pt", "LordOfTheRings")

	req, rec := newAuthRequest(http.MethodPost, "/v1/users/token-refresh", getToken(t, usr))
	f.app.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("failed! code = %v; want %v; body %s", rec.Code, http.StatusOK, rec.Body.String())
	}
	var resp struct {
		Token string `json:"token"`
	}
	marchallResp(t, rec, &resp)
	if resp.Token == "" {
		t.Errorf("failed! refreshed token should not be empty")
	}
}

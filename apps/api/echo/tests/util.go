package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/jdfgtrompete/explicacoes/apps/api/echo"
	"github.com/jdfgtrompete/explicacoes/core/ledger"
	"github.com/jdfgtrompete/explicacoes/core/schedule"
	"github.com/jdfgtrompete/explicacoes/core/student"
	"github.com/jdfgtrompete/explicacoes/core/user"
	emailsvc "github.com/jdfgtrompete/explicacoes/services/email"
	inmemdb "github.com/jdfgtrompete/explicacoes/storage/database/inmem"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type fixture struct {
	app Server

	usrSvc      *user.Service
	studentSvc  *student.Service
	scheduleSvc *schedule.Service
	ledgerSvc   *ledger.Service
}

func setup(t *testing.T) fixture {
	t.Helper()

	// set up DB & repos
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed, %v", err)
	}
	usrRepo := inmemdb.NewUserRepository(db)
	studentRepo := inmemdb.NewStudentRepository(db)
	sessionRepo := inmemdb.NewSessionRepository(db)
	ledgerRepo := inmemdb.NewLedgerRepository(db)

	// set up services
	mailSvc := emailsvc.NewConsoleServiceMock()
	usrSvc := user.NewService(usrRepo, mailSvc)
	scheduleSvc := schedule.NewService(sessionRepo, nil)
	ledgerSvc := ledger.NewService(ledgerRepo, studentRepo, mailSvc, nil)
	studentSvc := student.NewService(studentRepo, scheduleSvc, ledgerSvc)

	// set up server
	app := NewServer(
		&Options{
			DisableReqLogs: true,
			Logger:         testLogger{t},
			UserSvc:        usrSvc,
			StudentSvc:     studentSvc,
			ScheduleSvc:    scheduleSvc,
			LedgerSvc:      ledgerSvc,
		},
	)
	return fixture{
		app:         app,
		usrSvc:      usrSvc,
		studentSvc:  studentSvc,
		scheduleSvc: scheduleSvc,
		ledgerSvc:   ledgerSvc,
	}
}

type testLogger struct {
	t *testing.T
}

func (l testLogger) Enable(bool)                            {}
func (l testLogger) Debug(msg string, args ...interface{})  { l.t.Logf("DEBUG: %s %v", msg, args) }
func (l testLogger) Info(msg string, args ...interface{})   { l.t.Logf("INFO: %s %v", msg, args) }
func (l testLogger) Warn(msg string, args ...interface{})   { l.t.Logf("WARN: %s %v", msg, args) }
func (l testLogger) Error(msg string, args ...interface{})  { l.t.Logf("ERROR: %s %v", msg, args) }
func (l testLogger) Fatal(msg string, args ...interface{})  { l.t.Fatalf("FATAL: %s %v", msg, args) }

type httpErr struct {
	Error string `json:"error"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	token    string
	wantCode int
	wantData []byte
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	return newAuthRequest(method, path, "", data...)
}

func getToken(t *testing.T, usr user.User) string {
	claims := GetUserClaims(usr)
	token, err := GenerateToken(claims)
	if err != nil {
		t.Fatalf("getToken() failed: %v", err)
	}
	return token
}

func marchallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marchallObj() failed: %v", err)
	}
	return data
}

func marchallList(t *testing.T, objs ...interface{}) []byte {
	data, err := json.Marshal(objs)
	if err != nil {
		t.Fatalf("marchallList() failed: %v", err)
	}
	return data
}

func marchallResp(t *testing.T, rec *httptest.ResponseRecorder, dest interface{}) {
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("marchallResp() failed: %v; body %s", err, rec.Body.String())
	}
}

func jsonBytesEqual(t *testing.T, b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	if reflect.DeepEqual(j1, j2) {
		return true, nil
	}
	if j1 == nil || j2 == nil {
		return false, nil
	}
	return assert.ElementsMatch(t, j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
	ok, err := jsonBytesEqual(t, rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

package services

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/bienestar/internal/client/client"
	"github.com/dmitrijs2005/bienestar/internal/client/migrations"
	"github.com/dmitrijs2005/bienestar/internal/client/models"
	"github.com/dmitrijs2005/bienestar/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bienestar/internal/client/session"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	goose.SetBaseFS(migrations.Migrations)
	require.NoError(t, goose.SetDialect("sqlite3"))
	require.NoError(t, goose.Up(db, "."))
	return db
}

func getMeta(t *testing.T, db *sql.DB, k string) []byte {
	t.Helper()
	v, err := metadata.NewSQLiteRepository(db).Get(context.Background(), k)
	require.NoError(t, err)
	return v
}

// fakeClient implements client.Client for AuthService tests.
type fakeClient struct {
	LoginErr    error
	LogoutErr   error
	UserInfoRet *models.UserInfo
	UserInfoErr error

	cookies []*http.Cookie

	LastLoginUser string
	LastLoginPass string
	LoginCalls    int
	LogoutCalls   int
	UserInfoCalls int
	Closed        bool
}

var _ client.Client = (*fakeClient)(nil)

func (f *fakeClient) Login(_ context.Context, username, password string) error {
	f.LoginCalls++
	f.LastLoginUser, f.LastLoginPass = username, password
	if f.LoginErr == nil {
		f.cookies = []*http.Cookie{{Name: "JSESSIONID", Value: "tok"}}
	}
	return f.LoginErr
}

func (f *fakeClient) Logout(context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) UserInfo(context.Context) (*models.UserInfo, error) {
	f.UserInfoCalls++
	return f.UserInfoRet, f.UserInfoErr
}

func (f *fakeClient) Clients() client.Resource[models.Client]           { return nil }
func (f *fakeClient) Services() client.Resource[models.Service]         { return nil }
func (f *fakeClient) Appointments() client.Resource[models.Appointment] { return nil }

func (f *fakeClient) AppointmentsByClient(context.Context, int64) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeClient) CreateInvoice(_ context.Context, i models.Invoice) (models.Invoice, error) {
	return i, nil
}

func (f *fakeClient) InvoicesByClient(context.Context, int64) ([]models.Invoice, error) {
	return nil, nil
}

func (f *fakeClient) SessionCookies() []*http.Cookie { return f.cookies }

func (f *fakeClient) RestoreSessionCookies(c []*http.Cookie) {
	live := c[:0:0]
	for _, ck := range c {
		if ck.MaxAge >= 0 {
			live = append(live, ck)
		}
	}
	f.cookies = live
}

func (f *fakeClient) Close() error {
	f.Closed = true
	return nil
}

func TestLogin_AdminRoleFromUserInfo(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{UserInfoRet: &models.UserInfo{Success: true, Username: "admin", Role: "ROLE_ADMIN"}}
	store := session.NewStore()
	svc := NewAuthService(fc, store, db, nil)

	res, err := svc.Login(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	assert.Equal(t, LoginResult{Username: "admin", Role: session.RoleAdmin, RoleResolved: true}, res)
	assert.Equal(t, "admin", fc.LastLoginUser)
	assert.Equal(t, "admin123", fc.LastLoginPass)
	assert.True(t, store.IsAdmin())
	assert.True(t, store.IsLoggedIn())

	assert.Equal(t, []byte("1"), getMeta(t, db, metadata.KeyAuthenticated))
	assert.Equal(t, "admin", string(getMeta(t, db, metadata.KeyUsername)))
	assert.JSONEq(t, `[{"name":"JSESSIONID","value":"tok"}]`, string(getMeta(t, db, metadata.KeyCookies)))
}

func TestLogin_UserInfoFailureFallsBackToUser(t *testing.T) {
	fc := &fakeClient{UserInfoErr: client.ErrUnavailable}
	store := session.NewStore()
	svc := NewAuthService(fc, store, nil, nil)

	res, err := svc.Login(context.Background(), "maria", "pw")
	require.NoError(t, err)

	assert.Equal(t, session.RoleUser, res.Role)
	assert.False(t, res.RoleResolved)
	assert.Equal(t, "maria", store.Username())
	assert.True(t, store.IsLoggedIn())
	assert.False(t, store.IsAdmin())
}

func TestLogin_UnsuccessfulUserInfoFallsBackToUser(t *testing.T) {
	fc := &fakeClient{UserInfoRet: &models.UserInfo{Success: false, Role: "ROLE_ADMIN"}}
	store := session.NewStore()

	res, err := NewAuthService(fc, store, nil, nil).Login(context.Background(), "x", "y")
	require.NoError(t, err)
	assert.Equal(t, session.RoleUser, res.Role)
	assert.False(t, store.IsAdmin())
}

func TestLogin_RejectedLeavesSessionUntouched(t *testing.T) {
	db := setupDB(t)
	rejected := &client.HTTPError{StatusCode: http.StatusUnauthorized, Status: "401 Unauthorized"}
	fc := &fakeClient{LoginErr: rejected}
	store := session.NewStore()

	_, err := NewAuthService(fc, store, db, nil).Login(context.Background(), "admin", "wrong")
	require.Error(t, err)

	var he *client.HTTPError
	assert.True(t, errors.As(err, &he))
	assert.Equal(t, 0, fc.UserInfoCalls)
	assert.Equal(t, session.Guest(), store.Snapshot())
	assert.Nil(t, getMeta(t, db, metadata.KeyAuthenticated))
}

func TestLogout_IgnoresNetworkFailure(t *testing.T) {
	db := setupDB(t)
	fc := &fakeClient{
		UserInfoRet: &models.UserInfo{Success: true, Username: "admin", Role: "ROLE_ADMIN"},
		LogoutErr:   client.ErrUnavailable,
	}
	store := session.NewStore()
	svc := NewAuthService(fc, store, db, nil)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	assert.Equal(t, 1, fc.LogoutCalls)
	assert.Equal(t, session.Guest(), store.Snapshot())
	assert.Empty(t, fc.cookies)
	assert.Nil(t, getMeta(t, db, metadata.KeyAuthenticated))
	assert.Nil(t, getMeta(t, db, metadata.KeyCookies))
}

func TestRestore_NoDatabase(t *testing.T) {
	fc := &fakeClient{}
	ok, err := NewAuthService(fc, session.NewStore(), nil, nil).Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, fc.UserInfoCalls)
}

func TestRestore_NoMarker(t *testing.T) {
	fc := &fakeClient{}
	store := session.NewStore()
	ok, err := NewAuthService(fc, store, setupDB(t), nil).Restore(context.Background())
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 0, fc.UserInfoCalls)
	assert.False(t, store.IsLoggedIn())
}

func TestRestore_RevalidatesWithServer(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	first := &fakeClient{UserInfoRet: &models.UserInfo{Success: true, Username: "cliente", Role: "ROLE_CLIENT"}}
	_, err := NewAuthService(first, session.NewStore(), db, nil).Login(ctx, "cliente", "cliente123")
	require.NoError(t, err)

	// A fresh process: new client and store over the same database.
	second := &fakeClient{UserInfoRet: &models.UserInfo{Success: true, Role: "ROLE_CLIENT"}}
	store := session.NewStore()
	ok, err := NewAuthService(second, store, db, nil).Restore(ctx)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, 1, second.UserInfoCalls)
	require.Len(t, second.cookies, 1)
	assert.Equal(t, "tok", second.cookies[0].Value)
	assert.Equal(t, "cliente", store.Username())
	assert.Equal(t, session.RoleUser, store.Role())
	assert.True(t, store.IsClient())
}

func TestRestore_RejectedForgetsMarker(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := NewAuthService(&fakeClient{UserInfoRet: &models.UserInfo{Success: true, Role: "ROLE_ADMIN"}},
		session.NewStore(), db, nil).Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	expired := &fakeClient{UserInfoErr: &client.HTTPError{StatusCode: http.StatusUnauthorized}}
	store := session.NewStore()
	ok, err := NewAuthService(expired, store, db, nil).Restore(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, store.IsLoggedIn())
	assert.Nil(t, getMeta(t, db, metadata.KeyAuthenticated))
}

func TestRestore_UnavailableKeepsMarker(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	_, err := NewAuthService(&fakeClient{UserInfoRet: &models.UserInfo{Success: true, Role: "ROLE_ADMIN"}},
		session.NewStore(), db, nil).Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	offline := &fakeClient{UserInfoErr: client.ErrUnavailable}
	ok, err := NewAuthService(offline, session.NewStore(), db, nil).Restore(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)
	assert.False(t, ok)
	assert.Equal(t, []byte("1"), getMeta(t, db, metadata.KeyAuthenticated))
}

func TestClose(t *testing.T) {
	fc := &fakeClient{}
	require.NoError(t, NewAuthService(fc, session.NewStore(), nil, nil).Close(context.Background()))
	assert.True(t, fc.Closed)
}

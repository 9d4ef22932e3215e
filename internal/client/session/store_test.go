package session

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/accountcli/internal/client/api"
	"github.com/dmitrijs2005/accountcli/internal/client/models"
	"github.com/dmitrijs2005/accountcli/internal/client/storage"
	"github.com/dmitrijs2005/accountcli/internal/logging"

	_ "modernc.org/sqlite"
)

// ---- helpers ----

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func setupTokens(t *testing.T, name string) *storage.Store {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+name+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv_store (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return storage.NewStore(db)
}

// ---- fake client ----

// fakeClient implements api.Client for unit-testing the session store.
// Result fields drive the default behavior; the optional hook funcs take
// precedence when set.
type fakeClient struct {
	RegisterResp *models.AuthResponse
	RegisterErr  error
	RegisterFn   func(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error)

	LoginResp *models.AuthResponse
	LoginErr  error

	ProfileResp *models.User
	ProfileErr  error
	ProfileFn   func(ctx context.Context) (*models.User, error)

	UpdateResp *models.User
	UpdateErr  error

	LogoutErr error

	LastRegister models.RegisterData
	LastLogin    models.LoginData
	LastUpdate   models.UpdateProfileData
	LogoutCalls  int
}

func (f *fakeClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	f.LastRegister = data
	if f.RegisterFn != nil {
		return f.RegisterFn(ctx, data)
	}
	return f.RegisterResp, f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, credentials models.LoginData) (*models.AuthResponse, error) {
	f.LastLogin = credentials
	return f.LoginResp, f.LoginErr
}

func (f *fakeClient) GetProfile(ctx context.Context) (*models.User, error) {
	if f.ProfileFn != nil {
		return f.ProfileFn(ctx)
	}
	return f.ProfileResp, f.ProfileErr
}

func (f *fakeClient) UpdateProfile(ctx context.Context, data models.UpdateProfileData) (*models.User, error) {
	f.LastUpdate = data
	return f.UpdateResp, f.UpdateErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

// ---- TESTS ----

func TestNewStore_StartsBootstrapping(t *testing.T) {
	s := NewStore(&fakeClient{}, setupTokens(t, "sess_new"), testLogger())
	require.Equal(t, StatusBootstrapping, s.Status())
	require.Nil(t, s.User())
}

func TestBootstrap_NoToken_Unauthenticated(t *testing.T) {
	s := NewStore(&fakeClient{}, setupTokens(t, "sess_notoken"), testLogger())

	s.Bootstrap(context.Background())

	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Nil(t, s.User())
}

func TestBootstrap_StoredTokenAndFetchSucceeds_Authenticated(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_boot_ok")
	require.NoError(t, tokens.SaveToken(ctx, "t0"))

	u := &models.User{Name: "A", Email: "a@b.com"}
	s := NewStore(&fakeClient{ProfileResp: u}, tokens, testLogger())

	s.Bootstrap(ctx)

	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, u, s.User())
}

func TestBootstrap_FetchFails_UnauthenticatedButTokenKept(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_boot_fail")
	require.NoError(t, tokens.SaveToken(ctx, "t0"))

	s := NewStore(&fakeClient{ProfileErr: &api.Error{Message: "Server error (500)", Status: 500}}, tokens, testLogger())

	s.Bootstrap(ctx)

	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Nil(t, s.User())

	// Stored token is treated as possibly stale but not cleared.
	token, err := tokens.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "t0", token)
}

func TestLogin_Success(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_login_ok")

	u := models.User{Name: "A", Email: "a@b.com"}
	fc := &fakeClient{
		LoginResp:   &models.AuthResponse{Token: "t1", User: u},
		ProfileResp: &u,
	}
	s := NewStore(fc, tokens, testLogger())

	err := s.Login(ctx, models.LoginData{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "a@b.com", s.User().Email)
	require.Empty(t, s.LastError())

	token, err := tokens.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "t1", token)
}

func TestLogin_Failure_SetsErrorAndPropagates(t *testing.T) {
	tokens := setupTokens(t, "sess_login_fail")
	fc := &fakeClient{LoginErr: &api.Error{Status: 401, Message: "invalid credentials"}}
	s := NewStore(fc, tokens, testLogger())

	err := s.Login(context.Background(), models.LoginData{Email: "a@b.com", Password: "bad"})
	require.EqualError(t, err, "invalid credentials")

	require.Equal(t, StatusError, s.Status())
	require.Equal(t, "invalid credentials", s.LastError())
	require.Nil(t, s.User())
}

func TestRegister_Success(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_reg_ok")

	u := models.User{Name: "A", Email: "a@b.com"}
	fc := &fakeClient{
		RegisterResp: &models.AuthResponse{Token: "t1", User: u},
		ProfileResp:  &u,
	}
	s := NewStore(fc, tokens, testLogger())

	err := s.Register(ctx, models.RegisterData{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "a@b.com", s.User().Email)

	token, err := tokens.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "t1", token)
}

func TestRegister_Failure_SetsErrorAndPropagates(t *testing.T) {
	tokens := setupTokens(t, "sess_reg_fail")
	fc := &fakeClient{RegisterErr: &api.Error{Status: 400, Message: "email already taken"}}
	s := NewStore(fc, tokens, testLogger())

	err := s.Register(context.Background(), models.RegisterData{Name: "A", Email: "a@b.com", Password: "x"})
	require.EqualError(t, err, "email already taken")
	require.Equal(t, StatusError, s.Status())
	require.Equal(t, "email already taken", s.LastError())
}

func TestRegister_Superseded_IsSilentNoOp(t *testing.T) {
	tokens := setupTokens(t, "sess_reg_superseded")
	fc := &fakeClient{RegisterErr: api.ErrSuperseded}
	s := NewStore(fc, tokens, testLogger())

	err := s.Register(context.Background(), models.RegisterData{Name: "A", Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	require.Nil(t, s.User())
	require.Empty(t, s.LastError())
}

func TestRegister_OnlyNewestCallWins(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_reg_race")

	userB := models.User{Name: "B", Email: "b@b.com"}
	firstStarted := make(chan struct{})
	release := make(chan struct{})

	fc := &fakeClient{ProfileResp: &userB}
	first := true
	fc.RegisterFn = func(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
		if first {
			first = false
			close(firstStarted)
			<-release
			// The HTTP layer resolves a superseded register with this
			// sentinel; the store must discard it silently.
			return nil, api.ErrSuperseded
		}
		return &models.AuthResponse{Token: "t2", User: userB}, nil
	}

	s := NewStore(fc, tokens, testLogger())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Register(ctx, models.RegisterData{Name: "A", Email: "a@b.com", Password: "x"})
	}()
	<-firstStarted

	require.NoError(t, s.Register(ctx, models.RegisterData{Name: "B", Email: "b@b.com", Password: "y"}))

	close(release)
	select {
	case err := <-firstDone:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("superseded register did not resolve")
	}

	// Final state reflects only B's outcome.
	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "b@b.com", s.User().Email)
	require.Empty(t, s.LastError())

	token, err := tokens.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "t2", token)
}

func TestRegister_StaleSuccessDoesNotClobberNewerState(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_reg_stale")

	userA := models.User{Name: "A", Email: "a@b.com"}
	userB := models.User{Name: "B", Email: "b@b.com"}

	firstFetching := make(chan struct{})
	release := make(chan struct{})

	fc := &fakeClient{}
	registerCalls := 0
	fc.RegisterFn = func(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
		registerCalls++
		if registerCalls == 1 {
			return &models.AuthResponse{Token: "tA", User: userA}, nil
		}
		return &models.AuthResponse{Token: "tB", User: userB}, nil
	}
	profileCalls := 0
	fc.ProfileFn = func(ctx context.Context) (*models.User, error) {
		profileCalls++
		if profileCalls == 1 {
			// First register made it past signup; hold its profile fetch
			// until the second register has fully committed.
			close(firstFetching)
			<-release
			return &userA, nil
		}
		return &userB, nil
	}

	s := NewStore(fc, tokens, testLogger())

	firstDone := make(chan error, 1)
	go func() {
		firstDone <- s.Register(ctx, models.RegisterData{Name: "A", Email: "a@b.com", Password: "x"})
	}()
	<-firstFetching

	require.NoError(t, s.Register(ctx, models.RegisterData{Name: "B", Email: "b@b.com", Password: "y"}))
	close(release)
	require.NoError(t, <-firstDone)

	require.Equal(t, "b@b.com", s.User().Email)
	require.Equal(t, StatusAuthenticated, s.Status())
}

func TestLogout_AlwaysEffectiveLocally(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_logout")
	require.NoError(t, tokens.SaveToken(ctx, "t1"))

	u := models.User{Name: "A", Email: "a@b.com"}
	fc := &fakeClient{ProfileResp: &u, LogoutErr: errors.New("network down")}
	s := NewStore(fc, tokens, testLogger())
	s.Bootstrap(ctx)
	require.Equal(t, StatusAuthenticated, s.Status())

	s.Logout(ctx)

	require.Equal(t, StatusUnauthenticated, s.Status())
	require.Nil(t, s.User())
	require.Equal(t, 1, fc.LogoutCalls)

	token, err := tokens.Token(ctx)
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestUpdateUserProfile_RefetchesCanonicalUser(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_update_ok")

	updated := models.User{Name: "A", Email: "a@b.com", Phone: "555"}
	fc := &fakeClient{UpdateResp: &updated, ProfileResp: &updated}
	s := NewStore(fc, tokens, testLogger())

	phone := "555"
	err := s.UpdateUserProfile(ctx, models.UpdateProfileData{Phone: &phone})
	require.NoError(t, err)

	require.Equal(t, "555", s.User().Phone)
	require.Equal(t, StatusAuthenticated, s.Status())
	require.NotNil(t, fc.LastUpdate.Phone)
	require.Equal(t, "555", *fc.LastUpdate.Phone)
}

func TestUpdateUserProfile_Failure_SetsLastErrorAndPropagates(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_update_fail")
	require.NoError(t, tokens.SaveToken(ctx, "t1"))

	u := models.User{Name: "A", Email: "a@b.com"}
	fc := &fakeClient{ProfileResp: &u, UpdateErr: &api.Error{Status: 400, Message: "invalid phone"}}
	s := NewStore(fc, tokens, testLogger())
	s.Bootstrap(ctx)

	phone := "bad"
	err := s.UpdateUserProfile(ctx, models.UpdateProfileData{Phone: &phone})
	require.EqualError(t, err, "invalid phone")

	require.Equal(t, "invalid phone", s.LastError())
	// The session itself is untouched by a failed update.
	require.Equal(t, StatusAuthenticated, s.Status())
	require.Equal(t, "a@b.com", s.User().Email)
}

func TestOnUserChange_RunsAfterCommit(t *testing.T) {
	ctx := context.Background()
	tokens := setupTokens(t, "sess_notify")

	u := models.User{Name: "A", Email: "a@b.com"}
	fc := &fakeClient{
		LoginResp:   &models.AuthResponse{Token: "t1", User: u},
		ProfileResp: &u,
	}
	s := NewStore(fc, tokens, testLogger())

	var seen []*models.User
	s.OnUserChange(func(user *models.User) {
		// The store state must already be committed when callbacks run.
		require.Equal(t, user, s.User())
		seen = append(seen, user)
	})

	require.NoError(t, s.Login(ctx, models.LoginData{Email: "a@b.com", Password: "x"}))
	s.Logout(ctx)

	require.Len(t, seen, 2)
	require.Equal(t, "a@b.com", seen[0].Email)
	require.Nil(t, seen[1])
}

package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/dmitrijs2005/cyberdefense/internal/client/models"
	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/cyberdefense/internal/client/repositories/kv"
	"github.com/dmitrijs2005/cyberdefense/internal/client/validation"
	"github.com/dmitrijs2005/cyberdefense/internal/common"
	"github.com/dmitrijs2005/cyberdefense/internal/cryptox"
	"github.com/dmitrijs2005/cyberdefense/internal/logging"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---- helpers ----

// countingStore records how many calls reach the wrapped store.
type countingStore struct {
	kv.Store
	calls atomic.Int64
	err   error
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", false, s.err
	}
	return s.Store.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.calls.Add(1)
	if s.err != nil {
		return s.err
	}
	return s.Store.Set(ctx, key, value)
}

func (s *countingStore) CompareAndSwap(ctx context.Context, key string, old *string, value string) (bool, error) {
	s.calls.Add(1)
	if s.err != nil {
		return false, s.err
	}
	return s.Store.CompareAndSwap(ctx, key, old, value)
}

var fixedNow = time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)

type fixture struct {
	store *countingStore
	repo  *accounts.Repository
	svc   AccountService
}

func newFixture(t *testing.T, hasher cryptox.Hasher) *fixture {
	t.Helper()
	store := &countingStore{Store: kv.NewMemoryStore()}
	t.Cleanup(func() { _ = store.Close() })

	repo := accounts.NewRepository(store)
	var seq atomic.Int64
	svc := NewAccountService(repo, hasher, logging.Nop(), 2*time.Second,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func() (string, error) {
			return fmt.Sprintf("acc-%d", seq.Add(1)), nil
		}),
	)
	return &fixture{store: store, repo: repo, svc: svc}
}

func janeDraft() models.RegisterDraft {
	return models.RegisterDraft{
		FullName:        "Jane Doe",
		Email:           "jane@x.com",
		Password:        "Passw0rd",
		ConfirmPassword: "Passw0rd",
		Role:            "administrator",
		Organization:    "Acme",
	}
}

func listAccounts(t *testing.T, f *fixture) []models.Account {
	t.Helper()
	list, err := f.repo.List(context.Background())
	require.NoError(t, err)
	return list
}

// ---- Register ----

func TestRegister_Success_StoresTrimmedFields(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	d := janeDraft()
	d.FullName = "  Jane Doe  "
	d.Organization = "\tAcme "

	res, err := f.svc.Register(context.Background(), d)
	require.NoError(t, err)
	assert.Equal(t, "Account created successfully! You can now sign in.", res.Message)
	assert.Equal(t, ViewLogin, res.Next)
	assert.Equal(t, 2*time.Second, res.Delay)

	want := []models.Account{{
		ID:           "acc-1",
		FullName:     "Jane Doe",
		Email:        "jane@x.com",
		Organization: "Acme",
		Password:     "Passw0rd",
		Role:         models.RoleAdministrator,
		CreatedAt:    fixedNow,
		IsActive:     true,
	}}
	if diff := cmp.Diff(want, listAccounts(t, f)); diff != "" {
		t.Fatalf("accounts mismatch (-want +got):\n%s", diff)
	}
}

func TestRegister_Argon2_StoresVerifiableHash(t *testing.T) {
	h := cryptox.NewArgon2(cryptox.Argon2Params{Time: 1, Memory: 8 * 1024, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	f := newFixture(t, h)

	_, err := f.svc.Register(context.Background(), janeDraft())
	require.NoError(t, err)

	list := listAccounts(t, f)
	require.Len(t, list, 1)
	assert.NotEqual(t, "Passw0rd", list[0].Password)
	assert.True(t, h.Verify("Passw0rd", list[0].Password))

	_, s, err := f.svc.Login(context.Background(), models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", s.ID)
}

func TestRegister_GrowsByOne(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)

	d := janeDraft()
	d.Email = "john@x.com"
	_, err = f.svc.Register(ctx, d)
	require.NoError(t, err)

	list := listAccounts(t, f)
	require.Len(t, list, 2)
	assert.Equal(t, "jane@x.com", list[0].Email)
	assert.Equal(t, "john@x.com", list[1].Email)
	assert.NotEqual(t, list[0].ID, list[1].ID)
}

func TestRegister_Duplicate_LeavesCollectionUnchanged(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)
	before := listAccounts(t, f)

	d := janeDraft()
	d.FullName = "Someone Else"
	res, err := f.svc.Register(ctx, d)
	require.ErrorIs(t, err, common.ErrAccountExists)
	assert.Nil(t, res)

	if diff := cmp.Diff(before, listAccounts(t, f)); diff != "" {
		t.Fatalf("collection changed (-before +after):\n%s", diff)
	}
}

func TestRegister_EmailComparisonIsCaseSensitive(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)

	d := janeDraft()
	d.Email = "Jane@x.com"
	_, err = f.svc.Register(ctx, d)
	require.NoError(t, err)
	assert.Len(t, listAccounts(t, f), 2)
}

func TestRegister_MalformedEmail_NoStoreAccess(t *testing.T) {
	for _, email := range []string{"abc", "a@b", "@b.com", "a b@c.d", ""} {
		t.Run(email, func(t *testing.T) {
			f := newFixture(t, cryptox.Plain{})
			d := janeDraft()
			d.Email = email

			_, err := f.svc.Register(context.Background(), d)
			require.ErrorIs(t, err, common.ErrValidation)

			var fe validation.Errors
			require.True(t, errors.As(err, &fe))
			assert.Contains(t, fe, validation.FieldEmail)
			assert.Zero(t, f.store.calls.Load())
		})
	}
}

func TestRegister_ReportsAllFieldErrors(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})

	_, err := f.svc.Register(context.Background(), models.RegisterDraft{Password: "abcdefgh", ConfirmPassword: "x"})
	var fe validation.Errors
	require.True(t, errors.As(err, &fe))

	assert.Equal(t, validation.Errors{
		validation.FieldFullName:        "Full name is required",
		validation.FieldEmail:           "Email is required",
		validation.FieldPassword:        "Password must contain at least one uppercase letter, one lowercase letter, and one number",
		validation.FieldConfirmPassword: "Passwords do not match",
		validation.FieldRole:            "Please select your role",
		validation.FieldOrganization:    "Organization name is required",
	}, fe)
	assert.Zero(t, f.store.calls.Load())
}

func TestRegister_StoreFailure(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	f.store.err = errors.New("disk on fire")

	_, err := f.svc.Register(context.Background(), janeDraft())
	require.ErrorIs(t, err, common.ErrStoreAccess)
}

func TestRegister_MalformedCollection(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	require.NoError(t, f.store.Store.Set(context.Background(), common.UsersKey, "{not json"))

	_, err := f.svc.Register(context.Background(), janeDraft())
	require.ErrorIs(t, err, common.ErrStoreAccess)

	raw, _, err := f.store.Store.Get(context.Background(), common.UsersKey)
	require.NoError(t, err)
	assert.Equal(t, "{not json", raw)
}

func TestRegister_IDGeneratorError(t *testing.T) {
	store := kv.NewMemoryStore()
	svc := NewAccountService(accounts.NewRepository(store), cryptox.Plain{}, logging.Nop(), 0,
		WithIDGenerator(func() (string, error) { return "", errors.New("entropy exhausted") }))

	_, err := svc.Register(context.Background(), janeDraft())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "generate account id")

	_, ok, _ := store.Get(context.Background(), common.UsersKey)
	assert.False(t, ok)
}

func TestRegister_DefaultIDsAreUUIDv7(t *testing.T) {
	store := kv.NewMemoryStore()
	repo := accounts.NewRepository(store)
	svc := NewAccountService(repo, cryptox.Plain{}, logging.Nop(), 0)

	_, err := svc.Register(context.Background(), janeDraft())
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].ID, 36)
	assert.Equal(t, byte('7'), list[0].ID[14])
}

func TestRegister_ConcurrentDuplicates_ExactlyOneWins(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	const n = 8

	var (
		wg     sync.WaitGroup
		ok     atomic.Int64
		exists atomic.Int64
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.Register(context.Background(), janeDraft())
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, common.ErrAccountExists):
				exists.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, ok.Load())
	assert.EqualValues(t, n-1, exists.Load())
	assert.Len(t, listAccounts(t, f), 1)
}

// ---- Login ----

func TestLogin_Success_PersistsSession(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()
	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)

	res, s, err := f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "Login successful! Redirecting to dashboard...", res.Message)
	assert.Equal(t, ViewDashboard, res.Next)

	want := &models.Session{
		ID:        "acc-1",
		Email:     "jane@x.com",
		FullName:  "Jane Doe",
		Role:      models.RoleAdministrator,
		LoginTime: fixedNow,
	}
	assert.Equal(t, want, s)

	got, err := f.svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLogin_GenericCredentialError(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()
	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)

	_, _, wrongPassword := f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "wrong"})
	_, _, unknownEmail := f.svc.Login(ctx, models.LoginDraft{Email: "nobody@x.com", Password: "Passw0rd"})
	_, _, wrongCase := f.svc.Login(ctx, models.LoginDraft{Email: "JANE@x.com", Password: "Passw0rd"})

	for _, err := range []error{wrongPassword, unknownEmail, wrongCase} {
		require.ErrorIs(t, err, common.ErrInvalidCredentials)
	}
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	_, err = f.svc.CurrentSession(ctx)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLogin_InactiveAccountNeverMatches(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()
	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)

	require.NoError(t, f.repo.Update(ctx, func(list []models.Account) ([]models.Account, error) {
		list[0].IsActive = false
		return list, nil
	}))

	_, _, err = f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)
}

func TestLogin_ValidationBeforeStore(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})

	_, _, err := f.svc.Login(context.Background(), models.LoginDraft{Email: "abc"})
	require.ErrorIs(t, err, common.ErrValidation)

	var fe validation.Errors
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, validation.Errors{
		validation.FieldEmail:    "Please enter a valid email address",
		validation.FieldPassword: "Password is required",
	}, fe)
	assert.Zero(t, f.store.calls.Load())
}

func TestLogin_StoreFailure(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	f.store.err = errors.New("connection reset")

	_, _, err := f.svc.Login(context.Background(), models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.ErrorIs(t, err, common.ErrStoreAccess)
}

func TestLogin_OverwritesPriorSession(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()
	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)
	d := janeDraft()
	d.Email = "john@x.com"
	d.FullName = "John Roe"
	_, err = f.svc.Register(ctx, d)
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	_, _, err = f.svc.Login(ctx, models.LoginDraft{Email: "john@x.com", Password: "Passw0rd"})
	require.NoError(t, err)

	s, err := f.svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, "acc-2", s.ID)
	assert.Equal(t, "John Roe", s.FullName)
}

// ---- Logout ----

func TestLogout_Idempotent(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()
	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)
	_, _, err = f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.NoError(t, err)

	require.NoError(t, f.svc.Logout(ctx))
	require.NoError(t, f.svc.Logout(ctx))

	_, err = f.svc.CurrentSession(ctx)
	require.ErrorIs(t, err, common.ErrorNotFound)
}

// ---- scenario ----

func TestScenario_JaneDoe(t *testing.T) {
	f := newFixture(t, cryptox.Plain{})
	ctx := context.Background()

	_, err := f.svc.Register(ctx, janeDraft())
	require.NoError(t, err)
	assert.Len(t, listAccounts(t, f), 1)

	_, s, err := f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "Passw0rd"})
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", s.Email)
	before, err := f.svc.CurrentSession(ctx)
	require.NoError(t, err)

	_, _, err = f.svc.Login(ctx, models.LoginDraft{Email: "jane@x.com", Password: "wrong"})
	require.ErrorIs(t, err, common.ErrInvalidCredentials)

	after, err := f.svc.CurrentSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

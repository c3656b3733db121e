package admin

import (
	"Storybrush-Backend/domain"
	"Storybrush-Backend/entities"
	"Storybrush-Backend/pkg/filedb"
	"Storybrush-Backend/pkg/sheets"
	"Storybrush-Backend/pkg/syncer"
	"Storybrush-Backend/pkg/user"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRemote struct {
	down     bool
	users    map[string]*sheets.RemoteUser
	deleted  []string
	created  []string
	adjusted []string
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{users: map[string]*sheets.RemoteUser{}}
}

func (f *fakeRemote) GetUsers(ctx context.Context) ([]*sheets.RemoteUser, error) {
	if f.down {
		return nil, domain.ErrRemoteStoreUnavailable
	}
	users := make([]*sheets.RemoteUser, 0, len(f.users))
	for _, u := range f.users {
		users = append(users, u)
	}
	return users, nil
}

func (f *fakeRemote) CreateUser(ctx context.Context, u *sheets.RemoteUser) error {
	if f.down {
		return domain.ErrRemoteStoreUnavailable
	}
	f.users[u.Email] = u
	f.created = append(f.created, u.Email)
	return nil
}

func (f *fakeRemote) DeleteUser(ctx context.Context, email string) error {
	if f.down {
		return domain.ErrRemoteStoreUnavailable
	}
	delete(f.users, email)
	f.deleted = append(f.deleted, email)
	return nil
}

func (f *fakeRemote) DeductCredits(ctx context.Context, email string, amount int) (int, error) {
	u, ok := f.users[email]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Credits -= amount
	f.adjusted = append(f.adjusted, email)
	return u.Credits, nil
}

func (f *fakeRemote) AddCredits(ctx context.Context, email string, amount int) (int, error) {
	u, ok := f.users[email]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Credits += amount
	f.adjusted = append(f.adjusted, email)
	return u.Credits, nil
}

func newAdminFixture(t *testing.T) (AdminService, user.UserRepository, *fakeRemote) {
	t.Helper()
	store, err := filedb.Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	repo := user.NewUserRepository(store)
	remote := newFakeRemote()
	sync := syncer.NewSyncer(repo, remote, time.Minute)
	return NewAdminService(repo, remote, sync), repo, remote
}

func seedLocal(t *testing.T, repo user.UserRepository, email string, credits int) *entities.User {
	t.Helper()
	now := time.Now()
	u := &entities.User{
		ID:      uuid.New(),
		Email:   email,
		Name:    "Local Name",
		Credits: credits,
		Status:  domain.UserStatusActive,
		Version: 1,
		Timestamp: entities.Timestamp{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	require.NoError(t, repo.CreateUser(context.Background(), u))
	return u
}

func TestGetUsersMergesWithRemotePrecedence(t *testing.T) {
	svc, repo, remote := newAdminFixture(t)
	seedLocal(t, repo, "both@example.com", 50)
	seedLocal(t, repo, "local@example.com", 10)
	remote.users["both@example.com"] = &sheets.RemoteUser{
		Email:   "both@example.com",
		Name:    "Remote Name",
		Credits: 40,
		Status:  domain.UserStatusActive,
	}
	remote.users["remote@example.com"] = &sheets.RemoteUser{
		Email:   "remote@example.com",
		Name:    "Only Remote",
		Credits: 5,
	}

	users, err := svc.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 3)

	byEmail := map[string]*domain.AdminUser{}
	for _, u := range users {
		byEmail[u.Email] = u
	}

	both := byEmail["both@example.com"]
	require.NotNil(t, both)
	assert.Equal(t, "both", both.Source)
	assert.Equal(t, 40, both.Credits)
	assert.Equal(t, "Remote Name", both.Name)

	assert.Equal(t, "local", byEmail["local@example.com"].Source)
	assert.Equal(t, "remote", byEmail["remote@example.com"].Source)

	// Sorted by email for a stable dashboard listing
	assert.Equal(t, "both@example.com", users[0].Email)
	assert.Equal(t, "local@example.com", users[1].Email)
	assert.Equal(t, "remote@example.com", users[2].Email)
}

func TestGetUsersDegradesToLocalWhenRemoteDown(t *testing.T) {
	svc, repo, remote := newAdminFixture(t)
	seedLocal(t, repo, "local@example.com", 10)
	remote.down = true

	users, err := svc.GetUsers(context.Background())
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "local", users[0].Source)
	assert.Equal(t, 10, users[0].Credits)
}

func TestExportUsersCSV(t *testing.T) {
	svc, repo, _ := newAdminFixture(t)
	seedLocal(t, repo, "local@example.com", 10)

	data, err := svc.ExportUsersCSV(context.Background())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "email,name,credits,status,tier,total_spent,source", lines[0])
	assert.Contains(t, lines[1], "local@example.com")
	assert.Contains(t, lines[1], "10")
}

func TestSyncStoresRunsReconciliation(t *testing.T) {
	svc, repo, remote := newAdminFixture(t)
	seedLocal(t, repo, "new@example.com", 25)

	report, err := svc.SyncStores(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, report.CreatedRemote)
	assert.Equal(t, []string{"new@example.com"}, remote.created)
}

func TestDeleteUserRemovesBothStores(t *testing.T) {
	svc, repo, remote := newAdminFixture(t)
	u := seedLocal(t, repo, "gone@example.com", 5)
	remote.users["gone@example.com"] = &sheets.RemoteUser{Email: "gone@example.com", Credits: 5}

	require.NoError(t, svc.DeleteUser(context.Background(), u.ID.String()))

	_, err := repo.GetUserByID(context.Background(), u.ID.String())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, []string{"gone@example.com"}, remote.deleted)
}

// The local row must be gone even if the remote delete fails; the
// reconciler never resurrects it because local is the source of truth.
func TestDeleteUserSucceedsWhenRemoteDown(t *testing.T) {
	svc, repo, remote := newAdminFixture(t)
	u := seedLocal(t, repo, "gone@example.com", 5)
	remote.down = true

	require.NoError(t, svc.DeleteUser(context.Background(), u.ID.String()))

	_, err := repo.GetUserByID(context.Background(), u.ID.String())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestDeleteUnknownUser(t *testing.T) {
	svc, _, _ := newAdminFixture(t)

	err := svc.DeleteUser(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)
}

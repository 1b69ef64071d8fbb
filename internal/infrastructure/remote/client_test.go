package remote_test

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Bash0121/FHU-social-club/internal/core/domain"
	"github.com/Bash0121/FHU-social-club/internal/core/ports"
	"github.com/Bash0121/FHU-social-club/internal/infrastructure/backendtest"
	"github.com/Bash0121/FHU-social-club/internal/infrastructure/remote"
)

const testProject = "proj_test"

func newTestClient(t *testing.T) (*remote.Client, *backendtest.Server) {
	t.Helper()
	srv := backendtest.New(testProject)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client := remote.NewClient(remote.Config{
		Endpoint:          ts.URL,
		ProjectID:         testProject,
		Platform:          "clubdir-test",
		DatabaseID:        "db_main",
		MembersCollection: "members",
		EventsCollection:  "events",
	}, zerolog.Nop())
	return client, srv
}

func adaInput() ports.RegisterInput {
	return ports.RegisterInput{
		Email:       "ada@example.com",
		Password:    "s3cret-pw",
		DisplayName: "Ada Lovelace",
		Club:        "oc",
		PhoneNumber: "555-0100",
	}
}

func TestClient_RegisterCreatesUserAndMember(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	user, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.Equal(t, "Ada Lovelace", user.Name)

	member, err := client.MemberByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "Ada", member.FirstName)
	assert.Equal(t, "Lovelace", member.LastName)
	assert.Equal(t, "oc", member.Club)
	assert.Equal(t, user.ID, member.MemberID)
}

func TestClient_RegisterSingleTokenName(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	in := adaInput()
	in.Email = "prince@example.com"
	in.DisplayName = "Prince"
	user, err := client.RegisterWithEmail(ctx, in)
	require.NoError(t, err)

	member, err := client.MemberByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, member)
	assert.Equal(t, "Prince", member.FirstName)
	assert.Empty(t, member.LastName)
}

func TestClient_RegisterDuplicateIdentity(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	_, err = client.RegisterWithEmail(ctx, adaInput())
	var re *domain.RegistrationError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.StageIdentity, re.Stage)
	assert.ErrorIs(t, err, domain.ErrUserExists)
}

func TestClient_RegisterRejectsInvalidInput(t *testing.T) {
	client, _ := newTestClient(t)

	in := adaInput()
	in.Password = "short"
	_, err := client.RegisterWithEmail(context.Background(), in)

	var re *domain.RegistrationError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, domain.StageIdentity, re.Stage)
}

func TestClient_LoginInvalidCredentials(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)
	client.Logout(ctx)

	_, err = client.LoginWithEmail(ctx, "ada@example.com", "wrong-password")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = client.LoginWithEmail(ctx, "ghost@example.com", "whatever1")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestClient_CurrentUserLifecycle(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	// No session yet: absent, not an error.
	user, err := client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user)

	registered, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	user, err = client.CurrentUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, registered.ID, user.ID)

	client.Logout(ctx)

	user, err = client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user, "logout must clear the local session")
}

func TestClient_CurrentUserExpiredTokenResolvesToAbsent(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	srv.TokenTTL = time.Second
	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	time.Sleep(1200 * time.Millisecond)

	user, err := client.CurrentUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, user, "an expired session is absence, not an error")
}

func TestClient_MemberByUserIDAbsent(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	member, err := client.MemberByUserID(ctx, "no-such-user")
	require.NoError(t, err)
	assert.Nil(t, member)
}

func TestClient_MemberByUserIDConflict(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	srv.Seed("members",
		map[string]any{"memberId": "dup", "firstName": "One"},
		map[string]any{"memberId": "dup", "firstName": "Two"},
	)

	_, err = client.MemberByUserID(ctx, "dup")
	assert.ErrorIs(t, err, domain.ErrMemberConflict)
}

func TestClient_EventsOrderedByDate(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	srv.Seed("events",
		map[string]any{"eventName": "Formal", "eventDate": "2024-03-01", "club": "oc"},
		map[string]any{"eventName": "Rush", "eventDate": "2024-01-15", "club": "oc"},
	)

	events, err := client.Events(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Rush", events[0].EventName)
	assert.Equal(t, "Formal", events[1].EventName)
}

func TestClient_EventsFetchFailureIsAnError(t *testing.T) {
	srv := backendtest.New(testProject)
	ts := httptest.NewServer(srv)
	client := remote.NewClient(remote.Config{
		Endpoint:          ts.URL,
		ProjectID:         testProject,
		Platform:          "clubdir-test",
		DatabaseID:        "db_main",
		MembersCollection: "members",
	}, zerolog.Nop())
	ts.Close()

	_, err := client.Events(context.Background())
	assert.Error(t, err, "a dead backend must not look like an empty event list")
}

func TestClient_UpdateMemberPartialFields(t *testing.T) {
	client, _ := newTestClient(t)
	ctx := context.Background()

	user, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)
	member, err := client.MemberByUserID(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, member)

	club := "xbx"
	show := true
	updated, err := client.UpdateMember(ctx, member.ID, domain.MemberPatch{Club: &club, ShowPhone: &show})
	require.NoError(t, err)

	assert.Equal(t, "xbx", updated.Club)
	assert.True(t, updated.ShowPhone)
	assert.Equal(t, "Ada", updated.FirstName, "unpatched fields stay intact")
	assert.Equal(t, "555-0100", updated.PhoneNumber)
}

func TestClient_MembersListsCollection(t *testing.T) {
	client, srv := newTestClient(t)
	ctx := context.Background()

	_, err := client.RegisterWithEmail(ctx, adaInput())
	require.NoError(t, err)

	srv.Seed("members", map[string]any{"memberId": "u2", "firstName": "Bob", "lastName": "Cole", "club": "pka"})

	members, err := client.Members(ctx)
	require.NoError(t, err)
	assert.Len(t, members, 2)
}

func TestClient_ProjectMismatchIsRejected(t *testing.T) {
	srv := backendtest.New(testProject)
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	client := remote.NewClient(remote.Config{
		Endpoint:          ts.URL,
		ProjectID:         "some-other-project",
		Platform:          "clubdir-test",
		DatabaseID:        "db_main",
		MembersCollection: "members",
	}, zerolog.Nop())

	_, err := client.LoginWithEmail(context.Background(), "ada@example.com", "s3cret-pw")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrInvalidCredentials), "a config error is not a credential error")
}

package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

func caption(s string) *string { return &s }

func TestHomeWithoutAlumniProfile(t *testing.T) {
	f := newFixture()

	f.store.mu.Lock()
	staff := f.store.addUser(&models.User{Username: "admin", IsStaff: true, IsActive: true})
	f.store.mu.Unlock()

	_, err := f.home.Home(context.Background(), staff)
	require.ErrorIs(t, err, apperrors.ErrResourceNotFound)
	assert.Equal(t, AlumniProfileNotFoundMessage, err.Error())
}

func TestHomeRequiresUser(t *testing.T) {
	f := newFixture()
	_, err := f.home.Home(context.Background(), nil)
	assert.ErrorIs(t, err, apperrors.ErrUnauthenticated)
}

func TestHomeAggregatesEverything(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	for i := 1; i <= 7; i++ {
		_, err := f.auth.Register(ctx, validRegistration(fmt.Sprintf("user%d", i)), nil)
		require.NoError(t, err)
	}

	start := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	f.store.events = []*models.Event{
		{ID: 1, Title: "Reunion", StartDate: start, EndDate: start.Add(time.Hour), Images: []*models.EventImage{
			{ID: 1, EventID: 1, Image: "/media/event_images/1.jpg", Caption: caption("Stage")},
			{ID: 2, EventID: 1, Image: "/media/event_images/2.jpg"},
			{ID: 3, EventID: 1, Image: "/media/event_images/3.jpg"},
		}},
		{ID: 2, Title: "Career Fair", StartDate: start, EndDate: start.Add(time.Hour)},
	}
	company := &models.Company{ID: 1, Name: "Acme"}
	f.store.internships = []*models.InternshipOpportunity{
		{ID: 1, Title: "Backend Intern", CompanyID: 1, Company: company},
	}

	caller, err := f.store.GetByUsername(ctx, "user2")
	require.NoError(t, err)

	home, err := f.home.Home(ctx, caller)
	require.NoError(t, err)

	assert.Equal(t, "user2", home.User.Username)
	assert.Equal(t, caller.ID, home.User.ID)

	require.Len(t, home.Events, 2)
	assert.Len(t, home.Events[0].Images, 3)
	assert.Empty(t, home.Events[1].Images)

	require.Len(t, home.Internships, 1)
	assert.Equal(t, "Acme", home.Internships[0].Company.Name)

	require.Len(t, home.NewUsers, NewestAlumniLimit)
	names := make([]string, 0, len(home.NewUsers))
	for _, a := range home.NewUsers {
		names = append(names, a.Username)
	}
	assert.Equal(t, []string{"user7", "user6", "user5", "user4", "user3"}, names)
}

func TestHomeWithFewAlumniAndNoContent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.auth.Register(ctx, validRegistration("solo"), nil)
	require.NoError(t, err)
	caller, err := f.store.GetByUsername(ctx, "solo")
	require.NoError(t, err)

	home, err := f.home.Home(ctx, caller)
	require.NoError(t, err)
	assert.Len(t, home.NewUsers, 1)
	assert.NotNil(t, home.Events)
	assert.Empty(t, home.Events)
	assert.NotNil(t, home.Internships)
}

func TestHomePropagatesStoreErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.auth.Register(ctx, validRegistration("kim"), nil)
	require.NoError(t, err)
	caller, err := f.store.GetByUsername(ctx, "kim")
	require.NoError(t, err)

	boom := errors.New("events table unavailable")
	f.store.failWith = boom

	_, err = f.home.Home(ctx, caller)
	assert.ErrorIs(t, err, boom)
}

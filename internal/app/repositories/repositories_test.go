package repositories

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/alumniportal/internal/app/models"
	"github.com/yigit/alumniportal/internal/pkg/apperrors"
)

func strPtr(s string) *string { return &s }

func TestAlumniCreateWithUserAndLookup(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	alumni := newTestAlumni("alice")
	require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, alumni))
	require.NotZero(t, alumni.UserID)
	assert.Equal(t, alumni.UserID, alumni.User.ID)

	got, err := repos.AlumniRepository.GetByUserID(ctx, alumni.UserID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.User.Username)
	assert.Equal(t, "Computer Science", got.Major)
	require.NotNil(t, got.ContactEmail)
	assert.Equal(t, "alice@example.com", *got.ContactEmail)

	user, err := repos.UserRepository.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, alumni.UserID, user.ID)

	exists, err := repos.UserRepository.UsernameExists(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestAlumniDuplicateUsernameLeavesNoPartialRows(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, newTestAlumni("bob")))

	err := repos.AlumniRepository.CreateWithUser(ctx, newTestAlumni("bob"))
	require.ErrorIs(t, err, apperrors.ErrResourceAlreadyExists)

	var users, alumni int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&users))
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM alumni`).Scan(&alumni))
	assert.Equal(t, 1, users)
	assert.Equal(t, 1, alumni)
}

func TestAlumniMissingProfile(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	staff := &models.User{Username: "admin", Password: "hash", IsStaff: true, IsActive: true}
	require.NoError(t, repos.UserRepository.Create(ctx, staff))

	_, err := repos.AlumniRepository.GetByUserID(ctx, staff.ID)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	_, err = repos.UserRepository.GetByUsername(ctx, "nobody")
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestAlumniGetNewest(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	for i := 1; i <= 7; i++ {
		require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, newTestAlumni(fmt.Sprintf("user%d", i))))
	}

	newest, err := repos.AlumniRepository.GetNewest(ctx, 5)
	require.NoError(t, err)
	require.Len(t, newest, 5)

	names := make([]string, 0, len(newest))
	for _, a := range newest {
		names = append(names, a.User.Username)
	}
	assert.Equal(t, []string{"user7", "user6", "user5", "user4", "user3"}, names)
}

func TestTokenGetOrCreateIsStable(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	alumni := newTestAlumni("carol")
	require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, alumni))

	first, err := repos.TokenRepository.GetOrCreate(ctx, alumni.UserID, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	require.NoError(t, err)
	second, err := repos.TokenRepository.GetOrCreate(ctx, alumni.UserID, "bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")
	require.NoError(t, err)
	assert.Equal(t, first.Key, second.Key)
	assert.Equal(t, "aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", second.Key)

	owner, err := repos.TokenRepository.GetUserByKey(ctx, first.Key)
	require.NoError(t, err)
	assert.Equal(t, "carol", owner.Username)

	_, err = repos.TokenRepository.GetUserByKey(ctx, "cccccccccccccccccccccccccccccccccccccccc")
	assert.ErrorIs(t, err, apperrors.ErrTokenNotFound)
}

func TestTokenGetOrCreateConcurrent(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	alumni := newTestAlumni("dave")
	require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, alumni))

	const workers = 20
	keys := make([]string, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			token, err := repos.TokenRepository.GetOrCreate(ctx, alumni.UserID, fmt.Sprintf("%040d", i))
			errs[i] = err
			if err == nil {
				keys[i] = token.Key
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, keys[0], keys[i])
	}

	var count int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM auth_tokens WHERE user_id = $1`, alumni.UserID).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestEventsWithImages(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	start := time.Date(2026, 5, 1, 18, 0, 0, 0, time.UTC)
	withImages := &models.Event{
		Title: "Reunion", Description: "Annual reunion", Location: "Main Hall",
		StartDate: start, EndDate: start.Add(3 * time.Hour),
		Images: []*models.EventImage{
			{Image: "/media/event_images/a.jpg", Caption: strPtr("Stage")},
			{Image: "/media/event_images/b.jpg"},
			{Image: "/media/event_images/c.jpg", Caption: strPtr("Crowd")},
		},
	}
	bare := &models.Event{
		Title: "Career Fair", Description: "Meet employers", Location: "Gym",
		StartDate: start, EndDate: start.Add(time.Hour),
	}
	require.NoError(t, repos.EventRepository.Create(ctx, withImages))
	require.NoError(t, repos.EventRepository.Create(ctx, bare))

	events, err := repos.EventRepository.ListWithImages(ctx)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "Reunion", events[0].Title)
	require.Len(t, events[0].Images, 3)
	assert.Equal(t, "/media/event_images/a.jpg", events[0].Images[0].Image)
	assert.Nil(t, events[0].Images[1].Caption)
	assert.Empty(t, events[1].Images)

	exists, err := repos.EventRepository.ExistsByTitle(ctx, "Reunion")
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, repos.EventRepository.Delete(ctx, withImages.ID))
	var images int
	require.NoError(t, pool.QueryRow(ctx, `SELECT COUNT(*) FROM event_images`).Scan(&images))
	assert.Zero(t, images)
}

func TestInternshipsAndCompanyCascade(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	company := &models.Company{Name: "Acme", Location: "Ankara", Industry: "Software", Website: "https://acme.example.com"}
	require.NoError(t, repos.CompanyRepository.Upsert(ctx, company))
	firstID := company.ID
	require.NoError(t, repos.CompanyRepository.Upsert(ctx, company))
	assert.Equal(t, firstID, company.ID)

	internship := &models.InternshipOpportunity{
		Title: "Backend Intern", Description: "Go services", Location: "Remote",
		CompanyID: company.ID, PostedDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ApplyLink: "https://acme.example.com/apply",
	}
	require.NoError(t, repos.InternshipRepository.Create(ctx, internship))

	list, err := repos.InternshipRepository.ListWithCompany(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Acme", list[0].Company.Name)
	assert.Nil(t, list[0].Requirements)

	alumni := newTestAlumni("erin")
	alumni.CurrentCompanyID = &company.ID
	require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, alumni))

	require.NoError(t, repos.CompanyRepository.Delete(ctx, company.ID))

	list, err = repos.InternshipRepository.ListWithCompany(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := repos.AlumniRepository.GetByUserID(ctx, alumni.UserID)
	require.NoError(t, err)
	assert.Nil(t, got.CurrentCompanyID)
}

func TestAchievementsFollowAlumnus(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	alumni := newTestAlumni("frank")
	require.NoError(t, repos.AlumniRepository.CreateWithUser(ctx, alumni))

	achievement := &models.AlumniAchievement{
		AlumnusID: alumni.UserID, Title: "Best Thesis", Description: "Awarded",
		Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, repos.AchievementRepository.Create(ctx, achievement))

	list, err := repos.AchievementRepository.ListByAlumnus(ctx, alumni.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Best Thesis", list[0].Title)

	_, err = pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, alumni.UserID)
	require.NoError(t, err)

	list, err = repos.AchievementRepository.ListByAlumnus(ctx, alumni.UserID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCreateWithMissingParentIsNotFound(t *testing.T) {
	pool := setupPostgres(t)
	ctx := context.Background()
	repos := NewRepositories(pool)

	internship := &models.InternshipOpportunity{
		Title: "Ghost Intern", Description: "No company", Location: "Remote",
		CompanyID: 9999, PostedDate: time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
		ApplyLink: "https://ghost.example.com/apply",
	}
	err := repos.InternshipRepository.Create(ctx, internship)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)

	achievement := &models.AlumniAchievement{
		AlumnusID: 9999, Title: "Orphan", Description: "No alumnus",
		Date: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	err = repos.AchievementRepository.Create(ctx, achievement)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}

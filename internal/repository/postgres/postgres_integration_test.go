package postgres

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"gradinvite/internal/domain"
	"gradinvite/internal/services"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupPostgres(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("integration test")
	}
	if err := testcontainers.SkipIfDockerNotAvailable(); err != nil {
		t.Skip("docker not available for testcontainers")
	}

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "gradinvite",
			"POSTGRES_PASSWORD": "gradinvite",
			"POSTGRES_DB":       "gradinvite",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)
	return fmt.Sprintf("postgres://gradinvite:gradinvite@%s:%s/gradinvite?sslmode=disable", host, port.Port())
}

func TestPostgres_Integration(t *testing.T) {
	url := setupPostgres(t)
	ctx := context.Background()

	db, err := Open(ctx, url)
	require.NoError(t, err)
	defer db.Close()

	m := NewMigrator(db)
	require.NoError(t, m.Up(ctx))
	require.NoError(t, m.Up(ctx), "second run must be a no-op")

	events := NewEventRepository(db)
	invitations := NewInvitationRepository(db)

	ts := time.Now().UTC().Truncate(time.Microsecond)
	ev := &domain.Event{
		ID:           "ev-int",
		Name:         "Pham Thi D",
		Degree:       "Master of Arts",
		Department:   "History",
		GraduationAt: ts.Add(48 * time.Hour),
		Venue:        domain.Venue{Name: "Hall A", Address: "2 Campus Rd"},
		Contact:      domain.Contact{Email: "d@example.com", Phone: "0911111111"},
		PhotoURLs:    []string{"https://cdn.example.com/d.jpg"},
		CreatedAt:    ts,
		UpdatedAt:    ts,
	}
	require.NoError(t, events.Create(ctx, ev))

	got, err := events.GetByID(ctx, "ev-int")
	require.NoError(t, err)
	require.Equal(t, ev.PhotoURLs, got.PhotoURLs)
	require.Nil(t, got.Venue.Parking)

	parking := "Basement"
	got.Venue.Parking = &parking
	require.NoError(t, events.Update(ctx, got))
	got, err = events.GetByID(ctx, "ev-int")
	require.NoError(t, err)
	require.Equal(t, "Basement", *got.Venue.Parking)

	inv := &domain.Invitation{Code: "000000", EventID: "ev-int", GuestName: "Guest", CreatedAt: ts}
	require.NoError(t, invitations.Create(ctx, inv))
	require.ErrorIs(t, invitations.Create(ctx, inv), domain.ErrDuplicateCode)

	t.Run("concurrent batches never share a code", func(t *testing.T) {
		svc := services.NewInvitationService(invitations, events, nil,
			services.NewDigitCodeGenerator(2), services.DefaultMaxCodeAttempts, 30*time.Second,
			slog.New(slog.NewTextHandler(io.Discard, nil)))

		names := make([]string, 20)
		for i := range names {
			names[i] = fmt.Sprintf("guest %d", i)
		}

		var wg sync.WaitGroup
		results := make([][]*domain.Invitation, 2)
		errs := make([]error, 2)
		for i := range results {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i], errs[i] = svc.IssueInvitations(ctx, "ev-int", names)
			}(i)
		}
		wg.Wait()

		seen := map[string]bool{"000000": true}
		for i := range results {
			require.NoError(t, errs[i])
			require.Len(t, results[i], 20)
			for _, inv := range results[i] {
				require.False(t, seen[inv.Code], "code %s issued twice", inv.Code)
				seen[inv.Code] = true
			}
		}

		stored, err := invitations.ListByEventID(ctx, "ev-int")
		require.NoError(t, err)
		require.Len(t, stored, 41)
	})
}

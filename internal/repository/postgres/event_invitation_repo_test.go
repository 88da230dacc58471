package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"gradinvite/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var invitationRowColumns = []string{"code", "event_id", "guest_name", "created_at"}

func TestInvitationRepository_Create(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	inv := &domain.Invitation{Code: "042137", EventID: "ev-1", GuestName: "Tran Thi B", CreatedAt: ts}

	tests := []struct {
		name    string
		mock    func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "inserted",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO invitations \(code, event_id, guest_name, created_at\)`).
					WithArgs("042137", "ev-1", "Tran Thi B", ts).
					WillReturnResult(sqlmock.NewResult(0, 1))
			},
		},
		{
			name: "conflict swallowed by ON CONFLICT",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`ON CONFLICT \(code\) DO NOTHING`).
					WithArgs("042137", "ev-1", "Tran Thi B", ts).
					WillReturnResult(sqlmock.NewResult(0, 0))
			},
			wantErr: domain.ErrDuplicateCode,
		},
		{
			name: "unique violation",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO invitations`).
					WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value violates unique constraint"})
			},
			wantErr: domain.ErrDuplicateCode,
		},
		{
			name: "db error",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(`INSERT INTO invitations`).
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			err = NewInvitationRepository(db).Create(ctx, inv)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_GetByCode(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		code    string
		mock    func(mock sqlmock.Sqlmock)
		want    *domain.Invitation
		wantErr error
	}{
		{
			name: "found",
			code: "000123",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`SELECT code, event_id, guest_name, created_at\s+FROM invitations\s+WHERE code = \$1`).
					WithArgs("000123").
					WillReturnRows(sqlmock.NewRows(invitationRowColumns).AddRow("000123", "ev-1", "Le Van C", ts))
			},
			want: &domain.Invitation{Code: "000123", EventID: "ev-1", GuestName: "Le Van C", CreatedAt: ts},
		},
		{
			name: "not found",
			code: "000000",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM invitations`).
					WithArgs("000000").
					WillReturnError(sql.ErrNoRows)
			},
			wantErr: domain.ErrNotFound,
		},
		{
			name: "db error",
			code: "000001",
			mock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(`FROM invitations`).
					WithArgs("000001").
					WillReturnError(sql.ErrConnDone)
			},
			wantErr: sql.ErrConnDone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			tt.mock(mock)
			got, err := NewInvitationRepository(db).GetByCode(ctx, tt.code)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestInvitationRepository_ListByEventID(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`WHERE event_id = \$1\s+ORDER BY created_at, code`).
		WithArgs("ev-1").
		WillReturnRows(sqlmock.NewRows(invitationRowColumns).
			AddRow("111111", "ev-1", "Guest 1", ts).
			AddRow("222222", "ev-1", "Guest 2", ts.Add(time.Second)))

	got, err := NewInvitationRepository(db).ListByEventID(ctx, "ev-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "111111", got[0].Code)
	require.Equal(t, "Guest 2", got[1].GuestName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInvitationRepository_List(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store yields empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM invitations\s+ORDER BY created_at, code`).
			WillReturnRows(sqlmock.NewRows(invitationRowColumns))

		got, err := NewInvitationRepository(db).List(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		require.Empty(t, got)
	})

	t.Run("query error", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM invitations`).WillReturnError(sql.ErrConnDone)

		_, err = NewInvitationRepository(db).List(ctx)
		require.ErrorIs(t, err, sql.ErrConnDone)
	})
}

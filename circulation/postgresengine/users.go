package postgresengine

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/AntonStoeckl/library-circulation-go/circulation"
)

const tableUsers = "library_users"

func userColumns() []any {
	return []any{
		goqu.I("library_users.id"),
		goqu.I("library_users.member_id"),
		goqu.I("library_users.name"),
		goqu.I("library_users.email"),
		goqu.I("library_users.phone"),
		goqu.I("library_users.address"),
		goqu.I("library_users.date_of_birth"),
		goqu.I("library_users.registration_date"),
		goqu.I("library_users.is_active"),
		goqu.L(`"library_users"."outstanding_balance"::text`),
		goqu.I("library_users.created_at"),
		goqu.I("library_users.updated_at"),
	}
}

func scanUser(row rowScanner) (circulation.LibraryUser, error) {
	var u circulation.LibraryUser
	var rawBalance string

	err := row.Scan(
		&u.ID,
		&u.MemberID,
		&u.Name,
		&u.Email,
		&u.Phone,
		&u.Address,
		&u.DateOfBirth,
		&u.RegistrationDate,
		&u.IsActive,
		&rawBalance,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return circulation.LibraryUser{}, err
	}

	u.OutstandingBalance, err = decimal.NewFromString(rawBalance)

	return u, err
}

func (t *pgTx) scanOneUser(ctx context.Context, action string, stmt sqlBuilder) (circulation.LibraryUser, error) {
	var user circulation.LibraryUser

	found, err := t.queryOne(ctx, action, stmt, func(row rowScanner) error {
		var scanErr error
		user, scanErr = scanUser(row)
		return scanErr
	})
	if err != nil {
		return circulation.LibraryUser{}, err
	}

	if !found {
		return circulation.LibraryUser{}, circulation.ErrUserNotFound
	}

	return user, nil
}

// InsertUser stores a new user. The member id comes from the library_users_member_seq sequence.
func (t *pgTx) InsertUser(ctx context.Context, user circulation.LibraryUser) (circulation.LibraryUser, error) {
	record := goqu.Record{
		"id":            newID(user.ID).String(),
		"name":          user.Name,
		"email":         user.Email,
		"phone":         user.Phone,
		"address":       user.Address,
		"date_of_birth": dateValue(user.DateOfBirth),
		"is_active":     user.IsActive,
	}

	if !user.RegistrationDate.IsZero() {
		record["registration_date"] = dateValue(&user.RegistrationDate)
	}

	stmt := dialect().Insert(tableUsers).
		Rows(record).
		Returning(userColumns()...)

	return t.scanOneUser(ctx, "insert user", stmt)
}

// UpdateUser overwrites the mutable columns of a user. Member id and balance are left alone.
func (t *pgTx) UpdateUser(ctx context.Context, user circulation.LibraryUser) (circulation.LibraryUser, error) {
	stmt := dialect().Update(tableUsers).
		Set(goqu.Record{
			"name":          user.Name,
			"email":         user.Email,
			"phone":         user.Phone,
			"address":       user.Address,
			"date_of_birth": dateValue(user.DateOfBirth),
			"is_active":     user.IsActive,
			"updated_at":    goqu.L("NOW()"),
		}).
		Where(goqu.C("id").Eq(user.ID.String())).
		Returning(userColumns()...)

	return t.scanOneUser(ctx, "update user", stmt)
}

// GetUser reads one user.
func (t *pgTx) GetUser(ctx context.Context, userID uuid.UUID) (circulation.LibraryUser, error) {
	return t.scanOneUser(ctx, "get user", t.selectUser(userID))
}

// LockUserForShare reads one user FOR SHARE.
func (t *pgTx) LockUserForShare(ctx context.Context, userID uuid.UUID) (circulation.LibraryUser, error) {
	return t.scanOneUser(ctx, "lock user for share", t.selectUser(userID).ForShare(exp.Wait))
}

// LockUserForUpdate reads one user FOR UPDATE.
func (t *pgTx) LockUserForUpdate(ctx context.Context, userID uuid.UUID) (circulation.LibraryUser, error) {
	return t.scanOneUser(ctx, "lock user for update", t.selectUser(userID).ForUpdate(exp.Wait))
}

func (t *pgTx) selectUser(userID uuid.UUID) *goqu.SelectDataset {
	return dialect().From(tableUsers).
		Select(userColumns()...).
		Where(goqu.I("library_users.id").Eq(userID.String()))
}

// ListUsers returns the users ordered by name, optionally filtered over name, member id and email.
func (t *pgTx) ListUsers(ctx context.Context, search string) ([]circulation.LibraryUser, error) {
	stmt := dialect().From(tableUsers).
		Select(userColumns()...).
		Order(goqu.I("library_users.name").Asc())

	if search != "" {
		pattern := likePattern(search)
		stmt = stmt.Where(goqu.Or(
			goqu.I("library_users.name").ILike(pattern),
			goqu.I("library_users.member_id").ILike(pattern),
			goqu.I("library_users.email").ILike(pattern),
		))
	}

	users := make([]circulation.LibraryUser, 0)

	err := t.query(ctx, "list users", stmt, func(row rowScanner) error {
		user, scanErr := scanUser(row)
		if scanErr != nil {
			return scanErr
		}

		users = append(users, user)

		return nil
	})

	return users, err
}

// DeleteUser removes a user together with the returned loans and the payments referencing it.
func (t *pgTx) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	stmt := dialect().Delete(tableUsers).Where(goqu.C("id").Eq(userID.String()))

	rowsAffected, err := t.exec(ctx, "delete user", stmt)
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return circulation.ErrUserNotFound
	}

	return nil
}

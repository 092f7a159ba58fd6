package repo

import (
	"context"
	"database/sql"

	"github.com/didi/gendry/builder"

	"github.com/postly/postly/internal/model"
	"github.com/postly/postly/internal/pkg/dbutil"
	appErr "github.com/postly/postly/internal/pkg/errors"
)

// Code kinds select which pending-code column pair an operation touches.
const (
	CodeKindVerification = "verification"
	CodeKindReset        = "reset"
)

var userColumns = []string{
	"id", "email", "password_hash", "verified",
	"verification_code_hash", "verification_code_issued_at",
	"reset_code_hash", "reset_code_issued_at",
	"ctime", "mtime",
}

var userViewColumns = []string{"id", "email", "verified", "ctime", "mtime"}

type UserRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, user *model.User) error {
	data := map[string]interface{}{
		"id":            user.ID,
		"email":         user.Email,
		"password_hash": user.PasswordHash,
		"verified":      user.Verified,
		"ctime":         user.Ctime,
		"mtime":         user.Mtime,
	}
	sqlStr, args, err := builder.BuildInsert("users", []map[string]interface{}{data})
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	_, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		if dbutil.IsConflict(err) {
			return appErr.ErrConflict
		}
		return err
	}
	return nil
}

// GetViewByEmail is the default read: the public projection without credential
// or code fields.
func (r *UserRepo) GetViewByEmail(ctx context.Context, email string) (*model.UserView, error) {
	where := map[string]interface{}{"email": email}
	sqlStr, args, err := builder.BuildSelect("users", where, userViewColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	var view model.UserView
	if err := rows.Scan(&view.ID, &view.Email, &view.Verified, &view.Ctime, &view.Mtime); err != nil {
		return nil, err
	}
	return &view, nil
}

// GetByEmail is the privileged read returning the full record including the
// credential hash and pending code state.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"email": email})
}

func (r *UserRepo) GetByID(ctx context.Context, userID string) (*model.User, error) {
	return r.getOne(ctx, map[string]interface{}{"id": userID})
}

func (r *UserRepo) getOne(ctx context.Context, where map[string]interface{}) (*model.User, error) {
	sqlStr, args, err := builder.BuildSelect("users", where, userColumns)
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	if !rows.Next() {
		return nil, appErr.ErrNotFound
	}
	return scanUser(rows)
}

func scanUser(rows *sql.Rows) (*model.User, error) {
	var user model.User
	var vHash, rHash sql.NullString
	var vIssued, rIssued sql.NullInt64
	if err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.Verified,
		&vHash, &vIssued, &rHash, &rIssued, &user.Ctime, &user.Mtime); err != nil {
		return nil, err
	}
	if vHash.Valid && vIssued.Valid {
		user.VerificationCodeHash = &vHash.String
		user.VerificationCodeIssuedAt = &vIssued.Int64
	}
	if rHash.Valid && rIssued.Valid {
		user.ResetCodeHash = &rHash.String
		user.ResetCodeIssuedAt = &rIssued.Int64
	}
	return &user, nil
}

func codeColumns(kind string) (string, string, error) {
	switch kind {
	case CodeKindVerification:
		return "verification_code_hash", "verification_code_issued_at", nil
	case CodeKindReset:
		return "reset_code_hash", "reset_code_issued_at", nil
	default:
		return "", "", appErr.ErrInvalid
	}
}

// SetPendingCode stores the keyed hash and issuance time of a freshly issued
// code, replacing any prior pending code of the same kind.
func (r *UserRepo) SetPendingCode(ctx context.Context, userID, kind, codeHash string, issuedAt int64) error {
	hashCol, issuedCol, err := codeColumns(kind)
	if err != nil {
		return err
	}
	where := map[string]interface{}{"id": userID}
	update := map[string]interface{}{
		hashCol:   codeHash,
		issuedCol: issuedAt,
		"mtime":   issuedAt,
	}
	return r.update(ctx, where, update)
}

// ConsumeVerificationCode marks the account verified and clears the pending
// verification pair in one statement. The WHERE clause pins the hash that was
// just validated, so a concurrent re-issue or verify on the same account makes
// this a no-op and the caller sees ErrNoPendingCode.
func (r *UserRepo) ConsumeVerificationCode(ctx context.Context, userID, expectHash string, mtime int64) error {
	where := map[string]interface{}{
		"id":                     userID,
		"verification_code_hash": expectHash,
	}
	update := map[string]interface{}{
		"verified":                    true,
		"verification_code_hash":      nil,
		"verification_code_issued_at": nil,
		"mtime":                       mtime,
	}
	if err := r.update(ctx, where, update); err != nil {
		if err == appErr.ErrNotFound {
			return appErr.ErrNoPendingCode
		}
		return err
	}
	return nil
}

// ConsumeResetCode installs the new credential hash and clears the pending
// reset pair in one statement, with the same hash-pinned race behavior as
// ConsumeVerificationCode.
func (r *UserRepo) ConsumeResetCode(ctx context.Context, userID, expectHash, passwordHash string, mtime int64) error {
	where := map[string]interface{}{
		"id":              userID,
		"reset_code_hash": expectHash,
	}
	update := map[string]interface{}{
		"password_hash":        passwordHash,
		"reset_code_hash":      nil,
		"reset_code_issued_at": nil,
		"mtime":                mtime,
	}
	if err := r.update(ctx, where, update); err != nil {
		if err == appErr.ErrNotFound {
			return appErr.ErrNoPendingCode
		}
		return err
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, userID, passwordHash string, mtime int64) error {
	where := map[string]interface{}{"id": userID}
	update := map[string]interface{}{
		"password_hash": passwordHash,
		"mtime":         mtime,
	}
	return r.update(ctx, where, update)
}

// ClearExpiredCodes nulls pending code pairs of the given kind issued at or
// before cutoff. Returns the number of accounts touched.
func (r *UserRepo) ClearExpiredCodes(ctx context.Context, kind string, cutoff int64) (int64, error) {
	hashCol, issuedCol, err := codeColumns(kind)
	if err != nil {
		return 0, err
	}
	where := map[string]interface{}{issuedCol + " <=": cutoff}
	update := map[string]interface{}{
		hashCol:   nil,
		issuedCol: nil,
	}
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return 0, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// EmailsByIDs resolves account ids to emails for author projection.
func (r *UserRepo) EmailsByIDs(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return map[string]string{}, nil
	}
	where := map[string]interface{}{"id in": ids}
	sqlStr, args, err := builder.BuildSelect("users", where, []string{"id", "email"})
	if err != nil {
		return nil, err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	rows, err := r.db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	emails := make(map[string]string, len(ids))
	for rows.Next() {
		var id, email string
		if err := rows.Scan(&id, &email); err != nil {
			return nil, err
		}
		emails[id] = email
	}
	return emails, rows.Err()
}

func (r *UserRepo) update(ctx context.Context, where, update map[string]interface{}) error {
	sqlStr, args, err := builder.BuildUpdate("users", where, update)
	if err != nil {
		return err
	}
	sqlStr, args = dbutil.Finalize(sqlStr, args)
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return appErr.ErrNotFound
	}
	return nil
}

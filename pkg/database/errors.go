package database

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrConstraintViolation đánh dấu lỗi do dữ liệu vi phạm ràng buộc của storage
// (unique, foreign key, not null, check) hoặc sai kiểu dữ liệu
var ErrConstraintViolation = errors.New("constraint violation")

// ConstraintError giữ nguyên message gốc từ PostgreSQL
type ConstraintError struct {
	Code       string
	Constraint string
	Message    string
	Detail     string
}

func (e *ConstraintError) Error() string {
	if e.Detail != "" {
		return e.Message + ": " + e.Detail
	}
	return e.Message
}

func (e *ConstraintError) Is(target error) bool {
	return target == ErrConstraintViolation
}

// TranslateError map SQLSTATE class 23 (integrity) và 22 (data exception)
// sang *ConstraintError; các lỗi khác được trả về nguyên vẹn
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	if strings.HasPrefix(pgErr.Code, "23") || strings.HasPrefix(pgErr.Code, "22") {
		return &ConstraintError{
			Code:       pgErr.Code,
			Constraint: pgErr.ConstraintName,
			Message:    pgErr.Message,
			Detail:     pgErr.Detail,
		}
	}

	return err
}

// IsUniqueViolation checks for SQLSTATE 23505
func IsUniqueViolation(err error) bool {
	var ce *ConstraintError
	if errors.As(err, &ce) {
		return ce.Code == "23505"
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

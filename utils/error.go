package utils

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrorRecordNotFound = errors.New("record not found")

// ErrValidation wraps input problems the binding layer cannot catch
// (patch nulls on required columns, unknown enum values in patches).
var ErrValidation = errors.New("validation failed")

// ErrConstraintViolation covers unique-key and foreign-key rejections by the store.
var ErrConstraintViolation = errors.New("constraint violation")

// MySQL server error numbers that mean the row was rejected by a constraint.
const (
	mysqlDuplicateEntry     = 1062
	mysqlRowIsReferenced    = 1451
	mysqlNoReferencedRow    = 1452
	mysqlRowIsReferenced2   = 1217
	mysqlNoReferencedParent = 1216
)

func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrConstraintViolation) ||
		errors.Is(err, gorm.ErrDuplicatedKey) ||
		errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case mysqlDuplicateEntry, mysqlRowIsReferenced, mysqlNoReferencedRow,
			mysqlRowIsReferenced2, mysqlNoReferencedParent:
			return true
		}
	}
	return false
}

// StoreError maps gorm/driver errors onto the package sentinels. Anything it
// does not recognise is returned unchanged.
func StoreError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrorRecordNotFound
	case errors.Is(err, ErrConstraintViolation):
		return err
	case IsConstraintViolation(err):
		return errors.Join(ErrConstraintViolation, err)
	}
	return err
}

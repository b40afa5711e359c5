package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports a row that is absent, soft deleted, or not
	// owned by the requester. Callers answer 404 without distinguishing
	// ownership from absence.
	ErrNotFound = errors.New("record not found")
	// ErrEmailExists reports a duplicate email on signup.
	ErrEmailExists = errors.New("email already exists")
)

// isDuplicate detects a unique-key violation (MySQL error 1062).
func isDuplicate(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}

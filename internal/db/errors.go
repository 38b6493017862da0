package db

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	"github.com/lib/pq"

	"github.com/allan6757/Hospitali/internal/apperr"
)

// Classify maps a driver error onto the application taxonomy. Data
// exceptions (SQLSTATE class 22) become validation failures, constraint
// violations (class 23) integrity failures; connection
// failures become store-unavailable. Anything else is wrapped with op.
func Classify(op string, err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "22":
			return apperr.InvalidData(op, err)
		case "23":
			return apperr.Integrity(op, err)
		case "08", "53", "57":
			return apperr.Unavailable(op, err)
		}
		return wrap(op, err)
	}

	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return apperr.Unavailable(op, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return apperr.Unavailable(op, err)
	}

	return wrap(op, err)
}

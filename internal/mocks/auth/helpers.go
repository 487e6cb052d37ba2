package auth

import (
	"errors"
	"strconv"
	"strings"

	"github.com/metzakaria/vendicore-frontend-sub001/internal/data"
)

// Doubles fail lookups with the same sentinel the real repository uses so
// callers exercise identical error paths.
var errAccountNotFound = data.ErrAccountNotFound

var errUnknownToken = errors.New("unknown token")

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

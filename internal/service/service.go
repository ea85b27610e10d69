package service

import (
	"context"
	"strings"
	"time"

	"github.com/yizeng/gab/gin/gorm/relief-api/internal/domain"
)

// Transactor runs fn in one database transaction. Repository calls made with the context passed
// to fn take part in it.
type Transactor interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// now is replaced in tests.
var now = time.Now

type PersonFinder interface {
	FindByID(ctx context.Context, id uint) (domain.Person, error)
}

// requireAdmin loads the person and checks the ADMIN profile.
func requireAdmin(ctx context.Context, people PersonFinder, adminID uint) (domain.Person, error) {
	admin, err := people.FindByID(ctx, adminID)
	if err != nil {
		return domain.Person{}, err
	}
	if !admin.IsAdmin() {
		return domain.Person{}, domain.Forbidden("person %d does not have the %s profile", adminID, domain.ProfileAdmin)
	}

	return admin, nil
}

func blockedBy(entity string, id uint, deps []string) error {
	return domain.Conflict("cannot delete %s %d: it still has %s", entity, id, strings.Join(deps, ", "))
}

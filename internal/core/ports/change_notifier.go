package ports

import (
	"context"

	"github.com/SinghShreyansh/users-service/internal/core/domain"
)

// ChangeNotifier hands a change notification to the event bus. A nil error
// means the notification was accepted, not that it was delivered.
type ChangeNotifier interface {
	Notify(ctx context.Context, kind domain.ChangeKind, payload domain.Projection) error
}

package session

import (
	"context"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/require"

	"github.com/NigelSimon20/adnab-qr-code-app/internal/storage/memory"
)

// Property-based checks of the inbox invariants: the derived unread count
// always matches a recount of the authoritative sequence, and mark-read is
// idempotent under arbitrary id sequences.
func TestInboxProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// Ids "1" and "2" exist in the starter inbox; the rest are unknown.
	genIDs := gen.SliceOf(gen.OneConstOf("1", "2", "3", "nope", ""))

	properties.Property("unread count equals recount after any mark-read sequence", prop.ForAll(
		func(ids []string) bool {
			s := newTestStore(t, memory.New())
			ctx := context.Background()
			s.Initialize(ctx)
			require.NoError(t, s.Login(ctx, "Alice", "Alice"))

			for _, id := range ids {
				s.MarkNotificationAsRead(id)
				snap := s.Snapshot()
				manual := 0
				for _, n := range snap.User.Notifications {
					if !n.Read {
						manual++
					}
				}
				if s.UnreadCount() != manual {
					return false
				}
			}
			return true
		},
		genIDs,
	))

	properties.Property("marking an id twice equals marking it once", prop.ForAll(
		func(id string) bool {
			ctx := context.Background()

			once := newTestStore(t, memory.New())
			once.Initialize(ctx)
			require.NoError(t, once.Login(ctx, "Alice", "Alice"))
			once.MarkNotificationAsRead(id)

			twice := newTestStore(t, memory.New())
			twice.Initialize(ctx)
			require.NoError(t, twice.Login(ctx, "Alice", "Alice"))
			twice.MarkNotificationAsRead(id)
			twice.MarkNotificationAsRead(id)

			a := once.Snapshot().User.Notifications
			b := twice.Snapshot().User.Notifications
			if len(a) != len(b) {
				return false
			}
			for i := range a {
				if a[i].ID != b[i].ID || a[i].Read != b[i].Read {
					return false
				}
			}
			return true
		},
		gen.OneConstOf("1", "2", "unknown"),
	))

	properties.Property("mark-read never removes or reorders", prop.ForAll(
		func(ids []string) bool {
			s := newTestStore(t, memory.New())
			ctx := context.Background()
			s.Initialize(ctx)
			require.NoError(t, s.Login(ctx, "Alice", "Alice"))

			for _, id := range ids {
				s.MarkNotificationAsRead(id)
			}
			snap := s.Snapshot()
			return len(snap.User.Notifications) == 2 &&
				snap.User.Notifications[0].ID == "1" &&
				snap.User.Notifications[1].ID == "2"
		},
		genIDs,
	))

	properties.TestingRun(t)
}

// Package mocks provides test doubles for ports interfaces.
//
// These mocks are designed to be simple, thread-safe, in-memory implementations
// suitable for unit testing. Each mock provides:
//
//   - Default behavior that mirrors the production semantics (upserts, idempotent inserts)
//   - Callback functions (xxxFn) for customizing behavior per test
//   - Helper methods for inspecting recorded calls
//
// # Usage Example
//
//	func TestDelivery(t *testing.T) {
//		store := mocks.NewStore()
//		_ = store.PutContent(ctx, &domain.Content{Code: "91", Title: "Naruto"})
//
//		messenger := mocks.NewMessenger()
//		p := delivery.New(store, gate, messenger, nil, &logger)
//		// ... assert on messenger.Sent()
//	}
//
// # Available Mocks
//
//   - Store: implements ports.Repository
//   - Messenger: implements ports.Messenger
//   - Membership: implements ports.MembershipChecker
package mocks

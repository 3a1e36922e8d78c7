package helpers

import "context"

// CurrentUser resolves a chat ID to a domain entity via a service that
// implements GetUserByChatID. The generic type T lets applications supply
// their own user model.
func CurrentUser[T any](
	ctx context.Context,
	service interface {
		GetUserByChatID(context.Context, int64) (T, error)
	},
	chatID int64,
) (T, error) {
	var zero T
	if service == nil {
		return zero, nil
	}
	return service.GetUserByChatID(ctx, chatID)
}

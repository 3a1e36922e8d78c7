package state

import (
	"context"
	"strconv"
)

// SetDataInt64 stores an int64 scratch value under key.
func SetDataInt64(ctx context.Context, m Manager, chatID int64, key string, value int64) error {
	return m.SetData(ctx, chatID, key, strconv.FormatInt(value, 10))
}

// DataInt64 reads an int64 scratch value by key. Missing or malformed values
// report ok=false.
func DataInt64(ctx context.Context, m Manager, chatID int64, key string) (int64, bool, error) {
	raw, ok, err := m.Data(ctx, chatID, key)
	if err != nil || !ok {
		return 0, false, err
	}
	v, convErr := strconv.ParseInt(raw, 10, 64)
	if convErr != nil {
		return 0, false, nil
	}
	return v, true, nil
}

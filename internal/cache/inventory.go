package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix = "user:%s"
	postKeyPrefix = "post:%d"

	// postsListKey holds the recent-published strip on the home page. Any
	// post write invalidates it.
	postsListKey = "posts:recent"
)

const (
	// UserTTL bounds staleness of username lookups after a profile edit.
	UserTTL = 5 * time.Minute
	PostTTL = 30 * time.Minute
	ListTTL = time.Minute
)

func UserKey(username string) string {
	return fmt.Sprintf(userKeyPrefix, username)
}

func PostKey(postID uint) string {
	return fmt.Sprintf(postKeyPrefix, postID)
}

func PostsListKey() string {
	return postsListKey
}

func Invalidate(ctx context.Context, keys ...string) {
	if client == nil {
		return
	}
	for _, key := range keys {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, username string) {
	Invalidate(ctx, UserKey(username))
}

func InvalidatePost(ctx context.Context, postID uint) {
	Invalidate(ctx, PostKey(postID), postsListKey)
}

func InvalidatePostsList(ctx context.Context) {
	Invalidate(ctx, postsListKey)
}

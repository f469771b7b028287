package models

// All returns every persisted model, in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Post{},
		&Comment{},
		&PostLike{},
		&PostDislike{},
		&CommentLike{},
		&CommentDislike{},
		&BlacklistedToken{},
	}
}

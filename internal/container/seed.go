package container

import (
	"github.com/oksasatya/blog-seed/internal/application"
	"github.com/oksasatya/blog-seed/internal/infrastructure/cache"
	"github.com/oksasatya/blog-seed/internal/infrastructure/search"
)

// BuildSeedService wires the seed loader from the registered singletons.
// Redis and Elasticsearch hooks are attached only when their clients are set.
func BuildSeedService(data application.Dataset) *application.SeedService {
	var sessions application.SessionPurger
	if rdb := GetRedis(); rdb != nil {
		sessions = cache.NewSessionStore(rdb)
	}
	var index application.UserIndexer
	if es := GetES(); es != nil {
		index = search.NewUserIndex(es, GetConfig().ESUsersIndex)
	}
	return application.NewSeedService(
		GetStores().Users,
		GetStores().Posts,
		data,
		GetConfig().BcryptCost,
		sessions,
		index,
		GetLogger(),
	)
}

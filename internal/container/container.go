package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/blog-seed/config"
	"github.com/oksasatya/blog-seed/internal/infrastructure/datastore"
)

// process-wide singletons shared by the commands

var (
	cfg         *config.Config
	logger      *logrus.Logger
	stores      *datastore.Stores
	redisClient *redis.Client
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config)    { cfg = c }
func GetConfig() *config.Config     { return cfg }
func SetLogger(l *logrus.Logger)    { logger = l }
func GetLogger() *logrus.Logger     { return logger }
func SetStores(s *datastore.Stores) { stores = s }
func GetStores() *datastore.Stores  { return stores }
func SetRedis(r *redis.Client)      { redisClient = r }
func GetRedis() *redis.Client       { return redisClient }
func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

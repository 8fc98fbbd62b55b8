package registration

import (
	"fmt"
	"qsmart/qsmart-crowd-server/pkg/config"
	"qsmart/qsmart-crowd-server/pkg/infra"
)

// ProvideStore builds the backend named by -registration-store.
func ProvideStore(config *config.Config, loggerFactory *infra.LoggerFactory) (Store, error) {
	logger := loggerFactory.Create("Registration").Sugar()

	switch *config.RegistrationStore {
	case "sqlite", "":
		db, err := infra.OpenSQLite(*config.SqlitePath, loggerFactory)
		if err != nil {
			logger.Errorf("cannot open sqlite path[%v] %v", *config.SqlitePath, err)
			return nil, err
		}
		store, err := NewSqliteStore(db)
		if err != nil {
			db.Close()
			return nil, err
		}
		logger.Infof("using sqlite registration store path[%v]", *config.SqlitePath)
		return store, nil

	case "redis":
		redisClient, err := infra.NewRedisClient(loggerFactory)
		if err != nil {
			return nil, err
		}
		logger.Infof("using redis registration store")
		return NewRedisStore(redisClient), nil

	case "memory":
		logger.Warnf("using memory registration store, registrations are lost on restart")
		return NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unknown registration store[%v]", *config.RegistrationStore)
	}
}

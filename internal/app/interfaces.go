package app

import (
	"github.com/envatex/envatex-api/config"
	"github.com/envatex/envatex-api/internal/blobstore"
	"gorm.io/gorm"
)

// DBProvider provides database access
type DBProvider interface {
	DB() *gorm.DB
}

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// BlobStoreProvider provides the image blob store
type BlobStoreProvider interface {
	BlobStore() blobstore.Store
}

// AppContext combines all provider interfaces for full application context.
// Handlers should depend on specific providers or this combined interface.
type AppContext interface {
	DBProvider
	ConfigProvider
	BlobStoreProvider

	// Application lifecycle methods
	MigrateDB(track bool) error
	InitDb()
	DropAll()
}

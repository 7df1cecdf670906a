package stores

import (
	"os"

	"roomdrop/core"
	"roomdrop/stores/aws"
	"roomdrop/stores/filesystem"
	"roomdrop/stores/memory"
	"roomdrop/stores/sqlite"

	"github.com/sirupsen/logrus"
)

// GetStore picks the upload storage backend from STORAGE_TYPE. Uploaded
// bytes land on the local disk by default, matching the classic uploads/
// folder layout.
func GetStore() core.FileStore {
	storageType := os.Getenv("STORAGE_TYPE")
	var store core.FileStore

	storageField := logrus.Fields{
		"storageType": storageType,
	}

	switch storageType {
	case "memory":
		store = memory.NewStore()
	case "sqlite":
		dataSourceName := os.Getenv("DATA_SOURCE_NAME")
		if dataSourceName == "" {
			dataSourceName = "roomdrop.db" // Default filename
		}
		storageField["dataSourceName"] = dataSourceName
		store = sqlite.NewStore(dataSourceName)
	case "s3":
		bucketName := os.Getenv("S3_BUCKET_NAME")
		if bucketName == "" {
			logrus.Fatal("S3_BUCKET_NAME environment variable must be set for s3 storage type")
		}
		storageField["bucketName"] = bucketName
		store = aws.NewStore(bucketName)
	default:
		basePath := os.Getenv("LOCAL_STORAGE_PATH")
		if basePath == "" {
			basePath = "./uploads" // Default path
		}
		storageField["storageType"] = "filesystem"
		storageField["basePath"] = basePath
		store = filesystem.NewStore(basePath)
	}
	logrus.WithFields(storageField).Info("Use upload storage")
	return store
}

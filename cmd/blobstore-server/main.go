// Command blobstore-server serves the blob store HTTP API.
//
// Configuration is read from the environment, optionally seeded from
// blobstore.env in BLOBSTORE_ENV_DIR and from the dotenv content of
// BLOBSTORE_ENV:
//
//	STORE_REGION, STORE_NAMESPACE, STORE_BUCKET_NAME  object location
//	STORE_SERVICE                                     oci, s3, minio, gcs or local
//	REST_LISTEN_ADDRESS, REST_MAX_UPLOAD_SIZE         HTTP server
//	CORS_ALLOWED_DOMAINS, CORS_ALLOWED_METHODS        CORS
//	LOG_LEVEL, LOG_PRETTY, LOG_FILE_LOGGING           logging
package main

import (
	"os"

	"github.com/timemore/blobstore/api/rest"
	"github.com/timemore/blobstore/api/rest/objects"
	"github.com/timemore/blobstore/app"
	apperrs "github.com/timemore/blobstore/app/errors"
	"github.com/timemore/blobstore/logger"
	mediastore "github.com/timemore/blobstore/media/store"

	_ "github.com/timemore/blobstore/media/store/gcs"
	_ "github.com/timemore/blobstore/media/store/local"
	_ "github.com/timemore/blobstore/media/store/minio"
	_ "github.com/timemore/blobstore/media/store/oci"
	_ "github.com/timemore/blobstore/media/store/s3"
)

var (
	revisionID     = "unknown"
	buildTimestamp = "unknown"
)

var log = logger.NewPkgLogger()

func main() {
	app.SetBuildInfo(revisionID, buildTimestamp)

	envFileDir := os.Getenv("BLOBSTORE_ENV_DIR")
	if envFileDir == "" {
		envFileDir = "."
	}
	if err := app.LoadEnvFiles([]string{"BLOBSTORE_ENV", "blobstore"}, envFileDir); err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).Msg("env files loading")
	}
	// the env files may carry LOG_ variables
	logCfg, err := logger.ConfigFromEnv()
	if err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).Msg("logger config loading")
	}
	logger.ConfigurePkgLoggers(logCfg)

	appInstance, err := app.InitByEnvDefault()
	if err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).Msg("app initialization")
	}

	storeCfg, err := mediastore.ParseConfigFromEnv(mediastore.EnvPrefixDefault)
	if err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).Msg("store config loading")
	}
	mediaStore, err := mediastore.New(storeCfg)
	if err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).
			Strs("services", mediastore.ModuleNames()).
			Msg("store initialization")
	}

	srvCfg, err := rest.ServerConfigFromEnv(rest.ServerConfigEnvPrefixDefault)
	if err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).Msg("REST server config loading")
	}
	srv := rest.NewServer(srvCfg, objects.NewWebService(mediaStore, srvCfg.MaxUploadSize))
	if err = rest.SetupCORSFilterByEnv(srv.Container(), "CORS"); err != nil {
		log.Fatal().Err(apperrs.NewConfiguration(err)).Msg("CORS filter setup")
	}

	buildInfo := app.GetBuildInfo()
	appInfo := appInstance.AppInfo()
	log.Info().
		Str("app", appInfo.Name).
		Str("env", appInfo.Env).
		Str("instance", appInstance.InstanceID()).
		Str("revision", buildInfo.RevisionID).
		Str("built", buildInfo.Timestamp).
		Str("store_service", storeCfg.StoreService).
		Str("bucket", storeCfg.BucketName).
		Str("listen", srvCfg.ListenAddress).
		Msg("starting")

	appInstance.AddServer(srv)
	appInstance.Run()
}

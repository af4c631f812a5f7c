package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/bitmark-inc/huddle-api/background"
	"github.com/bitmark-inc/huddle-api/background/expiry"
	"github.com/bitmark-inc/huddle-api/external/cadence"
	"github.com/bitmark-inc/huddle-api/external/slack"
	"github.com/bitmark-inc/huddle-api/huddle"
	"github.com/bitmark-inc/huddle-api/store"
	"github.com/bitmark-inc/huddle-api/utils"
)

var logger *zap.Logger

func init() {
	logger = buildLogger()
}

func buildLogger() *zap.Logger {
	config := zap.NewDevelopmentConfig()
	config.Level.SetLevel(zapcore.InfoLevel)

	logger, err := config.Build()
	if err != nil {
		panic("Failed to setup logger")
	}

	return logger
}

func initSentry() {
	// Sentry
	logger.Info("Initializing sentry")
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              viper.GetString("sentry.dsn"),
		AttachStacktrace: true,
		Environment:      viper.GetString("sentry.environment"),
		Dist:             viper.GetString("sentry.dist"),
	}); err != nil {
		logger.Panic("fail to initialize sentry", zap.Error(err))
	}
}

func loadConfig(file string) {
	// Config from file
	viper.SetConfigType("yaml")
	if file != "" {
		viper.SetConfigFile(file)
	}

	viper.AddConfigPath("/.config/")
	viper.AddConfigPath(".")
	err := viper.ReadInConfig()
	if err != nil {
		fmt.Println("No config file. Read config from env.")
		viper.AllowEmptyEnv(false)
	}

	// Config from env if possible
	viper.AutomaticEnv()
	viper.SetEnvPrefix("huddle")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	var configFile string
	flag.StringVar(&configFile, "c", "./config.yaml", "[optional] path of configuration file")
	flag.Parse()

	loadConfig(configFile)
	initSentry()
	utils.InitI18NBundle()

	ormDB, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		logger.Panic("open orm database with error", zap.Error(err))
	}

	opts := options.Client().ApplyURI(viper.GetString("mongo.conn"))
	opts.SetMaxPoolSize(viper.GetUint64("mongo.pool"))
	mongoClient, err := mongo.NewClient(opts)
	if nil != err {
		logger.Panic("create mongo client with error", zap.Error(err))
	}

	err = mongoClient.Connect(context.Background())
	if nil != err {
		logger.Panic("connect mongo database with error", zap.Error(err))
	}
	members := store.NewMongoStore(mongoClient, viper.GetString("mongo.database"))

	gateway, err := slack.NewFromViper()
	if nil != err {
		logger.Panic("create slack gateway with error", zap.Error(err))
	}

	var directory huddle.MemberDirectory = gateway
	if viper.GetString("huddle.directory") == "cache" {
		directory = members
	}

	cadenceConfig := cadence.ConfigFromViper()
	cadenceClient, err := cadence.NewClient(cadenceConfig)
	if nil != err {
		logger.Panic("create cadence client with error", zap.Error(err))
	}
	scheduler := expiry.NewScheduler(cadenceClient)
	huddleConfig := huddle.NewConfigFromViper()
	orchestrator := huddle.NewOrchestrator(
		store.NewHuddleStore(ormDB),
		gateway,
		scheduler,
		huddle.NewDirectoryResolver(directory),
		huddleConfig)

	if err := background.ArmMaintenanceJobs(scheduler, huddleConfig); err != nil {
		logger.Panic("arm maintenance jobs with error", zap.Error(err))
	}

	worker := expiry.NewExpiryWorker(cadenceConfig.Domain, background.Background{
		Lifecycle: orchestrator,
		Directory: gateway,
		Members:   members,
	})
	worker.Register()
	service, err := cadence.BuildCadenceServiceClient(cadenceConfig.HostPort)
	if nil != err {
		logger.Panic("connect cadence frontend with error", zap.Error(err))
	}
	worker.Start(service, logger)
}

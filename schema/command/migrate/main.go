package main

import (
	"fmt"
	"strings"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	"github.com/spf13/viper"

	"github.com/bitmark-inc/huddle-api/schema"
)

func init() {
	viper.AutomaticEnv()
	viper.SetEnvPrefix("huddle")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
}

func main() {
	db, err := gorm.Open("postgres", viper.GetString("orm.conn"))
	if err != nil {
		panic(err)
	}
	defer db.Close()

	if err := db.Exec(`CREATE SCHEMA IF NOT EXISTS huddle`).Error; err != nil {
		panic(err)
	}

	if err := db.Exec("SET search_path TO huddle").Error; err != nil {
		panic(err)
	}

	if err := db.AutoMigrate(
		&schema.Request{},
	).Error; err != nil {
		panic(err)
	}

	// the sweep scans open requests by age
	if err := db.Model(schema.Request{}).
		AddIndex("huddle_requests_status_created_at", "status", "created_at").Error; err != nil {
		panic(err)
	}

	if viper.GetString("mongo.conn") == "" {
		fmt.Println("no mongo connection configured, skip member cache indexes")
		return
	}

	schema.NewMongoDBIndexer(viper.GetString("mongo.conn"), viper.GetString("mongo.database")).IndexAll()
}

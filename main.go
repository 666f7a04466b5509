package main

import (
	"fmt"
	"healthwallet/api/api"
	"healthwallet/api/config"
	"healthwallet/api/db"
	"healthwallet/api/storage"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	err := config.Setup()
	if err != nil {
		panic(err)
	}

	database, err := db.New()
	if err != nil {
		panic(err)
	}

	store, err := storage.New()
	if err != nil {
		panic(err)
	}

	a, err := api.New(database, store)
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", viper.GetInt("host.port")))

	err = a.Router.Run(fmt.Sprintf(":%d", viper.GetInt("host.port")))
	if err != nil {
		panic(err)
	}
}

package main

import (
	driver "github.com/datazip-inc/tap-mongodb/drivers/mongodb/internal"
	"github.com/datazip-inc/tap-mongodb/protocol"
	"github.com/datazip-inc/tap-mongodb/utils/logger"
	"github.com/datazip-inc/tap-mongodb/utils/safego"
)

func main() {
	defer safego.Recovery(true)

	if err := protocol.CreateRootCommand(&driver.Mongo{}).Execute(); err != nil {
		logger.Fatal(err)
	}
}

package infrastructure

import (
	startup "certschool.io/infrastructure/startUp"
)

type serverInterface interface {
	Start()
}

func StartServer() {
	cfg := startup.StartServices()
	defer startup.CleanUpServices()

	var server serverInterface = &ginServer{cfg: cfg}
	server.Start()
}

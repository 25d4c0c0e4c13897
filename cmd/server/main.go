package main

import (
	"github.com/giovaniif/bucket-list/cmd/api"
	"github.com/sirupsen/logrus"
)

func main() {
	if err := api.StartServer(); err != nil {
		logrus.WithError(err).Fatal("bucket list stopped")
	}
}

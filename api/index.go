// Package handler is the serverless entrypoint: one ledger API per warm instance.
package handler

import (
	"net/http"
	"sync"

	"hotelledger/config"
	"hotelledger/di"
	"hotelledger/shared/logger"
)

var ledgerAPI = sync.OnceValue(func() http.Handler {
	logger.InitLogger()
	logger.SetLogLevel(config.Get())

	return di.InitializeService()
})

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	ledgerAPI().ServeHTTP(w, r)
}

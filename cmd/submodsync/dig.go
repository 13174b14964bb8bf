package main

import (
	"github.com/rios0rios0/submodsync/internal"
	"go.uber.org/dig"
)

func injectAppContext() *internal.AppContext {
	container := dig.New()

	// Register all providers
	if err := internal.RegisterProviders(container); err != nil {
		panic(err)
	}

	// Invoke to get AppContext
	var appContext *internal.AppContext
	if err := container.Invoke(func(ac *internal.AppContext) {
		appContext = ac
	}); err != nil {
		panic(err)
	}

	return appContext
}

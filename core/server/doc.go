// Package server assembles the HTTP API application.
//
// It owns the server configuration and the middleware chain: every
// request gets a RayID, is logged through the structured logger, and
// (health checks aside) must carry a valid API key. Feature modules
// register their routes through the core/loader registry.
//
// # Usage
//
//	app, err := server.New(cfg.Server, log, syncapi.NewFeature(...))
//	err = app.Listen(":" + cfg.Server.Port)
package server

package main

// General API documentation for swaggo. The served document lives in
// internal/httpapi/swagger.go; keep both in sync.
//
// @title           doubleit API
// @version         1.0
// @description     HTTP API serving a model that doubles integer inputs.
//
// @license.name   MIT
// @license.url    https://opensource.org/licenses/MIT
//
// @BasePath  /
//
// @schemes http

// Package api serves the indexed tips over a read-only REST API
// @title TipJar Indexer API
// @version 1.0
// @description Read-only REST API over the tips indexed from the TipJar contract
// @contact.name API Support
// @contact.url https://github.com/goran-ethernal/TipJarIndexer
// @license.name Apache 2.0
// @license.url https://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @basePath /api/v1
// @schemes http https
package api

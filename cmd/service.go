/*
Copyright © 2026 Marek Kvarda (mkvarda) <marek@kvarda.dev>
*/

// service.go handles lazy catalog service initialisation.
//
// Separated from root.go so command registration (root.go) stays distinct
// from the catalog lifecycle. Commands share one service instance created
// on first use.
//
// Design: noStoreCommands lists the commands that must work before a
// catalog exists (bootstrap and metadata commands). Everything else gets
// the service opened in PersistentPreRunE before its RunE executes.

package cmd

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/mkvarda/agora/internal/catalog"
	"github.com/mkvarda/agora/internal/log"
)

// noStoreCommands work without an existing catalog.
var noStoreCommands = map[string]bool{
	"init":       true,
	"guide":      true,
	"config":     true,
	"version":    true,
	"db":         true,
	"help":       true,
	"completion": true,
}

// authorRequiredCommands need a publisher identity, either from --author
// or from config.
var authorRequiredCommands = map[string]bool{
	"publish": true,
	"import":  true,
}

var (
	svc     *catalog.Service
	svcOnce sync.Once
	svcErr  error
)

// initService opens the catalog service exactly once. Subsequent calls
// return the first result. The audit logger is pointed at the catalog
// directory so events from different catalogs stay distinguishable.
func initService() error {
	svcOnce.Do(func() {
		s, err := catalog.New(DB())
		if err != nil {
			svcErr = fmt.Errorf("opening catalog: %w", err)
			return
		}
		svc = s
		log.SetCatalog(filepath.Dir(s.DBPath()))
	})
	return svcErr
}

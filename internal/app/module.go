package app

import (
	"os"

	"github.com/shandysiswandi/goflightstore/internal/storefront"
)

func (a *App) initModules() {
	if a.config.GetBool("modules.storefront.enabled") {
		m, err := storefront.New(storefront.Dependency{
			Config: a.config,
			Router: a.router,
			UUID:   a.uuid,
		})
		if err != nil {
			a.logger().Error("failed to init module", "module", "storefront", "error", err)
			os.Exit(1)
		}
		a.addCloser("Storefront", m.Close)
		a.logger().Info("module enabled", "module", "storefront")
	}
}

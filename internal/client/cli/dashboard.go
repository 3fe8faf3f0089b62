package cli

import (
	"context"

	"github.com/dmitrijs2005/phishshield/internal/client/client"
)

// Dashboard prints the protection summary. Each call shows the next tip.
func (a *App) Dashboard(ctx context.Context) error {
	if err := a.requireUser(); err != nil {
		return err
	}

	res := a.api.GetDashboardData(ctx)
	if !res.OK {
		if client.IsUnauthorized(res) {
			a.logger.Warn(ctx, "dashboard rejected the session")
		}
		return a.fail(res.Error)
	}

	a.out.dashboard(res.Data, a.tip)
	a.tip++
	return nil
}

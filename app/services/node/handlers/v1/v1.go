// Package v1 contains the full set of handler functions and routes
// supported by the v1 web api.
package v1

import (
	"net/http"

	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/private"
	"github.com/ardanlabs/ledger/app/services/node/handlers/v1/public"
	"github.com/ardanlabs/ledger/foundation/events"
	"github.com/ardanlabs/ledger/foundation/ledger/state"
	"github.com/ardanlabs/ledger/foundation/web"
	"go.uber.org/zap"
)

const version = "v1"

// Config contains all the mandatory systems required by handlers.
type Config struct {
	Log   *zap.SugaredLogger
	State *state.State
	Evts  *events.Events
}

// PublicRoutes binds all the version 1 public routes.
func PublicRoutes(app *web.App, cfg Config) {
	pbl := public.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
		Evts:  cfg.Evts,
	}

	app.Handle(http.MethodPost, version, "/tx/submit", pbl.SubmitTransaction)
	app.Handle(http.MethodPost, version, "/mine", pbl.Mine)
	app.Handle(http.MethodPost, version, "/mine/signal", pbl.SignalMine)
	app.Handle(http.MethodGet, version, "/chain", pbl.Chain)
	app.Handle(http.MethodGet, version, "/chain/validate", pbl.Validate)
	app.Handle(http.MethodGet, version, "/mempool", pbl.Mempool)
	app.Handle(http.MethodGet, version, "/genesis", pbl.Genesis)
	app.Handle(http.MethodPost, version, "/node/register", pbl.RegisterNodes)
	app.Handle(http.MethodGet, version, "/node/list", pbl.NodeList)
	app.Handle(http.MethodPost, version, "/node/resolve", pbl.Resolve)
	app.Handle(http.MethodGet, version, "/events", pbl.Events)
}

// PrivateRoutes binds all the version 1 peer facing routes.
func PrivateRoutes(app *web.App, cfg Config) {
	prv := private.Handlers{
		Log:   cfg.Log,
		State: cfg.State,
	}

	app.Handle(http.MethodGet, version, "/node/chain", prv.Chain)
	app.Handle(http.MethodGet, version, "/node/status", prv.Status)
	app.Handle(http.MethodPost, version, "/node/tx/submit", prv.SubmitPeerTx)
	app.Handle(http.MethodPost, version, "/node/peers", prv.AddPeer)
}

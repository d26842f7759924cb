package repository

import (
	"errors"
	"fmt"

	"github.com/alexedwards/scs/v2"
	"github.com/alexedwards/scs/v2/memstore"
	"github.com/ghaggin/hbnb/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var (
	errUnknownStore = errors.New("unknown session store")
)

type Params struct {
	fx.In

	LC     fx.Lifecycle
	Config *config.Config
	Log    *zap.Logger
}

// NewStore picks the session store named in the config.
func NewStore(p Params) (scs.Store, error) {
	switch p.Config.Session.Store {
	case config.StoreMemory, "":
		return memstore.New(), nil
	case config.StoreSQLite:
		s, err := NewSQLite(p.Config.Session.SQLitePath, p.Log)
		if err != nil {
			return nil, err
		}
		p.LC.Append(fx.Hook{
			OnStart: s.start,
			OnStop:  s.stop,
		})
		return s, nil
	}

	return nil, fmt.Errorf("%w: %q", errUnknownStore, p.Config.Session.Store)
}

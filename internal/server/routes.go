package server

import (
	"github.com/danielgtaylor/huma/v2"

	v1 "github.com/srdevmiller/meumeu3.0-sub000/internal/api/v1"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/audit"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/auth"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/billing"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/store/postgres"
)

func registerAuthRoutes(api huma.API, authSvc *auth.Service) {
	v1.RegisterAuthRoutes(api, authSvc)
}

func registerPublicRoutes(api huma.API, store *postgres.Store) {
	v1.RegisterMenuRoutes(api, store)
}

func registerAPIRoutes(api huma.API, store *postgres.Store, recorder *audit.Recorder, provider billing.Provider) {
	v1.RegisterProductRoutes(api, store, recorder)
	v1.RegisterFavoriteRoutes(api, store, recorder)
	v1.RegisterMerchantRoutes(api, store, recorder)
	v1.RegisterAdminRoutes(api, store, recorder)
	v1.RegisterBillingRoutes(api, store, provider, recorder)
}

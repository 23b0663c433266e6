package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/srdevmiller/meumeu3.0-sub000/internal/domain"
	"github.com/srdevmiller/meumeu3.0-sub000/internal/server/middleware"
)

const (
	actionAdminStats           = "admin.stats"
	actionAdminLogs            = "admin.logs"
	actionAdminAnalytics       = "admin.analytics"
	actionAdminUserUpdate      = "admin.user.update"
	actionAdminPaymentRead     = "admin.payment.read"
	actionAdminPaymentUpdate   = "admin.payment.update"
	defaultLogsPageSize        = 50
	maxLogsPageSize            = 200
	defaultAnalyticsWindowDays = 30
	maxAnalyticsWindowDays     = 365
)

type AdminStatsInput struct{}

type AdminStatsOutput struct {
	Body struct {
		Merchants        int64                         `json:"merchants"`
		Products         int64                         `json:"products"`
		Visits           int64                         `json:"visits"`
		ProductsByTenant []domain.MerchantProductCount `json:"products_by_tenant"`
	}
}

type AdminLogsInput struct {
	Page  int `query:"page" minimum:"1" default:"1" doc:"1-based page number"`
	Limit int `query:"limit" minimum:"1" maximum:"200" default:"50" doc:"Page size"`
}

type AdminLogsOutput struct {
	Body struct {
		Entries []*domain.AuditEntry `json:"entries"`
		Total   int64                `json:"total"`
		Page    int                  `json:"page"`
		Limit   int                  `json:"limit"`
	}
}

type AdminAnalyticsInput struct {
	Days int `query:"days" minimum:"1" maximum:"365" default:"30" doc:"Window size in days"`
}

type AdminAnalyticsOutput struct {
	Body struct {
		WindowDays int                       `json:"window_days"`
		Total      int64                     `json:"total"`
		ByDay      []domain.DailyVisitCount  `json:"by_day"`
		ByDevice   []domain.DeviceVisitCount `json:"by_device"`
	}
}

type AdminUpdateUserInput struct {
	UserID int64 `path:"userID" doc:"Merchant account to edit"`
	Body   struct {
		BusinessName *string `json:"business_name,omitempty" maxLength:"255" doc:"Business display name"`
		Phone        *string `json:"phone,omitempty" maxLength:"32" doc:"Contact phone"`
		ThemeColor   *string `json:"theme_color,omitempty" maxLength:"16" doc:"Menu accent color"`
		LogoURL      *string `json:"logo_url,omitempty" maxLength:"1024" doc:"Logo image URL"`
	}
}

type AdminUpdateUserOutput struct {
	Body *domain.Merchant
}

type GetPaymentSettingsInput struct{}

type GetPaymentSettingsOutput struct {
	Body struct {
		Configured bool      `json:"configured"`
		UpdatedAt  time.Time `json:"updated_at,omitempty"`
	}
}

type PutPaymentSettingsInput struct {
	Body struct {
		ClientSecret string `json:"client_secret" minLength:"1" doc:"Provider client secret"` //nolint:gosec // G117: credential DTO
		AccessToken  string `json:"access_token" minLength:"1" doc:"Provider access token"`   //nolint:gosec // G117: credential DTO
	}
}

type PutPaymentSettingsOutput struct {
	Body struct {
		UpdatedAt time.Time `json:"updated_at"`
	}
}

// requireAdmin resolves the caller and rejects non-administrators. The
// role comes from the token claims placed in context by the auth
// middleware, so no extra store read is needed.
func requireAdmin(ctx context.Context) (int64, error) {
	merchantID, ok := middleware.MerchantIDFromContext(ctx)
	if !ok {
		return 0, huma.Error401Unauthorized("authentication required")
	}
	if role, _ := middleware.RoleFromContext(ctx); role != domain.RoleAdmin {
		return 0, huma.Error403Forbidden("administrator role required")
	}
	return merchantID, nil
}

func RegisterAdminRoutes(api huma.API, store DataStore, auditor Auditor) {
	huma.Register(api, huma.Operation{
		OperationID: "admin-stats",
		Method:      http.MethodGet,
		Path:        "/admin/stats",
		Summary:     "Platform-wide totals",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, _ *AdminStatsInput) (*AdminStatsOutput, error) {
		adminID, err := requireAdmin(ctx)
		if err != nil {
			return nil, err
		}

		merchants, err := store.Merchants().Count(ctx)
		if err != nil {
			return nil, storeError("failed to count merchants", err)
		}
		products, err := store.Products().Count(ctx)
		if err != nil {
			return nil, storeError("failed to count products", err)
		}
		visits, err := store.Visits().Count(ctx)
		if err != nil {
			return nil, storeError("failed to count visits", err)
		}
		byTenant, err := store.Products().CountByMerchant(ctx)
		if err != nil {
			return nil, storeError("failed to break down products", err)
		}

		auditor.Record(ctx, adminID, actionAdminStats,
			"viewed platform stats", middleware.ClientIPFromContext(ctx))

		out := &AdminStatsOutput{}
		out.Body.Merchants = merchants
		out.Body.Products = products
		out.Body.Visits = visits
		out.Body.ProductsByTenant = byTenant
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-logs",
		Method:      http.MethodGet,
		Path:        "/admin/logs",
		Summary:     "Page through the audit log, newest first",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminLogsInput) (*AdminLogsOutput, error) {
		adminID, err := requireAdmin(ctx)
		if err != nil {
			return nil, err
		}

		page := input.Page
		if page < 1 {
			page = 1
		}
		limit := input.Limit
		if limit < 1 {
			limit = defaultLogsPageSize
		}
		if limit > maxLogsPageSize {
			limit = maxLogsPageSize
		}

		entries, total, err := store.Audit().ListPaginated(ctx, limit, (page-1)*limit)
		if err != nil {
			return nil, storeError("failed to list audit log", err)
		}

		auditor.Record(ctx, adminID, actionAdminLogs,
			fmt.Sprintf("viewed audit log page %d", page),
			middleware.ClientIPFromContext(ctx))

		out := &AdminLogsOutput{}
		out.Body.Entries = entries
		out.Body.Total = total
		out.Body.Page = page
		out.Body.Limit = limit
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-analytics",
		Method:      http.MethodGet,
		Path:        "/admin/analytics",
		Summary:     "Visit analytics over a trailing window",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminAnalyticsInput) (*AdminAnalyticsOutput, error) {
		adminID, err := requireAdmin(ctx)
		if err != nil {
			return nil, err
		}

		days := input.Days
		if days < 1 {
			days = defaultAnalyticsWindowDays
		}
		if days > maxAnalyticsWindowDays {
			days = maxAnalyticsWindowDays
		}
		since := time.Now().AddDate(0, 0, -days)

		total, err := store.Visits().CountSince(ctx, since)
		if err != nil {
			return nil, storeError("failed to count visits", err)
		}
		byDay, err := store.Visits().CountByDay(ctx, since)
		if err != nil {
			return nil, storeError("failed to aggregate daily visits", err)
		}
		byDevice, err := store.Visits().CountByDevice(ctx, since)
		if err != nil {
			return nil, storeError("failed to aggregate device visits", err)
		}

		auditor.Record(ctx, adminID, actionAdminAnalytics,
			fmt.Sprintf("viewed %d-day visit analytics", days),
			middleware.ClientIPFromContext(ctx))

		out := &AdminAnalyticsOutput{}
		out.Body.WindowDays = days
		out.Body.Total = total
		out.Body.ByDay = byDay
		out.Body.ByDevice = byDevice
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-update-user",
		Method:      http.MethodPatch,
		Path:        "/admin/users/{userID}",
		Summary:     "Edit any merchant's profile",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *AdminUpdateUserInput) (*AdminUpdateUserOutput, error) {
		adminID, err := requireAdmin(ctx)
		if err != nil {
			return nil, err
		}

		if input.Body.BusinessName != nil && *input.Body.BusinessName == "" {
			return nil, huma.Error400BadRequest("business name cannot be empty")
		}

		patch := domain.ProfilePatch{
			BusinessName: input.Body.BusinessName,
			Phone:        input.Body.Phone,
			ThemeColor:   input.Body.ThemeColor,
			LogoURL:      input.Body.LogoURL,
		}

		merchant, err := store.Merchants().UpdateProfile(ctx, input.UserID, patch)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("merchant not found")
			}
			return nil, storeError("failed to update merchant", err)
		}

		auditor.Record(ctx, adminID, actionAdminUserUpdate,
			fmt.Sprintf("edited merchant id %d", input.UserID),
			middleware.ClientIPFromContext(ctx))

		return &AdminUpdateUserOutput{Body: merchant}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-get-payment-settings",
		Method:      http.MethodGet,
		Path:        "/admin/payment-settings",
		Summary:     "Check whether provider credentials are configured",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, _ *GetPaymentSettingsInput) (*GetPaymentSettingsOutput, error) {
		adminID, err := requireAdmin(ctx)
		if err != nil {
			return nil, err
		}

		out := &GetPaymentSettingsOutput{}

		// Secrets never leave the store; the read reports presence only.
		settings, err := store.PaymentSettings().Get(ctx, adminID)
		switch {
		case err == nil:
			out.Body.Configured = true
			out.Body.UpdatedAt = settings.UpdatedAt
		case errors.Is(err, domain.ErrNotFound):
			out.Body.Configured = false
		default:
			return nil, storeError("failed to read payment settings", err)
		}

		auditor.Record(ctx, adminID, actionAdminPaymentRead,
			"viewed payment settings", middleware.ClientIPFromContext(ctx))

		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "admin-put-payment-settings",
		Method:      http.MethodPut,
		Path:        "/admin/payment-settings",
		Summary:     "Store provider credentials",
		Tags:        []string{"Admin"},
	}, func(ctx context.Context, input *PutPaymentSettingsInput) (*PutPaymentSettingsOutput, error) {
		adminID, err := requireAdmin(ctx)
		if err != nil {
			return nil, err
		}

		settings := &domain.PaymentSettings{
			MerchantID:   adminID,
			ClientSecret: input.Body.ClientSecret,
			AccessToken:  input.Body.AccessToken,
			UpdatedAt:    time.Now(),
		}
		if err := store.PaymentSettings().Upsert(ctx, settings); err != nil {
			return nil, storeError("failed to store payment settings", err)
		}

		auditor.Record(ctx, adminID, actionAdminPaymentUpdate,
			"replaced payment provider credentials",
			middleware.ClientIPFromContext(ctx))

		out := &PutPaymentSettingsOutput{}
		out.Body.UpdatedAt = settings.UpdatedAt
		return out, nil
	})
}
